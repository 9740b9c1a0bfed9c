package partition

// Tag is the classification carried by a leaf.
type Tag uint8

const (
	TagOutside Tag = iota
	TagInside
)

func (t Tag) String() string {
	switch t {
	case TagOutside:
		return "outside"
	case TagInside:
		return "inside"
	default:
		return "unknown"
	}
}

// Complement returns the opposite tag.
func (t Tag) Complement() Tag {
	if t == TagInside {
		return TagOutside
	}
	return TagInside
}

// Location returns the region location matching the tag.
func (t Tag) Location() Location {
	if t == TagInside {
		return Inside
	}
	return Outside
}

// Node is a BSP tree node. A leaf carries a Tag. An internal node owns a cut
// and two children: Minus below the cut and Plus above it. Parent is a
// back-reference only, set by the node's current owner.
//
// Trees held by a Region are shared read-only; build new trees with
// NewLeaf, NewNode and InsertCut, combine them with Merge and Complement.
type Node[P Point] struct {
	cut    SubHyperplane[P]
	minus  *Node[P]
	plus   *Node[P]
	parent *Node[P]
	tag    Tag
}

// NewLeaf returns a single leaf tree.
func NewLeaf[P Point](tag Tag) *Node[P] {
	return &Node[P]{tag: tag}
}

// NewNode returns an internal node owning cut, minus and plus. The children
// are adopted as they are: their cuts are expected to already fit the cells.
func NewNode[P Point](cut SubHyperplane[P], minus, plus *Node[P]) *Node[P] {
	n := &Node[P]{cut: cut, minus: minus, plus: plus}
	minus.parent = n
	plus.parent = n
	return n
}

func (n *Node[P]) IsLeaf() bool { return n.cut == nil }

// Cut returns the node's cut, nil for leaves.
func (n *Node[P]) Cut() SubHyperplane[P] { return n.cut }

func (n *Node[P]) Minus() *Node[P] { return n.minus }

func (n *Node[P]) Plus() *Node[P] { return n.plus }

func (n *Node[P]) Parent() *Node[P] { return n.parent }

// Tag returns the leaf tag. It is meaningless for internal nodes.
func (n *Node[P]) Tag() Tag { return n.tag }

// Classify returns the tag of the leaf containing p. Points lying on a cut
// are routed to the minus side.
func (n *Node[P]) Classify(p P) Tag {
	node := n
	for node.cut != nil {
		h := node.cut.Hyperplane()
		if h.Offset(p) > h.Tolerance() {
			node = node.plus
		} else {
			node = node.minus
		}
	}
	return node.tag
}

// Cell returns the deepest node reached by p. It is a leaf unless p lies on
// the returned node's cut.
func (n *Node[P]) Cell(p P) *Node[P] {
	node := n
	for node.cut != nil {
		h := node.cut.Hyperplane()
		offset := h.Offset(p)
		switch {
		case onHyperplane(offset, h.Tolerance()):
			return node
		case offset < 0:
			node = node.minus
		default:
			node = node.plus
		}
	}
	return node
}

// Locate classifies p as Inside, Outside or on the Boundary. A point lying on
// a cut is Boundary when the cells on both sides of the cut disagree.
func (n *Node[P]) Locate(p P) Location {
	cell := n.Cell(p)
	if cell.cut == nil {
		return cell.tag.Location()
	}
	minus := cell.minus.Locate(p)
	plus := cell.plus.Locate(p)
	if minus == plus {
		return minus
	}
	return Boundary
}

// Copy returns a deep copy of the subtree. The copy's root has no parent.
func (n *Node[P]) Copy() *Node[P] {
	if n.cut == nil {
		return &Node[P]{tag: n.tag}
	}
	return NewNode(n.cut.Copy(), n.minus.Copy(), n.plus.Copy())
}

// Count returns the number of nodes in the subtree.
func (n *Node[P]) Count() int {
	if n.cut == nil {
		return 1
	}
	return 1 + n.minus.Count() + n.plus.Count()
}

// Depth returns the length of the longest path from n to a leaf.
func (n *Node[P]) Depth() int {
	if n.cut == nil {
		return 0
	}
	return 1 + max(n.minus.Depth(), n.plus.Depth())
}

// InsertCut turns the leaf n into an internal node cut by h, with fresh leaf
// children tagged minusTag and plusTag. The cut is fitted to the cell of n;
// when nothing of h crosses the cell, n is left untouched and InsertCut
// returns false. Any existing children of n are discarded.
func (n *Node[P]) InsertCut(h Hyperplane[P], minusTag, plusTag Tag) bool {
	chopped := n.fitToCell(h.WholeHyperplane())
	if chopped == nil || chopped.IsEmpty() {
		return false
	}
	if n.cut != nil {
		n.minus.parent = nil
		n.plus.parent = nil
	}
	n.cut = chopped
	n.minus = &Node[P]{parent: n, tag: minusTag}
	n.plus = &Node[P]{parent: n, tag: plusTag}
	return true
}

// fitToCell restricts sub to the cell of n by splitting it with every
// ancestor cut. It returns nil when nothing is left.
func (n *Node[P]) fitToCell(sub SubHyperplane[P]) SubHyperplane[P] {
	s := sub
	for t := n; t.parent != nil && s != nil; t = t.parent {
		minus, plus := s.Split(t.parent.cut.Hyperplane())
		if t == t.parent.plus {
			s = plus
		} else {
			s = minus
		}
	}
	return s
}

// condense collapses n into a leaf when both children are leaves with the
// same tag.
func (n *Node[P]) condense() {
	if n.cut != nil && n.minus.cut == nil && n.plus.cut == nil && n.minus.tag == n.plus.tag {
		n.tag = n.minus.tag
		n.cut = nil
		n.minus = nil
		n.plus = nil
	}
}

// split returns a new tree equivalent to n, rooted at sub: its minus subtree
// holds the part of n below sub and its plus subtree the part above. n is not
// modified.
func (n *Node[P]) split(sub SubHyperplane[P]) *Node[P] {
	if n.cut == nil {
		return NewNode(sub, &Node[P]{tag: n.tag}, &Node[P]{tag: n.tag})
	}

	ch := n.cut.Hyperplane()
	sh := sub.Hyperplane()
	switch sub.Side(ch) {
	case SidePlus:
		// sub lies in the plus subtree; n's cut and minus subtree end up on
		// one side of sub
		s := n.plus.split(sub)
		if n.cut.Side(sh) == SidePlus {
			s.plus = NewNode(n.cut.Copy(), n.minus.Copy(), s.plus)
			s.plus.condense()
			s.plus.parent = s
		} else {
			s.minus = NewNode(n.cut.Copy(), n.minus.Copy(), s.minus)
			s.minus.condense()
			s.minus.parent = s
		}
		return s

	case SideMinus:
		s := n.minus.split(sub)
		if n.cut.Side(sh) == SidePlus {
			s.plus = NewNode(n.cut.Copy(), s.plus, n.plus.Copy())
			s.plus.condense()
			s.plus.parent = s
		} else {
			s.minus = NewNode(n.cut.Copy(), s.minus, n.plus.Copy())
			s.minus.condense()
			s.minus.parent = s
		}
		return s

	case SideBoth:
		cutMinus, cutPlus := n.cut.Split(sh)
		subMinus, subPlus := sub.Split(ch)
		s := NewNode(sub, n.minus.split(subMinus), n.plus.split(subPlus))

		// s.minus is rooted at the part of sub below ch and s.plus at the
		// part above; re-root both on n's cut and swap the crossed subtrees
		s.minus.cut = orCut(cutMinus, n.cut)
		s.plus.cut = orCut(cutPlus, n.cut)
		crossed := s.plus.minus
		s.plus.minus = s.minus.plus
		s.plus.minus.parent = s.plus
		s.minus.plus = crossed
		s.minus.plus.parent = s.minus
		s.minus.condense()
		s.plus.condense()
		return s

	default:
		if ch.SameOrientationAs(sh) {
			return NewNode(sub, n.minus.Copy(), n.plus.Copy())
		}
		return NewNode(sub, n.plus.Copy(), n.minus.Copy())
	}
}

// insertInTree attaches n as a child of parent and chops every cut of n by
// the hyperplanes of its new ancestors.
func (n *Node[P]) insertInTree(parent *Node[P], isPlusChild bool) {
	n.parent = parent
	if parent != nil {
		if isPlusChild {
			parent.plus = n
		} else {
			parent.minus = n
		}
	}
	if n.cut == nil {
		return
	}
	for t := n; t.parent != nil; t = t.parent {
		h := t.parent.cut.Hyperplane()
		keepPlus := t == t.parent.plus
		n.cut = chop(n.cut, h, keepPlus)
		n.minus.chopOff(h, keepPlus)
		n.plus.chopOff(h, keepPlus)
	}
	n.condense()
}

// chopOff restricts every cut of the subtree to one side of h.
func (n *Node[P]) chopOff(h Hyperplane[P], keepPlus bool) {
	if n.cut == nil {
		return
	}
	n.cut = chop(n.cut, h, keepPlus)
	n.minus.chopOff(h, keepPlus)
	n.plus.chopOff(h, keepPlus)
}

// chop keeps the part of sub on one side of h. A part that vanishes leaves
// sub as it was: its hyperplane still separates the children correctly.
func chop[P Point](sub SubHyperplane[P], h Hyperplane[P], keepPlus bool) SubHyperplane[P] {
	minus, plus := sub.Split(h)
	part := minus
	if keepPlus {
		part = plus
	}
	return orCut(part, sub)
}

func orCut[P Point](part, fallback SubHyperplane[P]) SubHyperplane[P] {
	if part == nil || part.IsEmpty() {
		return fallback.Copy()
	}
	return part
}
