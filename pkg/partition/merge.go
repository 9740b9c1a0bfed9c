package partition

// Operation is a boolean set operation between two regions.
type Operation int

const (
	OpUnion Operation = iota
	OpIntersection
	OpDifference
	OpXor
)

func (op Operation) String() string {
	switch op {
	case OpUnion:
		return "union"
	case OpIntersection:
		return "intersection"
	case OpDifference:
		return "difference"
	case OpXor:
		return "xor"
	default:
		return "unknown"
	}
}

// Merge returns a new tree representing a op b. Both operands are copied
// before merging and are left untouched. The cut structure of a is used as
// the splitting template for b.
func Merge[P Point](a, b *Node[P], op Operation) *Node[P] {
	return a.Copy().merge(b.Copy(), op, nil, false)
}

// Complement returns a new tree with every leaf tag flipped.
func Complement[P Point](n *Node[P]) *Node[P] {
	if n.cut == nil {
		return &Node[P]{tag: n.tag.Complement()}
	}
	return NewNode(n.cut.Copy(), Complement(n.minus), Complement(n.plus))
}

// merge combines n (from the first operand) with tree (from the second) and
// installs the result as the minus or plus child of parent. Both n and tree
// are consumed.
func (n *Node[P]) merge(tree *Node[P], op Operation, parent *Node[P], isPlusChild bool) *Node[P] {
	if n.cut == nil {
		return mergeLeaf(op, n, tree, parent, isPlusChild, true)
	}
	if tree.cut == nil {
		return mergeLeaf(op, tree, n, parent, isPlusChild, false)
	}

	merged := tree.split(n.cut)
	if parent != nil {
		merged.parent = parent
		if isPlusChild {
			parent.plus = merged
		} else {
			parent.minus = merged
		}
	}

	n.plus.merge(merged.plus, op, merged, true)
	n.minus.merge(merged.minus, op, merged, false)
	merged.condense()
	if merged.cut != nil {
		if fitted := merged.fitToCell(merged.cut.Hyperplane().WholeHyperplane()); fitted != nil && !fitted.IsEmpty() {
			merged.cut = fitted
		}
	}
	return merged
}

// mergeLeaf applies op between a leaf and a tree. leafFromFirst tells which
// operand the leaf came from; it only matters for the non-commutative
// difference.
func mergeLeaf[P Point](op Operation, leaf, tree, parent *Node[P], isPlusChild, leafFromFirst bool) *Node[P] {
	inside := leaf.tag == TagInside
	var result *Node[P]
	switch op {
	case OpUnion:
		if inside {
			result = leaf
		} else {
			result = tree
		}
	case OpIntersection:
		if inside {
			result = tree
		} else {
			result = leaf
		}
	case OpDifference:
		switch {
		case inside && leafFromFirst:
			result = Complement(tree)
		case inside:
			result = &Node[P]{tag: TagOutside}
		case leafFromFirst:
			result = leaf
		default:
			result = tree
		}
	case OpXor:
		if inside {
			result = Complement(tree)
		} else {
			result = tree
		}
	default:
		panic("partition: unknown operation " + op.String())
	}
	result.insertInTree(parent, isPlusChild)
	return result
}
