package partition

// Facet is a part of a cut with inside cells on one side and outside cells
// on the other.
type Facet[P Point] struct {
	Sub SubHyperplane[P]
	// InsideOnPlus is true when the inside cells lie above the facet.
	InsideOnPlus bool
}

// boundaryAttribute splits the cut of an internal node into the part that
// has outside cells above it and the part that has inside cells above it.
// Only parts with the opposite tag below them are kept.
type boundaryAttribute[P Point] struct {
	plusOutside SubHyperplane[P]
	plusInside  SubHyperplane[P]
}

// boundaryBuilder holds the attributes for one boundary computation, keyed
// by node identity. It is discarded once the facets are collected.
type boundaryBuilder[P Point] struct {
	attrs map[*Node[P]]boundaryAttribute[P]
}

// Facets returns the boundary facets of the tree rooted at root, in
// pre-order.
func Facets[P Point](root *Node[P]) []Facet[P] {
	b := &boundaryBuilder[P]{attrs: make(map[*Node[P]]boundaryAttribute[P])}
	b.visit(root)
	return b.collect(root, nil)
}

func (b *boundaryBuilder[P]) visit(n *Node[P]) {
	if n.cut == nil {
		return
	}
	b.visit(n.minus)
	b.visit(n.plus)

	var attr boundaryAttribute[P]
	plusChar := characterize(n.plus, n.cut.Copy())
	if plusChar.outside != nil {
		minusChar := characterize(n.minus, plusChar.outside)
		attr.plusOutside = minusChar.inside
	}
	if plusChar.inside != nil {
		minusChar := characterize(n.minus, plusChar.inside)
		attr.plusInside = minusChar.outside
	}
	b.attrs[n] = attr
}

func (b *boundaryBuilder[P]) collect(n *Node[P], facets []Facet[P]) []Facet[P] {
	if n.cut == nil {
		return facets
	}
	attr := b.attrs[n]
	if attr.plusOutside != nil && !attr.plusOutside.IsEmpty() {
		facets = append(facets, Facet[P]{Sub: attr.plusOutside})
	}
	if attr.plusInside != nil && !attr.plusInside.IsEmpty() {
		facets = append(facets, Facet[P]{Sub: attr.plusInside, InsideOnPlus: true})
	}
	facets = b.collect(n.minus, facets)
	return b.collect(n.plus, facets)
}

// characterization gathers the parts of a sub-hyperplane touching inside
// cells and outside cells of a subtree.
type characterization[P Point] struct {
	inside  SubHyperplane[P]
	outside SubHyperplane[P]
}

func characterize[P Point](n *Node[P], sub SubHyperplane[P]) characterization[P] {
	var c characterization[P]
	c.walk(n, sub)
	return c
}

func (c *characterization[P]) walk(n *Node[P], sub SubHyperplane[P]) {
	if n.cut == nil {
		if n.tag == TagInside {
			c.inside = reunite(c.inside, sub)
		} else {
			c.outside = reunite(c.outside, sub)
		}
		return
	}
	h := n.cut.Hyperplane()
	switch sub.Side(h) {
	case SidePlus:
		c.walk(n.plus, sub)
	case SideMinus:
		c.walk(n.minus, sub)
	case SideBoth:
		minus, plus := sub.Split(h)
		if plus != nil {
			c.walk(n.plus, plus)
		}
		if minus != nil {
			c.walk(n.minus, minus)
		}
	default:
		// coincident pieces go below a cut of the same orientation
		if h.SameOrientationAs(sub.Hyperplane()) {
			c.walk(n.minus, sub)
		} else {
			c.walk(n.plus, sub)
		}
	}
}

func reunite[P Point](acc, sub SubHyperplane[P]) SubHyperplane[P] {
	if acc == nil {
		return sub
	}
	return acc.Reunite(sub)
}
