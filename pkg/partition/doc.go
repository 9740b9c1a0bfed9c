// Package partition implements regions as binary space partition trees,
// independently of the embedding space.
//
// A space plugs into the engine by implementing Hyperplane and
// SubHyperplane for its point type and a Geometry computing measures. The
// engine then provides point location, boolean operations (union,
// intersection, difference, symmetric difference, complement) and boundary
// extraction. Trees produced by Merge and Complement never share nodes with
// their operands.
package partition
