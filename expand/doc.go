// Package expand turns a trajectory into the ordered sequence of points it
// visits.
//
// Expansion starts from the init block, whose bindings become the constants
// visible to every expression. Each loop node then varies one or more
// variables together. Every vary entry is one of:
//
//	name: {range: {start: 0, stop: 4, step: 0.02}}   numeric progression
//	name: {list: {value: [1, 2, 3], cyclic: true}}   explicit values
//	name: [1, 2, 3]                                  one element per iteration
//	name: "expression"                               evaluated per iteration
//	name: {field: "expression", ...}                 structured object
//
// The first variable of a block fixes its loop length; later variables are
// computed per iteration and must agree with it. Nested loops are expanded
// once for every iteration of their parent, so the number of points is the
// product of the loop lengths along each path.
//
// # Ranges
//
// A range is a bare integer N (0 through N-1) or three of the five knobs
// start, stop, step, n and center:
//
//	start step stop     progression from start through stop
//	start step center   progression from start through 2*center-start
//	center step stop    progression from -2*center-stop through stop
//	start stop [n]      n evenly spaced points
//	start step [n]      n points from start
//	stop step [n]       n points ending at stop
//	center step [n]     n points centered on center
//	start center [n]    n evenly spaced points through 2*center-start
//	stop center [n]     n evenly spaced points from -stop-2*center
//	[n]                 0 through n-1
//
// A bracketed n may be omitted when an earlier variable of the block has
// fixed the loop length.
//
// # Output
//
// [Columnate] turns the points into named columns for presentation,
// dropping the constants.
package expand
