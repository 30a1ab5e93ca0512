// Package command delineates the command area of a single outlet on a DEM:
// the set of cells hydrologically controlled by the outlet, optionally grown
// by a flood-level tolerance applied once at the area's rim.
//
// What:
//
//   - ResolveOutlet maps a geographic point to a validated outlet cell.
//   - Delineate runs an 8-connected breadth-first fill from the outlet,
//     admitting a neighbour iff its elevation is ≤ that of the cell it is
//     reached from. Admitted cells are marked Default.
//   - Boundary lists the Default cells that touch an in-grid Unvisited cell.
//   - Expand grows the area in two phases. Phase 1 admits Unvisited
//     neighbours of the fixed boundary set whose elevation is ≤ boundary
//     elevation + flood level. Phase 2 continues from those cells with the
//     strict rule of Delineate. Both phases mark cells FloodExpansion.
//   - Summarize counts pixels per class and converts them to areas.
//   - Compute / ComputeAt / Extend chain the steps above into one call.
//
// The tolerance is applied exactly once, from the boundary computed right
// after Delineate. It is never re-applied deeper in the expansion, so the
// flood level cannot compound with BFS depth.
//
// The mask is the only record of visitation: a cell is admitted at most once,
// queues hold pending cells only. Nodata cells are never admitted.
//
// Concurrency:
//
//	A computation is synchronous and owns its Mask. Independent computations
//	over the same Grid may run concurrently as long as each has its own Mask.
//
// Complexity:
//
//   - Delineate: O(W×H×8) time, O(W×H) memory.
//   - Boundary:  O(W×H×8) time.
//   - Expand:    O(B×8 + W×H×8) time, B = boundary size.
//   - Summarize: O(W×H) time.
//
// Errors:
//
//   - ErrEmptyGrid: the grid is nil or has no cells.
//   - ErrOutOfBounds: the outlet resolves outside the grid.
//   - ErrNoDataOutlet: the outlet cell holds nodata.
//   - ErrInvalidFloodLevel: flood level negative, not finite, or above the
//     configured maximum.
//   - ErrSingularTransform: the grid transform cannot be inverted.
//   - ErrMaskMismatch: a mask does not match the grid it is used with.
package command
