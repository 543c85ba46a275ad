// Package gridastar provides A* shortest-path search on uniform-cost 2D grids.
//
// It exposes two main entry points:
//
//   - FindPath: run the search to completion and get a Result.
//   - Stepper: iterate the search one expansion at a time to drive UIs or debugging tools.
//
// Movement is restricted to the four orthogonal directions and every step
// costs 1, so Manhattan distance is an admissible and consistent heuristic
// and a returned path is always a true shortest path.
//
// The search never mutates the Grid; independent FindPath calls may share one
// Grid concurrently as long as no caller mutates it meanwhile.
package gridastar
