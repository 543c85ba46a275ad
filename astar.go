package gridastar

import (
	"container/heap"
	"context"
	"errors"
	"fmt"
)

// ErrBudgetExceeded reports that the search hit the WithMaxExpansions limit
// before reaching the goal.
var ErrBudgetExceeded = errors.New("expansion budget exceeded")

// Result contains the outcome of a search.
type Result struct {
	Path     []Position // start..goal inclusive; nil when Found is false
	Cost     int        // number of steps taken, len(Path)-1 for a found path
	Expanded int        // nodes finalized during the search
	Found    bool
}

// Options defines parameters for the search.
type Options struct {
	MaxExpansions int // 0 means unbounded
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithMaxExpansions bounds how many nodes the search may finalize. A search
// that exhausts the budget before reaching the goal fails with
// ErrBudgetExceeded instead of allocating nodes without limit.
func WithMaxExpansions(limit int) Option {
	return func(options *Options) { options.MaxExpansions = limit }
}

// FindPath executes an A* search from start to goal over the grid and runs
// to completion.
//
// A nil or zero-dimension grid and an out-of-bounds start or goal fail with
// ErrEmptyGrid or ErrOutOfBounds before any search work. A blocked start or
// goal can never lie on a path, so it is reported as unreachable rather than
// as an error. An unreachable goal is a normal outcome: the Result carries
// Found=false and a nil Path, and the error is nil.
//
// The context is checked once per iteration; cancellation returns ctx.Err().
func FindPath(ctx context.Context, grid *Grid, start, goal Position, options ...Option) (Result, error) {
	blockedEndpoint, err := validateSearch(grid, start, goal)
	if err != nil {
		return Result{}, err
	}
	if blockedEndpoint {
		return Result{}, nil
	}

	searchOptions := Options{}
	for _, option := range options {
		option(&searchOptions)
	}

	openSet := &priorityQueue{}
	heap.Init(openSet)

	startItem := &frontierItem{pos: start, g: 0, h: manhattan(start, goal)}
	startItem.f = startItem.h
	heap.Push(openSet, startItem)

	gScore := map[Position]int{start: 0}
	cameFrom := make(map[Position]Position)
	closedSet := make(map[Position]bool)
	openSetMap := map[Position]*frontierItem{start: startItem}

	expanded := 0
	neighbors := make([]Position, 0, 4)
	for openSet.Len() > 0 {
		select {
		case <-ctx.Done():
			return Result{Expanded: expanded}, ctx.Err()
		default:
		}

		currentItem := heap.Pop(openSet).(*frontierItem)
		current := currentItem.pos
		delete(openSetMap, current)

		// Skip if already finalized
		if closedSet[current] {
			continue
		}
		closedSet[current] = true
		expanded++

		if current == goal {
			return Result{
				Path:     reconstructPath(cameFrom, current, start),
				Cost:     currentItem.g,
				Expanded: expanded,
				Found:    true,
			}, nil
		}

		if searchOptions.MaxExpansions > 0 && expanded >= searchOptions.MaxExpansions {
			return Result{Expanded: expanded}, fmt.Errorf("%w: %d expansions", ErrBudgetExceeded, expanded)
		}

		neighbors = grid.appendNeighbors(neighbors[:0], current)
		for _, neighbor := range neighbors {
			if closedSet[neighbor] {
				continue
			}
			tentativeG := currentItem.g + 1 // unit step cost
			if knownG, exists := gScore[neighbor]; exists && tentativeG >= knownG {
				continue
			}
			gScore[neighbor] = tentativeG
			cameFrom[neighbor] = current
			h := manhattan(neighbor, goal)
			if item, inOpen := openSetMap[neighbor]; inOpen {
				// Relax in place instead of queueing a stale duplicate.
				item.g = tentativeG
				item.h = h
				item.f = tentativeG + h
				heap.Fix(openSet, item.indexInQueue)
			} else {
				item = &frontierItem{pos: neighbor, g: tentativeG, h: h, f: tentativeG + h}
				heap.Push(openSet, item)
				openSetMap[neighbor] = item
			}
		}
	}

	// Frontier exhausted: the goal is unreachable.
	return Result{Expanded: expanded}, nil
}

// validateSearch rejects malformed inputs before any search work. The
// returned flag reports a blocked start or goal, which is a legal input that
// can never produce a path.
func validateSearch(grid *Grid, start, goal Position) (blockedEndpoint bool, err error) {
	if grid == nil || grid.rows <= 0 || grid.cols <= 0 {
		return false, ErrEmptyGrid
	}
	if !grid.Contains(start) {
		return false, fmt.Errorf("%w: start %v", ErrOutOfBounds, start)
	}
	if !grid.Contains(goal) {
		return false, fmt.Errorf("%w: goal %v", ErrOutOfBounds, goal)
	}
	return grid.Blocked(start) || grid.Blocked(goal), nil
}

// reconstructPath walks the cameFrom links back from the goal and reverses
// the collected positions so the path runs start to goal inclusive.
func reconstructPath(cameFrom map[Position]Position, current, start Position) []Position {
	path := []Position{current}
	for current != start {
		previous, exists := cameFrom[current]
		if !exists {
			break
		}
		path = append(path, previous)
		current = previous
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
