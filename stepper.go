package gridastar

import (
	"container/heap"
	"maps"
	"slices"
)

// StepSnapshot exposes the per-iteration state of the search. The maps and
// the path are copies; mutating them does not affect the running search.
type StepSnapshot struct {
	Current   Position
	Open      map[Position]bool
	Closed    map[Position]bool
	CameFrom  map[Position]Position
	Done      bool
	Found     bool
	Path      []Position
	StepIndex int
}

// Stepper drives the same search as FindPath one node expansion at a time,
// for visualizers and debugging tools that want to watch the frontier move.
// A Stepper is single-use and not safe for concurrent use.
type Stepper struct {
	grid  *Grid
	start Position
	goal  Position

	openSet    *priorityQueue
	openSetMap map[Position]*frontierItem
	closedSet  map[Position]bool
	cameFrom   map[Position]Position
	gScore     map[Position]int

	neighbors []Position
	stepCount int
	done      bool
	found     bool
	path      []Position
}

// NewStepper validates its inputs the same way FindPath does and returns a
// stepper positioned before the first expansion. A blocked start or goal
// yields a stepper that is immediately done without a path.
func NewStepper(grid *Grid, start, goal Position) (*Stepper, error) {
	blockedEndpoint, err := validateSearch(grid, start, goal)
	if err != nil {
		return nil, err
	}

	s := &Stepper{
		grid:       grid,
		start:      start,
		goal:       goal,
		openSet:    &priorityQueue{},
		openSetMap: make(map[Position]*frontierItem),
		closedSet:  make(map[Position]bool),
		cameFrom:   make(map[Position]Position),
		gScore:     map[Position]int{start: 0},
		neighbors:  make([]Position, 0, 4),
	}
	heap.Init(s.openSet)

	if blockedEndpoint {
		s.done = true
		return s, nil
	}

	startItem := &frontierItem{pos: start, g: 0, h: manhattan(start, goal)}
	startItem.f = startItem.h
	heap.Push(s.openSet, startItem)
	s.openSetMap[start] = startItem
	return s, nil
}

// Step finalizes the next node and returns a snapshot of the search state.
// Once the snapshot reports Done, further calls return the terminal state
// unchanged.
func (s *Stepper) Step() StepSnapshot {
	if s.done {
		return s.snapshot(Position{})
	}

	// Pop until a non-finalized entry surfaces or the frontier empties.
	var currentItem *frontierItem
	for s.openSet.Len() > 0 {
		item := heap.Pop(s.openSet).(*frontierItem)
		delete(s.openSetMap, item.pos)
		if !s.closedSet[item.pos] {
			currentItem = item
			break
		}
	}
	if currentItem == nil {
		s.done = true
		return s.snapshot(Position{})
	}

	current := currentItem.pos
	s.stepCount++
	s.closedSet[current] = true

	if current == s.goal {
		s.done = true
		s.found = true
		s.path = reconstructPath(s.cameFrom, current, s.start)
		return s.snapshot(current)
	}

	s.neighbors = s.grid.appendNeighbors(s.neighbors[:0], current)
	for _, neighbor := range s.neighbors {
		if s.closedSet[neighbor] {
			continue
		}
		tentativeG := currentItem.g + 1
		if knownG, exists := s.gScore[neighbor]; exists && tentativeG >= knownG {
			continue
		}
		s.gScore[neighbor] = tentativeG
		s.cameFrom[neighbor] = current
		h := manhattan(neighbor, s.goal)
		if item, inOpen := s.openSetMap[neighbor]; inOpen {
			item.g = tentativeG
			item.h = h
			item.f = tentativeG + h
			heap.Fix(s.openSet, item.indexInQueue)
		} else {
			item = &frontierItem{pos: neighbor, g: tentativeG, h: h, f: tentativeG + h}
			heap.Push(s.openSet, item)
			s.openSetMap[neighbor] = item
		}
	}

	return s.snapshot(current)
}

func (s *Stepper) snapshot(current Position) StepSnapshot {
	open := make(map[Position]bool, len(s.openSetMap))
	for pos := range s.openSetMap {
		open[pos] = true
	}
	return StepSnapshot{
		Current:   current,
		Open:      open,
		Closed:    maps.Clone(s.closedSet),
		CameFrom:  maps.Clone(s.cameFrom),
		Done:      s.done,
		Found:     s.found,
		Path:      slices.Clone(s.path),
		StepIndex: s.stepCount,
	}
}
