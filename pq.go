package gridastar

// frontierItem is one entry in the open set.
type frontierItem struct {
	pos          Position
	g            int // cost from start
	h            int // heuristic estimate to goal
	f            int // g + h, the expansion priority
	indexInQueue int
	seq          int // insertion order, assigned by Push
}

// priorityQueue is a container/heap min-heap over frontier items. Ties on f
// are broken by lower h (nodes closer to the goal first), then by earlier
// insertion, so expansion order is fully deterministic.
type priorityQueue struct {
	items   []*frontierItem
	nextSeq int
}

func (queue *priorityQueue) Len() int { return len(queue.items) }

func (queue *priorityQueue) Less(i, j int) bool {
	a, b := queue.items[i], queue.items[j]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.h != b.h {
		return a.h < b.h
	}
	return a.seq < b.seq
}

func (queue *priorityQueue) Swap(i, j int) {
	queue.items[i], queue.items[j] = queue.items[j], queue.items[i]
	queue.items[i].indexInQueue = i
	queue.items[j].indexInQueue = j
}

func (queue *priorityQueue) Push(x any) {
	item := x.(*frontierItem)
	item.indexInQueue = len(queue.items)
	item.seq = queue.nextSeq
	queue.nextSeq++
	queue.items = append(queue.items, item)
}

func (queue *priorityQueue) Pop() any {
	oldItems := queue.items
	n := len(oldItems)
	item := oldItems[n-1]
	oldItems[n-1] = nil
	queue.items = oldItems[:n-1]
	item.indexInQueue = -1
	return item
}
