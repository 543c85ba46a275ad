package gridastar

// manhattan returns |a.Row-b.Row| + |a.Col-b.Col|. For 4-directional
// unit-cost movement it never overestimates the true remaining cost and is
// consistent, so the first time the goal is popped its g value is the true
// shortest distance.
func manhattan(a, b Position) int {
	dr := a.Row - b.Row
	if dr < 0 {
		dr = -dr
	}
	dc := a.Col - b.Col
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}
