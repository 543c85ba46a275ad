package gridastar

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepToEnd drives the stepper until it reports Done, guarding against a
// runaway loop with the grid's cell count.
func stepToEnd(t *testing.T, s *Stepper, grid *Grid) StepSnapshot {
	t.Helper()
	limit := grid.Rows()*grid.Cols() + 1
	for i := 0; i < limit; i++ {
		snapshot := s.Step()
		if snapshot.Done {
			return snapshot
		}
	}
	t.Fatalf("stepper did not finish within %d steps", limit)
	return StepSnapshot{}
}

func TestStepperReachesGoal(t *testing.T) {
	grid := mustGrid(t, []string{
		".....",
		"####.",
		".....",
	})
	start := Position{Row: 0, Col: 0}
	goal := Position{Row: 2, Col: 0}

	want, err := FindPath(context.Background(), grid, start, goal)
	require.NoError(t, err)
	require.True(t, want.Found)

	stepper, err := NewStepper(grid, start, goal)
	require.NoError(t, err)
	final := stepToEnd(t, stepper, grid)

	assert.True(t, final.Found)
	assert.Equal(t, want.Path, final.Path)
	assert.Equal(t, want.Expanded, final.StepIndex, "stepper must expand the same nodes as FindPath")
}

func TestStepperSnapshotsTrackExpansion(t *testing.T) {
	grid := mustGrid(t, []string{
		"...",
		"...",
		"...",
	})
	stepper, err := NewStepper(grid, Position{Row: 0, Col: 0}, Position{Row: 2, Col: 2})
	require.NoError(t, err)

	for i := 1; ; i++ {
		snapshot := stepper.Step()
		assert.Equal(t, i, snapshot.StepIndex)
		assert.Len(t, snapshot.Closed, i, "one node finalized per step")
		assert.True(t, snapshot.Closed[snapshot.Current], "current node must be finalized")
		if snapshot.Done {
			assert.True(t, snapshot.Found)
			break
		}
	}
}

func TestStepperUnreachableGoal(t *testing.T) {
	grid := mustGrid(t, []string{
		".#.",
		"###",
		"...",
	})
	stepper, err := NewStepper(grid, Position{Row: 0, Col: 0}, Position{Row: 2, Col: 2})
	require.NoError(t, err)

	final := stepToEnd(t, stepper, grid)
	assert.False(t, final.Found)
	assert.Empty(t, final.Path)
}

func TestStepperStartEqualsGoal(t *testing.T) {
	grid := mustGrid(t, []string{
		"...",
		"...",
	})
	p := Position{Row: 1, Col: 1}
	stepper, err := NewStepper(grid, p, p)
	require.NoError(t, err)

	snapshot := stepper.Step()
	assert.True(t, snapshot.Done)
	assert.True(t, snapshot.Found)
	assert.Equal(t, []Position{p}, snapshot.Path)
	assert.Equal(t, 1, snapshot.StepIndex)
}

func TestStepperBlockedStart(t *testing.T) {
	grid := mustGrid(t, []string{
		"#..",
		"...",
	})
	stepper, err := NewStepper(grid, Position{Row: 0, Col: 0}, Position{Row: 1, Col: 2})
	require.NoError(t, err)

	snapshot := stepper.Step()
	assert.True(t, snapshot.Done)
	assert.False(t, snapshot.Found)
	assert.Zero(t, snapshot.StepIndex)
}

func TestStepperInvalidInput(t *testing.T) {
	grid := mustGrid(t, []string{
		"...",
	})

	_, err := NewStepper(grid, Position{Row: 0, Col: -1}, Position{Row: 0, Col: 2})
	assert.ErrorIs(t, err, ErrOutOfBounds)

	_, err = NewStepper(nil, Position{}, Position{})
	assert.ErrorIs(t, err, ErrEmptyGrid)
}

func TestStepperSnapshotIsolation(t *testing.T) {
	grid := mustGrid(t, []string{
		"...",
		"...",
		"...",
	})
	start := Position{Row: 0, Col: 0}
	goal := Position{Row: 2, Col: 2}

	stepper, err := NewStepper(grid, start, goal)
	require.NoError(t, err)

	snapshot := stepper.Step()
	// Corrupting the copies must not disturb the search.
	for pos := range snapshot.Open {
		snapshot.Closed[pos] = true
		delete(snapshot.Open, pos)
	}
	snapshot.CameFrom[goal] = start

	final := stepToEnd(t, stepper, grid)
	require.True(t, final.Found)
	assertValidPath(t, grid, final.Path, start, goal)
}

func TestStepperTerminalStateIsStable(t *testing.T) {
	grid := mustGrid(t, []string{
		"..",
		"..",
	})
	stepper, err := NewStepper(grid, Position{Row: 0, Col: 0}, Position{Row: 1, Col: 1})
	require.NoError(t, err)

	final := stepToEnd(t, stepper, grid)
	require.True(t, final.Done)

	again := stepper.Step()
	assert.True(t, again.Done)
	assert.Equal(t, final.Found, again.Found)
	assert.Equal(t, final.StepIndex, again.StepIndex)
	assert.Equal(t, final.Path, again.Path)
}
