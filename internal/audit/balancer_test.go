package audit

import (
	"testing"

	"github.com/bravoaudit/engine/internal/models"
)

func TestBalance_EveryBatchAssignedToExactlyOneBoard(t *testing.T) {
	manifest := []models.Batch{
		{Name: "b1", NumBallots: 100},
		{Name: "b2", NumBallots: 400},
		{Name: "b3", NumBallots: 50},
		{Name: "b4", NumBallots: 300},
	}
	draws, err := DrawSample("balancer-seed", manifest, 200, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	boards := Balance(draws, manifest, []string{"board-1", "board-2"})

	seen := make(map[string]string)
	for _, b := range boards {
		for _, batch := range b.Batches {
			if other, ok := seen[batch]; ok {
				t.Fatalf("batch %q assigned to both %q and %q", batch, other, b.BoardName)
			}
			seen[batch] = b.BoardName
		}
	}
	touched := manifestOrderedBatchNames(manifest, BatchDraws(draws))
	if len(seen) != len(touched) {
		t.Errorf("expected all %d touched batches assigned, got %d", len(touched), len(seen))
	}
}

func TestBalance_LoadsAreReasonablyEven(t *testing.T) {
	manifest := []models.Batch{
		{Name: "b1", NumBallots: 1000},
		{Name: "b2", NumBallots: 1000},
		{Name: "b3", NumBallots: 1000},
		{Name: "b4", NumBallots: 1000},
	}
	draws, err := DrawSample("balancer-even", manifest, 400, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	boards := Balance(draws, manifest, []string{"board-1", "board-2"})
	if len(boards) != 2 {
		t.Fatalf("expected 2 boards, got %d", len(boards))
	}
	diff := boards[0].Load - boards[1].Load
	if diff < 0 {
		diff = -diff
	}
	maxLoad := boards[0].Load
	if boards[1].Load > maxLoad {
		maxLoad = boards[1].Load
	}
	if maxLoad > 0 && float64(diff)/float64(maxLoad) > 0.5 {
		t.Errorf("load imbalance too large: board loads %d vs %d", boards[0].Load, boards[1].Load)
	}
}

func TestBalance_NoBoardsReturnsNil(t *testing.T) {
	manifest := []models.Batch{{Name: "b1", NumBallots: 10}}
	draws, err := DrawSample("seed", manifest, 5, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := Balance(draws, manifest, nil); got != nil {
		t.Errorf("expected nil assignment with no boards, got %+v", got)
	}
}

func TestBalance_SingleBoardGetsEverything(t *testing.T) {
	manifest := []models.Batch{
		{Name: "b1", NumBallots: 100},
		{Name: "b2", NumBallots: 200},
	}
	draws, err := DrawSample("seed-single", manifest, 60, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	boards := Balance(draws, manifest, []string{"only-board"})
	if len(boards) != 1 {
		t.Fatalf("expected 1 board, got %d", len(boards))
	}
	if len(boards[0].Batches) != len(manifestOrderedBatchNames(manifest, BatchDraws(draws))) {
		t.Errorf("the single board should receive every touched batch")
	}
}
