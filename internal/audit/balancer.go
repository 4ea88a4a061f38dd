package audit

import (
	"log"

	"github.com/bravoaudit/engine/internal/models"
)

// maxLPTMoves caps the number of improving moves the balancer's
// refinement pass will attempt, mirroring the teacher's combinatorial
// solvers (e.g. its CP-SAT-style matcher) refusing to run unbounded
// search on pathological input sizes.
const maxLPTMoves = 100_000

// BoardAssignment is the balancer's output: which batches (by name)
// landed on which audit board, in board-supplied order.
type BoardAssignment struct {
	BoardName string
	Batches   []string
	Load      int // distinct sampled ballots assigned to this board across its batches
}

// Balance partitions drawn ballots across audit boards by batch, so
// that each board gets a roughly equal share of the sampled ballots
// while every batch stays on exactly one board (spec §4.4).
//
// draws is the full draw sequence for a round (as produced by
// DrawSample); manifest supplies the batch order used to seed the
// round-robin assignment; boardNames is the ordered list of audit
// boards to assign to.
func Balance(draws []Draw, manifest []models.Batch, boardNames []string) []BoardAssignment {
	if len(boardNames) == 0 {
		return nil
	}

	byBatch := BatchDraws(draws)
	load := make(map[string]int, len(byBatch))
	for name, batchDraws := range byBatch {
		load[name] = UniqueBallotCount(batchDraws)
	}
	orderedBatches := manifestOrderedBatchNames(manifest, byBatch)

	boards := make([]BoardAssignment, len(boardNames))
	for i, name := range boardNames {
		boards[i] = BoardAssignment{BoardName: name}
	}
	batchBoard := make(map[string]int, len(orderedBatches)) // batch name -> index into boards

	// Round-robin seed, in manifest order.
	for i, name := range orderedBatches {
		b := i % len(boards)
		boards[b].Batches = append(boards[b].Batches, name)
		boards[b].Load += load[name]
		batchBoard[name] = b
	}

	refineLPT(boards, batchBoard, load)
	return boards
}

// refineLPT repeatedly moves a batch from the most-loaded board to the
// least-loaded board when doing so reduces the maximum load, stopping
// when no single move improves it. Ties break by board index (the
// order boards were supplied in), matching spec §4.4.
func refineLPT(boards []BoardAssignment, batchBoard map[string]int, load map[string]int) {
	for move := 0; move < maxLPTMoves; move++ {
		heavy, light := extremeBoards(boards)
		if heavy == light {
			return
		}
		batchIdx, ok := bestMoveCandidate(boards[heavy], boards[light], load)
		if !ok {
			return
		}
		batchName := boards[heavy].Batches[batchIdx]
		boards[heavy].Batches = append(boards[heavy].Batches[:batchIdx], boards[heavy].Batches[batchIdx+1:]...)
		boards[heavy].Load -= load[batchName]
		boards[light].Batches = append(boards[light].Batches, batchName)
		boards[light].Load += load[batchName]
		batchBoard[batchName] = light
	}
	log.Printf("[BALANCER] refinement hit the %d-move cap; stopping with current assignment", maxLPTMoves)
}

// extremeBoards returns the indices of the most- and least-loaded
// boards, each breaking ties toward the lowest index.
func extremeBoards(boards []BoardAssignment) (heavy, light int) {
	for i, b := range boards {
		if b.Load > boards[heavy].Load {
			heavy = i
		}
		if b.Load < boards[light].Load {
			light = i
		}
	}
	return heavy, light
}

// bestMoveCandidate finds a batch on the heavy board whose move to the
// light board reduces the resulting max(heavyLoad', lightLoad') the
// most. The light board may end up heavier than the heavy one, as long
// as that pair's max load drops. Returns false if no single move
// improves the max load.
func bestMoveCandidate(heavy, light BoardAssignment, load map[string]int) (int, bool) {
	currentMax := heavy.Load
	bestIdx := -1
	bestMax := currentMax
	for i, batchName := range heavy.Batches {
		w := load[batchName]
		newHeavy := heavy.Load - w
		newLight := light.Load + w
		candidateMax := newHeavy
		if newLight > candidateMax {
			candidateMax = newLight
		}
		if candidateMax < bestMax {
			bestMax = candidateMax
			bestIdx = i
		}
	}
	if bestIdx == -1 {
		return 0, false
	}
	return bestIdx, true
}
