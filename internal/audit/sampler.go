package audit

import (
	"crypto/sha256"
	"fmt"
	"math/big"

	"github.com/bravoaudit/engine/internal/auditerr"
	"github.com/bravoaudit/engine/internal/models"
)

// ticketPrecision is the number of decimal digits kept in a ticket
// number's fraction. 20 digits (~66 bits) makes two distinct draws
// landing on the same ticket astronomically improbable while staying
// well clear of float64's 53-bit mantissa, so tickets are computed with
// math/big rather than float arithmetic.
const ticketPrecision = 20

var ticketModulus = new(big.Int).Exp(big.NewInt(10), big.NewInt(ticketPrecision), nil)

// Draw is a single entry in the ordered sample sequence: the ticket
// number that produced it, the physical ballot it landed on, and how
// many times that physical ballot has been hit so far (including this
// draw).
type Draw struct {
	Ticket    string
	BatchName string
	// Position is 0-indexed, matching the canonical linearization.
	Position  int
	DrawIndex int
}

// manifestSlot is one entry in the canonical linearization of a
// manifest: batches in manifest order, positions 0..N_b-1 within each.
type manifestSlot struct {
	batchName string
	position  int
}

// linearize builds the canonical (batch, position) sequence and total
// ballot count for a manifest, validating batch-name uniqueness.
func linearize(manifest []models.Batch) ([]manifestSlot, int, error) {
	seen := make(map[string]bool, len(manifest))
	var slots []manifestSlot
	for _, b := range manifest {
		if b.Name == "" {
			return nil, 0, auditerr.InputValidation("name", "manifest batch has an empty name")
		}
		if seen[b.Name] {
			return nil, 0, auditerr.InputValidation("name", "duplicate batch name %q in manifest", b.Name)
		}
		seen[b.Name] = true
		if b.NumBallots <= 0 {
			return nil, 0, auditerr.InputValidation("numBallots", "batch %q has non-positive ballot count %d", b.Name, b.NumBallots)
		}
		for p := 0; p < b.NumBallots; p++ {
			slots = append(slots, manifestSlot{batchName: b.Name, position: p})
		}
	}
	return slots, len(slots), nil
}

// ticketNumber computes the deterministic SHA-256-derived ticket for
// draw k under the given seed, returning both its lexicographically
// sortable decimal-string form and the numerator used to pick a slot.
func ticketNumber(seed string, k int) (ticketStr string, numerator *big.Int) {
	digest := sha256.Sum256([]byte(fmt.Sprintf("%s|%d", seed, k)))
	full := new(big.Int).SetBytes(digest[:])
	numerator = new(big.Int).Mod(full, ticketModulus)
	return fmt.Sprintf("0.%0*s", ticketPrecision, numerator.String()), numerator
}

// slotForTicket maps a ticket numerator to a global slot index via
// floor(ticket * total_ballots), computed exactly in integer
// arithmetic (numerator * total / 10^ticketPrecision).
func slotForTicket(numerator *big.Int, total int) int {
	n := new(big.Int).Mul(numerator, big.NewInt(int64(total)))
	n.Div(n, ticketModulus)
	return int(n.Int64())
}

// DrawSample produces the deterministic, reproducible ordered sequence
// of ballot draws for (seed, manifest, size, alreadyDrawn), per spec
// §4.3: size new draws, numbered k = alreadyDrawn+1 .. alreadyDrawn+size.
//
// Calling DrawSample(seed, manifest, n, 0) and DrawSample(seed,
// manifest, n+k, 0) share the first n entries (draw-order determinism);
// calling DrawSample(seed, manifest, n2-n1, n1) for n1 <= n2 yields
// exactly DrawSample(seed, manifest, n2, 0)[n1:] (extension
// equivalence) — both invariants hold because draw k's ticket depends
// only on (seed, k), never on prior draws. DrawIndex also counts the
// hits among the alreadyDrawn earlier draws.
func DrawSample(seed string, manifest []models.Batch, size, alreadyDrawn int) ([]Draw, error) {
	if size < 0 || alreadyDrawn < 0 {
		return nil, auditerr.InputValidation("size", "size and alreadyDrawn must be non-negative")
	}
	slots, total, err := linearize(manifest)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, auditerr.InputValidation("manifest", "manifest has no ballots")
	}

	draws := make([]Draw, size)
	counts := make(map[manifestSlot]int, size)
	for k := 1; k <= alreadyDrawn; k++ {
		_, numerator := ticketNumber(seed, k)
		idx := slotForTicket(numerator, total)
		if idx >= total {
			idx = total - 1
		}
		counts[slots[idx]]++
	}
	for i := 0; i < size; i++ {
		k := alreadyDrawn + i + 1
		ticketStr, numerator := ticketNumber(seed, k)
		idx := slotForTicket(numerator, total)
		if idx >= total {
			idx = total - 1 // ticket == 1.0 in the limit; clamp to last slot
		}
		slot := slots[idx]
		counts[slot]++
		draws[i] = Draw{
			Ticket:    ticketStr,
			BatchName: slot.batchName,
			Position:  slot.position,
			DrawIndex: counts[slot],
		}
	}
	return draws, nil
}

// BatchDraws groups an ordered draw sequence by batch name, for
// handoff to the balancer. Within each batch, entries keep their
// original draw order.
func BatchDraws(draws []Draw) map[string][]Draw {
	out := make(map[string][]Draw)
	for _, d := range draws {
		out[d.BatchName] = append(out[d.BatchName], d)
	}
	return out
}

// UniqueBallotCount returns how many distinct physical (batch,
// position) ballots appear in a draw sequence — the number of
// SampledBallot rows a draw sequence would create (as opposed to
// SampledBallotDraw rows, one per entry).
func UniqueBallotCount(draws []Draw) int {
	seen := make(map[manifestSlot]bool, len(draws))
	for _, d := range draws {
		seen[manifestSlot{d.BatchName, d.Position}] = true
	}
	return len(seen)
}

// manifestOrderedBatchNames returns the batch names touched by a set of
// draws, in manifest order — used by the balancer's round-robin seed
// step, which must be deterministic given a deterministic input order.
func manifestOrderedBatchNames(manifest []models.Batch, touched map[string][]Draw) []string {
	var names []string
	for _, b := range manifest {
		if _, ok := touched[b.Name]; ok {
			names = append(names, b.Name)
		}
	}
	return names
}
