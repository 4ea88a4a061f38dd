package audit

import (
	"reflect"
	"testing"

	"github.com/bravoaudit/engine/internal/models"
)

func threeBatchManifest() []models.Batch {
	return []models.Batch{
		{Name: "batch-1", NumBallots: 100},
		{Name: "batch-2", NumBallots: 250},
		{Name: "batch-3", NumBallots: 50},
	}
}

func TestDrawSample_Deterministic(t *testing.T) {
	manifest := threeBatchManifest()
	seed := "12345678901234567890"

	first, err := DrawSample(seed, manifest, 20, 0)
	if err != nil {
		t.Fatalf("DrawSample returned error: %v", err)
	}
	second, err := DrawSample(seed, manifest, 20, 0)
	if err != nil {
		t.Fatalf("DrawSample returned error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("two draws with the same seed/manifest/size must be identical")
	}
}

func TestDrawSample_DrawOrderDeterminism(t *testing.T) {
	manifest := threeBatchManifest()
	seed := "seed-order"

	small, err := DrawSample(seed, manifest, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	large, err := DrawSample(seed, manifest, 30, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range small {
		if small[i].Ticket != large[i].Ticket || small[i].BatchName != large[i].BatchName || small[i].Position != large[i].Position {
			t.Fatalf("draw %d differs between size=10 and size=30 samples: %+v vs %+v", i, small[i], large[i])
		}
	}
}

func TestDrawSample_ExtensionEquivalence(t *testing.T) {
	manifest := threeBatchManifest()
	seed := "seed-extend"

	first15, err := DrawSample(seed, manifest, 15, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	next10, err := DrawSample(seed, manifest, 10, 15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	full25, err := DrawSample(seed, manifest, 25, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	combined := append(append([]Draw(nil), first15...), next10...)
	for i := range full25 {
		if combined[i].Ticket != full25[i].Ticket ||
			combined[i].BatchName != full25[i].BatchName ||
			combined[i].Position != full25[i].Position {
			t.Fatalf("extension equivalence violated at draw %d: %+v vs %+v", i, combined[i], full25[i])
		}
	}
}

func TestDrawSample_DifferentSeedsDiverge(t *testing.T) {
	manifest := threeBatchManifest()

	a, err := DrawSample("seed-a", manifest, 50, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := DrawSample("seed-b", manifest, 50, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	same := true
	for i := range a {
		if a[i].BatchName != b[i].BatchName || a[i].Position != b[i].Position {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("two different seeds produced an identical draw sequence; sampler is not seed-sensitive")
	}
}

func TestDrawSample_RejectsEmptyManifest(t *testing.T) {
	if _, err := DrawSample("seed", nil, 5, 0); err == nil {
		t.Fatalf("expected an error for an empty manifest")
	}
}

func TestDrawSample_RejectsDuplicateBatchNames(t *testing.T) {
	manifest := []models.Batch{
		{Name: "dup", NumBallots: 10},
		{Name: "dup", NumBallots: 20},
	}
	if _, err := DrawSample("seed", manifest, 5, 0); err == nil {
		t.Fatalf("expected an error for duplicate batch names")
	}
}

func TestBatchDraws_GroupsByBatchPreservingOrder(t *testing.T) {
	manifest := threeBatchManifest()
	draws, err := DrawSample("seed-group", manifest, 40, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	grouped := BatchDraws(draws)

	total := 0
	for name, ds := range grouped {
		total += len(ds)
		var want []Draw
		for _, d := range draws {
			if d.BatchName == name {
				want = append(want, d)
			}
		}
		if !reflect.DeepEqual(ds, want) {
			t.Errorf("batch %q group should keep its draws in original draw order: got %+v, want %+v", name, ds, want)
		}
	}
	if total != len(draws) {
		t.Errorf("grouped draw count %d != total draw count %d", total, len(draws))
	}
}

func TestUniqueBallotCount_NeverExceedsDrawCount(t *testing.T) {
	manifest := threeBatchManifest()
	draws, err := DrawSample("seed-unique", manifest, 300, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	unique := UniqueBallotCount(draws)
	if unique > len(draws) {
		t.Errorf("unique ballot count %d exceeds draw count %d", unique, len(draws))
	}
	if unique == 0 {
		t.Errorf("expected at least one unique ballot from a non-empty draw")
	}
}
