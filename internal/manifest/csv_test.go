package manifest

import (
	"strings"
	"testing"
)

func TestParse_HappyPath(t *testing.T) {
	input := "Batch Name,Number of Ballots,Storage Location,Tabulator\n" +
		"Batch 1,100,Shelf A,Tab1\n" +
		"Batch 2,250,Shelf B,Tab2\n"

	result, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.NumBatches != 2 {
		t.Fatalf("expected 2 batches, got %d", result.NumBatches)
	}
	if result.NumBallots != 350 {
		t.Errorf("expected 350 total ballots, got %d", result.NumBallots)
	}
	if result.Batches[0].Name != "Batch 1" || result.Batches[0].StorageLocation != "Shelf A" {
		t.Errorf("unexpected first batch: %+v", result.Batches[0])
	}
}

func TestParse_RequiredColumnsOnly(t *testing.T) {
	input := "Batch Name,Number of Ballots\nB1,10\n"
	result, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Batches[0].StorageLocation != "" || result.Batches[0].Tabulator != "" {
		t.Errorf("optional columns should default to empty: %+v", result.Batches[0])
	}
}

func TestParse_MissingRequiredColumn(t *testing.T) {
	input := "Batch Name\nB1\n"
	if _, err := Parse(strings.NewReader(input)); err == nil {
		t.Fatalf("expected an error for a missing required column")
	}
}

func TestParse_InvalidBallotCount(t *testing.T) {
	input := "Batch Name,Number of Ballots\nB1,not-a-number\n"
	if _, err := Parse(strings.NewReader(input)); err == nil {
		t.Fatalf("expected an error for a non-numeric ballot count")
	}
}

func TestParse_CommaGroupedBallotCount(t *testing.T) {
	if n, err := parseBallotCount("1,234"); err != nil || n != 1234 {
		t.Errorf("expected comma-grouped count to parse as 1234, got %d, err=%v", n, err)
	}
}

func TestParse_RejectsEmptyBatchName(t *testing.T) {
	input := "Batch Name,Number of Ballots\n,10\n"
	if _, err := Parse(strings.NewReader(input)); err == nil {
		t.Fatalf("expected an error for an empty batch name")
	}
}

func TestParse_RejectsNonPositiveBallotCount(t *testing.T) {
	for _, count := range []string{"0", "-5"} {
		input := "Batch Name,Number of Ballots\nB1," + count + "\n"
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Errorf("expected an error for ballot count %q", count)
		}
	}
}

func TestParse_EmptyManifestRejected(t *testing.T) {
	if _, err := Parse(strings.NewReader("")); err == nil {
		t.Fatalf("expected an error for an empty manifest")
	}
}

func TestParse_NoDataRowsRejected(t *testing.T) {
	input := "Batch Name,Number of Ballots\n"
	if _, err := Parse(strings.NewReader(input)); err == nil {
		t.Fatalf("expected an error for a manifest with no batch rows")
	}
}
