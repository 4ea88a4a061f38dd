package manifest

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteRetrievalList_OrdersByBoardThenBatchThenPosition(t *testing.T) {
	rows := []RetrievalRow{
		{BatchName: "B", BallotNumber: 2, AuditBoard: "Board 1", TicketNumbers: []string{"0.2"}},
		{BatchName: "A", BallotNumber: 1, AuditBoard: "Board 1", TicketNumbers: []string{"0.1"}},
		{BatchName: "A", BallotNumber: 1, AuditBoard: "Board 0", TicketNumbers: []string{"0.05"}},
	}
	var buf bytes.Buffer
	if err := WriteRetrievalList(&buf, rows); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines: %v", len(lines), lines)
	}
	if !strings.Contains(lines[1], "Board 0") {
		t.Errorf("expected Board 0's row first, got %q", lines[1])
	}
	if !strings.Contains(lines[2], "A,1") && !strings.Contains(lines[2], "A,1,") {
		t.Errorf("expected batch A before batch B within Board 1, got %q", lines[2])
	}
}

func TestWriteRetrievalList_MarksAlreadyAuditedAndJoinsTickets(t *testing.T) {
	rows := []RetrievalRow{
		{BatchName: "A", BallotNumber: 1, AuditBoard: "Board 0", TicketNumbers: []string{"0.3", "0.1"}, AlreadyAudited: true},
	}
	var buf bytes.Buffer
	if err := WriteRetrievalList(&buf, rows); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "0.1,0.3") {
		t.Errorf("expected ascending-sorted ticket numbers, got %q", out)
	}
	if !strings.Contains(out, ",Y,") {
		t.Errorf("expected Already Audited=Y, got %q", out)
	}
}

func TestWriteRetrievalList_EmptyRowsProducesHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRetrievalList(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected only the header row, got %v", lines)
	}
}

func TestWriteReport_IncludesContestAndRoundSections(t *testing.T) {
	contests := []ReportContest{
		{
			Name:             "Mayor",
			NumWinners:       1,
			VotesAllowed:     1,
			TotalBallotsCast: 1000,
			ReportedVotes:    map[string]int{"Alice": 600, "Bob": 400},
			RiskLimit:        10,
			Seed:             "election-seed",
			Rounds: []ReportRoundContest{
				{
					RoundNum:     1,
					SampleSize:   119,
					AuditedVotes: map[string]int{"Alice": 70, "Bob": 49},
					PValue:       0.07,
					RiskLimitMet: true,
					Samples: []ReportSample{
						{BatchName: "batch-1", Position: 3, Ticket: "0.001"},
					},
				},
			},
		},
	}
	var buf bytes.Buffer
	if err := WriteReport(&buf, contests); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Mayor", "election-seed", "Round 1", "batch-1", "0.001"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected report to contain %q, got:\n%s", want, out)
		}
	}
}
