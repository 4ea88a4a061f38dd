package manifest

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
)

// RetrievalRow is one ballot to physically pull for hand counting, as
// listed on the round's retrieval list (spec §6).
type RetrievalRow struct {
	BatchName       string
	BallotNumber    int // 1-indexed
	StorageLocation string
	Tabulator       string
	TicketNumbers   []string
	AlreadyAudited  bool
	AuditBoard      string
}

// WriteRetrievalList writes the round's retrieval-list CSV, rows
// ordered by (audit board name, batch name, ballot position) as spec'd.
// Callers are expected to have already deduped rows by physical ballot;
// this function only orders and formats.
func WriteRetrievalList(w io.Writer, rows []RetrievalRow) error {
	sorted := append([]RetrievalRow(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].AuditBoard != sorted[j].AuditBoard {
			return sorted[i].AuditBoard < sorted[j].AuditBoard
		}
		if sorted[i].BatchName != sorted[j].BatchName {
			return sorted[i].BatchName < sorted[j].BatchName
		}
		return sorted[i].BallotNumber < sorted[j].BallotNumber
	})

	writer := csv.NewWriter(w)
	header := []string{
		"Batch Name", "Ballot Number", "Storage Location", "Tabulator",
		"Ticket Numbers", "Already Audited", "Audit Board",
	}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, row := range sorted {
		alreadyAudited := "N"
		if row.AlreadyAudited {
			alreadyAudited = "Y"
		}
		tickets := append([]string(nil), row.TicketNumbers...)
		sort.Strings(tickets)
		record := []string{
			row.BatchName,
			fmt.Sprintf("%d", row.BallotNumber),
			row.StorageLocation,
			row.Tabulator,
			strings.Join(tickets, ","),
			alreadyAudited,
			row.AuditBoard,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// ReportRoundContest is one round's contribution to the audit report.
type ReportRoundContest struct {
	RoundNum     int
	SampleSize   int
	AuditedVotes map[string]int // choice name -> audited count
	PValue       float64
	RiskLimitMet bool
	StartedAt    time.Time
	EndedAt      *time.Time
	Samples      []ReportSample
}

// ReportSample is one (batch, position, ticket) entry in a round's
// explicit sample list.
type ReportSample struct {
	BatchName string
	Position  int
	Ticket    string
}

// ReportContest is the report's per-contest section (spec §6).
type ReportContest struct {
	Name             string
	NumWinners       int
	VotesAllowed     int
	TotalBallotsCast int
	ReportedVotes    map[string]int // choice name -> reported count
	RiskLimit        int
	Seed             string
	Rounds           []ReportRoundContest
}

// WriteReport writes the final audit report CSV: per-contest totals,
// per-round sample sizes/audited counts/p-values/timestamps, and the
// explicit list of samples drawn each round (spec §6).
func WriteReport(w io.Writer, contests []ReportContest) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	for _, c := range contests {
		if err := writeContestHeader(writer, c); err != nil {
			return err
		}
		for _, r := range c.Rounds {
			if err := writeRoundSection(writer, r); err != nil {
				return err
			}
		}
		if err := writer.Write([]string{}); err != nil {
			return err
		}
	}
	return writer.Error()
}

func writeContestHeader(writer *csv.Writer, c ReportContest) error {
	rows := [][]string{
		{"Contest Name", c.Name},
		{"Winners", fmt.Sprintf("%d", c.NumWinners)},
		{"Votes Allowed", fmt.Sprintf("%d", c.VotesAllowed)},
		{"Total Ballots Cast", fmt.Sprintf("%d", c.TotalBallotsCast)},
		{"Risk Limit", fmt.Sprintf("%d%%", c.RiskLimit)},
		{"Random Seed", c.Seed},
	}
	names := sortedKeys(c.ReportedVotes)
	rows = append(rows, append([]string{"Reported Votes"}, names...))
	values := make([]string, len(names))
	for i, name := range names {
		values[i] = fmt.Sprintf("%d", c.ReportedVotes[name])
	}
	rows = append(rows, append([]string{""}, values...))

	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeRoundSection(writer *csv.Writer, r ReportRoundContest) error {
	endedAt := ""
	if r.EndedAt != nil {
		endedAt = r.EndedAt.Format(time.RFC3339)
	}
	met := "N"
	if r.RiskLimitMet {
		met = "Y"
	}

	header := []string{
		fmt.Sprintf("Round %d", r.RoundNum),
		"Sample Size", fmt.Sprintf("%d", r.SampleSize),
		"P-Value", fmt.Sprintf("%.6f", r.PValue),
		"Risk Limit Met", met,
		"Started", r.StartedAt.Format(time.RFC3339),
		"Ended", endedAt,
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	names := sortedKeys(r.AuditedVotes)
	auditedHeader := append([]string{"Audited Votes"}, names...)
	if err := writer.Write(auditedHeader); err != nil {
		return err
	}
	values := make([]string, len(names))
	for i, name := range names {
		values[i] = fmt.Sprintf("%d", r.AuditedVotes[name])
	}
	if err := writer.Write(append([]string{""}, values...)); err != nil {
		return err
	}

	if err := writer.Write([]string{"Batch", "Position", "Ticket Number"}); err != nil {
		return err
	}
	for _, s := range r.Samples {
		if err := writer.Write([]string{s.BatchName, fmt.Sprintf("%d", s.Position), s.Ticket}); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
