// Package manifest parses jurisdiction ballot manifests and writes the
// CSV artifacts the audit boundary hands back out: the retrieval list
// and the final audit report (spec §6).
package manifest

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/bravoaudit/engine/internal/auditerr"
	"github.com/bravoaudit/engine/internal/models"
)

const (
	columnBatchName       = "Batch Name"
	columnNumberOfBallots = "Number of Ballots"
	columnStorageLocation = "Storage Location"
	columnTabulator       = "Tabulator"
)

// ParseResult is the outcome of a successful manifest parse: the
// batches and the aggregate counts the jurisdiction record is updated
// with.
type ParseResult struct {
	Batches    []models.Batch
	NumBatches int
	NumBallots int
}

// Parse reads a manifest CSV per spec §6's required/optional column
// list. "Batch Name" and "Number of Ballots" are required; "Storage
// Location" and "Tabulator" are optional and left empty when absent.
// Ballot counts are parsed with comma-grouping tolerance, mirroring the
// original's locale-aware integer parse.
func Parse(r io.Reader) (ParseResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return ParseResult{}, auditerr.InputValidation("manifest", "manifest CSV is empty")
	}
	if err != nil {
		return ParseResult{}, auditerr.InputValidation("manifest", "could not parse manifest CSV header: %v", err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.TrimSpace(col)] = i
	}

	var missing []string
	for _, required := range []string{columnBatchName, columnNumberOfBallots} {
		if _, ok := index[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return ParseResult{}, auditerr.InputValidation("manifest", "missing required CSV field(s): %s", strings.Join(missing, ", "))
	}

	storageIdx, hasStorage := index[columnStorageLocation]
	tabulatorIdx, hasTabulator := index[columnTabulator]
	nameIdx := index[columnBatchName]
	ballotsIdx := index[columnNumberOfBallots]

	var result ParseResult
	lineNum := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return ParseResult{}, auditerr.InputValidation("manifest", "error reading manifest CSV: %v", err)
		}
		lineNum++

		if strings.TrimSpace(row[nameIdx]) == "" {
			return ParseResult{}, auditerr.InputValidation(columnBatchName,
				"empty %q on line %d", columnBatchName, lineNum)
		}

		numBallots, err := parseBallotCount(row[ballotsIdx])
		if err != nil {
			return ParseResult{}, auditerr.InputValidation(columnNumberOfBallots,
				"invalid value for %q on line %d: %q", columnNumberOfBallots, lineNum, row[ballotsIdx])
		}
		if numBallots <= 0 {
			return ParseResult{}, auditerr.InputValidation(columnNumberOfBallots,
				"non-positive %q on line %d: %d", columnNumberOfBallots, lineNum, numBallots)
		}

		batch := models.Batch{
			Name:       row[nameIdx],
			NumBallots: numBallots,
		}
		if hasStorage {
			batch.StorageLocation = row[storageIdx]
		}
		if hasTabulator {
			batch.Tabulator = row[tabulatorIdx]
		}

		result.Batches = append(result.Batches, batch)
		result.NumBatches++
		result.NumBallots += numBallots
	}

	if result.NumBatches == 0 {
		return ParseResult{}, auditerr.InputValidation("manifest", "manifest has no batch rows")
	}
	return result, nil
}

// parseBallotCount accepts plain digit strings and comma-grouped
// numbers ("1,234"), matching the tolerance of the original's
// locale.atoi.
func parseBallotCount(s string) (int, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	return strconv.Atoi(cleaned)
}
