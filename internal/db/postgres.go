// Package db is the persistence collaborator: a pgxpool-backed store
// for the election/jurisdiction/round entity model and the three
// round-lifecycle critical transactions (spec §5).
package db

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bravoaudit/engine/internal/audit"
	"github.com/bravoaudit/engine/internal/models"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

// Connect initializes the connection pool to PostgreSQL using pgx.
func Connect(connStr string) (*PostgresStore, error) {
	pool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %v", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("ping failed: %v", err)
	}

	log.Println("Successfully connected to PostgreSQL for the audit engine")
	return &PostgresStore{pool: pool}, nil
}

// Close gracefully closes the connection pool.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// InitSchema loads and executes the schema.sql file.
func (s *PostgresStore) InitSchema() error {
	schemaBytes, err := os.ReadFile("internal/db/schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema file: %v", err)
	}

	_, err = s.pool.Exec(context.Background(), string(schemaBytes))
	if err != nil {
		return fmt.Errorf("failed to execute schema migrations: %v", err)
	}

	log.Println("Audit schema initialized")
	return nil
}

// GetPool exposes the connection pool for callers that need
// lower-level access than the store's own methods.
func (s *PostgresStore) GetPool() *pgxpool.Pool {
	return s.pool
}

// CreateElection inserts a new election and its single targeted
// contest and choices.
func (s *PostgresStore) CreateElection(ctx context.Context, e models.Election) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO elections (id, name, online, risk_limit, random_seed, audit_type)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.Name, e.Online, e.RiskLimit, e.RandomSeed, e.AuditType)
	if err != nil {
		return fmt.Errorf("failed to insert election: %v", err)
	}

	for _, c := range e.Contests {
		if _, err := tx.Exec(ctx, `
			INSERT INTO contests (id, election_id, name, total_ballots_cast, num_winners, votes_allowed)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			c.ID, e.ID, c.Name, c.TotalBallotsCast, c.NumWinners, c.VotesAllowed); err != nil {
			return fmt.Errorf("failed to insert contest: %v", err)
		}
		for _, choice := range c.Choices {
			if _, err := tx.Exec(ctx, `
				INSERT INTO contest_choices (id, contest_id, name, num_votes)
				VALUES ($1, $2, $3, $4)`,
				choice.ID, c.ID, choice.Name, choice.NumVotes); err != nil {
				return fmt.Errorf("failed to insert contest choice: %v", err)
			}
		}
	}

	return tx.Commit(ctx)
}

// GetElection loads an election and its contest/choice rows by id.
func (s *PostgresStore) GetElection(ctx context.Context, id string) (models.Election, error) {
	var e models.Election
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, online, risk_limit, random_seed, audit_type
		FROM elections WHERE id = $1`, id).
		Scan(&e.ID, &e.Name, &e.Online, &e.RiskLimit, &e.RandomSeed, &e.AuditType)
	if err != nil {
		return models.Election{}, fmt.Errorf("failed to load election %s: %v", id, err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, name, total_ballots_cast, num_winners, votes_allowed
		FROM contests WHERE election_id = $1`, id)
	if err != nil {
		return models.Election{}, fmt.Errorf("failed to load contests for election %s: %v", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.Contest
		if err := rows.Scan(&c.ID, &c.Name, &c.TotalBallotsCast, &c.NumWinners, &c.VotesAllowed); err != nil {
			return models.Election{}, err
		}
		c.ElectionID = id
		e.Contests = append(e.Contests, c)
	}

	for i := range e.Contests {
		choiceRows, err := s.pool.Query(ctx, `
			SELECT id, name, num_votes FROM contest_choices WHERE contest_id = $1`, e.Contests[i].ID)
		if err != nil {
			return models.Election{}, fmt.Errorf("failed to load choices for contest %s: %v", e.Contests[i].ID, err)
		}
		var ch models.ContestChoice
		if _, err := pgx.ForEachRow(choiceRows, []any{&ch.ID, &ch.Name, &ch.NumVotes}, func() error {
			e.Contests[i].Choices = append(e.Contests[i].Choices, ch)
			return nil
		}); err != nil {
			return models.Election{}, fmt.Errorf("failed to load choices for contest %s: %v", e.Contests[i].ID, err)
		}
	}
	return e, nil
}

// UploadManifest deletes any prior batches for a jurisdiction and
// inserts the freshly parsed manifest, recording aggregate counts.
func (s *PostgresStore) UploadManifest(ctx context.Context, jurisdictionID string, batches []models.Batch, numBallots, numBatches int) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM batches WHERE jurisdiction_id = $1`, jurisdictionID); err != nil {
		return fmt.Errorf("failed to clear prior manifest: %v", err)
	}

	for _, b := range batches {
		if _, err := tx.Exec(ctx, `
			INSERT INTO batches (id, jurisdiction_id, name, num_ballots, storage_location, tabulator)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			b.ID, jurisdictionID, b.Name, b.NumBallots, b.StorageLocation, b.Tabulator); err != nil {
			return fmt.Errorf("failed to insert batch %q: %v", b.Name, err)
		}
	}

	if _, err := tx.Exec(ctx, `
		UPDATE jurisdictions
		SET manifest_num_ballots = $1, manifest_num_batches = $2, manifest_uploaded_at = NOW()
		WHERE id = $3`, numBallots, numBatches, jurisdictionID); err != nil {
		return fmt.Errorf("failed to update jurisdiction manifest counts: %v", err)
	}

	return tx.Commit(ctx)
}

// RoundCreateAndPlan is the first of the §5 critical transactions: it
// creates a round row and its per-contest PLANNED state (or, for
// round > 1, the auto-advanced DRAWN state) atomically so a concurrent
// reader never observes a round with no contest state.
func (s *PostgresStore) RoundCreateAndPlan(ctx context.Context, electionID string, round models.Round, rc models.RoundContest) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		INSERT INTO rounds (id, election_id, round_num, started_at)
		VALUES ($1, $2, $3, $4)`,
		round.ID, electionID, round.RoundNum, round.StartedAt); err != nil {
		return fmt.Errorf("failed to insert round: %v", err)
	}

	if err := insertRoundContest(ctx, tx, round.ID, rc); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// SetSampleSize persists the round-1 human-chosen sample size while the
// round contest stays PLANNED (the draw itself happens later, once the
// jurisdiction's manifest is uploaded).
func (s *PostgresStore) SetSampleSize(ctx context.Context, roundID, contestID string, size int) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE round_contests SET sample_size = $1
		WHERE round_id = $2 AND contest_id = $3`, size, roundID, contestID)
	if err != nil {
		return fmt.Errorf("failed to persist chosen sample size: %v", err)
	}
	return nil
}

// DrawSample is the second §5 critical transaction: it persists the
// sampler's draws and the round contest's DRAWN transition atomically,
// so a reader never sees "drawn" draws without their state transition
// (or vice versa).
func (s *PostgresStore) DrawSample(ctx context.Context, roundID string, draws []audit.Draw, batchIDByName map[string]string, rc models.RoundContest) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, d := range draws {
		batchID, ok := batchIDByName[d.BatchName]
		if !ok {
			return fmt.Errorf("draw references unknown batch %q", d.BatchName)
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO sampled_ballots (batch_id, ballot_position)
			VALUES ($1, $2)
			ON CONFLICT (batch_id, ballot_position) DO NOTHING`,
			batchID, d.Position+1); err != nil {
			return fmt.Errorf("failed to upsert sampled ballot: %v", err)
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO sampled_ballot_draws (round_id, batch_id, ballot_position, ticket_number, draw_index)
			VALUES ($1, $2, $3, $4, $5)`,
			roundID, batchID, d.Position+1, d.Ticket, d.DrawIndex); err != nil {
			return fmt.Errorf("failed to insert ballot draw: %v", err)
		}
	}

	if _, err := tx.Exec(ctx, `
		UPDATE round_contests SET state = $1, sample_size = $2
		WHERE round_id = $3 AND contest_id = $4`,
		string(rc.State), rc.SampleSize, roundID, rc.ContestID); err != nil {
		return fmt.Errorf("failed to update round contest state: %v", err)
	}

	return tx.Commit(ctx)
}

// CloseRound is the third §5 critical transaction: it records the
// audited vote totals, the computed risk, and the CLOSED transition
// (and, if terminal, the round's ended_at) atomically.
func (s *PostgresStore) CloseRound(ctx context.Context, roundID string, rc models.RoundContest, endedAt bool) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		UPDATE round_contests
		SET state = $1, end_p_value = $2, is_complete = $3
		WHERE round_id = $4 AND contest_id = $5`,
		string(rc.State), rc.EndPValue, rc.IsComplete, roundID, rc.ContestID); err != nil {
		return fmt.Errorf("failed to close round contest: %v", err)
	}

	if endedAt {
		if _, err := tx.Exec(ctx, `UPDATE rounds SET ended_at = NOW() WHERE id = $1`, roundID); err != nil {
			return fmt.Errorf("failed to mark round ended: %v", err)
		}
	}

	return tx.Commit(ctx)
}

func insertRoundContest(ctx context.Context, tx pgx.Tx, roundID string, rc models.RoundContest) error {
	optionsJSON, err := json.Marshal(rc.SampleSizeOptions)
	if err != nil {
		return fmt.Errorf("failed to marshal sample size options: %v", err)
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO round_contests (round_id, contest_id, state, sample_size, sample_size_options)
		VALUES ($1, $2, $3, $4, $5)`,
		roundID, rc.ContestID, string(rc.State), rc.SampleSize, optionsJSON)
	if err != nil {
		return fmt.Errorf("failed to insert round contest: %v", err)
	}
	return nil
}

// GetBatches returns every batch on a jurisdiction's current manifest,
// ordered by batch name; the manifest's upload order is not kept.
func (s *PostgresStore) GetBatches(ctx context.Context, jurisdictionID string) ([]models.Batch, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, num_ballots, storage_location, tabulator
		FROM batches WHERE jurisdiction_id = $1 ORDER BY name`, jurisdictionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load batches: %v", err)
	}
	defer rows.Close()

	var batches []models.Batch
	for rows.Next() {
		var b models.Batch
		var storage, tabulator *string
		if err := rows.Scan(&b.ID, &b.Name, &b.NumBallots, &storage, &tabulator); err != nil {
			return nil, err
		}
		if storage != nil {
			b.StorageLocation = *storage
		}
		if tabulator != nil {
			b.Tabulator = *tabulator
		}
		b.JurisdictionID = jurisdictionID
		batches = append(batches, b)
	}
	return batches, nil
}

// GetRoundContest loads one round's contest state, including its
// cumulative audited results.
func (s *PostgresStore) GetRoundContest(ctx context.Context, roundID, contestID string) (models.RoundContest, error) {
	var rc models.RoundContest
	var optionsJSON, resultsJSON []byte
	err := s.pool.QueryRow(ctx, `
		SELECT contest_id, state, sample_size, sample_size_options, results, end_p_value, is_complete
		FROM round_contests WHERE round_id = $1 AND contest_id = $2`, roundID, contestID).
		Scan(&rc.ContestID, &rc.State, &rc.SampleSize, &optionsJSON, &resultsJSON, &rc.EndPValue, &rc.IsComplete)
	if err != nil {
		return models.RoundContest{}, fmt.Errorf("failed to load round contest: %v", err)
	}
	if len(optionsJSON) > 0 {
		if err := json.Unmarshal(optionsJSON, &rc.SampleSizeOptions); err != nil {
			return models.RoundContest{}, err
		}
	}
	if len(resultsJSON) > 0 {
		if err := json.Unmarshal(resultsJSON, &rc.Results); err != nil {
			return models.RoundContest{}, err
		}
	}
	rc.RoundID = roundID
	return rc, nil
}

// RecordResults is the results-recording half of the §4.5/§6 round
// lifecycle: it persists the cumulative audited vote counts and the
// AUDITED transition in one transaction.
func (s *PostgresStore) RecordResults(ctx context.Context, roundID string, rc models.RoundContest) error {
	resultsJSON, err := json.Marshal(rc.Results)
	if err != nil {
		return fmt.Errorf("failed to marshal audited results: %v", err)
	}
	_, err = s.pool.Exec(ctx, `
		UPDATE round_contests SET state = $1, results = $2
		WHERE round_id = $3 AND contest_id = $4`,
		string(rc.State), resultsJSON, roundID, rc.ContestID)
	if err != nil {
		return fmt.Errorf("failed to record results: %v", err)
	}
	return nil
}

// CreateJurisdiction inserts a new jurisdiction under an election.
func (s *PostgresStore) CreateJurisdiction(ctx context.Context, j models.Jurisdiction) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO jurisdictions (id, election_id, name)
		VALUES ($1, $2, $3)`, j.ID, j.ElectionID, j.Name)
	if err != nil {
		return fmt.Errorf("failed to insert jurisdiction: %v", err)
	}
	return nil
}

// GetJurisdiction loads a jurisdiction's manifest metadata by id.
func (s *PostgresStore) GetJurisdiction(ctx context.Context, id string) (models.Jurisdiction, error) {
	var j models.Jurisdiction
	var uploadedAt *time.Time
	err := s.pool.QueryRow(ctx, `
		SELECT id, election_id, name, manifest_num_ballots, manifest_num_batches, manifest_uploaded_at
		FROM jurisdictions WHERE id = $1`, id).
		Scan(&j.ID, &j.ElectionID, &j.Name, &j.ManifestNumBallots, &j.ManifestNumBatches, &uploadedAt)
	if err != nil {
		return models.Jurisdiction{}, fmt.Errorf("failed to load jurisdiction %s: %v", id, err)
	}
	j.ManifestUploadedAt = uploadedAt
	return j, nil
}

// CreateAuditBoard inserts a new audit board with its generated
// passphrase.
func (s *PostgresStore) CreateAuditBoard(ctx context.Context, ab models.AuditBoard) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO audit_boards (id, jurisdiction_id, name, passphrase)
		VALUES ($1, $2, $3, $4)`, ab.ID, ab.JurisdictionID, ab.Name, ab.Passphrase)
	if err != nil {
		return fmt.Errorf("failed to insert audit board: %v", err)
	}
	return nil
}

// ListAuditBoards returns every audit board for a jurisdiction.
func (s *PostgresStore) ListAuditBoards(ctx context.Context, jurisdictionID string) ([]models.AuditBoard, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, passphrase FROM audit_boards WHERE jurisdiction_id = $1 ORDER BY name`, jurisdictionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load audit boards: %v", err)
	}
	defer rows.Close()

	var out []models.AuditBoard
	for rows.Next() {
		var ab models.AuditBoard
		if err := rows.Scan(&ab.ID, &ab.Name, &ab.Passphrase); err != nil {
			return nil, err
		}
		ab.JurisdictionID = jurisdictionID
		out = append(out, ab)
	}
	return out, nil
}

// AssignBatchesToBoard records a balancer assignment: every sampled
// ballot in the given batches is marked as belonging to this audit
// board, including ballots first drawn in earlier rounds.
func (s *PostgresStore) AssignBatchesToBoard(ctx context.Context, jurisdictionID, boardID string, batchNames []string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, name := range batchNames {
		if _, err := tx.Exec(ctx, `
			UPDATE sampled_ballots sb
			SET audit_board_id = $1
			FROM batches b
			WHERE b.id = sb.batch_id AND b.jurisdiction_id = $2 AND b.name = $3`,
			boardID, jurisdictionID, name); err != nil {
			return fmt.Errorf("failed to assign batch %q to board: %v", name, err)
		}
	}
	return tx.Commit(ctx)
}

// RecordBallotVote stores one audit board's interpretation of a single
// sampled ballot.
func (s *PostgresStore) RecordBallotVote(ctx context.Context, batchID string, position int, vote, comment string) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE sampled_ballots SET vote = $1, comment = $2
		WHERE batch_id = $3 AND ballot_position = $4`, vote, comment, batchID, position)
	if err != nil {
		return fmt.Errorf("failed to record ballot vote: %v", err)
	}
	return nil
}

// BatchIDByName maps a jurisdiction's batch names to their row ids, for
// translating a sampler draw's batch name into a foreign key.
func (s *PostgresStore) BatchIDByName(ctx context.Context, jurisdictionID string) (map[string]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name FROM batches WHERE jurisdiction_id = $1`, jurisdictionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load batch ids: %v", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		out[name] = id
	}
	return out, nil
}

// CountAlreadyDrawn returns how many draws (repeat hits included) a
// jurisdiction's prior rounds have already made, for the sampler's
// alreadyDrawn parameter.
func (s *PostgresStore) CountAlreadyDrawn(ctx context.Context, jurisdictionID string) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM sampled_ballot_draws d
		JOIN batches b ON b.id = d.batch_id
		WHERE b.jurisdiction_id = $1`, jurisdictionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count already-drawn ballots: %v", err)
	}
	return count, nil
}

// ListRounds returns every round for an election, in round-number order.
func (s *PostgresStore) ListRounds(ctx context.Context, electionID string) ([]models.Round, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, round_num, started_at, ended_at
		FROM rounds WHERE election_id = $1 ORDER BY round_num`, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load rounds: %v", err)
	}
	defer rows.Close()

	var out []models.Round
	for rows.Next() {
		var r models.Round
		var endedAt *time.Time
		if err := rows.Scan(&r.ID, &r.RoundNum, &r.StartedAt, &endedAt); err != nil {
			return nil, err
		}
		r.ElectionID = electionID
		r.EndedAt = endedAt
		out = append(out, r)
	}
	return out, nil
}

// GetRoundByNum loads a single round by its 1-indexed round number.
func (s *PostgresStore) GetRoundByNum(ctx context.Context, electionID string, roundNum int) (models.Round, error) {
	var r models.Round
	var endedAt *time.Time
	err := s.pool.QueryRow(ctx, `
		SELECT id, round_num, started_at, ended_at
		FROM rounds WHERE election_id = $1 AND round_num = $2`, electionID, roundNum).
		Scan(&r.ID, &r.RoundNum, &r.StartedAt, &endedAt)
	if err != nil {
		return models.Round{}, fmt.Errorf("failed to load round %d: %v", roundNum, err)
	}
	r.ElectionID = electionID
	r.EndedAt = endedAt
	return r, nil
}

// ListJurisdictions returns every jurisdiction under an election.
func (s *PostgresStore) ListJurisdictions(ctx context.Context, electionID string) ([]models.Jurisdiction, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, manifest_num_ballots, manifest_num_batches
		FROM jurisdictions WHERE election_id = $1 ORDER BY name`, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load jurisdictions: %v", err)
	}
	defer rows.Close()

	var out []models.Jurisdiction
	for rows.Next() {
		var j models.Jurisdiction
		if err := rows.Scan(&j.ID, &j.Name, &j.ManifestNumBallots, &j.ManifestNumBatches); err != nil {
			return nil, err
		}
		j.ElectionID = electionID
		out = append(out, j)
	}
	return out, nil
}

// AlreadyAuditedSet returns the set of (batch name, ballot position)
// pairs drawn in any round before roundNum, for the retrieval list's
// "Already Audited" column.
func (s *PostgresStore) AlreadyAuditedSet(ctx context.Context, jurisdictionID string, roundNum int) (map[string]bool, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT b.name, d.ballot_position
		FROM sampled_ballot_draws d
		JOIN batches b ON b.id = d.batch_id
		JOIN rounds r ON r.id = d.round_id
		WHERE b.jurisdiction_id = $1 AND r.round_num < $2`, jurisdictionID, roundNum)
	if err != nil {
		return nil, fmt.Errorf("failed to load prior-round draws: %v", err)
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var name string
		var position int
		if err := rows.Scan(&name, &position); err != nil {
			return nil, err
		}
		out[fmt.Sprintf("%s|%d", name, position)] = true
	}
	return out, nil
}

// DrawRow is one persisted ballot draw, joined with its batch's
// jurisdiction for retrieval-list/report generation.
type DrawRow struct {
	BatchName       string
	StorageLocation string
	Tabulator       string
	BallotPosition  int
	TicketNumber    string
	AuditBoardName  string
}

// ListDraws returns every draw recorded for a round, within a
// jurisdiction, for retrieval-list/report generation.
func (s *PostgresStore) ListDraws(ctx context.Context, roundID, jurisdictionID string) ([]DrawRow, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT b.name, COALESCE(b.storage_location, ''), COALESCE(b.tabulator, ''),
		       d.ballot_position, d.ticket_number,
		       COALESCE(ab.name, '')
		FROM sampled_ballot_draws d
		JOIN batches b ON b.id = d.batch_id
		LEFT JOIN sampled_ballots sb ON sb.batch_id = d.batch_id AND sb.ballot_position = d.ballot_position
		LEFT JOIN audit_boards ab ON ab.id = sb.audit_board_id
		WHERE d.round_id = $1 AND b.jurisdiction_id = $2
		ORDER BY b.name, d.ballot_position`, roundID, jurisdictionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load draws: %v", err)
	}
	defer rows.Close()

	var out []DrawRow
	for rows.Next() {
		var d DrawRow
		if err := rows.Scan(&d.BatchName, &d.StorageLocation, &d.Tabulator, &d.BallotPosition, &d.TicketNumber, &d.AuditBoardName); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
