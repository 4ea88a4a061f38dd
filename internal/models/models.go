// Package models holds the plain data structures shared across the audit
// engine, persistence layer, and HTTP boundary.
package models

import "time"

// Election is the root aggregate: one targeted contest, one risk limit,
// one seed, one or more jurisdictions and rounds.
type Election struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Online     bool   `json:"online"`
	RiskLimit  int    `json:"riskLimit"`  // percent, 1-20
	RandomSeed string `json:"randomSeed"` // non-empty printable string
	AuditType  string `json:"auditType"`  // currently only "BRAVO"

	Contests      []Contest
	Jurisdictions []Jurisdiction
	Rounds        []Round
}

// Contest is the single targeted contest audited. Multi-contest audits
// are rejected at the boundary (see audit.AssertSingleContest).
type Contest struct {
	ID               string         `json:"id"`
	ElectionID       string         `json:"-"`
	Name             string         `json:"name"`
	Choices          []ContestChoice `json:"choices"`
	TotalBallotsCast int            `json:"totalBallotsCast"`
	NumWinners       int            `json:"numWinners"`
	VotesAllowed     int            `json:"votesAllowed"`
}

// ContestChoice is a single candidate's reported vote total.
type ContestChoice struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	NumVotes int    `json:"numVotes"`
}

// Jurisdiction owns the ballot manifest, audit boards, and (by
// delete-cascade) the SampledBallots drawn from its batches.
type Jurisdiction struct {
	ID         string `json:"id"`
	ElectionID string `json:"-"`
	Name       string `json:"name"`

	ManifestFilename   string     `json:"manifestFilename,omitempty"`
	ManifestUploadedAt *time.Time `json:"manifestUploadedAt,omitempty"`
	ManifestNumBallots int        `json:"manifestNumBallots"`
	ManifestNumBatches int        `json:"manifestNumBatches"`

	Batches     []Batch      `json:"batches"`
	AuditBoards []AuditBoard `json:"auditBoards"`
}

// Batch is one row of the uploaded manifest.
type Batch struct {
	ID              string `json:"id"`
	JurisdictionID  string `json:"-"`
	Name            string `json:"name"`
	NumBallots      int    `json:"numBallots"`
	StorageLocation string `json:"storageLocation,omitempty"`
	Tabulator       string `json:"tabulator,omitempty"`
}

// AuditBoardMember is one of (currently 2) people working an audit board.
type AuditBoardMember struct {
	Name        string `json:"name"`
	Affiliation string `json:"affiliation"`
}

// AuditBoard is a small team physically retrieving and interpreting
// ballots. One board processes any given batch (see Balancer).
type AuditBoard struct {
	ID             string             `json:"id"`
	JurisdictionID string             `json:"-"`
	Name           string             `json:"name"`
	Members        []AuditBoardMember `json:"members"`
	Passphrase     string             `json:"passphrase,omitempty"`
}

// Round is one sample-draw-and-count cycle.
type Round struct {
	ID          string    `json:"id"`
	ElectionID  string    `json:"-"`
	RoundNum    int       `json:"roundNum"`
	StartedAt   time.Time `json:"startedAt"`
	EndedAt     *time.Time `json:"endedAt,omitempty"`
	RoundContests []RoundContest `json:"contests"`
}

// RoundContestState is the §4.5 round-contest state machine.
type RoundContestState string

const (
	StatePlanned RoundContestState = "PLANNED"
	StateDrawn   RoundContestState = "DRAWN"
	StateAudited RoundContestState = "AUDITED"
	StateClosed  RoundContestState = "CLOSED"
)

// SampleSizeOption is one menu entry offered by the planner.
type SampleSizeOption struct {
	Type *string `json:"type"` // "ASN" or nil for stopping-probability options
	Prob float64 `json:"prob"`
	Size int     `json:"size"`
}

// RoundContest is a round's audit state for the single targeted contest.
type RoundContest struct {
	RoundID            string             `json:"-"`
	ContestID          string             `json:"contestId"`
	State              RoundContestState  `json:"state"`
	SampleSize         int                `json:"sampleSize"`
	SampleSizeOptions  []SampleSizeOption `json:"sampleSizeOptions"`
	EndPValue          *float64           `json:"endPValue,omitempty"`
	IsComplete         bool               `json:"isComplete"`
	Results            map[string]int     `json:"results"` // choiceID -> audited vote count (cumulative)
}

// SampledBallot is a unique physical ballot (batch, position) drawn at
// least once across the audit's lifetime. Owned by the Jurisdiction.
type SampledBallot struct {
	ID             string  `json:"id"`
	BatchID        string  `json:"-"`
	BallotPosition int     `json:"ballotPosition"` // 1-indexed
	AuditBoardID   string  `json:"auditBoardId"`
	Vote           *string `json:"vote,omitempty"`
	Comment        *string `json:"comment,omitempty"`
}

// SampledBallotDraw is a single draw hitting a SampledBallot, bound to
// the round and ticket number that produced it. Owned by the Round.
type SampledBallotDraw struct {
	ID             string `json:"-"`
	RoundID        string `json:"-"`
	BatchID        string `json:"-"`
	BallotPosition int    `json:"ballotPosition"`
	TicketNumber   string `json:"ticketNumber"`
	DrawIndex      int    `json:"drawIndex"`
}
