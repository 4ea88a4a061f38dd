package audit

import (
	"strconv"

	"github.com/bravoaudit/engine/internal/auditerr"
	"github.com/bravoaudit/engine/internal/models"
)

// PlanRound populates a fresh RoundContest's sample-size menu and
// applies the §4.2 round>1 auto-progression rule: round 1 is left in
// PLANNED state awaiting human input; later rounds auto-select the 90%
// size and move straight to DRAWN.
func PlanRound(rc *models.RoundContest, options []models.SampleSizeOption, roundNum int) {
	rc.SampleSizeOptions = options
	rc.State = models.StatePlanned
	if roundNum > 1 {
		rc.SampleSize = Size90(options)
		rc.State = models.StateDrawn
	}
}

// ChooseSampleSize is the round-1 human-input path: it may only be
// called while the round contest is still PLANNED.
func ChooseSampleSize(rc *models.RoundContest, size int) error {
	if rc.State != models.StatePlanned {
		return auditerr.State("cannot set sample size: round contest is %s, not PLANNED", rc.State)
	}
	if size <= 0 {
		return auditerr.InputValidation("size", "sample size must be positive")
	}
	rc.SampleSize = size
	return nil
}

// MarkDrawn transitions PLANNED -> DRAWN once the sampler has produced
// the round's ballot draws.
func MarkDrawn(rc *models.RoundContest) error {
	if rc.State != models.StatePlanned {
		return auditerr.State("cannot draw sample: round contest is %s, not PLANNED", rc.State)
	}
	if rc.SampleSize <= 0 {
		return auditerr.State("cannot draw sample: no sample size chosen")
	}
	rc.State = models.StateDrawn
	return nil
}

// MarkAudited transitions DRAWN -> AUDITED once every sampled ballot in
// the round has a recorded vote.
func MarkAudited(rc *models.RoundContest) error {
	if rc.State != models.StateDrawn {
		return auditerr.State("cannot mark audited: round contest is %s, not DRAWN", rc.State)
	}
	rc.State = models.StateAudited
	return nil
}

// CloseRoundContest transitions AUDITED -> CLOSED (terminal), recording
// the computed risk. A closed round contest is never reopened.
func CloseRoundContest(rc *models.RoundContest, risk RiskResult) error {
	if rc.State != models.StateAudited {
		return auditerr.State("cannot close round: round contest is %s, not AUDITED", rc.State)
	}
	p := risk.PValue
	rc.EndPValue = &p
	rc.IsComplete = risk.IsComplete
	rc.State = models.StateClosed
	return nil
}

// EvaluationKind tags the outcome of EvaluateRound — a pure function
// returning a tagged result per spec §9's "exception for control flow"
// note, instead of the original's exception-flavored branching.
type EvaluationKind int

const (
	EvalComplete EvaluationKind = iota
	EvalNeedsNextRound
)

// Evaluation is the result of evaluate_round(state): either the audit
// is complete, or another round is needed at the given (90%) size.
type Evaluation struct {
	Kind     EvaluationKind
	NextSize int
}

// EvaluateRound is the pure decision function the orchestrator acts on
// after a round closes.
func EvaluateRound(risk RiskResult, nextRoundOptions []models.SampleSizeOption) Evaluation {
	if risk.IsComplete {
		return Evaluation{Kind: EvalComplete}
	}
	return Evaluation{Kind: EvalNeedsNextRound, NextSize: Size90(nextRoundOptions)}
}

// CoerceVoteCounts converts a JSON-decoded candidate->count map to
// integers, numerically coercing string-typed counts (spec §9 Open
// Question: the test suite's round0_sample_results['test2']['5']
// arrives as a string where an integer is expected). A non-numeric
// string, or any other JSON type, is an InputValidationError.
func CoerceVoteCounts(raw map[string]any) (map[string]int, error) {
	out := make(map[string]int, len(raw))
	for k, v := range raw {
		switch n := v.(type) {
		case int:
			out[k] = n
		case int64:
			out[k] = int(n)
		case float64:
			out[k] = int(n)
		case string:
			parsed, err := strconv.Atoi(n)
			if err != nil {
				return nil, auditerr.InputValidation(k, "non-numeric vote count %q for candidate %q", n, k)
			}
			out[k] = parsed
		default:
			return nil, auditerr.InputValidation(k, "unsupported vote count type %T for candidate %q", v, k)
		}
	}
	return out, nil
}

// ValidateAuditedTotals enforces the §4.5 failure-semantics rule: the
// sum of audited votes may not exceed sampledBallots * votesAllowed.
// This is a fatal per-round error, not silently accepted.
func ValidateAuditedTotals(auditedVotes map[string]int, sampledBallots, votesAllowed int) error {
	sum := 0
	for _, v := range auditedVotes {
		sum += v
	}
	allowed := sampledBallots * votesOrOne(votesAllowed)
	if sum > allowed {
		return auditerr.InputValidation("auditedVotes",
			"inconsistent audited totals: %d votes recorded across %d sampled ballots (max %d allowed)",
			sum, sampledBallots, allowed)
	}
	return nil
}

// AssertSingleContest rejects multi-contest elections, per spec §9 Open
// Question: generalization to multiple contests is explicitly stubbed
// and rejected at runtime in the original system ("only supports one
// contest for now").
func AssertSingleContest(contests []models.Contest) error {
	if len(contests) > 1 {
		return auditerr.NotImplemented("only supports one contest for now")
	}
	if len(contests) == 0 {
		return auditerr.InputValidation("contests", "election has no targeted contest")
	}
	return nil
}
