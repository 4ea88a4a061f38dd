// Package audit is the statistical audit engine: margin/ASN calculation,
// sample-size planning, deterministic sampling, audit-board balancing,
// and BRAVO risk computation. Every function here is a pure,
// single-threaded computation over its inputs — no shared mutable
// state, no I/O. The enclosing service (internal/api, internal/db) is
// responsible for concurrency and persistence.
package audit

import (
	"math"
	"sort"

	"github.com/bravoaudit/engine/internal/auditerr"
	"github.com/bravoaudit/engine/internal/models"
)

// PairMargin is the reported margin for one (winner, loser) pair.
type PairMargin struct {
	WinnerID string
	LoserID  string
	// SWL is the pairwise-normalized margin: reported_w / (reported_w + reported_l).
	SWL float64
	// ASN is this pair's closed-form Average Sample Number.
	ASN int
}

// Margins is the full margin computation for one contest.
type Margins struct {
	ContestID string
	// PW, PR, SW are the representative (closest/governing) pair's
	// reported vote shares and pairwise margin.
	PW, PR, SW float64
	Pairs      []PairMargin
	// ASN is the contest-level Average Sample Number: the maximum
	// over all (winner, loser) pairs.
	ASN int
	// Uncontested is true when there were no reported losers, or every
	// reported loser has zero votes (in a single-winner race: one
	// candidate holds every vote).
	Uncontested bool
}

// ComputeMargins derives per-candidate pairwise margins and the ASN for
// a contest, per spec §4.1. Returns an Unauditable error if any
// reported (winner, loser) pair has s_wl <= 0.5 — ballot polling cannot
// confirm such an outcome.
func ComputeMargins(contest models.Contest, riskLimit float64) (Margins, error) {
	if err := ValidateContestTotals(contest); err != nil {
		return Margins{}, err
	}

	numWinners := contest.NumWinners
	if numWinners < 1 {
		numWinners = 1
	}

	ranked := append([]models.ContestChoice(nil), contest.Choices...)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].NumVotes > ranked[j].NumVotes })

	if len(ranked) == 0 {
		return Margins{}, auditerr.InputValidation("choices", "contest has no candidates")
	}

	winners := ranked[:min(numWinners, len(ranked))]
	losers := ranked[len(winners):]

	// Uncontested: fewer candidates than winners (no reported losers at
	// all), or every reported loser has zero votes (the winners hold the
	// entire reported total), whatever the number of winners.
	uncontested := len(losers) == 0
	if !uncontested {
		uncontested = true
		for _, l := range losers {
			if l.NumVotes > 0 {
				uncontested = false
				break
			}
		}
	}
	if uncontested {
		return Margins{
			ContestID:   contest.ID,
			PW:          1,
			PR:          0,
			SW:          1,
			Uncontested: true,
			ASN:         0,
		}, nil
	}

	var pairs []PairMargin
	best := -1 // index into pairs of the ASN-governing (max-ASN) pair

	for _, w := range winners {
		for _, l := range losers {
			swl := pairwiseMargin(w.NumVotes, l.NumVotes)
			if swl <= 0.5 {
				return Margins{}, auditerr.Unauditable(
					"reported margin for %q vs %q is %.4f (<= 0.5); not auditable by ballot polling", w.ID, l.ID, swl)
			}
			pw := shareOfBallots(w.NumVotes, contest.TotalBallotsCast)
			pl := shareOfBallots(l.NumVotes, contest.TotalBallotsCast)
			asn := closedFormASN(pw, pl, swl, riskLimit)
			pairs = append(pairs, PairMargin{WinnerID: w.ID, LoserID: l.ID, SWL: swl, ASN: asn})
			if best == -1 || asn > pairs[best].ASN {
				best = len(pairs) - 1
			}
		}
	}

	governing := pairs[best]
	pw := shareOfBallots(voteCount(winners, governing.WinnerID), contest.TotalBallotsCast)
	pl := shareOfBallots(voteCount(losers, governing.LoserID), contest.TotalBallotsCast)

	return Margins{
		ContestID: contest.ID,
		PW:        pw,
		PR:        pl,
		SW:        governing.SWL,
		Pairs:     pairs,
		ASN:       governing.ASN,
	}, nil
}

// ValidateContestTotals enforces the §3 contest invariant: sum of
// candidate votes <= total ballots * votes allowed.
func ValidateContestTotals(contest models.Contest) error {
	allowed := contest.TotalBallotsCast * votesOrOne(contest.VotesAllowed)
	total := 0
	for _, c := range contest.Choices {
		total += c.NumVotes
	}
	if total > allowed {
		return auditerr.InputValidation("choices",
			"too many votes cast in contest %q (%d votes, %d allowed)", contest.Name, total, allowed)
	}
	return nil
}

func votesOrOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}

func totalVotes(choices []models.ContestChoice) int {
	sum := 0
	for _, c := range choices {
		sum += c.NumVotes
	}
	return sum
}

func voteCount(choices []models.ContestChoice, id string) int {
	for _, c := range choices {
		if c.ID == id {
			return c.NumVotes
		}
	}
	return 0
}

func pairwiseMargin(winnerVotes, loserVotes int) float64 {
	if winnerVotes+loserVotes == 0 {
		return 1
	}
	return float64(winnerVotes) / float64(winnerVotes+loserVotes)
}

func shareOfBallots(votes, totalBallots int) float64 {
	if totalBallots == 0 {
		return 0
	}
	return float64(votes) / float64(totalBallots)
}

// closedFormASN is the Wald/BRAVO closed-form Average Sample Number
// (spec §4.1):
//
//	ASN_wl = ceil( (ln(1/alpha) + 0.5*ln(s)) / (p_w*ln(2s) + p_l*ln(2(1-s))) )
func closedFormASN(pw, pl, s, alpha float64) int {
	if s >= 1 {
		return 0
	}
	numerator := math.Log(1/alpha) + 0.5*math.Log(s)
	denominator := pw*math.Log(2*s) + pl*math.Log(2*(1-s))
	if denominator <= 0 {
		return 0
	}
	asn := numerator / denominator
	if asn <= 0 {
		return 0
	}
	return int(math.Ceil(asn))
}
