package audit

import "math"

// PairRisk is the BRAVO test statistic outcome for one (winner, loser)
// pair.
type PairRisk struct {
	WinnerID string
	LoserID  string
	PValue   float64
	Met      bool // true iff this pair's risk limit is satisfied
}

// RiskResult is the contest-level outcome of compute_risk (spec §4.5):
// the worst-case (maximum) pair p-value, and whether every pair has met
// the risk limit.
type RiskResult struct {
	Pairs      []PairRisk
	PValue     float64
	IsComplete bool
}

// ComputeRisk computes the BRAVO test statistic for each (winner,
// loser) pair from the cumulative audited vote counts, and reports the
// contest-level p-value as the maximum across pairs. Uncontested
// contests (no pairs) are trivially confirmed with p=0.
//
// Numerical underflow in T = (2s)^w * (2(1-s))^l is avoided by working
// in log-space throughout: logT = w*ln(2s) + l*ln(2(1-s)), compared
// directly against ln(1/alpha) instead of exponentiating first.
func ComputeRisk(margins Margins, auditedVotes map[string]int, alpha float64) RiskResult {
	if margins.Uncontested || len(margins.Pairs) == 0 {
		return RiskResult{PValue: 0, IsComplete: true}
	}

	logThreshold := math.Log(1 / alpha)

	var pairs []PairRisk
	maxP := 0.0
	allMet := true
	for _, pm := range margins.Pairs {
		w := auditedVotes[pm.WinnerID]
		l := auditedVotes[pm.LoserID]
		logT := float64(w)*math.Log(2*pm.SWL) + float64(l)*math.Log(2*(1-pm.SWL))

		p := math.Exp(-logT)
		if p > 1 {
			p = 1
		}
		met := logT >= logThreshold
		if !met {
			allMet = false
		}
		if p > maxP {
			maxP = p
		}
		pairs = append(pairs, PairRisk{WinnerID: pm.WinnerID, LoserID: pm.LoserID, PValue: p, Met: met})
	}

	return RiskResult{Pairs: pairs, PValue: maxP, IsComplete: allMet}
}
