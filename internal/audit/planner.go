package audit

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
	"golang.org/x/exp/rand"

	"github.com/bravoaudit/engine/internal/models"
)

// DefaultMonteCarloTrials is the §6 configuration default.
const DefaultMonteCarloTrials = 10_000

// DefaultStoppingProbabilities is the §6 configuration default menu of
// target stopping probabilities.
var DefaultStoppingProbabilities = []float64{0.70, 0.80, 0.90}

// maxSimulatedDraws caps a single Monte-Carlo trial's draw count. Since
// the governing margin is always > 0.5 (ComputeMargins rejects anything
// else as Unauditable), a trial fails to stop within this many draws
// only as an astronomically unlikely tail event.
const maxSimulatedDraws = 2_000_000

// SimulateBravo runs a Monte-Carlo BRAVO simulation: trials independent
// draws-with-replacement-from-a-Bernoulli(s) sequences, each starting
// from an already-observed (sampleW, sampleR) cumulative sample, and
// returns how many *additional* draws each trial needed to cross the
// BRAVO stopping threshold ln(1/alpha). Spec §4.2.
func SimulateBravo(trials int, s float64, sampleW, sampleR int, alpha float64, seed uint64) []int {
	logThreshold := math.Log(1 / alpha)
	logT0 := float64(sampleW)*math.Log(2*s) + float64(sampleR)*math.Log(2*(1-s))

	src := rand.New(rand.NewSource(seed))
	urn := distuv.Bernoulli{P: s, Src: src}

	results := make([]int, trials)
	logPosWin := math.Log(2 * s)
	logPosLose := math.Log(2 * (1 - s))
	for t := 0; t < trials; t++ {
		logT := logT0
		draws := 0
		for logT <= logThreshold && draws < maxSimulatedDraws {
			draws++
			if urn.Rand() == 1 {
				logT += logPosWin
			} else {
				logT += logPosLose
			}
		}
		results[t] = draws
	}
	return results
}

// stoppingSizeAt returns the smallest additional-draw count n such that
// at least prob*len(draws) of the simulated trials stopped within n
// draws — the empirical percentile the planner menu is built from.
func stoppingSizeAt(draws []int, prob float64) int {
	sorted := append([]int(nil), draws...)
	sort.Ints(sorted)
	idx := int(math.Ceil(prob*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// empiricalProbAt returns the fraction of trials that stopped within n
// additional draws.
func empiricalProbAt(draws []int, n int) float64 {
	count := 0
	for _, d := range draws {
		if d <= n {
			count++
		}
	}
	return float64(count) / float64(len(draws))
}

// PlanSampleSizes builds the §4.2 menu of candidate sample sizes: the
// ASN option plus one option per target stopping probability. sampleW/
// sampleR are the cumulative sample already observed for the
// contest-governing (winner, loser) pair (zero in round 0).
func PlanSampleSizes(margins Margins, alpha float64, sampleW, sampleR int, trials int, targetProbs []float64, seed uint64) []models.SampleSizeOption {
	alreadyDrawn := sampleW + sampleR

	if margins.Uncontested || margins.ASN == 0 {
		options := []models.SampleSizeOption{{Type: strPtr("ASN"), Prob: 1, Size: 0}}
		for _, p := range targetProbs {
			options = append(options, models.SampleSizeOption{Prob: p, Size: 0})
		}
		return options
	}

	simDraws := SimulateBravo(trials, margins.SW, sampleW, sampleR, alpha, seed)

	asnAdditional := margins.ASN - alreadyDrawn
	if asnAdditional < 0 {
		asnAdditional = 0
	}
	asnProb := round2(empiricalProbAt(simDraws, asnAdditional))

	options := []models.SampleSizeOption{
		{Type: strPtr("ASN"), Prob: asnProb, Size: margins.ASN},
	}
	for _, p := range targetProbs {
		additional := stoppingSizeAt(simDraws, p)
		options = append(options, models.SampleSizeOption{Prob: p, Size: alreadyDrawn + additional})
	}
	return options
}

// Size90 returns the 90%-stopping-probability option from a menu, or
// the ASN size if no 90% option is present (the multi-winner edge case
// spec §4.2 calls out — "if we are in multi-winner, there is no
// sample_size_90 so fix it" — falls back to the ASN size).
func Size90(options []models.SampleSizeOption) int {
	for _, o := range options {
		if o.Type == nil && o.Prob == 0.90 {
			return o.Size
		}
	}
	for _, o := range options {
		if o.Type != nil && *o.Type == "ASN" {
			return o.Size
		}
	}
	return 0
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func strPtr(s string) *string { return &s }
