package audit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bravoaudit/engine/internal/models"
)

func TestPlanSampleSizes_MenuIsOrderedAndIncludesASN(t *testing.T) {
	contest := twoCandidateContest(5600, 4400, 10000)
	margins, err := ComputeMargins(contest, 0.10)
	require.NoError(t, err)

	options := PlanSampleSizes(margins, 0.10, 0, 0, 2000, DefaultStoppingProbabilities, 42)
	require.Len(t, options, 1+len(DefaultStoppingProbabilities))

	require.NotNil(t, options[0].Type)
	require.Equal(t, "ASN", *options[0].Type)
	require.Equal(t, margins.ASN, options[0].Size)

	for i := 1; i < len(options); i++ {
		require.Nilf(t, options[i].Type, "stopping-probability option %d should have a nil Type", i)
		if i > 1 {
			require.GreaterOrEqualf(t, options[i].Size, options[i-1].Size,
				"higher stopping probability must not require a smaller sample: %+v then %+v", options[i-1], options[i])
		}
	}
}

func TestPlanSampleSizes_DeterministicForFixedSeed(t *testing.T) {
	contest := twoCandidateContest(5600, 4400, 10000)
	margins, err := ComputeMargins(contest, 0.10)
	require.NoError(t, err)

	a := PlanSampleSizes(margins, 0.10, 0, 0, 2000, DefaultStoppingProbabilities, 7)
	b := PlanSampleSizes(margins, 0.10, 0, 0, 2000, DefaultStoppingProbabilities, 7)
	require.Equal(t, a, b, "identical seed/inputs must produce an identical menu")
}

func TestPlanSampleSizes_UncontestedYieldsZeroSizes(t *testing.T) {
	contest := twoCandidateContest(10000, 0, 10000)
	margins, err := ComputeMargins(contest, 0.10)
	require.NoError(t, err)

	options := PlanSampleSizes(margins, 0.10, 0, 0, 2000, DefaultStoppingProbabilities, 1)
	for _, o := range options {
		require.Zero(t, o.Size)
	}
}

func TestPlanSampleSizes_Round2SizeCoversAlreadyObserved(t *testing.T) {
	contest := twoCandidateContest(5600, 4400, 10000)
	margins, err := ComputeMargins(contest, 0.10)
	require.NoError(t, err)

	round1 := PlanSampleSizes(margins, 0.10, 0, 0, 2000, DefaultStoppingProbabilities, 11)
	size90Round1 := Size90(round1)

	// Simulate having already sampled to the round-1 90% size, split
	// proportionally to the governing pair's reported shares.
	sampleW := int(float64(size90Round1) * margins.PW / (margins.PW + margins.PR))
	sampleR := size90Round1 - sampleW

	round2 := PlanSampleSizes(margins, 0.10, sampleW, sampleR, 2000, DefaultStoppingProbabilities, 11)
	size90Round2 := Size90(round2)

	require.GreaterOrEqual(t, size90Round2, sampleW+sampleR,
		"round 2's 90%% size should never require fewer total draws than already observed")
}

func TestSize90_FallsBackToASNWhenNo90Option(t *testing.T) {
	options := []models.SampleSizeOption{
		{Type: strPtr("ASN"), Prob: 1, Size: 119},
	}
	require.Equal(t, 119, Size90(options))
}
