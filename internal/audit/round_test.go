package audit

import (
	"testing"

	"github.com/bravoaudit/engine/internal/auditerr"
	"github.com/bravoaudit/engine/internal/models"
)

func TestRoundContestLifecycle_HappyPath(t *testing.T) {
	rc := &models.RoundContest{ContestID: "contest-1"}
	options := []models.SampleSizeOption{{Prob: 0.90, Size: 120}}

	PlanRound(rc, options, 1)
	if rc.State != models.StatePlanned {
		t.Fatalf("round 1 should start PLANNED, got %s", rc.State)
	}

	if err := ChooseSampleSize(rc, 120); err != nil {
		t.Fatalf("unexpected error choosing sample size: %v", err)
	}
	if err := MarkDrawn(rc); err != nil {
		t.Fatalf("unexpected error marking drawn: %v", err)
	}
	if rc.State != models.StateDrawn {
		t.Fatalf("expected DRAWN, got %s", rc.State)
	}

	if err := MarkAudited(rc); err != nil {
		t.Fatalf("unexpected error marking audited: %v", err)
	}
	risk := RiskResult{PValue: 0.01, IsComplete: true}
	if err := CloseRoundContest(rc, risk); err != nil {
		t.Fatalf("unexpected error closing round: %v", err)
	}
	if rc.State != models.StateClosed {
		t.Fatalf("expected CLOSED, got %s", rc.State)
	}
	if rc.EndPValue == nil || *rc.EndPValue != 0.01 {
		t.Errorf("expected EndPValue to be recorded as 0.01, got %v", rc.EndPValue)
	}
}

func TestRoundContestLifecycle_SkipsAheadLaterRounds(t *testing.T) {
	rc := &models.RoundContest{ContestID: "contest-1"}
	options := []models.SampleSizeOption{{Prob: 0.90, Size: 300}}

	PlanRound(rc, options, 2)
	if rc.State != models.StateDrawn {
		t.Fatalf("round > 1 should auto-advance straight to DRAWN, got %s", rc.State)
	}
	if rc.SampleSize != 300 {
		t.Errorf("round > 1 should auto-select the 90%% size, got %d", rc.SampleSize)
	}
}

func TestChooseSampleSize_RejectsWrongState(t *testing.T) {
	rc := &models.RoundContest{State: models.StateDrawn}
	err := ChooseSampleSize(rc, 50)
	if err == nil {
		t.Fatalf("expected a StateError choosing a sample size outside PLANNED")
	}
	if ae, ok := err.(*auditerr.Error); !ok || ae.Kind != auditerr.TypeState {
		t.Errorf("expected TypeState, got %v", err)
	}
}

func TestMarkDrawn_RejectsZeroSampleSize(t *testing.T) {
	rc := &models.RoundContest{State: models.StatePlanned}
	if err := MarkDrawn(rc); err == nil {
		t.Fatalf("expected an error marking drawn with no sample size chosen")
	}
}

func TestCloseRoundContest_RejectsWrongState(t *testing.T) {
	rc := &models.RoundContest{State: models.StatePlanned}
	if err := CloseRoundContest(rc, RiskResult{}); err == nil {
		t.Fatalf("expected an error closing a round that was never audited")
	}
}

func TestEvaluateRound_CompleteVsNeedsNextRound(t *testing.T) {
	complete := EvaluateRound(RiskResult{IsComplete: true}, nil)
	if complete.Kind != EvalComplete {
		t.Errorf("expected EvalComplete when risk.IsComplete, got %v", complete.Kind)
	}

	menu := []models.SampleSizeOption{{Prob: 0.90, Size: 500}}
	needsMore := EvaluateRound(RiskResult{IsComplete: false}, menu)
	if needsMore.Kind != EvalNeedsNextRound {
		t.Errorf("expected EvalNeedsNextRound, got %v", needsMore.Kind)
	}
	if needsMore.NextSize != 500 {
		t.Errorf("expected NextSize from the 90%% menu entry, got %d", needsMore.NextSize)
	}
}

func TestCoerceVoteCounts_AcceptsStringsIntsAndFloats(t *testing.T) {
	raw := map[string]any{
		"1": 10,
		"2": "20",
		"3": float64(30),
	}
	counts, err := CoerceVoteCounts(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counts["1"] != 10 || counts["2"] != 20 || counts["3"] != 30 {
		t.Errorf("unexpected coerced counts: %+v", counts)
	}
}

func TestCoerceVoteCounts_RejectsNonNumericString(t *testing.T) {
	_, err := CoerceVoteCounts(map[string]any{"1": "not-a-number"})
	if err == nil {
		t.Fatalf("expected an error for a non-numeric string vote count")
	}
}

func TestValidateAuditedTotals_RejectsImpossibleTotals(t *testing.T) {
	err := ValidateAuditedTotals(map[string]int{"a": 80, "b": 80}, 100, 1)
	if err == nil {
		t.Fatalf("expected an error: 160 votes across 100 single-vote ballots is impossible")
	}
	var auditErr *auditerr.Error
	if !errorsAs(err, &auditErr) || auditErr.Kind != auditerr.TypeInputValidation {
		t.Errorf("expected an InputValidationError, got %v", err)
	}
}

func TestValidateAuditedTotals_AcceptsConsistentTotals(t *testing.T) {
	err := ValidateAuditedTotals(map[string]int{"a": 60, "b": 40}, 100, 1)
	if err != nil {
		t.Errorf("unexpected error for a consistent total: %v", err)
	}
}

func TestAssertSingleContest(t *testing.T) {
	if err := AssertSingleContest(nil); err == nil {
		t.Errorf("expected an error for zero contests")
	}
	if err := AssertSingleContest([]models.Contest{{ID: "one"}}); err != nil {
		t.Errorf("unexpected error for a single contest: %v", err)
	}
	if err := AssertSingleContest([]models.Contest{{ID: "one"}, {ID: "two"}}); err == nil {
		t.Errorf("expected an error for multiple targeted contests")
	}
}
