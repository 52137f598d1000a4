package engine

import (
	"errors"
	"testing"
)

// buildRound constructs a round in PhaseSelectHand with empty zones for
// scripted scenarios. Callers fill hands, field, and deck; such rounds do
// not hold the full-deck partition, so conservation is checked only in the
// dealt-round driver tests.
func buildRound(t *testing.T, id VariantID) *RoundState {
	t.Helper()
	v := LookupVariant(id)
	if v == nil {
		t.Fatalf("unknown variant %q", id)
	}
	opts := DefaultMatchOptions(id).resolve(v)
	return &RoundState{
		Variant:         v,
		Opts:            opts,
		Phase:           PhaseSelectHand,
		RoundNumber:     1,
		FieldMultiplier: 1,
		ParValue:        opts.ParValue,
		Players:         make([]PlayerState, opts.NumPlayers),
	}
}

// mustApply returns a helper that fails the test on a rejected action and
// passes the events through, so transition calls stay single expressions.
func mustApply(t *testing.T) func([]Event, error) []Event {
	return func(events []Event, err error) []Event {
		t.Helper()
		if err != nil {
			t.Fatalf("action rejected: %v", err)
		}
		return events
	}
}

func hasEvent(events []Event, typ EventType) bool {
	for _, e := range events {
		if e.Type == typ {
			return true
		}
	}
	return false
}

// TestSingleMatchTurn verifies the play→capture→draw cycle and handover.
func TestSingleMatchTurn(t *testing.T) {
	rs := buildRound(t, VariantKoiKoi)
	rs.Players[0].Hand = []Card{11, 3}
	rs.Players[1].Hand = []Card{7, 15}
	rs.Field = []Card{10, 38, 19, 31}
	rs.Deck = []Card{46, 35, 36, 40}
	apply := mustApply(t)

	events := apply(rs.PlayHandCard(0, 11))
	if !hasEvent(events, EventCaptureCompleted) {
		t.Fatalf("no capture event in %v", events)
	}
	if !containsCard(rs.Players[0].Captured, 11) || !containsCard(rs.Players[0].Captured, 10) {
		t.Errorf("captured pile = %v, want 11 and 10", rs.Players[0].Captured)
	}
	if containsCard(rs.Field, 10) {
		t.Error("field still holds the matched card")
	}
	// Drawn 46 has no December partner: it stays face-up.
	if !containsCard(rs.Field, 46) {
		t.Error("drawn card should have been placed on the field")
	}
	if rs.CurrentPlayer != 1 || rs.Phase != PhaseSelectHand {
		t.Errorf("expected handover to player 1, got player %d phase %s", rs.CurrentPlayer, rs.Phase)
	}
}

// TestMatchChoiceFlow verifies two candidates pause the round for an
// explicit choice and reject anything off the candidate list.
func TestMatchChoiceFlow(t *testing.T) {
	rs := buildRound(t, VariantKoiKoi)
	rs.Players[0].Hand = []Card{1, 15}
	rs.Players[1].Hand = []Card{7, 16}
	rs.Field = []Card{2, 3, 9}
	rs.Deck = []Card{46, 35, 36, 40}
	apply := mustApply(t)

	events := apply(rs.PlayHandCard(0, 1))
	if rs.Phase != PhaseSelectHandMatch {
		t.Fatalf("phase = %s, want select_hand_match", rs.Phase)
	}
	if !hasEvent(events, EventMatchChoice) {
		t.Error("no match-choice event emitted")
	}
	if len(rs.MatchCandidates) != 2 {
		t.Fatalf("candidates = %v, want two Pine cards", rs.MatchCandidates)
	}

	if _, err := rs.ChooseMatch(0, 9); !errors.Is(err, ErrIllegalChoice) {
		t.Errorf("off-list choice: err = %v, want ErrIllegalChoice", err)
	}

	apply(rs.ChooseMatch(0, 3))
	if !containsCard(rs.Players[0].Captured, 1) || !containsCard(rs.Players[0].Captured, 3) {
		t.Errorf("captured = %v, want 1 and 3", rs.Players[0].Captured)
	}
	if !containsCard(rs.Field, 2) {
		t.Error("unchosen candidate must stay on the field")
	}
}

// TestFourOfAKindAction verifies completing a month's four moves all four
// cards in one capture event, never split.
func TestFourOfAKindAction(t *testing.T) {
	rs := buildRound(t, VariantKoiKoi)
	rs.Players[0].Hand = []Card{45}
	rs.Players[1].Hand = []Card{7}
	rs.Field = []Card{46, 47, 48, 5}
	rs.Deck = []Card{35, 36}
	apply := mustApply(t)

	events := apply(rs.PlayHandCard(0, 45))
	if !hasEvent(events, EventFourOfAKind) {
		t.Fatal("four-of-a-kind event not emitted")
	}
	for _, c := range []Card{45, 46, 47, 48} {
		if !containsCard(rs.Players[0].Captured, c) {
			t.Errorf("captured pile %v missing %d", rs.Players[0].Captured, c)
		}
	}
}

// TestContinuationPenalty runs the defining risk scenario: player 0
// completes a yaku and continues; player 1 then completes a yaku and stops.
// Player 0 must score exactly zero, and player 1's score carries the
// continuation multiplier.
func TestContinuationPenalty(t *testing.T) {
	rs := buildRound(t, VariantKoiKoi)
	rs.Players[0].Hand = []Card{11, 3}
	rs.Players[0].Captured = []Card{2, 6}
	rs.Players[1].Hand = []Card{39}
	rs.Players[1].Captured = []Card{22, 34}
	rs.Field = []Card{10, 38, 19, 31}
	rs.Deck = []Card{46, 20, 47}
	apply := mustApply(t)

	// Player 0 captures the third poetry ribbon, completing Akatan.
	events := apply(rs.PlayHandCard(0, 11))
	if !hasEvent(events, EventYakuCompleted) || rs.Phase != PhaseDecision {
		t.Fatalf("expected a pending decision, phase = %s events = %v", rs.Phase, events)
	}

	events = apply(rs.DecideContinue(0, true))
	if !hasEvent(events, EventContinueCalled) {
		t.Error("continue event not emitted")
	}
	if rs.CurrentPlayer != 1 {
		t.Fatalf("turn did not pass after koi-koi")
	}

	// Player 1 captures the third blue ribbon, completing Aotan.
	events = apply(rs.PlayHandCard(1, 39))
	if rs.Phase != PhaseDecision {
		t.Fatalf("expected player 1 decision, phase = %s", rs.Phase)
	}
	events = apply(rs.DecideContinue(1, false))
	if !hasEvent(events, EventStopCalled) || !hasEvent(events, EventRoundEnded) {
		t.Fatalf("stop should end the round, events = %v", events)
	}

	if rs.Result.Totals[0] != 0 {
		t.Errorf("player 0 (pushed and beaten) scored %d, want 0", rs.Result.Totals[0])
	}
	// Aotan 5 x (1 + one continue call) = 10.
	if rs.Result.Totals[1] != 10 {
		t.Errorf("player 1 scored %d, want 10", rs.Result.Totals[1])
	}
	if rs.Result.Scorer != 1 {
		t.Errorf("scorer = %d, want 1", rs.Result.Scorer)
	}
}

// TestDecisionIrrevocable verifies a resolved continuation decision cannot
// be resubmitted for the same yaku event.
func TestDecisionIrrevocable(t *testing.T) {
	rs := buildRound(t, VariantKoiKoi)
	rs.Players[0].Hand = []Card{11, 3}
	rs.Players[0].Captured = []Card{2, 6}
	rs.Players[1].Hand = []Card{7}
	rs.Field = []Card{10, 38, 19, 31}
	rs.Deck = []Card{46, 20}
	apply := mustApply(t)

	apply(rs.PlayHandCard(0, 11))
	apply(rs.DecideContinue(0, true))

	if _, err := rs.DecideContinue(0, false); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("re-deciding: err = %v, want ErrWrongPhase", err)
	}
}

// TestRoundExhaustionDraw verifies an exhausted round with no yaku ends as
// a no-score draw.
func TestRoundExhaustionDraw(t *testing.T) {
	rs := buildRound(t, VariantKoiKoi)
	rs.Players[0].Hand = []Card{3}
	rs.Players[1].Hand = []Card{7}
	rs.Field = []Card{19, 31, 39, 46}
	rs.Deck = []Card{20, 35}
	apply := mustApply(t)

	apply(rs.PlayHandCard(0, 3))
	events := apply(rs.PlayHandCard(1, 7))

	if !rs.Finished() {
		t.Fatal("round should have ended on exhaustion")
	}
	if !hasEvent(events, EventRoundEnded) {
		t.Error("round-ended event not emitted")
	}
	if rs.Result.Scorer != -1 {
		t.Errorf("scorer = %d, want -1 (draw)", rs.Result.Scorer)
	}
	for p, total := range rs.Result.Totals {
		if total != 0 {
			t.Errorf("player %d scored %d in a drawn round", p, total)
		}
	}
}

// TestIllegalActionsRejected verifies rejected actions report the reason
// and leave the state untouched.
func TestIllegalActionsRejected(t *testing.T) {
	rs := buildRound(t, VariantKoiKoi)
	rs.Players[0].Hand = []Card{3, 11}
	rs.Players[1].Hand = []Card{7, 15}
	rs.Field = []Card{19, 31}
	rs.Deck = []Card{20, 35, 36, 40}

	before := rs.Clone()

	if _, err := rs.PlayHandCard(1, 7); !errors.Is(err, ErrNotYourTurn) {
		t.Errorf("out-of-turn play: err = %v, want ErrNotYourTurn", err)
	}
	if _, err := rs.PlayHandCard(0, 7); !errors.Is(err, ErrCardNotPresent) {
		t.Errorf("foreign card: err = %v, want ErrCardNotPresent", err)
	}
	if _, err := rs.ChooseMatch(0, 19); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("choice outside choice phase: err = %v, want ErrWrongPhase", err)
	}
	if _, err := rs.DecideContinue(0, false); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("decision outside decision phase: err = %v, want ErrWrongPhase", err)
	}

	if rs.CurrentPlayer != before.CurrentPlayer || rs.Phase != before.Phase {
		t.Error("rejected actions mutated turn state")
	}
	if len(rs.Players[0].Hand) != len(before.Players[0].Hand) ||
		len(rs.Players[1].Hand) != len(before.Players[1].Hand) ||
		len(rs.Field) != len(before.Field) {
		t.Error("rejected actions mutated zones")
	}
}

// TestConservationAcrossRound deals real rounds for every variant and
// drives them to completion with the policy, checking the zone partition
// invariant after every transition.
func TestConservationAcrossRound(t *testing.T) {
	var pol Policy
	for _, id := range []VariantID{VariantKoiKoi, VariantSakura, VariantHachiHachi, VariantMatch} {
		for seed := uint64(1); seed <= 5; seed++ {
			opts := DefaultMatchOptions(id)
			opts.Seed = seed
			rs, _, err := NewRound(opts, 1, 0, seed)
			if err != nil {
				t.Fatalf("%s: NewRound: %v", id, err)
			}
			if err := rs.CheckConservation(); err != nil {
				t.Fatalf("%s seed %d: after deal: %v", id, seed, err)
			}

			for steps := 0; !rs.Finished(); steps++ {
				if steps > 500 {
					t.Fatalf("%s seed %d: round did not terminate", id, seed)
				}
				if _, err := rs.Apply(pol.ChooseAction(rs)); err != nil {
					t.Fatalf("%s seed %d: policy action rejected: %v", id, seed, err)
				}
				if err := rs.CheckConservation(); err != nil {
					t.Fatalf("%s seed %d: %v", id, seed, err)
				}
			}
			if rs.Result == nil {
				t.Fatalf("%s seed %d: finished round has no result", id, seed)
			}
		}
	}
}
