package engine

import "fmt"

// Phase is the state-machine position of a round. Deterministic steps
// (drawing, yaku checks, turn handover) execute inline within an action;
// the enum covers the positions in which the round waits for input.
type Phase uint8

const (
	PhaseDealing          Phase = iota
	PhaseSelectHand             // active player must play a hand card
	PhaseSelectHandMatch        // played hand card has 2 field candidates; choose one
	PhaseSelectDrawnMatch       // drawn card has 2 field candidates; choose one
	PhaseDecision               // new yaku completed; stop or continue
	PhaseRoundEnd
)

func (p Phase) String() string {
	switch p {
	case PhaseDealing:
		return "dealing"
	case PhaseSelectHand:
		return "select_hand"
	case PhaseSelectHandMatch:
		return "select_hand_match"
	case PhaseSelectDrawnMatch:
		return "select_drawn_match"
	case PhaseDecision:
		return "decision"
	case PhaseRoundEnd:
		return "round_end"
	default:
		return "invalid"
	}
}

// PlayerState holds one seat's zones and in-round bookkeeping.
type PlayerState struct {
	Hand     []Card
	Captured []Card

	Yaku   []YakuResult // combinations currently completed
	Teyaku []YakuResult // dealt-hand combinations (variants with teyaku)

	Pushed     bool // has called continue at least once this round
	decidedFor int  // yaku total already ruled on; re-trigger only above it

	RoundScore int // final delta, set when the round is scored
}

// RoundState is the authoritative per-round state. It is mutated only by
// its own action methods; every other component is a pure function over it.
type RoundState struct {
	Variant *Variant
	Opts    MatchOptions

	Phase         Phase
	RoundNumber   int
	DealerIndex   int
	CurrentPlayer int

	Players []PlayerState
	Field   []Card
	Deck    []Card // remaining draw order; top is Deck[0]

	DrawnCard Card // set transiently during the draw sub-phase

	// Pending multi-candidate match choice.
	PendingPlayed   Card
	MatchCandidates []Card

	// Pending continuation decision.
	PendingYaku []YakuResult

	FieldMultiplier int // Hachi-Hachi; 1 elsewhere
	ParValue        int // Hachi-Hachi; 0 elsewhere

	ContinueCalls int // total continue calls this round, by any seat

	Result *ScoreBreakdown // set when the round ends

	rng rng
}

// NewRound deals a fresh round. Seats are dealt dealer-first; seat order in
// Players is absolute (index 0 is the local player by convention) while turn
// order starts from the dealer.
func NewRound(opts MatchOptions, roundNumber, dealerIndex int, seed uint64) (*RoundState, []Event, error) {
	v := LookupVariant(opts.Variant)
	if v == nil {
		return nil, nil, fmt.Errorf("unknown variant %q", opts.Variant)
	}
	opts = opts.resolve(v)

	rs := &RoundState{
		Variant:         v,
		Opts:            opts,
		Phase:           PhaseDealing,
		RoundNumber:     roundNumber,
		DealerIndex:     dealerIndex,
		CurrentPlayer:   dealerIndex,
		FieldMultiplier: 1,
		ParValue:        opts.ParValue,
		rng:             newRNG(seed),
	}

	hands, field, deck := deal(opts.NumPlayers, &rs.rng)
	rs.Players = make([]PlayerState, opts.NumPlayers)
	for p := 0; p < opts.NumPlayers; p++ {
		// hands[0] went to the dealer; rotate into absolute seat order.
		seat := (dealerIndex + p) % opts.NumPlayers
		rs.Players[seat].Hand = hands[p]
	}
	rs.Field = field
	rs.Deck = deck

	if v.UsesFieldMultiplier {
		rs.FieldMultiplier = fieldMultiplierFor(field, opts.FixedFieldMultiplier)
	}

	events := []Event{{Type: EventRoundDealt, Player: dealerIndex}}

	if len(v.Teyaku) > 0 {
		for p := range rs.Players {
			ty := EvaluateTeyaku(rs.Players[p].Hand, v)
			if len(ty) == 0 {
				continue
			}
			rs.Players[p].Teyaku = ty
			events = append(events, Event{Type: EventTeyakuPaid, Player: p, Yaku: ty})
		}
	}

	rs.Phase = PhaseSelectHand
	return rs, events, nil
}

// fieldMultiplierFor derives the small/large/grand field multiplier from the
// brights dealt to the field: none ×1, one ×2, two or more ×4. A non-zero
// fixed value overrides the derivation.
func fieldMultiplierFor(field []Card, fixed int) int {
	if fixed > 0 {
		return fixed
	}
	brights := countCategory(field, CategoryBright)
	switch {
	case brights >= 2:
		return 4
	case brights == 1:
		return 2
	default:
		return 1
	}
}

// Finished reports whether the round has ended.
func (rs *RoundState) Finished() bool { return rs.Phase == PhaseRoundEnd }

// HandsEmpty reports whether every seat has played out its hand.
func (rs *RoundState) HandsEmpty() bool {
	for i := range rs.Players {
		if len(rs.Players[i].Hand) > 0 {
			return false
		}
	}
	return true
}

// OthersCaptured returns the union of captured piles other than player's.
func (rs *RoundState) OthersCaptured(player int) []Card {
	var out []Card
	for i := range rs.Players {
		if i != player {
			out = append(out, rs.Players[i].Captured...)
		}
	}
	return out
}

// Progress reports yaku progress for a player, with obtainability judged
// against the other players' captured piles.
func (rs *RoundState) Progress(player int) []YakuProgress {
	return EvaluateProgress(rs.Players[player].Captured, rs.OthersCaptured(player), rs.Variant)
}

// Clone returns a deep copy of the round state. Consumers render from
// clones; the engine's own state is never handed out for mutation.
func (rs *RoundState) Clone() *RoundState {
	cp := *rs
	cp.Field = append([]Card(nil), rs.Field...)
	cp.Deck = append([]Card(nil), rs.Deck...)
	cp.MatchCandidates = append([]Card(nil), rs.MatchCandidates...)
	cp.PendingYaku = append([]YakuResult(nil), rs.PendingYaku...)
	cp.Players = make([]PlayerState, len(rs.Players))
	for i := range rs.Players {
		p := rs.Players[i]
		p.Hand = append([]Card(nil), p.Hand...)
		p.Captured = append([]Card(nil), p.Captured...)
		p.Yaku = append([]YakuResult(nil), p.Yaku...)
		p.Teyaku = append([]YakuResult(nil), p.Teyaku...)
		cp.Players[i] = p
	}
	return &cp
}

// CheckConservation verifies the zone invariant: every card id 1..48 exists
// in exactly one zone. A violation is a programming fault, never user error.
func (rs *RoundState) CheckConservation() error {
	var count [DeckSize + 1]int
	add := func(cards []Card, zone string) error {
		for _, c := range cards {
			if !c.Valid() {
				return fmt.Errorf("invalid card id %d in %s", c, zone)
			}
			count[c]++
		}
		return nil
	}
	if err := add(rs.Deck, "deck"); err != nil {
		return err
	}
	if err := add(rs.Field, "field"); err != nil {
		return err
	}
	for i := range rs.Players {
		if err := add(rs.Players[i].Hand, fmt.Sprintf("hand[%d]", i)); err != nil {
			return err
		}
		if err := add(rs.Players[i].Captured, fmt.Sprintf("captured[%d]", i)); err != nil {
			return err
		}
	}
	if rs.DrawnCard != NoCard {
		count[rs.DrawnCard]++
	}
	if rs.PendingPlayed != NoCard {
		count[rs.PendingPlayed]++
	}
	for id := Card(1); id <= DeckSize; id++ {
		if count[id] != 1 {
			return fmt.Errorf("card %d (%s) appears in %d zones", id, id.Name(), count[id])
		}
	}
	return nil
}
