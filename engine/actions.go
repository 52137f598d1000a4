package engine

import (
	"errors"
	"fmt"
)

// Rejection reasons for illegal actions. The state is never mutated when one
// of these is returned; the caller must resubmit explicitly.
var (
	ErrRoundOver      = errors.New("round is over")
	ErrWrongPhase     = errors.New("action not valid in current phase")
	ErrNotYourTurn    = errors.New("not this player's turn")
	ErrCardNotPresent = errors.New("card not in expected zone")
	ErrIllegalChoice  = errors.New("not a legal choice")
)

// ActionType enumerates the inputs the round accepts.
type ActionType uint8

const (
	ActionPlayHand ActionType = iota
	ActionChooseMatch
	ActionDecide
)

// Action is one legal input, as enumerated by LegalActions.
type Action struct {
	Type     ActionType
	Player   int
	Card     Card // hand card or field-match candidate
	Continue bool // ActionDecide: true = koi-koi/sage, false = stop
}

// LegalActions enumerates every action the round currently accepts.
func (rs *RoundState) LegalActions() []Action {
	var out []Action
	switch rs.Phase {
	case PhaseSelectHand:
		for _, c := range rs.Players[rs.CurrentPlayer].Hand {
			out = append(out, Action{Type: ActionPlayHand, Player: rs.CurrentPlayer, Card: c})
		}
	case PhaseSelectHandMatch, PhaseSelectDrawnMatch:
		for _, c := range rs.MatchCandidates {
			out = append(out, Action{Type: ActionChooseMatch, Player: rs.CurrentPlayer, Card: c})
		}
	case PhaseDecision:
		out = append(out,
			Action{Type: ActionDecide, Player: rs.CurrentPlayer, Continue: false},
			Action{Type: ActionDecide, Player: rs.CurrentPlayer, Continue: true},
		)
	}
	return out
}

// Apply dispatches an Action to the matching method.
func (rs *RoundState) Apply(a Action) ([]Event, error) {
	switch a.Type {
	case ActionPlayHand:
		return rs.PlayHandCard(a.Player, a.Card)
	case ActionChooseMatch:
		return rs.ChooseMatch(a.Player, a.Card)
	case ActionDecide:
		return rs.DecideContinue(a.Player, a.Continue)
	default:
		return nil, fmt.Errorf("%w: unknown action type %d", ErrIllegalChoice, a.Type)
	}
}

// PlayHandCard plays one card from the active player's hand. If the card
// matches exactly two field cards the round pauses for a ChooseMatch;
// otherwise capture resolves immediately and the turn proceeds through the
// draw sub-phase and yaku check.
func (rs *RoundState) PlayHandCard(player int, card Card) ([]Event, error) {
	if rs.Finished() {
		return nil, ErrRoundOver
	}
	if rs.Phase != PhaseSelectHand {
		return nil, fmt.Errorf("%w: phase is %s", ErrWrongPhase, rs.Phase)
	}
	if player != rs.CurrentPlayer {
		return nil, fmt.Errorf("%w: player %d acted, player %d to move", ErrNotYourTurn, player, rs.CurrentPlayer)
	}
	if !containsCard(rs.Players[player].Hand, card) {
		return nil, fmt.Errorf("%w: card %d not in hand of player %d", ErrCardNotPresent, card, player)
	}

	rs.Players[player].Hand, _ = removeCard(rs.Players[player].Hand, card)
	events := []Event{{Type: EventCardPlayed, Player: player, Cards: []Card{card}}}

	capt, needChoice := ResolveCapture(card, rs.Field)
	if needChoice {
		rs.PendingPlayed = card
		rs.MatchCandidates = MatchCandidates(card, rs.Field)
		rs.Phase = PhaseSelectHandMatch
		events = append(events, Event{Type: EventMatchChoice, Player: player, Cards: rs.MatchCandidates})
		return events, nil
	}

	events = rs.applyCapture(player, capt, events)
	return rs.drawStep(player, events), nil
}

// ChooseMatch resolves a pending multi-candidate capture, for the played
// hand card or the drawn card depending on phase.
func (rs *RoundState) ChooseMatch(player int, fieldCard Card) ([]Event, error) {
	if rs.Finished() {
		return nil, ErrRoundOver
	}
	if player != rs.CurrentPlayer {
		return nil, fmt.Errorf("%w: player %d acted, player %d to move", ErrNotYourTurn, player, rs.CurrentPlayer)
	}

	switch rs.Phase {
	case PhaseSelectHandMatch:
		capt, ok := ResolveChoice(rs.PendingPlayed, rs.Field, fieldCard)
		if !ok {
			return nil, fmt.Errorf("%w: field card %d does not match", ErrIllegalChoice, fieldCard)
		}
		rs.PendingPlayed = NoCard
		rs.MatchCandidates = nil
		events := rs.applyCapture(player, capt, nil)
		return rs.drawStep(player, events), nil

	case PhaseSelectDrawnMatch:
		capt, ok := ResolveChoice(rs.DrawnCard, rs.Field, fieldCard)
		if !ok {
			return nil, fmt.Errorf("%w: field card %d does not match", ErrIllegalChoice, fieldCard)
		}
		rs.DrawnCard = NoCard
		rs.MatchCandidates = nil
		events := rs.applyCapture(player, capt, nil)
		return rs.yakuCheck(player, events), nil

	default:
		return nil, fmt.Errorf("%w: phase is %s", ErrWrongPhase, rs.Phase)
	}
}

// DecideContinue resolves a pending continuation decision. Stopping locks in
// the current yaku value and ends the round with this player scoring;
// continuing keeps the round alive for a multiplied — or forfeited — later
// score. The decision is final for this yaku event.
func (rs *RoundState) DecideContinue(player int, keepGoing bool) ([]Event, error) {
	if rs.Finished() {
		return nil, ErrRoundOver
	}
	if rs.Phase != PhaseDecision {
		return nil, fmt.Errorf("%w: phase is %s", ErrWrongPhase, rs.Phase)
	}
	if player != rs.CurrentPlayer {
		return nil, fmt.Errorf("%w: player %d acted, player %d to move", ErrNotYourTurn, player, rs.CurrentPlayer)
	}

	rs.Players[player].decidedFor = YakuTotal(rs.PendingYaku)
	rs.PendingYaku = nil

	if keepGoing {
		rs.Players[player].Pushed = true
		rs.ContinueCalls++
		events := []Event{{Type: EventContinueCalled, Player: player}}
		return rs.endTurn(player, events), nil
	}

	events := []Event{{Type: EventStopCalled, Player: player}}
	return rs.endRound(player, events), nil
}

// applyCapture moves the instruction's cards atomically: field cards out,
// captured cards appended in stable order (oldest capture first).
func (rs *RoundState) applyCapture(player int, capt Capture, events []Event) []Event {
	if capt.RemainsOnField {
		rs.Field = append(rs.Field, capt.Played)
		return events
	}
	for _, f := range capt.FromField {
		rs.Field, _ = removeCard(rs.Field, f)
	}
	captured := capt.Captured()
	rs.Players[player].Captured = append(rs.Players[player].Captured, captured...)
	if capt.FourOfAKind {
		events = append(events, Event{Type: EventFourOfAKind, Player: player, Cards: captured})
	}
	return append(events, Event{Type: EventCaptureCompleted, Player: player, Cards: captured})
}

// drawStep draws the top deck card deterministically and resolves its
// capture against the updated field, pausing for a choice when ambiguous.
func (rs *RoundState) drawStep(player int, events []Event) []Event {
	if len(rs.Deck) == 0 {
		return rs.yakuCheck(player, events)
	}

	drawn := rs.Deck[0]
	rs.Deck = rs.Deck[1:]
	rs.DrawnCard = drawn
	events = append(events, Event{Type: EventCardDrawn, Player: player, Cards: []Card{drawn}})

	capt, needChoice := ResolveCapture(drawn, rs.Field)
	if needChoice {
		rs.MatchCandidates = MatchCandidates(drawn, rs.Field)
		rs.Phase = PhaseSelectDrawnMatch
		events = append(events, Event{Type: EventMatchChoice, Player: player, Cards: rs.MatchCandidates})
		return events
	}

	rs.DrawnCard = NoCard
	events = rs.applyCapture(player, capt, events)
	return rs.yakuCheck(player, events)
}

// yakuCheck re-evaluates the active player's captured set and routes to the
// continuation decision, an immediate stop, or turn handover.
func (rs *RoundState) yakuCheck(player int, events []Event) []Event {
	results := EvaluateYaku(rs.Players[player].Captured, rs.Variant)
	rs.Players[player].Yaku = results
	total := YakuTotal(results)

	newYaku := total > rs.Players[player].decidedFor
	if !newYaku {
		return rs.endTurn(player, events)
	}

	events = append(events, Event{Type: EventYakuCompleted, Player: player, Yaku: results})

	if !rs.Variant.ContinuationEnabled {
		// Sakura et al: combinations are recorded as they complete and
		// settle at round end; play continues.
		rs.Players[player].decidedFor = total
		return rs.endTurn(player, events)
	}

	if !rs.Opts.ContinuationEnabled {
		// Continuation switched off: a new yaku scores immediately.
		rs.Players[player].decidedFor = total
		return rs.endRound(player, events)
	}

	rs.PendingYaku = results
	rs.Phase = PhaseDecision
	return append(events, Event{Type: EventDecisionRequired, Player: player, Yaku: results})
}

// endTurn hands over to the next seat, or ends the round when every hand is
// exhausted.
func (rs *RoundState) endTurn(player int, events []Event) []Event {
	events = append(events, Event{Type: EventTurnEnded, Player: player})

	if rs.HandsEmpty() {
		return rs.endRound(rs.exhaustionScorer(), events)
	}

	rs.CurrentPlayer = (rs.CurrentPlayer + 1) % len(rs.Players)
	rs.Phase = PhaseSelectHand
	return events
}

// exhaustionScorer picks the seat whose standing yaku scores when the round
// runs out of cards, or -1 for a no-score draw. When more than one seat has
// a standing yaku, OyaWinsTies selects the seat nearest the dealer in turn
// order (the dealer side); otherwise the seat furthest from it.
func (rs *RoundState) exhaustionScorer() int {
	if !rs.Variant.ContinuationEnabled {
		return -1 // settled per-variant in scoring, not by a single scorer
	}
	n := len(rs.Players)
	var standing []int
	for off := 0; off < n; off++ {
		seat := (rs.DealerIndex + off) % n
		if YakuTotal(rs.Players[seat].Yaku) > 0 {
			standing = append(standing, seat)
		}
	}
	if len(standing) == 0 {
		return -1
	}
	if rs.Opts.OyaWinsTies {
		return standing[0]
	}
	return standing[len(standing)-1]
}

// endRound scores the round and emits the terminal event. scorer is the seat
// that stopped (or whose yaku stands at exhaustion); -1 means no single
// scorer (draw, or a variant that settles all seats).
func (rs *RoundState) endRound(scorer int, events []Event) []Event {
	rs.Phase = PhaseRoundEnd
	breakdown := ScoreRound(rs, scorer)
	rs.Result = &breakdown
	for i := range rs.Players {
		rs.Players[i].RoundScore = breakdown.Totals[i]
	}
	return append(events, Event{Type: EventRoundEnded, Player: scorer, Score: rs.Result})
}
