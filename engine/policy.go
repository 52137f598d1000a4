package engine

// Policy is the deterministic opponent heuristic. Given identical round
// state it always returns the same action, keeping simulated matches and
// tests exactly reproducible.
type Policy struct{}

// ChooseAction returns the policy's action for the acting player in the
// round's current phase. It must only be called while the round is waiting
// for input.
func (Policy) ChooseAction(rs *RoundState) Action {
	p := rs.CurrentPlayer
	switch rs.Phase {
	case PhaseSelectHand:
		return Action{Type: ActionPlayHand, Player: p, Card: choosePlay(rs)}
	case PhaseSelectHandMatch, PhaseSelectDrawnMatch:
		return Action{Type: ActionChooseMatch, Player: p, Card: chooseCandidate(rs.MatchCandidates)}
	case PhaseDecision:
		return Action{Type: ActionDecide, Player: p, Continue: chooseContinue(rs)}
	default:
		return Action{}
	}
}

// choosePlay picks the hand card to play: the capture maximizing immediate
// captured points, tie-broken by the captured card's category (bright >
// animal > ribbon > chaff) then lowest card id. With no capture available
// it sheds the least valuable card.
func choosePlay(rs *RoundState) Card {
	hand := rs.Players[rs.CurrentPlayer].Hand

	bestPlay := NoCard
	bestValue := -1
	bestTaken := NoCard
	for _, c := range hand {
		candidates := MatchCandidates(c, rs.Field)
		if len(candidates) == 0 {
			continue
		}
		var value int
		var taken Card
		if len(candidates) == 3 {
			// Completes the month's four; all four come home.
			value = c.BasePoints()
			for _, f := range candidates {
				value += f.BasePoints()
			}
			taken = chooseCandidate(candidates)
		} else {
			taken = chooseCandidate(candidates)
			value = c.BasePoints() + taken.BasePoints()
		}
		if value > bestValue ||
			(value == bestValue && betterCandidate(taken, bestTaken)) {
			bestPlay, bestValue, bestTaken = c, value, taken
		}
	}
	if bestPlay != NoCard {
		return bestPlay
	}

	// No capture: discard the lowest-category, lowest-id card.
	shed := hand[0]
	for _, c := range hand[1:] {
		if c.Category() < shed.Category() ||
			(c.Category() == shed.Category() && c < shed) {
			shed = c
		}
	}
	return shed
}

// chooseCandidate picks the most valuable field candidate: highest category
// first, then lowest card id.
func chooseCandidate(candidates []Card) Card {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if betterCandidate(c, best) {
			best = c
		}
	}
	return best
}

// betterCandidate reports whether a outranks b under the fixed priority.
func betterCandidate(a, b Card) bool {
	if b == NoCard {
		return true
	}
	if a.Category() != b.Category() {
		return a.Category() > b.Category()
	}
	return a < b
}

// chooseContinue decides the push-or-stop question: stop once the pending
// yaku value reaches the variant's safe threshold, or when the cards still
// outside every captured pile can no longer complete anything within the
// turns left; otherwise push.
func chooseContinue(rs *RoundState) bool {
	total := YakuTotal(rs.PendingYaku)
	if rs.Variant.SafeThreshold > 0 && total >= rs.Variant.SafeThreshold {
		return false
	}

	turnsLeft := len(rs.Players[rs.CurrentPlayer].Hand)
	if turnsLeft == 0 {
		return false
	}

	// A turn captures at most two cards (hand play + draw).
	for _, prog := range rs.Progress(rs.CurrentPlayer) {
		if prog.IsPossible && prog.Need-prog.Have <= turnsLeft*2 {
			return true
		}
	}
	return false
}
