package engine

// Capture is the instruction a resolved play produces. The resolver never
// mutates zones; the state machine applies the instruction atomically.
type Capture struct {
	Played         Card
	FromField      []Card // field cards removed alongside the played card
	RemainsOnField bool   // true when the played card stays face-up on the field
	FourOfAKind    bool
}

// Captured returns all cards entering the captured pile, played card first
// then field cards in field order.
func (c Capture) Captured() []Card {
	if c.RemainsOnField {
		return nil
	}
	out := make([]Card, 0, 1+len(c.FromField))
	out = append(out, c.Played)
	out = append(out, c.FromField...)
	return out
}

// MatchCandidates returns the field cards sharing the played card's month,
// in field order.
func MatchCandidates(played Card, field []Card) []Card {
	var out []Card
	for _, f := range field {
		if f.Month() == played.Month() {
			out = append(out, f)
		}
	}
	return out
}

// ResolveCapture determines the capture for a played card against the field.
//
//   - no month match: the card stays on the field, no capture
//   - one match: both cards are captured
//   - three matches: the play completes the month's four; all four are
//     captured together as a unit, never split
//   - two matches: ambiguous — the caller must pick via ResolveChoice; this
//     function reports needChoice=true and no instruction
func ResolveCapture(played Card, field []Card) (Capture, bool) {
	candidates := MatchCandidates(played, field)
	switch len(candidates) {
	case 0:
		return Capture{Played: played, RemainsOnField: true}, false
	case 1:
		return Capture{Played: played, FromField: candidates}, false
	case 3:
		return Capture{Played: played, FromField: candidates, FourOfAKind: true}, false
	default:
		return Capture{}, true
	}
}

// ResolveChoice commits a multi-candidate match to the chosen field card.
// The choice must be one of the current candidates.
func ResolveChoice(played Card, field []Card, choice Card) (Capture, bool) {
	candidates := MatchCandidates(played, field)
	if !containsCard(candidates, choice) {
		return Capture{}, false
	}
	return Capture{Played: played, FromField: []Card{choice}}, true
}
