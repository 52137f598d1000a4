package engine

// EventType tags a state-transition event.
type EventType string

const (
	EventRoundDealt       EventType = "round_dealt"
	EventTeyakuPaid       EventType = "teyaku_paid"
	EventCardPlayed       EventType = "card_played"
	EventCardDrawn        EventType = "card_drawn"
	EventCaptureCompleted EventType = "capture_completed"
	EventFourOfAKind      EventType = "four_of_a_kind"
	EventMatchChoice      EventType = "match_choice_required"
	EventYakuCompleted    EventType = "yaku_completed"
	EventDecisionRequired EventType = "decision_required"
	EventContinueCalled   EventType = "continue_called" // koi-koi / sage
	EventStopCalled       EventType = "stop_called"     // shobu / shoubu
	EventTurnEnded        EventType = "turn_ended"
	EventRoundEnded       EventType = "round_ended"
	EventMatchEnded       EventType = "match_ended"
)

// Event is one entry in the list returned from a state transition. The
// caller (UI, simulator, tests) drains the list and reacts; the engine
// never calls back into its consumers.
type Event struct {
	Type   EventType
	Player int    // acting or affected player, -1 when not applicable
	Cards  []Card // cards moved/involved, in the order they moved
	Yaku   []YakuResult
	Score  *ScoreBreakdown // round_ended only
}
