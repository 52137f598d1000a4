package engine

import (
	"errors"
	"fmt"
)

// ErrMatchOver is returned when actions are submitted to a finished match.
var ErrMatchOver = errors.New("match is over")

// Match tracks cumulative scores, dealer rotation, and round progression
// across a configured number of rounds. One RoundState exists at a time and
// is discarded once its breakdown is banked.
type Match struct {
	Opts    MatchOptions
	Variant *Variant

	RoundNumber int // 1-based; the round currently in play or just finished
	DealerIndex int
	Scores      []int
	Round       *RoundState
	Results     []ScoreBreakdown
	Over        bool

	seeds rng
}

// NewMatch validates options and prepares a match. StartRound deals the
// first round.
func NewMatch(opts MatchOptions) (*Match, error) {
	v := LookupVariant(opts.Variant)
	if v == nil {
		return nil, fmt.Errorf("unknown variant %q", opts.Variant)
	}
	opts = opts.resolve(v)
	return &Match{
		Opts:    opts,
		Variant: v,
		Scores:  make([]int, opts.NumPlayers),
		seeds:   newRNG(opts.Seed),
	}, nil
}

// StartRound deals the next round. The deal order is dealer-relative; each
// round draws a fresh seed from the match's RNG stream so a match replays
// identically from its seed.
func (m *Match) StartRound() ([]Event, error) {
	if m.Over {
		return nil, ErrMatchOver
	}
	if m.Round != nil && !m.Round.Finished() {
		return nil, fmt.Errorf("%w: round %d still in play", ErrWrongPhase, m.RoundNumber)
	}
	m.RoundNumber++
	rs, events, err := NewRound(m.Opts, m.RoundNumber, m.DealerIndex, m.seeds.next())
	if err != nil {
		return nil, err
	}
	m.Round = rs
	return events, nil
}

// FinishRound banks the finished round's breakdown into the match totals,
// rotates the dealer, and ends the match after the configured rounds or
// when a seat crosses the early-win threshold.
func (m *Match) FinishRound() ([]Event, error) {
	if m.Over {
		return nil, ErrMatchOver
	}
	if m.Round == nil || !m.Round.Finished() {
		return nil, fmt.Errorf("%w: no finished round to bank", ErrWrongPhase)
	}

	result := *m.Round.Result
	m.Results = append(m.Results, result)
	for p, delta := range result.Totals {
		m.Scores[p] += delta
	}
	m.Round = nil
	m.DealerIndex = (m.DealerIndex + 1) % m.Opts.NumPlayers

	if m.RoundNumber >= m.Opts.TotalRounds || m.earlyWin() {
		m.Over = true
		return []Event{{Type: EventMatchEnded, Player: m.Leader()}}, nil
	}
	return nil, nil
}

// earlyWin reports whether any cumulative score crossed the configured
// threshold.
func (m *Match) earlyWin() bool {
	if m.Opts.EarlyWinScore <= 0 {
		return false
	}
	for _, s := range m.Scores {
		if s >= m.Opts.EarlyWinScore {
			return true
		}
	}
	return false
}

// Leader returns the seat with the highest cumulative score; ties resolve
// to the lowest seat index.
func (m *Match) Leader() int {
	best := 0
	for p := 1; p < len(m.Scores); p++ {
		if m.Scores[p] > m.Scores[best] {
			best = p
		}
	}
	return best
}

// GameOver reports whether the match has concluded.
func (m *Match) GameOver() bool { return m.Over }
