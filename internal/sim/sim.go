// Package sim runs headless matches: the deterministic policy plays every
// seat, events stream into structured logs, and finished rounds optionally
// land in the score ledger.
package sim

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ceruleanoak/hanafuda-sub004/engine"
	"github.com/ceruleanoak/hanafuda-sub004/internal/ledger"
)

// Runner drives one match to completion.
type Runner struct {
	Opts   engine.MatchOptions
	Log    *logrus.Logger
	Ledger *ledger.Ledger // nil disables persistence
}

// Result summarizes a finished match.
type Result struct {
	MatchID uuid.UUID
	Winner  int
	Scores  []int
	Rounds  []engine.ScoreBreakdown
}

// stepLimit bounds actions per round; a legal round never approaches it.
const stepLimit = 500

// Run plays the match with the policy on every seat and returns the final
// standing. The context gates only ledger writes; the engine itself never
// blocks.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	m, err := engine.NewMatch(r.Opts)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	log := r.Log.WithFields(logrus.Fields{
		"match":   id,
		"variant": r.Opts.Variant,
		"seed":    r.Opts.Seed,
	})
	log.Info("simulation started")

	if r.Ledger != nil {
		if err := r.Ledger.StartMatch(ctx, id, m.Opts); err != nil {
			return nil, err
		}
	}

	var policy engine.Policy
	for !m.GameOver() {
		events, err := m.StartRound()
		if err != nil {
			return nil, err
		}
		r.logEvents(log, m.RoundNumber, events)

		for step := 0; !m.Round.Finished(); step++ {
			if step >= stepLimit {
				return nil, fmt.Errorf("round %d exceeded %d steps", m.RoundNumber, stepLimit)
			}
			action := policy.ChooseAction(m.Round)
			events, err := m.Round.Apply(action)
			if err != nil {
				return nil, fmt.Errorf("round %d: %w", m.RoundNumber, err)
			}
			r.logEvents(log, m.RoundNumber, events)
		}

		result := *m.Round.Result
		if r.Ledger != nil {
			names := scorerYaku(m.Round, result.Scorer)
			if err := r.Ledger.RecordRound(ctx, id, m.RoundNumber, result, names); err != nil {
				return nil, err
			}
		}
		if _, err := m.FinishRound(); err != nil {
			return nil, err
		}
	}

	out := &Result{
		MatchID: id,
		Winner:  m.Leader(),
		Scores:  append([]int(nil), m.Scores...),
		Rounds:  append([]engine.ScoreBreakdown(nil), m.Results...),
	}
	log.WithFields(logrus.Fields{
		"winner": out.Winner,
		"scores": out.Scores,
	}).Info("simulation finished")

	if r.Ledger != nil {
		if err := r.Ledger.FinishMatch(ctx, id, out.Winner, out.Scores); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// RunMany plays n matches with consecutive seeds and returns per-seat win
// counts alongside the individual results.
func (r *Runner) RunMany(ctx context.Context, n int) ([]int, []*Result, error) {
	wins := make([]int, 0)
	results := make([]*Result, 0, n)
	for i := 0; i < n; i++ {
		run := *r
		run.Opts.Seed = r.Opts.Seed + uint64(i)
		res, err := run.Run(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("match %d: %w", i+1, err)
		}
		for len(wins) < len(res.Scores) {
			wins = append(wins, 0)
		}
		wins[res.Winner]++
		results = append(results, res)
	}
	return wins, results, nil
}

func (r *Runner) logEvents(log *logrus.Entry, round int, events []engine.Event) {
	for _, ev := range events {
		fields := logrus.Fields{"round": round, "event": ev.Type}
		if ev.Player >= 0 {
			fields["player"] = ev.Player
		}
		if len(ev.Cards) > 0 {
			fields["cards"] = cardNames(ev.Cards)
		}
		for _, y := range ev.Yaku {
			fields["yaku"] = y.Name
			fields["points"] = y.Points
		}
		if ev.Score != nil {
			fields["totals"] = ev.Score.Totals
			fields["scorer"] = ev.Score.Scorer
		}
		log.WithFields(fields).Debug("engine event")
	}
}

func cardNames(cards []engine.Card) []string {
	names := make([]string, len(cards))
	for i, c := range cards {
		names[i] = c.Name()
	}
	return names
}

// scorerYaku lists the completed yaku names credited to the round scorer.
func scorerYaku(rs *engine.RoundState, scorer int) []string {
	if scorer < 0 || scorer >= len(rs.Players) {
		return nil
	}
	var names []string
	for _, y := range rs.Players[scorer].Yaku {
		names = append(names, y.Name)
	}
	return names
}
