package main

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ceruleanoak/hanafuda-sub004/engine"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "play a match interactively at seat 0; the built-in policy takes the other seats",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, opts, _, err := setup()
		if err != nil {
			return err
		}
		session := &playSession{
			in:  bufio.NewReader(cmd.InOrStdin()),
			out: cmd.OutOrStdout(),
		}
		return session.run(opts)
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
}

// playSession holds the interactive loop's IO. The human always sits at
// seat 0; every other seat is driven by the deterministic policy.
type playSession struct {
	in  *bufio.Reader
	out io.Writer
}

const humanSeat = 0

func (s *playSession) run(opts engine.MatchOptions) error {
	m, err := engine.NewMatch(opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s — %d players, %d rounds, seed %d\n",
		m.Variant.Name, m.Opts.NumPlayers, m.Opts.TotalRounds, m.Opts.Seed)

	var policy engine.Policy
	for !m.GameOver() {
		events, err := m.StartRound()
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "\n=== Round %d (dealer: %s) ===\n", m.RoundNumber, s.seatName(m.Round.DealerIndex))
		s.printEvents(m.Round, events)

		for !m.Round.Finished() {
			var action engine.Action
			if m.Round.CurrentPlayer == humanSeat {
				action, err = s.promptAction(m.Round)
				if err != nil {
					return err
				}
			} else {
				action = policy.ChooseAction(m.Round)
			}
			events, err := m.Round.Apply(action)
			if err != nil {
				fmt.Fprintf(s.out, "rejected: %v\n", err)
				continue
			}
			s.printEvents(m.Round, events)
		}

		if _, err := m.FinishRound(); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "standings: %s\n", s.scoreLine(m.Scores))
	}

	fmt.Fprintf(s.out, "\nmatch over — winner: %s (%s)\n", s.seatName(m.Leader()), s.scoreLine(m.Scores))
	return nil
}

func (s *playSession) seatName(p int) string {
	if p == humanSeat {
		return "you"
	}
	return fmt.Sprintf("seat %d", p)
}

func (s *playSession) scoreLine(scores []int) string {
	parts := make([]string, len(scores))
	for p, sc := range scores {
		parts[p] = fmt.Sprintf("%s %d", s.seatName(p), sc)
	}
	return strings.Join(parts, ", ")
}

// promptAction renders the table and reads the human's action for the
// current phase, retrying until the input parses.
func (s *playSession) promptAction(rs *engine.RoundState) (engine.Action, error) {
	switch rs.Phase {
	case engine.PhaseSelectHand:
		s.printTable(rs)
		hand := rs.Players[humanSeat].Hand
		idx, err := s.chooseIndex("play which card", hand)
		if err != nil {
			return engine.Action{}, err
		}
		return engine.Action{Type: engine.ActionPlayHand, Player: humanSeat, Card: hand[idx]}, nil

	case engine.PhaseSelectHandMatch, engine.PhaseSelectDrawnMatch:
		played := rs.PendingPlayed
		if rs.Phase == engine.PhaseSelectDrawnMatch {
			played = rs.DrawnCard
		}
		fmt.Fprintf(s.out, "%s matches more than one field card.\n", played.Name())
		idx, err := s.chooseIndex("capture which", rs.MatchCandidates)
		if err != nil {
			return engine.Action{}, err
		}
		return engine.Action{Type: engine.ActionChooseMatch, Player: humanSeat, Card: rs.MatchCandidates[idx]}, nil

	case engine.PhaseDecision:
		for _, y := range rs.PendingYaku {
			fmt.Fprintf(s.out, "completed: %s (%d)\n", y.Name, y.Points)
		}
		cont, err := s.chooseYesNo("continue for more (y) or stop and score (n)? ")
		if err != nil {
			return engine.Action{}, err
		}
		return engine.Action{Type: engine.ActionDecide, Player: humanSeat, Continue: cont}, nil
	}
	return engine.Action{}, fmt.Errorf("no input expected in phase %s", rs.Phase)
}

func (s *playSession) printTable(rs *engine.RoundState) {
	fmt.Fprintf(s.out, "\nfield: %s\n", cardList(rs.Field))
	you := rs.Players[humanSeat]
	if len(you.Captured) > 0 {
		fmt.Fprintf(s.out, "captured: %s\n", cardList(sortedByID(you.Captured)))
	}
	for _, prog := range rs.Progress(humanSeat) {
		if prog.IsPossible && prog.Have > 0 && prog.Have < prog.Need {
			fmt.Fprintf(s.out, "  %s: %d/%d\n", prog.Name, prog.Have, prog.Need)
		}
	}
}

// chooseIndex prints a numbered card list and reads a 1-based pick.
func (s *playSession) chooseIndex(prompt string, cards []engine.Card) (int, error) {
	for {
		for i, c := range cards {
			fmt.Fprintf(s.out, "[%d] %s  ", i+1, c.Name())
		}
		fmt.Fprintf(s.out, "\n%s (1-%d): ", prompt, len(cards))
		line, err := s.in.ReadString('\n')
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr != nil || n < 1 || n > len(cards) {
			fmt.Fprintln(s.out, "invalid choice")
			continue
		}
		return n - 1, nil
	}
}

func (s *playSession) chooseYesNo(prompt string) (bool, error) {
	for {
		fmt.Fprint(s.out, prompt)
		line, err := s.in.ReadString('\n')
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(s.out, "please answer y or n")
	}
}

// printEvents narrates the interesting transitions; the human's own picks
// are already on screen, so card_played for seat 0 is skipped.
func (s *playSession) printEvents(rs *engine.RoundState, events []engine.Event) {
	for _, ev := range events {
		switch ev.Type {
		case engine.EventCardPlayed:
			if ev.Player != humanSeat {
				fmt.Fprintf(s.out, "%s plays %s\n", s.seatName(ev.Player), cardList(ev.Cards))
			}
		case engine.EventCardDrawn:
			fmt.Fprintf(s.out, "%s draws %s\n", s.seatName(ev.Player), cardList(ev.Cards))
		case engine.EventCaptureCompleted:
			fmt.Fprintf(s.out, "%s captures %s\n", s.seatName(ev.Player), cardList(ev.Cards))
		case engine.EventFourOfAKind:
			fmt.Fprintf(s.out, "%s takes all four of the month: %s\n", s.seatName(ev.Player), cardList(ev.Cards))
		case engine.EventTeyakuPaid:
			for _, y := range ev.Yaku {
				fmt.Fprintf(s.out, "%s is dealt %s (%d)\n", s.seatName(ev.Player), y.Name, y.Points)
			}
		case engine.EventYakuCompleted:
			for _, y := range ev.Yaku {
				fmt.Fprintf(s.out, "%s completes %s (%d)\n", s.seatName(ev.Player), y.Name, y.Points)
			}
		case engine.EventContinueCalled:
			fmt.Fprintf(s.out, "%s calls koi-koi\n", s.seatName(ev.Player))
		case engine.EventStopCalled:
			fmt.Fprintf(s.out, "%s stops to score\n", s.seatName(ev.Player))
		case engine.EventRoundEnded:
			if ev.Score != nil {
				s.printBreakdown(ev.Score)
			}
		}
	}
}

func (s *playSession) printBreakdown(b *engine.ScoreBreakdown) {
	if b.Scorer < 0 {
		fmt.Fprintln(s.out, "round drawn — nobody scores")
	} else {
		fmt.Fprintf(s.out, "round to %s\n", s.seatName(b.Scorer))
	}
	for p, total := range b.Totals {
		if total != 0 {
			fmt.Fprintf(s.out, "  %s: %+d\n", s.seatName(p), total)
		}
	}
}

func cardList(cards []engine.Card) string {
	names := make([]string, len(cards))
	for i, c := range cards {
		names[i] = c.Name()
	}
	return strings.Join(names, ", ")
}

func sortedByID(cards []engine.Card) []engine.Card {
	out := append([]engine.Card(nil), cards...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
