package engine

// TeyakuDef is a dealt-hand combination, judged before any card is played.
// Teyaku are hand-shape predicates (month multiples, pairs) rather than
// card sets, so each entry carries its own check.
type TeyakuDef struct {
	Name   string
	Points int
	Check  func(hand []Card) bool
}

// hachiHachiTeyaku holds the Hachi-Hachi dealt-hand table. Each holder
// collects the value from every other player at round start, scaled by the
// field multiplier.
var hachiHachiTeyaku = []TeyakuDef{
	{Name: "Teshi", Points: 6, Check: hasMonthCount(4)},
	{Name: "Kuttsuki", Points: 4, Check: hasThreePairs},
	{Name: "Sanbon", Points: 2, Check: hasMonthCount(3)},
}

// monthCounts tallies the hand per month.
func monthCounts(hand []Card) [13]int {
	var counts [13]int
	for _, c := range hand {
		counts[c.Month()]++
	}
	return counts
}

// hasMonthCount returns a check for "some month appears exactly n times".
func hasMonthCount(n int) func([]Card) bool {
	return func(hand []Card) bool {
		counts := monthCounts(hand)
		for _, c := range counts {
			if c == n {
				return true
			}
		}
		return false
	}
}

// hasThreePairs reports whether the hand holds at least three months of
// exactly two cards. Months with three belong to Sanbon and months with
// four to Teshi, so neither contributes a pair here.
func hasThreePairs(hand []Card) bool {
	counts := monthCounts(hand)
	pairs := 0
	for _, c := range counts {
		if c == 2 {
			pairs++
		}
	}
	return pairs >= 3
}

// EvaluateTeyaku returns the dealt-hand combinations the hand qualifies for.
// Teshi supersedes Sanbon and Kuttsuki: a four-of-a-month hand scores only
// Teshi, matching how the table is ordered (first satisfied shape wins for
// shapes derived from the same month group).
func EvaluateTeyaku(hand []Card, v *Variant) []YakuResult {
	var out []YakuResult
	for i := range v.Teyaku {
		d := &v.Teyaku[i]
		if !d.Check(hand) {
			continue
		}
		out = append(out, YakuResult{Name: d.Name, Points: d.Points})
		if d.Name == "Teshi" {
			break
		}
	}
	return out
}
