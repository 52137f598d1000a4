package engine

// PlayerScore itemizes one seat's round outcome. Unused terms stay zero.
type PlayerScore struct {
	YakuPoints int // raw yaku sum before multipliers (classic scorer only)
	Multiplier int // combined auto-double × continuation factor; 1 when n/a
	Teyaku     int // net dealt-hand transfer (Hachi-Hachi)
	CardPoints int // captured points vs par (Hachi-Hachi) or raw total (Match)
	Dekiyaku   int // net in-round combination transfer (Hachi-Hachi)
	Total      int
}

// ScoreBreakdown is the full result of scoring a round.
type ScoreBreakdown struct {
	Variant         VariantID
	Scorer          int // seat that ended the round scoring, -1 if none
	FieldMultiplier int
	PerPlayer       []PlayerScore
	Totals          []int
}

// zeroSumCollect turns per-player claim values into net payments where each
// claimant collects its value from every other seat. The nets always sum to
// zero by construction.
func zeroSumCollect(values []int) []int {
	n := len(values)
	sum := 0
	for _, v := range values {
		sum += v
	}
	net := make([]int, n)
	for p, v := range values {
		net[p] = n*v - sum
	}
	return net
}

// capturedPoints totals a pile under the variant's category values.
func capturedPoints(pile []Card, v *Variant) int {
	total := 0
	for _, c := range pile {
		total += v.PointValues[c.Category()]
	}
	return total
}

// ScoreRound converts the round's terminal state into a ScoreBreakdown.
// scorer is the seat whose stop (or standing yaku at exhaustion) ended the
// round, or -1 when no seat scored. The function is read-only over rs.
func ScoreRound(rs *RoundState, scorer int) ScoreBreakdown {
	n := len(rs.Players)
	b := ScoreBreakdown{
		Variant:         rs.Variant.ID,
		Scorer:          scorer,
		FieldMultiplier: rs.FieldMultiplier,
		PerPlayer:       make([]PlayerScore, n),
		Totals:          make([]int, n),
	}
	for i := range b.PerPlayer {
		b.PerPlayer[i].Multiplier = 1
	}

	switch {
	case rs.Variant.ScoreByCardPoints:
		scoreMatch(rs, &b)
	case rs.Variant.PenaltyPerYaku > 0:
		scoreSakura(rs, &b)
	case rs.Variant.UsesFieldMultiplier:
		scoreHachiHachi(rs, scorer, &b)
	default:
		scoreClassic(rs, scorer, &b)
	}

	for i := range b.PerPlayer {
		b.Totals[i] = b.PerPlayer[i].Total
	}
	return b
}

// scoreClassic applies the Koi-Koi formula: the scorer takes their yaku sum,
// doubled at 7+ when configured, times the continuation multiplier (one step
// per continue called this round). Everyone else takes zero — a seat that
// pushed and was beaten forfeits entirely.
func scoreClassic(rs *RoundState, scorer int, b *ScoreBreakdown) {
	if scorer < 0 {
		return
	}
	base := YakuTotal(rs.Players[scorer].Yaku)
	mult := 1 + rs.ContinueCalls
	if rs.Opts.AutoDouble7Plus && base >= 7 {
		mult *= 2
	}
	b.PerPlayer[scorer].YakuPoints = base
	b.PerPlayer[scorer].Multiplier = mult
	b.PerPlayer[scorer].Total = base * mult
}

// scoreSakura settles every seat's recorded combinations as symmetric
// penalties: each yaku collects the fixed amount from every opponent, so
// each settlement is strictly zero-sum.
func scoreSakura(rs *RoundState, b *ScoreBreakdown) {
	claims := make([]int, len(rs.Players))
	for p := range rs.Players {
		claims[p] = len(rs.Players[p].Yaku) * rs.Variant.PenaltyPerYaku
	}
	for p, net := range zeroSumCollect(claims) {
		b.PerPlayer[p].YakuPoints = claims[p]
		b.PerPlayer[p].Total = net
	}
}

// scoreMatch totals captured-card points per seat; highest cumulative total
// wins the match.
func scoreMatch(rs *RoundState, b *ScoreBreakdown) {
	for p := range rs.Players {
		pts := capturedPoints(rs.Players[p].Captured, rs.Variant)
		b.PerPlayer[p].CardPoints = pts
		b.PerPlayer[p].Total = pts
	}
}

// scoreHachiHachi composes the three independent Hachi-Hachi terms, each
// scaled by the round's field multiplier:
//
//  1. teyaku — each holder collects the dealt-hand value from every other
//     seat (zero-sum transfer)
//  2. captured points minus par, which can be negative
//  3. dekiyaku — only the seat whose shoubu ended the round collects its
//     combination value from every other seat (zero-sum transfer); a seat
//     that called sage and was beaten collects nothing
func scoreHachiHachi(rs *RoundState, scorer int, b *ScoreBreakdown) {
	n := len(rs.Players)
	mult := rs.FieldMultiplier

	teyakuClaims := make([]int, n)
	for p := range rs.Players {
		teyakuClaims[p] = YakuTotal(rs.Players[p].Teyaku) * mult
	}
	teyakuNet := zeroSumCollect(teyakuClaims)

	dekiyakuClaims := make([]int, n)
	if scorer >= 0 {
		dekiyakuClaims[scorer] = YakuTotal(rs.Players[scorer].Yaku) * mult
	}
	dekiyakuNet := zeroSumCollect(dekiyakuClaims)

	for p := range rs.Players {
		pts := (capturedPoints(rs.Players[p].Captured, rs.Variant) - rs.ParValue) * mult
		b.PerPlayer[p].Teyaku = teyakuNet[p]
		b.PerPlayer[p].CardPoints = pts
		b.PerPlayer[p].Dekiyaku = dekiyakuNet[p]
		b.PerPlayer[p].Multiplier = mult
		b.PerPlayer[p].Total = teyakuNet[p] + pts + dekiyakuNet[p]
	}
}
