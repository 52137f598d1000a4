package engine

import "sort"

// YakuDef is one named scoring combination. A def is either a fixed set
// (Cards non-empty: every listed card must be captured) or a category
// predicate (MinCount cards of Category). Defs sharing a non-empty Group are
// mutually exclusive: the highest-value satisfied def in the group scores,
// never two at once.
type YakuDef struct {
	Name           string
	Cards          []Card   // fixed set when non-empty
	Category       Category // predicate category otherwise
	MinCount       int
	ExcludeSpecial bool // predicate skips special brights (dry bright counts)
	BasePoints     int
	BonusPerExtra  int // open-ended: +bonus per card past MinCount
	Group          string
}

// YakuResult is one completed combination.
type YakuResult struct {
	Name   string
	Points int
	Cards  []Card
}

// YakuProgress reports how close an unfinished combination is, and whether
// it can still be completed given what other players have already captured.
type YakuProgress struct {
	Name       string
	Have       int
	Need       int
	Points     int // value if completed at the threshold
	IsPossible bool
}

// ---------------------------------------------------------------------------
// Variant yaku tables
// ---------------------------------------------------------------------------

// Bright-family card sets. The Rain Man (id 41) is the wet bright excluded
// from the dry counts.
var (
	allBrights  = []Card{1, 9, 29, 41, 45}
	dryBrights  = []Card{1, 9, 29, 45}
	akatanCards = []Card{2, 6, 10}
	aotanCards  = []Card{22, 34, 38}
)

var koiKoiYaku = []YakuDef{
	{Name: "Goko", Cards: allBrights, BasePoints: 10, Group: "bright"},
	{Name: "Shiko", Cards: dryBrights, BasePoints: 8, Group: "bright"},
	{Name: "Ame-Shiko", Category: CategoryBright, MinCount: 4, BasePoints: 7, Group: "bright"},
	{Name: "Sanko", Category: CategoryBright, MinCount: 3, ExcludeSpecial: true, BasePoints: 5, Group: "bright"},
	{Name: "Inoshikacho", Cards: []Card{21, 25, 37}, BasePoints: 5},
	{Name: "Hanami-zake", Cards: []Card{9, 33}, BasePoints: 5},
	{Name: "Tsukimi-zake", Cards: []Card{29, 33}, BasePoints: 5},
	{Name: "Akatan", Cards: akatanCards, BasePoints: 5},
	{Name: "Aotan", Cards: aotanCards, BasePoints: 5},
	{Name: "Tane", Category: CategoryAnimal, MinCount: 5, BasePoints: 1, BonusPerExtra: 1},
	{Name: "Tan", Category: CategoryRibbon, MinCount: 5, BasePoints: 1, BonusPerExtra: 1},
	{Name: "Kasu", Category: CategoryChaff, MinCount: 10, BasePoints: 1, BonusPerExtra: 1},
}

// sakuraYaku is the reduced table of the simplified mode. Kasu needs 11
// chaff here, not the classic 10.
var sakuraYaku = []YakuDef{
	{Name: "Goko", Cards: allBrights, BasePoints: 10, Group: "bright"},
	{Name: "Shiko", Cards: dryBrights, BasePoints: 8, Group: "bright"},
	{Name: "Sanko", Category: CategoryBright, MinCount: 3, ExcludeSpecial: true, BasePoints: 5, Group: "bright"},
	{Name: "Inoshikacho", Cards: []Card{21, 25, 37}, BasePoints: 5},
	{Name: "Tsukimi-zake", Cards: []Card{29, 33}, BasePoints: 5},
	{Name: "Hanami-zake", Cards: []Card{9, 33}, BasePoints: 5},
	{Name: "Akatan", Cards: akatanCards, BasePoints: 5},
	{Name: "Aotan", Cards: aotanCards, BasePoints: 5},
	{Name: "Kasu", Category: CategoryChaff, MinCount: 11, BasePoints: 1, BonusPerExtra: 1},
}

// hachiHachiYaku lists the dekiyaku of Hachi-Hachi with their traditional
// values. Open-ended combinations are absent; captured-card points are
// scored separately against par.
var hachiHachiYaku = []YakuDef{
	{Name: "Goko", Cards: allBrights, BasePoints: 12, Group: "bright"},
	{Name: "Shiko", Cards: dryBrights, BasePoints: 10, Group: "bright"},
	{Name: "Akatan", Cards: akatanCards, BasePoints: 7},
	{Name: "Aotan", Cards: aotanCards, BasePoints: 7},
	{Name: "Inoshikacho", Cards: []Card{21, 25, 37}, BasePoints: 7},
}

// ---------------------------------------------------------------------------
// Evaluation
// ---------------------------------------------------------------------------

// predicateCount returns the number of captured cards matched by a predicate
// def, and the matched cards.
func (d *YakuDef) predicateCount(captured []Card) (int, []Card) {
	var cards []Card
	for _, c := range captured {
		if c.Category() != d.Category {
			continue
		}
		if d.ExcludeSpecial && c.IsSpecialBright() {
			continue
		}
		cards = append(cards, c)
	}
	return len(cards), cards
}

// evaluateDef returns the result for a single def against a captured set,
// or ok=false when unsatisfied.
func (d *YakuDef) evaluate(captured []Card) (YakuResult, bool) {
	if len(d.Cards) > 0 {
		for _, want := range d.Cards {
			if !containsCard(captured, want) {
				return YakuResult{}, false
			}
		}
		return YakuResult{Name: d.Name, Points: d.BasePoints, Cards: append([]Card(nil), d.Cards...)}, true
	}

	n, cards := d.predicateCount(captured)
	if n < d.MinCount {
		return YakuResult{}, false
	}
	pts := d.BasePoints + d.BonusPerExtra*(n-d.MinCount)
	return YakuResult{Name: d.Name, Points: pts, Cards: cards}, true
}

// EvaluateYaku computes every completed combination in the captured set
// under the variant's table. Evaluation is total and idempotent: the same
// set always yields the same results, sorted by descending points then name.
// Group-exclusive defs contribute only their highest satisfied member.
func EvaluateYaku(captured []Card, v *Variant) []YakuResult {
	var results []YakuResult
	best := make(map[string]YakuResult) // group → highest result

	for i := range v.Yaku {
		d := &v.Yaku[i]
		res, ok := d.evaluate(captured)
		if !ok {
			continue
		}
		if d.Group == "" {
			results = append(results, res)
			continue
		}
		if cur, seen := best[d.Group]; !seen || res.Points > cur.Points {
			best[d.Group] = res
		}
	}
	for _, res := range best {
		results = append(results, res)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Points != results[j].Points {
			return results[i].Points > results[j].Points
		}
		return results[i].Name < results[j].Name
	})
	return results
}

// YakuTotal sums the point values of a result set.
func YakuTotal(results []YakuResult) int {
	total := 0
	for _, r := range results {
		total += r.Points
	}
	return total
}

// EvaluateProgress reports, for every unfinished combination in the table,
// how many of its cards the player holds and whether completion is still
// possible. A combination is impossible once a required card — or enough of
// the needed category — sits in another player's captured pile.
// othersCaptured is the union of all other players' captured piles.
func EvaluateProgress(captured, othersCaptured []Card, v *Variant) []YakuProgress {
	var out []YakuProgress
	for i := range v.Yaku {
		d := &v.Yaku[i]
		if _, done := d.evaluate(captured); done {
			continue
		}

		var p YakuProgress
		p.Name = d.Name
		p.Points = d.BasePoints
		if len(d.Cards) > 0 {
			p.Need = len(d.Cards)
			p.IsPossible = true
			for _, want := range d.Cards {
				if containsCard(captured, want) {
					p.Have++
				} else if containsCard(othersCaptured, want) {
					p.IsPossible = false
				}
			}
		} else {
			have, _ := d.predicateCount(captured)
			taken, _ := d.predicateCount(othersCaptured)
			total := categoryTotal(d)
			p.Have = have
			p.Need = d.MinCount
			p.IsPossible = total-taken >= d.MinCount
		}
		out = append(out, p)
	}
	return out
}

// categoryTotal returns how many deck cards a predicate def can ever count.
func categoryTotal(d *YakuDef) int {
	n := 0
	for id := Card(1); id <= DeckSize; id++ {
		if id.Category() != d.Category {
			continue
		}
		if d.ExcludeSpecial && id.IsSpecialBright() {
			continue
		}
		n++
	}
	return n
}
