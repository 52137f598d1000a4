package engine

// VariantID selects one of the built-in rule variants.
type VariantID string

const (
	VariantKoiKoi     VariantID = "koikoi"
	VariantSakura     VariantID = "sakura"
	VariantHachiHachi VariantID = "hachihachi"
	VariantMatch      VariantID = "match"
)

// Variant is the declarative rule table for one game mode: its yaku list,
// category point values, and scoring/continuation flags. The evaluator and
// scorer are driven entirely by this data; adding a mode is a table change.
type Variant struct {
	ID         VariantID
	Name       string
	NumPlayers int // default seat count

	Yaku   []YakuDef
	Teyaku []TeyakuDef // dealt-hand combinations; empty when teyaku don't apply

	// PointValues maps each category to its scoring value for captured-card
	// totals. Variants that never total card points leave it nil.
	PointValues map[Category]int

	ContinuationEnabled bool // koi-koi / sage offered after a new yaku
	ScoreByCardPoints   bool // round score is the captured-point total (Match mode)
	PenaltyPerYaku      int  // Sakura: amount collected from each opponent per yaku
	ParValue            int  // Hachi-Hachi: baseline subtracted from captured points
	UsesFieldMultiplier bool // Hachi-Hachi: small/large/grand field scaling

	TotalRounds   int // default match length
	SafeThreshold int // policy stops at or above this yaku total
}

// baselinePoints is the 20/10/5/1 category table shared by the classic modes.
var baselinePoints = map[Category]int{
	CategoryBright: 20,
	CategoryAnimal: 10,
	CategoryRibbon: 5,
	CategoryChaff:  1,
}

// sakuraPoints revalues ribbons up and chaff to nothing, per the simplified
// Sakura count.
var sakuraPoints = map[Category]int{
	CategoryBright: 20,
	CategoryAnimal: 10,
	CategoryRibbon: 10,
	CategoryChaff:  0,
}

var variants = map[VariantID]*Variant{
	VariantKoiKoi: {
		ID:                  VariantKoiKoi,
		Name:                "Koi-Koi",
		NumPlayers:          2,
		Yaku:                koiKoiYaku,
		PointValues:         baselinePoints,
		ContinuationEnabled: true,
		TotalRounds:         12,
		SafeThreshold:       7,
	},
	VariantSakura: {
		ID:             VariantSakura,
		Name:           "Sakura",
		NumPlayers:     2,
		Yaku:           sakuraYaku,
		PointValues:    sakuraPoints,
		PenaltyPerYaku: 50,
		TotalRounds:    6,
		SafeThreshold:  0,
	},
	VariantHachiHachi: {
		ID:                  VariantHachiHachi,
		Name:                "Hachi-Hachi",
		NumPlayers:          3,
		Yaku:                hachiHachiYaku,
		Teyaku:              hachiHachiTeyaku,
		PointValues:         baselinePoints,
		ContinuationEnabled: true,
		ParValue:            88,
		UsesFieldMultiplier: true,
		TotalRounds:         12,
		SafeThreshold:       10,
	},
	VariantMatch: {
		ID:                VariantMatch,
		Name:              "Match",
		NumPlayers:        2,
		PointValues:       baselinePoints,
		ScoreByCardPoints: true,
		TotalRounds:       3,
	},
}

// LookupVariant returns the rule table for id, or nil if unknown.
func LookupVariant(id VariantID) *Variant {
	return variants[id]
}

// MatchOptions is the immutable configuration surface consumed at match
// start. Changing options requires starting a new match.
type MatchOptions struct {
	Variant              VariantID
	NumPlayers           int  // 0 = variant default
	TotalRounds          int  // 0 = variant default
	AutoDouble7Plus      bool // classic mode: double a final score of 7+
	ContinuationEnabled  bool
	OyaWinsTies          bool // dealer's side scores on simultaneous completion
	ParValue             int  // 0 = variant default
	FixedFieldMultiplier int  // 0 = derive from the dealt field
	EarlyWinScore        int  // 0 = disabled; match ends when a score crosses it
	Seed                 uint64
}

// DefaultMatchOptions returns the standard options for a variant.
func DefaultMatchOptions(id VariantID) MatchOptions {
	v := LookupVariant(id)
	if v == nil {
		v = variants[VariantKoiKoi]
	}
	return MatchOptions{
		Variant:             v.ID,
		NumPlayers:          v.NumPlayers,
		TotalRounds:         v.TotalRounds,
		AutoDouble7Plus:     v.ID == VariantKoiKoi,
		ContinuationEnabled: v.ContinuationEnabled,
		OyaWinsTies:         true,
		ParValue:            v.ParValue,
		Seed:                1,
	}
}

// resolve fills variant defaults into zero-valued option fields and clamps
// the seat count to the supported range.
func (o MatchOptions) resolve(v *Variant) MatchOptions {
	if o.NumPlayers == 0 {
		o.NumPlayers = v.NumPlayers
	}
	if o.NumPlayers < 2 {
		o.NumPlayers = 2
	}
	if o.NumPlayers > MaxPlayers {
		o.NumPlayers = MaxPlayers
	}
	if o.TotalRounds == 0 {
		o.TotalRounds = v.TotalRounds
	}
	if o.ParValue == 0 {
		o.ParValue = v.ParValue
	}
	if !v.ContinuationEnabled {
		o.ContinuationEnabled = false
	}
	return o
}
