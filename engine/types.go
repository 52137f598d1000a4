// Package engine implements a multi-variant hanafuda rules engine.
//
// The package is a pure, synchronous state machine: every public operation
// (play a card, resolve a capture choice, submit a continuation decision)
// is a complete state transition that returns the events it produced. The
// engine holds no ambient state and performs no I/O; callers render from
// snapshots and feed actions back in.
package engine

// Month identifies one of the twelve hanafuda suits (1 = January/Pine
// through 12 = December/Paulownia).
type Month uint8

const (
	MonthPine Month = iota + 1 // January
	MonthPlum
	MonthCherry
	MonthWisteria
	MonthIris
	MonthPeony
	MonthClover
	MonthPampas
	MonthChrysanthemum
	MonthMaple
	MonthWillow
	MonthPaulownia
)

// Category is the scoring class of a card.
type Category uint8

const (
	CategoryChaff Category = iota
	CategoryRibbon
	CategoryAnimal
	CategoryBright
)

// RibbonColor distinguishes the ribbon subsets used by ribbon-trio yaku.
type RibbonColor uint8

const (
	RibbonNone   RibbonColor = iota
	RibbonRed                // plain red ribbon
	RibbonPoetry             // red ribbon with poetry (akatan set)
	RibbonBlue
)

// Card is a stable card identity in 1..48. Identity is (month-1)*4 + slot,
// slot 1..4 ordered by descending card value within the month. Zero is
// "no card".
type Card uint8

// NoCard represents the absence of a card.
const NoCard Card = 0

// DeckSize is the number of cards in a hanafuda deck.
const DeckSize = 48

// MaxPlayers bounds the number of seats any variant may configure.
const MaxPlayers = 4

// cardInfo is the static catalog entry backing a Card id.
type cardInfo struct {
	name     string
	month    Month
	category Category
	points   int
	ribbon   RibbonColor
	special  bool // Rain Man: excluded from the dry bright counts
}

// catalog holds the 48-card hanafuda deck, indexed by Card id.
// Base point values follow the 20/10/5/1 convention; variant tables may
// override per-category values at scoring time.
var catalog = [DeckSize + 1]cardInfo{
	// January — Pine
	1: {"Crane", MonthPine, CategoryBright, 20, RibbonNone, false},
	2: {"Pine Poetry Ribbon", MonthPine, CategoryRibbon, 5, RibbonPoetry, false},
	3: {"Pine Chaff 1", MonthPine, CategoryChaff, 1, RibbonNone, false},
	4: {"Pine Chaff 2", MonthPine, CategoryChaff, 1, RibbonNone, false},
	// February — Plum
	5: {"Bush Warbler", MonthPlum, CategoryAnimal, 10, RibbonNone, false},
	6: {"Plum Poetry Ribbon", MonthPlum, CategoryRibbon, 5, RibbonPoetry, false},
	7: {"Plum Chaff 1", MonthPlum, CategoryChaff, 1, RibbonNone, false},
	8: {"Plum Chaff 2", MonthPlum, CategoryChaff, 1, RibbonNone, false},
	// March — Cherry
	9:  {"Curtain", MonthCherry, CategoryBright, 20, RibbonNone, false},
	10: {"Cherry Poetry Ribbon", MonthCherry, CategoryRibbon, 5, RibbonPoetry, false},
	11: {"Cherry Chaff 1", MonthCherry, CategoryChaff, 1, RibbonNone, false},
	12: {"Cherry Chaff 2", MonthCherry, CategoryChaff, 1, RibbonNone, false},
	// April — Wisteria
	13: {"Cuckoo", MonthWisteria, CategoryAnimal, 10, RibbonNone, false},
	14: {"Wisteria Ribbon", MonthWisteria, CategoryRibbon, 5, RibbonRed, false},
	15: {"Wisteria Chaff 1", MonthWisteria, CategoryChaff, 1, RibbonNone, false},
	16: {"Wisteria Chaff 2", MonthWisteria, CategoryChaff, 1, RibbonNone, false},
	// May — Iris
	17: {"Eight-Plank Bridge", MonthIris, CategoryAnimal, 10, RibbonNone, false},
	18: {"Iris Ribbon", MonthIris, CategoryRibbon, 5, RibbonRed, false},
	19: {"Iris Chaff 1", MonthIris, CategoryChaff, 1, RibbonNone, false},
	20: {"Iris Chaff 2", MonthIris, CategoryChaff, 1, RibbonNone, false},
	// June — Peony
	21: {"Butterflies", MonthPeony, CategoryAnimal, 10, RibbonNone, false},
	22: {"Peony Blue Ribbon", MonthPeony, CategoryRibbon, 5, RibbonBlue, false},
	23: {"Peony Chaff 1", MonthPeony, CategoryChaff, 1, RibbonNone, false},
	24: {"Peony Chaff 2", MonthPeony, CategoryChaff, 1, RibbonNone, false},
	// July — Bush Clover
	25: {"Boar", MonthClover, CategoryAnimal, 10, RibbonNone, false},
	26: {"Clover Ribbon", MonthClover, CategoryRibbon, 5, RibbonRed, false},
	27: {"Clover Chaff 1", MonthClover, CategoryChaff, 1, RibbonNone, false},
	28: {"Clover Chaff 2", MonthClover, CategoryChaff, 1, RibbonNone, false},
	// August — Pampas Grass
	29: {"Full Moon", MonthPampas, CategoryBright, 20, RibbonNone, false},
	30: {"Geese", MonthPampas, CategoryAnimal, 10, RibbonNone, false},
	31: {"Pampas Chaff 1", MonthPampas, CategoryChaff, 1, RibbonNone, false},
	32: {"Pampas Chaff 2", MonthPampas, CategoryChaff, 1, RibbonNone, false},
	// September — Chrysanthemum
	33: {"Sake Cup", MonthChrysanthemum, CategoryAnimal, 10, RibbonNone, false},
	34: {"Chrysanthemum Blue Ribbon", MonthChrysanthemum, CategoryRibbon, 5, RibbonBlue, false},
	35: {"Chrysanthemum Chaff 1", MonthChrysanthemum, CategoryChaff, 1, RibbonNone, false},
	36: {"Chrysanthemum Chaff 2", MonthChrysanthemum, CategoryChaff, 1, RibbonNone, false},
	// October — Maple
	37: {"Deer", MonthMaple, CategoryAnimal, 10, RibbonNone, false},
	38: {"Maple Blue Ribbon", MonthMaple, CategoryRibbon, 5, RibbonBlue, false},
	39: {"Maple Chaff 1", MonthMaple, CategoryChaff, 1, RibbonNone, false},
	40: {"Maple Chaff 2", MonthMaple, CategoryChaff, 1, RibbonNone, false},
	// November — Willow
	41: {"Rain Man", MonthWillow, CategoryBright, 20, RibbonNone, true},
	42: {"Swallow", MonthWillow, CategoryAnimal, 10, RibbonNone, false},
	43: {"Willow Ribbon", MonthWillow, CategoryRibbon, 5, RibbonRed, false},
	44: {"Lightning", MonthWillow, CategoryChaff, 1, RibbonNone, false},
	// December — Paulownia
	45: {"Phoenix", MonthPaulownia, CategoryBright, 20, RibbonNone, false},
	46: {"Paulownia Chaff 1", MonthPaulownia, CategoryChaff, 1, RibbonNone, false},
	47: {"Paulownia Chaff 2", MonthPaulownia, CategoryChaff, 1, RibbonNone, false},
	48: {"Paulownia Chaff 3", MonthPaulownia, CategoryChaff, 1, RibbonNone, false},
}

// Valid reports whether c is a real card id (1..48).
func (c Card) Valid() bool { return c >= 1 && c <= DeckSize }

// Month returns the card's month suit.
func (c Card) Month() Month { return catalog[c].month }

// Category returns the card's scoring class.
func (c Card) Category() Category { return catalog[c].category }

// BasePoints returns the card's baseline point value (20/10/5/1).
func (c Card) BasePoints() int { return catalog[c].points }

// Ribbon returns the ribbon subset of the card, or RibbonNone.
func (c Card) Ribbon() RibbonColor { return catalog[c].ribbon }

// IsSpecialBright reports whether c is the Rain Man, which is excluded
// from the dry three/four-bright combinations.
func (c Card) IsSpecialBright() bool { return catalog[c].special }

// Name returns the card's display name.
func (c Card) Name() string {
	if !c.Valid() {
		return "none"
	}
	return catalog[c].name
}

func (c Category) String() string {
	switch c {
	case CategoryBright:
		return "bright"
	case CategoryAnimal:
		return "animal"
	case CategoryRibbon:
		return "ribbon"
	default:
		return "chaff"
	}
}

func (m Month) String() string {
	names := [...]string{"", "January", "February", "March", "April", "May",
		"June", "July", "August", "September", "October", "November", "December"}
	if m < 1 || int(m) >= len(names) {
		return "invalid"
	}
	return names[m]
}

// MonthCards returns the four card ids of a month in catalog order.
func MonthCards(m Month) [4]Card {
	base := Card(m-1) * 4
	return [4]Card{base + 1, base + 2, base + 3, base + 4}
}

// countCategory returns how many cards in the set belong to the category.
func countCategory(cards []Card, cat Category) int {
	n := 0
	for _, c := range cards {
		if c.Category() == cat {
			n++
		}
	}
	return n
}

// containsCard reports whether cards contains c.
func containsCard(cards []Card, c Card) bool {
	for _, x := range cards {
		if x == c {
			return true
		}
	}
	return false
}

// removeCard removes the first occurrence of c from cards, reporting whether
// it was present.
func removeCard(cards []Card, c Card) ([]Card, bool) {
	for i, x := range cards {
		if x == c {
			return append(cards[:i], cards[i+1:]...), true
		}
	}
	return cards, false
}
