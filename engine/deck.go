package engine

// rng is an inline xorshift64 stream. Each round owns one stream seeded from
// the match seed so replays are exactly reproducible.
type rng struct {
	state uint64
}

func newRNG(seed uint64) rng {
	if seed == 0 {
		seed = 1 // xorshift can't start at 0
	}
	return rng{state: seed}
}

func (r *rng) next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	r.state = x
	return x
}

// intn returns a value in [0, n).
func (r *rng) intn(n int) int {
	return int(r.next() % uint64(n))
}

// newDeck returns the 48 card ids in catalog order.
func newDeck() []Card {
	deck := make([]Card, DeckSize)
	for i := range deck {
		deck[i] = Card(i + 1)
	}
	return deck
}

// shuffle performs a Fisher-Yates shuffle in place.
func shuffle(deck []Card, r *rng) {
	for i := len(deck) - 1; i > 0; i-- {
		j := r.intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
}

// dealLayout returns the hand and field sizes for a player count.
// Standard hanafuda table: 2P deals 8/8, 3P deals 7/6, 4P deals 5/8.
func dealLayout(numPlayers int) (handSize, fieldSize int) {
	switch numPlayers {
	case 3:
		return 7, 6
	case 4:
		return 5, 8
	default:
		return 8, 8
	}
}

// deal draws a shuffled order and distributes hands and field, dealer-first.
// hands[0] belongs to the dealer's seat offset 0; callers rotate by dealer
// index. If the dealt field holds all four cards of one month the deal is
// rerun on the same RNG stream (a misdeal; capture resolution could never
// clear such a field).
func deal(numPlayers int, r *rng) (hands [][]Card, field, deck []Card) {
	handSize, fieldSize := dealLayout(numPlayers)
	for {
		deck = newDeck()
		shuffle(deck, r)

		hands = make([][]Card, numPlayers)
		pos := 0
		// One card to each seat in order, repeating (dealer-first), then
		// the field cards, then the remainder stays as the draw deck.
		for p := 0; p < numPlayers; p++ {
			hands[p] = make([]Card, 0, handSize)
		}
		for c := 0; c < handSize; c++ {
			for p := 0; p < numPlayers; p++ {
				hands[p] = append(hands[p], deck[pos])
				pos++
			}
		}
		field = append([]Card(nil), deck[pos:pos+fieldSize]...)
		pos += fieldSize
		deck = deck[pos:]

		if !fieldHasFullMonth(field) {
			return hands, field, deck
		}
	}
}

// fieldHasFullMonth reports whether any month has all four cards on the field.
func fieldHasFullMonth(field []Card) bool {
	var perMonth [13]int
	for _, c := range field {
		perMonth[c.Month()]++
		if perMonth[c.Month()] == 4 {
			return true
		}
	}
	return false
}
