package engine

import (
	"reflect"
	"testing"
)

func findYaku(results []YakuResult, name string) *YakuResult {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// TestBrightExclusivity verifies the bright family scores exactly one
// combination, the highest satisfied one.
func TestBrightExclusivity(t *testing.T) {
	v := LookupVariant(VariantKoiKoi)
	cases := []struct {
		name     string
		captured []Card
		want     string
		points   int
	}{
		{"three dry", []Card{1, 9, 29}, "Sanko", 5},
		{"rain plus three dry", []Card{1, 9, 29, 41}, "Ame-Shiko", 7},
		{"four dry", []Card{1, 9, 29, 45}, "Shiko", 8},
		{"all five", []Card{1, 9, 29, 41, 45}, "Goko", 10},
	}
	for _, tc := range cases {
		results := EvaluateYaku(tc.captured, v)
		brightCount := 0
		for _, r := range results {
			switch r.Name {
			case "Goko", "Shiko", "Ame-Shiko", "Sanko":
				brightCount++
			}
		}
		if brightCount != 1 {
			t.Errorf("%s: %d bright yaku scored, want exactly 1", tc.name, brightCount)
		}
		got := findYaku(results, tc.want)
		if got == nil {
			t.Errorf("%s: %s not found in %v", tc.name, tc.want, results)
			continue
		}
		if got.Points != tc.points {
			t.Errorf("%s: points = %d, want %d", tc.name, got.Points, tc.points)
		}
	}

	// Rain plus two dry brights is nothing: the dry count excludes the
	// Rain Man and the wet count is below four.
	if results := EvaluateYaku([]Card{1, 9, 41}, v); len(results) != 0 {
		t.Errorf("rain + two dry scored %v, want nothing", results)
	}
}

// TestFixedSetYaku verifies the exact-subset combinations.
func TestFixedSetYaku(t *testing.T) {
	v := LookupVariant(VariantKoiKoi)

	results := EvaluateYaku([]Card{2, 6, 10, 3}, v)
	if got := findYaku(results, "Akatan"); got == nil || got.Points != 5 {
		t.Errorf("Akatan not scored from poetry ribbons: %v", results)
	}
	if EvaluateYaku([]Card{2, 6, 3}, v) != nil {
		t.Error("partial Akatan must not score")
	}

	results = EvaluateYaku([]Card{21, 25, 37}, v)
	if got := findYaku(results, "Inoshikacho"); got == nil || got.Points != 5 {
		t.Errorf("Inoshikacho not scored: %v", results)
	}

	// Viewing yaku: one specific bright plus the sake cup.
	results = EvaluateYaku([]Card{29, 33}, v)
	if findYaku(results, "Tsukimi-zake") == nil {
		t.Errorf("Tsukimi-zake not scored: %v", results)
	}
	results = EvaluateYaku([]Card{9, 33}, v)
	if findYaku(results, "Hanami-zake") == nil {
		t.Errorf("Hanami-zake not scored: %v", results)
	}
}

// TestOpenEndedYaku verifies threshold and per-extra-card bonus scoring.
func TestOpenEndedYaku(t *testing.T) {
	v := LookupVariant(VariantKoiKoi)
	animals := []Card{5, 13, 17, 21, 25} // five animals

	results := EvaluateYaku(animals, v)
	if got := findYaku(results, "Tane"); got == nil || got.Points != 1 {
		t.Fatalf("five animals: Tane = %v, want 1 point", got)
	}

	results = EvaluateYaku(append(animals, 30, 42), v)
	if got := findYaku(results, "Tane"); got == nil || got.Points != 3 {
		t.Fatalf("seven animals: Tane = %v, want 3 points", got)
	}
}

// TestChaffThresholdPerVariant verifies the documented 10-vs-11 split:
// Koi-Koi scores Kasu at ten chaff, Sakura not until eleven.
func TestChaffThresholdPerVariant(t *testing.T) {
	chaff := []Card{3, 4, 7, 8, 11, 12, 15, 16, 19, 20} // ten chaff

	if got := findYaku(EvaluateYaku(chaff, LookupVariant(VariantKoiKoi)), "Kasu"); got == nil {
		t.Error("Koi-Koi: ten chaff must score Kasu")
	}
	if got := findYaku(EvaluateYaku(chaff, LookupVariant(VariantSakura)), "Kasu"); got != nil {
		t.Error("Sakura: ten chaff must not score Kasu")
	}
	if got := findYaku(EvaluateYaku(append(chaff, 23), LookupVariant(VariantSakura)), "Kasu"); got == nil {
		t.Error("Sakura: eleven chaff must score Kasu")
	}
}

// TestEvaluateIdempotent verifies re-running the evaluator on an unchanged
// set yields identical results.
func TestEvaluateIdempotent(t *testing.T) {
	v := LookupVariant(VariantKoiKoi)
	captured := []Card{1, 9, 29, 2, 6, 10, 33, 3, 4}
	first := EvaluateYaku(captured, v)
	second := EvaluateYaku(captured, v)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("evaluator not idempotent:\n first = %v\nsecond = %v", first, second)
	}
	if len(first) == 0 {
		t.Fatal("expected completed yaku in test set")
	}
}

// TestProgressFixedSet verifies progress counting and impossibility once a
// required card sits in the opponent's pile.
func TestProgressFixedSet(t *testing.T) {
	v := LookupVariant(VariantKoiKoi)
	progress := EvaluateProgress([]Card{2, 6}, []Card{10}, v)

	var akatan *YakuProgress
	for i := range progress {
		if progress[i].Name == "Akatan" {
			akatan = &progress[i]
		}
	}
	if akatan == nil {
		t.Fatal("Akatan progress not reported")
	}
	if akatan.Have != 2 || akatan.Need != 3 {
		t.Errorf("Akatan progress = %d/%d, want 2/3", akatan.Have, akatan.Need)
	}
	if akatan.IsPossible {
		t.Error("Akatan must be impossible once a poetry ribbon is captured by the opponent")
	}
}

// TestProgressPredicate verifies open-ended progress goes impossible when
// the category supply left outside other piles cannot reach the threshold.
func TestProgressPredicate(t *testing.T) {
	v := LookupVariant(VariantKoiKoi)

	// Opponent holds 5 of the 10 ribbons; 5 remain, threshold is 5.
	progress := EvaluateProgress(nil, []Card{2, 6, 10, 14, 18}, v)
	for _, p := range progress {
		if p.Name == "Tan" && !p.IsPossible {
			t.Error("Tan should still be possible with five ribbons left")
		}
	}

	// Opponent holds 6: only 4 remain, below the threshold.
	progress = EvaluateProgress(nil, []Card{2, 6, 10, 14, 18, 22}, v)
	for _, p := range progress {
		if p.Name == "Tan" && p.IsPossible {
			t.Error("Tan must be impossible with four ribbons left")
		}
	}
}
