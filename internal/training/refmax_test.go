package training

import (
	"reflect"
	"testing"
)

// testCatalog mirrors a small gym catalog. Order matters: anchor search is
// defined as "first match in catalog order".
func testCatalog() []Exercise {
	return []Exercise{
		{ID: "back-squat", BodyRegion: "legs", OneRMGroup: "squat", IsPrimary1PM: true},
		{ID: "front-squat", BodyRegion: "legs", OneRMGroup: "squat"},
		{ID: "leg-press", BodyRegion: "legs"},
		{ID: "bench-press", BodyRegion: "chest", OneRMGroup: "press", IsPrimary1PM: true},
		{ID: "incline-press", BodyRegion: "chest", OneRMGroup: "press"},
		{ID: "deadlift", BodyRegion: "back", OneRMGroup: "hinge", IsPrimary1PM: true},
	}
}

func athleteWith(records map[string]float64) AthleteMaxes {
	a := AthleteMaxes{Records: map[string]OneRMRecord{}}
	for id, kg := range records {
		a.Records[id] = OneRMRecord{Current1PM: kg}
	}
	return a
}

func TestResolveReference1PM_OwnRecordWins(t *testing.T) {
	catalog := testCatalog()
	athlete := athleteWith(map[string]float64{
		"front-squat": 90,
		"back-squat":  120,
	})
	// A rule is configured, but the athlete's own record must win regardless.
	rules := NewRuleSet().WithRule("front-squat", ReferenceRule{
		Priority:         []string{"back-squat"},
		FallbackToRegion: true,
		FallbackToGroup:  true,
	})

	got := ResolveReference1PM(catalog[1], athlete, rules, catalog)
	if got == nil {
		t.Fatal("ResolveReference1PM returned nil, want own record")
	}
	if got.Value != 90 || got.Source != SourceOwn || got.SourceExerciseID != "" {
		t.Errorf("got %+v, want {90 own }", got)
	}
}

func TestResolveReference1PM_PriorityList(t *testing.T) {
	catalog := testCatalog()

	tests := []struct {
		name     string
		records  map[string]float64
		priority []string
		wantID   string
		wantKg   float64
	}{
		{
			name:     "first listed entry wins",
			records:  map[string]float64{"back-squat": 120, "deadlift": 150},
			priority: []string{"back-squat", "deadlift"},
			wantID:   "back-squat",
			wantKg:   120,
		},
		{
			name:     "entries without a value are skipped",
			records:  map[string]float64{"deadlift": 150},
			priority: []string{"back-squat", "deadlift"},
			wantID:   "deadlift",
			wantKg:   150,
		},
		{
			name:     "unknown IDs are skipped",
			records:  map[string]float64{"deadlift": 150},
			priority: []string{"does-not-exist", "deadlift"},
			wantID:   "deadlift",
			wantKg:   150,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := NewRuleSet().WithRule("leg-press", ReferenceRule{Priority: tt.priority})
			got := ResolveReference1PM(catalog[2], athleteWith(tt.records), rules, catalog)
			if got == nil {
				t.Fatal("ResolveReference1PM returned nil")
			}
			if got.Source != SourcePriority || got.SourceExerciseID != tt.wantID || got.Value != tt.wantKg {
				t.Errorf("got %+v, want {%v priority %s}", got, tt.wantKg, tt.wantID)
			}
		})
	}
}

func TestResolveReference1PM_RegionFallback(t *testing.T) {
	catalog := testCatalog()
	athlete := athleteWith(map[string]float64{"bench-press": 100})

	// Priority list exhausted, region fallback enabled: first primary
	// same-region exercise in catalog order supplies the value.
	rules := NewRuleSet().WithRule("incline-press", ReferenceRule{
		Priority:         []string{"does-not-exist"},
		FallbackToRegion: true,
	})

	got := ResolveReference1PM(catalog[4], athlete, rules, catalog)
	if got == nil {
		t.Fatal("ResolveReference1PM returned nil, want region anchor")
	}
	if got.Value != 100 || got.Source != SourceRegion || got.SourceExerciseID != "bench-press" {
		t.Errorf("got %+v, want {100 region bench-press}", got)
	}
}

func TestResolveReference1PM_RegionAnchorRules(t *testing.T) {
	catalog := testCatalog()
	rules := NewRuleSet().WithRule("front-squat", ReferenceRule{FallbackToRegion: true})

	t.Run("non-primary exercises are not anchors", func(t *testing.T) {
		// leg-press shares the region and has a value but is not primary.
		athlete := athleteWith(map[string]float64{"leg-press": 200})
		if got := ResolveReference1PM(catalog[1], athlete, rules, catalog); got != nil {
			t.Errorf("got %+v, want nil", got)
		}
	})

	t.Run("target exercise is excluded from the scan", func(t *testing.T) {
		primary := []Exercise{{ID: "front-squat", BodyRegion: "legs", IsPrimary1PM: true}}
		// Even flagged primary with a legacy value, the exercise cannot
		// anchor itself (its own record was already ruled out by tier 1).
		athlete := AthleteMaxes{Legacy: map[string]float64{}}
		if got := ResolveReference1PM(primary[0], athlete, rules, primary); got != nil {
			t.Errorf("got %+v, want nil", got)
		}
	})

	t.Run("anchor without a recorded value is skipped", func(t *testing.T) {
		athlete := athleteWith(map[string]float64{"bench-press": 100})
		if got := ResolveReference1PM(catalog[1], athlete, rules, catalog); got != nil {
			t.Errorf("got %+v, want nil", got)
		}
	})

	t.Run("catalog order is the tie-break", func(t *testing.T) {
		// Two qualifying leg anchors: back-squat appears first in the catalog.
		extended := append(testCatalog(), Exercise{ID: "box-squat", BodyRegion: "legs", IsPrimary1PM: true})
		athlete := athleteWith(map[string]float64{"back-squat": 120, "box-squat": 140})
		got := ResolveReference1PM(extended[1], athlete, rules, extended)
		if got == nil || got.SourceExerciseID != "back-squat" {
			t.Errorf("got %+v, want anchor back-squat", got)
		}
	})
}

func TestResolveReference1PM_GroupFallback(t *testing.T) {
	catalog := testCatalog()
	athlete := athleteWith(map[string]float64{"back-squat": 120})

	rules := NewRuleSet().WithRule("front-squat", ReferenceRule{FallbackToGroup: true})
	got := ResolveReference1PM(catalog[1], athlete, rules, catalog)
	if got == nil {
		t.Fatal("ResolveReference1PM returned nil, want group anchor")
	}
	if got.Value != 120 || got.Source != SourceGroup || got.SourceExerciseID != "back-squat" {
		t.Errorf("got %+v, want {120 group back-squat}", got)
	}
}

func TestResolveReference1PM_RegionBeforeGroup(t *testing.T) {
	// Both fallbacks enabled and both would match: region tier runs first.
	catalog := []Exercise{
		{ID: "a", BodyRegion: "legs", OneRMGroup: "squat", IsPrimary1PM: true},
		{ID: "b", BodyRegion: "arms", OneRMGroup: "squat", IsPrimary1PM: true},
		{ID: "target", BodyRegion: "legs", OneRMGroup: "squat"},
	}
	athlete := athleteWith(map[string]float64{"a": 100, "b": 80})
	rules := NewRuleSet().WithRule("target", ReferenceRule{FallbackToRegion: true, FallbackToGroup: true})

	got := ResolveReference1PM(catalog[2], athlete, rules, catalog)
	if got == nil || got.Source != SourceRegion || got.SourceExerciseID != "a" {
		t.Errorf("got %+v, want region anchor a", got)
	}
}

func TestResolveReference1PM_NoRuleNoFallback(t *testing.T) {
	catalog := testCatalog()
	// bench-press has a record and is a same-region primary anchor, but
	// without a rule for incline-press no fallback tier is evaluated.
	athlete := athleteWith(map[string]float64{"bench-press": 100})

	if got := ResolveReference1PM(catalog[4], athlete, NewRuleSet(), catalog); got != nil {
		t.Errorf("got %+v, want nil without a rule", got)
	}

	// Same catalog, but an empty rule with region fallback enabled resolves.
	rules := NewRuleSet().WithRule("incline-press", ReferenceRule{FallbackToRegion: true})
	got := ResolveReference1PM(catalog[4], athlete, rules, catalog)
	if got == nil || got.Value != 100 || got.Source != SourceRegion || got.SourceExerciseID != "bench-press" {
		t.Errorf("got %+v, want {100 region bench-press}", got)
	}
}

func TestResolveReference1PM_NoData(t *testing.T) {
	catalog := testCatalog()
	rules := NewRuleSet().WithRule("incline-press", ReferenceRule{
		Priority:         []string{"bench-press"},
		FallbackToRegion: true,
		FallbackToGroup:  true,
	})

	if got := ResolveReference1PM(catalog[4], AthleteMaxes{}, rules, catalog); got != nil {
		t.Errorf("got %+v, want nil for an athlete without records", got)
	}
}

func TestResolveReference1PM_Idempotent(t *testing.T) {
	catalog := testCatalog()
	athlete := athleteWith(map[string]float64{"bench-press": 100})
	rules := NewRuleSet().WithRule("incline-press", ReferenceRule{FallbackToRegion: true})

	first := ResolveReference1PM(catalog[4], athlete, rules, catalog)
	second := ResolveReference1PM(catalog[4], athlete, rules, catalog)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated calls differ: %+v vs %+v", first, second)
	}
}

func TestResolveReference1PM_DoesNotMutateInputs(t *testing.T) {
	catalog := testCatalog()
	athlete := AthleteMaxes{
		Records: map[string]OneRMRecord{"bench-press": {Current1PM: 100}},
		Legacy:  map[string]float64{"deadlift": 150},
	}
	rules := NewRuleSet().WithRule("incline-press", ReferenceRule{FallbackToRegion: true})

	ResolveReference1PM(catalog[4], athlete, rules, catalog)

	if len(athlete.Records) != 1 || len(athlete.Legacy) != 1 {
		t.Errorf("athlete mutated: %+v", athlete)
	}
	if len(rules) != 1 {
		t.Errorf("rules mutated: %+v", rules)
	}
	if !reflect.DeepEqual(catalog, testCatalog()) {
		t.Error("catalog mutated")
	}
}

func TestEffectiveOneRM_Merge(t *testing.T) {
	tests := []struct {
		name    string
		athlete AthleteMaxes
		want    map[string]float64
	}{
		{
			name: "structured wins on collision, legacy supplies missing keys",
			athlete: AthleteMaxes{
				Records: map[string]OneRMRecord{"x": {Current1PM: 100}},
				Legacy:  map[string]float64{"x": 80, "y": 60},
			},
			want: map[string]float64{"x": 100, "y": 60},
		},
		{
			name: "non-positive structured value counts as absent",
			athlete: AthleteMaxes{
				Records: map[string]OneRMRecord{"x": {Current1PM: 0}},
				Legacy:  map[string]float64{"x": 80},
			},
			want: map[string]float64{"x": 80},
		},
		{
			name: "non-positive legacy values are dropped",
			athlete: AthleteMaxes{
				Legacy: map[string]float64{"x": -5, "y": 0, "z": 70},
			},
			want: map[string]float64{"z": 70},
		},
		{
			name:    "empty athlete",
			athlete: AthleteMaxes{},
			want:    map[string]float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectiveOneRM(tt.athlete)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("EffectiveOneRM() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRuleSet_WithRule(t *testing.T) {
	base := NewRuleSet()
	withOne := base.WithRule("a", ReferenceRule{FallbackToRegion: true})
	withTwo := withOne.WithRule("b", ReferenceRule{Priority: []string{"a"}})
	replaced := withTwo.WithRule("a", ReferenceRule{FallbackToGroup: true})

	if len(base) != 0 {
		t.Errorf("base rule set mutated: %v", base)
	}
	if len(withOne) != 1 || len(withTwo) != 2 {
		t.Errorf("unexpected sizes: %d, %d", len(withOne), len(withTwo))
	}
	if !withTwo["a"].FallbackToRegion {
		t.Error("withTwo lost rule a")
	}
	if replaced["a"].FallbackToRegion || !replaced["a"].FallbackToGroup {
		t.Errorf("WithRule did not replace rule a: %+v", replaced["a"])
	}
}
