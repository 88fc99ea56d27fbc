package training

// Reference 1PM resolution: determines which maximal-strength value to use
// for load prescription when an athlete has no direct record for an exercise.
// Resolution walks a fixed fallback chain: the athlete's own record, then the
// rule's priority list, then a body-region anchor, then a 1PM-group anchor.

// RefSource tags where a resolved value came from.
type RefSource string

const (
	SourceOwn      RefSource = "own"
	SourcePriority RefSource = "priority"
	SourceRegion   RefSource = "region"
	SourceGroup    RefSource = "group"
)

// Exercise is the catalog view the resolver operates on.
// IDs are opaque; catalog slice order is the anchor tie-break order.
type Exercise struct {
	ID           string `json:"id"`
	BodyRegion   string `json:"body_region,omitempty"`
	OneRMGroup   string `json:"one_rm_group,omitempty"`
	IsPrimary1PM bool   `json:"is_primary_1pm"`
}

// OneRMRecord is a structured recorded max for one exercise.
type OneRMRecord struct {
	Current1PM float64 `json:"current_1pm"`
}

// AthleteMaxes holds an athlete's recorded maxima in both supported forms:
// structured records and the legacy flat exercise->kg map.
type AthleteMaxes struct {
	Records map[string]OneRMRecord `json:"records"`
	Legacy  map[string]float64     `json:"legacy,omitempty"`
}

// ReferenceRule describes the fallback policy for one exercise.
type ReferenceRule struct {
	Priority         []string `json:"priority"`
	FallbackToRegion bool     `json:"fallback_to_region"`
	FallbackToGroup  bool     `json:"fallback_to_group"`
}

// RuleSet maps exercise ID to its reference rule. An absent entry means
// "no rule": every tier after the athlete's own record is skipped.
type RuleSet map[string]ReferenceRule

// NewRuleSet returns an empty rule set.
func NewRuleSet() RuleSet {
	return RuleSet{}
}

// WithRule returns a new rule set with the rule for exerciseID inserted or
// replaced. The receiver is left untouched.
func (rs RuleSet) WithRule(exerciseID string, rule ReferenceRule) RuleSet {
	out := make(RuleSet, len(rs)+1)
	for id, r := range rs {
		out[id] = r
	}
	out[exerciseID] = rule
	return out
}

// RefResult is the outcome of a successful resolution. SourceExerciseID is
// empty only when the value came from the athlete's own record.
type RefResult struct {
	Value            float64   `json:"value"`
	Source           RefSource `json:"source"`
	SourceExerciseID string    `json:"source_exercise_id,omitempty"`
}

// EffectiveOneRM merges the structured records and the legacy flat map into
// one exercise->kg mapping. Structured values win on key collision; the
// legacy map only supplies keys the structured form does not cover.
// Non-positive values count as absent on both sides.
//
// Policy note: "structured wins" was confirmed as the intended precedence;
// the legacy map exists only for data recorded before per-record metadata.
func EffectiveOneRM(a AthleteMaxes) map[string]float64 {
	out := make(map[string]float64, len(a.Records)+len(a.Legacy))
	for id, rec := range a.Records {
		if rec.Current1PM > 0 {
			out[id] = rec.Current1PM
		}
	}
	for id, kg := range a.Legacy {
		if kg <= 0 {
			continue
		}
		if _, ok := out[id]; !ok {
			out[id] = kg
		}
	}
	return out
}

// ResolveReference1PM resolves the working max to prescribe loads from for
// the given exercise. Tiers are evaluated in strict order and the first one
// producing a positive value wins:
//
//  1. the athlete's own effective record for the exercise;
//  2. the rule's priority list, in declared order;
//  3. the first primary-1PM catalog exercise sharing the body region;
//  4. the first primary-1PM catalog exercise sharing the 1PM group.
//
// A configured rule never overrides the athlete's own record. Anchor search
// (tiers 3-4) scans the catalog in slice order, skips the target exercise and
// only considers exercises flagged IsPrimary1PM. Returns nil when no tier
// produces a value; absence of data is a normal outcome, not an error.
// Pure function: inputs are never mutated.
func ResolveReference1PM(ex Exercise, a AthleteMaxes, rules RuleSet, catalog []Exercise) *RefResult {
	effective := EffectiveOneRM(a)

	if kg, ok := effective[ex.ID]; ok && kg > 0 {
		return &RefResult{Value: kg, Source: SourceOwn}
	}

	rule, ok := rules[ex.ID]
	if !ok {
		return nil
	}

	for _, id := range rule.Priority {
		if id == ex.ID {
			continue
		}
		if kg, ok := effective[id]; ok && kg > 0 {
			return &RefResult{Value: kg, Source: SourcePriority, SourceExerciseID: id}
		}
	}

	if rule.FallbackToRegion && ex.BodyRegion != "" {
		if res := firstAnchor(ex.ID, catalog, effective, func(c Exercise) bool {
			return c.BodyRegion == ex.BodyRegion
		}); res != nil {
			res.Source = SourceRegion
			return res
		}
	}

	if rule.FallbackToGroup && ex.OneRMGroup != "" {
		if res := firstAnchor(ex.ID, catalog, effective, func(c Exercise) bool {
			return c.OneRMGroup == ex.OneRMGroup
		}); res != nil {
			res.Source = SourceGroup
			return res
		}
	}

	return nil
}

// firstAnchor returns the first catalog exercise, in catalog order, that is
// not the target, is flagged primary, matches the predicate and has a
// positive effective value. The tie-break is deliberately "first in catalog
// order" so results stay reproducible across calls.
func firstAnchor(targetID string, catalog []Exercise, effective map[string]float64, match func(Exercise) bool) *RefResult {
	for _, c := range catalog {
		if c.ID == targetID || !c.IsPrimary1PM || !match(c) {
			continue
		}
		if kg, ok := effective[c.ID]; ok && kg > 0 {
			return &RefResult{Value: kg, SourceExerciseID: c.ID}
		}
	}
	return nil
}
