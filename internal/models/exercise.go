package models

import "time"

// Exercise represents an exercise from the catalog.
// Slug is the opaque ID the resolver and the rule set are keyed by;
// catalog order (sort_order) is part of the anchor-search contract.
type Exercise struct {
	ID           int       `json:"id"`
	Slug         string    `json:"slug"`
	Name         string    `json:"name"`
	MuscleGroup  string    `json:"muscle_group"` // грудь, спина, ноги, плечи, руки, кор
	BodyRegion   string    `json:"body_region"`  // coarse grouping for 1PM fallback
	OneRMGroup   string    `json:"one_rm_group"` // fine grouping of interchangeable lifts
	IsPrimary1PM bool      `json:"is_primary_1pm"`
	MovementType string    `json:"movement_type"` // compound, isolation
	Equipment    string    `json:"equipment"`     // штанга, гантели, тренажёр, собственный вес
	SortOrder    int       `json:"sort_order"`
	CreatedAt    time.Time `json:"created_at"`
}

// OneRM представляет структурную запись 1ПМ атлета
type OneRM struct {
	ID           int       `json:"id"`
	AthleteID    int       `json:"athlete_id"`
	ExerciseID   int       `json:"exercise_id"`
	ExerciseSlug string    `json:"exercise_slug"` // joined from exercises
	ExerciseName string    `json:"exercise_name"` // joined from exercises
	OnePMKg      float64   `json:"one_pm_kg"`
	TestDate     time.Time `json:"test_date"`
	CalcMethod   string    `json:"calc_method"` // manual, brzycki, epley, average
	SourceWeight float64   `json:"source_weight"`
	SourceReps   int       `json:"source_reps"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
}

// OneRMHistory holds the history of 1PM changes for one exercise
type OneRMHistory struct {
	ExerciseSlug string  `json:"exercise_slug"`
	ExerciseName string  `json:"exercise_name"`
	MuscleGroup  string  `json:"muscle_group"`
	Records      []OneRM `json:"records"`
	InitialPM    float64 `json:"initial_pm"`
	CurrentPM    float64 `json:"current_pm"`
	GainKg       float64 `json:"gain_kg"`
	GainPercent  float64 `json:"gain_percent"`
}

// ReferenceRule политика fallback для подбора референсного 1ПМ упражнения
type ReferenceRule struct {
	ExerciseSlug     string   `json:"exercise_slug"`
	Priority         []string `json:"priority"` // slugs, в порядке приоритета
	FallbackToRegion bool     `json:"fallback_to_region"`
	FallbackToGroup  bool     `json:"fallback_to_group"`
}
