package models

import "time"

// WeeklySummary represents a weekly training summary for an athlete
type WeeklySummary struct {
	AthleteID         int       `json:"athlete_id"`
	PlanID            *int      `json:"plan_id,omitempty"`
	WeekNumber        int       `json:"week_number"`
	WeekStartDate     time.Time `json:"week_start_date"`
	SessionsPlanned   int       `json:"sessions_planned"`
	SessionsCompleted int       `json:"sessions_completed"`
	TotalTonnage      float64   `json:"total_tonnage"`
	TotalSets         int       `json:"total_sets"`
	TotalReps         int       `json:"total_reps"`
	AvgRPE            float64   `json:"avg_rpe"`
	CompliancePercent float64   `json:"compliance_percent"` // % выполнения плана
}

// MuscleGroupSummary volume per muscle group
type MuscleGroupSummary struct {
	MuscleGroup  string  `json:"muscle_group"`
	TotalSets    int     `json:"total_sets"`
	TotalReps    int     `json:"total_reps"`
	TotalTonnage float64 `json:"total_tonnage"`
}

// WeeklyMuscleVolume volume breakdown by muscle group per week
type WeeklyMuscleVolume struct {
	WeekNumber int                  `json:"week_number"`
	ByMuscle   []MuscleGroupSummary `json:"by_muscle"`
	TotalSets  int                  `json:"total_sets"`
}

// OneRMProgress progress series of recorded maxima for one exercise
type OneRMProgress struct {
	ExerciseSlug string      `json:"exercise_slug"`
	ExerciseName string      `json:"exercise_name"`
	Dates        []time.Time `json:"dates"`
	Values       []float64   `json:"values"`
	InitialPM    float64     `json:"initial_pm"`
	CurrentPM    float64     `json:"current_pm"`
	GainKg       float64     `json:"gain_kg"`
	GainPercent  float64     `json:"gain_percent"`
}

// AthleteAnalytics aggregated dashboard data for one athlete
type AthleteAnalytics struct {
	AthleteID       int                  `json:"athlete_id"`
	AthleteName     string               `json:"athlete_name"`
	TotalSessions   int                  `json:"total_sessions"`
	TotalTonnage    float64              `json:"total_tonnage"`
	AvgSessionsWeek float64              `json:"avg_sessions_week"`
	WeeklySummaries []WeeklySummary      `json:"weekly_summaries"`
	WeeklyVolume    []WeeklyMuscleVolume `json:"weekly_volume"`
	OneRMProgress   []OneRMProgress      `json:"one_rm_progress"`
}
