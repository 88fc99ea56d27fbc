package models

import "time"

// SessionStatus статус выполнения сессии
type SessionStatus string

const (
	SessionStatusPlanned   SessionStatus = "planned"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusPartial   SessionStatus = "partial"
	SessionStatusSkipped   SessionStatus = "skipped"
)

// WorkoutSession тренировочная сессия атлета
type WorkoutSession struct {
	ID          int           `json:"id"`
	AthleteID   int           `json:"athlete_id"`
	PlanID      *int          `json:"plan_id,omitempty"`
	SessionDate time.Time     `json:"session_date"`
	WeekNumber  int           `json:"week_number"`
	Status      SessionStatus `json:"status"`
	Notes       string        `json:"notes"`
	Entries     []SessionLog  `json:"entries,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// SessionLog одно записанное упражнение сессии
type SessionLog struct {
	ID            int       `json:"id"`
	SessionID     int       `json:"session_id"`
	ExerciseID    int       `json:"exercise_id"`
	ExerciseName  string    `json:"exercise_name"` // joined
	MuscleGroup   string    `json:"muscle_group"`  // joined
	SetsPlanned   int       `json:"sets_planned"`
	SetsCompleted int       `json:"sets_completed"`
	RepsPlanned   int       `json:"reps_planned"`
	RepsCompleted int       `json:"reps_completed"`
	WeightPlanned float64   `json:"weight_planned"`
	WeightKg      float64   `json:"weight_kg"`
	RPETarget     float64   `json:"rpe_target"`
	RPEActual     float64   `json:"rpe_actual"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
}
