package models

import "time"

// PlanStatus represents the status of a training plan
type PlanStatus string

const (
	PlanStatusDraft     PlanStatus = "draft"
	PlanStatusActive    PlanStatus = "active"
	PlanStatusCompleted PlanStatus = "completed"
	PlanStatusArchived  PlanStatus = "archived"
)

// PlanPhase represents phase types for periodization
type PlanPhase string

const (
	PhaseHypertrophy PlanPhase = "hypertrophy"
	PhaseStrength    PlanPhase = "strength"
	PhasePower       PlanPhase = "power"
	PhasePeaking     PlanPhase = "peaking"
	PhaseDeload      PlanPhase = "deload"
)

// NameRu returns Russian name for phase
func (p PlanPhase) NameRu() string {
	switch p {
	case PhaseHypertrophy:
		return "Гипертрофия"
	case PhaseStrength:
		return "Сила"
	case PhasePower:
		return "Мощность"
	case PhasePeaking:
		return "Пик"
	case PhaseDeload:
		return "Разгрузка"
	default:
		return string(p)
	}
}

// TrainingPlan полный план тренировок атлета
type TrainingPlan struct {
	ID          int        `json:"id"`
	AthleteID   int        `json:"athlete_id"`
	Name        string     `json:"name"`
	Goal        string     `json:"goal"`
	Description string     `json:"description"`
	TotalWeeks  int        `json:"total_weeks"`
	DaysPerWeek int        `json:"days_per_week"`
	StartDate   time.Time  `json:"start_date"`
	Status      PlanStatus `json:"status"`
	Weeks       []PlanWeek `json:"weeks,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// PlanWeek неделя плана
type PlanWeek struct {
	ID       int           `json:"id"`
	PlanID   int           `json:"plan_id"`
	WeekNum  int           `json:"week_num"`
	Phase    PlanPhase     `json:"phase"`
	Workouts []PlanWorkout `json:"workouts,omitempty"`
}

// PlanWorkout тренировка внутри недели плана
type PlanWorkout struct {
	ID        int            `json:"id"`
	WeekID    int            `json:"week_id"`
	DayNum    int            `json:"day_num"` // порядковый слот внутри недели
	Name      string         `json:"name"`
	Exercises []PlanExercise `json:"exercises,omitempty"`
}

// PlanExercise упражнение плана с предписанной нагрузкой
type PlanExercise struct {
	ID            int     `json:"id"`
	WorkoutID     int     `json:"workout_id"`
	ExerciseName  string  `json:"exercise_name"`
	Sets          int     `json:"sets"`
	Reps          string  `json:"reps"`                     // "8-10" или "5"
	WeightPercent float64 `json:"weight_percent,omitempty"` // % от референсного 1ПМ
	WeightKg      float64 `json:"weight_kg,omitempty"`      // абсолютный вес, если 1ПМ нет
	RestSeconds   int     `json:"rest_seconds"`
	Tempo         string  `json:"tempo,omitempty"`
	RPE           float64 `json:"rpe,omitempty"`
	Notes         string  `json:"notes,omitempty"`
	SortOrder     int     `json:"sort_order"`
}
