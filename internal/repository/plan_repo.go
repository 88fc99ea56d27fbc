package repository

import (
	"database/sql"
	"fmt"

	"coachhub/internal/models"
)

// PlanRepository работает с планами тренировок
type PlanRepository struct {
	db *sql.DB
}

// NewPlanRepository создаёт репозиторий планов
func NewPlanRepository(db *sql.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// Create сохраняет план целиком (план, недели, тренировки, упражнения)
// в одной транзакции
func (r *PlanRepository) Create(plan *models.TrainingPlan) (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var planID int
	err = tx.QueryRow(`
		INSERT INTO public.training_plans
			(athlete_id, name, goal, description, total_weeks, days_per_week, start_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		plan.AthleteID, plan.Name, plan.Goal, plan.Description,
		plan.TotalWeeks, plan.DaysPerWeek, plan.StartDate.Format("2006-01-02"),
		string(plan.Status),
	).Scan(&planID)
	if err != nil {
		return 0, fmt.Errorf("ошибка вставки плана: %w", err)
	}

	for _, week := range plan.Weeks {
		var weekID int
		err = tx.QueryRow(`
			INSERT INTO public.plan_weeks (plan_id, week_num, phase)
			VALUES ($1, $2, $3)
			RETURNING id`,
			planID, week.WeekNum, string(week.Phase),
		).Scan(&weekID)
		if err != nil {
			return 0, fmt.Errorf("ошибка вставки недели %d: %w", week.WeekNum, err)
		}

		for _, workout := range week.Workouts {
			var workoutID int
			err = tx.QueryRow(`
				INSERT INTO public.plan_workouts (week_id, day_num, name)
				VALUES ($1, $2, $3)
				RETURNING id`,
				weekID, workout.DayNum, workout.Name,
			).Scan(&workoutID)
			if err != nil {
				return 0, fmt.Errorf("ошибка вставки тренировки: %w", err)
			}

			for i, ex := range workout.Exercises {
				_, err = tx.Exec(`
					INSERT INTO public.plan_exercises
						(workout_id, exercise_name, sets, reps, weight_percent,
						 weight_kg, rest_seconds, tempo, rpe, notes, sort_order)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
					workoutID, ex.ExerciseName, ex.Sets, ex.Reps, ex.WeightPercent,
					ex.WeightKg, ex.RestSeconds, ex.Tempo, ex.RPE, ex.Notes, i,
				)
				if err != nil {
					return 0, fmt.Errorf("ошибка вставки упражнения: %w", err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return planID, nil
}

// GetByID возвращает план целиком
func (r *PlanRepository) GetByID(planID int) (*models.TrainingPlan, error) {
	plan := &models.TrainingPlan{}
	var goal, description sql.NullString
	err := r.db.QueryRow(`
		SELECT id, athlete_id, name, goal, description, total_weeks,
		       days_per_week, start_date, status, created_at, updated_at
		FROM public.training_plans
		WHERE id = $1`, planID).Scan(
		&plan.ID, &plan.AthleteID, &plan.Name, &goal, &description,
		&plan.TotalWeeks, &plan.DaysPerWeek, &plan.StartDate, &plan.Status,
		&plan.CreatedAt, &plan.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	plan.Goal = goal.String
	plan.Description = description.String

	weeks, err := r.getWeeks(planID)
	if err != nil {
		return nil, err
	}
	plan.Weeks = weeks
	return plan, nil
}

func (r *PlanRepository) getWeeks(planID int) ([]models.PlanWeek, error) {
	rows, err := r.db.Query(`
		SELECT id, plan_id, week_num, COALESCE(phase, '')
		FROM public.plan_weeks
		WHERE plan_id = $1
		ORDER BY week_num`, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var weeks []models.PlanWeek
	for rows.Next() {
		var w models.PlanWeek
		if err := rows.Scan(&w.ID, &w.PlanID, &w.WeekNum, &w.Phase); err != nil {
			continue
		}
		weeks = append(weeks, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range weeks {
		workouts, err := r.getWorkouts(weeks[i].ID)
		if err != nil {
			return nil, err
		}
		weeks[i].Workouts = workouts
	}
	return weeks, nil
}

func (r *PlanRepository) getWorkouts(weekID int) ([]models.PlanWorkout, error) {
	rows, err := r.db.Query(`
		SELECT id, week_id, day_num, name
		FROM public.plan_workouts
		WHERE week_id = $1
		ORDER BY day_num`, weekID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workouts []models.PlanWorkout
	for rows.Next() {
		var w models.PlanWorkout
		if err := rows.Scan(&w.ID, &w.WeekID, &w.DayNum, &w.Name); err != nil {
			continue
		}
		workouts = append(workouts, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range workouts {
		exercises, err := r.getExercises(workouts[i].ID)
		if err != nil {
			return nil, err
		}
		workouts[i].Exercises = exercises
	}
	return workouts, nil
}

func (r *PlanRepository) getExercises(workoutID int) ([]models.PlanExercise, error) {
	rows, err := r.db.Query(`
		SELECT id, workout_id, exercise_name, sets, reps,
		       COALESCE(weight_percent, 0), COALESCE(weight_kg, 0),
		       COALESCE(rest_seconds, 0), COALESCE(tempo, ''),
		       COALESCE(rpe, 0), COALESCE(notes, ''), sort_order
		FROM public.plan_exercises
		WHERE workout_id = $1
		ORDER BY sort_order`, workoutID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exercises []models.PlanExercise
	for rows.Next() {
		var ex models.PlanExercise
		if err := rows.Scan(
			&ex.ID, &ex.WorkoutID, &ex.ExerciseName, &ex.Sets, &ex.Reps,
			&ex.WeightPercent, &ex.WeightKg, &ex.RestSeconds, &ex.Tempo,
			&ex.RPE, &ex.Notes, &ex.SortOrder,
		); err != nil {
			continue
		}
		exercises = append(exercises, ex)
	}
	return exercises, rows.Err()
}

// GetActiveForAthlete возвращает активный план атлета
func (r *PlanRepository) GetActiveForAthlete(athleteID int) (*models.TrainingPlan, error) {
	var planID int
	err := r.db.QueryRow(`
		SELECT id FROM public.training_plans
		WHERE athlete_id = $1 AND status = 'active'
		ORDER BY created_at DESC
		LIMIT 1`, athleteID).Scan(&planID)
	if err != nil {
		return nil, err
	}
	return r.GetByID(planID)
}

// UpdateStatus обновляет статус плана
func (r *PlanRepository) UpdateStatus(planID int, status models.PlanStatus) error {
	_, err := r.db.Exec(
		"UPDATE public.training_plans SET status = $1, updated_at = NOW() WHERE id = $2",
		string(status), planID,
	)
	return err
}
