package repository

import (
	"database/sql"
	"time"

	"coachhub/internal/models"
)

// SessionRepository работает с тренировочными сессиями и их логами
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository создаёт репозиторий сессий
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create создаёт сессию
func (r *SessionRepository) Create(s models.WorkoutSession) (int, error) {
	var id int
	err := r.db.QueryRow(`
		INSERT INTO public.workout_sessions
			(athlete_id, plan_id, session_date, week_number, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		s.AthleteID, s.PlanID, s.SessionDate.Format("2006-01-02"),
		s.WeekNumber, string(s.Status), s.Notes,
	).Scan(&id)
	return id, err
}

// AddLog добавляет запись упражнения в сессию
func (r *SessionRepository) AddLog(l models.SessionLog) (int, error) {
	var id int
	err := r.db.QueryRow(`
		INSERT INTO public.session_logs
			(session_id, exercise_id, sets_planned, sets_completed,
			 reps_planned, reps_completed, weight_planned, weight_kg,
			 rpe_target, rpe_actual, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		l.SessionID, l.ExerciseID, l.SetsPlanned, l.SetsCompleted,
		l.RepsPlanned, l.RepsCompleted, l.WeightPlanned, l.WeightKg,
		l.RPETarget, l.RPEActual, l.Notes,
	).Scan(&id)
	return id, err
}

// UpdateStatus обновляет статус сессии
func (r *SessionRepository) UpdateStatus(sessionID int, status models.SessionStatus) error {
	_, err := r.db.Exec(
		"UPDATE public.workout_sessions SET status = $1 WHERE id = $2",
		string(status), sessionID,
	)
	return err
}

// GetByID возвращает сессию с логами
func (r *SessionRepository) GetByID(sessionID int) (*models.WorkoutSession, error) {
	s := &models.WorkoutSession{}
	var notes sql.NullString
	err := r.db.QueryRow(`
		SELECT id, athlete_id, plan_id, session_date, week_number, status, notes, created_at
		FROM public.workout_sessions
		WHERE id = $1`, sessionID).Scan(
		&s.ID, &s.AthleteID, &s.PlanID, &s.SessionDate, &s.WeekNumber,
		&s.Status, &notes, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Notes = notes.String

	logs, err := r.getLogs(sessionID)
	if err != nil {
		return nil, err
	}
	s.Entries = logs
	return s, nil
}

func (r *SessionRepository) getLogs(sessionID int) ([]models.SessionLog, error) {
	rows, err := r.db.Query(`
		SELECT l.id, l.session_id, l.exercise_id, e.name, COALESCE(e.muscle_group, ''),
		       l.sets_planned, l.sets_completed, l.reps_planned, l.reps_completed,
		       COALESCE(l.weight_planned, 0), COALESCE(l.weight_kg, 0),
		       COALESCE(l.rpe_target, 0), COALESCE(l.rpe_actual, 0),
		       COALESCE(l.notes, ''), l.created_at
		FROM public.session_logs l
		JOIN public.exercises e ON e.id = l.exercise_id
		WHERE l.session_id = $1
		ORDER BY l.id`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.SessionLog
	for rows.Next() {
		var l models.SessionLog
		if err := rows.Scan(
			&l.ID, &l.SessionID, &l.ExerciseID, &l.ExerciseName, &l.MuscleGroup,
			&l.SetsPlanned, &l.SetsCompleted, &l.RepsPlanned, &l.RepsCompleted,
			&l.WeightPlanned, &l.WeightKg, &l.RPETarget, &l.RPEActual,
			&l.Notes, &l.CreatedAt,
		); err != nil {
			continue
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// GetByAthlete возвращает сессии атлета за период (без логов)
func (r *SessionRepository) GetByAthlete(athleteID int, from, to time.Time) ([]models.WorkoutSession, error) {
	rows, err := r.db.Query(`
		SELECT id, athlete_id, plan_id, session_date, week_number, status,
		       COALESCE(notes, ''), created_at
		FROM public.workout_sessions
		WHERE athlete_id = $1 AND session_date BETWEEN $2 AND $3
		ORDER BY session_date`,
		athleteID, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.WorkoutSession
	for rows.Next() {
		var s models.WorkoutSession
		if err := rows.Scan(
			&s.ID, &s.AthleteID, &s.PlanID, &s.SessionDate, &s.WeekNumber,
			&s.Status, &s.Notes, &s.CreatedAt,
		); err != nil {
			continue
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// GetLogsForAthlete возвращает все логи атлета за период, для аналитики
func (r *SessionRepository) GetLogsForAthlete(athleteID int, from, to time.Time) ([]models.SessionLog, error) {
	rows, err := r.db.Query(`
		SELECT l.id, l.session_id, l.exercise_id, e.name, COALESCE(e.muscle_group, ''),
		       l.sets_planned, l.sets_completed, l.reps_planned, l.reps_completed,
		       COALESCE(l.weight_planned, 0), COALESCE(l.weight_kg, 0),
		       COALESCE(l.rpe_target, 0), COALESCE(l.rpe_actual, 0),
		       COALESCE(l.notes, ''), l.created_at
		FROM public.session_logs l
		JOIN public.workout_sessions s ON s.id = l.session_id
		JOIN public.exercises e ON e.id = l.exercise_id
		WHERE s.athlete_id = $1 AND s.session_date BETWEEN $2 AND $3
		ORDER BY s.session_date, l.id`,
		athleteID, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.SessionLog
	for rows.Next() {
		var l models.SessionLog
		if err := rows.Scan(
			&l.ID, &l.SessionID, &l.ExerciseID, &l.ExerciseName, &l.MuscleGroup,
			&l.SetsPlanned, &l.SetsCompleted, &l.RepsPlanned, &l.RepsCompleted,
			&l.WeightPlanned, &l.WeightKg, &l.RPETarget, &l.RPEActual,
			&l.Notes, &l.CreatedAt,
		); err != nil {
			continue
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
