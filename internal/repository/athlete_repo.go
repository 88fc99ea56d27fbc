package repository

import (
	"database/sql"

	"coachhub/internal/models"
)

// AthleteRepository работает с таблицей athletes
type AthleteRepository struct {
	db *sql.DB
}

// NewAthleteRepository создаёт репозиторий атлетов
func NewAthleteRepository(db *sql.DB) *AthleteRepository {
	return &AthleteRepository{db: db}
}

func scanAthlete(row interface{ Scan(...interface{}) error }) (*models.Athlete, error) {
	a := &models.Athlete{}
	var goal, notes sql.NullString
	var deletedAt sql.NullTime
	err := row.Scan(
		&a.ID, &a.Name, &a.Surname, &a.Phone, &a.BirthDate,
		&goal, &notes, &a.CreatedAt, &deletedAt,
	)
	if err != nil {
		return nil, err
	}
	a.Goal = goal.String
	a.Notes = notes.String
	if deletedAt.Valid {
		a.DeletedAt = &deletedAt.Time
	}
	return a, nil
}

// GetByID возвращает атлета по ID
func (r *AthleteRepository) GetByID(id int) (*models.Athlete, error) {
	return scanAthlete(r.db.QueryRow(`
		SELECT id, name, surname, COALESCE(phone, ''), COALESCE(birth_date, ''),
		       goal, notes, created_at, deleted_at
		FROM public.athletes
		WHERE id = $1`, id))
}

// GetAllActive возвращает всех активных (не удалённых) атлетов
func (r *AthleteRepository) GetAllActive() ([]models.Athlete, error) {
	rows, err := r.db.Query(`
		SELECT id, name, surname, COALESCE(phone, ''), COALESCE(birth_date, ''),
		       goal, notes, created_at, deleted_at
		FROM public.athletes
		WHERE deleted_at IS NULL
		ORDER BY name, surname`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var athletes []models.Athlete
	for rows.Next() {
		a, err := scanAthlete(rows)
		if err != nil {
			continue
		}
		athletes = append(athletes, *a)
	}
	return athletes, rows.Err()
}

// Create создаёт нового атлета
func (r *AthleteRepository) Create(name, surname, phone, birthDate string) (int, error) {
	var id int
	err := r.db.QueryRow(`
		INSERT INTO public.athletes (name, surname, phone, birth_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		name, surname, phone, birthDate,
	).Scan(&id)
	return id, err
}

// UpdateGoal обновляет цель атлета и пишет её в историю
func (r *AthleteRepository) UpdateGoal(athleteID int, goal string) error {
	if _, err := r.db.Exec(
		"UPDATE public.athletes SET goal = $1 WHERE id = $2",
		goal, athleteID,
	); err != nil {
		return err
	}
	_, err := r.db.Exec(
		"INSERT INTO public.athlete_goals (athlete_id, goal) VALUES ($1, $2)",
		athleteID, goal,
	)
	return err
}

// UpdateNotes обновляет заметки по атлету
func (r *AthleteRepository) UpdateNotes(athleteID int, notes string) error {
	_, err := r.db.Exec(
		"UPDATE public.athletes SET notes = $1 WHERE id = $2",
		notes, athleteID,
	)
	return err
}

// SoftDelete мягко удаляет атлета
func (r *AthleteRepository) SoftDelete(athleteID int) error {
	_, err := r.db.Exec(
		"UPDATE public.athletes SET deleted_at = NOW() WHERE id = $1",
		athleteID,
	)
	return err
}

// GoalHistory возвращает историю целей атлета
func (r *AthleteRepository) GoalHistory(athleteID int) ([]models.GoalHistoryEntry, error) {
	rows, err := r.db.Query(`
		SELECT id, athlete_id, goal, created_at
		FROM public.athlete_goals
		WHERE athlete_id = $1
		ORDER BY created_at DESC`, athleteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []models.GoalHistoryEntry
	for rows.Next() {
		var e models.GoalHistoryEntry
		if err := rows.Scan(&e.ID, &e.AthleteID, &e.Goal, &e.CreatedAt); err != nil {
			continue
		}
		history = append(history, e)
	}
	return history, rows.Err()
}
