package repository

import (
	"database/sql"

	"coachhub/internal/models"
)

// OneRMRepository работает с записями 1ПМ атлетов.
// Структурные записи лежат в athlete_one_rm; legacy-значения, перенесённые
// из старого плоского формата, — в athlete_one_rm_legacy.
type OneRMRepository struct {
	db *sql.DB
}

// NewOneRMRepository создаёт репозиторий 1ПМ
func NewOneRMRepository(db *sql.DB) *OneRMRepository {
	return &OneRMRepository{db: db}
}

// Create добавляет новую структурную запись 1ПМ
func (r *OneRMRepository) Create(rec models.OneRM) (int, error) {
	var id int
	err := r.db.QueryRow(`
		INSERT INTO public.athlete_one_rm
			(athlete_id, exercise_id, one_pm_kg, test_date, calc_method,
			 source_weight, source_reps, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		rec.AthleteID, rec.ExerciseID, rec.OnePMKg, rec.TestDate,
		rec.CalcMethod, rec.SourceWeight, rec.SourceReps, rec.Notes,
	).Scan(&id)
	return id, err
}

// GetCurrent возвращает актуальные (последние по дате теста) структурные
// записи атлета, по одной на упражнение, ключ — слаг упражнения
func (r *OneRMRepository) GetCurrent(athleteID int) (map[string]models.OneRM, error) {
	rows, err := r.db.Query(`
		SELECT DISTINCT ON (o.exercise_id)
		       o.id, o.athlete_id, o.exercise_id, e.slug, e.name,
		       o.one_pm_kg, o.test_date, o.calc_method,
		       COALESCE(o.source_weight, 0), COALESCE(o.source_reps, 0),
		       COALESCE(o.notes, ''), o.created_at
		FROM public.athlete_one_rm o
		JOIN public.exercises e ON e.id = o.exercise_id
		WHERE o.athlete_id = $1
		ORDER BY o.exercise_id, o.test_date DESC, o.id DESC`, athleteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	current := make(map[string]models.OneRM)
	for rows.Next() {
		var rec models.OneRM
		if err := rows.Scan(
			&rec.ID, &rec.AthleteID, &rec.ExerciseID, &rec.ExerciseSlug, &rec.ExerciseName,
			&rec.OnePMKg, &rec.TestDate, &rec.CalcMethod,
			&rec.SourceWeight, &rec.SourceReps, &rec.Notes, &rec.CreatedAt,
		); err != nil {
			continue
		}
		current[rec.ExerciseSlug] = rec
	}
	return current, rows.Err()
}

// GetLegacy возвращает legacy-значения 1ПМ атлета: слаг -> кг
func (r *OneRMRepository) GetLegacy(athleteID int) (map[string]float64, error) {
	rows, err := r.db.Query(`
		SELECT exercise_slug, one_pm_kg
		FROM public.athlete_one_rm_legacy
		WHERE athlete_id = $1`, athleteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	legacy := make(map[string]float64)
	for rows.Next() {
		var slug string
		var kg float64
		if err := rows.Scan(&slug, &kg); err != nil {
			continue
		}
		legacy[slug] = kg
	}
	return legacy, rows.Err()
}

// History возвращает историю записей 1ПМ атлета по упражнению
func (r *OneRMRepository) History(athleteID int, exerciseSlug string) ([]models.OneRM, error) {
	rows, err := r.db.Query(`
		SELECT o.id, o.athlete_id, o.exercise_id, e.slug, e.name,
		       o.one_pm_kg, o.test_date, o.calc_method,
		       COALESCE(o.source_weight, 0), COALESCE(o.source_reps, 0),
		       COALESCE(o.notes, ''), o.created_at
		FROM public.athlete_one_rm o
		JOIN public.exercises e ON e.id = o.exercise_id
		WHERE o.athlete_id = $1 AND e.slug = $2
		ORDER BY o.test_date, o.id`, athleteID, exerciseSlug)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.OneRM
	for rows.Next() {
		var rec models.OneRM
		if err := rows.Scan(
			&rec.ID, &rec.AthleteID, &rec.ExerciseID, &rec.ExerciseSlug, &rec.ExerciseName,
			&rec.OnePMKg, &rec.TestDate, &rec.CalcMethod,
			&rec.SourceWeight, &rec.SourceReps, &rec.Notes, &rec.CreatedAt,
		); err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
