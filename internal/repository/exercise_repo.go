package repository

import (
	"database/sql"

	"github.com/lib/pq"

	"coachhub/internal/models"
)

// ExerciseRepository работает с каталогом упражнений и правилами референсов
type ExerciseRepository struct {
	db *sql.DB
}

// NewExerciseRepository создаёт репозиторий упражнений
func NewExerciseRepository(db *sql.DB) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

const exerciseColumns = `
	id, slug, name, COALESCE(muscle_group, ''), COALESCE(body_region, ''),
	COALESCE(one_rm_group, ''), is_primary_1pm, COALESCE(movement_type, ''),
	COALESCE(equipment, ''), sort_order, created_at`

func scanExercise(row interface{ Scan(...interface{}) error }) (*models.Exercise, error) {
	e := &models.Exercise{}
	err := row.Scan(
		&e.ID, &e.Slug, &e.Name, &e.MuscleGroup, &e.BodyRegion,
		&e.OneRMGroup, &e.IsPrimary1PM, &e.MovementType,
		&e.Equipment, &e.SortOrder, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// GetAll возвращает весь каталог в каталожном порядке.
// Порядок sort_order, id — контракт: от него зависит tie-break поиска якорей.
func (r *ExerciseRepository) GetAll() ([]models.Exercise, error) {
	rows, err := r.db.Query(`
		SELECT ` + exerciseColumns + `
		FROM public.exercises
		ORDER BY sort_order, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exercises []models.Exercise
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			continue
		}
		exercises = append(exercises, *e)
	}
	return exercises, rows.Err()
}

// Upsert вставляет или обновляет упражнение каталога по слагу
func (r *ExerciseRepository) Upsert(e models.Exercise) (int, error) {
	var id int
	err := r.db.QueryRow(`
		INSERT INTO public.exercises
			(slug, name, muscle_group, body_region, one_rm_group,
			 is_primary_1pm, movement_type, equipment, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (slug) DO UPDATE SET
			name = EXCLUDED.name,
			muscle_group = EXCLUDED.muscle_group,
			body_region = EXCLUDED.body_region,
			one_rm_group = EXCLUDED.one_rm_group,
			is_primary_1pm = EXCLUDED.is_primary_1pm,
			movement_type = EXCLUDED.movement_type,
			equipment = EXCLUDED.equipment,
			sort_order = EXCLUDED.sort_order
		RETURNING id`,
		e.Slug, e.Name, e.MuscleGroup, e.BodyRegion, e.OneRMGroup,
		e.IsPrimary1PM, e.MovementType, e.Equipment, e.SortOrder,
	).Scan(&id)
	return id, err
}

// GetReferenceRules возвращает все правила подбора референсного 1ПМ
func (r *ExerciseRepository) GetReferenceRules() ([]models.ReferenceRule, error) {
	rows, err := r.db.Query(`
		SELECT exercise_slug, COALESCE(priority, '{}'), fallback_to_region, fallback_to_group
		FROM public.reference_rules`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []models.ReferenceRule
	for rows.Next() {
		var rule models.ReferenceRule
		if err := rows.Scan(
			&rule.ExerciseSlug, pq.Array(&rule.Priority),
			&rule.FallbackToRegion, &rule.FallbackToGroup,
		); err != nil {
			continue
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

// UpsertReferenceRule вставляет или заменяет правило для упражнения
func (r *ExerciseRepository) UpsertReferenceRule(rule models.ReferenceRule) error {
	_, err := r.db.Exec(`
		INSERT INTO public.reference_rules (exercise_slug, priority, fallback_to_region, fallback_to_group)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (exercise_slug) DO UPDATE SET
			priority = EXCLUDED.priority,
			fallback_to_region = EXCLUDED.fallback_to_region,
			fallback_to_group = EXCLUDED.fallback_to_group`,
		rule.ExerciseSlug, pq.Array(rule.Priority),
		rule.FallbackToRegion, rule.FallbackToGroup,
	)
	return err
}
