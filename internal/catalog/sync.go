package catalog

import (
	"fmt"

	"coachhub/internal/models"
	"coachhub/internal/training"
)

// Upserter - запись каталога в базу
type Upserter interface {
	Upsert(e models.Exercise) (int, error)
	UpsertReferenceRule(rule models.ReferenceRule) error
}

// Reader - чтение каталога из базы
type Reader interface {
	GetAll() ([]models.Exercise, error)
	GetReferenceRules() ([]models.ReferenceRule, error)
}

// NewStoreFromDB строит каталог из базы - запасной источник, когда файл
// каталога недоступен. Порядок строк (sort_order, id) сохраняет контракт
// перебора якорей. Hot-reload для такого каталога не работает.
func NewStoreFromDB(repo Reader) (*Store, error) {
	exercises, err := repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения каталога из базы: %w", err)
	}
	if len(exercises) == 0 {
		return nil, fmt.Errorf("каталог в базе пуст")
	}
	ruleList, err := repo.GetReferenceRules()
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения правил из базы: %w", err)
	}

	rules := training.NewRuleSet()
	ids := make(map[string]int, len(exercises))
	for _, ex := range exercises {
		ids[ex.Slug] = ex.ID
	}
	for _, r := range ruleList {
		rules = rules.WithRule(r.ExerciseSlug, training.ReferenceRule{
			Priority:         r.Priority,
			FallbackToRegion: r.FallbackToRegion,
			FallbackToGroup:  r.FallbackToGroup,
		})
	}

	return &Store{
		exercises: exercises,
		ruleList:  ruleList,
		rules:     rules,
		ids:       ids,
	}, nil
}

// SyncToDB выгружает каталог и правила в базу и запоминает выданные базой id,
// чтобы записи сессий и 1ПМ ссылались на реальные строки exercises.
// Id переживают последующие перезагрузки файла.
func (s *Store) SyncToDB(repo Upserter) error {
	exercises := s.Exercises()
	rules := s.ReferenceRules()

	ids := make(map[string]int, len(exercises))
	for _, ex := range exercises {
		id, err := repo.Upsert(ex)
		if err != nil {
			return fmt.Errorf("ошибка записи упражнения %q: %w", ex.Slug, err)
		}
		ids[ex.Slug] = id
	}
	for _, rule := range rules {
		if err := repo.UpsertReferenceRule(rule); err != nil {
			return fmt.Errorf("ошибка записи правила %q: %w", rule.ExerciseSlug, err)
		}
	}

	s.mu.Lock()
	s.ids = ids
	for i := range s.exercises {
		if id, ok := ids[s.exercises[i].Slug]; ok {
			s.exercises[i].ID = id
		}
	}
	s.mu.Unlock()
	return nil
}
