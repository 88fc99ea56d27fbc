package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"coachhub/internal/models"
	"coachhub/internal/training"
)

// catalogFile формат JSON-файла каталога
type catalogFile struct {
	Exercises []models.Exercise      `json:"exercises"`
	Rules     []models.ReferenceRule `json:"reference_rules"`
}

// Store хранит каталог упражнений и правила референсного 1ПМ.
// Порядок упражнений в файле сохраняется: он определяет порядок
// перебора якорей при fallback-поиске 1ПМ.
type Store struct {
	mu        sync.RWMutex
	path      string
	exercises []models.Exercise
	ruleList  []models.ReferenceRule
	rules     training.RuleSet
	ids       map[string]int // slug -> id из базы, переживает перезагрузку файла
}

// NewStore создаёт хранилище и загружает каталог из файла
func NewStore(path string) (*Store, error) {
	s := &Store{path: path, rules: training.NewRuleSet()}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload перечитывает каталог с диска. При ошибке прежнее содержимое
// остаётся нетронутым.
func (s *Store) Reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("ошибка чтения каталога %s: %w", s.path, err)
	}

	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("ошибка парсинга каталога %s: %w", s.path, err)
	}

	seen := make(map[string]bool, len(file.Exercises))
	for i, ex := range file.Exercises {
		if ex.Slug == "" {
			return fmt.Errorf("каталог %s: упражнение #%d без slug", s.path, i+1)
		}
		if seen[ex.Slug] {
			return fmt.Errorf("каталог %s: дубликат slug %q", s.path, ex.Slug)
		}
		seen[ex.Slug] = true
	}

	rules := training.NewRuleSet()
	for _, r := range file.Rules {
		if !seen[r.ExerciseSlug] {
			return fmt.Errorf("каталог %s: правило для неизвестного упражнения %q", s.path, r.ExerciseSlug)
		}
		rules = rules.WithRule(r.ExerciseSlug, training.ReferenceRule{
			Priority:         r.Priority,
			FallbackToRegion: r.FallbackToRegion,
			FallbackToGroup:  r.FallbackToGroup,
		})
	}

	s.mu.Lock()
	s.exercises = file.Exercises
	s.ruleList = file.Rules
	s.rules = rules
	for i := range s.exercises {
		if id, ok := s.ids[s.exercises[i].Slug]; ok {
			s.exercises[i].ID = id
		}
	}
	s.mu.Unlock()
	return nil
}

// ReferenceRules возвращает правила в файловом виде
func (s *Store) ReferenceRules() []models.ReferenceRule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ReferenceRule, len(s.ruleList))
	copy(out, s.ruleList)
	return out
}

// Exercises возвращает копию каталога в файловом порядке
func (s *Store) Exercises() []models.Exercise {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Exercise, len(s.exercises))
	copy(out, s.exercises)
	return out
}

// BySlug возвращает упражнение по slug
func (s *Store) BySlug(slug string) (models.Exercise, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ex := range s.exercises {
		if ex.Slug == slug {
			return ex, true
		}
	}
	return models.Exercise{}, false
}

// Rules возвращает текущий набор правил референсного 1ПМ
func (s *Store) Rules() training.RuleSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rules
}

// ResolverCatalog возвращает каталог в виде, пригодном для резолвера 1ПМ
func (s *Store) ResolverCatalog() []training.Exercise {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]training.Exercise, 0, len(s.exercises))
	for _, ex := range s.exercises {
		out = append(out, training.Exercise{
			ID:           ex.Slug,
			BodyRegion:   ex.BodyRegion,
			OneRMGroup:   ex.OneRMGroup,
			IsPrimary1PM: ex.IsPrimary1PM,
		})
	}
	return out
}
