package server

import (
	"net/http"
	"time"

	"coachhub/internal/models"
	"coachhub/internal/training"
)

func (s *Server) handleCreateOneRM(w http.ResponseWriter, r *http.Request) {
	athleteID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "некорректный id")
		return
	}

	var req struct {
		ExerciseSlug string  `json:"exercise_slug"`
		OnePMKg      float64 `json:"one_pm_kg"`
		Method       string  `json:"method"` // manual, brzycki, epley, average
		SourceWeight float64 `json:"source_weight"`
		SourceReps   int     `json:"source_reps"`
		TestDate     string  `json:"test_date"` // YYYY-MM-DD, по умолчанию сегодня
		Notes        string  `json:"notes"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	exercise, found := s.catalog.BySlug(req.ExerciseSlug)
	if !found {
		writeError(w, http.StatusBadRequest, "неизвестное упражнение: "+req.ExerciseSlug)
		return
	}

	method := training.CalcMethod(req.Method)
	if method == "" {
		method = training.MethodManual
	}

	onePM := req.OnePMKg
	if method != training.MethodManual {
		if req.SourceWeight <= 0 || req.SourceReps <= 0 {
			writeError(w, http.StatusBadRequest, "для расчётного 1ПМ нужны вес и повторы")
			return
		}
		onePM = training.Estimate1PM(req.SourceWeight, req.SourceReps, method)
	}
	if onePM <= 0 {
		writeError(w, http.StatusBadRequest, "1ПМ должен быть положительным")
		return
	}

	testDate := time.Now()
	if req.TestDate != "" {
		parsed, err := time.Parse("2006-01-02", req.TestDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "некорректная дата теста")
			return
		}
		testDate = parsed
	}

	id, err := s.oneRM.Create(models.OneRM{
		AthleteID:    athleteID,
		ExerciseID:   exercise.ID,
		OnePMKg:      onePM,
		TestDate:     testDate,
		CalcMethod:   string(method),
		SourceWeight: req.SourceWeight,
		SourceReps:   req.SourceReps,
		Notes:        req.Notes,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "ошибка сохранения 1ПМ")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":        id,
		"one_pm_kg": onePM,
		"method":    training.MethodName(method),
	})
}

func (s *Server) handleCurrentOneRM(w http.ResponseWriter, r *http.Request) {
	athleteID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "некорректный id")
		return
	}

	current, err := s.oneRM.GetCurrent(athleteID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "ошибка чтения 1ПМ")
		return
	}
	writeJSON(w, http.StatusOK, current)
}

func (s *Server) handleOneRMHistory(w http.ResponseWriter, r *http.Request) {
	athleteID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "некорректный id")
		return
	}
	slug := r.PathValue("slug")

	history, err := s.oneRM.History(athleteID, slug)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "ошибка чтения истории 1ПМ")
		return
	}
	writeJSON(w, http.StatusOK, history)
}

// resolveResponse - ответ резолвера референсного 1ПМ.
// resolved = null - нормальный исход "данных нет", не ошибка.
type resolveResponse struct {
	ExerciseSlug string              `json:"exercise_slug"`
	Resolved     *training.RefResult `json:"resolved"`
}

func (s *Server) handleResolveOneRM(w http.ResponseWriter, r *http.Request) {
	athleteID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "некорректный id")
		return
	}
	slug := r.URL.Query().Get("exercise")
	if slug == "" {
		writeError(w, http.StatusBadRequest, "параметр exercise обязателен")
		return
	}

	exercise, found := s.catalog.BySlug(slug)
	if !found {
		writeError(w, http.StatusNotFound, "неизвестное упражнение: "+slug)
		return
	}

	maxes, err := s.athleteMaxes(athleteID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "ошибка чтения 1ПМ атлета")
		return
	}

	result := training.ResolveReference1PM(
		training.Exercise{
			ID:           exercise.Slug,
			BodyRegion:   exercise.BodyRegion,
			OneRMGroup:   exercise.OneRMGroup,
			IsPrimary1PM: exercise.IsPrimary1PM,
		},
		maxes,
		s.catalog.Rules(),
		s.catalog.ResolverCatalog(),
	)

	writeJSON(w, http.StatusOK, resolveResponse{ExerciseSlug: slug, Resolved: result})
}

// athleteMaxes собирает 1ПМ-вью атлета: структурные записи плюс legacy-значения
func (s *Server) athleteMaxes(athleteID int) (training.AthleteMaxes, error) {
	current, err := s.oneRM.GetCurrent(athleteID)
	if err != nil {
		return training.AthleteMaxes{}, err
	}
	legacy, err := s.oneRM.GetLegacy(athleteID)
	if err != nil {
		return training.AthleteMaxes{}, err
	}

	maxes := training.AthleteMaxes{
		Records: make(map[string]training.OneRMRecord, len(current)),
		Legacy:  legacy,
	}
	for slug, rec := range current {
		maxes.Records[slug] = training.OneRMRecord{Current1PM: rec.OnePMKg}
	}
	return maxes, nil
}

// resolvedOneRMByName возвращает карту "название упражнения -> референсный 1ПМ"
// по всему каталогу; используется генератором планов и экспортом
func (s *Server) resolvedOneRMByName(athleteID int) (map[string]float64, error) {
	maxes, err := s.athleteMaxes(athleteID)
	if err != nil {
		return nil, err
	}

	rules := s.catalog.Rules()
	resolverCatalog := s.catalog.ResolverCatalog()

	out := make(map[string]float64)
	for _, ex := range s.catalog.Exercises() {
		result := training.ResolveReference1PM(
			training.Exercise{
				ID:           ex.Slug,
				BodyRegion:   ex.BodyRegion,
				OneRMGroup:   ex.OneRMGroup,
				IsPrimary1PM: ex.IsPrimary1PM,
			},
			maxes, rules, resolverCatalog,
		)
		if result != nil {
			out[ex.Name] = result.Value
		}
	}
	return out, nil
}
