package server

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"coachhub/internal/models"
	"coachhub/internal/training"
)

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AthleteID   int    `json:"athlete_id"`
		PlanID      *int   `json:"plan_id"`
		SessionDate string `json:"session_date"` // YYYY-MM-DD
		WeekNumber  int    `json:"week_number"`
		Notes       string `json:"notes"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.AthleteID <= 0 {
		writeError(w, http.StatusBadRequest, "athlete_id обязателен")
		return
	}

	sessionDate := time.Now()
	if req.SessionDate != "" {
		parsed, err := time.Parse("2006-01-02", req.SessionDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "некорректная дата сессии")
			return
		}
		sessionDate = parsed
	}

	id, err := s.sessions.Create(models.WorkoutSession{
		AthleteID:   req.AthleteID,
		PlanID:      req.PlanID,
		SessionDate: sessionDate,
		WeekNumber:  req.WeekNumber,
		Status:      models.SessionStatusPlanned,
		Notes:       req.Notes,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "ошибка создания сессии")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int{"id": id})
}

// sessionResponse - сессия вместе с посчитанными метриками
type sessionResponse struct {
	*models.WorkoutSession
	Metrics training.SessionMetrics `json:"metrics"`
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "некорректный id")
		return
	}

	session, err := s.sessions.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "сессия не найдена")
			return
		}
		writeError(w, http.StatusInternalServerError, "ошибка чтения сессии")
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{
		WorkoutSession: session,
		Metrics:        training.AggregateSession(logEntries(session.Entries)),
	})
}

func (s *Server) handleAddSessionLog(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "некорректный id")
		return
	}

	var req struct {
		ExerciseSlug  string  `json:"exercise_slug"`
		SetsPlanned   int     `json:"sets_planned"`
		SetsCompleted int     `json:"sets_completed"`
		RepsPlanned   int     `json:"reps_planned"`
		RepsCompleted int     `json:"reps_completed"`
		WeightPlanned float64 `json:"weight_planned"`
		WeightKg      float64 `json:"weight_kg"`
		RPETarget     float64 `json:"rpe_target"`
		RPEActual     float64 `json:"rpe_actual"`
		Notes         string  `json:"notes"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	exercise, found := s.catalog.BySlug(req.ExerciseSlug)
	if !found {
		writeError(w, http.StatusBadRequest, "неизвестное упражнение: "+req.ExerciseSlug)
		return
	}

	id, err := s.sessions.AddLog(models.SessionLog{
		SessionID:     sessionID,
		ExerciseID:    exercise.ID,
		SetsPlanned:   req.SetsPlanned,
		SetsCompleted: req.SetsCompleted,
		RepsPlanned:   req.RepsPlanned,
		RepsCompleted: req.RepsCompleted,
		WeightPlanned: req.WeightPlanned,
		WeightKg:      req.WeightKg,
		RPETarget:     req.RPETarget,
		RPEActual:     req.RPEActual,
		Notes:         req.Notes,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "ошибка записи упражнения")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int{"id": id})
}

func (s *Server) handleSessionStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "некорректный id")
		return
	}

	var req struct {
		Status models.SessionStatus `json:"status"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	switch req.Status {
	case models.SessionStatusPlanned, models.SessionStatusCompleted,
		models.SessionStatusPartial, models.SessionStatusSkipped:
	default:
		writeError(w, http.StatusBadRequest, "неизвестный статус: "+string(req.Status))
		return
	}

	if err := s.sessions.UpdateStatus(id, req.Status); err != nil {
		writeError(w, http.StatusInternalServerError, "ошибка обновления статуса")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAthleteSessions(w http.ResponseWriter, r *http.Request) {
	athleteID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "некорректный id")
		return
	}

	from, to, err := dateRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sessions, err := s.sessions.GetByAthlete(athleteID, from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "ошибка чтения сессий")
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

// athleteSessionsWithLogs возвращает сессии атлета за период вместе с логами.
// GetByAthlete отдаёт только шапки сессий, логи дочитываются одним запросом
// и раскладываются по сессиям.
func (s *Server) athleteSessionsWithLogs(athleteID int, from, to time.Time) ([]models.WorkoutSession, error) {
	sessions, err := s.sessions.GetByAthlete(athleteID, from, to)
	if err != nil {
		return nil, err
	}
	logs, err := s.sessions.GetLogsForAthlete(athleteID, from, to)
	if err != nil {
		return nil, err
	}

	bySession := make(map[int][]models.SessionLog)
	for _, l := range logs {
		bySession[l.SessionID] = append(bySession[l.SessionID], l)
	}
	for i := range sessions {
		sessions[i].Entries = bySession[sessions[i].ID]
	}
	return sessions, nil
}

// dateRange читает параметры from/to (YYYY-MM-DD); по умолчанию последние 90 дней
func dateRange(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now()
	from := now.AddDate(0, 0, -90)
	to := now.AddDate(0, 0, 1)

	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return from, to, errors.New("некорректный параметр from")
		}
		from = parsed
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return from, to, errors.New("некорректный параметр to")
		}
		to = parsed
	}
	return from, to, nil
}

func logEntries(logs []models.SessionLog) []training.SessionEntry {
	entries := make([]training.SessionEntry, 0, len(logs))
	for _, l := range logs {
		entries = append(entries, training.SessionEntry{
			MuscleGroup:   l.MuscleGroup,
			SetsPlanned:   l.SetsPlanned,
			SetsCompleted: l.SetsCompleted,
			RepsPlanned:   l.RepsPlanned,
			RepsCompleted: l.RepsCompleted,
			WeightKg:      l.WeightKg,
			RPEActual:     l.RPEActual,
		})
	}
	return entries
}
