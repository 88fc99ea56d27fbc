package server

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"coachhub/internal/analytics"
	"coachhub/internal/export"
	"coachhub/internal/models"
)

func (s *Server) handleAthleteAnalytics(w http.ResponseWriter, r *http.Request) {
	report, status, err := s.athleteAnalytics(r)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleAnalyticsExport(w http.ResponseWriter, r *http.Request) {
	report, status, err := s.athleteAnalytics(r)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}

	name := fmt.Sprintf("analytics-%d-%s.xlsx", report.AthleteID, time.Now().Format("2006-01-02"))
	path := filepath.Join(s.exportDir, name)
	if err := export.WriteAnalyticsWorkbook(path, report); err != nil {
		writeError(w, http.StatusInternalServerError, "ошибка формирования отчёта")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"file": name})
}

// athleteAnalytics собирает полный аналитический отчёт по атлету
func (s *Server) athleteAnalytics(r *http.Request) (*models.AthleteAnalytics, int, error) {
	athleteID, ok := pathID(r, "id")
	if !ok {
		return nil, http.StatusBadRequest, errors.New("некорректный id")
	}

	athlete, err := s.athletes.GetByID(athleteID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, http.StatusNotFound, errors.New("атлет не найден")
	}
	if err != nil {
		return nil, http.StatusInternalServerError, errors.New("ошибка чтения атлета")
	}

	from, to, err := dateRange(r)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	sessions, err := s.athleteSessionsWithLogs(athleteID, from, to)
	if err != nil {
		return nil, http.StatusInternalServerError, errors.New("ошибка чтения тренировок")
	}

	histories, err := s.oneRMHistories(athleteID)
	if err != nil {
		return nil, http.StatusInternalServerError, errors.New("ошибка чтения истории 1ПМ")
	}

	return analytics.BuildAthleteAnalytics(athlete, sessions, histories), http.StatusOK, nil
}

// oneRMHistories строит историю 1ПМ по каждому упражнению с текущей записью
func (s *Server) oneRMHistories(athleteID int) ([]models.OneRMHistory, error) {
	current, err := s.oneRM.GetCurrent(athleteID)
	if err != nil {
		return nil, err
	}

	histories := make([]models.OneRMHistory, 0, len(current))
	for slug, rec := range current {
		records, err := s.oneRM.History(athleteID, slug)
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			continue
		}

		h := models.OneRMHistory{
			ExerciseSlug: slug,
			ExerciseName: rec.ExerciseName,
			Records:      records,
			InitialPM:    records[0].OnePMKg,
			CurrentPM:    records[len(records)-1].OnePMKg,
		}
		if ex, ok := s.catalog.BySlug(slug); ok {
			h.MuscleGroup = ex.MuscleGroup
		}
		h.GainKg = h.CurrentPM - h.InitialPM
		if h.InitialPM > 0 {
			h.GainPercent = h.GainKg / h.InitialPM * 100
		}
		histories = append(histories, h)
	}
	return histories, nil
}
