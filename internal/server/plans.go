package server

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"coachhub/clients/ai"
	"coachhub/internal/calendar"
	"coachhub/internal/models"
	"coachhub/internal/training"
)

func (s *Server) handleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	athleteID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "некорректный id")
		return
	}
	if s.engine == nil {
		writeError(w, http.StatusServiceUnavailable, "генерация планов не настроена")
		return
	}

	var req struct {
		Goal        string `json:"goal"`
		Experience  string `json:"experience"`
		DaysPerWeek int    `json:"days_per_week"`
		TotalWeeks  int    `json:"total_weeks"`
		Equipment   string `json:"equipment"`
		Injuries    string `json:"injuries"`
		Preferences string `json:"preferences"`
		StartDate   string `json:"start_date"` // YYYY-MM-DD
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.DaysPerWeek < 1 || req.DaysPerWeek > 7 {
		writeError(w, http.StatusBadRequest, "days_per_week должен быть 1-7")
		return
	}
	if req.TotalWeeks < 1 || req.TotalWeeks > 52 {
		writeError(w, http.StatusBadRequest, "total_weeks должен быть 1-52")
		return
	}

	athlete, err := s.athletes.GetByID(athleteID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "атлет не найден")
			return
		}
		writeError(w, http.StatusInternalServerError, "ошибка чтения атлета")
		return
	}

	startDate := training.WeekMonday(time.Now().AddDate(0, 0, 7))
	if req.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "некорректная дата старта")
			return
		}
		startDate = parsed
	}

	// Референсные 1ПМ для генератора: результат резолвера по всему каталогу
	oneRM, err := s.resolvedOneRMByName(athleteID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "ошибка чтения 1ПМ атлета")
		return
	}

	goal := req.Goal
	if goal == "" {
		goal = athlete.Goal
	}

	plan, validation, err := s.engine.GeneratePlan(ai.PlanRequest{
		AthleteName: athlete.Name,
		Goal:        goal,
		Experience:  req.Experience,
		DaysPerWeek: req.DaysPerWeek,
		TotalWeeks:  req.TotalWeeks,
		Equipment:   req.Equipment,
		Injuries:    req.Injuries,
		Preferences: req.Preferences,
		StartDate:   startDate,
		OneRMData:   oneRM,
	})
	if err != nil {
		writeError(w, http.StatusBadGateway, fmt.Sprintf("ошибка генерации плана: %v", err))
		return
	}

	plan.AthleteID = athleteID
	planID, err := s.plans.Create(plan)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "ошибка сохранения плана")
		return
	}
	plan.ID = planID

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"plan":       plan,
		"validation": validation,
	})
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "некорректный id")
		return
	}

	plan, err := s.plans.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "план не найден")
			return
		}
		writeError(w, http.StatusInternalServerError, "ошибка чтения плана")
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handlePlanStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "некорректный id")
		return
	}

	var req struct {
		Status models.PlanStatus `json:"status"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	switch req.Status {
	case models.PlanStatusDraft, models.PlanStatusActive,
		models.PlanStatusCompleted, models.PlanStatusArchived:
	default:
		writeError(w, http.StatusBadRequest, "неизвестный статус: "+string(req.Status))
		return
	}

	if err := s.plans.UpdateStatus(id, req.Status); err != nil {
		writeError(w, http.StatusInternalServerError, "ошибка обновления статуса")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// planSchedule разворачивает план в датированные слоты по параметрам запроса:
// weekdays=1,3,5 (дни недели, 1=Пн), hour/min - время начала
func (s *Server) planSchedule(r *http.Request, plan *models.TrainingPlan) []training.PlanSlot {
	opts := training.ScheduleOptions{
		Start:       plan.StartDate,
		SessionHour: 18,
		Duration:    90 * time.Minute,
	}
	opts.Weekdays = parseWeekdays(r.URL.Query().Get("weekdays"), plan.DaysPerWeek)

	var refs []training.PlanWorkoutRef
	for _, week := range plan.Weeks {
		for _, workout := range week.Workouts {
			refs = append(refs, training.PlanWorkoutRef{
				WeekNum: week.WeekNum,
				DayNum:  workout.DayNum,
				Title:   workout.Name,
			})
		}
	}
	return training.ExpandPlanSchedule(refs, opts)
}

func (s *Server) handlePlanSchedule(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "некорректный id")
		return
	}

	plan, err := s.plans.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "план не найден")
			return
		}
		writeError(w, http.StatusInternalServerError, "ошибка чтения плана")
		return
	}

	writeJSON(w, http.StatusOK, s.planSchedule(r, plan))
}

func (s *Server) handlePlanICS(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "некорректный id")
		return
	}

	plan, err := s.plans.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "план не найден")
			return
		}
		writeError(w, http.StatusInternalServerError, "ошибка чтения плана")
		return
	}

	slots := s.planSchedule(r, plan)
	events := make([]calendar.Event, 0, len(slots))
	for _, slot := range slots {
		events = append(events, calendar.Event{
			Summary:     slot.Title,
			Description: fmt.Sprintf("%s, неделя %d", plan.Name, slot.WeekNum),
			StartTime:   slot.StartsAt,
			EndTime:     slot.EndsAt,
			Reminder:    60,
		})
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=plan-%d.ics", plan.ID))
	fmt.Fprint(w, calendar.GenerateMultipleICS(events))
}

// parseWeekdays разбирает "1,3,5" в дни недели (1=Пн .. 7=Вс);
// по умолчанию - равномерно с понедельника
func parseWeekdays(raw string, daysPerWeek int) []time.Weekday {
	if raw != "" {
		var out []time.Weekday
		for _, part := range strings.Split(raw, ",") {
			switch part {
			case "1":
				out = append(out, time.Monday)
			case "2":
				out = append(out, time.Tuesday)
			case "3":
				out = append(out, time.Wednesday)
			case "4":
				out = append(out, time.Thursday)
			case "5":
				out = append(out, time.Friday)
			case "6":
				out = append(out, time.Saturday)
			case "7":
				out = append(out, time.Sunday)
			}
		}
		if len(out) > 0 {
			return out
		}
	}

	// дефолтные схемы: 2 - Пн/Чт, 3 - Пн/Ср/Пт, иначе подряд с понедельника
	switch daysPerWeek {
	case 2:
		return []time.Weekday{time.Monday, time.Thursday}
	case 3:
		return []time.Weekday{time.Monday, time.Wednesday, time.Friday}
	default:
		all := []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
			time.Friday, time.Saturday, time.Sunday,
		}
		if daysPerWeek > len(all) {
			daysPerWeek = len(all)
		}
		return all[:daysPerWeek]
	}
}
