package server

import (
	"fmt"
	"net/http"
	"time"

	"coachhub/internal/calendar"
	"coachhub/internal/models"
)

func (s *Server) handleCreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AthleteID int    `json:"athlete_id"`
		Date      string `json:"date"` // YYYY-MM-DD
		StartTime string `json:"start_time"`
		EndTime   string `json:"end_time"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.AthleteID <= 0 {
		writeError(w, http.StatusBadRequest, "athlete_id обязателен")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "некорректная дата")
		return
	}
	if _, _, err := calendar.ParseTime(req.StartTime); err != nil {
		writeError(w, http.StatusBadRequest, "некорректное время начала")
		return
	}
	if _, _, err := calendar.ParseTime(req.EndTime); err != nil {
		writeError(w, http.StatusBadRequest, "некорректное время окончания")
		return
	}

	id, err := s.appointments.Create(req.AthleteID, date, req.StartTime, req.EndTime)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "ошибка создания записи")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int{"id": id})
}

func (s *Server) handleAppointmentsByDate(w http.ResponseWriter, r *http.Request) {
	date := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "некорректная дата")
			return
		}
		date = parsed
	}

	appointments, err := s.appointments.GetByDate(date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "ошибка чтения записей")
		return
	}
	writeJSON(w, http.StatusOK, appointments)
}

func (s *Server) handleAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "некорректный id")
		return
	}

	var req struct {
		Status models.AppointmentStatus `json:"status"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	switch req.Status {
	case models.AppointmentScheduled, models.AppointmentConfirmed,
		models.AppointmentCompleted, models.AppointmentCancelled:
	default:
		writeError(w, http.StatusBadRequest, "неизвестный статус: "+string(req.Status))
		return
	}

	if err := s.appointments.UpdateStatus(id, req.Status); err != nil {
		writeError(w, http.StatusInternalServerError, "ошибка обновления статуса")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAthleteAppointments(w http.ResponseWriter, r *http.Request) {
	athleteID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "некорректный id")
		return
	}

	appointments, err := s.appointments.GetUpcomingForAthlete(athleteID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "ошибка чтения записей")
		return
	}
	writeJSON(w, http.StatusOK, appointments)
}

func (s *Server) handleAppointmentsICS(w http.ResponseWriter, r *http.Request) {
	athleteID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "некорректный id")
		return
	}

	appointments, err := s.appointments.GetUpcomingForAthlete(athleteID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "ошибка чтения записей")
		return
	}

	events := make([]calendar.Event, 0, len(appointments))
	for _, a := range appointments {
		event, err := appointmentEvent(a)
		if err != nil {
			continue // запись с нечитаемым временем не попадает в календарь
		}
		events = append(events, event)
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=athlete-%d.ics", athleteID))
	fmt.Fprint(w, calendar.GenerateMultipleICS(events))
}

// appointmentEvent собирает событие календаря из записи на тренировку
func appointmentEvent(a models.Appointment) (calendar.Event, error) {
	startHour, startMin, err := calendar.ParseTime(a.StartTime)
	if err != nil {
		return calendar.Event{}, err
	}
	start := calendar.CombineDateTime(a.AppointmentDate, startHour, startMin)

	end := start.Add(time.Hour)
	if endHour, endMin, err := calendar.ParseTime(a.EndTime); err == nil {
		end = calendar.CombineDateTime(a.AppointmentDate, endHour, endMin)
	}

	summary := "Тренировка"
	if a.AthleteName != "" {
		summary = "Тренировка: " + a.AthleteName
	}
	return calendar.Event{
		Summary:   summary,
		StartTime: start,
		EndTime:   end,
		Reminder:  60,
	}, nil
}
