package server

import (
	"database/sql"
	"errors"
	"net/http"
)

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Exercises())
}

func (s *Server) handleListAthletes(w http.ResponseWriter, r *http.Request) {
	athletes, err := s.athletes.GetAllActive()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "ошибка чтения атлетов")
		return
	}
	writeJSON(w, http.StatusOK, athletes)
}

func (s *Server) handleCreateAthlete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string `json:"name"`
		Surname   string `json:"surname"`
		Phone     string `json:"phone"`
		BirthDate string `json:"birth_date"`
		Goal      string `json:"goal"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "имя обязательно")
		return
	}

	id, err := s.athletes.Create(req.Name, req.Surname, req.Phone, req.BirthDate)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "ошибка создания атлета")
		return
	}
	if req.Goal != "" {
		if err := s.athletes.UpdateGoal(id, req.Goal); err != nil {
			writeError(w, http.StatusInternalServerError, "ошибка сохранения цели")
			return
		}
	}

	writeJSON(w, http.StatusCreated, map[string]int{"id": id})
}

func (s *Server) handleGetAthlete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "некорректный id")
		return
	}

	athlete, err := s.athletes.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "атлет не найден")
			return
		}
		writeError(w, http.StatusInternalServerError, "ошибка чтения атлета")
		return
	}
	writeJSON(w, http.StatusOK, athlete)
}

func (s *Server) handleUpdateAthlete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "некорректный id")
		return
	}

	var req struct {
		Goal  *string `json:"goal"`
		Notes *string `json:"notes"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Goal == nil && req.Notes == nil {
		writeError(w, http.StatusBadRequest, "нечего обновлять")
		return
	}

	if req.Goal != nil {
		if err := s.athletes.UpdateGoal(id, *req.Goal); err != nil {
			writeError(w, http.StatusInternalServerError, "ошибка обновления цели")
			return
		}
	}
	if req.Notes != nil {
		if err := s.athletes.UpdateNotes(id, *req.Notes); err != nil {
			writeError(w, http.StatusInternalServerError, "ошибка обновления заметок")
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteAthlete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "некорректный id")
		return
	}
	if err := s.athletes.SoftDelete(id); err != nil {
		writeError(w, http.StatusInternalServerError, "ошибка удаления атлета")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGoalHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "некорректный id")
		return
	}
	history, err := s.athletes.GoalHistory(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "ошибка чтения истории целей")
		return
	}
	writeJSON(w, http.StatusOK, history)
}
