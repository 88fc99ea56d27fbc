package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"coachhub/clients/ai"
	"coachhub/internal/gsheets"
	"coachhub/internal/models"
	"coachhub/internal/training"
)

// Интерфейсы хранилищ - ровно те методы, которые нужны обработчикам.
// В проде сюда передаются репозитории из internal/repository,
// в тестах - фейки в памяти.

type athleteStore interface {
	GetByID(id int) (*models.Athlete, error)
	GetAllActive() ([]models.Athlete, error)
	Create(name, surname, phone, birthDate string) (int, error)
	UpdateGoal(athleteID int, goal string) error
	UpdateNotes(athleteID int, notes string) error
	SoftDelete(athleteID int) error
	GoalHistory(athleteID int) ([]models.GoalHistoryEntry, error)
}

type oneRMStore interface {
	Create(rec models.OneRM) (int, error)
	GetCurrent(athleteID int) (map[string]models.OneRM, error)
	GetLegacy(athleteID int) (map[string]float64, error)
	History(athleteID int, exerciseSlug string) ([]models.OneRM, error)
}

type sessionStore interface {
	Create(s models.WorkoutSession) (int, error)
	AddLog(l models.SessionLog) (int, error)
	UpdateStatus(sessionID int, status models.SessionStatus) error
	GetByID(sessionID int) (*models.WorkoutSession, error)
	GetByAthlete(athleteID int, from, to time.Time) ([]models.WorkoutSession, error)
	GetLogsForAthlete(athleteID int, from, to time.Time) ([]models.SessionLog, error)
}

type planStore interface {
	Create(plan *models.TrainingPlan) (int, error)
	GetByID(planID int) (*models.TrainingPlan, error)
	GetActiveForAthlete(athleteID int) (*models.TrainingPlan, error)
	UpdateStatus(planID int, status models.PlanStatus) error
}

type appointmentStore interface {
	Create(athleteID int, date time.Time, startTime, endTime string) (int, error)
	GetByDate(date time.Time) ([]models.Appointment, error)
	GetUpcomingForAthlete(athleteID int) ([]models.Appointment, error)
	UpdateStatus(appointmentID int, status models.AppointmentStatus) error
}

// catalogSource - каталог упражнений и правила референсного 1ПМ
type catalogSource interface {
	Exercises() []models.Exercise
	BySlug(slug string) (models.Exercise, bool)
	Rules() training.RuleSet
	ResolverCatalog() []training.Exercise
}

// Server - JSON HTTP API приложения
type Server struct {
	athletes     athleteStore
	oneRM        oneRMStore
	sessions     sessionStore
	plans        planStore
	appointments appointmentStore
	catalog      catalogSource
	engine       *ai.Engine
	sheets       *gsheets.Client // nil, если экспорт в Sheets не настроен
	exportDir    string

	mux *http.ServeMux
}

// Deps - зависимости сервера
type Deps struct {
	Athletes     athleteStore
	OneRM        oneRMStore
	Sessions     sessionStore
	Plans        planStore
	Appointments appointmentStore
	Catalog      catalogSource
	Engine       *ai.Engine
	Sheets       *gsheets.Client
	ExportDir    string
}

// New создаёт сервер и регистрирует маршруты
func New(deps Deps) *Server {
	s := &Server{
		athletes:     deps.Athletes,
		oneRM:        deps.OneRM,
		sessions:     deps.Sessions,
		plans:        deps.Plans,
		appointments: deps.Appointments,
		catalog:      deps.Catalog,
		engine:       deps.Engine,
		sheets:       deps.Sheets,
		exportDir:    deps.ExportDir,
		mux:          http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /api/exercises", s.handleListExercises)

	s.mux.HandleFunc("GET /api/athletes", s.handleListAthletes)
	s.mux.HandleFunc("POST /api/athletes", s.handleCreateAthlete)
	s.mux.HandleFunc("GET /api/athletes/{id}", s.handleGetAthlete)
	s.mux.HandleFunc("PATCH /api/athletes/{id}", s.handleUpdateAthlete)
	s.mux.HandleFunc("DELETE /api/athletes/{id}", s.handleDeleteAthlete)
	s.mux.HandleFunc("GET /api/athletes/{id}/goal-history", s.handleGoalHistory)

	s.mux.HandleFunc("POST /api/athletes/{id}/one-rm", s.handleCreateOneRM)
	s.mux.HandleFunc("GET /api/athletes/{id}/one-rm", s.handleCurrentOneRM)
	s.mux.HandleFunc("GET /api/athletes/{id}/one-rm/{slug}/history", s.handleOneRMHistory)
	s.mux.HandleFunc("GET /api/athletes/{id}/resolve-1rm", s.handleResolveOneRM)

	s.mux.HandleFunc("POST /api/sessions", s.handleCreateSession)
	s.mux.HandleFunc("GET /api/sessions/{id}", s.handleGetSession)
	s.mux.HandleFunc("POST /api/sessions/{id}/logs", s.handleAddSessionLog)
	s.mux.HandleFunc("PATCH /api/sessions/{id}/status", s.handleSessionStatus)
	s.mux.HandleFunc("GET /api/athletes/{id}/sessions", s.handleAthleteSessions)

	s.mux.HandleFunc("POST /api/athletes/{id}/plans", s.handleGeneratePlan)
	s.mux.HandleFunc("GET /api/plans/{id}", s.handleGetPlan)
	s.mux.HandleFunc("PATCH /api/plans/{id}/status", s.handlePlanStatus)
	s.mux.HandleFunc("GET /api/plans/{id}/schedule", s.handlePlanSchedule)
	s.mux.HandleFunc("GET /api/plans/{id}/calendar.ics", s.handlePlanICS)
	s.mux.HandleFunc("POST /api/plans/{id}/export/sheets", s.handleExportPlanSheets)

	s.mux.HandleFunc("POST /api/appointments", s.handleCreateAppointment)
	s.mux.HandleFunc("GET /api/appointments", s.handleAppointmentsByDate)
	s.mux.HandleFunc("PATCH /api/appointments/{id}/status", s.handleAppointmentStatus)
	s.mux.HandleFunc("GET /api/athletes/{id}/appointments", s.handleAthleteAppointments)
	s.mux.HandleFunc("GET /api/athletes/{id}/appointments.ics", s.handleAppointmentsICS)

	s.mux.HandleFunc("GET /api/athletes/{id}/analytics", s.handleAthleteAnalytics)
	s.mux.HandleFunc("POST /api/athletes/{id}/analytics/export", s.handleAnalyticsExport)
}

// Handler возвращает корневой http.Handler с логированием запросов
func (s *Server) Handler() http.Handler {
	return logRequests(s.mux)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s (%s)", r.Method, r.URL.Path, time.Since(start).Round(time.Millisecond))
	})
}

// --- общие помощники ---

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Ошибка записи ответа: %v", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// pathID извлекает числовой {id} из пути
func pathID(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(r.PathValue(name))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "невалидный JSON в теле запроса")
		return false
	}
	return true
}
