package server

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"coachhub/clients/ai"
	"coachhub/internal/models"
	"coachhub/internal/training"
)

// --- in-memory фейки хранилищ ---

type fakeAthletes struct {
	byID   map[int]*models.Athlete
	nextID int
	goals  map[int][]models.GoalHistoryEntry
}

func newFakeAthletes() *fakeAthletes {
	return &fakeAthletes{
		byID:   map[int]*models.Athlete{},
		nextID: 1,
		goals:  map[int][]models.GoalHistoryEntry{},
	}
}

func (f *fakeAthletes) GetByID(id int) (*models.Athlete, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return a, nil
}

func (f *fakeAthletes) GetAllActive() ([]models.Athlete, error) {
	var out []models.Athlete
	for _, a := range f.byID {
		if a.DeletedAt == nil {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAthletes) Create(name, surname, phone, birthDate string) (int, error) {
	id := f.nextID
	f.nextID++
	f.byID[id] = &models.Athlete{
		ID: id, Name: name, Surname: surname, Phone: phone, BirthDate: birthDate,
	}
	return id, nil
}

func (f *fakeAthletes) UpdateGoal(id int, goal string) error {
	if a, ok := f.byID[id]; ok {
		a.Goal = goal
		f.goals[id] = append(f.goals[id], models.GoalHistoryEntry{AthleteID: id, Goal: goal})
	}
	return nil
}

func (f *fakeAthletes) UpdateNotes(id int, notes string) error {
	if a, ok := f.byID[id]; ok {
		a.Notes = notes
	}
	return nil
}

func (f *fakeAthletes) SoftDelete(id int) error {
	if a, ok := f.byID[id]; ok {
		now := time.Now()
		a.DeletedAt = &now
	}
	return nil
}

func (f *fakeAthletes) GoalHistory(id int) ([]models.GoalHistoryEntry, error) {
	return f.goals[id], nil
}

type fakeOneRM struct {
	current map[int]map[string]models.OneRM // athleteID -> slug -> запись
	legacy  map[int]map[string]float64
	history map[string][]models.OneRM // "athleteID/slug"
	nextID  int
}

func newFakeOneRM() *fakeOneRM {
	return &fakeOneRM{
		current: map[int]map[string]models.OneRM{},
		legacy:  map[int]map[string]float64{},
		history: map[string][]models.OneRM{},
		nextID:  1,
	}
}

func (f *fakeOneRM) put(athleteID int, slug string, kg float64) {
	if f.current[athleteID] == nil {
		f.current[athleteID] = map[string]models.OneRM{}
	}
	rec := models.OneRM{ID: f.nextID, AthleteID: athleteID, ExerciseSlug: slug, OnePMKg: kg}
	f.nextID++
	f.current[athleteID][slug] = rec
	key := historyKey(athleteID, slug)
	f.history[key] = append(f.history[key], rec)
}

func historyKey(athleteID int, slug string) string {
	return fmt.Sprintf("%d/%s", athleteID, slug)
}

func (f *fakeOneRM) Create(rec models.OneRM) (int, error) {
	id := f.nextID
	f.nextID++
	rec.ID = id
	if f.current[rec.AthleteID] == nil {
		f.current[rec.AthleteID] = map[string]models.OneRM{}
	}
	return id, nil
}

func (f *fakeOneRM) GetCurrent(athleteID int) (map[string]models.OneRM, error) {
	out := map[string]models.OneRM{}
	for slug, rec := range f.current[athleteID] {
		out[slug] = rec
	}
	return out, nil
}

func (f *fakeOneRM) GetLegacy(athleteID int) (map[string]float64, error) {
	out := map[string]float64{}
	for slug, kg := range f.legacy[athleteID] {
		out[slug] = kg
	}
	return out, nil
}

func (f *fakeOneRM) History(athleteID int, slug string) ([]models.OneRM, error) {
	return f.history[historyKey(athleteID, slug)], nil
}

type fakeSessions struct {
	byID   map[int]*models.WorkoutSession
	nextID int
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{byID: map[int]*models.WorkoutSession{}, nextID: 1}
}

func (f *fakeSessions) Create(s models.WorkoutSession) (int, error) {
	id := f.nextID
	f.nextID++
	s.ID = id
	f.byID[id] = &s
	return id, nil
}

func (f *fakeSessions) AddLog(l models.SessionLog) (int, error) {
	s, ok := f.byID[l.SessionID]
	if !ok {
		return 0, sql.ErrNoRows
	}
	l.ID = f.nextID
	f.nextID++
	s.Entries = append(s.Entries, l)
	return l.ID, nil
}

func (f *fakeSessions) UpdateStatus(id int, status models.SessionStatus) error {
	s, ok := f.byID[id]
	if !ok {
		return sql.ErrNoRows
	}
	s.Status = status
	return nil
}

func (f *fakeSessions) GetByID(id int) (*models.WorkoutSession, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return s, nil
}

// GetByAthlete, как и настоящий репозиторий, отдаёт шапки сессий без логов
func (f *fakeSessions) GetByAthlete(athleteID int, from, to time.Time) ([]models.WorkoutSession, error) {
	var out []models.WorkoutSession
	for _, s := range f.byID {
		if s.AthleteID == athleteID && !s.SessionDate.Before(from) && !s.SessionDate.After(to) {
			header := *s
			header.Entries = nil
			out = append(out, header)
		}
	}
	return out, nil
}

func (f *fakeSessions) GetLogsForAthlete(athleteID int, from, to time.Time) ([]models.SessionLog, error) {
	var out []models.SessionLog
	for _, s := range f.byID {
		if s.AthleteID == athleteID && !s.SessionDate.Before(from) && !s.SessionDate.After(to) {
			out = append(out, s.Entries...)
		}
	}
	return out, nil
}

type fakePlans struct {
	byID   map[int]*models.TrainingPlan
	nextID int
}

func newFakePlans() *fakePlans {
	return &fakePlans{byID: map[int]*models.TrainingPlan{}, nextID: 1}
}

func (f *fakePlans) Create(plan *models.TrainingPlan) (int, error) {
	id := f.nextID
	f.nextID++
	stored := *plan
	stored.ID = id
	f.byID[id] = &stored
	return id, nil
}

func (f *fakePlans) GetByID(id int) (*models.TrainingPlan, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return p, nil
}

func (f *fakePlans) GetActiveForAthlete(athleteID int) (*models.TrainingPlan, error) {
	for _, p := range f.byID {
		if p.AthleteID == athleteID && p.Status == models.PlanStatusActive {
			return p, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakePlans) UpdateStatus(id int, status models.PlanStatus) error {
	p, ok := f.byID[id]
	if !ok {
		return sql.ErrNoRows
	}
	p.Status = status
	return nil
}

type fakeAppointments struct {
	byID   map[int]*models.Appointment
	nextID int
}

func newFakeAppointments() *fakeAppointments {
	return &fakeAppointments{byID: map[int]*models.Appointment{}, nextID: 1}
}

func (f *fakeAppointments) Create(athleteID int, date time.Time, startTime, endTime string) (int, error) {
	id := f.nextID
	f.nextID++
	f.byID[id] = &models.Appointment{
		ID: id, AthleteID: athleteID, AppointmentDate: date,
		StartTime: startTime, EndTime: endTime,
		Status: models.AppointmentScheduled,
	}
	return id, nil
}

func (f *fakeAppointments) GetByDate(date time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.byID {
		if a.AppointmentDate.Format("2006-01-02") == date.Format("2006-01-02") {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppointments) GetUpcomingForAthlete(athleteID int) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.byID {
		if a.AthleteID == athleteID && a.Status != models.AppointmentCancelled {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppointments) UpdateStatus(id int, status models.AppointmentStatus) error {
	a, ok := f.byID[id]
	if !ok {
		return sql.ErrNoRows
	}
	a.Status = status
	return nil
}

// fakeCatalog - фиксированный каталог для тестов: жим лёжа с правилом
// fallback на армейский жим, приседания отдельной группой
type fakeCatalog struct {
	exercises []models.Exercise
	rules     training.RuleSet
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		exercises: []models.Exercise{
			{ID: 1, Slug: "bench-press", Name: "Жим лёжа", MuscleGroup: "грудь",
				BodyRegion: "верх", OneRMGroup: "жим", IsPrimary1PM: true},
			{ID: 2, Slug: "incline-press", Name: "Жим на наклонной", MuscleGroup: "грудь",
				BodyRegion: "верх", OneRMGroup: "жим"},
			{ID: 3, Slug: "overhead-press", Name: "Армейский жим", MuscleGroup: "плечи",
				BodyRegion: "верх", OneRMGroup: "жим", IsPrimary1PM: true},
			{ID: 4, Slug: "back-squat", Name: "Присед со штангой", MuscleGroup: "ноги",
				BodyRegion: "низ", OneRMGroup: "присед", IsPrimary1PM: true},
		},
		rules: training.NewRuleSet().WithRule("incline-press", training.ReferenceRule{
			Priority:         []string{"bench-press"},
			FallbackToRegion: true,
			FallbackToGroup:  true,
		}),
	}
}

func (f *fakeCatalog) Exercises() []models.Exercise { return f.exercises }

func (f *fakeCatalog) BySlug(slug string) (models.Exercise, bool) {
	for _, ex := range f.exercises {
		if ex.Slug == slug {
			return ex, true
		}
	}
	return models.Exercise{}, false
}

func (f *fakeCatalog) Rules() training.RuleSet { return f.rules }

func (f *fakeCatalog) ResolverCatalog() []training.Exercise {
	out := make([]training.Exercise, 0, len(f.exercises))
	for _, ex := range f.exercises {
		out = append(out, training.Exercise{
			ID:           ex.Slug,
			BodyRegion:   ex.BodyRegion,
			OneRMGroup:   ex.OneRMGroup,
			IsPrimary1PM: ex.IsPrimary1PM,
		})
	}
	return out
}

type testEnv struct {
	athletes     *fakeAthletes
	oneRM        *fakeOneRM
	sessions     *fakeSessions
	plans        *fakePlans
	appointments *fakeAppointments
	handler      http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		athletes:     newFakeAthletes(),
		oneRM:        newFakeOneRM(),
		sessions:     newFakeSessions(),
		plans:        newFakePlans(),
		appointments: newFakeAppointments(),
	}
	srv := New(Deps{
		Athletes:     env.athletes,
		OneRM:        env.oneRM,
		Sessions:     env.sessions,
		Plans:        env.plans,
		Appointments: env.appointments,
		Catalog:      newFakeCatalog(),
		Engine:       ai.NewEngineWithProvider(ai.NewMockProvider()),
		ExportDir:    t.TempDir(),
	})
	env.handler = srv.Handler()
	return env
}

func (env *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	return rec
}

func decodeResp(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("невалидный JSON ответа: %v\n%s", err, rec.Body.String())
	}
}

// --- тесты ---

func TestCreateAndGetAthlete(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "POST", "/api/athletes", map[string]string{
		"name": "Иван", "surname": "Петров", "goal": "сила",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("ожидался 201, получен %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID int `json:"id"`
	}
	decodeResp(t, rec, &created)

	rec = env.do(t, "GET", "/api/athletes/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("ожидался 200, получен %d", rec.Code)
	}
	var athlete models.Athlete
	decodeResp(t, rec, &athlete)
	if athlete.Name != "Иван" || athlete.Goal != "сила" {
		t.Errorf("неожиданный атлет: %+v", athlete)
	}

	rec = env.do(t, "GET", "/api/athletes/99", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("для несуществующего атлета ожидался 404, получен %d", rec.Code)
	}
}

func TestCreateAthleteRequiresName(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, "POST", "/api/athletes", map[string]string{"surname": "Петров"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("без имени ожидался 400, получен %d", rec.Code)
	}
}

func TestCreateOneRMEstimated(t *testing.T) {
	env := newTestEnv(t)
	env.athletes.Create("Иван", "", "", "")

	rec := env.do(t, "POST", "/api/athletes/1/one-rm", map[string]interface{}{
		"exercise_slug": "bench-press",
		"method":        "epley",
		"source_weight": 100.0,
		"source_reps":   5,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("ожидался 201, получен %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		OnePMKg float64 `json:"one_pm_kg"`
	}
	decodeResp(t, rec, &resp)
	if resp.OnePMKg != 116.65 {
		t.Errorf("Эпли от 100x5: ожидалось 116.65, получено %v", resp.OnePMKg)
	}
}

func TestCreateOneRMUnknownExercise(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, "POST", "/api/athletes/1/one-rm", map[string]interface{}{
		"exercise_slug": "no-such",
		"one_pm_kg":     100.0,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("для неизвестного slug ожидался 400, получен %d", rec.Code)
	}
}

func TestResolveOneRM(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(f *fakeOneRM)
		exercise string
		source   training.RefSource
		sourceID string
		value    float64
		null     bool
	}{
		{
			name:     "собственный 1ПМ побеждает",
			setup:    func(f *fakeOneRM) { f.put(1, "incline-press", 80) },
			exercise: "incline-press",
			source:   training.SourceOwn,
			value:    80,
		},
		{
			name:     "приоритетный список",
			setup:    func(f *fakeOneRM) { f.put(1, "bench-press", 100) },
			exercise: "incline-press",
			source:   training.SourcePriority,
			sourceID: "bench-press",
			value:    100,
		},
		{
			name: "якорь региона при пустом приоритете",
			setup: func(f *fakeOneRM) {
				f.put(1, "overhead-press", 60)
			},
			exercise: "incline-press",
			source:   training.SourceRegion,
			sourceID: "overhead-press",
			value:    60,
		},
		{
			name:     "нет данных - resolved null",
			setup:    func(f *fakeOneRM) {},
			exercise: "incline-press",
			null:     true,
		},
		{
			name:     "legacy-значение участвует",
			setup:    func(f *fakeOneRM) { f.legacy[1] = map[string]float64{"bench-press": 95} },
			exercise: "incline-press",
			source:   training.SourcePriority,
			sourceID: "bench-press",
			value:    95,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.athletes.Create("Иван", "", "", "")
			tt.setup(env.oneRM)

			rec := env.do(t, "GET", "/api/athletes/1/resolve-1rm?exercise="+tt.exercise, nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("ожидался 200, получен %d: %s", rec.Code, rec.Body.String())
			}

			var resp resolveResponse
			decodeResp(t, rec, &resp)
			if tt.null {
				if resp.Resolved != nil {
					t.Fatalf("ожидался resolved=null, получено %+v", resp.Resolved)
				}
				return
			}
			if resp.Resolved == nil {
				t.Fatal("ожидался результат, получен null")
			}
			if resp.Resolved.Source != tt.source {
				t.Errorf("источник: ожидался %s, получен %s", tt.source, resp.Resolved.Source)
			}
			if resp.Resolved.Value != tt.value {
				t.Errorf("значение: ожидалось %v, получено %v", tt.value, resp.Resolved.Value)
			}
			if tt.sourceID != "" && resp.Resolved.SourceExerciseID != tt.sourceID {
				t.Errorf("источник-упражнение: ожидалось %s, получено %s",
					tt.sourceID, resp.Resolved.SourceExerciseID)
			}
		})
	}
}

func TestResolveOneRMUnknownExercise(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, "GET", "/api/athletes/1/resolve-1rm?exercise=no-such", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("ожидался 404, получен %d", rec.Code)
	}

	rec = env.do(t, "GET", "/api/athletes/1/resolve-1rm", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("без параметра exercise ожидался 400, получен %d", rec.Code)
	}
}

func TestSessionLifecycle(t *testing.T) {
	env := newTestEnv(t)
	env.athletes.Create("Иван", "", "", "")

	rec := env.do(t, "POST", "/api/sessions", map[string]interface{}{
		"athlete_id":   1,
		"session_date": "2026-03-02",
		"week_number":  1,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("создание сессии: ожидался 201, получен %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, "POST", "/api/sessions/1/logs", map[string]interface{}{
		"exercise_slug":  "bench-press",
		"sets_planned":   4,
		"sets_completed": 4,
		"reps_completed": 8,
		"weight_kg":      80.0,
		"rpe_actual":     8.0,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("лог упражнения: ожидался 201, получен %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, "PATCH", "/api/sessions/1/status", map[string]string{"status": "completed"})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("смена статуса: ожидался 204, получен %d", rec.Code)
	}

	rec = env.do(t, "GET", "/api/sessions/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("чтение сессии: ожидался 200, получен %d", rec.Code)
	}
	var resp struct {
		Status  string                  `json:"status"`
		Metrics training.SessionMetrics `json:"metrics"`
	}
	decodeResp(t, rec, &resp)
	if resp.Status != "completed" {
		t.Errorf("статус: ожидался completed, получен %s", resp.Status)
	}
	// 4 подхода x 8 повторов x 80 кг
	if resp.Metrics.TonnageKg != 2560 {
		t.Errorf("тоннаж: ожидалось 2560, получено %v", resp.Metrics.TonnageKg)
	}
}

func TestSessionStatusValidation(t *testing.T) {
	env := newTestEnv(t)
	env.sessions.Create(models.WorkoutSession{AthleteID: 1, SessionDate: time.Now()})

	rec := env.do(t, "PATCH", "/api/sessions/1/status", map[string]string{"status": "done"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("для неизвестного статуса ожидался 400, получен %d", rec.Code)
	}
}

func TestGeneratePlan(t *testing.T) {
	env := newTestEnv(t)
	env.athletes.Create("Иван", "", "", "")
	env.oneRM.put(1, "bench-press", 100)

	rec := env.do(t, "POST", "/api/athletes/1/plans", map[string]interface{}{
		"goal":          "сила",
		"experience":    "intermediate",
		"days_per_week": 3,
		"total_weeks":   8,
		"start_date":    "2026-03-02",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("ожидался 201, получен %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Plan       models.TrainingPlan  `json:"plan"`
		Validation *ai.ValidationResult `json:"validation"`
	}
	decodeResp(t, rec, &resp)
	if resp.Plan.ID == 0 {
		t.Error("план не сохранён: пустой id")
	}
	if len(resp.Plan.Weeks) != 8 {
		t.Errorf("недель: ожидалось 8, получено %d", len(resp.Plan.Weeks))
	}
	if resp.Validation == nil || !resp.Validation.IsValid {
		t.Errorf("ожидался валидный план, получено %+v", resp.Validation)
	}

	rec = env.do(t, "GET", "/api/plans/1", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("чтение плана: ожидался 200, получен %d", rec.Code)
	}
}

func TestGeneratePlanValidation(t *testing.T) {
	env := newTestEnv(t)
	env.athletes.Create("Иван", "", "", "")

	tests := []struct {
		name string
		body map[string]interface{}
		code int
	}{
		{"нулевые дни", map[string]interface{}{"days_per_week": 0, "total_weeks": 8}, http.StatusBadRequest},
		{"слишком много недель", map[string]interface{}{"days_per_week": 3, "total_weeks": 60}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, "POST", "/api/athletes/1/plans", tt.body)
			if rec.Code != tt.code {
				t.Errorf("ожидался %d, получен %d", tt.code, rec.Code)
			}
		})
	}

	rec := env.do(t, "POST", "/api/athletes/99/plans", map[string]interface{}{
		"days_per_week": 3, "total_weeks": 8,
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("для несуществующего атлета ожидался 404, получен %d", rec.Code)
	}
}

func TestPlanScheduleAndICS(t *testing.T) {
	env := newTestEnv(t)
	env.athletes.Create("Иван", "", "", "")
	env.do(t, "POST", "/api/athletes/1/plans", map[string]interface{}{
		"days_per_week": 2, "total_weeks": 2, "start_date": "2026-03-02",
	})

	rec := env.do(t, "GET", "/api/plans/1/schedule", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("ожидался 200, получен %d: %s", rec.Code, rec.Body.String())
	}
	var slots []training.PlanSlot
	decodeResp(t, rec, &slots)
	if len(slots) != 4 {
		t.Fatalf("слотов: ожидалось 4, получено %d", len(slots))
	}
	// 2 дня в неделю - Пн/Чт с 18:00
	first := slots[0].StartsAt
	if first.Weekday() != time.Monday || first.Hour() != 18 {
		t.Errorf("первый слот: ожидался понедельник 18:00, получено %v", first)
	}

	rec = env.do(t, "GET", "/api/plans/1/calendar.ics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("ics: ожидался 200, получен %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("Content-Type: ожидался text/calendar, получен %s", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "BEGIN:VCALENDAR") || !strings.Contains(body, "BEGIN:VEVENT") {
		t.Error("в ics нет календарных блоков")
	}
}

func TestAppointments(t *testing.T) {
	env := newTestEnv(t)
	env.athletes.Create("Иван", "", "", "")

	rec := env.do(t, "POST", "/api/appointments", map[string]interface{}{
		"athlete_id": 1,
		"date":       "2026-09-01",
		"start_time": "18:00",
		"end_time":   "19:30",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("ожидался 201, получен %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, "GET", "/api/appointments?date=2026-09-01", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("ожидался 200, получен %d", rec.Code)
	}
	var list []models.Appointment
	decodeResp(t, rec, &list)
	if len(list) != 1 || list[0].StartTime != "18:00" {
		t.Errorf("неожиданный список записей: %+v", list)
	}

	rec = env.do(t, "PATCH", "/api/appointments/1/status", map[string]string{"status": "confirmed"})
	if rec.Code != http.StatusNoContent {
		t.Errorf("смена статуса: ожидался 204, получен %d", rec.Code)
	}
	rec = env.do(t, "PATCH", "/api/appointments/1/status", map[string]string{"status": "maybe"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("неизвестный статус: ожидался 400, получен %d", rec.Code)
	}

	rec = env.do(t, "GET", "/api/athletes/1/appointments.ics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("ics: ожидался 200, получен %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "BEGIN:VEVENT") {
		t.Error("в ics нет события записи")
	}
}

func TestAppointmentBadTime(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, "POST", "/api/appointments", map[string]interface{}{
		"athlete_id": 1,
		"date":       "2026-09-01",
		"start_time": "25:99",
		"end_time":   "19:30",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("некорректное время: ожидался 400, получен %d", rec.Code)
	}
}

func TestAthleteAnalytics(t *testing.T) {
	env := newTestEnv(t)
	env.athletes.Create("Иван", "", "", "")
	env.oneRM.put(1, "bench-press", 100)
	env.oneRM.put(1, "bench-press", 110)

	id, _ := env.sessions.Create(models.WorkoutSession{
		AthleteID:   1,
		SessionDate: time.Now().AddDate(0, 0, -3),
		WeekNumber:  1,
		Status:      models.SessionStatusCompleted,
	})
	env.sessions.AddLog(models.SessionLog{
		SessionID: id, MuscleGroup: "грудь",
		SetsPlanned: 4, SetsCompleted: 4,
		RepsCompleted: 8, WeightKg: 80, RPEActual: 8,
	})

	rec := env.do(t, "GET", "/api/athletes/1/analytics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("ожидался 200, получен %d: %s", rec.Code, rec.Body.String())
	}
	var report models.AthleteAnalytics
	decodeResp(t, rec, &report)
	if report.TotalSessions != 1 {
		t.Errorf("сессий: ожидалась 1, получено %d", report.TotalSessions)
	}
	if report.TotalTonnage != 2560 {
		t.Errorf("тоннаж: ожидалось 2560, получено %v", report.TotalTonnage)
	}
	if len(report.OneRMProgress) != 1 {
		t.Fatalf("прогресс 1ПМ: ожидалась 1 запись, получено %d", len(report.OneRMProgress))
	}
	if report.OneRMProgress[0].GainKg != 10 {
		t.Errorf("прирост: ожидалось 10, получено %v", report.OneRMProgress[0].GainKg)
	}
}

func TestExportPlanSheetsUnconfigured(t *testing.T) {
	env := newTestEnv(t)
	env.athletes.Create("Иван", "", "", "")
	env.do(t, "POST", "/api/athletes/1/plans", map[string]interface{}{
		"days_per_week": 3, "total_weeks": 4,
	})

	rec := env.do(t, "POST", "/api/plans/1/export/sheets", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("без настроенного Sheets ожидался 503, получен %d", rec.Code)
	}
}

func TestAnalyticsExport(t *testing.T) {
	env := newTestEnv(t)
	env.athletes.Create("Иван", "", "", "")

	rec := env.do(t, "POST", "/api/athletes/1/analytics/export", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("ожидался 201, получен %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		File string `json:"file"`
	}
	decodeResp(t, rec, &resp)
	if !strings.HasSuffix(resp.File, ".xlsx") {
		t.Errorf("ожидался xlsx-файл, получено %q", resp.File)
	}
}
