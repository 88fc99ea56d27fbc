package repository

import "database/sql"

// Repository содержит все репозитории
type Repository struct {
	Athlete     *AthleteRepository
	Exercise    *ExerciseRepository
	OneRM       *OneRMRepository
	Session     *SessionRepository
	Plan        *PlanRepository
	Appointment *AppointmentRepository
}

// New создаёт новый экземпляр Repository
func New(db *sql.DB) *Repository {
	return &Repository{
		Athlete:     NewAthleteRepository(db),
		Exercise:    NewExerciseRepository(db),
		OneRM:       NewOneRMRepository(db),
		Session:     NewSessionRepository(db),
		Plan:        NewPlanRepository(db),
		Appointment: NewAppointmentRepository(db),
	}
}
