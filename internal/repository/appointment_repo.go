package repository

import (
	"database/sql"
	"time"

	"coachhub/internal/models"
)

// AppointmentRepository работает с записями на тренировки
type AppointmentRepository struct {
	db *sql.DB
}

// NewAppointmentRepository создаёт репозиторий записей
func NewAppointmentRepository(db *sql.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// Create создаёт новую запись
func (r *AppointmentRepository) Create(athleteID int, date time.Time, startTime, endTime string) (int, error) {
	var id int
	err := r.db.QueryRow(`
		INSERT INTO public.appointments (athlete_id, appointment_date, start_time, end_time, status)
		VALUES ($1, $2, $3, $4, 'scheduled')
		RETURNING id`,
		athleteID, date.Format("2006-01-02"), startTime, endTime,
	).Scan(&id)
	return id, err
}

const appointmentColumns = `
	a.id, a.athlete_id, (at.name || ' ' || at.surname),
	a.appointment_date, TO_CHAR(a.start_time, 'HH24:MI'), TO_CHAR(a.end_time, 'HH24:MI'),
	a.status, COALESCE(a.notes, ''),
	COALESCE(a.reminder_1day_sent, false), COALESCE(a.reminder_1hour_sent, false),
	a.created_at, a.updated_at`

func scanAppointment(row interface{ Scan(...interface{}) error }) (*models.Appointment, error) {
	ap := &models.Appointment{}
	err := row.Scan(
		&ap.ID, &ap.AthleteID, &ap.AthleteName,
		&ap.AppointmentDate, &ap.StartTime, &ap.EndTime,
		&ap.Status, &ap.Notes,
		&ap.Reminder1DaySent, &ap.Reminder1HourSent,
		&ap.CreatedAt, &ap.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return ap, nil
}

// GetByDate возвращает записи на дату
func (r *AppointmentRepository) GetByDate(date time.Time) ([]models.Appointment, error) {
	rows, err := r.db.Query(`
		SELECT `+appointmentColumns+`
		FROM public.appointments a
		JOIN public.athletes at ON at.id = a.athlete_id
		WHERE a.appointment_date = $1
		ORDER BY a.start_time`, date.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAppointments(rows)
}

// GetUpcomingForAthlete возвращает будущие записи атлета
func (r *AppointmentRepository) GetUpcomingForAthlete(athleteID int) ([]models.Appointment, error) {
	rows, err := r.db.Query(`
		SELECT `+appointmentColumns+`
		FROM public.appointments a
		JOIN public.athletes at ON at.id = a.athlete_id
		WHERE a.athlete_id = $1
		  AND a.appointment_date >= CURRENT_DATE
		  AND a.status IN ('scheduled', 'confirmed')
		ORDER BY a.appointment_date, a.start_time`, athleteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAppointments(rows)
}

// GetForReminder возвращает записи на дату, которым ещё не отправлялось
// напоминание данного типа ("1day" или "1hour")
func (r *AppointmentRepository) GetForReminder(date time.Time, reminderType string) ([]models.Appointment, error) {
	flag := "reminder_1day_sent"
	if reminderType == "1hour" {
		flag = "reminder_1hour_sent"
	}
	rows, err := r.db.Query(`
		SELECT `+appointmentColumns+`
		FROM public.appointments a
		JOIN public.athletes at ON at.id = a.athlete_id
		WHERE a.appointment_date = $1
		  AND a.status IN ('scheduled', 'confirmed')
		  AND COALESCE(a.`+flag+`, false) = false
		ORDER BY a.start_time`, date.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAppointments(rows)
}

// MarkReminderSent помечает напоминание отправленным
func (r *AppointmentRepository) MarkReminderSent(appointmentID int, reminderType string) error {
	flag := "reminder_1day_sent"
	if reminderType == "1hour" {
		flag = "reminder_1hour_sent"
	}
	_, err := r.db.Exec(
		"UPDATE public.appointments SET "+flag+" = true, updated_at = NOW() WHERE id = $1",
		appointmentID,
	)
	return err
}

// UpdateStatus обновляет статус записи
func (r *AppointmentRepository) UpdateStatus(appointmentID int, status models.AppointmentStatus) error {
	_, err := r.db.Exec(
		"UPDATE public.appointments SET status = $1, updated_at = NOW() WHERE id = $2",
		string(status), appointmentID,
	)
	return err
}

func collectAppointments(rows *sql.Rows) ([]models.Appointment, error) {
	var appointments []models.Appointment
	for rows.Next() {
		ap, err := scanAppointment(rows)
		if err != nil {
			continue
		}
		appointments = append(appointments, *ap)
	}
	return appointments, rows.Err()
}
