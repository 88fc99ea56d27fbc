package models

import "time"

// AppointmentStatus статус записи на тренировку
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// Appointment запись атлета на тренировку
type Appointment struct {
	ID                int               `json:"id"`
	AthleteID         int               `json:"athlete_id"`
	AthleteName       string            `json:"athlete_name,omitempty"` // joined
	AppointmentDate   time.Time         `json:"appointment_date"`
	StartTime         string            `json:"start_time"` // HH:MM
	EndTime           string            `json:"end_time"`
	Status            AppointmentStatus `json:"status"`
	Notes             string            `json:"notes"`
	Reminder1DaySent  bool              `json:"reminder_1day_sent"`
	Reminder1HourSent bool              `json:"reminder_1hour_sent"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}
