package notify

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron"

	"coachhub/internal/models"
)

// AppointmentSource - записи, требующие напоминаний
type AppointmentSource interface {
	GetForReminder(date time.Time, reminderType string) ([]models.Appointment, error)
	MarkReminderSent(appointmentID int, reminderType string) error
}

// ReminderScheduler рассылает напоминания о записях на тренировки:
// за день (утренним окном) и за час до начала.
type ReminderScheduler struct {
	appointments AppointmentSource
	notifier     Notifier
	cron         *cron.Cron
	now          func() time.Time // подменяется в тестах
}

// NewReminderScheduler создаёт планировщик напоминаний
func NewReminderScheduler(appointments AppointmentSource, notifier Notifier) *ReminderScheduler {
	return &ReminderScheduler{
		appointments: appointments,
		notifier:     notifier,
		cron:         cron.New(),
		now:          time.Now,
	}
}

// Start запускает периодическую проверку напоминаний
func (s *ReminderScheduler) Start() error {
	if err := s.cron.AddFunc("@every 30m", s.CheckReminders); err != nil {
		return fmt.Errorf("ошибка планировщика: %w", err)
	}
	s.cron.Start()
	log.Printf("Планировщик напоминаний запущен (проверка каждые 30 минут)")
	return nil
}

// Stop останавливает планировщик
func (s *ReminderScheduler) Stop() {
	s.cron.Stop()
}

// CheckReminders выполняет один проход: напоминания за день уходят в
// утреннее окно 9:00-10:00, напоминания за час - когда до начала
// тренировки остаётся не больше часа.
func (s *ReminderScheduler) CheckReminders() {
	now := s.now()

	if now.Hour() == 9 {
		s.sendDayBeforeReminders(now)
	}
	s.sendHourBeforeReminders(now)
}

func (s *ReminderScheduler) sendDayBeforeReminders(now time.Time) {
	tomorrow := now.AddDate(0, 0, 1)
	appointments, err := s.appointments.GetForReminder(tomorrow, "1day")
	if err != nil {
		log.Printf("Ошибка выборки напоминаний за день: %v", err)
		return
	}

	for _, a := range appointments {
		text := fmt.Sprintf("Завтра тренировка: %s в %s", a.AthleteName, a.StartTime)
		if err := s.notifier.Send(text); err != nil {
			log.Printf("Ошибка отправки напоминания: %v", err)
			continue
		}
		if err := s.appointments.MarkReminderSent(a.ID, "1day"); err != nil {
			log.Printf("Ошибка отметки напоминания %d: %v", a.ID, err)
		}
	}
}

func (s *ReminderScheduler) sendHourBeforeReminders(now time.Time) {
	appointments, err := s.appointments.GetForReminder(now, "1hour")
	if err != nil {
		log.Printf("Ошибка выборки напоминаний за час: %v", err)
		return
	}

	for _, a := range appointments {
		start, err := appointmentStart(a, now.Location())
		if err != nil {
			log.Printf("Запись %d: некорректное время начала %q", a.ID, a.StartTime)
			continue
		}
		until := start.Sub(now)
		if until <= 0 || until > time.Hour {
			continue
		}

		text := fmt.Sprintf("Через час тренировка: %s в %s", a.AthleteName, a.StartTime)
		if err := s.notifier.Send(text); err != nil {
			log.Printf("Ошибка отправки напоминания: %v", err)
			continue
		}
		if err := s.appointments.MarkReminderSent(a.ID, "1hour"); err != nil {
			log.Printf("Ошибка отметки напоминания %d: %v", a.ID, err)
		}
	}
}

// appointmentStart собирает момент начала записи из даты и времени HH:MM
func appointmentStart(a models.Appointment, loc *time.Location) (time.Time, error) {
	t, err := time.Parse("15:04", a.StartTime)
	if err != nil {
		return time.Time{}, err
	}
	d := a.AppointmentDate
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}
