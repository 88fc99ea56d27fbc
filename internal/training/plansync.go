package training

import (
	"sort"
	"time"
)

// PlanWorkoutRef is the minimal plan view the scheduler needs: which week a
// workout belongs to and its ordinal day slot within the week.
type PlanWorkoutRef struct {
	WeekNum int    `json:"week_num"` // 1-based
	DayNum  int    `json:"day_num"`  // 1-based slot within the week
	Title   string `json:"title"`
}

// ScheduleOptions controls how plan workouts map onto calendar dates.
type ScheduleOptions struct {
	Start       time.Time      // plan start; week 1 is the Monday week containing it
	Weekdays    []time.Weekday // Weekdays[i] is the weekday for day slot i+1
	SessionHour int            // default session start, local time
	SessionMin  int
	Duration    time.Duration // 0 means one hour
}

// PlanSlot is one dated training slot produced from a plan workout.
type PlanSlot struct {
	WeekNum  int       `json:"week_num"`
	DayNum   int       `json:"day_num"`
	Title    string    `json:"title"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

// WeekMonday normalizes a date to the Monday of its ISO week.
func WeekMonday(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(t.Weekday()) + 6) % 7 // Monday = 0
	return t.AddDate(0, 0, -offset)
}

// ExpandPlanSchedule expands plan workouts into dated calendar slots.
// Workouts whose day slot has no configured weekday are skipped. The result
// is ordered by week then date, so repeated calls over the same plan produce
// the same sequence. Pure function: inputs are not mutated.
func ExpandPlanSchedule(workouts []PlanWorkoutRef, opts ScheduleOptions) []PlanSlot {
	if len(opts.Weekdays) == 0 {
		return nil
	}
	duration := opts.Duration
	if duration <= 0 {
		duration = time.Hour
	}
	monday := WeekMonday(opts.Start)

	slots := make([]PlanSlot, 0, len(workouts))
	for _, w := range workouts {
		if w.WeekNum < 1 || w.DayNum < 1 || w.DayNum > len(opts.Weekdays) {
			continue
		}
		weekday := opts.Weekdays[w.DayNum-1]
		day := monday.AddDate(0, 0, (w.WeekNum-1)*7+(int(weekday)+6)%7)
		start := time.Date(day.Year(), day.Month(), day.Day(),
			opts.SessionHour, opts.SessionMin, 0, 0, day.Location())
		slots = append(slots, PlanSlot{
			WeekNum:  w.WeekNum,
			DayNum:   w.DayNum,
			Title:    w.Title,
			StartsAt: start,
			EndsAt:   start.Add(duration),
		})
	}

	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].WeekNum != slots[j].WeekNum {
			return slots[i].WeekNum < slots[j].WeekNum
		}
		return slots[i].StartsAt.Before(slots[j].StartsAt)
	})
	return slots
}
