package analytics

import (
	"sort"
	"time"

	"coachhub/internal/models"
	"coachhub/internal/training"
)

// sessionEntries конвертирует логи сессии в записи для агрегатора
func sessionEntries(s models.WorkoutSession) []training.SessionEntry {
	entries := make([]training.SessionEntry, 0, len(s.Entries))
	for _, log := range s.Entries {
		entries = append(entries, training.SessionEntry{
			MuscleGroup:   log.MuscleGroup,
			SetsPlanned:   log.SetsPlanned,
			SetsCompleted: log.SetsCompleted,
			RepsPlanned:   log.RepsPlanned,
			RepsCompleted: log.RepsCompleted,
			WeightKg:      log.WeightKg,
			RPEActual:     log.RPEActual,
		})
	}
	return entries
}

// BuildWeeklySummaries строит недельные сводки по сессиям атлета.
// Сессии группируются по номеру недели плана; сессии вне плана (WeekNumber=0)
// попадают в отдельную нулевую неделю.
func BuildWeeklySummaries(athleteID int, sessions []models.WorkoutSession) []models.WeeklySummary {
	byWeek := make(map[int][]models.WorkoutSession)
	for _, s := range sessions {
		byWeek[s.WeekNumber] = append(byWeek[s.WeekNumber], s)
	}

	weeks := make([]int, 0, len(byWeek))
	for w := range byWeek {
		weeks = append(weeks, w)
	}
	sort.Ints(weeks)

	summaries := make([]models.WeeklySummary, 0, len(weeks))
	for _, week := range weeks {
		group := byWeek[week]
		summary := models.WeeklySummary{
			AthleteID:     athleteID,
			WeekNumber:    week,
			WeekStartDate: weekStart(group),
		}

		var rpeSum float64
		var rpeWeeks int
		var setsPlanned int
		for _, s := range group {
			summary.SessionsPlanned++
			if s.Status == models.SessionStatusCompleted || s.Status == models.SessionStatusPartial {
				summary.SessionsCompleted++
			}
			if s.PlanID != nil && summary.PlanID == nil {
				summary.PlanID = s.PlanID
			}

			m := training.AggregateSession(sessionEntries(s))
			summary.TotalTonnage += m.TonnageKg
			summary.TotalSets += m.SetsCompleted
			summary.TotalReps += m.RepsCompleted
			setsPlanned += m.SetsPlanned
			if m.AvgRPE > 0 {
				rpeSum += m.AvgRPE
				rpeWeeks++
			}
		}

		if rpeWeeks > 0 {
			summary.AvgRPE = round1(rpeSum / float64(rpeWeeks))
		}
		if setsPlanned > 0 {
			summary.CompliancePercent = round1(float64(summary.TotalSets) / float64(setsPlanned) * 100)
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

// BuildMuscleVolume строит понедельный разрез объёма по группам мышц
func BuildMuscleVolume(sessions []models.WorkoutSession) []models.WeeklyMuscleVolume {
	type muscleAcc struct {
		sets    int
		reps    int
		tonnage float64
	}
	byWeek := make(map[int]map[string]*muscleAcc)

	for _, s := range sessions {
		if byWeek[s.WeekNumber] == nil {
			byWeek[s.WeekNumber] = make(map[string]*muscleAcc)
		}
		for _, log := range s.Entries {
			muscle := log.MuscleGroup
			if muscle == "" {
				muscle = "прочее"
			}
			acc := byWeek[s.WeekNumber][muscle]
			if acc == nil {
				acc = &muscleAcc{}
				byWeek[s.WeekNumber][muscle] = acc
			}
			acc.sets += log.SetsCompleted
			acc.reps += log.RepsCompleted * log.SetsCompleted
			acc.tonnage += training.EntryTonnage(training.SessionEntry{
				SetsCompleted: log.SetsCompleted,
				RepsCompleted: log.RepsCompleted,
				WeightKg:      log.WeightKg,
			})
		}
	}

	weeks := make([]int, 0, len(byWeek))
	for w := range byWeek {
		weeks = append(weeks, w)
	}
	sort.Ints(weeks)

	result := make([]models.WeeklyMuscleVolume, 0, len(weeks))
	for _, week := range weeks {
		wv := models.WeeklyMuscleVolume{WeekNumber: week}

		muscles := make([]string, 0, len(byWeek[week]))
		for m := range byWeek[week] {
			muscles = append(muscles, m)
		}
		sort.Strings(muscles)

		for _, m := range muscles {
			acc := byWeek[week][m]
			wv.ByMuscle = append(wv.ByMuscle, models.MuscleGroupSummary{
				MuscleGroup:  m,
				TotalSets:    acc.sets,
				TotalReps:    acc.reps,
				TotalTonnage: round1(acc.tonnage),
			})
			wv.TotalSets += acc.sets
		}
		result = append(result, wv)
	}
	return result
}

// BuildOneRMProgress строит серии прогресса 1ПМ из историй по упражнениям
func BuildOneRMProgress(histories []models.OneRMHistory) []models.OneRMProgress {
	progress := make([]models.OneRMProgress, 0, len(histories))
	for _, h := range histories {
		if len(h.Records) == 0 {
			continue
		}
		p := models.OneRMProgress{
			ExerciseSlug: h.ExerciseSlug,
			ExerciseName: h.ExerciseName,
			InitialPM:    h.InitialPM,
			CurrentPM:    h.CurrentPM,
			GainKg:       h.GainKg,
			GainPercent:  h.GainPercent,
		}
		for _, r := range h.Records {
			p.Dates = append(p.Dates, r.TestDate)
			p.Values = append(p.Values, r.OnePMKg)
		}
		progress = append(progress, p)
	}
	return progress
}

// BuildAthleteAnalytics собирает полный дашборд атлета
func BuildAthleteAnalytics(athlete *models.Athlete, sessions []models.WorkoutSession, histories []models.OneRMHistory) *models.AthleteAnalytics {
	a := &models.AthleteAnalytics{
		AthleteID:       athlete.ID,
		AthleteName:     athlete.Name,
		WeeklySummaries: BuildWeeklySummaries(athlete.ID, sessions),
		WeeklyVolume:    BuildMuscleVolume(sessions),
		OneRMProgress:   BuildOneRMProgress(histories),
	}

	for _, s := range sessions {
		if s.Status != models.SessionStatusCompleted && s.Status != models.SessionStatusPartial {
			continue
		}
		a.TotalSessions++
		m := training.AggregateSession(sessionEntries(s))
		a.TotalTonnage += m.TonnageKg
	}
	a.TotalTonnage = round1(a.TotalTonnage)

	if weeks := activeWeeks(sessions); weeks > 0 {
		a.AvgSessionsWeek = round1(float64(a.TotalSessions) / float64(weeks))
	}
	return a
}

// activeWeeks считает число календарных недель между первой и последней сессией
func activeWeeks(sessions []models.WorkoutSession) int {
	if len(sessions) == 0 {
		return 0
	}
	var first, last time.Time
	for _, s := range sessions {
		if first.IsZero() || s.SessionDate.Before(first) {
			first = s.SessionDate
		}
		if s.SessionDate.After(last) {
			last = s.SessionDate
		}
	}
	return int(last.Sub(first).Hours()/24/7) + 1
}

// weekStart возвращает понедельник недели самой ранней сессии группы
func weekStart(sessions []models.WorkoutSession) time.Time {
	var first time.Time
	for _, s := range sessions {
		if first.IsZero() || s.SessionDate.Before(first) {
			first = s.SessionDate
		}
	}
	if first.IsZero() {
		return first
	}
	return training.WeekMonday(first)
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
