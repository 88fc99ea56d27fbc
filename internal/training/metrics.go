package training

import "math"

// SessionEntry is one logged exercise of a workout session, as recorded by
// the session log: planned vs completed volume plus the actual working weight.
type SessionEntry struct {
	MuscleGroup   string  `json:"muscle_group"`
	SetsPlanned   int     `json:"sets_planned"`
	SetsCompleted int     `json:"sets_completed"`
	RepsPlanned   int     `json:"reps_planned"`
	RepsCompleted int     `json:"reps_completed"`
	WeightKg      float64 `json:"weight_kg"`
	RPEActual     float64 `json:"rpe_actual"` // 0 means not reported
}

// SessionMetrics is the aggregate of one session's entries.
type SessionMetrics struct {
	TonnageKg         float64            `json:"tonnage_kg"`
	SetsPlanned       int                `json:"sets_planned"`
	SetsCompleted     int                `json:"sets_completed"`
	RepsPlanned       int                `json:"reps_planned"`
	RepsCompleted     int                `json:"reps_completed"`
	AvgRPE            float64            `json:"avg_rpe"`
	CompliancePercent float64            `json:"compliance_percent"`
	TonnageByMuscle   map[string]float64 `json:"tonnage_by_muscle"`
}

// EntryTonnage returns the tonnage of a single entry: weight x completed reps
// x completed sets. Non-positive components yield zero.
func EntryTonnage(e SessionEntry) float64 {
	if e.WeightKg <= 0 || e.RepsCompleted <= 0 || e.SetsCompleted <= 0 {
		return 0
	}
	return round2(e.WeightKg * float64(e.RepsCompleted) * float64(e.SetsCompleted))
}

// AggregateSession computes session totals over the logged entries.
// Total reps are counted per set (reps x sets); RPE averages only over
// entries that reported one; compliance is completed/planned sets, 0 when
// nothing was planned. Pure function over the input slice.
func AggregateSession(entries []SessionEntry) SessionMetrics {
	m := SessionMetrics{TonnageByMuscle: map[string]float64{}}

	var rpeSum float64
	var rpeCount int
	for _, e := range entries {
		tonnage := EntryTonnage(e)
		m.TonnageKg += tonnage
		if e.MuscleGroup != "" && tonnage > 0 {
			m.TonnageByMuscle[e.MuscleGroup] = round2(m.TonnageByMuscle[e.MuscleGroup] + tonnage)
		}

		m.SetsPlanned += maxInt(e.SetsPlanned, 0)
		m.SetsCompleted += maxInt(e.SetsCompleted, 0)
		m.RepsPlanned += maxInt(e.RepsPlanned, 0) * maxInt(e.SetsPlanned, 0)
		m.RepsCompleted += maxInt(e.RepsCompleted, 0) * maxInt(e.SetsCompleted, 0)

		if e.RPEActual > 0 {
			rpeSum += e.RPEActual
			rpeCount++
		}
	}

	m.TonnageKg = round2(m.TonnageKg)
	if rpeCount > 0 {
		m.AvgRPE = math.Round(rpeSum/float64(rpeCount)*10) / 10
	}
	if m.SetsPlanned > 0 {
		m.CompliancePercent = math.Round(float64(m.SetsCompleted)/float64(m.SetsPlanned)*1000) / 10
	}
	return m
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
