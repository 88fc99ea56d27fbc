package training

import "math"

// CalcMethod selects the estimation formula for a 1PM record.
type CalcMethod string

const (
	MethodBrzycki CalcMethod = "brzycki"
	MethodEpley   CalcMethod = "epley"
	MethodAverage CalcMethod = "average"
	MethodManual  CalcMethod = "manual"
)

// Estimate1PM estimates a one-rep max from a weight x reps set.
// weight is in kg. Unknown methods fall back to Brzycki.
func Estimate1PM(weight float64, reps int, method CalcMethod) float64 {
	if reps <= 0 || weight <= 0 {
		return 0
	}
	if reps == 1 {
		return weight
	}

	switch method {
	case MethodEpley:
		return epley1PM(weight, reps)
	case MethodAverage:
		return round2((brzycki1PM(weight, reps) + epley1PM(weight, reps)) / 2)
	default:
		return brzycki1PM(weight, reps)
	}
}

// brzycki1PM: 1RM = weight * (36 / (37 - reps)). Most accurate below 10 reps.
func brzycki1PM(weight float64, reps int) float64 {
	if reps >= 37 {
		return weight // formula degenerates, cap at the lifted weight
	}
	return round2(weight * (36.0 / float64(37-reps)))
}

// epley1PM: 1RM = weight * (1 + 0.0333 * reps). Better for higher rep ranges.
func epley1PM(weight float64, reps int) float64 {
	return round2(weight * (1 + 0.0333*float64(reps)))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// WorkingWeight returns the prescription weight for a given intensity,
// rounded to the nearest 0.5 kg.
func WorkingWeight(onePM, intensityPercent float64) float64 {
	if onePM <= 0 || intensityPercent <= 0 {
		return 0
	}
	return math.Round(onePM*intensityPercent/100*2) / 2
}

// WorkingWeightRound rounds the prescription weight to an arbitrary plate
// increment (e.g. 2.5 kg for a barbell, 5 kg for most machines).
func WorkingWeightRound(onePM, intensityPercent, increment float64) float64 {
	if onePM <= 0 || intensityPercent <= 0 || increment <= 0 {
		return 0
	}
	return math.Round(onePM*intensityPercent/100/increment) * increment
}

// repsByIntensity maps intensity % to the reps typically achievable there.
var repsByIntensity = map[int]int{
	100: 1, 97: 2, 94: 3, 91: 4, 88: 5, 85: 6, 82: 7, 79: 8,
	76: 9, 73: 10, 70: 11, 67: 12, 64: 14, 61: 16, 58: 18, 55: 20,
}

// intensityByReps is the inverse table: target reps to recommended intensity %.
var intensityByReps = map[int]float64{
	1: 100, 2: 97, 3: 94, 4: 91, 5: 88, 6: 85, 7: 82, 8: 79,
	9: 76, 10: 73, 11: 70, 12: 67, 14: 64, 16: 61, 18: 58, 20: 55,
}

// IntensityForReps returns the recommended intensity % for a target rep count,
// approximating linearly outside the table.
func IntensityForReps(targetReps int) float64 {
	if intensity, ok := intensityByReps[targetReps]; ok {
		return intensity
	}
	if targetReps < 1 {
		return 100
	}
	if targetReps > 20 {
		return 50
	}
	return float64(100 - targetReps*3)
}

// RepsForIntensity returns the approximate achievable reps at an intensity %.
func RepsForIntensity(intensity float64) int {
	if intensity >= 100 {
		return 1
	}
	if intensity <= 55 {
		return 20
	}
	if reps, ok := repsByIntensity[int(math.Round(intensity))]; ok {
		return reps
	}
	return int(math.Round((100 - intensity) / 3))
}

// EstimateRPE estimates the RPE of a set from its weight relative to the
// athlete's 1PM: RPE ~= 10 - (max achievable reps - actual reps), clamped to [1, 10].
func EstimateRPE(weight, onePM float64, reps int) float64 {
	if onePM <= 0 || weight <= 0 || reps <= 0 {
		return 0
	}
	maxReps := RepsForIntensity(weight / onePM * 100)
	rpe := 10.0 - float64(maxReps-reps)
	if rpe < 1 {
		return 1
	}
	if rpe > 10 {
		return 10
	}
	return math.Round(rpe*10) / 10
}

// MethodName возвращает название метода расчёта для отображения.
func MethodName(method CalcMethod) string {
	switch method {
	case MethodBrzycki:
		return "Формула Бжицки"
	case MethodEpley:
		return "Формула Эпли"
	case MethodAverage:
		return "Среднее (Бжицки + Эпли)"
	case MethodManual:
		return "Ручной ввод"
	default:
		return string(method)
	}
}
