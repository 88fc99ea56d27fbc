package ai

import (
	"fmt"
	"strings"

	"coachhub/internal/models"
)

// ValidationResult результат проверки плана
type ValidationResult struct {
	IsValid     bool     `json:"is_valid"`    // true = план готов к выдаче атлету
	Errors      []string `json:"errors"`      // критические ошибки (требуют перегенерации)
	Warnings    []string `json:"warnings"`    // предупреждения (можно исправить вручную)
	Suggestions []string `json:"suggestions"` // подсказки для AI при перегенерации
}

// PlanValidator проверяет сгенерированные планы тренировок
type PlanValidator struct {
	// Ограничения по объёму (подходов в неделю на группу мышц)
	volumeLimits map[string]struct{ min, max int }
}

// NewPlanValidator создаёт валидатор с дефолтными лимитами объёма
func NewPlanValidator() *PlanValidator {
	return &PlanValidator{
		volumeLimits: map[string]struct{ min, max int }{
			"beginner":     {6, 16},
			"intermediate": {10, 22},
			"advanced":     {12, 28},
		},
	}
}

// ValidatePlan проверяет план на корректность.
// IsValid=true только при отсутствии критических ошибок.
func (v *PlanValidator) ValidatePlan(plan *models.TrainingPlan, experience string) *ValidationResult {
	result := &ValidationResult{
		IsValid:     true,
		Errors:      []string{},
		Warnings:    []string{},
		Suggestions: []string{},
	}

	if len(plan.Weeks) == 0 {
		result.Errors = append(result.Errors, "План не содержит недель")
		result.Suggestions = append(result.Suggestions,
			fmt.Sprintf("Сгенерируй план на %d недель с тренировками", plan.TotalWeeks))
	}
	if plan.TotalWeeks > 0 && len(plan.Weeks) != plan.TotalWeeks {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Запрошено %d недель, в плане %d", plan.TotalWeeks, len(plan.Weeks)))
	}

	for _, week := range plan.Weeks {
		if len(week.Workouts) == 0 {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Неделя %d не содержит тренировок", week.WeekNum))
		}
	}

	v.validateVolume(plan, experience, result)
	v.validateProgression(plan, result)
	v.validateDeload(plan, result)
	v.validateExerciseParams(plan, result)
	v.validateBalance(plan, result)

	if len(result.Errors) > 0 {
		result.IsValid = false
	}

	return result
}

// validateVolume проверяет недельный объём по группам мышц
func (v *PlanValidator) validateVolume(plan *models.TrainingPlan, experience string, result *ValidationResult) {
	limits, ok := v.volumeLimits[experience]
	if !ok {
		limits = v.volumeLimits["intermediate"]
	}

	for _, week := range plan.Weeks {
		if week.Phase == models.PhaseDeload {
			continue // для разгрузочной недели низкий объём - норма
		}

		muscleVolume := make(map[string]int)
		for _, workout := range week.Workouts {
			for _, ex := range workout.Exercises {
				muscle := guessMuscleGroup(ex.ExerciseName)
				muscleVolume[muscle] += ex.Sets
			}
		}

		for muscle, sets := range muscleVolume {
			if muscle == "unknown" {
				continue
			}
			if sets < limits.min {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("Неделя %d: мало объёма на %s (%d подходов, рекомендуется %d+)",
						week.WeekNum, muscle, sets, limits.min))
			}
			if sets > limits.max {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("Неделя %d: много объёма на %s (%d подходов, максимум %d)",
						week.WeekNum, muscle, sets, limits.max))
			}
		}
	}
}

// validateProgression проверяет рост нагрузки от недели к неделе
func (v *PlanValidator) validateProgression(plan *models.TrainingPlan, result *ValidationResult) {
	if len(plan.Weeks) < 4 {
		return
	}

	// неделя -> упражнение -> максимальная интенсивность
	weekIntensity := make(map[int]map[string]float64)
	for _, week := range plan.Weeks {
		if week.Phase == models.PhaseDeload {
			continue
		}
		wi := make(map[string]float64)
		for _, workout := range week.Workouts {
			for _, ex := range workout.Exercises {
				intensity := ex.WeightKg
				if ex.WeightPercent > 0 {
					intensity = ex.WeightPercent
				}
				if intensity > wi[ex.ExerciseName] {
					wi[ex.ExerciseName] = intensity
				}
			}
		}
		weekIntensity[week.WeekNum] = wi
	}

	hasProgression := false
	for weekNum, wi := range weekIntensity {
		prev, ok := weekIntensity[weekNum-1]
		if !ok {
			continue
		}
		for ex, intensity := range wi {
			if prevIntensity, ok := prev[ex]; ok && intensity > prevIntensity {
				hasProgression = true
			}
		}
	}

	if !hasProgression {
		result.Warnings = append(result.Warnings,
			"Не обнаружена прогрессия нагрузки между неделями")
		result.Suggestions = append(result.Suggestions,
			"Добавь постепенное увеличение весов/интенсивности от недели к неделе")
	}
}

// validateDeload проверяет наличие разгрузочных недель
func (v *PlanValidator) validateDeload(plan *models.TrainingPlan, result *ValidationResult) {
	if len(plan.Weeks) < 4 {
		return
	}

	deloadWeeks := []int{}
	for _, week := range plan.Weeks {
		if week.Phase == models.PhaseDeload {
			deloadWeeks = append(deloadWeeks, week.WeekNum)
		}
	}

	if len(deloadWeeks) == 0 {
		result.Warnings = append(result.Warnings,
			"Не обнаружены разгрузочные недели (deload)")
		result.Suggestions = append(result.Suggestions,
			"Добавь deload каждые 4-6 недель (снижение объёма на 40-50%)")
		return
	}

	for i := 1; i < len(deloadWeeks); i++ {
		gap := deloadWeeks[i] - deloadWeeks[i-1]
		if gap > 6 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Большой интервал между разгрузками: %d недель (между неделями %d и %d)",
					gap, deloadWeeks[i-1], deloadWeeks[i]))
		}
	}
}

// validateExerciseParams проверяет параметры каждого упражнения
func (v *PlanValidator) validateExerciseParams(plan *models.TrainingPlan, result *ValidationResult) {
	for _, week := range plan.Weeks {
		for _, workout := range week.Workouts {
			for _, ex := range workout.Exercises {
				if ex.Sets < 1 || ex.Sets > 10 {
					result.Errors = append(result.Errors,
						fmt.Sprintf("Некорректное количество подходов: %s - %d (должно быть 1-10)",
							ex.ExerciseName, ex.Sets))
				}

				reps := parseReps(ex.Reps)
				if reps < 1 || reps > 30 {
					result.Warnings = append(result.Warnings,
						fmt.Sprintf("Необычное количество повторов: %s - %q", ex.ExerciseName, ex.Reps))
				}

				if ex.RestSeconds > 0 && (ex.RestSeconds < 15 || ex.RestSeconds > 600) {
					result.Warnings = append(result.Warnings,
						fmt.Sprintf("Необычное время отдыха: %s - %d сек", ex.ExerciseName, ex.RestSeconds))
				}

				if ex.RPE > 0 && (ex.RPE < 5 || ex.RPE > 10) {
					result.Warnings = append(result.Warnings,
						fmt.Sprintf("Некорректный RPE: %s - %.1f (должно быть 5-10)", ex.ExerciseName, ex.RPE))
				}

				if ex.WeightPercent > 0 && (ex.WeightPercent < 30 || ex.WeightPercent > 105) {
					result.Warnings = append(result.Warnings,
						fmt.Sprintf("Необычный процент от 1ПМ: %s - %.0f%%", ex.ExerciseName, ex.WeightPercent))
				}

				if ex.WeightPercent == 0 && ex.WeightKg == 0 {
					result.Warnings = append(result.Warnings,
						fmt.Sprintf("Не задана нагрузка: %s (нет ни %%1ПМ, ни веса)", ex.ExerciseName))
				}
			}
		}
	}
}

// validateBalance проверяет соотношение жимовых и тяговых движений
func (v *PlanValidator) validateBalance(plan *models.TrainingPlan, result *ValidationResult) {
	pushVolume := 0
	pullVolume := 0

	for _, week := range plan.Weeks {
		for _, workout := range week.Workouts {
			for _, ex := range workout.Exercises {
				switch guessMovementType(ex.ExerciseName) {
				case "push":
					pushVolume += ex.Sets
				case "pull":
					pullVolume += ex.Sets
				}
			}
		}
	}

	if pushVolume > 0 && pullVolume > 0 {
		ratio := float64(pushVolume) / float64(pullVolume)
		if ratio > 1.5 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Дисбаланс: слишком много жимовых движений (push:pull = %.1f:1)", ratio))
			result.Suggestions = append(result.Suggestions,
				"Добавь больше тяговых упражнений для баланса (тяги, подтягивания)")
		} else if ratio < 0.7 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Дисбаланс: слишком много тяговых движений (push:pull = 1:%.1f)", 1/ratio))
		}
	}
}

// Вспомогательные функции

func guessMuscleGroup(exerciseName string) string {
	name := strings.ToLower(exerciseName)

	if containsAny(name, "жим лёжа", "жим лежа", "жим гантелей лёжа", "разводка", "кроссовер", "отжимания", "грудь", "chest") {
		return "грудь"
	}
	if containsAny(name, "тяга", "подтягивания", "спина", "блок", "pulldown", "row", "back") {
		return "спина"
	}
	if containsAny(name, "жим стоя", "армейский", "махи", "дельт", "плечи", "shoulder") && !containsAny(name, "лёжа", "лежа") {
		return "плечи"
	}
	if containsAny(name, "присед", "жим ногами", "выпады", "разгибание ног", "квадрицепс", "squat", "leg press", "lunge") {
		return "квадрицепс"
	}
	if containsAny(name, "румынская", "сгибание ног", "бицепс бедра", "мёртвая тяга", "deadlift", "hamstring") {
		return "бицепс_бедра"
	}
	if containsAny(name, "бицепс", "сгибание рук", "молоток", "bicep", "curl") && !containsAny(name, "бедра") {
		return "бицепс"
	}
	if containsAny(name, "трицепс", "разгибание рук", "французский", "tricep", "pushdown") && !containsAny(name, "ног") {
		return "трицепс"
	}
	if containsAny(name, "икры", "голень", "подъём на носки", "calf") {
		return "икры"
	}
	if containsAny(name, "пресс", "скручивания", "планка", "abs", "core") {
		return "пресс"
	}
	if containsAny(name, "ягодиц", "glute", "hip thrust") {
		return "ягодицы"
	}

	return "unknown"
}

func guessMovementType(exerciseName string) string {
	name := strings.ToLower(exerciseName)

	if containsAny(name, "жим", "отжимания", "разгибание", "французский", "разводка", "press", "pushdown", "fly") {
		return "push"
	}
	if containsAny(name, "тяга", "подтягивания", "сгибание", "curl", "row", "pulldown", "pull") {
		return "pull"
	}
	if containsAny(name, "присед", "выпады", "squat", "lunge", "leg") {
		return "legs"
	}

	return "other"
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// parseReps парсит "8-10" -> 9, "12" -> 12
func parseReps(reps string) int {
	reps = strings.TrimSpace(reps)
	if strings.Contains(reps, "-") {
		parts := strings.Split(reps, "-")
		if len(parts) == 2 {
			var lo, hi int
			fmt.Sscanf(parts[0], "%d", &lo)
			fmt.Sscanf(parts[1], "%d", &hi)
			return (lo + hi) / 2
		}
	}
	var r int
	fmt.Sscanf(reps, "%d", &r)
	return r
}

// FormatValidationResult форматирует результат валидации для вывода тренеру
func FormatValidationResult(result *ValidationResult) string {
	var sb strings.Builder

	if result.IsValid {
		sb.WriteString("✅ План готов\n\n")
	} else {
		sb.WriteString("❌ План требует доработки\n\n")
	}

	if len(result.Errors) > 0 {
		sb.WriteString("🚫 ОШИБКИ:\n")
		for _, err := range result.Errors {
			sb.WriteString(fmt.Sprintf("  • %s\n", err))
		}
		sb.WriteString("\n")
	}

	if len(result.Warnings) > 0 {
		sb.WriteString("⚠️ ЗАМЕЧАНИЯ:\n")
		for _, warn := range result.Warnings {
			sb.WriteString(fmt.Sprintf("  • %s\n", warn))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
