package ai

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"coachhub/internal/models"
)

// PlanRequest параметры для генерации плана тренировок
type PlanRequest struct {
	AthleteName string
	Goal        string
	Experience  string // beginner, intermediate, advanced
	DaysPerWeek int
	TotalWeeks  int
	Equipment   string // gym, home, minimal
	Injuries    string
	Preferences string
	StartDate   time.Time
	// OneRMData: название упражнения -> референсный 1ПМ (результат резолвера)
	OneRMData map[string]float64
}

// planJSON - контракт структурного ответа AI
type planJSON struct {
	PlanName    string `json:"plan_name"`
	Description string `json:"description"`
	Weeks       []struct {
		WeekNum  int           `json:"week_num"`
		Phase    string        `json:"phase"`
		Workouts []workoutJSON `json:"workouts"`
	} `json:"weeks"`
}

type workoutJSON struct {
	DayNum    int    `json:"day_num"`
	Name      string `json:"name"`
	Exercises []struct {
		Name          string  `json:"name"`
		Sets          int     `json:"sets"`
		Reps          string  `json:"reps"`
		WeightPercent float64 `json:"weight_percent"`
		WeightKg      float64 `json:"weight_kg"`
		RestSeconds   int     `json:"rest_seconds"`
		Tempo         string  `json:"tempo"`
		RPE           float64 `json:"rpe"`
		Notes         string  `json:"notes"`
	} `json:"exercises"`
}

// GeneratePlan генерирует план тренировок через AI.
// Невалидный по структуре ответ перегенерируется один раз с подсказками
// валидатора; если и после этого остались ошибки, они возвращаются вместе
// с планом - решение остаётся за тренером.
func (e *Engine) GeneratePlan(req PlanRequest) (*models.TrainingPlan, *ValidationResult, error) {
	prompt := buildPlanPrompt(req)

	plan, result, err := e.generateOnce(req, prompt)
	if err != nil {
		return nil, nil, err
	}
	if result.IsValid {
		return plan, result, nil
	}

	// Одна попытка перегенерации с подсказками валидатора
	retry := prompt + "\n\nПРЕДЫДУЩАЯ ПОПЫТКА ОТКЛОНЕНА. Исправь:\n"
	for _, s := range append(result.Errors, result.Suggestions...) {
		retry += "- " + s + "\n"
	}
	plan2, result2, err := e.generateOnce(req, retry)
	if err != nil {
		return plan, result, nil // первый вариант лучше, чем ошибка
	}
	if result2.IsValid || len(result2.Errors) < len(result.Errors) {
		return plan2, result2, nil
	}
	return plan, result, nil
}

func (e *Engine) generateOnce(req PlanRequest, prompt string) (*models.TrainingPlan, *ValidationResult, error) {
	response, err := e.chat([]Message{
		{Role: "system", Content: "Ты профессиональный тренер по силовой подготовке."},
		{Role: "user", Content: prompt},
	}, 0.7)
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка запроса к AI: %w", err)
	}

	plan, err := parsePlanResponse(response, req)
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка парсинга ответа: %w", err)
	}

	return plan, e.validator.ValidatePlan(plan, req.Experience), nil
}

func buildPlanPrompt(req PlanRequest) string {
	var sb strings.Builder

	sb.WriteString("Создай полный план тренировок.\n\n")

	sb.WriteString("ДАННЫЕ АТЛЕТА:\n")
	sb.WriteString(fmt.Sprintf("- Имя: %s\n", req.AthleteName))
	sb.WriteString(fmt.Sprintf("- Цель: %s\n", req.Goal))
	sb.WriteString(fmt.Sprintf("- Опыт: %s\n", translateExperience(req.Experience)))
	sb.WriteString(fmt.Sprintf("- Тренировок в неделю: %d\n", req.DaysPerWeek))
	sb.WriteString(fmt.Sprintf("- Длительность программы: %d недель\n", req.TotalWeeks))
	sb.WriteString(fmt.Sprintf("- Оборудование: %s\n", req.Equipment))

	if req.Injuries != "" {
		sb.WriteString(fmt.Sprintf("- Травмы/ограничения: %s\n", req.Injuries))
	}
	if req.Preferences != "" {
		sb.WriteString(fmt.Sprintf("- Предпочтения: %s\n", req.Preferences))
	}

	if len(req.OneRMData) > 0 {
		sb.WriteString("\nРеференсные 1ПМ атлета:\n")
		for ex, weight := range req.OneRMData {
			sb.WriteString(fmt.Sprintf("- %s: %.0f кг\n", ex, weight))
		}
	}

	sb.WriteString("\nФОРМАТ ОТВЕТА (строго JSON):\n")
	sb.WriteString(`{
  "plan_name": "Название плана",
  "description": "Описание плана и методики",
  "weeks": [
    {
      "week_num": 1,
      "phase": "hypertrophy",
      "workouts": [
        {
          "day_num": 1,
          "name": "День 1 - Грудь/Трицепс",
          "exercises": [
            {
              "name": "Жим штанги лёжа",
              "sets": 4,
              "reps": "8-10",
              "weight_percent": 70,
              "rest_seconds": 90,
              "tempo": "3-1-2-0",
              "rpe": 7,
              "notes": "Контролируемое опускание"
            }
          ]
        }
      ]
    }
  ]
}`)

	sb.WriteString("\n\nТРЕБОВАНИЯ:\n")
	sb.WriteString("1. Учитывай периодизацию: гипертрофия -> сила -> мощность (если цель - сила)\n")
	sb.WriteString("2. Включай разгрузочные недели каждые 3-4 недели\n")
	sb.WriteString("3. Прогрессия нагрузки от недели к неделе\n")
	sb.WriteString("4. Указывай отдых между подходами в секундах\n")
	sb.WriteString("5. Если есть 1ПМ - указывай weight_percent, иначе weight_kg\n")
	sb.WriteString("6. Учитывай травмы и ограничения атлета\n")
	sb.WriteString("7. ВАЖНО: Ответ ТОЛЬКО в формате JSON, без пояснений\n")

	return sb.String()
}

func translateExperience(exp string) string {
	switch exp {
	case "beginner":
		return "Новичок (до 1 года)"
	case "intermediate":
		return "Средний (1-3 года)"
	case "advanced":
		return "Продвинутый (3+ лет)"
	default:
		return exp
	}
}

// parsePlanResponse разбирает структурный JSON-ответ AI в план
func parsePlanResponse(response string, req PlanRequest) (*models.TrainingPlan, error) {
	jsonStr, err := ExtractJSON(response)
	if err != nil {
		return nil, err
	}

	var parsed planJSON
	if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
		return nil, fmt.Errorf("невалидный JSON: %w", err)
	}

	plan := &models.TrainingPlan{
		Name:        parsed.PlanName,
		Goal:        req.Goal,
		Description: parsed.Description,
		TotalWeeks:  req.TotalWeeks,
		DaysPerWeek: req.DaysPerWeek,
		StartDate:   req.StartDate,
		Status:      models.PlanStatusDraft,
	}

	for _, w := range parsed.Weeks {
		week := models.PlanWeek{
			WeekNum: w.WeekNum,
			Phase:   models.PlanPhase(w.Phase),
		}
		for _, wo := range w.Workouts {
			week.Workouts = append(week.Workouts, convertWorkout(wo))
		}
		plan.Weeks = append(plan.Weeks, week)
	}

	return plan, nil
}

func convertWorkout(wo workoutJSON) models.PlanWorkout {
	workout := models.PlanWorkout{
		DayNum: wo.DayNum,
		Name:   wo.Name,
	}
	for i, ex := range wo.Exercises {
		workout.Exercises = append(workout.Exercises, models.PlanExercise{
			ExerciseName:  ex.Name,
			Sets:          ex.Sets,
			Reps:          ex.Reps,
			WeightPercent: ex.WeightPercent,
			WeightKg:      ex.WeightKg,
			RestSeconds:   ex.RestSeconds,
			Tempo:         ex.Tempo,
			RPE:           ex.RPE,
			Notes:         ex.Notes,
			SortOrder:     i,
		})
	}
	return workout
}

// ExtractJSON достаёт JSON-объект из ответа модели: из ```json-блока,
// либо от первой '{' до последней '}'
func ExtractJSON(response string) (string, error) {
	if idx := strings.Index(response, "```json"); idx >= 0 {
		rest := response[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end]), nil
		}
	}
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start < 0 || end <= start {
		return "", fmt.Errorf("ответ не содержит JSON")
	}
	return response[start : end+1], nil
}
