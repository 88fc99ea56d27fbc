package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"coachhub/internal/models"
)

// TemplateRequest параметры генерации шаблона одной тренировки
type TemplateRequest struct {
	Focus           string // направленность: "ноги", "грудь/трицепс", "фуллбоди"
	Experience      string
	DurationMinutes int
	Equipment       string
}

// GenerateTemplate генерирует шаблон одной тренировки по тому же
// JSON-контракту, что и тренировки внутри плана
func (e *Engine) GenerateTemplate(req TemplateRequest) (*models.PlanWorkout, error) {
	prompt := buildTemplatePrompt(req)

	response, err := e.chat([]Message{
		{Role: "system", Content: "Ты профессиональный тренер по силовой подготовке."},
		{Role: "user", Content: prompt},
	}, 0.7)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса к AI: %w", err)
	}

	jsonStr, err := ExtractJSON(response)
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга ответа: %w", err)
	}

	var parsed workoutJSON
	if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
		return nil, fmt.Errorf("невалидный JSON шаблона: %w", err)
	}
	if len(parsed.Exercises) == 0 {
		return nil, fmt.Errorf("шаблон не содержит упражнений")
	}

	workout := convertWorkout(parsed)
	if workout.Name == "" {
		workout.Name = "Тренировка: " + req.Focus
	}
	return &workout, nil
}

func buildTemplatePrompt(req TemplateRequest) string {
	var sb strings.Builder

	sb.WriteString("Создай шаблон одной тренировки.\n\n")
	sb.WriteString(fmt.Sprintf("- Направленность: %s\n", req.Focus))
	sb.WriteString(fmt.Sprintf("- Опыт атлета: %s\n", translateExperience(req.Experience)))
	if req.DurationMinutes > 0 {
		sb.WriteString(fmt.Sprintf("- Длительность: %d минут\n", req.DurationMinutes))
	}
	if req.Equipment != "" {
		sb.WriteString(fmt.Sprintf("- Оборудование: %s\n", req.Equipment))
	}

	sb.WriteString("\nФОРМАТ ОТВЕТА (строго JSON, одна тренировка):\n")
	sb.WriteString(`{
  "day_num": 1,
  "name": "Название тренировки",
  "exercises": [
    {"name": "Упражнение", "sets": 4, "reps": "8-10", "weight_percent": 70,
     "rest_seconds": 90, "rpe": 7, "notes": ""}
  ]
}`)
	sb.WriteString("\n\nВАЖНО: Ответ ТОЛЬКО в формате JSON, без пояснений\n")

	return sb.String()
}
