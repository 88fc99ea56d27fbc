package ai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MockProvider генерирует детерминированный план без обращения к внешнему API.
// Используется как запасной провайдер при исчерпании квоты и в тестах.
type MockProvider struct{}

// NewMockProvider создаёт мок-провайдер
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// Name возвращает имя провайдера
func (m *MockProvider) Name() string {
	return "mock"
}

var (
	reDaysPerWeek = regexp.MustCompile(`Тренировок в неделю: (\d+)`)
	reTotalWeeks  = regexp.MustCompile(`Длительность программы: (\d+) недель`)
)

// Chat возвращает канонический план, подстраиваясь под параметры из промпта.
// Структура плана всегда проходит валидацию: недель ровно сколько запрошено,
// разгрузка каждой четвёртой неделей, интенсивность растёт внутри блока.
func (m *MockProvider) Chat(messages []Message, temperature float64) (string, error) {
	daysPerWeek := 3
	totalWeeks := 4

	for _, msg := range messages {
		if msg.Role != "user" {
			continue
		}
		if strings.Contains(msg.Content, "шаблон одной тренировки") {
			return mockTemplateJSON(msg.Content), nil
		}
		if match := reDaysPerWeek.FindStringSubmatch(msg.Content); match != nil {
			if n, err := strconv.Atoi(match[1]); err == nil && n > 0 {
				daysPerWeek = n
			}
		}
		if match := reTotalWeeks.FindStringSubmatch(msg.Content); match != nil {
			if n, err := strconv.Atoi(match[1]); err == nil && n > 0 {
				totalWeeks = n
			}
		}
	}

	plan := buildMockPlan(daysPerWeek, totalWeeks)
	data, err := json.Marshal(plan)
	if err != nil {
		return "", fmt.Errorf("ошибка сериализации мок-плана: %w", err)
	}
	return string(data), nil
}

// mockExercise упражнение в формате контракта planJSON
type mockExercise struct {
	Name          string  `json:"name"`
	Sets          int     `json:"sets"`
	Reps          string  `json:"reps"`
	WeightPercent float64 `json:"weight_percent"`
	RestSeconds   int     `json:"rest_seconds"`
	RPE           float64 `json:"rpe"`
	Notes         string  `json:"notes,omitempty"`
}

type mockWorkout struct {
	DayNum    int            `json:"day_num"`
	Name      string         `json:"name"`
	Exercises []mockExercise `json:"exercises"`
}

type mockWeek struct {
	WeekNum  int           `json:"week_num"`
	Phase    string        `json:"phase"`
	Workouts []mockWorkout `json:"workouts"`
}

type mockPlan struct {
	PlanName    string     `json:"plan_name"`
	Description string     `json:"description"`
	Weeks       []mockWeek `json:"weeks"`
}

// Шаблоны дней: жим / тяга / ноги, дальше по кругу
var mockDayTemplates = []struct {
	name      string
	exercises []mockExercise
}{
	{
		name: "Жимовой день",
		exercises: []mockExercise{
			{Name: "Жим штанги лёжа", Sets: 4, Reps: "6-8", WeightPercent: 72, RestSeconds: 150, RPE: 7},
			{Name: "Жим гантелей на наклонной", Sets: 3, Reps: "8-10", WeightPercent: 65, RestSeconds: 120, RPE: 7},
			{Name: "Жим стоя", Sets: 3, Reps: "8-10", WeightPercent: 65, RestSeconds: 120, RPE: 7},
			{Name: "Разгибание рук на блоке", Sets: 3, Reps: "10-12", WeightPercent: 55, RestSeconds: 90, RPE: 8},
		},
	},
	{
		name: "Тяговый день",
		exercises: []mockExercise{
			{Name: "Становая тяга", Sets: 4, Reps: "5", WeightPercent: 75, RestSeconds: 180, RPE: 7},
			{Name: "Тяга штанги в наклоне", Sets: 4, Reps: "8-10", WeightPercent: 65, RestSeconds: 120, RPE: 7},
			{Name: "Подтягивания", Sets: 3, Reps: "8-10", WeightPercent: 60, RestSeconds: 120, RPE: 8},
			{Name: "Сгибание рук со штангой", Sets: 3, Reps: "10-12", WeightPercent: 55, RestSeconds: 90, RPE: 8},
		},
	},
	{
		name: "Ноги",
		exercises: []mockExercise{
			{Name: "Присед со штангой", Sets: 4, Reps: "6-8", WeightPercent: 72, RestSeconds: 180, RPE: 7},
			{Name: "Румынская тяга", Sets: 3, Reps: "8-10", WeightPercent: 65, RestSeconds: 150, RPE: 7},
			{Name: "Жим ногами", Sets: 3, Reps: "10-12", WeightPercent: 60, RestSeconds: 120, RPE: 8},
			{Name: "Подъём на носки", Sets: 3, Reps: "12-15", WeightPercent: 50, RestSeconds: 60, RPE: 8},
		},
	},
}

// mockTemplateJSON возвращает шаблон тренировки, подбирая день под
// направленность из промпта
func mockTemplateJSON(prompt string) string {
	tpl := mockDayTemplates[0]
	lower := strings.ToLower(prompt)
	switch {
	case strings.Contains(lower, "ноги") || strings.Contains(lower, "присед"):
		tpl = mockDayTemplates[2]
	case strings.Contains(lower, "спина") || strings.Contains(lower, "тяга"):
		tpl = mockDayTemplates[1]
	}

	workout := mockWorkout{DayNum: 1, Name: tpl.name, Exercises: tpl.exercises}
	data, _ := json.Marshal(workout)
	return string(data)
}

func buildMockPlan(daysPerWeek, totalWeeks int) mockPlan {
	plan := mockPlan{
		PlanName:    "Базовый силовой план",
		Description: "Линейная периодизация с разгрузкой каждой четвёртой неделей",
	}

	for weekNum := 1; weekNum <= totalWeeks; weekNum++ {
		deload := totalWeeks >= 4 && weekNum%4 == 0
		week := mockWeek{
			WeekNum: weekNum,
			Phase:   "hypertrophy",
		}
		if deload {
			week.Phase = "deload"
		} else if weekNum > totalWeeks/2 {
			week.Phase = "strength"
		}

		// рост интенсивности внутри блока из четырёх недель
		bump := float64((weekNum - 1) % 4 * 2)

		for day := 1; day <= daysPerWeek; day++ {
			tpl := mockDayTemplates[(day-1)%len(mockDayTemplates)]
			workout := mockWorkout{
				DayNum: day,
				Name:   fmt.Sprintf("День %d - %s", day, tpl.name),
			}
			for _, ex := range tpl.exercises {
				e := ex
				if deload {
					e.Sets = 2
					e.WeightPercent = ex.WeightPercent - 15
					e.RPE = 6
					e.Notes = "Разгрузочная неделя: лёгкие веса"
				} else {
					e.WeightPercent = ex.WeightPercent + bump
				}
				workout.Exercises = append(workout.Exercises, e)
			}
			week.Workouts = append(week.Workouts, workout)
		}
		plan.Weeks = append(plan.Weeks, week)
	}

	return plan
}
