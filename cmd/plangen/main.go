package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"coachhub/clients/ai"
	"coachhub/internal/config"
	"coachhub/internal/export"
	"coachhub/internal/training"
)

// Генерация тренировочного плана из командной строки: для отладки промптов
// и офлайн-генерации без запуска сервера.
func main() {
	name := flag.String("name", "Атлет", "имя атлета")
	goal := flag.String("goal", "сила", "цель: сила, масса, похудение")
	experience := flag.String("experience", "intermediate", "уровень: beginner, intermediate, advanced")
	days := flag.Int("days", 3, "тренировок в неделю")
	weeks := flag.Int("weeks", 8, "длительность программы в неделях")
	equipment := flag.String("equipment", "штанга, гантели, тренажёры", "доступное оборудование")
	start := flag.String("start", "", "дата старта YYYY-MM-DD (по умолчанию ближайший понедельник)")
	xlsxPath := flag.String("xlsx", "", "записать план в xlsx-файл вместо JSON в stdout")
	mock := flag.Bool("mock", false, "использовать mock-провайдер вместо конфигурации")
	model := flag.String("model", "", "переопределить AI-модель из конфигурации")
	flag.Parse()

	startDate := training.WeekMonday(time.Now().AddDate(0, 0, 7))
	if *start != "" {
		parsed, err := time.Parse("2006-01-02", *start)
		if err != nil {
			log.Fatalf("Некорректная дата старта: %v", err)
		}
		startDate = parsed
	}

	engine, err := buildEngine(*mock, *model)
	if err != nil {
		log.Fatalf("Ошибка инициализации AI: %v", err)
	}

	plan, validation, err := engine.GeneratePlan(ai.PlanRequest{
		AthleteName: *name,
		Goal:        *goal,
		Experience:  *experience,
		DaysPerWeek: *days,
		TotalWeeks:  *weeks,
		Equipment:   *equipment,
		StartDate:   startDate,
	})
	if err != nil {
		log.Fatalf("Ошибка генерации плана: %v", err)
	}

	if validation != nil {
		fmt.Fprint(os.Stderr, ai.FormatValidationResult(validation))
	}

	if *xlsxPath != "" {
		if err := export.WritePlanWorkbook(*xlsxPath, plan, *name, nil); err != nil {
			log.Fatalf("Ошибка записи xlsx: %v", err)
		}
		fmt.Printf("План записан в %s\n", *xlsxPath)
		return
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(plan); err != nil {
		log.Fatal(err)
	}
}

func buildEngine(forceMock bool, model string) (*ai.Engine, error) {
	if forceMock {
		return ai.NewEngineWithProvider(ai.NewMockProvider()), nil
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if model != "" && cfg.AIAPIKey != "" {
		client := ai.NewClient(cfg.AIBaseURL, cfg.AIAPIKey, cfg.AIModel)
		client.SetModel(model)
		return ai.NewEngineWithProvider(client), nil
	}
	return ai.NewEngine(ai.EngineConfig{
		Provider:       ai.Provider(cfg.AIProvider),
		BaseURL:        cfg.AIBaseURL,
		APIKey:         cfg.AIAPIKey,
		Model:          cfg.AIModel,
		FallbackToMock: true,
	})
}
