package ai

import (
	"fmt"
	"log"
)

// Provider тип AI провайдера
type Provider string

const (
	ProviderAuto   Provider = "auto"
	ProviderRemote Provider = "remote"
	ProviderMock   Provider = "mock"
)

// ChatProvider - провайдер генерации текста
type ChatProvider interface {
	Chat(messages []Message, temperature float64) (string, error)
	Name() string
}

// EngineConfig конфигурация AI-движка
type EngineConfig struct {
	Provider Provider
	BaseURL  string
	APIKey   string
	Model    string
	// FallbackToMock включает переход на mock-провайдер при ошибке квоты
	FallbackToMock bool
}

// Engine - AI-движок приложения. Создаётся явно и передаётся зависимостям;
// глобального состояния у пакета нет, чтобы тесты были изолированы.
type Engine struct {
	primary   ChatProvider
	fallback  ChatProvider
	validator *PlanValidator
}

// NewEngine создаёт движок по конфигурации
func NewEngine(cfg EngineConfig) (*Engine, error) {
	e := &Engine{validator: NewPlanValidator()}

	switch cfg.Provider {
	case ProviderMock:
		e.primary = NewMockProvider()
	case ProviderRemote:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("AI_API_KEY не задан для remote-провайдера")
		}
		e.primary = NewClient(cfg.BaseURL, cfg.APIKey, cfg.Model)
	case ProviderAuto, "":
		// Auto: remote при наличии ключа, иначе mock
		if cfg.APIKey != "" {
			e.primary = NewClient(cfg.BaseURL, cfg.APIKey, cfg.Model)
		} else {
			e.primary = NewMockProvider()
		}
	default:
		return nil, fmt.Errorf("неизвестный AI-провайдер: %s", cfg.Provider)
	}

	if cfg.FallbackToMock {
		if _, isMock := e.primary.(*MockProvider); !isMock {
			e.fallback = NewMockProvider()
		}
	}

	return e, nil
}

// NewEngineWithProvider создаёт движок поверх готового провайдера (для тестов)
func NewEngineWithProvider(p ChatProvider) *Engine {
	return &Engine{primary: p, validator: NewPlanValidator()}
}

// chat выполняет запрос через основной провайдер,
// при ошибке квоты переходит на fallback
func (e *Engine) chat(messages []Message, temperature float64) (string, error) {
	result, err := e.primary.Chat(messages, temperature)
	if err == nil {
		return result, nil
	}
	if e.fallback != nil && IsQuotaError(err) {
		log.Printf("AI: провайдер %s исчерпал квоту, переключаюсь на %s", e.primary.Name(), e.fallback.Name())
		return e.fallback.Chat(messages, temperature)
	}
	return "", err
}
