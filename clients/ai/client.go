package ai

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// Модели по умолчанию (chat-completions совместимый API)
	DefaultModel  = "llama-3.3-70b-versatile"
	FallbackModel = "llama4-scout-17b-16e-instruct"
)

// Client - HTTP-клиент chat-completions API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	model      string
	fallback   string
}

// Message - сообщение для чата
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest - запрос к API
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

// ChatResponse - ответ от API
type ChatResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message      Message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

// quotaError - ошибка квоты/лимита, после которой имеет смысл fallback
type quotaError struct {
	model string
	msg   string
}

func (e *quotaError) Error() string {
	return fmt.Sprintf("квота исчерпана (модель %s): %s", e.model, e.msg)
}

// IsQuotaError сообщает, была ли ошибка ошибкой квоты или rate limit
func IsQuotaError(err error) bool {
	var qe *quotaError
	return errors.As(err, &qe)
}

// NewClient создаёт новый клиент
func NewClient(baseURL, apiKey, model string) *Client {
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		model:    model,
		fallback: FallbackModel,
	}
}

// SetModel устанавливает основную модель
func (c *Client) SetModel(model string) {
	c.model = model
}

// Name возвращает имя провайдера для логов
func (c *Client) Name() string {
	return "remote (" + c.model + ")"
}

// Chat отправляет сообщения и получает ответ.
// При ошибке квоты на основной модели пробует fallback-модель.
func (c *Client) Chat(messages []Message, temperature float64) (string, error) {
	models := []string{c.model}
	if c.fallback != "" && c.model != c.fallback {
		models = append(models, c.fallback)
	}

	var lastErr error
	for _, model := range models {
		result, err := c.chatWithModel(messages, temperature, model)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !IsQuotaError(err) {
			break // не-квотные ошибки fallback-модель не исправит
		}
	}
	return "", lastErr
}

// chatWithModel выполняет запрос к конкретной модели
func (c *Client) chatWithModel(messages []Message, temperature float64, model string) (string, error) {
	req := ChatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   4096,
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("ошибка сериализации: %w", err)
	}

	httpReq, err := http.NewRequest("POST", c.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("ошибка создания запроса: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("ошибка запроса: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("ошибка парсинга ответа: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		msg := "too many requests"
		if chatResp.Error != nil {
			msg = chatResp.Error.Message
		}
		return "", &quotaError{model: model, msg: msg}
	}

	if chatResp.Error != nil {
		if chatResp.Error.Code == "rate_limit_exceeded" || chatResp.Error.Code == "insufficient_quota" {
			return "", &quotaError{model: model, msg: chatResp.Error.Message}
		}
		return "", fmt.Errorf("ошибка API: %s", chatResp.Error.Message)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("пустой ответ от API")
	}

	return chatResp.Choices[0].Message.Content, nil
}

// SimpleChat - простой запрос с одним системным и одним пользовательским сообщением
func (c *Client) SimpleChat(systemPrompt, userMessage string) (string, error) {
	messages := []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userMessage},
	}
	return c.Chat(messages, 0.7)
}
