package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config содержит конфигурацию приложения
type Config struct {
	HTTPAddr string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Каталог упражнений (JSON, перечитывается при изменении файла)
	CatalogPath string

	// AI провайдер: auto, remote, mock
	AIProvider string
	AIBaseURL  string
	AIModel    string
	AIAPIKey   string

	// Telegram (канал напоминаний)
	TelegramToken  string
	TelegramChatID int64 // чат тренера, куда уходят напоминания

	// Google Sheets (экспорт планов)
	GoogleCredentialsPath string
	GoogleDriveFolderID   string

	// Каталог для xlsx-экспортов
	ExportDir string
}

// Load загружает конфигурацию из переменных окружения или .env файла
func Load() (*Config, error) {
	env, err := loadEnvFile(".env")
	if err != nil {
		env = make(map[string]string)
	}

	getEnv := func(key, defaultValue string) string {
		if value := os.Getenv(key); value != "" {
			return value
		}
		if value, ok := env[key]; ok && value != "" {
			return value
		}
		return defaultValue
	}

	cfg := &Config{
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "coachhub"),

		CatalogPath: getEnv("CATALOG_PATH", "exercises.json"),

		AIProvider: getEnv("AI_PROVIDER", "auto"),
		AIBaseURL:  getEnv("AI_BASE_URL", "https://api.groq.com/openai/v1"),
		AIModel:    getEnv("AI_MODEL", ""),
		AIAPIKey:   getEnv("AI_API_KEY", ""),

		TelegramToken: getEnv("TELEGRAM_TOKEN", ""),

		GoogleCredentialsPath: getEnv("GOOGLE_CREDENTIALS_PATH", "google-credentials.json"),
		GoogleDriveFolderID:   getEnv("GOOGLE_DRIVE_FOLDER_ID", ""),

		ExportDir: getEnv("EXPORT_DIR", "exports"),
	}

	if raw := getEnv("TELEGRAM_CHAT_ID", ""); raw != "" {
		chatID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("TELEGRAM_CHAT_ID не число: %w", err)
		}
		cfg.TelegramChatID = chatID
	}

	if cfg.DBName == "" {
		return nil, fmt.Errorf("DB_NAME не задан")
	}

	return cfg, nil
}

// DSN возвращает строку подключения к базе данных
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

// loadEnvFile читает .env файл
func loadEnvFile(filename string) (map[string]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	env := make(map[string]string)
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		value = strings.Trim(value, `"'`)

		env[key] = value
	}

	return env, scanner.Err()
}
