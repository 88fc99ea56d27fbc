package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"

	_ "github.com/lib/pq"

	"coachhub/clients/ai"
	"coachhub/internal/catalog"
	"coachhub/internal/config"
	"coachhub/internal/gsheets"
	"coachhub/internal/notify"
	"coachhub/internal/repository"
	"coachhub/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		log.Fatalf("Ошибка подключения к базе: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("База недоступна: %v", err)
	}

	repo := repository.New(db)

	store, err := catalog.NewStore(cfg.CatalogPath)
	if err != nil {
		// Без файла поднимаемся на последнем синхронизированном состоянии базы
		log.Printf("Файл каталога недоступен (%v), читаю каталог из базы", err)
		store, err = catalog.NewStoreFromDB(repo.Exercise)
		if err != nil {
			log.Fatalf("Ошибка загрузки каталога упражнений: %v", err)
		}
	} else {
		if err := store.SyncToDB(repo.Exercise); err != nil {
			log.Fatalf("Ошибка синхронизации каталога с базой: %v", err)
		}
		stop := make(chan struct{})
		defer close(stop)
		if err := store.Watch(stop); err != nil {
			log.Printf("Слежение за каталогом не запущено: %v", err)
		}
	}

	engine, err := ai.NewEngine(ai.EngineConfig{
		Provider:       ai.Provider(cfg.AIProvider),
		BaseURL:        cfg.AIBaseURL,
		APIKey:         cfg.AIAPIKey,
		Model:          cfg.AIModel,
		FallbackToMock: true,
	})
	if err != nil {
		log.Fatalf("Ошибка инициализации AI: %v", err)
	}

	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		notifier, err := notify.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Fatalf("Ошибка подключения к Telegram: %v", err)
		}
		scheduler := notify.NewReminderScheduler(repo.Appointment, notifier)
		if err := scheduler.Start(); err != nil {
			log.Fatalf("Ошибка запуска напоминаний: %v", err)
		}
		defer scheduler.Stop()
		log.Println("Напоминания в Telegram включены")
	} else {
		log.Println("TELEGRAM_TOKEN/TELEGRAM_CHAT_ID не заданы, напоминания выключены")
	}

	var sheets *gsheets.Client
	if cfg.GoogleDriveFolderID != "" {
		sheets, err = gsheets.NewClient(cfg.GoogleCredentialsPath, cfg.GoogleDriveFolderID)
		if err != nil {
			log.Printf("Экспорт в Google Sheets выключен: %v", err)
			sheets = nil
		}
	}

	if err := os.MkdirAll(cfg.ExportDir, 0o755); err != nil {
		log.Fatalf("Ошибка создания каталога экспортов: %v", err)
	}

	srv := server.New(server.Deps{
		Athletes:     repo.Athlete,
		OneRM:        repo.OneRM,
		Sessions:     repo.Session,
		Plans:        repo.Plan,
		Appointments: repo.Appointment,
		Catalog:      store,
		Engine:       engine,
		Sheets:       sheets,
		ExportDir:    cfg.ExportDir,
	})

	log.Printf("Сервер запущен на %s", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, srv.Handler()); err != nil {
		log.Fatal(err)
	}
}
