package catalog

import (
	"os"
	"testing"
	"time"
)

const updatedCatalogJSON = `{
  "exercises": [
    {"slug": "bench-press", "name": "Жим штанги лёжа", "muscle_group": "грудь",
     "body_region": "upper-push", "one_rm_group": "horizontal-press", "is_primary_1pm": true, "sort_order": 1},
    {"slug": "deadlift", "name": "Становая тяга", "muscle_group": "спина",
     "body_region": "lower", "one_rm_group": "hinge-pattern", "is_primary_1pm": true, "sort_order": 2}
  ],
  "reference_rules": []
}`

func TestWatchReloadsAfterWriteBurst(t *testing.T) {
	old := debounceDelay
	debounceDelay = 100 * time.Millisecond
	t.Cleanup(func() { debounceDelay = old })

	path := writeCatalog(t, testCatalogJSON)
	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore() ошибка: %v", err)
	}

	stop := make(chan struct{})
	t.Cleanup(func() { close(stop) })
	if err := s.Watch(stop); err != nil {
		t.Fatalf("Watch() ошибка: %v", err)
	}

	// Серия быстрых записей: последняя версия файла должна попасть в
	// хранилище, даже если события пришли чаще паузы дебаунса
	if err := os.WriteFile(path, []byte(testCatalogJSON), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(updatedCatalogJSON), 0644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		if _, ok := s.BySlug("deadlift"); ok {
			if _, stale := s.BySlug("squat"); stale {
				t.Fatal("в хранилище осталось упражнение из промежуточной версии файла")
			}
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("хранилище не перечитало финальную версию каталога")
}
