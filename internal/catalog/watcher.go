package catalog

import (
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Пауза между последним событием записи и перечитыванием файла.
// Переменная, а не константа - тесты сокращают её.
var debounceDelay = 2 * time.Second

// Watch запускает наблюдение за файлом каталога и перечитывает его при
// изменениях. Редакторы пишут файл сериями событий, поэтому события
// схлопываются с паузой в 2 секунды. Закрытие stop останавливает наблюдение.
func (s *Store) Watch(stop <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// Следим за директорией: при атомарной записи (rename поверх файла)
	// watch на сам файл теряется
	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()

		// Перезагрузка по заднему фронту серии: каждый новый эвент сдвигает
		// таймер, читаем файл один раз после паузы - уже финальную версию
		var pending <-chan time.Time

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(s.path) {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				pending = time.After(debounceDelay)
			case <-pending:
				pending = nil
				if err := s.Reload(); err != nil {
					log.Printf("Каталог: ошибка перезагрузки, использую прежнюю версию: %v", err)
					continue
				}
				log.Printf("Каталог перезагружен: %s (%d упражнений)", s.path, len(s.Exercises()))
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("Каталог: ошибка наблюдателя: %v", err)
			case <-stop:
				return
			}
		}
	}()

	log.Printf("Наблюдение за каталогом %s запущено", s.path)
	return nil
}
