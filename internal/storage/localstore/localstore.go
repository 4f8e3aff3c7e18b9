// Package localstore реализует локальное файловое key/value-хранилище.
// Состояние продукта целиком живёт в нескольких именованных слотах
// (currentProfile, allProfiles, viewCounter), поэтому хранилище держит
// все значения в памяти и сбрасывает снимок в один JSON-файл на каждой
// записи. Файл пишется через временный файл с fsync и rename, чтобы
// падение процесса не оставило частично записанное состояние.
package localstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	json "github.com/goccy/go-json"
)

// ErrCorruptValue возвращается из Get, когда слот существует, но его
// содержимое не разбирается в ожидаемую структуру. Вызывающая сторона
// решает, выбросить ли испорченную запись.
var ErrCorruptValue = errors.New("corrupt value in store")

// Store — потокобезопасное key/value-хранилище со снимком в файле.
// Двух процессов над одним файлом хранилище не координирует: запись
// последнего побеждает, это принятое ограничение продукта.
type Store struct {
	mu   sync.RWMutex
	path string
	data map[string]json.RawMessage
}

// Open загружает хранилище из файла или создаёт пустое, если файла нет.
// Полностью нечитаемый файл считается отсутствующим состоянием: прежний
// снимок откладывается в сторону с суффиксом .corrupt и хранилище
// начинает с чистого листа.
func Open(path string) (*Store, error) {
	const op = "localstore.Open"

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	s := &Store{
		path: path,
		data: make(map[string]json.RawMessage),
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := json.Unmarshal(raw, &s.data); err != nil {
		_ = os.Rename(path, path+".corrupt")
		s.data = make(map[string]json.RawMessage)
		return s, nil
	}
	return s, nil
}

// Get читает слот в dest. Возвращает false, если слот пуст.
// Для существующего, но нечитаемого значения возвращается ошибка,
// оборачивающая ErrCorruptValue.
func (s *Store) Get(key string, dest any) (bool, error) {
	const op = "localstore.Get"

	s.mu.RLock()
	raw, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("%s: %w: %w", op, ErrCorruptValue, err)
	}
	return true, nil
}

// Set сериализует значение в слот и сбрасывает снимок на диск.
func (s *Store) Set(key string, value any) error {
	const op = "localstore.Set"

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = raw
	if err := s.persistLocked(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Delete очищает слот и сбрасывает снимок на диск.
// Удаление отсутствующего слота не является ошибкой.
func (s *Store) Delete(key string) error {
	const op = "localstore.Delete"

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; !ok {
		return nil
	}
	delete(s.data, key)
	if err := s.persistLocked(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Path возвращает путь к файлу снимка.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) persistLocked() error {
	raw, err := json.Marshal(s.data)
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if _, err = file.Write(raw); err != nil {
		file.Close()
		os.Remove(tmp)
		return err
	}
	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmp)
		return err
	}
	if err = file.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, s.path)
}
