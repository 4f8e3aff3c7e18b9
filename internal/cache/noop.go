package cache

import "time"

// Noop — заглушка кеша для запуска без redis: каждое чтение — промах,
// записи и инвалидация молча принимаются.
type Noop struct{}

// Get всегда сообщает о промахе.
func (Noop) Get(_ string, _ any) (bool, error) { return false, nil }

// Set принимает значение и ничего не сохраняет.
func (Noop) Set(_ string, _ any, _ time.Duration) error { return nil }

// Invalidate ничего не делает.
func (Noop) Invalidate(_ string) error { return nil }
