package store

import "gorm.io/gorm/logger"

// MemoryURL selects the in-memory table instead of a database.
const MemoryURL = "memory"

// Open returns a MemoryStore for MemoryURL and a GormStore otherwise.
func Open(databaseURL string, log logger.Interface) (Store, error) {
	if databaseURL == MemoryURL {
		return NewMemoryStore(), nil
	}
	return OpenGorm(databaseURL, log)
}
