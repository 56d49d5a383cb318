package storage

import "context"

// Open returns a SQLiteStore for path, or a MemoryStore when path is empty
func Open(ctx context.Context, path string) (Store, error) {
	if path == "" {
		return NewMemoryStore(), nil
	}
	return OpenSQLite(ctx, path)
}
