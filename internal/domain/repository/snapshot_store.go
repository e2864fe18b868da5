package repository

import "context"

// SnapshotStore puerto de persistencia clave-valor para los snapshots de los stores.
// Cada store serializa su slice completo bajo una clave de namespace fija
// ("customer-storage:<userID>", "job-storage:<userID>", ...).
type SnapshotStore interface {
	Save(ctx context.Context, key string, value any) error
	// Load deserializa el snapshot en dest. found=false si la clave no existe.
	Load(ctx context.Context, key string, dest any) (found bool, err error)
	Delete(ctx context.Context, key string) error
}
