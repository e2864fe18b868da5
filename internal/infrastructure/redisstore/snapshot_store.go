// Package redisstore respalda los stores en memoria con snapshots JSON en Redis.
// Cada store escribe su slice completo bajo una clave de namespace fija, solo
// cuando hay un usuario en sesión.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/simplepro/simplepro-api/internal/domain/repository"
)

var _ repository.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore adaptador de SnapshotStore sobre Redis.
type SnapshotStore struct {
	client *redis.Client
}

// New conecta a Redis y verifica la conexión con Ping.
func New(ctx context.Context, addr, password string, db int) (*SnapshotStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redisstore: ping: %w", err)
	}
	return &SnapshotStore{client: client}, nil
}

// NewWithClient construye el adaptador sobre un cliente ya creado (tests).
func NewWithClient(client *redis.Client) *SnapshotStore {
	return &SnapshotStore{client: client}
}

// Close cierra la conexión.
func (s *SnapshotStore) Close() error {
	return s.client.Close()
}

// Save serializa value como JSON y lo escribe bajo key (sin TTL).
func (s *SnapshotStore) Save(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("redisstore: marshal %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("redisstore: set %s: %w", key, err)
	}
	return nil
}

// Load deserializa el snapshot en dest. found=false si la clave no existe.
func (s *SnapshotStore) Load(ctx context.Context, key string, dest any) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redisstore: get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("redisstore: unmarshal %s: %w", key, err)
	}
	return true, nil
}

// Delete elimina el snapshot. No-op si la clave no existe.
func (s *SnapshotStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redisstore: del %s: %w", key, err)
	}
	return nil
}

// Noop implementación nula para entornos sin Redis (REDIS_ADDR vacío):
// los stores funcionan solo en memoria y los snapshots se descartan.
type Noop struct{}

var _ repository.SnapshotStore = Noop{}

func (Noop) Save(context.Context, string, any) error          { return nil }
func (Noop) Load(context.Context, string, any) (bool, error)  { return false, nil }
func (Noop) Delete(context.Context, string) error             { return nil }
