package homepage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"
)

// ErrNoContent is returned by a Backend that holds no document.
var ErrNoContent = errors.New("no homepage content stored")

// Backend persists the homepage document outside the process.
type Backend interface {
	Name() string
	Load(ctx context.Context) (*Content, error)
	Save(ctx context.Context, c *Content) error
	Delete(ctx context.Context) error
}

// FileBackend keeps the document in a JSON file. Writes go through a
// temporary file and a rename so readers never see a partial document.
type FileBackend struct {
	path string
}

func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

func (b *FileBackend) Name() string { return "file" }

func (b *FileBackend) Load(_ context.Context) (*Content, error) {
	raw, err := os.ReadFile(b.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoContent
	}
	if err != nil {
		return nil, fmt.Errorf("read homepage file: %w", err)
	}

	var c Content
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode homepage file: %w", err)
	}
	return &c, nil
}

func (b *FileBackend) Save(_ context.Context, c *Content) error {
	raw, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode homepage: %w", err)
	}

	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create homepage dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".homepage-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), b.path); err != nil {
		return fmt.Errorf("replace homepage file: %w", err)
	}
	return nil
}

func (b *FileBackend) Delete(_ context.Context) error {
	if err := os.Remove(b.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove homepage file: %w", err)
	}
	return nil
}

// RedisBackend keeps the document as JSON under one key, shared by every
// instance of the service.
type RedisBackend struct {
	client *redis.Client
	key    string
}

func NewRedisBackend(client *redis.Client, key string) *RedisBackend {
	return &RedisBackend{client: client, key: key}
}

func (b *RedisBackend) Name() string { return "redis" }

func (b *RedisBackend) Load(ctx context.Context) (*Content, error) {
	raw, err := b.client.Get(ctx, b.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoContent
	}
	if err != nil {
		return nil, fmt.Errorf("get homepage key: %w", err)
	}

	var c Content
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode homepage key: %w", err)
	}
	return &c, nil
}

func (b *RedisBackend) Save(ctx context.Context, c *Content) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode homepage: %w", err)
	}
	if err := b.client.Set(ctx, b.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("set homepage key: %w", err)
	}
	return nil
}

func (b *RedisBackend) Delete(ctx context.Context) error {
	if err := b.client.Del(ctx, b.key).Err(); err != nil {
		return fmt.Errorf("delete homepage key: %w", err)
	}
	return nil
}
