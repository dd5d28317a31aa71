package storage

import (
	"fmt"
	"strings"
)

// Package storage provides the client-side key/value store that holds the session token.

// Store is a small string key/value store. Get reports ok=false for missing keys.
type Store interface {
	Close() error
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

const (
	TypeBBolt  = "bbolt"
	TypeMemory = "memory"
	TypeNone   = "none"
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))

	switch typ {
	case "", TypeNone, "disabled":
		return noopStore{}, nil
	case TypeMemory:
		return NewMemoryStore(), nil
	case TypeBBolt:
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

type noopStore struct{}

func (noopStore) Close() error                     { return nil }
func (noopStore) Get(string) (string, bool, error) { return "", false, nil }
func (noopStore) Set(string, string) error         { return nil }
func (noopStore) Delete(string) error              { return nil }
