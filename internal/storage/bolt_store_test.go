package storage

import (
	"os"
	"path/filepath"
	"testing"
)

const tokenKey = "access_token"

func TestBoltStoreSetGetDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.db")

	store, err := NewStore(TypeBBolt, path)
	if err != nil {
		t.Fatalf("NewStore bbolt: %v", err)
	}
	defer store.Close()

	if _, ok, err := store.Get(tokenKey); err != nil || ok {
		t.Fatalf("expected missing token, ok=%v err=%v", ok, err)
	}

	if err := store.Set(tokenKey, "tok-1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := store.Get(tokenKey)
	if err != nil || !ok || got != "tok-1" {
		t.Fatalf("Get = %q ok=%v err=%v", got, ok, err)
	}

	if err := store.Delete(tokenKey); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := store.Get(tokenKey); ok {
		t.Fatalf("expected token to be deleted")
	}
	if err := store.Delete("never-set"); err != nil {
		t.Fatalf("Delete missing key: %v", err)
	}
}

func TestBoltStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	first, err := openBolt(path)
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	if err := first.Set(tokenKey, "persisted"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm&0o077 != 0 {
		t.Fatalf("session file should be owner-only, got %v", perm)
	}

	second, err := openBolt(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	got, ok, err := second.Get(tokenKey)
	if err != nil || !ok || got != "persisted" {
		t.Fatalf("Get after reopen = %q ok=%v err=%v", got, ok, err)
	}
}

func TestNewStoreSupportsNoopAndMemory(t *testing.T) {
	store, err := NewStore("none", "")
	if err != nil {
		t.Fatalf("NewStore none: %v", err)
	}
	if err := store.Set("x", "y"); err != nil {
		t.Fatalf("noop store Set: %v", err)
	}
	if _, ok, _ := store.Get("x"); ok {
		t.Fatalf("noop store must never return values")
	}

	mem, err := NewStore("Memory", "")
	if err != nil {
		t.Fatalf("NewStore memory: %v", err)
	}
	_ = mem.Set("x", "y")
	if v, ok, _ := mem.Get("x"); !ok || v != "y" {
		t.Fatalf("memory store Get = %q ok=%v", v, ok)
	}
}

func TestNewStoreRejectsUnknownAndMissingPath(t *testing.T) {
	if _, err := NewStore("redis", ""); err == nil {
		t.Fatalf("expected error for unsupported type")
	}
	if _, err := NewStore(TypeBBolt, " "); err == nil {
		t.Fatalf("expected error for missing bbolt path")
	}
}
