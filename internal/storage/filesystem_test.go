package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteCreatesNestedFile(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	key, err := store.Write(context.Background(), "generated/asset-1.png", []byte("payload"))
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if key != "generated/asset-1.png" {
		t.Fatalf("key = %q, want generated/asset-1.png", key)
	}

	data, err := os.ReadFile(filepath.Join(store.BasePath(), "generated", "asset-1.png"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "payload" {
		t.Fatalf("data = %q, want payload", data)
	}
}

func TestWriteRejectsTraversal(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	for _, key := range []string{"../outside.png", "a/../../outside.png", "", "."} {
		if _, err := store.Write(context.Background(), key, []byte("x")); err == nil {
			t.Fatalf("key %q: expected error", key)
		}
	}
}

func TestWriteHonorsCancelledContext(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.Write(ctx, "generated/a.png", []byte("x")); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}

func TestNewFileStoreRequiresPath(t *testing.T) {
	if _, err := NewFileStore("  "); err == nil {
		t.Fatalf("expected error for blank base path")
	}
}

func TestKeyForAsset(t *testing.T) {
	if key := KeyForAsset("abc-123"); key != "generated/abc-123.png" {
		t.Fatalf("key = %q, want generated/abc-123.png", key)
	}
	if key := KeyForAsset("  "); key != "generated/unnamed.png" {
		t.Fatalf("key = %q, want generated/unnamed.png", key)
	}
}
