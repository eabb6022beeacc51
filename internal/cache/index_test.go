package cache

import (
	"context"
	"testing"
)

func TestIndexPutIsUpsert(t *testing.T) {
	ix, err := openIndex(t.TempDir())
	if err != nil {
		t.Fatalf("open index: %v", err)
	}
	defer ix.Close()
	ctx := context.Background()

	if err := ix.Put(ctx, "ABC123", "ABC123.webm"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := ix.Put(ctx, "ABC123", "ABC123.mp4"); err != nil {
		t.Fatalf("put replace: %v", err)
	}

	filename, ok, err := ix.Lookup(ctx, "ABC123")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !ok || filename != "ABC123.mp4" {
		t.Fatalf("expected replaced filename, got %q ok=%v", filename, ok)
	}
}

func TestIndexRemoveFilename(t *testing.T) {
	ix, err := openIndex(t.TempDir())
	if err != nil {
		t.Fatalf("open index: %v", err)
	}
	defer ix.Close()
	ctx := context.Background()

	if err := ix.Put(ctx, "ABC123", "ABC123.mp4"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := ix.RemoveFilename(ctx, "ABC123.mp4"); err != nil {
		t.Fatalf("remove filename: %v", err)
	}
	_, ok, err := ix.Lookup(ctx, "ABC123")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if ok {
		t.Fatal("expected row removed")
	}
}
