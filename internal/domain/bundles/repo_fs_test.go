package bundles

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeBundle(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestFileRepository_Get(t *testing.T) {
	dir := t.TempDir()
	writeBundle(t, dir, "claimReq.json", claimBundle)
	repo := NewFileRepository(dir)

	data, err := repo.Get(context.Background(), "claimReq")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != claimBundle {
		t.Error("expected file contents unchanged")
	}

	if _, err := repo.Get(context.Background(), "claimResp"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFileRepository_RejectsEscapingIDs(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "bundles")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeBundle(t, root, "secret.json", `{}`)
	repo := NewFileRepository(dir)

	for _, id := range []string{"", ".", "..", "../secret", `..\secret`, "a/b"} {
		if _, err := repo.Get(context.Background(), id); !errors.Is(err, ErrNotFound) {
			t.Errorf("%q: expected ErrNotFound, got %v", id, err)
		}
	}
}

func TestFileRepository_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	writeBundle(t, dir, "claimReq.json", claimBundle)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileRepository(dir).Get(ctx, "claimReq")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if errors.Is(err, ErrTimeout) {
		t.Errorf("cancellation reported as timeout: %v", err)
	}
}

func TestFileRepository_ExpiredContext(t *testing.T) {
	dir := t.TempDir()
	writeBundle(t, dir, "claimReq.json", claimBundle)
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	if _, err := NewFileRepository(dir).Get(ctx, "claimReq"); !errors.Is(err, ErrTimeout) {
		t.Errorf("expected ErrTimeout, got %v", err)
	}
}

func TestFileRepository_IDs(t *testing.T) {
	dir := t.TempDir()
	writeBundle(t, dir, "claimResp.json", `{}`)
	writeBundle(t, dir, "claimReq.json", `{}`)
	writeBundle(t, dir, "notes.txt", "ignore me")
	if err := os.Mkdir(filepath.Join(dir, "nested.json"), 0o755); err != nil {
		t.Fatal(err)
	}

	ids, err := NewFileRepository(dir).IDs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 2 || ids[0] != "claimReq" || ids[1] != "claimResp" {
		t.Errorf("unexpected ids %v", ids)
	}

	if _, err := NewFileRepository(filepath.Join(dir, "missing")).IDs(context.Background()); err == nil {
		t.Error("expected error for missing directory")
	}
}
