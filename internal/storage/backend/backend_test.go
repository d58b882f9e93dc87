package backend

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/courtside/courtside/internal/config"
	"github.com/courtside/courtside/internal/storage"
)

func TestOpenLocalAndMount(t *testing.T) {
	ctx := context.Background()
	store, err := Open(ctx, config.ObjectStoreConfig{Backend: config.BackendLocal, LocalRoot: t.TempDir()})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	body := []byte("PAR1")
	if _, err := store.Put(ctx, "game.parquet", bytes.NewReader(body), int64(len(body)), storage.PutOptions{}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	fs, err := Mount(config.TablesConfig{Scheme: "abfs", Container: "data"}, store)
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	reader, err := fs.Open(ctx, "abfs://data/game.parquet")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer func() { _ = reader.Close() }()
	got, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if !bytes.Equal(got, body) {
		t.Fatalf("body = %q", got)
	}
}

func TestOpenRejectsUnknownBackend(t *testing.T) {
	if _, err := Open(context.Background(), config.ObjectStoreConfig{Backend: "gcs"}); err == nil {
		t.Fatal("expected unsupported backend error")
	}
}

func TestOpenS3RequiresEndpoint(t *testing.T) {
	if _, err := Open(context.Background(), config.ObjectStoreConfig{Backend: config.BackendS3, Bucket: "league"}); err == nil {
		t.Fatal("expected missing endpoint error")
	}
}

func TestMountRejectsBadContainer(t *testing.T) {
	if _, err := Mount(config.TablesConfig{Scheme: "abfs", Container: "a/b"}, nil); err == nil {
		t.Fatal("expected mount error")
	}
}
