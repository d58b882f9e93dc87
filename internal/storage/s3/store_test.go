package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/courtside/courtside/internal/storage"
)

func TestPutUsesPrefixAndNormalizedKey(t *testing.T) {
	fake := &fakeAPI{}
	store, err := newStore("league-data", "nba/prod", fake)
	if err != nil {
		t.Fatalf("newStore() error = %v", err)
	}

	_, err = store.Put(context.Background(), "/game.parquet", bytes.NewBufferString("abc"), 3, storage.PutOptions{ContentType: "application/vnd.apache.parquet"})
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if fake.lastBucket != "league-data" {
		t.Fatalf("bucket = %q", fake.lastBucket)
	}
	if fake.lastKey != "nba/prod/game.parquet" {
		t.Fatalf("key = %q", fake.lastKey)
	}
}

func TestGetRejectsPathTraversal(t *testing.T) {
	store, err := newStore("league-data", "", &fakeAPI{})
	if err != nil {
		t.Fatalf("newStore() error = %v", err)
	}
	if _, err := store.Get(context.Background(), "../secrets.txt"); err == nil {
		t.Fatal("expected path traversal validation error")
	}
}

func TestGetKeepsNotFoundMatchable(t *testing.T) {
	store, err := newStore("league-data", "", &fakeAPI{getErr: storage.ErrObjectNotFound})
	if err != nil {
		t.Fatalf("newStore() error = %v", err)
	}
	_, err = store.Get(context.Background(), "team_details.parquet")
	if !errors.Is(err, storage.ErrObjectNotFound) {
		t.Fatalf("Get() error = %v, want ErrObjectNotFound", err)
	}
	if !strings.Contains(err.Error(), "team_details.parquet") {
		t.Fatalf("Get() error = %v, want key in message", err)
	}
}

func TestGetReturnsObjectBody(t *testing.T) {
	store, _ := newStore("league-data", "nba", &fakeAPI{})
	reader, err := store.Get(context.Background(), "draft_history.parquet")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	defer func() { _ = reader.Close() }()
	body, _ := io.ReadAll(reader)
	if string(body) != "nba/draft_history.parquet" {
		t.Fatalf("Get() body = %q", string(body))
	}
}

func TestEnsureBucketCreatesWhenMissing(t *testing.T) {
	fake := &fakeAPI{bucketExists: false}
	store, err := newStore("league-data", "", fake)
	if err != nil {
		t.Fatalf("newStore() error = %v", err)
	}

	if err := store.ensureBucket(context.Background(), "us-east-1"); err != nil {
		t.Fatalf("ensureBucket() error = %v", err)
	}
	if !fake.makeBucketCalled {
		t.Fatal("expected MakeBucket to be called")
	}
}

func TestEnsureBucketSkipsExisting(t *testing.T) {
	fake := &fakeAPI{bucketExists: true}
	store, _ := newStore("league-data", "", fake)
	if err := store.ensureBucket(context.Background(), "us-east-1"); err != nil {
		t.Fatalf("ensureBucket() error = %v", err)
	}
	if fake.makeBucketCalled {
		t.Fatal("MakeBucket should not be called for an existing bucket")
	}
}

func TestNewStoreRequiresBucket(t *testing.T) {
	if _, err := newStore("", "", &fakeAPI{}); err == nil {
		t.Fatal("expected missing bucket error")
	}
}

func TestParseEndpoint(t *testing.T) {
	endpoint, secure, err := parseEndpoint("https://minio.example.com", false)
	if err != nil {
		t.Fatalf("parseEndpoint() error = %v", err)
	}
	if endpoint != "minio.example.com" || !secure {
		t.Fatalf("endpoint/secure = %q/%v", endpoint, secure)
	}

	endpoint, secure, err = parseEndpoint("localhost:9000", false)
	if err != nil {
		t.Fatalf("parseEndpoint() error = %v", err)
	}
	if endpoint != "localhost:9000" || secure {
		t.Fatalf("endpoint/secure = %q/%v", endpoint, secure)
	}
}

type fakeAPI struct {
	lastBucket       string
	lastKey          string
	bucketExists     bool
	makeBucketCalled bool
	getErr           error
}

func (f *fakeAPI) PutObject(_ context.Context, bucket, key string, reader io.Reader, size int64, _ string) (storage.ObjectInfo, error) {
	f.lastBucket = bucket
	f.lastKey = key
	_, _ = io.Copy(io.Discard, reader)
	return storage.ObjectInfo{Key: key, Size: size, ETag: "etag-1"}, nil
}

func (f *fakeAPI) GetObject(_ context.Context, _, key string) (io.ReadCloser, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return io.NopCloser(strings.NewReader(key)), nil
}

func (f *fakeAPI) StatObject(_ context.Context, _, key string) (storage.ObjectInfo, error) {
	return storage.ObjectInfo{Key: key, Size: 10, LastModified: time.Now().UTC()}, nil
}

func (f *fakeAPI) BucketExists(_ context.Context, _ string) (bool, error) {
	return f.bucketExists, nil
}

func (f *fakeAPI) MakeBucket(_ context.Context, _, _ string) error {
	f.makeBucketCalled = true
	return nil
}
