package s3

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"resume-builder/internal/shared/storage/object"
)

func TestObjectKeyPrefix(t *testing.T) {
	tests := []struct {
		prefix string
		key    string
		want   string
	}{
		{prefix: "", key: "abc/1_AlignAI_Resume.txt", want: "abc/1_AlignAI_Resume.txt"},
		{prefix: "exports", key: "abc/1.txt", want: "exports/abc/1.txt"},
		{prefix: " /exports/ ", key: "/abc/1.txt", want: "exports/abc/1.txt"},
		{prefix: "env/prod/exports", key: "abc/1.txt", want: "env/prod/exports/abc/1.txt"},
		{prefix: "exports", key: "", want: "exports"},
	}
	for _, tt := range tests {
		store := newWithClient(nil, Options{Bucket: "b", Prefix: tt.prefix})
		if got := store.objectKey(tt.key); got != tt.want {
			t.Fatalf("objectKey(prefix=%q, key=%q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
		}
	}
}

func TestNewRequiresBucket(t *testing.T) {
	if _, err := New(context.Background(), Options{Region: "us-east-1", Bucket: " "}); err == nil {
		t.Fatalf("expected error without bucket")
	}
}

type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	headers map[string]http.Header
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := strings.TrimPrefix(r.URL.Path, "/")
	switch r.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.objects[key] = body
		f.headers[key] = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		body, ok := f.objects[key]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`)
			return
		}
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		_, _ = w.Write(body)
	case http.MethodDelete:
		delete(f.objects, key)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func TestStoreRoundTripAgainstFakeS3(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{}, headers: map[string]http.Header{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client := s3.New(s3.Options{
		Region:       "us-east-1",
		BaseEndpoint: aws.String(srv.URL),
		UsePathStyle: true,
		Credentials:  aws.AnonymousCredentials{},
	})
	store := newWithClient(client, Options{Bucket: "exports-bucket", Prefix: "/exports/", KMSKeyID: "kms-key"})
	ctx := context.Background()

	obj, err := store.Put(ctx, "user-1", "AlignAI_Resume.txt", "text/plain; charset=utf-8", strings.NewReader("JANE DOE"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if obj.Size != 8 {
		t.Fatalf("expected size 8, got %d", obj.Size)
	}

	stored := "exports-bucket/exports/" + obj.Key
	fake.mu.Lock()
	hdr := fake.headers[stored]
	fake.mu.Unlock()
	if hdr == nil {
		t.Fatalf("expected object at %s", stored)
	}
	if hdr.Get("X-Amz-Server-Side-Encryption") != "aws:kms" || hdr.Get("X-Amz-Server-Side-Encryption-Aws-Kms-Key-Id") != "kms-key" {
		t.Fatalf("expected kms encryption headers, got %v", hdr)
	}

	rc, err := store.Open(ctx, obj.Key)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	data, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(data) != "JANE DOE" {
		t.Fatalf("unexpected body %q", data)
	}

	if err := store.Delete(ctx, obj.Key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Open(ctx, obj.Key); !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPutDefaultsToAES256(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{}, headers: map[string]http.Header{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client := s3.New(s3.Options{
		Region:       "us-east-1",
		BaseEndpoint: aws.String(srv.URL),
		UsePathStyle: true,
		Credentials:  aws.AnonymousCredentials{},
	})
	store := newWithClient(client, Options{Bucket: "exports-bucket"})

	obj, err := store.Put(context.Background(), "guest:g1", "AlignAI_Resume.txt", "text/plain; charset=utf-8", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	fake.mu.Lock()
	hdr := fake.headers["exports-bucket/"+obj.Key]
	fake.mu.Unlock()
	if hdr.Get("X-Amz-Server-Side-Encryption") != "AES256" {
		t.Fatalf("expected AES256 encryption, got %v", hdr)
	}
}
