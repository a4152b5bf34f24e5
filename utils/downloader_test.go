package utils

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

type memUploader struct {
	mu      sync.Mutex
	objects map[string]string
}

func (m *memUploader) Upload(_ context.Context, body io.Reader, key, contentType string) (string, error) {
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = contentType + ":" + string(b)
	return key, nil
}

func TestMirrorImages(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png-bytes"))
	}))
	defer srv.Close()

	store := &memUploader{objects: map[string]string{}}
	ok := srv.URL + "/avatar.png?size=200"
	missing := srv.URL + "/missing.png"
	got := MirrorImages(context.Background(), store, []string{ok, missing, "dietitians/already-a-key.jpg"}, "dietitians")

	if len(got) != 1 {
		t.Fatalf("expected 1 mirrored image, got %d: %v", len(got), got)
	}
	key, found := got[ok]
	if !found {
		t.Fatalf("expected %s to be mirrored", ok)
	}
	if !strings.HasPrefix(key, "dietitians/") || !strings.HasSuffix(key, ".png") {
		t.Fatalf("unexpected object key %q", key)
	}
	if store.objects[key] != "image/png:png-bytes" {
		t.Fatalf("unexpected stored object %q", store.objects[key])
	}
}
