package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ImageUploader is the storage side of MirrorImages.
type ImageUploader interface {
	Upload(ctx context.Context, body io.Reader, objectKey, contentType string) (string, error)
}

var imageClient = &http.Client{Timeout: 30 * time.Second}

// MirrorImages downloads each http(s) URL and uploads it under folderPrefix.
// Returns a map of original URL -> object key; failed URLs are absent from the map.
func MirrorImages(ctx context.Context, store ImageUploader, urls []string, folderPrefix string) map[string]string {
	urlToKey := make(map[string]string)
	var mu sync.Mutex
	var wg sync.WaitGroup

	// Limit concurrency
	semaphore := make(chan struct{}, 5)

	for _, url := range urls {
		if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
			continue
		}
		wg.Add(1)
		go func(url string) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			objectKey := fmt.Sprintf("%s/%s%s", folderPrefix, uuid.NewString(), imageExtension(url))
			if err := downloadAndUpload(ctx, store, url, objectKey); err != nil {
				log.Warn().Err(err).Str("url", url).Msg("Failed to mirror image")
				return
			}

			mu.Lock()
			urlToKey[url] = objectKey
			mu.Unlock()
		}(url)
	}

	wg.Wait()
	return urlToKey
}

func imageExtension(url string) string {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}
	ext := strings.ToLower(path.Ext(url))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".gif":
		return ext
	default:
		return ".jpg"
	}
}

func downloadAndUpload(ctx context.Context, store ImageUploader, url, objectKey string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := imageClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(bodyBytes)
	}

	_, err = store.Upload(ctx, bytes.NewReader(bodyBytes), objectKey, contentType)
	return err
}
