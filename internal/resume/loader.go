package resume

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

const r2Scheme = "r2://"

var ErrNoObjectStore = errors.New("no object store configured")

// ObjectFetcher downloads an object by key. storage.R2 implements it.
type ObjectFetcher interface {
	Download(ctx context.Context, key string) ([]byte, error)
}

type Loader struct {
	objects ObjectFetcher
}

// NewLoader returns a loader for local files. objects may be nil, in which
// case r2:// sources fail with ErrNoObjectStore.
func NewLoader(objects ObjectFetcher) *Loader {
	return &Loader{objects: objects}
}

// Load reads src, a local path or r2://<key>, and returns its text.
func (l *Loader) Load(ctx context.Context, src string) (string, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return "", fmt.Errorf("empty resume source")
	}

	var (
		data []byte
		err  error
		name = src
	)
	if key, ok := strings.CutPrefix(src, r2Scheme); ok {
		if l.objects == nil {
			return "", ErrNoObjectStore
		}
		name = key
		data, err = l.objects.Download(ctx, key)
		if err != nil {
			return "", fmt.Errorf("file download error: %w", err)
		}
	} else {
		data, err = os.ReadFile(src)
		if err != nil {
			return "", fmt.Errorf("read resume: %w", err)
		}
	}

	text, err := ExtractText(MimeFromPath(name), data)
	if err != nil {
		return "", fmt.Errorf("text extraction error: %w", err)
	}
	return text, nil
}

// Points loads src and returns its rough points.
func (l *Loader) Points(ctx context.Context, src string) ([]string, error) {
	text, err := l.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	return RoughPoints(text), nil
}
