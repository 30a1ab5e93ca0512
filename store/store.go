// Package store persists command-area outputs: class rasters, polygons and
// statistics, addressed by file name.
package store

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path"
	"strings"
)

// Store defines operations for persisting run outputs.
type Store interface {
	Put(ctx context.Context, name string, content []byte) error
	Get(ctx context.Context, name string) ([]byte, error)
	List(ctx context.Context) ([]string, error)
}

var (
	ErrNotFound    = errors.New("store: object not found")
	ErrInvalidName = errors.New("store: invalid object name")
)

// cleanName normalizes name to a slash-separated relative path that cannot
// leave the store root.
func cleanName(name string) (string, error) {
	name = strings.TrimLeft(strings.TrimSpace(name), "/")
	if name == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidName)
	}
	cleaned := path.Clean(name)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: %q escapes the store root", ErrInvalidName, name)
	}
	return cleaned, nil
}

// ContentType guesses the MIME type of an output from its extension.
func ContentType(name string) string {
	switch ext := strings.ToLower(path.Ext(name)); ext {
	case ".tif", ".tiff":
		return "image/tiff"
	case ".geojson":
		return "application/geo+json"
	case ".asc":
		return "text/plain; charset=utf-8"
	case ".json":
		return "application/json"
	default:
		if t := mime.TypeByExtension(ext); t != "" {
			return t
		}
		return "application/octet-stream"
	}
}
