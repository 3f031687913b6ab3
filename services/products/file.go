package products

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// FileSource reads the tracked products from a JSON file. The file holds
// either an array of {id, url} objects or a plain array of URL strings; in
// the latter case the URL doubles as the product ID.
type FileSource struct {
	path string
}

// NewFileSource creates a source backed by the given file path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// List loads the product file. The file is re-read on every cycle so edits
// are picked up without a restart.
func (s *FileSource) List(_ context.Context) ([]Product, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read products file %s: %w", s.path, err)
	}

	var items []Product
	if err := json.Unmarshal(data, &items); err != nil {
		var urls []string
		if urlErr := json.Unmarshal(data, &urls); urlErr != nil {
			return nil, fmt.Errorf("failed to parse products file %s: %w", s.path, err)
		}
		items = make([]Product, 0, len(urls))
		for _, u := range urls {
			items = append(items, Product{ID: u, URL: u})
		}
	}

	for i := range items {
		if items[i].ID == "" {
			items[i].ID = items[i].URL
		}
	}

	return items, nil
}
