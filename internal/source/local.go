package source

import (
	"context"
	"fmt"
	"os"
)

type localReader struct {
	path string
}

func (r localReader) read(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}
	return data, nil
}
