package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalLoader reads dataset files from Dir; the dataset id is the file name.
type LocalLoader struct {
	Dir string
}

func (l LocalLoader) Load(_ context.Context, datasetID string) (Blob, error) {
	p := datasetID
	if !filepath.IsAbs(p) {
		p = filepath.Join(l.Dir, p)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return Blob{}, fmt.Errorf("read %s: %w", p, err)
	}
	return Blob{Name: filepath.Base(p), Data: data}, nil
}
