package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"cloud.google.com/go/storage"

	"pricecheck-service/internal/config"
)

// GCSLoader reads spreadsheets from Cloud Storage. Dataset ids are "gs://bucket/object"
// or "bucket/object".
type GCSLoader struct {
	client *storage.Client
}

func NewGCSLoader(ctx context.Context, cfg config.SourceConfig) (*GCSLoader, error) {
	client, err := storage.NewClient(ctx, ClientOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}
	return &GCSLoader{client: client}, nil
}

func (g *GCSLoader) Close() error { return g.client.Close() }

func (g *GCSLoader) Load(ctx context.Context, datasetID string) (Blob, error) {
	bucket, object, err := splitObjectID(datasetID)
	if err != nil {
		return Blob{}, err
	}
	r, err := g.client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return Blob{}, fmt.Errorf("open gs://%s/%s: %w", bucket, object, err)
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return Blob{}, fmt.Errorf("read gs://%s/%s: %w", bucket, object, err)
	}
	return Blob{Name: path.Base(object), Data: data}, nil
}

func splitObjectID(id string) (bucket, object string, err error) {
	id = strings.TrimPrefix(id, "gs://")
	bucket, object, ok := strings.Cut(id, "/")
	if !ok || bucket == "" || object == "" {
		return "", "", errors.New("gcs dataset id must look like gs://bucket/object")
	}
	return bucket, object, nil
}
