package source

import (
	"context"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
)

// gcsReader reads one object from Google Cloud Storage using Application Default Credentials.
type gcsReader struct {
	client *gcs.Client
	bucket string
	object string
}

func newGCSReader(ctx context.Context, bucket, object string) (*gcsReader, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}
	return &gcsReader{client: client, bucket: bucket, object: object}, nil
}

func (r *gcsReader) read(ctx context.Context) ([]byte, error) {
	defer func() { _ = r.client.Close() }()
	reader, err := r.client.Bucket(r.bucket).Object(r.object).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("gcs read %s/%s: %w", r.bucket, r.object, err)
	}
	defer func() { _ = reader.Close() }()
	return io.ReadAll(reader)
}
