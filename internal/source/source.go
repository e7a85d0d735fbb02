// Package source fetches evaluation records from local files, S3 or GCS.
package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/huangsam/heatgate/internal/contract"
	"github.com/huangsam/heatgate/internal/slo"
	"github.com/huangsam/heatgate/schema"
)

// blobReader returns the raw bytes of one object.
type blobReader interface {
	read(ctx context.Context) ([]byte, error)
}

// Source fetches and decodes evaluation records from a single location.
type Source struct {
	location string
	reader   blobReader
}

var _ contract.EvaluationSource = &Source{} // Compile-time check

// Open returns a source for uri. Supported forms are a plain path, file://path,
// s3://bucket/key and gs://bucket/object.
func Open(ctx context.Context, uri string, s3cfg contract.S3Config) (*Source, error) {
	if strings.TrimSpace(uri) == "" {
		return nil, errors.New("source location cannot be empty")
	}
	if !strings.Contains(uri, "://") {
		return &Source{location: uri, reader: localReader{path: uri}}, nil
	}

	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid source location %q: %w", uri, err)
	}
	switch u.Scheme {
	case "file":
		return &Source{location: uri, reader: localReader{path: u.Host + u.Path}}, nil
	case "s3":
		bucket, key, err := splitObject(u)
		if err != nil {
			return nil, err
		}
		r, err := newS3Reader(ctx, s3cfg, bucket, key)
		if err != nil {
			return nil, err
		}
		return &Source{location: uri, reader: r}, nil
	case "gs":
		bucket, key, err := splitObject(u)
		if err != nil {
			return nil, err
		}
		r, err := newGCSReader(ctx, bucket, key)
		if err != nil {
			return nil, err
		}
		return &Source{location: uri, reader: r}, nil
	default:
		return nil, fmt.Errorf("unsupported source scheme %q (use a path, file://, s3:// or gs://)", u.Scheme)
	}
}

func splitObject(u *url.URL) (string, string, error) {
	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", fmt.Errorf("source location %q must name a bucket and an object", u.String())
	}
	return u.Host, key, nil
}

// Location returns the location the source was opened with.
func (s *Source) Location() string {
	return s.location
}

// Fetch reads and decodes the evaluations at the source location.
func (s *Source) Fetch(ctx context.Context) ([]schema.EvaluationRecord, error) {
	data, err := s.reader.read(ctx)
	if err != nil {
		return nil, err
	}
	evs, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", s.location, err)
	}
	return evs, nil
}

// envelope is the object form of an evaluation payload.
type envelope struct {
	Evaluations []schema.EvaluationRecord `json:"evaluations"`
}

// Decode parses a JSON array of evaluations or an object with an "evaluations" field.
// Records without an id get a random one, and their SLO file is applied.
func Decode(data []byte) ([]schema.EvaluationRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("empty payload")
	}

	var evs []schema.EvaluationRecord
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &evs); err != nil {
			return nil, fmt.Errorf("parsing evaluation list: %w", err)
		}
	case '{':
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("parsing evaluation envelope: %w", err)
		}
		evs = env.Evaluations
	default:
		return nil, errors.New("payload must be a JSON array or object")
	}

	for i := range evs {
		if evs[i].ID == "" {
			evs[i].ID = uuid.NewString()
		}
		slo.Apply(&evs[i])
	}
	return evs, nil
}
