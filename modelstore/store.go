// Package modelstore persists fitted pipelines as opaque gob blobs keyed by a
// version string. Two backends exist: a directory of files and a bbolt
// database.
package modelstore

import (
	"bytes"
	"path/filepath"

	"github.com/YuminosukeSato/bikeshare/config"
	"github.com/YuminosukeSato/bikeshare/core/model"
	"github.com/YuminosukeSato/bikeshare/pipeline"
	"github.com/YuminosukeSato/bikeshare/pkg/errors"
)

// Store saves and loads fitted pipelines by version.
type Store interface {
	// Save stores p under version, replacing an existing entry.
	Save(version string, p *pipeline.Pipeline) error

	// Load returns the pipeline stored under version. An unknown version is
	// reported as ErrVersionNotFound.
	Load(version string) (*pipeline.Pipeline, error)

	// Versions lists the stored versions in ascending order.
	Versions() ([]string, error)

	// Close releases the backend.
	Close() error
}

// Open returns the store configured in app.
func Open(app config.AppConfig) (Store, error) {
	switch app.Store {
	case "", config.StoreFile:
		s, err := NewFileStore(app.StorePath, app.PipelineSaveFile)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.StoreBolt:
		s, err := OpenBoltStore(filepath.Join(app.StorePath, app.PackageName+".db"))
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, errors.NewValidationError("app.store", "must be file or bolt", app.Store)
	}
}

func encode(p *pipeline.Pipeline) ([]byte, error) {
	if p == nil || !p.IsFitted() {
		return nil, errors.NewNotFittedError("Pipeline", "Save")
	}
	var buf bytes.Buffer
	if err := model.SaveModelToWriter(p, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(data []byte) (*pipeline.Pipeline, error) {
	var p pipeline.Pipeline
	if err := model.LoadModelFromReader(&p, bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return &p, nil
}

func notFound(version string) error {
	return errors.Wrapf(errors.ErrVersionNotFound, "version %q", version)
}
