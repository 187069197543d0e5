package modelstore

import (
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/YuminosukeSato/bikeshare/config"
	"github.com/YuminosukeSato/bikeshare/pipeline"
	"github.com/YuminosukeSato/bikeshare/pkg/errors"
	"github.com/YuminosukeSato/bikeshare/pkg/log"
)

var pipelinesBucket = []byte("pipelines")

// BoltStore keeps every saved version in one bbolt bucket.
type BoltStore struct {
	db     *bolt.DB
	logger log.Logger
}

// OpenBoltStore opens or creates the database file at path.
func OpenBoltStore(path string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrapf(err, "create store directory for %s", path)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "open bolt store %s", path)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(pipelinesBucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "create pipelines bucket")
	}
	return &BoltStore{
		db:     db,
		logger: log.GetLoggerWithName("modelstore").With(log.StoreKey, config.StoreBolt),
	}, nil
}

// Save stores p under version.
func (s *BoltStore) Save(version string, p *pipeline.Pipeline) error {
	if version == "" {
		return errors.NewValidationError("version", "must not be empty", version)
	}
	data, err := encode(p)
	if err != nil {
		return err
	}
	if err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(pipelinesBucket).Put([]byte(version), data)
	}); err != nil {
		return errors.Wrapf(err, "put pipeline %s", version)
	}
	s.logger.Info("Pipeline saved", log.ConfigVersionKey, version, "bytes", len(data))
	return nil
}

// Load returns the pipeline stored under version.
func (s *BoltStore) Load(version string) (*pipeline.Pipeline, error) {
	var data []byte
	if err := s.db.View(func(tx *bolt.Tx) error {
		// the slice returned by Get is only valid inside the transaction
		if v := tx.Bucket(pipelinesBucket).Get([]byte(version)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	}); err != nil {
		return nil, errors.Wrapf(err, "get pipeline %s", version)
	}
	if data == nil {
		return nil, notFound(version)
	}
	p, err := decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "decode pipeline %s", version)
	}
	s.logger.Debug("Pipeline loaded", log.ConfigVersionKey, version)
	return p, nil
}

// Delete removes version. Deleting an unknown version is not an error.
func (s *BoltStore) Delete(version string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(pipelinesBucket).Delete([]byte(version))
	})
}

// Versions lists the stored versions in key order.
func (s *BoltStore) Versions() ([]string, error) {
	var versions []string
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(pipelinesBucket).Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			versions = append(versions, string(k))
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "list versions")
	}
	return versions, nil
}

// Close closes the database.
func (s *BoltStore) Close() error {
	if err := s.db.Close(); err != nil {
		return errors.Wrap(err, "close bolt store")
	}
	return nil
}
