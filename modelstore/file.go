package modelstore

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/YuminosukeSato/bikeshare/config"
	"github.com/YuminosukeSato/bikeshare/pipeline"
	"github.com/YuminosukeSato/bikeshare/pkg/errors"
	"github.com/YuminosukeSato/bikeshare/pkg/log"
)

const fileExt = ".gob"

// FileStore keeps each version in <Dir>/<Prefix><version>.gob. Saving a
// version removes every other version, so the directory only ever holds the
// pipeline that was trained last.
type FileStore struct {
	Dir    string
	Prefix string

	logger log.Logger
}

// NewFileStore creates dir if needed and returns a store writing into it.
func NewFileStore(dir, prefix string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.NewValidationError("store_path", "must not be empty", dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create store directory %s", dir)
	}
	return &FileStore{
		Dir:    dir,
		Prefix: prefix,
		logger: log.GetLoggerWithName("modelstore").With(log.StoreKey, config.StoreFile),
	}, nil
}

// Path returns the file that holds version.
func (s *FileStore) Path(version string) string {
	return filepath.Join(s.Dir, s.Prefix+version+fileExt)
}

// Save writes p to a temporary file, renames it into place and then removes
// all other versions.
func (s *FileStore) Save(version string, p *pipeline.Pipeline) error {
	if version == "" {
		return errors.NewValidationError("version", "must not be empty", version)
	}
	data, err := encode(p)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.Dir, s.Prefix+"*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temporary pipeline file")
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return errors.Wrap(err, "write pipeline")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return errors.Wrap(err, "close pipeline file")
	}
	if err := os.Rename(tmp.Name(), s.Path(version)); err != nil {
		_ = os.Remove(tmp.Name())
		return errors.Wrap(err, "move pipeline into place")
	}

	if err := s.removeOld(version); err != nil {
		return err
	}
	s.logger.Info("Pipeline saved", log.ConfigVersionKey, version, "path", s.Path(version))
	return nil
}

func (s *FileStore) removeOld(keep string) error {
	versions, err := s.Versions()
	if err != nil {
		return err
	}
	for _, v := range versions {
		if v == keep {
			continue
		}
		if err := os.Remove(s.Path(v)); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "remove old pipeline %s", v)
		}
		s.logger.Debug("Old pipeline removed", log.ConfigVersionKey, v)
	}
	return nil
}

// Load reads the pipeline stored under version.
func (s *FileStore) Load(version string) (*pipeline.Pipeline, error) {
	data, err := os.ReadFile(s.Path(version))
	if os.IsNotExist(err) {
		return nil, notFound(version)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read pipeline %s", version)
	}
	p, err := decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "decode pipeline %s", version)
	}
	s.logger.Debug("Pipeline loaded", log.ConfigVersionKey, version)
	return p, nil
}

// Versions lists the versions found in Dir.
func (s *FileStore) Versions() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, errors.Wrapf(err, "list %s", s.Dir)
	}
	var versions []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, s.Prefix) || !strings.HasSuffix(name, fileExt) {
			continue
		}
		v := strings.TrimSuffix(strings.TrimPrefix(name, s.Prefix), fileExt)
		if v != "" {
			versions = append(versions, v)
		}
	}
	sort.Strings(versions)
	return versions, nil
}

// Close is a no-op.
func (s *FileStore) Close() error { return nil }
