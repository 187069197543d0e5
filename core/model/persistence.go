package model

import (
	"encoding/gob"
	"io"

	"github.com/YuminosukeSato/bikeshare/pkg/errors"
)

// SaveModelToWriter はモデルをio.Writerにgob形式で保存する。
// インターフェース型のフィールドを持つモデルは、事前に具象型を gob.Register しておくこと。
func SaveModelToWriter(m interface{}, w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(m); err != nil {
		return errors.Wrap(err, "failed to encode model")
	}
	return nil
}

// LoadModelFromReader はio.Readerからモデルを読み込む
func LoadModelFromReader(m interface{}, r io.Reader) error {
	if err := gob.NewDecoder(r).Decode(m); err != nil {
		return errors.Wrap(err, "failed to decode model")
	}
	return nil
}
