package storage

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
	"pieclock/internal/core/model"
)

// ErrEmptySnapshot is returned when decoding a document with no content.
var ErrEmptySnapshot = errors.New("empty snapshot document")

// YAMLCodec serializes snapshots as yaml documents.
type YAMLCodec struct{}

// Encode renders a snapshot.
func (YAMLCodec) Encode(snapshot model.Snapshot) ([]byte, error) {
	if snapshot.Version == 0 {
		snapshot.Version = model.SnapshotVersion
	}
	data, err := yaml.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot yaml: %w", err)
	}
	return data, nil
}

// Decode parses a snapshot. Newer versions are decoded best-effort.
func (YAMLCodec) Decode(data []byte) (model.Snapshot, error) {
	var snapshot model.Snapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return model.Snapshot{}, fmt.Errorf("parse snapshot yaml: %w", err)
	}
	if snapshot.Version == 0 && len(snapshot.Timers) == 0 {
		return model.Snapshot{}, ErrEmptySnapshot
	}
	return snapshot, nil
}
