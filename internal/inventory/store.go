// Package inventory persists discovery snapshots into the shared buffer
// directory that the edge agent consumes.
package inventory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/peterbourgon/diskv/v3"

	"usbagent/internal/peripheral"
)

const (
	// fileTimeLayout renders timestamps as MMDDYYYYhhmmss, the naming
	// convention the consumer expects.
	fileTimeLayout = "01022006150405"
	peripheralType = "usb"

	mkdirAttempts = 3
	mkdirDelay    = 200 * time.Millisecond
)

// Store writes one JSON snapshot file per scan pass. Files accumulate;
// cleanup is the consumer's responsibility.
type Store struct {
	dv  *diskv.Diskv
	dir string
}

// NewStore creates the buffer directory, parents included, and returns a
// store over it. Creation is retried a few times to ride out transient
// mount races; an error after that is returned and the process cannot
// usefully continue without it.
func NewStore(dir string) (*Store, error) {
	err := retry.Do(func() error {
		return os.MkdirAll(dir, os.ModePerm)
	}, retry.Attempts(mkdirAttempts), retry.Delay(mkdirDelay))
	if err != nil {
		return nil, fmt.Errorf("creating buffer directory %s: %w", dir, err)
	}

	flatTransform := func(s string) []string { return []string{} }
	return &Store{
		dv: diskv.New(diskv.Options{
			BasePath:     dir,
			Transform:    flatTransform,
			FilePerm:     0o644,
			PathPerm:     os.ModePerm,
			CacheSizeMax: 1024 * 1024,
		}),
		dir: dir,
	}, nil
}

// FileName returns the buffer file name for a pass that completed at now.
func FileName(now time.Time) string {
	return now.Format(fileTimeLayout) + "_" + peripheralType + ".json"
}

// Write serializes the snapshot and stores it under a timestamped name,
// returning the full path of the file written. Every pass produces a new
// file; prior snapshots are never overwritten. Delivery is best-effort: the
// caller logs a failure and moves on to the next pass.
func (s *Store) Write(now time.Time, snapshot peripheral.Snapshot) (string, error) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("marshaling snapshot: %w", err)
	}
	name := FileName(now)
	if err := s.dv.Write(name, data); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	return filepath.Join(s.dir, name), nil
}
