package snap

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileExtension is the fixed extension snapshot files are written with,
// replacing whatever extension the caller supplied.
const FileExtension = ".pp"

// Dump writes the serialized report to path, forcing the .pp extension. A
// failed write leaves no defined partial-file guarantee.
func (r *Report) Dump(path string) error {
	data, err := r.Dumps()
	if err != nil {
		return err
	}
	if err := os.WriteFile(SnapshotPath(path), data, 0o644); err != nil {
		return fmt.Errorf("snap: write snapshot: %w", err)
	}
	return nil
}

// Load reads a snapshot file and restores it into the report. See Loads for
// the merge contract.
func (r *Report) Load(path string, ignoreConfig bool) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("snap: read snapshot: %w", err)
	}
	return r.Loads(data, ignoreConfig)
}

// SnapshotPath returns path with its extension coerced to .pp.
func SnapshotPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + FileExtension
}
