// Package artifact renders rule documents to their on-disk JSON form and
// fingerprints emitted files.
package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/TimurManjosov/rulebridge/internal/convert"
)

// Render serializes a document to the indented JSON sing-box consumes. Struct
// field order fixes key order and bucket slices keep input order, so identical
// input yields byte-identical output.
func Render(doc convert.Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rule document: %w", err)
	}
	return data, nil
}

// Checksum returns a short stable fingerprint of an artifact. It is logged
// per emitted file and doubles as the ETag in serve mode.
func Checksum(data []byte) string {
	return strconv.FormatUint(xxhash.Sum64(data), 16)
}

// Write persists an artifact in a single whole-buffer write, creating parent
// directories as needed. A failure before the write leaves no file behind.
func Write(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
