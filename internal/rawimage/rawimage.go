// Package rawimage writes the "v2.0 raw" text format shared by the RAM and
// ROM images: a literal header line, then one lowercase hexadecimal value
// per line with no "0x" prefix and no zero padding.
//
// Grounded on original_source/src/burner/burner.py's writeMemory output
// loop (`f.write(f"{code}\n")` built from `hex(code)[2:]`) and the
// teacher's (KTStephano-GVM) bufio-based file handling, inverted from
// reading to writing.
package rawimage

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

const header = "v2.0 raw\n"

// Write renders values as the "v2.0 raw" format and commits path
// atomically: the content is built in a temp file in the same directory and
// renamed into place, so a failure partway through never leaves a partial
// file visible to a downstream tool (spec §5's scoped-acquisition rule).
func Write(path string, values []uint32) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".rawimage-*.tmp")
	if err != nil {
		return fmt.Errorf("rawimage: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once the rename below succeeds

	w := bufio.NewWriter(tmp)
	if _, err := w.WriteString(header); err != nil {
		tmp.Close()
		return fmt.Errorf("rawimage: write header: %w", err)
	}
	for _, v := range values {
		if _, err := fmt.Fprintf(w, "%x\n", v); err != nil {
			tmp.Close()
			return fmt.Errorf("rawimage: write value: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("rawimage: flush: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("rawimage: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rawimage: rename into place: %w", err)
	}
	return nil
}

// WriteBytes is a convenience wrapper for RAM images, whose values are
// single bytes rather than 32-bit ROM words.
func WriteBytes(path string, values []byte) error {
	words := make([]uint32, len(values))
	for i, b := range values {
		words[i] = uint32(b)
	}
	return Write(path, words)
}
