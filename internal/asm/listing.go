package asm

import (
	"bufio"
	"fmt"
	"io"
)

// ListingWriter renders an assembled program as "address: byte  ; source"
// rows, one per instruction line, to aid debugging against the physical
// simulator. It has no effect on the assembled bytes themselves — recovered
// from original_source's assembler variants, which print a similar trace
// alongside the emitted program (spec §4.3 notes this as a supplementary,
// non-semantic feature).
type ListingWriter struct {
	w *bufio.Writer
}

// NewListingWriter wraps w for use with Assemble.
func NewListingWriter(w io.Writer) *ListingWriter {
	return &ListingWriter{w: bufio.NewWriter(w)}
}

func (l *ListingWriter) write(lines []sourceLine, bytes []byte) error {
	for _, ln := range lines {
		if ln.addr >= len(bytes) {
			continue
		}
		if _, err := fmt.Fprintf(l.w, "%04x: %02x  ; %s\n", ln.addr, bytes[ln.addr], ln.text); err != nil {
			return fmt.Errorf("asm: write listing row: %w", err)
		}
	}
	return l.w.Flush()
}
