// Package wire implements the PGCOPY binary tuple framing used to hand
// rows to and from a database's bulk-load path: an 11-byte signature,
// per-row attribute-count-prefixed cells, and a fixed trailer. It stands
// alone; the engine, reader and writer packages do not call it.
package wire

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// Header is the fixed PGCOPY signature: 11-byte magic, 4-byte flags
// (always 0, no OIDs), 4-byte header-extension length (always 0, no
// extension area).
var Header = append([]byte("PGCOPY\n\xff\r\n\x00"), 0, 0, 0, 0, 0, 0, 0, 0)

// Trailer is the fixed end-of-data marker: a signed int16(-1) attribute
// count with no row body following it.
const Trailer int16 = -1

// RowWriter writes PGCOPY-framed rows to an underlying io.Writer. Each
// attribute is passed as its already-encoded binary form (nil for SQL
// NULL); the writer itself contributes only the length prefixes and the
// attribute count.
type RowWriter struct {
	w   io.Writer
	buf [4]byte
}

func NewRowWriter(w io.Writer) *RowWriter { return &RowWriter{w: w} }

// WriteHeader emits the fixed signature. Callers write it exactly once,
// before the first row.
func (rw *RowWriter) WriteHeader() error {
	_, err := rw.w.Write(Header)
	return err
}

// WriteRow writes one row: a big-endian int16 attribute count, then for
// each attribute either -1 (null) or its big-endian int32 length followed
// by the raw bytes.
func (rw *RowWriter) WriteRow(attrs [][]byte) error {
	if len(attrs) > 1<<15-1 {
		return fmt.Errorf("wire: row has %d attributes, exceeds int16 range", len(attrs))
	}
	binary.BigEndian.PutUint16(rw.buf[:2], uint16(int16(len(attrs))))
	if _, err := rw.w.Write(rw.buf[:2]); err != nil {
		return err
	}
	for _, a := range attrs {
		if a == nil {
			binary.BigEndian.PutUint32(rw.buf[:4], uint32(int32(-1)))
			if _, err := rw.w.Write(rw.buf[:4]); err != nil {
				return err
			}
			continue
		}
		binary.BigEndian.PutUint32(rw.buf[:4], uint32(int32(len(a))))
		if _, err := rw.w.Write(rw.buf[:4]); err != nil {
			return err
		}
		if _, err := rw.w.Write(a); err != nil {
			return err
		}
	}
	return nil
}

// WriteTrailer emits the fixed int16(-1) end marker. Callers write it
// exactly once, after the last row.
func (rw *RowWriter) WriteTrailer() error {
	binary.BigEndian.PutUint16(rw.buf[:2], uint16(uint16(Trailer)))
	_, err := rw.w.Write(rw.buf[:2])
	return err
}

// RowReader is RowWriter's dual: it reads a previously written frame back
// out, row by row.
type RowReader struct {
	r *bufio.Reader
}

func NewRowReader(r io.Reader) *RowReader { return &RowReader{r: bufio.NewReader(r)} }

// ReadHeader consumes and validates the fixed signature.
func (rr *RowReader) ReadHeader() error {
	got := make([]byte, len(Header))
	if _, err := io.ReadFull(rr.r, got); err != nil {
		return fmt.Errorf("wire: reading header: %w", err)
	}
	for i := range Header {
		if got[i] != Header[i] {
			return fmt.Errorf("wire: malformed PGCOPY header")
		}
	}
	return nil
}

// ReadRow reads one row, returning io.EOF-wrapped behavior via the
// (nil, true, nil) trailer sentinel: done is true once the int16(-1)
// trailer has been consumed, with no row returned.
func (rr *RowReader) ReadRow() (attrs [][]byte, done bool, err error) {
	var countBuf [2]byte
	if _, err := io.ReadFull(rr.r, countBuf[:]); err != nil {
		return nil, false, fmt.Errorf("wire: reading attribute count: %w", err)
	}
	count := int16(binary.BigEndian.Uint16(countBuf[:]))
	if count == Trailer {
		return nil, true, nil
	}
	if count < 0 {
		return nil, false, fmt.Errorf("wire: negative attribute count %d", count)
	}

	row := make([][]byte, count)
	var lenBuf [4]byte
	for i := 0; i < int(count); i++ {
		if _, err := io.ReadFull(rr.r, lenBuf[:]); err != nil {
			return nil, false, fmt.Errorf("wire: reading attribute %d length: %w", i, err)
		}
		n := int32(binary.BigEndian.Uint32(lenBuf[:]))
		if n < 0 {
			row[i] = nil
			continue
		}
		buf := make([]byte, n)
		if _, err := io.ReadFull(rr.r, buf); err != nil {
			return nil, false, fmt.Errorf("wire: reading attribute %d body: %w", i, err)
		}
		row[i] = buf
	}
	return row, false, nil
}
