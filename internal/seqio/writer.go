package seqio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/google/renameio/v2"
	"github.com/klauspost/compress/gzip"
)

// Writer writes records in the format chosen by its file name. Output goes
// to a temporary file that replaces the destination on Close; Discard drops
// it instead.
type Writer struct {
	path    string
	ftype   FileType
	pending *renameio.PendingFile
	gz      *gzip.Writer
	buf     *bufio.Writer
	n       int
}

// Create prepares a writer for path.
func Create(path string) (*Writer, error) {
	ft, err := DetectType(path)
	if err != nil {
		return nil, err
	}
	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return nil, fmt.Errorf("failed to create sequence file %s: %w", path, err)
	}
	w := &Writer{path: path, ftype: ft, pending: pending}

	var dst io.Writer = pending
	if ft.Compressed {
		w.gz = gzip.NewWriter(pending)
		dst = w.gz
	}
	w.buf = bufio.NewWriterSize(dst, 1<<20)
	return w, nil
}

// Type returns the file type the writer produces.
func (w *Writer) Type() FileType {
	return w.ftype
}

// Count returns the number of records written so far.
func (w *Writer) Count() int {
	return w.n
}

// Write appends one record. FASTQ output requires a quality string of the
// same length as the sequence.
func (w *Writer) Write(rec Record) error {
	var err error
	switch w.ftype.Format {
	case FASTQ:
		if len(rec.Qual) != len(rec.Seq) {
			return fmt.Errorf("record %s: quality length %d does not match sequence length %d", rec.ID, len(rec.Qual), len(rec.Seq))
		}
		_, err = fmt.Fprintf(w.buf, "@%s\n%s\n+\n%s\n", rec.header(), rec.Seq, rec.Qual)
	default:
		_, err = fmt.Fprintf(w.buf, ">%s\n%s\n", rec.header(), rec.Seq)
	}
	if err != nil {
		return fmt.Errorf("failed to write record %s: %w", rec.ID, err)
	}
	w.n++
	return nil
}

// Close flushes buffered data and atomically moves the file into place.
func (w *Writer) Close() error {
	if err := w.buf.Flush(); err != nil {
		_ = w.pending.Cleanup()
		return fmt.Errorf("failed to flush %s: %w", w.path, err)
	}
	if w.gz != nil {
		if err := w.gz.Close(); err != nil {
			_ = w.pending.Cleanup()
			return fmt.Errorf("failed to finish gzip stream %s: %w", w.path, err)
		}
	}
	if err := w.pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("failed to replace %s: %w", w.path, err)
	}
	return nil
}

// Discard abandons the output. It is a no-op after a successful Close.
func (w *Writer) Discard() {
	_ = w.pending.Cleanup()
}

// WriteAll writes recs to path in order.
func WriteAll(path string, recs []Record) error {
	w, err := Create(path)
	if err != nil {
		return err
	}
	defer w.Discard()
	for _, rec := range recs {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return w.Close()
}
