package seqio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

const maxLineSize = 64 * 1024 * 1024

// ParseError reports malformed input together with its location.
type ParseError struct {
	Path string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
}

// Reader streams records from a sequence file.
type Reader struct {
	path    string
	ftype   FileType
	closers []io.Closer
	scanner *bufio.Scanner
	line    int
	// pending holds a FASTA header that was read ahead of its record.
	pending string
	hasNext bool
}

// Open opens path for reading, decompressing gzip input transparently.
func Open(path string) (*Reader, error) {
	ft, err := DetectType(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sequence file: %w", err)
	}
	r := &Reader{path: path, ftype: ft, closers: []io.Closer{f}}

	var src io.Reader = f
	if ft.Compressed {
		gz, err := gzip.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to open gzip stream %s: %w", path, err)
		}
		r.closers = append([]io.Closer{gz}, r.closers...)
		src = gz
	}

	r.scanner = bufio.NewScanner(src)
	r.scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return r, nil
}

// Type returns the detected file type.
func (r *Reader) Type() FileType {
	return r.ftype
}

// Next returns the next record, or io.EOF once the file is exhausted.
func (r *Reader) Next() (Record, error) {
	if r.ftype.Format == FASTA {
		return r.nextFASTA()
	}
	return r.nextFASTQ()
}

// Close releases the underlying file.
func (r *Reader) Close() error {
	var errs []error
	for _, c := range r.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

func (r *Reader) scan() (string, bool, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", false, fmt.Errorf("failed to read %s: %w", r.path, err)
		}
		return "", false, nil
	}
	r.line++
	return strings.TrimRight(r.scanner.Text(), "\r"), true, nil
}

func (r *Reader) fail(format string, args ...any) error {
	return &ParseError{Path: r.path, Line: r.line, Msg: fmt.Sprintf(format, args...)}
}

func (r *Reader) nextFASTQ() (Record, error) {
	var header string
	for {
		line, ok, err := r.scan()
		if err != nil {
			return Record{}, err
		}
		if !ok {
			return Record{}, io.EOF
		}
		if line != "" {
			header = line
			break
		}
	}
	if !strings.HasPrefix(header, "@") {
		return Record{}, r.fail("expected '@' header, got %q", truncate(header))
	}

	seq, ok, err := r.scan()
	if err != nil {
		return Record{}, err
	}
	if !ok {
		return Record{}, r.fail("truncated record: missing sequence line")
	}
	plus, ok, err := r.scan()
	if err != nil {
		return Record{}, err
	}
	if !ok || !strings.HasPrefix(plus, "+") {
		return Record{}, r.fail("expected '+' separator line")
	}
	qual, ok, err := r.scan()
	if err != nil {
		return Record{}, err
	}
	if !ok {
		return Record{}, r.fail("truncated record: missing quality line")
	}
	if len(qual) != len(seq) {
		return Record{}, r.fail("quality length %d does not match sequence length %d", len(qual), len(seq))
	}

	rec := splitHeader(header[1:])
	rec.Seq = seq
	rec.Qual = qual
	return rec, nil
}

func (r *Reader) nextFASTA() (Record, error) {
	header := r.pending
	if !r.hasNext {
		for {
			line, ok, err := r.scan()
			if err != nil {
				return Record{}, err
			}
			if !ok {
				return Record{}, io.EOF
			}
			if line == "" {
				continue
			}
			if !strings.HasPrefix(line, ">") {
				return Record{}, r.fail("expected '>' header, got %q", truncate(line))
			}
			header = line
			break
		}
	}
	r.hasNext = false

	var seq strings.Builder
	for {
		line, ok, err := r.scan()
		if err != nil {
			return Record{}, err
		}
		if !ok {
			break
		}
		if strings.HasPrefix(line, ">") {
			r.pending = line
			r.hasNext = true
			break
		}
		seq.WriteString(strings.TrimSpace(line))
	}

	rec := splitHeader(header[1:])
	rec.Seq = seq.String()
	return rec, nil
}

func splitHeader(h string) Record {
	id, desc, _ := strings.Cut(strings.TrimSpace(h), " ")
	return Record{ID: id, Desc: strings.TrimSpace(desc)}
}

func truncate(s string) string {
	if len(s) > 32 {
		return s[:32] + "..."
	}
	return s
}

// ReadAll loads every record of path into memory.
func ReadAll(path string) ([]Record, error) {
	var out []Record
	err := Each(path, func(rec Record) error {
		out = append(out, rec)
		return nil
	})
	return out, err
}

// Each calls fn for every record of path in file order and stops at the
// first error.
func Each(path string, fn func(Record) error) error {
	r, err := Open(path)
	if err != nil {
		return err
	}
	defer r.Close()

	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
}
