package seqio

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for file names without a known sequence
// file extension.
var ErrUnsupportedFormat = errors.New("unsupported sequence file format")

// Format is the record layout of a sequence file.
type Format int

const (
	FASTQ Format = iota + 1
	FASTA
)

// String returns the canonical extension of the format.
func (f Format) String() string {
	switch f {
	case FASTQ:
		return "fastq"
	case FASTA:
		return "fasta"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// FileType describes a sequence file as detected from its name.
type FileType struct {
	Format     Format
	Compressed bool
}

// Ext returns the extension an uncompressed output of this type should use.
func (t FileType) Ext() string {
	return t.Format.String()
}

// DetectType inspects the extension of path. A trailing ".gz" marks the file
// as compressed; the extension before it selects the format.
func DetectType(path string) (FileType, error) {
	name := strings.ToLower(filepath.Base(path))
	var ft FileType
	if trimmed, ok := strings.CutSuffix(name, ".gz"); ok {
		ft.Compressed = true
		name = trimmed
	}
	switch filepath.Ext(name) {
	case ".fastq", ".fq":
		ft.Format = FASTQ
	case ".fasta", ".fa", ".fas":
		ft.Format = FASTA
	default:
		return FileType{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return ft, nil
}
