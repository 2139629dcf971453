// Package seqio reads and writes short-read sequence files. FASTQ and FASTA
// are supported, each optionally gzip-compressed; the format is chosen from
// the file name. On top of the record stream it offers the dataset views the
// pipeline stages share: per-sequence abundance with the IDs carrying each
// sequence, and extraction of records by ID.
package seqio
