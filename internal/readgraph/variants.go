package readgraph

import (
	"strings"

	"github.com/agext/levenshtein"
)

const (
	DNABases = "ACGT"
	RNABases = "ACGU"
)

// Alphabet returns the bases used for variant enumeration of a read type.
func Alphabet(readType string) string {
	if strings.EqualFold(readType, "RNA") {
		return RNABases
	}
	return DNABases
}

// ED1Variants returns every distinct sequence one substitution, insertion or
// deletion away from read. read itself is never included.
func ED1Variants(read, alphabet string) map[string]struct{} {
	out := make(map[string]struct{}, len(read)*(2*len(alphabet)))
	b := []byte(read)
	buf := make([]byte, 0, len(read)+1)

	for i := range b {
		orig := b[i]
		for j := 0; j < len(alphabet); j++ {
			if alphabet[j] == orig {
				continue
			}
			b[i] = alphabet[j]
			out[string(b)] = struct{}{}
		}
		b[i] = orig

		buf = append(buf[:0], b[:i]...)
		buf = append(buf, b[i+1:]...)
		out[string(buf)] = struct{}{}
	}
	for i := 0; i <= len(b); i++ {
		for j := 0; j < len(alphabet); j++ {
			buf = append(buf[:0], b[:i]...)
			buf = append(buf, alphabet[j])
			buf = append(buf, b[i:]...)
			out[string(buf)] = struct{}{}
		}
	}
	delete(out, read)
	return out
}

// ED2Variants returns every sequence that differs from read by substitutions
// at exactly two positions.
func ED2Variants(read, alphabet string) map[string]struct{} {
	out := make(map[string]struct{})
	b := []byte(read)
	for i := 0; i < len(b); i++ {
		oi := b[i]
		for x := 0; x < len(alphabet); x++ {
			if alphabet[x] == oi {
				continue
			}
			b[i] = alphabet[x]
			for j := i + 1; j < len(b); j++ {
				oj := b[j]
				for y := 0; y < len(alphabet); y++ {
					if alphabet[y] == oj {
						continue
					}
					b[j] = alphabet[y]
					out[string(b)] = struct{}{}
				}
				b[j] = oj
			}
		}
		b[i] = oi
	}
	return out
}

// Distance returns the Levenshtein distance between two reads.
func Distance(a, b string) int {
	return levenshtein.Distance(a, b, nil)
}
