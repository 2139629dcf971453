package samples

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/noise2read/internal/readgraph"
)

// ErrNotOneEdit is returned by Classify for reads that are not exactly one
// edit apart.
var ErrNotOneEdit = errors.New("reads are not one edit apart")

const gap = "X"

// Classify locates the edit turning start into end. The position is the
// first index where the reads disagree; the k-mers hold the base before and
// after the edit in each read, with X marking the side that lacks a base.
func Classify(start, end string) (ErrorInfo, error) {
	if d := readgraph.Distance(start, end); d != 1 {
		return ErrorInfo{}, fmt.Errorf("%w: distance %d between %q and %q", ErrNotOneEdit, d, start, end)
	}

	sl, el := len(start), len(end)
	p := firstMismatch(start, end)

	var info ErrorInfo
	switch {
	case sl == el:
		info.Type = start[p:p+1] + "-" + end[p:p+1]
		info.StartKmer = around(start, p)
		info.EndKmer = around(end, p)
	case sl < el:
		// end carries an extra base
		info.Type = gap + "-" + end[p:p+1]
		info.StartKmer = gapped(start, p)
		info.EndKmer = around(end, p)
	default:
		// end lost a base
		info.Type = start[p:p+1] + "-" + gap
		info.StartKmer = around(start, p)
		info.EndKmer = gapped(end, p)
	}
	info.Position = p
	return info, nil
}

// firstMismatch returns the first index where a and b differ, or the length
// of the shorter one if it is a prefix of the other.
func firstMismatch(a, b string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// around returns the bases at p-1..p+1 of s; at the first position only
// the two leading bases, at the end only the two trailing ones.
func around(s string, p int) string {
	switch {
	case p == 0:
		return s[:min(2, len(s))]
	case p >= len(s)-1:
		return s[max(0, len(s)-2):]
	default:
		return s[p-1 : p+2]
	}
}

// gapped renders the missing base at p between its neighbours in s.
func gapped(s string, p int) string {
	switch {
	case len(s) == 0:
		return gap
	case p == 0:
		return gap + s[:1]
	case p >= len(s):
		return s[len(s)-1:] + gap
	default:
		return s[p-1:p] + gap + s[p:p+1]
	}
}
