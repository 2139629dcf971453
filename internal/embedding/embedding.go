// Package embedding turns reads into numeric feature vectors: k-mer entropy
// (Shannon and Tsallis), GC content and normalised k-mer frequencies. Sample
// vectors join the vectors of both reads with the error that links them.
package embedding

import (
	"fmt"
	"math"
	"strings"
)

// Shannon returns the Shannon entropy in bits of the k-mer distribution of
// seq. Reads shorter than k have zero entropy.
func Shannon(seq string, k int) float64 {
	probs := kmerProbabilities(seq, k)
	var h float64
	for _, p := range probs {
		h -= p * math.Log2(p)
	}
	return h
}

// Tsallis returns the Tsallis entropy of order q of the k-mer distribution
// of seq. For q = 1 it is the Shannon entropy in nats.
func Tsallis(seq string, k int, q float64) float64 {
	probs := kmerProbabilities(seq, k)
	if q == 1 {
		var h float64
		for _, p := range probs {
			h -= p * math.Log(p)
		}
		return h
	}
	var sum float64
	for _, p := range probs {
		sum += math.Pow(p, q)
	}
	if len(probs) == 0 {
		return 0
	}
	return (1 - sum) / (q - 1)
}

// GC returns the fraction of G and C bases in seq.
func GC(seq string) float64 {
	if seq == "" {
		return 0
	}
	var n int
	for i := 0; i < len(seq); i++ {
		switch seq[i] {
		case 'G', 'C', 'g', 'c':
			n++
		}
	}
	return float64(n) / float64(len(seq))
}

// KmerFrequencies returns the relative frequency of every k-mer over
// alphabet, in lexicographic order of the alphabet. k-mers containing other
// symbols are skipped.
func KmerFrequencies(seq string, k int, alphabet string) []float64 {
	size := int(math.Pow(float64(len(alphabet)), float64(k)))
	out := make([]float64, size)
	index := make(map[byte]int, len(alphabet))
	for i := 0; i < len(alphabet); i++ {
		index[alphabet[i]] = i
	}

	total := 0
	upper := strings.ToUpper(seq)
	for i := 0; i+k <= len(upper); i++ {
		pos, ok := 0, true
		for j := i; j < i+k; j++ {
			d, found := index[upper[j]]
			if !found {
				ok = false
				break
			}
			pos = pos*len(alphabet) + d
		}
		if ok {
			out[pos]++
			total++
		}
	}
	if total > 0 {
		for i := range out {
			out[i] /= float64(total)
		}
	}
	return out
}

// KmerNames lists the k-mers in the order KmerFrequencies reports them.
func KmerNames(k int, alphabet string) []string {
	names := []string{""}
	for range k {
		next := make([]string, 0, len(names)*len(alphabet))
		for _, prefix := range names {
			for i := 0; i < len(alphabet); i++ {
				next = append(next, prefix+alphabet[i:i+1])
			}
		}
		names = next
	}
	return names
}

func kmerProbabilities(seq string, k int) []float64 {
	if k < 1 || len(seq) < k {
		return nil
	}
	counts := make(map[string]int)
	n := 0
	for i := 0; i+k <= len(seq); i++ {
		counts[seq[i:i+k]]++
		n++
	}
	out := make([]float64, 0, len(counts))
	for _, c := range counts {
		out = append(out, float64(c)/float64(n))
	}
	return out
}

// Featurizer computes the feature vectors of reads and samples.
type Featurizer struct {
	EntropyKmer int
	EntropyQ    float64
	KmerFreq    int
	Alphabet    string
}

// ReadNames returns the feature names matching Features.
func (f Featurizer) ReadNames() []string {
	names := []string{
		"Count", "Degree", "Length", "GC",
		fmt.Sprintf("Shannon%d", f.EntropyKmer),
		fmt.Sprintf("Tsallis%d", f.EntropyKmer),
	}
	for _, k := range KmerNames(f.KmerFreq, f.Alphabet) {
		names = append(names, "Kmer_"+k)
	}
	return names
}

// Features returns the feature vector of a read with its graph attributes.
func (f Featurizer) Features(seq string, count, degree int) []float64 {
	out := []float64{
		float64(count),
		float64(degree),
		float64(len(seq)),
		GC(seq),
		Shannon(seq, f.EntropyKmer),
		Tsallis(seq, f.EntropyKmer, f.EntropyQ),
	}
	return append(out, KmerFrequencies(seq, f.KmerFreq, f.Alphabet)...)
}
