package embedding

import "github.com/specialistvlad/noise2read/internal/samples"

// gap marks a missing base in an error type.
const gap = "X"

// ErrorTypes lists every "<start base>-<end base>" error type over the
// alphabet, with X standing for an inserted or deleted base.
func (f Featurizer) ErrorTypes() []string {
	symbols := f.Alphabet + gap
	var out []string
	for i := 0; i < len(symbols); i++ {
		for j := 0; j < len(symbols); j++ {
			if i != j {
				out = append(out, symbols[i:i+1]+"-"+symbols[j:j+1])
			}
		}
	}
	return out
}

// Names returns the feature names matching SampleFeatures: the read features
// of the start and end reads, the count difference, a one-hot error type and
// the error position.
func (f Featurizer) Names() []string {
	read := f.ReadNames()
	names := make([]string, 0, 2*len(read)+len(f.ErrorTypes())+2)
	for _, n := range read {
		names = append(names, "Start"+n)
	}
	for _, n := range read {
		names = append(names, "End"+n)
	}
	names = append(names, "CountDiff")
	for _, t := range f.ErrorTypes() {
		names = append(names, "Err_"+t)
	}
	return append(names, "ErrPosition")
}

// SampleFeatures returns the feature vector of a sample. Samples without
// error information (2nt) get an all-zero error type and position -1.
func (f Featurizer) SampleFeatures(s samples.Sample) []float64 {
	out := f.Features(s.Start.Read, s.Start.Count, s.Start.Degree)
	out = append(out, f.Features(s.End.Read, s.End.Count, s.End.Degree)...)
	out = append(out, float64(s.Start.Count-s.End.Count))
	return f.appendError(out, s.Err)
}

// NegativeFeatures returns the feature vector of a negative read. It has no
// start read, so that half is zero and the read takes the end slot.
func (f Featurizer) NegativeFeatures(e samples.Endpoint) []float64 {
	out := make([]float64, len(f.ReadNames()))
	out = append(out, f.Features(e.Read, e.Count, e.Degree)...)
	out = append(out, 0)
	return f.appendError(out, nil)
}

func (f Featurizer) appendError(out []float64, info *samples.ErrorInfo) []float64 {
	position := -1.0
	for _, t := range f.ErrorTypes() {
		v := 0.0
		if info != nil && info.Type == t {
			v = 1
		}
		out = append(out, v)
	}
	if info != nil {
		position = float64(info.Position)
	}
	return append(out, position)
}
