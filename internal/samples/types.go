package samples

import "github.com/specialistvlad/noise2read/internal/executor"

// Endpoint is one read of a sample together with its graph attributes.
type Endpoint struct {
	Read   string
	Count  int
	Degree int
}

// ErrorInfo describes the single edit separating the two reads of a 1nt
// sample.
type ErrorInfo struct {
	// Type is "<start base>-<end base>", with X standing for a missing base.
	Type     string
	Position int
	// StartKmer and EndKmer hold the bases around the edit in each read.
	StartKmer string
	EndKmer   string
}

// Sample pairs a start read with the read it is believed to have produced.
// Err is set for samples taken from a 1nt graph.
type Sample struct {
	Start Endpoint
	End   Endpoint
	Err   *ErrorInfo
}

// Group is a set of samples sharing one end read (or one edge, for high
// ambiguous errors), numbered in extraction order.
type Group struct {
	Idx     int
	Samples []Sample
}

// Options carries the graph thresholds used by the extractors.
type Options struct {
	HighFreqThre    int
	MaxErrorFreq    int
	AmbiguousDegree int
	Pool            executor.Options
}

// Set bundles the samples extracted from one graph.
type Set struct {
	EditDistance  int
	Genuine       []Sample
	Ambiguous     []Group
	Negatives     []Endpoint
	HighAmbiguous []Group
}
