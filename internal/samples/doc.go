// Package samples extracts labelled error samples from a read graph.
//
// A sample pairs a high-frequency read (the start) with a read believed to
// be an erroneous copy of it (the end). Extractors walk the connected
// components of the graph and mark every read they have decided on, so a
// read contributes to at most one genuine sample or ambiguous group.
//
// The kinds produced are:
//
//   - genuine: a low-frequency read with exactly one high-frequency
//     neighbour;
//   - ambiguous: a low-frequency read with several high-frequency
//     neighbours, reported as a group with one row per candidate;
//   - negative: an isolated high-frequency read, i.e. an error-free example;
//   - high ambiguous: two adjacent reads that are both above the
//     high-frequency threshold, reported in both directions;
//   - amplicon and UMI variants of the genuine rule with their own
//     thresholds.
package samples
