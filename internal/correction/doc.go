// Package correction turns extracted error samples into a correction plan and
// applies it to a sequence file.
//
// A Plan maps an erroneous unique read to the read it should become. Plans
// are assembled from several passes: 1nt genuine errors, ambiguous groups
// resolved by abundance ratio, high ambiguous pairs, 2nt genuine errors found
// on the already corrected abundances, and the optional amplicon pass. The
// first pass to claim a read wins; later passes only see reads that are still
// uncorrected.
package correction
