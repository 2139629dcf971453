// Package config defines the configuration surface of noise2read: the typed,
// sectioned Config consumed by every pipeline stage, the format-agnostic
// Document produced by the file loaders, and the binding and validation
// steps that turn one into the other.
//
// # Sections
//
// A configuration file is a set of named sections, each a flat mapping from
// option name to a scalar value:
//
//	Paths             where results and metrics are written
//	SourceInputData   the dataset to correct (and optional ground truth)
//	General           workers, chunking, verbosity, progress interval
//	GraphSetup        read-graph thresholds and graph export
//	EmbeddingSetup    entropy and k-mer feature parameters
//	AmbiguousSetup    ambiguous-error resolution
//	ModelTuningSetup  hyperparameter ranges for the external classifier
//	Amplicon          amplicon-sequencing correction thresholds
//	RealUMI           UMI / payload layout of UMI-tagged reads
//	Simulation        simulated dataset generation
//	Evaluation        inputs of the evaluate and compare modes
//
// # Loading
//
// Loading happens in three steps, each replaceable on its own:
//
//  1. A Loader (ini, HCL or YAML, chosen by file extension) parses the file
//     into a Document. Values are carried as cty.Value so that an ini string
//     "5", an HCL number 5 and a YAML int 5 all look alike downstream.
//  2. Bind overlays the Document onto a Config pre-populated by Default,
//     converting each value to the option's Go type.
//  3. Validate checks ranges, enums and cross-option rules for the selected
//     Mode and reports every violation at once.
//
// Section and key names are matched case-insensitively with underscores and
// dashes ignored, so "ResultDir", "result_dir" and "resultdir" name the same
// option.
package config
