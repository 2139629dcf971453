package config

import (
	"fmt"
	"strings"
)

// FieldError is a single violated rule.
type FieldError struct {
	Field   string // "Section.key"
	Value   any
	Message string
}

// Error implements the error interface.
func (e FieldError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// ValidationError bundles every rule violated by a Config.
type ValidationError struct {
	errors []FieldError
}

// Errors returns the individual violations.
func (e ValidationError) Errors() []FieldError {
	return e.errors
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	msgs := make([]string, len(e.errors))
	for i, err := range e.errors {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// validator accumulates violations so that a user sees all of them at once.
type validator struct {
	errors []FieldError
}

func (v *validator) add(field, message string, value any) {
	v.errors = append(v.errors, FieldError{Field: field, Value: value, Message: message})
}

func (v *validator) min(field string, value, lo int) {
	if value < lo {
		v.add(field, fmt.Sprintf("must be >= %d, got %d", lo, value), value)
	}
}

// openClosed checks lo < value <= hi.
func (v *validator) openClosed(field string, value, lo, hi float64) {
	if !(value > lo && value <= hi) {
		v.add(field, fmt.Sprintf("must be in (%g, %g], got %g", lo, hi, value), value)
	}
}

func (v *validator) closed(field string, value, lo, hi float64) {
	if value < lo || value > hi {
		v.add(field, fmt.Sprintf("must be in [%g, %g], got %g", lo, hi, value), value)
	}
}

func (v *validator) oneOf(field, value string, allowed ...string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v.add(field, fmt.Sprintf("must be one of %s, got %q", strings.Join(allowed, ", "), value), value)
}

func (v *validator) intRange(section, name string, lo, hi int) {
	if lo > hi {
		v.add(fmt.Sprintf("%s.%s_min", section, name), fmt.Sprintf("must not exceed %s_max (%d > %d)", name, lo, hi), lo)
	}
}

func (v *validator) floatRange(section, name string, lo, hi float64) {
	if lo > hi {
		v.add(fmt.Sprintf("%s.%s_min", section, name), fmt.Sprintf("must not exceed %s_max (%g > %g)", name, lo, hi), lo)
	}
}

func (v *validator) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.add(field, "is required", value)
	}
}

func (v *validator) err() error {
	if len(v.errors) == 0 {
		return nil
	}
	copied := make([]FieldError, len(v.errors))
	copy(copied, v.errors)
	return ValidationError{errors: copied}
}

// Validate checks cfg for the given mode and returns a ValidationError
// listing every violation, or nil.
func Validate(cfg *Config, mode Mode) error {
	v := &validator{}

	g := cfg.General
	if g.NumWorkers != -1 && g.NumWorkers < 1 {
		v.add("General.num_workers", fmt.Sprintf("must be -1 (all CPUs) or >= 1, got %d", g.NumWorkers), g.NumWorkers)
	}
	v.min("General.min_iters", g.MinIters, 1)
	v.min("General.chunks_num", g.ChunksNum, 1)
	v.min("General.top_n", g.TopN, 1)

	gs := cfg.GraphSetup
	v.min("GraphSetup.high_freq_thre", gs.HighFreqThre, 1)
	v.min("GraphSetup.max_error_freq", gs.MaxErrorFreq, 1)
	v.min("GraphSetup.ambiguous_error_node_degree", gs.AmbiguousErrorNodeDegree, 2)
	v.min("GraphSetup.drawing_graph_num", gs.DrawingGraphNum, 0)

	es := cfg.EmbeddingSetup
	v.min("EmbeddingSetup.entropy_kmer", es.EntropyKmer, 1)
	v.min("EmbeddingSetup.kmer_freq", es.KmerFreq, 1)
	if es.EntropyQ <= 0 {
		v.add("EmbeddingSetup.entropy_q", fmt.Sprintf("must be > 0, got %g", es.EntropyQ), es.EntropyQ)
	}
	v.oneOf("EmbeddingSetup.read_type", es.ReadType, ReadTypeDNA, ReadTypeRNA)

	v.openClosed("AmbiguousSetup.proba_deviation", cfg.AmbiguousSetup.ProbaDeviation, 0, 1)

	mt := cfg.ModelTuningSetup
	v.min("ModelTuningSetup.n_trials", mt.NTrials, 1)
	v.min("ModelTuningSetup.n_estimators", mt.NEstimators, 1)
	if !(mt.TestSize > 0 && mt.TestSize < 1) {
		v.add("ModelTuningSetup.test_size", fmt.Sprintf("must be in (0, 1), got %g", mt.TestSize), mt.TestSize)
	}
	v.oneOf("ModelTuningSetup.tree_method", mt.TreeMethod, TreeMethodAuto, TreeMethodGPUHist)
	v.floatRange("ModelTuningSetup", "learning_rate", mt.LearningRateMin, mt.LearningRateMax)
	v.floatRange("ModelTuningSetup", "l2_regularization", mt.L2RegularizationMin, mt.L2RegularizationMax)
	v.intRange("ModelTuningSetup", "max_depth", mt.MaxDepthMin, mt.MaxDepthMax)
	v.intRange("ModelTuningSetup", "num_boost_round", mt.NumBoostRoundMin, mt.NumBoostRoundMax)
	v.floatRange("ModelTuningSetup", "subsample", mt.SubsampleMin, mt.SubsampleMax)
	v.floatRange("ModelTuningSetup", "colsample", mt.ColsampleMin, mt.ColsampleMax)
	v.min("ModelTuningSetup.max_depth_step", mt.MaxDepthStep, 1)
	v.min("ModelTuningSetup.num_boost_round_step", mt.NumBoostRoundStep, 1)

	amp := cfg.Amplicon
	if amp.AmpliconLowFreq >= amp.AmpliconHighFreq {
		v.add("Amplicon.amplicon_low_freq", fmt.Sprintf("must be below amplicon_high_freq (%d >= %d)", amp.AmpliconLowFreq, amp.AmpliconHighFreq), amp.AmpliconLowFreq)
	}
	v.openClosed("Amplicon.amplicon_threshold_proba", amp.AmpliconThresholdProba, 0, 1)
	v.min("Amplicon.amplicon_error_node_degree", amp.AmpliconErrorNodeDegree, 1)

	umi := cfg.RealUMI
	v.min("RealUMI.umi_start", umi.UMIStart, 0)
	if umi.UMIStart >= umi.UMIEnd {
		v.add("RealUMI.umi_end", fmt.Sprintf("must be greater than umi_start (%d <= %d)", umi.UMIEnd, umi.UMIStart), umi.UMIEnd)
	}
	if umi.UMIEnd > umi.NonUMIStart {
		v.add("RealUMI.non_umi_start", fmt.Sprintf("must not precede umi_end (%d < %d)", umi.NonUMIStart, umi.UMIEnd), umi.NonUMIStart)
	}
	v.min("RealUMI.group_read_number", umi.GroupReadNumber, 1)
	v.min("RealUMI.read_edit_dif", umi.ReadEditDif, 0)

	sim := cfg.Simulation
	v.min("Simulation.min_freq", sim.MinFreq, 1)
	v.min("Simulation.min_read_count", sim.MinReadCount, 1)
	v.closed("Simulation.error_rate1", sim.ErrorRate1, 0, 1)
	v.closed("Simulation.error_rate2", sim.ErrorRate2, 0, 1)
	if sim.ErrorRate1+sim.ErrorRate2 > 1 {
		v.add("Simulation.error_rate2", fmt.Sprintf("error_rate1 + error_rate2 must not exceed 1, got %g", sim.ErrorRate1+sim.ErrorRate2), sim.ErrorRate2)
	}

	if mode.NeedsInput() {
		v.required("SourceInputData.input_file", cfg.SourceInputData.InputFile)
	}
	switch mode {
	case ModeEvaluate:
		// ground_truth_data stands in for a missing true_data
		if cfg.SourceInputData.GroundTruthData == "" {
			v.required("Evaluation.true_data", cfg.Evaluation.TrueData)
		}
		v.required("Evaluation.raw_data", cfg.Evaluation.RawData)
		v.required("Evaluation.corrected_data", cfg.Evaluation.CorrectedData)
	case ModeCompare:
		v.required("Evaluation.raw_data", cfg.Evaluation.RawData)
		v.required("Evaluation.corrected_data", cfg.Evaluation.CorrectedData)
	}
	if mode != ModeConfig {
		v.required("Paths.result_dir", cfg.Paths.ResultDir)
	}

	return v.err()
}
