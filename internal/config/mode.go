package config

import "fmt"

// Mode selects which pipeline a run executes. Validation requirements depend
// on it: a correction run needs an input file, an evaluation needs three.
type Mode string

const (
	ModeCorrect  Mode = "correct"
	ModeAmplicon Mode = "amplicon"
	ModeUMI      Mode = "umi"
	ModeUMITruth Mode = "umi-truth"
	ModeSimulate Mode = "simulate"
	ModeEvaluate Mode = "evaluate"
	ModeCompare  Mode = "compare"
	// ModeConfig only loads and validates the configuration itself.
	ModeConfig Mode = "config"
)

// Modes lists every runnable mode in help-text order.
var Modes = []Mode{ModeCorrect, ModeAmplicon, ModeUMI, ModeUMITruth, ModeSimulate, ModeEvaluate, ModeCompare}

// ParseMode converts a user-supplied mode name into a Mode.
func ParseMode(s string) (Mode, error) {
	for _, m := range append(Modes, ModeConfig) {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// NeedsInput reports whether the mode reads SourceInputData.input_file.
func (m Mode) NeedsInput() bool {
	switch m {
	case ModeCorrect, ModeAmplicon, ModeUMI, ModeUMITruth, ModeSimulate:
		return true
	}
	return false
}
