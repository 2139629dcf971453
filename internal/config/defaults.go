package config

import "runtime"

// Default returns a Config with every option set to its documented default.
func Default() *Config {
	return &Config{
		Paths: Paths{
			ResultDir: "./result/",
		},
		General: General{
			NumWorkers: -1,
			MinIters:   100,
			ChunksNum:  100,
			TopN:       100,
		},
		GraphSetup: GraphSetup{
			HighFreqThre:             5,
			MaxErrorFreq:             4,
			AmbiguousErrorNodeDegree: 4,
			DrawingGraphNum:          50,
			ED2Correction:            true,
		},
		EmbeddingSetup: EmbeddingSetup{
			EntropyKmer: 3,
			EntropyQ:    2,
			KmerFreq:    3,
			ReadType:    ReadTypeDNA,
		},
		AmbiguousSetup: AmbiguousSetup{
			ProbaDeviation: 0.95,
		},
		ModelTuningSetup: ModelTuningSetup{
			NTrials:             1,
			NEstimators:         10,
			TestSize:            0.1,
			RandomState:         42,
			TreeMethod:          TreeMethodAuto,
			LearningRateMin:     1e-3,
			LearningRateMax:     1e-1,
			L2RegularizationMin: 1e-3,
			L2RegularizationMax: 1e-1,
			MaxDepthMin:         3,
			MaxDepthMax:         15,
			MaxDepthStep:        1,
			NumBoostRoundMin:    200,
			NumBoostRoundMax:    300,
			NumBoostRoundStep:   10,
			SubsampleMin:        0.8,
			SubsampleMax:        1,
			ColsampleMin:        0.8,
			ColsampleMax:        1,
			XGBoostSeed:         42,
			OptunaSeed:          42,
		},
		Amplicon: Amplicon{
			AmpliconLowFreq:         50,
			AmpliconHighFreq:        1500,
			AmpliconThresholdProba:  0.9,
			AmpliconErrorNodeDegree: 4,
		},
		RealUMI: RealUMI{
			UMIStart:        0,
			UMIEnd:          12,
			NonUMIStart:     24,
			GroupReadNumber: 10,
			ReadEditDif:     2,
		},
		Simulation: Simulation{
			MinFreq:      4,
			MinReadCount: 30,
			ErrorRate1:   0.09,
			ErrorRate2:   0.02,
			Seed:         42,
		},
	}
}

// ResolveWorkers maps the num_workers option to a concrete pool size.
func ResolveWorkers(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}
