package config

// Config is the complete, typed configuration of a noise2read run. Each
// field is one section; the `section` tag carries its canonical name and the
// `key` tag of every nested field carries the canonical option name.
type Config struct {
	Paths            Paths            `section:"Paths"`
	SourceInputData  SourceInputData  `section:"SourceInputData"`
	General          General          `section:"General"`
	GraphSetup       GraphSetup       `section:"GraphSetup"`
	EmbeddingSetup   EmbeddingSetup   `section:"EmbeddingSetup"`
	AmbiguousSetup   AmbiguousSetup   `section:"AmbiguousSetup"`
	ModelTuningSetup ModelTuningSetup `section:"ModelTuningSetup"`
	Amplicon         Amplicon         `section:"Amplicon"`
	RealUMI          RealUMI          `section:"RealUMI"`
	Simulation       Simulation       `section:"Simulation"`
	Evaluation       Evaluation       `section:"Evaluation"`
}

// Paths controls where output is written.
type Paths struct {
	ResultDir   string `key:"result_dir"`
	MetricsFile string `key:"metrics_file"`
}

// SourceInputData names the dataset a correction run operates on.
type SourceInputData struct {
	InputFile       string `key:"input_file"`
	GroundTruthData string `key:"ground_truth_data"`
}

// General holds run-wide knobs.
type General struct {
	// NumWorkers is the size of the worker pool; -1 means one per CPU.
	NumWorkers int  `key:"num_workers"`
	Verbose    bool `key:"verbose"`
	// MinIters is the number of progress updates logged per stage.
	MinIters int `key:"min_iters"`
	// ChunksNum is the number of batches a parallel stage is split into.
	ChunksNum int `key:"chunks_num"`
	TopN      int `key:"top_n"`
}

// GraphSetup controls read-graph construction and sample extraction.
type GraphSetup struct {
	HighFreqThre             int  `key:"high_freq_thre"`
	MaxErrorFreq             int  `key:"max_error_freq"`
	AmbiguousErrorNodeDegree int  `key:"ambiguous_error_node_degree"`
	SaveGraph                bool `key:"save_graph"`
	GraphVisualization       bool `key:"graph_visualization"`
	DrawingGraphNum          int  `key:"drawing_graph_num"`
	ED2Correction            bool `key:"ed2_correction"`
}

// EmbeddingSetup controls read feature extraction.
type EmbeddingSetup struct {
	EntropyKmer int     `key:"entropy_kmer"`
	EntropyQ    float64 `key:"entropy_q"`
	KmerFreq    int     `key:"kmer_freq"`
	ReadType    string  `key:"read_type"`
}

// AmbiguousSetup controls resolution of reads with several plausible origins.
type AmbiguousSetup struct {
	HighAmbiguous  bool    `key:"high_ambiguous"`
	ProbaDeviation float64 `key:"proba_deviation"`
}

// ModelTuningSetup carries the hyperparameter search space handed to the
// external gradient-boosted classifier.
type ModelTuningSetup struct {
	NTrials             int     `key:"n_trials"`
	NEstimators         int     `key:"n_estimators"`
	TestSize            float64 `key:"test_size"`
	RandomState         int     `key:"random_state"`
	TreeMethod          string  `key:"tree_method"`
	LearningRateMin     float64 `key:"learning_rate_min"`
	LearningRateMax     float64 `key:"learning_rate_max"`
	L2RegularizationMin float64 `key:"l2_regularization_min"`
	L2RegularizationMax float64 `key:"l2_regularization_max"`
	MaxDepthMin         int     `key:"max_depth_min"`
	MaxDepthMax         int     `key:"max_depth_max"`
	MaxDepthStep        int     `key:"max_depth_step"`
	NumBoostRoundMin    int     `key:"num_boost_round_min"`
	NumBoostRoundMax    int     `key:"num_boost_round_max"`
	NumBoostRoundStep   int     `key:"num_boost_round_step"`
	SubsampleMin        float64 `key:"subsample_min"`
	SubsampleMax        float64 `key:"subsample_max"`
	ColsampleMin        float64 `key:"colsample_min"`
	ColsampleMax        float64 `key:"colsample_max"`
	XGBoostSeed         int     `key:"xgboost_seed"`
	OptunaSeed          int     `key:"optuna_seed"`
}

// Amplicon holds the thresholds of the extra amplicon correction pass.
type Amplicon struct {
	AmpliconLowFreq         int     `key:"amplicon_low_freq"`
	AmpliconHighFreq        int     `key:"amplicon_high_freq"`
	AmpliconThresholdProba  float64 `key:"amplicon_threshold_proba"`
	AmpliconErrorNodeDegree int     `key:"amplicon_error_node_degree"`
}

// RealUMI describes the layout of UMI-tagged reads.
type RealUMI struct {
	UMIStart        int `key:"umi_start"`
	UMIEnd          int `key:"umi_end"`
	NonUMIStart     int `key:"non_umi_start"`
	GroupReadNumber int `key:"group_read_number"`
	ReadEditDif     int `key:"read_edit_dif"`
}

// Simulation controls simulated dataset generation.
type Simulation struct {
	MinFreq      int     `key:"min_freq"`
	MinReadCount int     `key:"min_read_count"`
	ErrorRate1   float64 `key:"error_rate1"`
	ErrorRate2   float64 `key:"error_rate2"`
	Seed         int     `key:"seed"`
}

// Evaluation names the inputs of the evaluate and compare modes.
type Evaluation struct {
	TrueData      string `key:"true_data"`
	RawData       string `key:"raw_data"`
	CorrectedData string `key:"corrected_data"`
	ReferenceFile string `key:"reference_file"`
	ReportFile    string `key:"report_file"`
}

// Tree methods accepted by ModelTuningSetup.TreeMethod.
const (
	TreeMethodAuto    = "auto"
	TreeMethodGPUHist = "gpu_hist"
)

// Read types accepted by EmbeddingSetup.ReadType.
const (
	ReadTypeDNA = "DNA"
	ReadTypeRNA = "RNA"
)
