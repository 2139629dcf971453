package integration_tests

import (
	"testing"

	"github.com/specialistvlad/noise2read/internal/config"
	"github.com/specialistvlad/noise2read/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The same settings written as ini, HCL and YAML must produce the same
// effective configuration.
func TestConfigFormats_UnifiedLoading(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"run.ini": `
[General]
num_workers = 3
verbose = yes

[AmbiguousSetup]
high_ambiguous = True
proba_deviation = 0.9

[ModelTuningSetup]
tree_method = "gpu_hist"
`,
		"run.hcl": `
General {
  num_workers = 3
  verbose     = true
}

AmbiguousSetup {
  high_ambiguous  = true
  proba_deviation = 0.9
}

model_tuning_setup {
  tree_method = "gpu_hist"
}
`,
		"run.yaml": `
General:
  num_workers: 3
  verbose: true
AmbiguousSetup:
  high_ambiguous: true
  proba_deviation: 0.9
ModelTuningSetup:
  tree_method: gpu_hist
`,
	}

	var configs []*config.Config
	for _, name := range []string{"run.ini", "run.hcl", "run.yaml"} {
		result := testutil.RunIntegrationTest(t, files, "config", "validate", "-c", "$DIR/"+name)
		require.NoError(t, result.Err, name)
		testutil.AssertLogged(t, result, "Configuration loaded.")
		configs = append(configs, result.App.Config())
	}

	want := config.Default()
	want.General.NumWorkers = 3
	want.General.Verbose = true
	want.AmbiguousSetup.HighAmbiguous = true
	want.AmbiguousSetup.ProbaDeviation = 0.9
	want.ModelTuningSetup.TreeMethod = config.TreeMethodGPUHist
	for _, got := range configs {
		assert.Equal(t, want, got)
	}
}
