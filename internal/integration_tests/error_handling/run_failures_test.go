package integration_tests

import (
	"os"
	"testing"

	"github.com/specialistvlad/noise2read/internal/app"
	"github.com/specialistvlad/noise2read/internal/seqio"
	"github.com/specialistvlad/noise2read/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalConfig = `
[Paths]
result_dir = $DIR/result
`

func TestErrorHandling_MissingInputFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{"run.ini": minimalConfig}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, "correct", "-c", "$DIR/run.ini", "-i", "$DIR/absent.fastq")

	// --- Assert ---
	require.Error(t, result.Err)
	assert.ErrorIs(t, result.Err, os.ErrNotExist)
	assert.Contains(t, result.Err.Error(), "correct failed")
	assert.NotErrorIs(t, result.Err, app.ErrInvalidConfig)
}

func TestErrorHandling_UnsupportedReadFormat(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"run.ini":   minimalConfig,
		"reads.txt": "ACGT\n",
	}

	result := testutil.RunIntegrationTest(t, files, "simulate", "-c", "$DIR/run.ini", "-i", "$DIR/reads.txt")

	require.Error(t, result.Err)
	assert.ErrorIs(t, result.Err, seqio.ErrUnsupportedFormat)
}

func TestErrorHandling_MissingInputSetting(t *testing.T) {
	t.Parallel()

	files := map[string]string{"run.ini": minimalConfig}

	result := testutil.RunIntegrationTest(t, files, "correct", "-c", "$DIR/run.ini")

	require.Error(t, result.Err)
	assert.ErrorIs(t, result.Err, app.ErrInvalidConfig)
	assert.Contains(t, result.Err.Error(), "SourceInputData.input_file")
	assert.Nil(t, result.App)
}
