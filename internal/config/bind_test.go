package config

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/specialistvlad/noise2read/internal/ctxlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func docWith(section string, entries ...Entry) *Document {
	return &Document{Path: "test", Sections: []*Section{{Name: section, Origin: "test", Entries: entries}}}
}

func str(key, value string) Entry {
	return Entry{Key: key, Value: cty.StringVal(value), Origin: "test:" + key}
}

func TestBind_PythonStyleBooleans(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		"True": true, "false": false, "YES": true, "no": false,
		"1": true, "0": false, "on": true, "Off": false,
	}
	for raw, want := range cases {
		t.Run(raw, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			cfg.General.Verbose = !want

			err := Bind(context.Background(), docWith("General", str("verbose", raw)), cfg, true)
			require.NoError(t, err)
			assert.Equal(t, want, cfg.General.Verbose)
		})
	}
}

func TestBind_ConversionErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		doc   *Document
		key   string
		wantT string
	}{
		{name: "word into int", doc: docWith("GraphSetup", str("high_freq_thre", "many")), key: "high_freq_thre", wantT: "integer"},
		{name: "fraction into int", doc: docWith("GraphSetup", str("high_freq_thre", "4.5")), key: "high_freq_thre", wantT: "integer"},
		{name: "word into float", doc: docWith("AmbiguousSetup", str("proba_deviation", "high")), key: "proba_deviation", wantT: "float"},
		{name: "bad boolean", doc: docWith("GraphSetup", str("save_graph", "maybe")), key: "save_graph", wantT: "boolean"},
		{
			name:  "null value",
			doc:   docWith("General", Entry{Key: "num_workers", Value: cty.NullVal(cty.Number), Origin: "test"}),
			key:   "num_workers",
			wantT: "integer",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := Bind(context.Background(), tc.doc, Default(), false)

			var optErr *OptionError
			require.True(t, errors.As(err, &optErr), "expected *OptionError, got %v", err)
			assert.Equal(t, tc.key, optErr.Key)
			assert.Equal(t, tc.wantT, optErr.Want)
		})
	}
}

func TestBind_NativeValues(t *testing.T) {
	t.Parallel()

	cfg := Default()
	doc := docWith("ModelTuningSetup",
		Entry{Key: "n_trials", Value: cty.NumberIntVal(20)},
		Entry{Key: "subsample_min", Value: cty.NumberFloatVal(0.5)},
		Entry{Key: "tree_method", Value: cty.StringVal("gpu_hist")},
	)
	doc.Sections = append(doc.Sections, &Section{Name: "GraphSetup", Entries: []Entry{
		{Key: "save_graph", Value: cty.True},
		{Key: "drawing_graph_num", Value: cty.NumberIntVal(3)},
	}})

	require.NoError(t, Bind(context.Background(), doc, cfg, true))
	assert.Equal(t, 20, cfg.ModelTuningSetup.NTrials)
	assert.InDelta(t, 0.5, cfg.ModelTuningSetup.SubsampleMin, 1e-12)
	assert.Equal(t, TreeMethodGPUHist, cfg.ModelTuningSetup.TreeMethod)
	assert.True(t, cfg.GraphSetup.SaveGraph)
	assert.Equal(t, 3, cfg.GraphSetup.DrawingGraphNum)
}

func TestBind_RepeatedKeyLastWins(t *testing.T) {
	t.Parallel()

	cfg := Default()
	doc := docWith("General", str("top_n", "5"), str("top_n", "9"))

	require.NoError(t, Bind(context.Background(), doc, cfg, true))
	assert.Equal(t, 9, cfg.General.TopN)
}

func TestBind_UnknownEntries(t *testing.T) {
	t.Parallel()

	doc := docWith("General", str("num_workers", "2"), str("gpu_id", "0"))
	doc.Sections = append(doc.Sections, &Section{Name: "Plotting", Origin: "test"})

	t.Run("lenient mode warns and continues", func(t *testing.T) {
		t.Parallel()

		buf := &bytes.Buffer{}
		ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(buf, nil)))
		cfg := Default()

		require.NoError(t, Bind(ctx, doc, cfg, false))
		assert.Equal(t, 2, cfg.General.NumWorkers)
		assert.Contains(t, buf.String(), "General.gpu_id")
		assert.Contains(t, buf.String(), `section \"Plotting\"`)
	})

	t.Run("strict mode fails", func(t *testing.T) {
		t.Parallel()

		err := Bind(context.Background(), doc, Default(), true)
		require.ErrorIs(t, err, ErrUnknownKey)
		assert.ErrorContains(t, err, "General.gpu_id")
		assert.ErrorContains(t, err, "Plotting")
	})
}
