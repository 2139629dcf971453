package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/noise2read/internal/ctxlog"
)

// LoaderFor picks the Loader matching the file extension of path.
func LoaderFor(path string) (Loader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ini", ".cfg", ".conf":
		return NewIniLoader(), nil
	case ".hcl":
		return NewHCLLoader(), nil
	case ".yaml", ".yml":
		return NewYAMLLoader(), nil
	}
	return nil, fmt.Errorf("%w: %q (want .ini, .cfg, .conf, .hcl, .yaml or .yml)", ErrUnsupportedFormat, filepath.Ext(path))
}

// LoadFile builds a Config from the defaults overlaid with the file at path.
// It does not validate; call Validate with the run's Mode afterwards.
func LoadFile(ctx context.Context, path string, strict bool) (*Config, error) {
	logger := ctxlog.FromContext(ctx)

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}

	loader, err := LoaderFor(path)
	if err != nil {
		return nil, err
	}
	doc, err := loader.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := Bind(ctx, doc, cfg, strict); err != nil {
		return nil, err
	}
	logger.Info("Configuration loaded.", "path", path, "format", doc.Format, "sections", len(doc.Sections))
	return cfg, nil
}
