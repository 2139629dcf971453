package config

import (
	"context"
	"fmt"

	"github.com/specialistvlad/noise2read/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/ini.v1"
)

// IniLoader reads configparser-style files: `[Section]` headers followed by
// `key = value` or `key: value` lines. Every value is kept as a string; Bind
// converts it to the option's type.
type IniLoader struct{}

// NewIniLoader creates a new ini configuration loader.
func NewIniLoader() *IniLoader {
	return &IniLoader{}
}

// Load parses the ini file at path.
func (l *IniLoader) Load(ctx context.Context, path string) (*Document, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Ini loader started.", "path", path)

	file, err := ini.LoadSources(ini.LoadOptions{
		AllowPythonMultilineValues: true,
		SpaceBeforeInlineComment:   true,
	}, path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ini file %s: %w", path, err)
	}

	doc := &Document{Path: path, Format: "ini"}
	for _, sec := range file.Sections() {
		keys := sec.Keys()
		if sec.Name() == ini.DefaultSection && len(keys) == 0 {
			continue
		}
		section := &Section{
			Name:   sec.Name(),
			Origin: fmt.Sprintf("%s[%s]", path, sec.Name()),
		}
		for _, k := range keys {
			section.Entries = append(section.Entries, Entry{
				Key:    k.Name(),
				Value:  cty.StringVal(k.String()),
				Origin: fmt.Sprintf("%s[%s] %s", path, sec.Name(), k.Name()),
			})
		}
		doc.Sections = append(doc.Sections, section)
	}

	logger.Debug("Ini loading complete.", "sections", len(doc.Sections))
	return doc, nil
}
