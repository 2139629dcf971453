package config

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/noise2read/internal/ctxlog"
)

// HCLLoader reads configuration written as one HCL block per section:
//
//	GraphSetup {
//	  high_freq_thre = 5
//	  save_graph     = false
//	}
//
// A labelled `section "GraphSetup" { ... }` block is accepted as well.
// Attribute expressions are evaluated without variables or functions, so
// only literal values (and arithmetic on them) are allowed.
type HCLLoader struct{}

// NewHCLLoader creates a new HCL configuration loader.
func NewHCLLoader() *HCLLoader {
	return &HCLLoader{}
}

// Load parses the HCL file at path.
func (l *HCLLoader) Load(ctx context.Context, path string) (*Document, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("failed to parse HCL file %s: unexpected body type %T", path, file.Body)
	}
	if stray := sortedAttributes(body.Attributes); len(stray) > 0 {
		return nil, fmt.Errorf("%s: attribute %q must be inside a section block", stray[0].SrcRange, stray[0].Name)
	}

	doc := &Document{Path: path, Format: "hcl"}
	for _, blk := range body.Blocks {
		name := blk.Type
		if blk.Type == "section" {
			if len(blk.Labels) != 1 {
				return nil, fmt.Errorf("%s: section block requires exactly one label", blk.DefRange())
			}
			name = blk.Labels[0]
		} else if len(blk.Labels) > 0 {
			return nil, fmt.Errorf("%s: block %q does not take labels", blk.DefRange(), blk.Type)
		}
		if len(blk.Body.Blocks) > 0 {
			return nil, fmt.Errorf("%s: section %q must not contain nested blocks", blk.Body.Blocks[0].DefRange(), name)
		}

		section := &Section{Name: name, Origin: blk.DefRange().String()}
		for _, attr := range sortedAttributes(blk.Body.Attributes) {
			val, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				return nil, fmt.Errorf("failed to evaluate %s.%s: %w", name, attr.Name, diags)
			}
			section.Entries = append(section.Entries, Entry{
				Key:    attr.Name,
				Value:  val,
				Origin: attr.SrcRange.String(),
			})
		}
		doc.Sections = append(doc.Sections, section)
	}

	logger.Debug("HCL loading complete.", "sections", len(doc.Sections))
	return doc, nil
}

// sortedAttributes returns attributes in source order; hclsyntax keeps them in a map.
func sortedAttributes(attrs hclsyntax.Attributes) []*hclsyntax.Attribute {
	out := make([]*hclsyntax.Attribute, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		return rangeBefore(out[i].SrcRange, out[j].SrcRange)
	})
	return out
}

func rangeBefore(a, b hcl.Range) bool {
	return a.Start.Byte < b.Start.Byte
}
