package hclconfig

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/kmpgraph/internal/config"
	"github.com/vk/kmpgraph/internal/ctxlog"
	"github.com/vk/kmpgraph/internal/fsutil"
)

// Extension is the file extension the loader picks up.
const Extension = ".hcl"

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file found under paths and merges them into one
// model. It returns config.ErrNoConfigFiles when there is nothing to load.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.FindFiles(paths, Extension)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, config.ErrNoConfigFiles
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	model := &config.Model{}

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		fileModel, diags := translate(&root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid HCL file %s: %w", file, diags)
		}
		model.Append(fileModel)
	}

	logger.Debug("HCL loading complete.", "files", len(files), "source_sets", len(model.SourceSets), "targets", len(model.Targets))
	return model, nil
}

// translate converts the decoded blocks of one file into the config model.
func translate(root *fileRoot) (*config.Model, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	m := &config.Model{}

	if root.Hierarchy != nil {
		// A bare `hierarchy {}` block opts in.
		m.DefaultHierarchy = root.Hierarchy.Default == nil || *root.Hierarchy.Default
	}

	for _, block := range root.SourceSets {
		deps, depDiags := parseReferenceList("depends_on", block.DependsOn)
		diags = append(diags, depDiags...)
		m.SourceSets = append(m.SourceSets, &config.SourceSet{
			Name:      block.Name,
			DependsOn: deps,
			Origin:    origin(block.DefRange),
		})
	}

	for _, block := range root.Targets {
		target := &config.Target{Name: block.Name, Origin: origin(block.DefRange)}
		if block.Platform != nil {
			target.Platform = *block.Platform
		}
		for _, cb := range block.Compilations {
			sets, setDiags := parseReferenceList("source_sets", cb.SourceSets)
			diags = append(diags, setDiags...)
			target.Compilations = append(target.Compilations, &config.Compilation{
				Name:       cb.Name,
				SourceSets: sets,
				Origin:     origin(cb.DefRange),
			})
		}
		m.Targets = append(m.Targets, target)
	}

	return m, diags
}

// origin renders a block position as file:line.
func origin(r hcl.Range) string {
	return fmt.Sprintf("%s:%d", r.Filename, r.Start.Line)
}
