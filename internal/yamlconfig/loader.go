package yamlconfig

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vk/kmpgraph/internal/config"
	"github.com/vk/kmpgraph/internal/ctxlog"
	"github.com/vk/kmpgraph/internal/fsutil"
	"gopkg.in/yaml.v3"
)

// Extensions are the file extensions the loader picks up.
var Extensions = []string{".yaml", ".yml"}

type fileRoot struct {
	Hierarchy  *hierarchyDoc  `yaml:"hierarchy"`
	SourceSets []sourceSetDoc `yaml:"source_sets"`
	Targets    []targetDoc    `yaml:"targets"`
}

type hierarchyDoc struct {
	Default *bool `yaml:"default"`
}

type sourceSetDoc struct {
	Name      string   `yaml:"name"`
	DependsOn []string `yaml:"depends_on"`
}

type targetDoc struct {
	Name         string           `yaml:"name"`
	Platform     string           `yaml:"platform"`
	Compilations []compilationDoc `yaml:"compilations"`
}

type compilationDoc struct {
	Name       string   `yaml:"name"`
	SourceSets []string `yaml:"source_sets"`
}

// Loader is the YAML implementation of config.Loader.
type Loader struct{}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new YAML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load decodes every .yaml/.yml file under paths and merges them. It
// returns config.ErrNoConfigFiles when there is nothing to load.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.FindFiles(paths, Extensions...)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, config.ErrNoConfigFiles
	}
	logger.Debug("Discovered YAML files.", "count", len(files))

	model := &config.Model{}
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read YAML file %s: %w", file, err)
		}
		fileModel, err := decode(file, data)
		if err != nil {
			return nil, err
		}
		model.Append(fileModel)
	}

	logger.Debug("YAML loading complete.", "files", len(files), "source_sets", len(model.SourceSets), "targets", len(model.Targets))
	return model, nil
}

// decode turns one file into a model. The document is decoded twice: once
// strictly into structs, once as a node tree to recover line numbers.
func decode(file string, data []byte) (*config.Model, error) {
	var root fileRoot
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return &config.Model{}, nil
		}
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", file, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", file, err)
	}
	pos := positions{file: file, root: &doc}

	m := &config.Model{}
	if root.Hierarchy != nil {
		m.DefaultHierarchy = root.Hierarchy.Default == nil || *root.Hierarchy.Default
	}
	for i, s := range root.SourceSets {
		m.SourceSets = append(m.SourceSets, &config.SourceSet{
			Name:      s.Name,
			DependsOn: s.DependsOn,
			Origin:    pos.of("source_sets", i),
		})
	}
	for i, t := range root.Targets {
		target := &config.Target{
			Name:     t.Name,
			Platform: t.Platform,
			Origin:   pos.of("targets", i),
		}
		for j, c := range t.Compilations {
			target.Compilations = append(target.Compilations, &config.Compilation{
				Name:       c.Name,
				SourceSets: c.SourceSets,
				Origin:     pos.of("targets", i, "compilations", j),
			})
		}
		m.Targets = append(m.Targets, target)
	}
	return m, nil
}

// positions resolves key/index paths in a YAML node tree to file:line.
type positions struct {
	file string
	root *yaml.Node
}

// of follows path (map keys as strings, sequence indexes as ints) and
// returns the origin of the node it ends on, or just the file name.
func (p positions) of(path ...any) string {
	n := p.root
	if n != nil && n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	for _, step := range path {
		if n == nil {
			break
		}
		switch key := step.(type) {
		case string:
			n = mappingValue(n, key)
		case int:
			if n.Kind != yaml.SequenceNode || key >= len(n.Content) {
				n = nil
			} else {
				n = n.Content[key]
			}
		}
	}
	if n == nil {
		return p.file
	}
	return fmt.Sprintf("%s:%d", p.file, n.Line)
}

func mappingValue(n *yaml.Node, key string) *yaml.Node {
	if n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}
