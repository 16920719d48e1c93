package hclconfig

import "github.com/hashicorp/hcl/v2"

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Hierarchy  *hierarchyBlock   `hcl:"hierarchy,block"`
	SourceSets []*sourceSetBlock `hcl:"source_set,block"`
	Targets    []*targetBlock    `hcl:"target,block"`
}

type hierarchyBlock struct {
	Default  *bool     `hcl:"default,optional"`
	DefRange hcl.Range `hcl:",def_range"`
}

type sourceSetBlock struct {
	Name      string         `hcl:"name,label"`
	DependsOn hcl.Expression `hcl:"depends_on,optional"`
	DefRange  hcl.Range      `hcl:",def_range"`
}

type targetBlock struct {
	Name         string              `hcl:"name,label"`
	Platform     *string             `hcl:"platform,optional"`
	Compilations []*compilationBlock `hcl:"compilation,block"`
	DefRange     hcl.Range           `hcl:",def_range"`
}

type compilationBlock struct {
	Name       string         `hcl:"name,label"`
	SourceSets hcl.Expression `hcl:"source_sets,optional"`
	DefRange   hcl.Range      `hcl:",def_range"`
}
