package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/kmpgraph/internal/buildmodel"
)

func sampleSnapshot() buildmodel.Snapshot {
	return buildmodel.Snapshot{
		Generation: 7,
		SourceSets: []buildmodel.SourceSetView{
			{
				Name:                    "commonMain",
				DependsOn:               []string{},
				DependsOnClosure:        []string{},
				ReverseDependsOn:        []string{"jvmMain"},
				ReverseDependsOnClosure: []string{"jvmMain"},
				Compilations:            []string{"jvm/main"},
			},
			{
				Name:                    "jvmMain",
				DependsOn:               []string{"commonMain"},
				DependsOnClosure:        []string{"commonMain"},
				ReverseDependsOn:        []string{},
				ReverseDependsOnClosure: []string{},
				Compilations:            []string{"jvm/main"},
			},
		},
		Compilations: []buildmodel.CompilationView{
			{Target: "jvm", Name: "main", SourceSets: []string{"commonMain", "jvmMain"}},
		},
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats() {
		got, err := ParseFormat(string(f))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	_, err := ParseFormat("xml")
	assert.ErrorContains(t, err, `unknown output format "xml"`)
}

func TestWriteSnapshot_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSnapshot(&buf, FormatText, sampleSnapshot()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[0], "SOURCE SET"))
	assert.Regexp(t, `^commonMain\s+-\s+-\s+jvmMain\s+jvm/main$`, lines[1])
	assert.Regexp(t, `^jvmMain\s+commonMain\s+commonMain\s+-\s+jvm/main$`, lines[2])
	assert.Regexp(t, `^jvm/main\s+commonMain, jvmMain$`, lines[5])
}

func TestWriteSnapshot_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSnapshot(&buf, FormatJSON, sampleSnapshot()))

	var got buildmodel.Snapshot
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	if diff := cmp.Diff(sampleSnapshot(), got); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
	assert.Contains(t, buf.String(), `"reverse_depends_on_closure"`)
}

func TestWriteSnapshot_HCLParsesBack(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSnapshot(&buf, FormatHCL, sampleSnapshot()))

	file, diags := hclparse.NewParser().ParseHCL(buf.Bytes(), "export.hcl")
	require.False(t, diags.HasErrors(), diags.Error())

	var root struct {
		SourceSets []struct {
			Name             string   `hcl:"name,label"`
			DependsOn        []string `hcl:"depends_on"`
			DependsOnClosure []string `hcl:"depends_on_closure"`
			ReverseDependsOn []string `hcl:"reverse_depends_on"`
			ReverseClosure   []string `hcl:"reverse_closure"`
			Compilations     []string `hcl:"compilations"`
		} `hcl:"source_set,block"`
		Compilations []struct {
			Target     string   `hcl:"target,label"`
			Name       string   `hcl:"name,label"`
			SourceSets []string `hcl:"source_sets"`
		} `hcl:"compilation,block"`
	}
	diags = gohcl.DecodeBody(file.Body, nil, &root)
	require.False(t, diags.HasErrors(), diags.Error())

	require.Len(t, root.SourceSets, 2)
	assert.Equal(t, "jvmMain", root.SourceSets[1].Name)
	assert.Equal(t, []string{"commonMain"}, root.SourceSets[1].DependsOnClosure)
	assert.Empty(t, root.SourceSets[0].DependsOn)
	assert.Equal(t, []string{"jvmMain"}, root.SourceSets[0].ReverseClosure)

	require.Len(t, root.Compilations, 1)
	assert.Equal(t, "jvm", root.Compilations[0].Target)
	assert.Equal(t, []string{"commonMain", "jvmMain"}, root.Compilations[0].SourceSets)
}

func TestWriteQuery(t *testing.T) {
	result := QueryResult{Kind: "depends-on-closure", Name: "jvmMain", Items: []string{"commonMain", "sharedMain"}}

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteQuery(&buf, FormatText, result))
		assert.Equal(t, "commonMain\nsharedMain\n", buf.String())
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteQuery(&buf, FormatJSON, result))
		var got QueryResult
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, result, got)
	})

	t.Run("hcl is rejected", func(t *testing.T) {
		assert.Error(t, WriteQuery(&bytes.Buffer{}, FormatHCL, result))
	})
}
