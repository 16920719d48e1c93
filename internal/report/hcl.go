package report

import (
	"io"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/vk/kmpgraph/internal/buildmodel"
	"github.com/zclconf/go-cty/cty"
)

// writeSnapshotHCL emits one `source_set` block per set and one
// `compilation "<target>" "<name>"` block per compilation, every relation
// as a list of names.
func writeSnapshotHCL(w io.Writer, snap buildmodel.Snapshot) error {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	for i, s := range snap.SourceSets {
		if i > 0 {
			body.AppendNewline()
		}
		b := body.AppendNewBlock("source_set", []string{s.Name}).Body()
		b.SetAttributeValue("depends_on", stringList(s.DependsOn))
		b.SetAttributeValue("depends_on_closure", stringList(s.DependsOnClosure))
		b.SetAttributeValue("reverse_depends_on", stringList(s.ReverseDependsOn))
		b.SetAttributeValue("reverse_closure", stringList(s.ReverseDependsOnClosure))
		b.SetAttributeValue("compilations", stringList(s.Compilations))
	}

	for _, c := range snap.Compilations {
		body.AppendNewline()
		b := body.AppendNewBlock("compilation", []string{c.Target, c.Name}).Body()
		b.SetAttributeValue("source_sets", stringList(c.SourceSets))
	}

	_, err := w.Write(hclwrite.Format(f.Bytes()))
	return err
}

func stringList(items []string) cty.Value {
	if len(items) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(items))
	for i, item := range items {
		vals[i] = cty.StringVal(item)
	}
	return cty.ListVal(vals)
}
