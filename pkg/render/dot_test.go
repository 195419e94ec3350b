package render

import (
	"strings"
	"testing"

	"github.com/minipm/minipm/pkg/resolve"
)

func TestToDOT(t *testing.T) {
	root := &resolve.Node{Children: []*resolve.Node{
		{Name: "A", Version: "1.0.0", Children: []*resolve.Node{
			{Name: "B", Version: "1.1.0", Satisfied: true},
		}},
		{Name: "C", Version: "2.0.0"},
	}}

	dot := ToDOT(root, Options{Project: "demo"})

	for _, want := range []string{
		"digraph deps {",
		`label="demo"`,
		`label="A@1.0.0"`,
		`label="B@1.1.0"`,
		`label="C@2.0.0"`,
		"n0 -> n1;",
		"n1 -> n2;",
		"n0 -> n3;",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}

	// Satisfied nodes are visually distinct.
	if !strings.Contains(dot, "dashed") || !strings.Contains(dot, "lightgrey") {
		t.Errorf("satisfied node should render dashed and grey:\n%s", dot)
	}
}

func TestToDOTDuplicatePackagesGetDistinctNodes(t *testing.T) {
	// D appears in two subtrees at different versions; each occurrence is
	// its own DOT node.
	root := &resolve.Node{Children: []*resolve.Node{
		{Name: "B", Version: "1.0.0", Children: []*resolve.Node{{Name: "D", Version: "1.0.0"}}},
		{Name: "C", Version: "1.0.0", Children: []*resolve.Node{{Name: "D", Version: "2.0.0"}}},
	}}

	dot := ToDOT(root, Options{})
	if !strings.Contains(dot, `label="D@1.0.0"`) || !strings.Contains(dot, `label="D@2.0.0"`) {
		t.Errorf("both D occurrences should be rendered:\n%s", dot)
	}
	if !strings.Contains(dot, `label="(project)"`) {
		t.Errorf("empty project name should fall back to placeholder:\n%s", dot)
	}
}

func TestFormatFor(t *testing.T) {
	for _, name := range []string{"graph.dot", "graph.gv", "graph.svg", "graph.png", "GRAPH.SVG"} {
		if _, err := FormatFor(name); err != nil {
			t.Errorf("FormatFor(%q) error: %v", name, err)
		}
	}
	for _, name := range []string{"graph.pdf", "graph", "graph.jpeg"} {
		if _, err := FormatFor(name); err == nil {
			t.Errorf("FormatFor(%q) should be rejected", name)
		}
	}
}
