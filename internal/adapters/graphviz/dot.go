package graphviz

import (
	"io"
	"strings"

	"github.com/emicklei/dot"
	"go.trai.ch/pipdeps/internal/core/domain"
)

// labelEscaper escapes text for a DOT escString. Line breaks inside a label are written by the
// caller as a literal \n, which Graphviz centers.
var labelEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func label(lines ...string) dot.Literal {
	for i, l := range lines {
		lines[i] = labelEscaper.Replace(l)
	}
	return dot.Literal(`"` + strings.Join(lines, `\n`) + `"`)
}

// Build converts g into a DOT graph. Nodes and edges are added in the order g yields them.
// Missing nodes are drawn dashed so dangling references stand out.
func Build(g *domain.Graph) *dot.Graph {
	out := dot.NewGraph(dot.Directed)
	out.Attr("rankdir", "LR")

	nodes := make(map[string]dot.Node)
	for n := range g.Nodes() {
		node := out.Node(n.Name).Attr("shape", "box").Attr("fontname", "Helvetica")
		switch {
		case n.Missing:
			node = node.Attr("label", label(n.Name)).Attr("style", "dashed").Attr("color", "red")
		case n.Version != "":
			node = node.Attr("label", label(n.Name, n.Version))
		default:
			node = node.Attr("label", label(n.Name))
		}
		nodes[n.Name] = node
	}

	for e := range g.Edges() {
		out.Edge(nodes[e.From], nodes[e.To])
	}
	return out
}

// Encode writes g in the Graphviz DOT language.
func Encode(g *domain.Graph, w io.Writer) error {
	_, err := io.WriteString(w, Build(g).String())
	return err
}
