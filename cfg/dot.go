package cfg

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"text/template"

	"github.com/dominikbraun/graph"
)

const dotTemplate = `digraph "{{.Name}}" {
	rankdir=TB;
	node [shape=box, fontname="monospace"];
{{range .Nodes}}	"{{.Addr}}" [label="{{.Label}}"];
{{end}}{{range .Edges}}	"{{.From}}" -> "{{.To}}";
{{end}}}
`

type dotNode struct {
	Addr  int
	Label string
}

type dotEdge struct {
	From int
	To   int
}

type dotDescription struct {
	Name  string
	Nodes []dotNode
	Edges []dotEdge
}

func describe(g graph.Graph[int, int], name string) (desc dotDescription, err error) {
	desc.Name = name

	adjacency, err := g.AdjacencyMap()
	if err != nil {
		return
	}

	for _, addr := range slices.Sorted(maps.Keys(adjacency)) {
		_, properties, perr := g.VertexWithProperties(addr)
		if perr != nil {
			err = perr
			return
		}

		label := fmt.Sprintf("%d: %s", addr, properties.Attributes["text"])
		if bound := properties.Attributes["name"]; bound != "" {
			label = bound + `\n` + label
		}
		desc.Nodes = append(desc.Nodes, dotNode{Addr: addr, Label: label})

		for _, next := range slices.Sorted(maps.Keys(adjacency[addr])) {
			desc.Edges = append(desc.Edges, dotEdge{From: addr, To: next})
		}
	}

	return
}

// WriteDOT renders the graph in graphviz DOT form. Vertex order and
// edge order follow the instruction addresses, so output is stable.
func WriteDOT(g graph.Graph[int, int], name string, w io.Writer) error {
	desc, err := describe(g, name)
	if err != nil {
		return err
	}

	return template.Must(template.New("dot").Parse(dotTemplate)).Execute(w, desc)
}
