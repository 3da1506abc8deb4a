// Package cfg builds control flow graphs over assembled programs.
// Vertices are instruction addresses; edges are fallthroughs and
// branch targets.
package cfg

import (
	"errors"

	"github.com/dominikbraun/graph"

	"github.com/simplymiply/miply/asm"
	"github.com/simplymiply/miply/isa"
)

// Node is one instruction in the graph.
type Node struct {
	Addr int
	Inst isa.Instruction
	Name string // label bound to the address, if any
	Text string // listing text
}

// FromProgram flattens an assembled program into graph nodes.
func FromProgram(prog *asm.Program) (nodes []Node) {
	for n := range prog.Lines {
		line := &prog.Lines[n]

		node := Node{Addr: line.Addr, Inst: line.Inst, Text: line.Text}
		if names := prog.LabelsAt(line.Addr); len(names) > 0 {
			node.Name = names[0]
		}
		nodes = append(nodes, node)
	}

	return
}

// Successors returns the addresses an instruction can continue to
// within a program of the given length. end stops, jmp only branches,
// the conditional branches and for both fall through and branch. A
// target outside the program contributes no edge.
func Successors(addr int, inst isa.Instruction, length int) (next []int) {
	switch inst.Op {
	case isa.OP_END:

	case isa.OP_JMP:
		if inst.Addr >= 0 && inst.Addr < length {
			next = append(next, inst.Addr)
		}

	case isa.OP_IFE, isa.OP_IFNE, isa.OP_FOR:
		if addr+1 < length {
			next = append(next, addr+1)
		}
		if inst.Addr >= 0 && inst.Addr < length && inst.Addr != addr+1 {
			next = append(next, inst.Addr)
		}

	default:
		if addr+1 < length {
			next = append(next, addr+1)
		}
	}

	return
}

// Build assembles the nodes into a directed graph.
func Build(nodes []Node) (g graph.Graph[int, int], err error) {
	g = graph.New(graph.IntHash, graph.Directed())

	for _, node := range nodes {
		options := []func(*graph.VertexProperties){
			graph.VertexAttribute("text", node.Text),
		}
		if node.Name != "" {
			options = append(options, graph.VertexAttribute("name", node.Name))
		}
		if err = g.AddVertex(node.Addr, options...); err != nil {
			return
		}
	}

	for _, node := range nodes {
		for _, next := range Successors(node.Addr, node.Inst, len(nodes)) {
			err = g.AddEdge(node.Addr, next)
			if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
				return
			}
			err = nil
		}
	}

	return
}

// Reachable walks the graph from an entry address and reports every
// address reached.
func Reachable(g graph.Graph[int, int], entry int) (seen map[int]bool, err error) {
	seen = make(map[int]bool)
	err = graph.BFS(g, entry, func(addr int) bool {
		seen[addr] = true
		return false
	})

	return
}
