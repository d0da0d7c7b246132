package assembler

import "strings"

// NodeType tells instructions, labels and directives apart.
type NodeType int

const (
	// NodeInstruction is a machine or pseudo instruction.
	NodeInstruction NodeType = iota
	// NodeLabel marks an address.
	NodeLabel
	// NodeDirective is a line starting with '.'.
	NodeDirective
)

// Node is one element of a source line. A line with a label and an
// instruction yields two nodes.
type Node struct {
	Type  NodeType
	Label string
	// Mnemonic and Operands are set for instructions only.
	Mnemonic Mnemonic
	Operands []string
	// Parts holds the mnemonic or directive and the raw operand text.
	Parts []string
	Line  int
	// Size is the byte count from the latest sizing pass.
	Size uint32
}

// Source rebuilds the text of the node for messages.
func (n *Node) Source() string {
	return strings.Join(n.Parts, " ")
}

// wrap ties err to the line of n.
func (n *Node) wrap(err error) error {
	return &LineError{Line: n.Line, Source: n.Source(), Err: err}
}
