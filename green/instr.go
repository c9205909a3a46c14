package green

import "fmt"

// Op is the operation of one builder instruction.
type Op uint8

const (
	OpStartNode Op = iota
	// OpStartNodeAt is like OpStartNode but opens the node at the most recent
	// unconsumed OpCheckpoint.
	OpStartNodeAt
	OpCheckpoint
	OpToken
	OpFinishNode
)

var opNames = [...]string{
	OpStartNode:   "StartNode",
	OpStartNodeAt: "StartNodeAt",
	OpCheckpoint:  "Checkpoint",
	OpToken:       "Token",
	OpFinishNode:  "FinishNode",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return "Unknown"
}

// Instr is one step of a flat, already-committed tree-building stream. A
// scanner emits Instrs left to right; Build replays them into a tree.
type Instr struct {
	Op   Op
	Kind Kind // for OpStartNode, OpStartNodeAt and OpToken
	Span Span // for OpToken
}

func StartNode(kind Kind) Instr   { return Instr{Op: OpStartNode, Kind: kind} }
func StartNodeAt(kind Kind) Instr { return Instr{Op: OpStartNodeAt, Kind: kind} }
func Mark() Instr                 { return Instr{Op: OpCheckpoint} }
func FinishNode() Instr           { return Instr{Op: OpFinishNode} }

func TokenAt(kind Kind, span Span) Instr {
	return Instr{Op: OpToken, Kind: kind, Span: span}
}

func (in Instr) String() string {
	switch in.Op {
	case OpToken:
		return fmt.Sprintf("%s(%d, %s)", in.Op, in.Kind, in.Span)
	case OpStartNode, OpStartNodeAt:
		return fmt.Sprintf("%s(%d)", in.Op, in.Kind)
	}
	return in.Op.String()
}

// Build replays instrs through a Builder and returns the finished tree. Token
// text is sliced from source, one slice per token.
//
// Checkpoints are kept on a stack: OpStartNodeAt pops the latest one. A
// stream that pops an empty stack or leaves nodes open is a grammar bug and
// makes Build panic with a *MisuseError.
func Build(lang Language, source string, instrs []Instr) *Node {
	b := NewBuilder(lang, source)
	var checkpoints []Checkpoint

	for _, in := range instrs {
		switch in.Op {
		case OpStartNode:
			b.StartNode(in.Kind)
		case OpStartNodeAt:
			if len(checkpoints) == 0 {
				misuse("build", "checkpoint stack is empty at %s", in)
			}
			cp := checkpoints[len(checkpoints)-1]
			checkpoints = checkpoints[:len(checkpoints)-1]
			b.StartNodeAt(cp, in.Kind)
		case OpCheckpoint:
			checkpoints = append(checkpoints, b.Checkpoint())
		case OpToken:
			b.TokenAt(in.Kind, in.Span)
		case OpFinishNode:
			b.FinishNode()
		default:
			misuse("build", "unknown instruction %d", in.Op)
		}
	}

	return b.Finish()
}
