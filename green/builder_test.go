package green

import (
	"errors"
	"strings"
	"testing"
)

// A tiny expression language used to exercise retroactive wrapping.
const (
	kNumber Kind = iota
	kPlus
	kStar
	kSpace
	kBinary
	kRoot
)

type exprLang struct{}

func (exprLang) Name() string { return "expr" }
func (exprLang) Root() Kind   { return kRoot }
func (exprLang) KindName(k Kind) string {
	switch k {
	case kNumber:
		return "Number"
	case kPlus:
		return "Plus"
	case kStar:
		return "Star"
	case kSpace:
		return "Space"
	case kBinary:
		return "Binary"
	case kRoot:
		return "Root"
	}
	return ""
}

// emitExpr produces an instruction stream for single-digit sums and products
// using precedence climbing: operands are emitted first and wrapped into
// Binary nodes once the operator that follows them is known. Each wrap
// consumes one checkpoint, so an operand is preceded by as many checkpoints
// as there are operators binding to its left.
func emitExpr(src string) []Instr {
	pos := 0

	prec := func(c byte) int {
		switch c {
		case '+':
			return 1
		case '*':
			return 2
		}
		return 0
	}
	kindOf := func(c byte) Kind {
		if c == '+' {
			return kPlus
		}
		return kStar
	}
	space := func(out []Instr) []Instr {
		start := pos
		for pos < len(src) && src[pos] == ' ' {
			pos++
		}
		if pos > start {
			out = append(out, TokenAt(kSpace, Span{start, pos}))
		}
		return out
	}

	var expr func(min int) []Instr
	expr = func(min int) []Instr {
		body := []Instr{TokenAt(kNumber, Span{pos, pos + 1})}
		pos++
		body = space(body)
		wraps := 0
		for pos < len(src) && prec(src[pos]) >= min {
			op := src[pos]
			body = append(body, StartNodeAt(kBinary), TokenAt(kindOf(op), Span{pos, pos + 1}))
			pos++
			body = space(body)
			body = append(body, expr(prec(op)+1)...)
			body = append(body, FinishNode())
			wraps++
		}
		out := make([]Instr, 0, wraps+len(body))
		for i := 0; i < wraps; i++ {
			out = append(out, Mark())
		}
		return append(out, body...)
	}

	out := []Instr{StartNode(kRoot)}
	out = append(out, expr(1)...)
	return append(out, FinishNode())
}

func shape(lang Language, e Element) string {
	switch e := e.(type) {
	case *Token:
		return e.Text()
	case *Node:
		var parts []string
		for _, c := range e.Children() {
			if c.Kind() == kSpace {
				continue
			}
			parts = append(parts, shape(lang, c))
		}
		return "(" + strings.Join(parts, " ") + ")"
	}
	return "?"
}

func TestBuildPrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1", "(1)"},
		{"1+2", "((1 + 2))"},
		{"1+2*3", "((1 + (2 * 3)))"},
		{"1*2+3", "(((1 * 2) + 3))"},
		{"1 + 2 * 3 + 4", "(((1 + (2 * 3)) + 4))"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			root := Build(exprLang{}, tt.src, emitExpr(tt.src))
			if got := shape(exprLang{}, root); got != tt.want {
				t.Errorf("shape = %s, want %s", got, tt.want)
			}
			if root.Text() != tt.src {
				t.Errorf("text = %q, want %q", root.Text(), tt.src)
			}
		})
	}
}

func TestBuildStream(t *testing.T) {
	src := "1+2"
	root := Build(exprLang{}, src, []Instr{
		StartNode(kRoot),
		Mark(),
		TokenAt(kNumber, Span{0, 1}),
		StartNodeAt(kBinary),
		TokenAt(kPlus, Span{1, 2}),
		TokenAt(kNumber, Span{2, 3}),
		FinishNode(),
		FinishNode(),
	})

	if root.Kind() != kRoot {
		t.Fatalf("root kind = %d, want %d", root.Kind(), kRoot)
	}
	if root.NumChildren() != 1 {
		t.Fatalf("root has %d children, want 1", root.NumChildren())
	}
	bin, ok := root.Child(0).(*Node)
	if !ok || bin.Kind() != kBinary {
		t.Fatalf("first child = %v, want Binary node", root.Child(0))
	}
	var kinds []Kind
	for _, c := range bin.Children() {
		kinds = append(kinds, c.Kind())
	}
	want := []Kind{kNumber, kPlus, kNumber}
	if len(kinds) != len(want) {
		t.Fatalf("binary children = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("child %d kind = %d, want %d", i, kinds[i], want[i])
		}
	}
}

func TestCheckpointKeepsEarlierSiblings(t *testing.T) {
	b := NewBuilder(exprLang{}, "")
	b.StartNode(kRoot)
	b.Token(kNumber, "1")
	b.Token(kSpace, " ")
	cp := b.Checkpoint()
	b.Token(kNumber, "2")
	b.Token(kStar, "*")
	b.StartNodeAt(cp, kBinary)
	b.Token(kNumber, "3")
	b.FinishNode()
	b.Token(kSpace, " ")
	b.FinishNode()
	root := b.Finish()

	if got := root.Text(); got != "1 2*3 " {
		t.Fatalf("text = %q", got)
	}
	if root.NumChildren() != 4 {
		t.Fatalf("root has %d children, want 4", root.NumChildren())
	}
	bin := root.Child(2).(*Node)
	if bin.Kind() != kBinary || bin.Text() != "2*3" || bin.NumChildren() != 3 {
		t.Errorf("wrapped node = %s %q with %d children", exprLang{}.KindName(bin.Kind()), bin.Text(), bin.NumChildren())
	}
}

func TestBuilderInternsTokens(t *testing.T) {
	b := NewBuilder(exprLang{}, "")
	b.StartNode(kRoot)
	b.Token(kSpace, " ")
	b.Token(kNumber, "1")
	b.Token(kSpace, " ")
	b.FinishNode()
	root := b.Finish()

	if root.Child(0) != root.Child(2) {
		t.Error("identical tokens were not shared")
	}
}

func expectMisuse(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic")
		}
		err, ok := r.(error)
		var me *MisuseError
		if !ok || !errors.As(err, &me) {
			t.Fatalf("panic value = %#v, want *MisuseError", r)
		}
	}()
	fn()
}

func TestBuilderMisuse(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"empty checkpoint stack", func() {
			Build(exprLang{}, "1", []Instr{StartNode(kRoot), StartNodeAt(kBinary)})
		}},
		{"finish with empty stack", func() {
			Build(exprLang{}, "", []Instr{FinishNode()})
		}},
		{"unfinished node", func() {
			Build(exprLang{}, "", []Instr{StartNode(kRoot), StartNode(kBinary), FinishNode()})
		}},
		{"kind out of range", func() {
			Build(exprLang{}, "", []Instr{StartNode(kRoot + 1)})
		}},
		{"token outside node", func() {
			Build(exprLang{}, "1", []Instr{TokenAt(kNumber, Span{0, 1})})
		}},
		{"span outside source", func() {
			Build(exprLang{}, "1", []Instr{StartNode(kRoot), TokenAt(kNumber, Span{0, 2})})
		}},
		{"checkpoint reused", func() {
			b := NewBuilder(exprLang{}, "")
			b.StartNode(kRoot)
			cp := b.Checkpoint()
			b.Token(kNumber, "1")
			b.StartNodeAt(cp, kBinary)
			b.FinishNode()
			b.StartNodeAt(cp, kBinary)
		}},
		{"checkpoint from finished node", func() {
			b := NewBuilder(exprLang{}, "")
			b.StartNode(kRoot)
			b.StartNode(kBinary)
			cp := b.Checkpoint()
			b.Token(kNumber, "1")
			b.FinishNode()
			b.StartNodeAt(cp, kBinary)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectMisuse(t, tt.fn)
		})
	}
}
