package green

// Checkpoint marks a position among the children of the node being built.
// It is consumed by StartNodeAt.
type Checkpoint struct {
	id    uint32
	frame uint32 // serial of the frame that was open at capture, 0 for none
	pos   int
}

type frame struct {
	kind   Kind
	first  int // index into Builder.children
	serial uint32
}

type tokenKey struct {
	kind Kind
	text string
}

// Builder assembles a green tree from start/token/finish calls. Children of
// all open nodes share one flat buffer; a frame only remembers where its own
// children begin, so wrapping everything after a checkpoint is a matter of
// opening a frame at the checkpoint's index.
type Builder struct {
	lang     Language
	source   string
	frames   []frame
	children []Element
	open     map[uint32]bool
	serial   uint32
	ids      uint32
	tokens   map[tokenKey]*Token
	done     bool
}

// NewBuilder creates a builder for lang. source is only needed by TokenAt and
// may be empty when tokens are added with Token.
func NewBuilder(lang Language, source string) *Builder {
	return &Builder{
		lang:   lang,
		source: source,
		open:   make(map[uint32]bool),
		tokens: make(map[tokenKey]*Token),
	}
}

// StartNode opens a new node of the given kind.
func (b *Builder) StartNode(kind Kind) {
	b.checkLive("start node")
	CheckKind(b.lang, kind)
	b.serial++
	b.frames = append(b.frames, frame{kind: kind, first: len(b.children), serial: b.serial})
}

// Checkpoint records the current position so a node can later be opened
// retroactively around everything added after it.
func (b *Builder) Checkpoint() Checkpoint {
	b.checkLive("checkpoint")
	b.ids++
	b.open[b.ids] = true
	return Checkpoint{id: b.ids, frame: b.currentSerial(), pos: len(b.children)}
}

// StartNodeAt opens a node of the given kind whose first child is whatever was
// added first after cp was taken. cp is consumed; it must have been taken in
// the node that is currently open and must not have been used before.
func (b *Builder) StartNodeAt(cp Checkpoint, kind Kind) {
	b.checkLive("start node at")
	CheckKind(b.lang, kind)

	if !b.open[cp.id] {
		misuse("start node at", "checkpoint %d already consumed or not taken by this builder", cp.id)
	}
	delete(b.open, cp.id)

	if cp.frame != b.currentSerial() {
		misuse("start node at", "checkpoint %d was taken in a node that is no longer current", cp.id)
	}
	if cp.pos > len(b.children) {
		misuse("start node at", "checkpoint %d is past the end of the current node", cp.id)
	}

	b.serial++
	b.frames = append(b.frames, frame{kind: kind, first: cp.pos, serial: b.serial})
}

// Token adds a leaf to the current node. Identical tokens are shared.
func (b *Builder) Token(kind Kind, text string) {
	b.checkLive("token")
	CheckKind(b.lang, kind)
	if len(b.frames) == 0 {
		misuse("token", "token %s added outside of any node", KindString(b.lang, kind))
	}

	key := tokenKey{kind: kind, text: text}
	tok, ok := b.tokens[key]
	if !ok {
		tok = NewToken(kind, text)
		b.tokens[key] = tok
	}
	b.children = append(b.children, tok)
}

// TokenAt adds a leaf whose text is the given span of the builder's source.
func (b *Builder) TokenAt(kind Kind, span Span) {
	if span.Start < 0 || span.Start > span.End || span.End > len(b.source) {
		misuse("token", "span %s outside of source (length %d)", span, len(b.source))
	}
	b.Token(kind, b.source[span.Start:span.End])
}

// FinishNode closes the current node and adds it to its parent.
func (b *Builder) FinishNode() {
	b.checkLive("finish node")
	if len(b.frames) == 0 {
		misuse("finish node", "no node to finish")
	}

	top := b.frames[len(b.frames)-1]
	b.frames = b.frames[:len(b.frames)-1]

	node := NewNode(top.kind, b.children[top.first:])
	for i := top.first; i < len(b.children); i++ {
		b.children[i] = nil
	}
	b.children = append(b.children[:top.first], node)
}

// Finish returns the completed tree. Exactly one node must have been started
// and finished at the outermost level.
func (b *Builder) Finish() *Node {
	b.checkLive("finish")
	if len(b.frames) != 0 {
		misuse("finish", "%d node(s) still open", len(b.frames))
	}
	if len(b.children) != 1 {
		misuse("finish", "expected exactly one root element, got %d", len(b.children))
	}
	root, ok := b.children[0].(*Node)
	if !ok {
		misuse("finish", "root element is a token")
	}
	b.done = true
	return root
}

func (b *Builder) currentSerial() uint32 {
	if len(b.frames) == 0 {
		return 0
	}
	return b.frames[len(b.frames)-1].serial
}

func (b *Builder) checkLive(op string) {
	if b.done {
		misuse(op, "builder already finished")
	}
}
