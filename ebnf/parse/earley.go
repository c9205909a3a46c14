// Package parse recognizes token streams with the syntactic productions of
// an EBNF grammar, using Earley's algorithm.
//
// Token productions are named up front: a reference to one matches a token
// of that kind. A literal such as "(" in a syntactic production matches any
// token with that literal text. Every other name is a nonterminal. EBNF
// options, repetitions and groups are rewritten into plain rules, so
// ambiguous, left-recursive and empty-matching grammars are all fine.
package parse

import (
	"fmt"
	"sort"

	"github.com/dhamidi/doomfront/ebnflex"
	"github.com/dhamidi/doomfront/green"
	"golang.org/x/exp/ebnf"
)

type symbol struct {
	name     string // nonterminal, or token kind when terminal
	literal  string // literal text of a terminal written as "..."
	terminal bool
}

func (s symbol) String() string {
	if s.terminal && s.name == "" {
		return fmt.Sprintf("%q", s.literal)
	}
	return s.name
}

func (s symbol) matches(tok ebnflex.Token) bool {
	if s.name == "" {
		return tok.Literal == s.literal
	}
	return tok.Kind == s.name
}

type rule struct {
	lhs string
	rhs []symbol
}

// Item represents an Earley item: a rule, how much of it has been matched,
// and the chart position where it started.
type Item struct {
	Rule   int
	Dot    int
	Origin int
}

// ItemSet is the set of Earley items at one chart position.
type ItemSet struct {
	items []Item
	seen  map[Item]bool
}

func newItemSet() *ItemSet {
	return &ItemSet{seen: make(map[Item]bool)}
}

// Add adds item unless it is already present and reports whether it was new.
func (s *ItemSet) Add(item Item) bool {
	if s.seen[item] {
		return false
	}
	s.seen[item] = true
	s.items = append(s.items, item)
	return true
}

func (s *ItemSet) Items() []Item {
	return s.items
}

// EarleyParser holds the rules compiled from a grammar. It may be reused for
// any number of token streams but not concurrently.
type EarleyParser struct {
	rules     []rule
	byLHS     map[string][]int
	nullable  map[string]bool
	skipKinds map[string]bool

	chart    []*ItemSet
	filtered []ebnflex.Token
}

// NewEarleyParser compiles the productions of g reachable from start.
// tokenNames are the productions the lexer produces.
func NewEarleyParser(g ebnf.Grammar, tokenNames []string, start string) (*EarleyParser, error) {
	c := &compiler{
		grammar: g,
		tokens:  make(map[string]bool),
		done:    make(map[string]bool),
	}
	for _, name := range tokenNames {
		c.tokens[name] = true
	}
	if c.tokens[start] {
		return nil, fmt.Errorf("start production %s is a token", start)
	}
	if err := c.production(start); err != nil {
		return nil, err
	}

	p := &EarleyParser{
		rules:     c.rules,
		byLHS:     make(map[string][]int),
		skipKinds: make(map[string]bool),
	}
	for i, r := range p.rules {
		p.byLHS[r.lhs] = append(p.byLHS[r.lhs], i)
	}
	p.nullable = nullable(p.rules)
	return p, nil
}

// SetSkipKinds sets which token kinds to drop before parsing.
func (p *EarleyParser) SetSkipKinds(kinds ...string) {
	p.skipKinds = make(map[string]bool)
	for _, k := range kinds {
		p.skipKinds[k] = true
	}
}

// Recognize reports whether tokens derive from the production start. A
// rejection is a green.ParseError at the first token no item could accept.
func (p *EarleyParser) Recognize(tokens []ebnflex.Token, start string) error {
	if len(p.byLHS[start]) == 0 {
		return fmt.Errorf("production %q not found in grammar", start)
	}

	p.filtered = p.filtered[:0]
	for _, tok := range tokens {
		if tok.Kind != ebnflex.EOF && !p.skipKinds[tok.Kind] {
			p.filtered = append(p.filtered, tok)
		}
	}

	n := len(p.filtered)
	p.chart = make([]*ItemSet, n+1)
	for i := range p.chart {
		p.chart[i] = newItemSet()
	}
	for _, ri := range p.byLHS[start] {
		p.chart[0].Add(Item{Rule: ri, Origin: 0})
	}

	for i := 0; i <= n; i++ {
		set := p.chart[i]
		// Items may be added during iteration.
		for j := 0; j < len(set.items); j++ {
			item := set.items[j]
			r := p.rules[item.Rule]
			if item.Dot == len(r.rhs) {
				p.complete(i, item)
				continue
			}
			next := r.rhs[item.Dot]
			if next.terminal {
				if i < n && next.matches(p.filtered[i]) {
					p.chart[i+1].Add(advance(item))
				}
				continue
			}
			p.predict(i, item, next)
		}
	}

	for _, item := range p.chart[n].items {
		r := p.rules[item.Rule]
		if r.lhs == start && item.Origin == 0 && item.Dot == len(r.rhs) {
			return nil
		}
	}
	return p.failure(tokens)
}

func advance(item Item) Item {
	item.Dot++
	return item
}

func (p *EarleyParser) predict(pos int, item Item, next symbol) {
	for _, ri := range p.byLHS[next.name] {
		p.chart[pos].Add(Item{Rule: ri, Origin: pos})
	}
	// A nullable nonterminal may already have completed at pos.
	if p.nullable[next.name] {
		p.chart[pos].Add(advance(item))
	}
}

func (p *EarleyParser) complete(pos int, done Item) {
	lhs := p.rules[done.Rule].lhs
	origin := p.chart[done.Origin]
	for j := 0; j < len(origin.items); j++ {
		item := origin.items[j]
		r := p.rules[item.Rule]
		if item.Dot < len(r.rhs) && !r.rhs[item.Dot].terminal && r.rhs[item.Dot].name == lhs {
			p.chart[pos].Add(advance(item))
		}
	}
}

// failure describes the furthest chart position that still had items.
func (p *EarleyParser) failure(tokens []ebnflex.Token) error {
	furthest := 0
	for i := len(p.chart) - 1; i >= 0; i-- {
		if len(p.chart[i].items) > 0 {
			furthest = i
			break
		}
	}

	seen := make(map[string]bool)
	var expected []string
	for _, item := range p.chart[furthest].items {
		r := p.rules[item.Rule]
		if item.Dot < len(r.rhs) && r.rhs[item.Dot].terminal {
			label := r.rhs[item.Dot].String()
			if !seen[label] {
				seen[label] = true
				expected = append(expected, label)
			}
		}
	}
	sort.Strings(expected)

	perr := green.ParseError{Expected: expected}
	if furthest < len(p.filtered) {
		tok := p.filtered[furthest]
		perr.Span = green.Span{Start: tok.Position.Offset, End: tok.End()}
		perr.Found = tok.Literal
	} else if len(tokens) > 0 {
		end := tokens[len(tokens)-1].End()
		perr.Span = green.Span{Start: end, End: end}
	}
	return perr
}

// Rules returns the compiled rules in BNF, one per line, for debugging.
func (p *EarleyParser) Rules() []string {
	out := make([]string, len(p.rules))
	for i, r := range p.rules {
		s := r.lhs + " ="
		for _, sym := range r.rhs {
			s += " " + sym.String()
		}
		out[i] = s + " ."
	}
	return out
}

// nullable computes which nonterminals derive the empty string.
func nullable(rules []rule) map[string]bool {
	null := make(map[string]bool)
	for changed := true; changed; {
		changed = false
		for _, r := range rules {
			if null[r.lhs] {
				continue
			}
			all := true
			for _, sym := range r.rhs {
				if sym.terminal || !null[sym.name] {
					all = false
					break
				}
			}
			if all {
				null[r.lhs] = true
				changed = true
			}
		}
	}
	return null
}

// compiler rewrites EBNF productions into rules with plain sequences.
type compiler struct {
	grammar ebnf.Grammar
	tokens  map[string]bool
	done    map[string]bool
	rules   []rule
	fresh   int
}

func (c *compiler) production(name string) error {
	if c.done[name] {
		return nil
	}
	c.done[name] = true

	prod, ok := c.grammar[name]
	if !ok {
		return fmt.Errorf("production %s is not defined", name)
	}
	return c.alternatives(name, prod.Expr)
}

// alternatives adds one rule lhs = alt for each alternative of expr.
func (c *compiler) alternatives(lhs string, expr ebnf.Expression) error {
	alts, ok := expr.(ebnf.Alternative)
	if !ok {
		alts = ebnf.Alternative{expr}
	}
	for _, alt := range alts {
		rhs, err := c.sequence(alt)
		if err != nil {
			return err
		}
		c.rules = append(c.rules, rule{lhs: lhs, rhs: rhs})
	}
	return nil
}

func (c *compiler) sequence(expr ebnf.Expression) ([]symbol, error) {
	switch e := expr.(type) {
	case nil:
		return nil, nil

	case ebnf.Sequence:
		var out []symbol
		for _, item := range e {
			syms, err := c.sequence(item)
			if err != nil {
				return nil, err
			}
			out = append(out, syms...)
		}
		return out, nil

	case *ebnf.Name:
		if c.tokens[e.String] {
			return []symbol{{name: e.String, terminal: true}}, nil
		}
		if err := c.production(e.String); err != nil {
			return nil, err
		}
		return []symbol{{name: e.String}}, nil

	case *ebnf.Token:
		return []symbol{{literal: e.String, terminal: true}}, nil

	case *ebnf.Group:
		if _, ok := e.Body.(ebnf.Alternative); !ok {
			return c.sequence(e.Body)
		}
		return c.helper(e.Body, false, false)

	case ebnf.Alternative:
		return c.helper(e, false, false)

	case *ebnf.Option:
		return c.helper(e.Body, true, false)

	case *ebnf.Repetition:
		return c.helper(e.Body, true, true)

	case *ebnf.Range:
		return nil, fmt.Errorf("%s: character range in a syntactic production", e.Pos())
	}
	return nil, fmt.Errorf("unsupported expression %T", expr)
}

// helper introduces a nonterminal for body. It may be empty when optional
// and repeats itself when repeated.
func (c *compiler) helper(body ebnf.Expression, optional, repeated bool) ([]symbol, error) {
	c.fresh++
	name := fmt.Sprintf("_%d", c.fresh)
	if optional {
		c.rules = append(c.rules, rule{lhs: name})
	}

	alts, ok := body.(ebnf.Alternative)
	if !ok {
		alts = ebnf.Alternative{body}
	}
	for _, alt := range alts {
		rhs, err := c.sequence(alt)
		if err != nil {
			return nil, err
		}
		if repeated {
			rhs = append(rhs, symbol{name: name})
		}
		c.rules = append(c.rules, rule{lhs: name, rhs: rhs})
	}
	return []symbol{{name: name}}, nil
}
