// Package parser wraps tree-sitter parsing behind a recoverable boundary.
// A Parser turns source bytes into a Tree for a single grammar; malformed
// input and panics raised inside the bindings are reported as *ParseError
// instead of aborting the process.
package parser

import (
	"context"
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// ErrSyntax is wrapped by ParseError when the grammar reported error or
// missing nodes in the tree.
var ErrSyntax = errors.New("syntax error")

// ParseError describes why a source file could not be turned into a usable
// syntax tree. Line and Column are 1-indexed and zero when unknown.
type ParseError struct {
	Grammar string
	Line    int
	Column  int
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s at %d:%d: %v", e.Grammar, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Grammar, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Option configures a Parser.
type Option func(*Parser)

// TolerateSyntaxErrors makes Parse return trees that contain ERROR or
// MISSING nodes instead of failing with ErrSyntax.
func TolerateSyntaxErrors() Option {
	return func(p *Parser) { p.tolerant = true }
}

// Parser parses source for one tree-sitter grammar. It holds no tree-sitter
// state between calls, so a single Parser may be shared by goroutines.
type Parser struct {
	name     string
	lang     *sitter.Language
	tolerant bool
}

// NewParser creates a Parser for the given grammar. name is only used in
// error messages.
func NewParser(name string, lang *sitter.Language, opts ...Option) *Parser {
	p := &Parser{name: name, lang: lang}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse builds a syntax tree for source. The caller owns the returned Tree
// and must Close it.
func (p *Parser) Parse(ctx context.Context, source []byte) (tree *Tree, err error) {
	if p.lang == nil {
		return nil, &ParseError{Grammar: p.name, Err: errors.New("grammar not loaded")}
	}

	inner := sitter.NewParser()
	defer inner.Close()

	defer func() {
		if r := recover(); r != nil {
			if tree != nil {
				tree.Close()
			}
			tree = nil
			err = &ParseError{Grammar: p.name, Err: fmt.Errorf("parser panic: %v", r)}
		}
	}()

	inner.SetLanguage(p.lang)
	sitterTree, err := inner.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, &ParseError{Grammar: p.name, Err: err}
	}
	if sitterTree == nil {
		return nil, &ParseError{Grammar: p.name, Err: errors.New("no tree produced")}
	}

	tree = &Tree{tree: sitterTree, source: source}
	if p.tolerant {
		return tree, nil
	}

	root := tree.RootNode()
	if root != nil && root.HasError() {
		bad := FirstError(root)
		tree.Close()
		pe := &ParseError{Grammar: p.name, Err: ErrSyntax}
		if bad != nil {
			pt := bad.StartPoint()
			pe.Line = int(pt.Row) + 1 // 0-indexed to 1-indexed
			pe.Column = int(pt.Column) + 1
		}
		return nil, pe
	}
	return tree, nil
}

// Tree wraps a parsed tree-sitter syntax tree together with the source it
// was built from.
type Tree struct {
	tree   *sitter.Tree
	source []byte
}

// RootNode returns the root node of the parsed syntax tree.
func (t *Tree) RootNode() *sitter.Node {
	return t.tree.RootNode()
}

// Source returns the bytes the tree was parsed from.
func (t *Tree) Source() []byte {
	return t.source
}

// Close releases the underlying tree-sitter tree.
func (t *Tree) Close() {
	if t == nil || t.tree == nil {
		return
	}
	t.tree.Close()
	t.tree = nil
}

// FirstError returns the first ERROR or MISSING node in document order, or
// nil when the subtree is clean.
func FirstError(node *sitter.Node) *sitter.Node {
	var found *sitter.Node
	Walk(node, func(n *sitter.Node) bool {
		if found != nil {
			return false
		}
		if n.IsError() || n.IsMissing() {
			found = n
			return false
		}
		return n.HasError()
	})
	return found
}

// Walk performs a depth-first traversal of the syntax tree. fn returns
// whether the children of the visited node should be descended into.
func Walk(node *sitter.Node, fn func(*sitter.Node) bool) {
	if node == nil {
		return
	}
	if !fn(node) {
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child != nil {
			Walk(child, fn)
		}
	}
}
