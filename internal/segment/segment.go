// Package segment reduces source files to their structural skeleton.
//
// A Segmenter parses a file with tree-sitter and walks the tree once,
// top-down. Every node kind falls into one of a few policies: structural
// descent (roots and class-like bodies), verbatim copy, signature extraction
// (functions lose their bodies), verbatim override (constructors and
// initializers keep their bodies) and wrappers (decorators, export). Node
// kinds a language does not recognise are copied verbatim, never dropped.
package segment

import (
	"context"
	"fmt"
	"strings"

	"github.com/julianshen/archmirror/internal/parser"
)

// RulesVersion changes whenever a rule change alters segmenter output, so
// cached results from older rules are not reused.
const RulesVersion = "4"

// Segmenter turns the full text of one file into simplified text.
type Segmenter interface {
	Language() Language
	// Simplify is a pure function of source. It returns a *parser.ParseError
	// when the grammar cannot parse source.
	Simplify(ctx context.Context, source []byte) (string, error)
}

// Option configures a Segmenter.
type Option func(*options)

type options struct {
	tolerant bool
}

// WithSyntaxErrorsTolerated segments files even when the grammar reports
// syntax errors. Erroneous regions are copied verbatim.
func WithSyntaxErrorsTolerated() Option {
	return func(o *options) { o.tolerant = true }
}

// New returns the segmenter for lang.
func New(lang Language, opts ...Option) (Segmenter, error) {
	info, ok := languages[lang]
	if !ok {
		return nil, fmt.Errorf("no segmenter registered for language %q", lang)
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	var popts []parser.Option
	if o.tolerant {
		popts = append(popts, parser.TolerateSyntaxErrors())
	}
	return &segmenter{
		lang:   lang,
		parser: parser.NewParser(info.id, info.grammar(), popts...),
		rules:  info.rules,
	}, nil
}

type segmenter struct {
	lang   Language
	parser *parser.Parser
	rules  *rules
}

func (s *segmenter) Language() Language { return s.lang }

func (s *segmenter) Simplify(ctx context.Context, source []byte) (out string, err error) {
	tree, err := s.parser.Parse(ctx, source)
	if err != nil {
		return "", err
	}
	defer tree.Close()

	defer func() {
		if r := recover(); r != nil {
			out = ""
			err = &parser.ParseError{Grammar: s.lang.String(), Err: fmt.Errorf("segmenter panic: %v", r)}
		}
	}()

	e := &engine{src: source, rules: s.rules}
	text := strings.TrimRight(e.visit(tree.RootNode()), " \t\r\n")
	if text == "" {
		return "", nil
	}
	return text + "\n", nil
}
