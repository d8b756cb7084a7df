package segment

import (
	"strings"
	"unicode"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
)

var goRules = &rules{visit: visitGo}

func visitGo(e *engine, n *sitter.Node) string {
	switch n.Type() {
	case "source_file":
		return e.sequence(n)
	case "function_declaration":
		body := field(n, "body")
		if body == nil {
			return e.verbatim(n)
		}
		if name := field(n, "name"); name != nil && isGoInitializer(name.Content(e.src)) {
			return e.verbatim(n)
		}
		return e.stub(n, body, " { }")
	case "method_declaration":
		body := field(n, "body")
		if body == nil {
			return e.verbatim(n)
		}
		return e.stub(n, body, " { }")
	default:
		return e.verbatim(n)
	}
}

// isGoInitializer reports package init functions and constructors named
// New or New followed by an exported word (NewStore, not Newline).
func isGoInitializer(name string) bool {
	if name == "init" || name == "New" {
		return true
	}
	rest, ok := strings.CutPrefix(name, "New")
	if !ok {
		return false
	}
	r, _ := utf8.DecodeRuneInString(rest)
	return unicode.IsUpper(r)
}
