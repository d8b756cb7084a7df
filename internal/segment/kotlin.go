package segment

import sitter "github.com/smacker/go-tree-sitter"

var kotlinRules = &rules{
	visit:          visitKotlin,
	enumKinds:      set("enum_entry"),
	enumTerminator: ";",
}

// The Kotlin grammar exposes almost no field names, so bodies are located
// by node kind.
func visitKotlin(e *engine, n *sitter.Node) string {
	switch n.Type() {
	case "source_file":
		return e.sequence(n)
	case "class_declaration", "object_declaration", "companion_object":
		body := childOfType(n, "class_body", "enum_class_body")
		if body == nil {
			return e.verbatim(n)
		}
		return e.braced(n, body)
	case "function_declaration":
		body := childOfType(n, "function_body")
		if body == nil {
			return e.verbatim(n)
		}
		return e.stub(n, body, " { }")
	case "secondary_constructor", "anonymous_initializer":
		return e.verbatim(n)
	default:
		return e.verbatim(n)
	}
}
