package segment

import sitter "github.com/smacker/go-tree-sitter"

var javaRules = &rules{
	visit:          visitJava,
	enumKinds:      set("enum_constant"),
	transparent:    set("enum_body_declarations"),
	enumTerminator: ";",
}

func visitJava(e *engine, n *sitter.Node) string {
	switch n.Type() {
	case "program":
		return e.sequence(n)
	case "class_declaration", "interface_declaration", "enum_declaration",
		"record_declaration", "annotation_type_declaration":
		body := field(n, "body")
		if body == nil {
			return e.verbatim(n)
		}
		return e.braced(n, body)
	case "method_declaration":
		body := field(n, "body")
		if body == nil {
			return e.verbatim(n)
		}
		return e.stub(n, body, ";")
	case "constructor_declaration", "compact_constructor_declaration",
		"static_initializer", "block":
		// Constructors and initializer blocks keep their bodies.
		return e.verbatim(n)
	default:
		return e.verbatim(n)
	}
}
