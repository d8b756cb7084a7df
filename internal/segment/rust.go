package segment

import sitter "github.com/smacker/go-tree-sitter"

var rustRules = &rules{visit: visitRust}

func visitRust(e *engine, n *sitter.Node) string {
	switch n.Type() {
	case "source_file":
		return e.sequence(n)
	case "impl_item", "trait_item", "mod_item":
		body := field(n, "body")
		if body == nil {
			return e.verbatim(n)
		}
		return e.braced(n, body)
	case "function_item":
		body := field(n, "body")
		if body == nil {
			return e.verbatim(n)
		}
		// fn new is the conventional constructor.
		if name := field(n, "name"); name != nil && name.Content(e.src) == "new" {
			return e.verbatim(n)
		}
		return e.stub(n, body, ";")
	default:
		return e.verbatim(n)
	}
}
