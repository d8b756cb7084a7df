package segment

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// pythonInitializers keep their bodies.
var pythonInitializers = set("__init__", "__new__")

var pythonRules = &rules{visit: visitPython}

func visitPython(e *engine, n *sitter.Node) string {
	switch n.Type() {
	case "module":
		return e.sequence(n)
	case "class_definition":
		return pythonClass(e, n)
	case "function_definition", "async_function_definition":
		return pythonFunction(e, n)
	case "decorated_definition":
		inner := field(n, "definition")
		if inner == nil {
			return e.verbatim(n)
		}
		return e.wrap(n, inner)
	default:
		return e.verbatim(n)
	}
}

func pythonClass(e *engine, n *sitter.Node) string {
	body := field(n, "body")
	if body == nil {
		return e.verbatim(n)
	}
	head := e.header(n, body)
	members := e.members(body)
	if len(members) == 0 {
		return head + "\n" + indentUnit + "pass"
	}
	return head + "\n" + reindent(strings.Join(members, "\n"), indentUnit)
}

func pythonFunction(e *engine, n *sitter.Node) string {
	body := field(n, "body")
	if body == nil {
		return e.verbatim(n)
	}
	if name := field(n, "name"); name != nil && pythonInitializers[name.Content(e.src)] {
		return e.verbatim(n)
	}
	return e.stub(n, body, "\n"+indentUnit+"pass")
}
