package segment

import sitter "github.com/smacker/go-tree-sitter"

// ecmaRules serve JavaScript, TypeScript and TSX. The TypeScript grammars
// are supersets of the JavaScript one, so the same kinds apply.
var ecmaRules = &rules{visit: visitECMA}

// functionValueKinds are expressions that carry a function body.
var functionValueKinds = set("arrow_function", "function", "function_expression",
	"generator_function")

func visitECMA(e *engine, n *sitter.Node) string {
	switch n.Type() {
	case "program":
		return e.sequence(n)
	case "class_declaration", "class", "abstract_class_declaration":
		body := field(n, "body")
		if body == nil {
			return e.verbatim(n)
		}
		return e.braced(n, body)
	case "internal_module", "module":
		body := field(n, "body")
		if body == nil {
			return e.verbatim(n)
		}
		return e.braced(n, body)
	case "function_declaration", "generator_function_declaration",
		"arrow_function", "function", "function_expression", "generator_function":
		body := field(n, "body")
		if body == nil {
			return e.verbatim(n)
		}
		return e.stub(n, body, " { }")
	case "method_definition":
		return ecmaMethod(e, n)
	case "class_static_block":
		return e.verbatim(n)
	case "export_statement":
		return ecmaExport(e, n)
	case "lexical_declaration", "variable_declaration":
		return ecmaDeclaration(e, n)
	case "expression_statement":
		// namespace blocks parse as statements in the TypeScript grammar.
		if n.NamedChildCount() == 1 {
			if inner := n.NamedChild(0); inner.Type() == "internal_module" {
				return e.visit(inner)
			}
		}
		return e.verbatim(n)
	default:
		return e.verbatim(n)
	}
}

func ecmaMethod(e *engine, n *sitter.Node) string {
	body := field(n, "body")
	if body == nil {
		return e.verbatim(n)
	}
	if name := field(n, "name"); name != nil && name.Content(e.src) == "constructor" {
		return e.verbatim(n)
	}
	return e.stub(n, body, " { }")
}

func ecmaExport(e *engine, n *sitter.Node) string {
	if decl := field(n, "declaration"); decl != nil {
		return e.wrap(n, decl)
	}
	// export default class {} / export default function () {}
	if value := field(n, "value"); value != nil {
		if value.Type() == "class" || functionValueKinds[value.Type()] {
			return e.wrap(n, value)
		}
	}
	return e.verbatim(n)
}

// ecmaDeclaration stubs `const f = (...) => {...}` style declarations that
// bind exactly one function value. Everything else is verbatim.
func ecmaDeclaration(e *engine, n *sitter.Node) string {
	if n.NamedChildCount() != 1 {
		return e.verbatim(n)
	}
	declarator := n.NamedChild(0)
	if declarator.Type() != "variable_declarator" {
		return e.verbatim(n)
	}
	value := field(declarator, "value")
	if value == nil || !functionValueKinds[value.Type()] {
		return e.verbatim(n)
	}
	body := field(value, "body")
	if body == nil {
		return e.verbatim(n)
	}
	return e.stub(n, body, " { }")
}
