package segment

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// indentUnit is prepended once per nesting level to container members.
const indentUnit = "    "

// rules is one language's node dispatch plus the container details the
// shared engine needs.
type rules struct {
	// visit renders a node. It falls back to e.verbatim for kinds the
	// language does not recognise.
	visit func(e *engine, n *sitter.Node) string
	// enumKinds are member kinds gathered onto one comma-joined line.
	enumKinds map[string]bool
	// transparent member kinds are flattened into their parent container.
	transparent map[string]bool
	// enumTerminator ends the enum line when more members follow.
	enumTerminator string
}

// engine walks one tree. It is created per Simplify call and never shared.
type engine struct {
	src   []byte
	rules *rules
}

func (e *engine) visit(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return e.rules.visit(e, n)
}

// verbatim copies the node's source, re-based so that continuation lines
// are relative to the indentation of the line the node starts on.
func (e *engine) verbatim(n *sitter.Node) string {
	return e.span(n.StartByte(), n.EndByte())
}

// span returns src[start:end] re-based to the indentation of start's line.
func (e *engine) span(start, end uint32) string {
	if end > uint32(len(e.src)) {
		end = uint32(len(e.src))
	}
	if start >= end {
		return ""
	}
	return rebase(string(e.src[start:end]), e.lineIndent(start))
}

// lineIndent counts the leading blanks of the line containing pos.
func (e *engine) lineIndent(pos uint32) int {
	lineStart := int(pos)
	for lineStart > 0 && e.src[lineStart-1] != '\n' {
		lineStart--
	}
	n := 0
	for i := lineStart; i < len(e.src) && (e.src[i] == ' ' || e.src[i] == '\t'); i++ {
		n++
	}
	return n
}

// header is everything in n before body: modifiers, name, parameters and
// return type of a function, or the declaration line of a class.
func (e *engine) header(n, body *sitter.Node) string {
	return strings.TrimRight(e.span(n.StartByte(), body.StartByte()), " \t\r\n")
}

// sequence is structural descent over a root-like node: every named child
// in source order, joined by single newlines.
func (e *engine) sequence(n *sitter.Node) string {
	var b strings.Builder
	for i := 0; i < int(n.NamedChildCount()); i++ {
		text := strings.TrimRight(e.visit(n.NamedChild(i)), " \t\r\n")
		if text == "" {
			continue
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), " \t\r\n")
}

// members renders the named children of a container body. Consecutive enum
// constants collapse onto a single line.
func (e *engine) members(body *sitter.Node) []string {
	var (
		out   []string
		enums []string
	)
	flush := func(more bool) {
		if len(enums) == 0 {
			return
		}
		line := strings.Join(enums, ", ")
		if more {
			line += e.rules.enumTerminator
		}
		out = append(out, line)
		enums = nil
	}

	var collect func(parent *sitter.Node)
	collect = func(parent *sitter.Node) {
		for i := 0; i < int(parent.NamedChildCount()); i++ {
			child := parent.NamedChild(i)
			kind := child.Type()
			if e.rules.transparent[kind] {
				collect(child)
				continue
			}
			if e.rules.enumKinds[kind] {
				enums = append(enums, strings.TrimSpace(e.verbatim(child)))
				continue
			}
			text := strings.TrimRight(e.visit(child), " \t\r\n")
			if text == "" {
				continue
			}
			if terminatedBySibling(child) && !strings.HasSuffix(text, ";") {
				text += ";"
			}
			flush(true)
			out = append(out, text)
		}
	}
	collect(body)
	flush(false)
	return out
}

// terminatedBySibling reports a member whose `;` is an anonymous sibling in
// the container rather than part of the member node (JS/TS class fields).
func terminatedBySibling(n *sitter.Node) bool {
	next := n.NextSibling()
	return next != nil && !next.IsNamed() && next.Type() == ";"
}

// braced renders a brace-delimited container: header, re-indented members,
// closing brace.
func (e *engine) braced(n, body *sitter.Node) string {
	head := e.header(n, body)
	members := e.members(body)
	if len(members) == 0 {
		return head + " {}"
	}
	return head + " {\n" + reindent(strings.Join(members, "\n"), indentUnit) + "\n}"
}

// stub keeps the declaration header of n and replaces body with marker.
func (e *engine) stub(n, body *sitter.Node, marker string) string {
	return e.header(n, body) + marker
}

// wrap re-emits the wrapper text in front of inner (decorators, export
// keywords) and appends the simplified inner definition.
func (e *engine) wrap(outer, inner *sitter.Node) string {
	gap := e.span(outer.StartByte(), inner.StartByte())
	prefix := strings.TrimRight(gap, " \t\r\n")
	body := e.visit(inner)
	if prefix == "" {
		return body
	}
	sep := " "
	if strings.Contains(gap[len(prefix):], "\n") {
		sep = "\n"
	}
	return prefix + sep + body
}

// field returns the named field child of n, or nil.
func field(n *sitter.Node, name string) *sitter.Node {
	child := n.ChildByFieldName(name)
	if child == nil || child.IsNull() {
		return nil
	}
	return child
}

// childOfType returns the first named child of n whose kind is one of kinds.
func childOfType(n *sitter.Node, kinds ...string) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		for _, k := range kinds {
			if child.Type() == k {
				return child
			}
		}
	}
	return nil
}

// reindent prefixes every non-blank line of s with unit.
func reindent(s, unit string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
			continue
		}
		lines[i] = unit + line
	}
	return strings.Join(lines, "\n")
}

// rebase strips up to indent leading blanks from every line after the first.
func rebase(s string, indent int) string {
	if indent == 0 || !strings.Contains(s, "\n") {
		return s
	}
	lines := strings.Split(s, "\n")
	for i := 1; i < len(lines); i++ {
		line := lines[i]
		cut := 0
		for cut < indent && cut < len(line) && (line[cut] == ' ' || line[cut] == '\t') {
			cut++
		}
		lines[i] = line[cut:]
	}
	return strings.Join(lines, "\n")
}

func set(kinds ...string) map[string]bool {
	m := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		m[k] = true
	}
	return m
}
