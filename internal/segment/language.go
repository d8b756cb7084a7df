package segment

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/kotlin"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Language is the closed set of languages that have a segmenter.
type Language int

const (
	Unknown Language = iota
	Python
	JavaScript
	TypeScript
	TSX
	Java
	Kotlin
	Rust
	Go
)

// langInfo binds a Language to its identifier, grammar and segmentation
// rules.
type langInfo struct {
	id      string
	grammar func() *sitter.Language
	rules   *rules
}

var languages = map[Language]langInfo{
	Python:     {id: "python", grammar: python.GetLanguage, rules: pythonRules},
	JavaScript: {id: "javascript", grammar: javascript.GetLanguage, rules: ecmaRules},
	TypeScript: {id: "typescript", grammar: typescript.GetLanguage, rules: ecmaRules},
	TSX:        {id: "tsx", grammar: tsx.GetLanguage, rules: ecmaRules},
	Java:       {id: "java", grammar: java.GetLanguage, rules: javaRules},
	Kotlin:     {id: "kotlin", grammar: kotlin.GetLanguage, rules: kotlinRules},
	Rust:       {id: "rust", grammar: rust.GetLanguage, rules: rustRules},
	Go:         {id: "go", grammar: golang.GetLanguage, rules: goRules},
}

// String returns the language identifier, e.g. "python".
func (l Language) String() string {
	if info, ok := languages[l]; ok {
		return info.id
	}
	return "unknown"
}

// Supported reports whether l has a registered segmenter.
func (l Language) Supported() bool {
	_, ok := languages[l]
	return ok
}

// ParseLanguage maps a language identifier back to a Language. Identifiers
// without a segmenter return Unknown and false.
func ParseLanguage(id string) (Language, bool) {
	for lang, info := range languages {
		if info.id == id {
			return lang, true
		}
	}
	return Unknown, false
}

// Languages returns every supported language in declaration order.
func Languages() []Language {
	return []Language{Python, JavaScript, TypeScript, TSX, Java, Kotlin, Rust, Go}
}
