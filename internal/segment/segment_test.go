package segment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianshen/archmirror/internal/parser"
)

func simplify(t *testing.T, lang Language, source string) string {
	t.Helper()
	seg, err := New(lang)
	require.NoError(t, err)
	out, err := seg.Simplify(context.Background(), []byte(source))
	require.NoError(t, err)
	return out
}

func TestPythonClassKeepsInitializer(t *testing.T) {
	source := `class Foo:
    def __init__(self, x):
        self.x = x
    def bar(self):
        return self.x * 2
`
	want := "class Foo:\n    def __init__(self, x):\n        self.x = x\n    def bar(self):\n        pass\n"
	assert.Equal(t, want, simplify(t, Python, source))
}

func TestPythonDecoratorsImportsAndAsync(t *testing.T) {
	source := `import os
from typing import List

@dataclass
class Point:
    x: int = 0

    @property
    def norm(self) -> float:
        return 1.0

async def fetch(url):
    await go(url)
`
	want := "import os\n" +
		"from typing import List\n" +
		"@dataclass\n" +
		"class Point:\n" +
		"    x: int = 0\n" +
		"    @property\n" +
		"    def norm(self) -> float:\n" +
		"        pass\n" +
		"async def fetch(url):\n" +
		"    pass\n"
	assert.Equal(t, want, simplify(t, Python, source))
}

func TestPythonNestedClassAndMultilineSignature(t *testing.T) {
	source := `class Outer:
    class Inner:
        def __init__(self,
                     a,
                     b):
            self.a = a
            self.b = b

        def total(self,
                  extra):
            return self.a + self.b + extra
`
	want := "class Outer:\n" +
		"    class Inner:\n" +
		"        def __init__(self,\n" +
		"                     a,\n" +
		"                     b):\n" +
		"            self.a = a\n" +
		"            self.b = b\n" +
		"        def total(self,\n" +
		"                  extra):\n" +
		"            pass\n"
	assert.Equal(t, want, simplify(t, Python, source))
}

func TestPythonClassBodyFallbackIsVerbatim(t *testing.T) {
	source := `class A:
    """Doc."""
    # note
    def f(self):
        return 1
`
	out := simplify(t, Python, source)
	assert.Contains(t, out, "    \"\"\"Doc.\"\"\"\n")
	assert.Contains(t, out, "    # note\n")
	assert.Contains(t, out, "    def f(self):\n        pass\n")
	assert.NotContains(t, out, "return 1")
}

func TestPythonTopLevelStatementsAreVerbatim(t *testing.T) {
	source := `LIMIT = 3

if __name__ == "__main__":
    main()
`
	want := "LIMIT = 3\nif __name__ == \"__main__\":\n    main()\n"
	assert.Equal(t, want, simplify(t, Python, source))
}

func TestJavaClass(t *testing.T) {
	source := `package com.example;

import java.util.List;

public class Greeter {
    private final String name;

    public Greeter(String name) {
        this.name = name;
    }

    public String greet(String other) {
        return "Hello " + other + " from " + name;
    }

    static {
        System.out.println("loaded");
    }
}
`
	want := "package com.example;\n" +
		"import java.util.List;\n" +
		"public class Greeter {\n" +
		"    private final String name;\n" +
		"    public Greeter(String name) {\n" +
		"        this.name = name;\n" +
		"    }\n" +
		"    public String greet(String other);\n" +
		"    static {\n" +
		"        System.out.println(\"loaded\");\n" +
		"    }\n" +
		"}\n"
	assert.Equal(t, want, simplify(t, Java, source))
}

func TestJavaEnumAndInterface(t *testing.T) {
	source := `enum Color {
    RED, GREEN;

    Color next() {
        return RED;
    }
}

interface Shape {
    double area();
}
`
	want := "enum Color {\n" +
		"    RED, GREEN;\n" +
		"    Color next();\n" +
		"}\n" +
		"interface Shape {\n" +
		"    double area();\n" +
		"}\n"
	assert.Equal(t, want, simplify(t, Java, source))
}

func TestJavaScriptModule(t *testing.T) {
	source := `import { readFile } from "fs";

export class Store {
  constructor(path) {
    this.path = path;
  }

  async load(key) {
    return readFile(this.path + key);
  }
}

export default function main(argv) {
  console.log(argv);
}

const helper = (a, b) => {
  return a + b;
};

const LIMIT = 10;
`
	want := "import { readFile } from \"fs\";\n" +
		"export class Store {\n" +
		"    constructor(path) {\n" +
		"      this.path = path;\n" +
		"    }\n" +
		"    async load(key) { }\n" +
		"}\n" +
		"export default function main(argv) { }\n" +
		"const helper = (a, b) => { }\n" +
		"const LIMIT = 10;\n"
	assert.Equal(t, want, simplify(t, JavaScript, source))
}

func TestTypeScriptDeclarations(t *testing.T) {
	source := `interface Shape {
  area(): number;
}

export abstract class Base implements Shape {
  describe(): string {
    return "area " + this.area();
  }
}

namespace Util {
  export function clamp(x: number): number {
    return Math.max(0, x);
  }
}
`
	out := simplify(t, TypeScript, source)
	assert.Contains(t, out, "interface Shape {\n  area(): number;\n}\n")
	assert.Contains(t, out, "export abstract class Base implements Shape {\n    describe(): string { }\n}\n")
	assert.Contains(t, out, "namespace Util {\n    export function clamp(x: number): number { }\n}")
	assert.NotContains(t, out, "Math.max")
	assert.NotContains(t, out, "\"area \"")
}

func TestClassFieldsKeepSemicolons(t *testing.T) {
	js := `class Counter {
  static count = 0;
  label = "c";

  inc() {
    Counter.count++;
  }
}
`
	assert.Equal(t, "class Counter {\n"+
		"    static count = 0;\n"+
		"    label = \"c\";\n"+
		"    inc() { }\n"+
		"}\n", simplify(t, JavaScript, js))

	ts := `class Form {
  @Input() private name: string = '';
  readonly max: number;

  submit(): void {
    send(this.name);
  }
}
`
	out := simplify(t, TypeScript, ts)
	assert.Contains(t, out, "    @Input() private name: string = '';\n")
	assert.Contains(t, out, "    readonly max: number;\n")
	assert.Contains(t, out, "    submit(): void { }\n")
	assert.NotContains(t, out, ";;")
}

func TestTSXComponent(t *testing.T) {
	source := `export function App(props: Props) {
  return <div>{props.title}</div>;
}
`
	assert.Equal(t, "export function App(props: Props) { }\n", simplify(t, TSX, source))
}

func TestRustItems(t *testing.T) {
	source := `use std::fmt;

#[derive(Debug)]
pub struct Point {
    pub x: i32,
    pub y: i32,
}

impl Point {
    pub fn new(x: i32, y: i32) -> Self {
        Point { x, y }
    }

    pub fn dist(&self) -> f64 {
        ((self.x * self.x + self.y * self.y) as f64).sqrt()
    }
}

fn main() {
    println!("hi");
}
`
	want := "use std::fmt;\n" +
		"#[derive(Debug)]\n" +
		"pub struct Point {\n" +
		"    pub x: i32,\n" +
		"    pub y: i32,\n" +
		"}\n" +
		"impl Point {\n" +
		"    pub fn new(x: i32, y: i32) -> Self {\n" +
		"        Point { x, y }\n" +
		"    }\n" +
		"    pub fn dist(&self) -> f64;\n" +
		"}\n" +
		"fn main();\n"
	assert.Equal(t, want, simplify(t, Rust, source))
}

func TestKotlinClass(t *testing.T) {
	source := `package demo

import kotlin.math.max

class Counter(private val start: Int) {
    val label = "counter"

    init {
        require(start >= 0)
    }

    constructor() : this(0) {
        println("default")
    }

    fun next(step: Int): Int {
        return max(start, step)
    }
}
`
	out := simplify(t, Kotlin, source)
	assert.Contains(t, out, "package demo")
	assert.Contains(t, out, "import kotlin.math.max")
	assert.Contains(t, out, "class Counter(private val start: Int) {\n")
	assert.Contains(t, out, "    val label = \"counter\"\n")
	assert.Contains(t, out, "    init {\n        require(start >= 0)\n    }\n")
	assert.Contains(t, out, "    constructor() : this(0) {\n        println(\"default\")\n    }\n")
	assert.Contains(t, out, "    fun next(step: Int): Int { }\n")
	assert.NotContains(t, out, "max(start, step)")
}

func TestGoFile(t *testing.T) {
	source := "package store\n\n" +
		"import \"fmt\"\n\n" +
		"type Store struct {\n\titems map[string]int\n}\n\n" +
		"func NewStore() *Store {\n\treturn &Store{items: map[string]int{}}\n}\n\n" +
		"func (s *Store) Get(key string) (int, error) {\n" +
		"\tv, ok := s.items[key]\n" +
		"\tif !ok {\n\t\treturn 0, fmt.Errorf(\"missing %s\", key)\n\t}\n" +
		"\treturn v, nil\n}\n\n" +
		"func Newline() string {\n\treturn \"\\n\"\n}\n\n" +
		"func New() *Store {\n\treturn NewStore()\n}\n"
	want := "package store\n" +
		"import \"fmt\"\n" +
		"type Store struct {\n\titems map[string]int\n}\n" +
		"func NewStore() *Store {\n\treturn &Store{items: map[string]int{}}\n}\n" +
		"func (s *Store) Get(key string) (int, error) { }\n" +
		"func Newline() string { }\n" +
		"func New() *Store {\n\treturn NewStore()\n}\n"
	assert.Equal(t, want, simplify(t, Go, source))
}

func TestIsGoInitializer(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"init", true},
		{"New", true},
		{"NewStore", true},
		{"NewÉcole", true},
		{"Newline", false},
		{"Newsletter", false},
		{"New_store", false},
		{"newStore", false},
		{"Initialize", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isGoInitializer(tt.name))
		})
	}
}

func TestSimplifyIsDeterministic(t *testing.T) {
	source := `class A:
    def __init__(self):
        self.v = []
    def add(self, x):
        self.v.append(x)
`
	seg, err := New(Python)
	require.NoError(t, err)
	first, err := seg.Simplify(context.Background(), []byte(source))
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := seg.Simplify(context.Background(), []byte(source))
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestSimplifyParseFailure(t *testing.T) {
	seg, err := New(Python)
	require.NoError(t, err)

	_, err = seg.Simplify(context.Background(), []byte("def broken(:\n    pass\n"))
	require.Error(t, err)
	var pe *parser.ParseError
	assert.True(t, errors.As(err, &pe))
}

func TestSimplifyToleratesSyntaxErrors(t *testing.T) {
	seg, err := New(Python, WithSyntaxErrorsTolerated())
	require.NoError(t, err)

	out, err := seg.Simplify(context.Background(), []byte("import os\ndef broken(:\n    pass\n"))
	require.NoError(t, err)
	assert.Contains(t, out, "import os")
}

func TestSimplifyEmptySource(t *testing.T) {
	assert.Equal(t, "", simplify(t, Rust, ""))
}

func TestNewUnknownLanguage(t *testing.T) {
	_, err := New(Unknown)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no segmenter registered")
}

func TestSegmenterLanguage(t *testing.T) {
	for _, lang := range Languages() {
		seg, err := New(lang)
		require.NoError(t, err, lang.String())
		assert.Equal(t, lang, seg.Language())
	}
}

func TestRebase(t *testing.T) {
	assert.Equal(t, "a\n  b\nc", rebase("a\n      b\n    c", 4))
	assert.Equal(t, "a\nb", rebase("a\n  b", 4))
	assert.Equal(t, "same", rebase("same", 8))
}

func TestReindent(t *testing.T) {
	assert.Equal(t, "    a\n\n    b", reindent("a\n  \nb", indentUnit))
}
