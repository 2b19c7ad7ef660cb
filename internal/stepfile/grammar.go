package stepfile

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var stepLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `'(?:[^']|'')*'`},
	{Name: "Ref", Pattern: `#\d+`},
	{Name: "Enum", Pattern: `\.[A-Za-z_][A-Za-z0-9_]*\.`},
	{Name: "Number", Pattern: `[-+]?\d+(?:\.\d*)?(?:[eE][-+]?\d+)?`},
	{Name: "Keyword", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Punct", Pattern: `[(),*$=]`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})

var statementParser = participle.MustBuild[statementNode](
	participle.Lexer(stepLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// statementNode is `#<id> = NAME(args)` or `#<id> = (A(args) B(args) ...)`.
type statementNode struct {
	ID      string          `@Ref "="`
	Simple  *instanceNode   `( @@`
	Complex []*instanceNode `| "(" @@+ ")" )`
}

type instanceNode struct {
	Name string       `@Keyword "("`
	Args []*paramNode `( @@ ( "," @@ )* )? ")"`
}

type paramNode struct {
	Omitted bool          `  @"$"`
	Derived bool          `| @"*"`
	Ref     *string       `| @Ref`
	String  *string       `| @String`
	Enum    *string       `| @Enum`
	Number  *string       `| @Number`
	Typed   *instanceNode `| @@`
	List    *listNode     `| @@`
}

type listNode struct {
	Items []*paramNode `"(" ( @@ ( "," @@ )* )? ")"`
}
