package route

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/matzehuels/pinmap/pkg/errors"
	"github.com/matzehuels/pinmap/pkg/layout"
)

// Kind is the type of a route directive.
type Kind int

const (
	// AbsoluteHorizontal moves horizontally to an absolute x ("H").
	AbsoluteHorizontal Kind = iota
	// RelativeVertical moves vertically by an offset ("v").
	RelativeVertical
	// AbsoluteVertical moves vertically to an absolute y ("V").
	AbsoluteVertical
)

var kindLetters = map[Kind]string{
	AbsoluteHorizontal: "H",
	RelativeVertical:   "v",
	AbsoluteVertical:   "V",
}

// Letter returns the SVG path command for the kind.
func (k Kind) Letter() string { return kindLetters[k] }

func (k Kind) valid() bool {
	_, ok := kindLetters[k]
	return ok
}

// Directive is one step of an explicit route.
type Directive struct {
	Kind  Kind
	Value float64
}

// AbsH returns an absolute horizontal move to x.
func AbsH(x float64) Directive { return Directive{Kind: AbsoluteHorizontal, Value: x} }

// RelV returns a relative vertical move by dy.
func RelV(dy float64) Directive { return Directive{Kind: RelativeVertical, Value: dy} }

// AbsV returns an absolute vertical move to y.
func AbsV(y float64) Directive { return Directive{Kind: AbsoluteVertical, Value: y} }

// String formats the directive as an SVG path command.
func (d Directive) String() string {
	return d.Kind.Letter() + " " + layout.FormatCoord(d.Value)
}

// Apply moves p by the directive.
func (d Directive) Apply(p layout.Point) layout.Point {
	switch d.Kind {
	case AbsoluteHorizontal:
		p.X = d.Value
	case RelativeVertical:
		p.Y += d.Value
	case AbsoluteVertical:
		p.Y = d.Value
	}
	return p
}

// Format renders directives in the route language accepted by Parse.
func Format(dirs []Directive) string {
	parts := make([]string, len(dirs))
	for i, d := range dirs {
		parts[i] = d.String()
	}
	return strings.Join(parts, " ")
}

var routeLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Number", Pattern: `[-+]?(\d+(\.\d*)?|\.\d+)`},
	{Name: "Letter", Pattern: `[A-Za-z]+`},
})

type routeAST struct {
	Steps []*stepAST `parser:"@@*"`
}

type stepAST struct {
	Pos    lexer.Position
	Letter string  `parser:"@Letter"`
	Value  float64 `parser:"@Number"`
}

var routeParser = participle.MustBuild[routeAST](
	participle.Lexer(routeLexer),
	participle.Elide("Whitespace", "Comma"),
)

// Parse reads a route such as "H 500, v 16, H 700". An empty string is a
// valid route with no directives.
func Parse(s string) ([]Directive, error) {
	ast, err := routeParser.ParseString("", s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidBoard, err, "parse route %q", s)
	}

	dirs := make([]Directive, 0, len(ast.Steps))
	for _, st := range ast.Steps {
		var k Kind
		switch st.Letter {
		case "H":
			k = AbsoluteHorizontal
		case "v":
			k = RelativeVertical
		case "V":
			k = AbsoluteVertical
		default:
			return nil, errors.New(errors.ErrCodeUnknownRouteDirective,
				"unknown direction %q at column %d in route %q", st.Letter, st.Pos.Column, s)
		}
		dirs = append(dirs, Directive{Kind: k, Value: st.Value})
	}
	return dirs, nil
}
