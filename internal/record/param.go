package record

import (
	"strconv"
	"strings"
)

// Kind tags the variant held by a Param.
type Kind int

const (
	// KindOmitted is the `$` placeholder for an unset optional attribute.
	KindOmitted Kind = iota
	// KindDerived is the `*` placeholder for a derived attribute.
	KindDerived
	// KindRef is an `#<n>` entity reference.
	KindRef
	// KindString is a quoted string literal.
	KindString
	// KindEnum is an enumeration token such as `.T.` or `.MILLI.`.
	KindEnum
	// KindNumber is an integer or real literal.
	KindNumber
	// KindList is a parenthesized aggregate `( … )`.
	KindList
	// KindTyped is a typed parameter such as `LENGTH_MEASURE(1.E-07)`.
	KindTyped
)

var kindNames = map[Kind]string{
	KindOmitted: "omitted",
	KindDerived: "derived",
	KindRef:     "ref",
	KindString:  "string",
	KindEnum:    "enum",
	KindNumber:  "number",
	KindList:    "list",
	KindTyped:   "typed",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Param is one parsed argument of a record. Exactly one of the payload
// fields is meaningful, selected by Kind:
//   - Ref for KindRef
//   - Text for KindString (unquoted), KindEnum (without dots) and KindTyped (the type name)
//   - Number for KindNumber
//   - Items for KindList and KindTyped
type Param struct {
	Kind   Kind
	Raw    string
	Ref    ID
	Text   string
	Number float64
	Items  []Param
}

// NewRef builds a reference parameter.
func NewRef(id ID) Param {
	return Param{Kind: KindRef, Raw: id.String(), Ref: id}
}

// NewString builds a string parameter from its unquoted value.
func NewString(s string) Param {
	return Param{Kind: KindString, Raw: "'" + strings.ReplaceAll(s, "'", "''") + "'", Text: s}
}

// NewNumber builds a numeric parameter.
func NewNumber(f float64) Param {
	return Param{Kind: KindNumber, Raw: strconv.FormatFloat(f, 'G', -1, 64), Number: f}
}

// NewEnum builds an enumeration parameter from its bare name.
func NewEnum(name string) Param {
	return Param{Kind: KindEnum, Raw: "." + name + ".", Text: name}
}

// NewList builds an aggregate parameter.
func NewList(items ...Param) Param {
	raws := make([]string, len(items))
	for i, it := range items {
		raws[i] = it.Raw
	}
	return Param{Kind: KindList, Raw: "(" + strings.Join(raws, ",") + ")", Items: items}
}

// IsEmptyString reports whether p is a string literal with no characters.
func (p Param) IsEmptyString() bool {
	return p.Kind == KindString && p.Text == ""
}

// Refs returns every reference contained in p, depth first, in source order.
func (p Param) Refs() []ID {
	var out []ID
	p.collectRefs(&out)
	return out
}

func (p Param) collectRefs(out *[]ID) {
	switch p.Kind {
	case KindRef:
		*out = append(*out, p.Ref)
	case KindList, KindTyped:
		for _, it := range p.Items {
			it.collectRefs(out)
		}
	}
}

// Bool interprets a logical enumeration. `.T.` is true; `.F.` and `.U.` are false.
func (p Param) Bool() (bool, bool) {
	if p.Kind != KindEnum {
		return false, false
	}
	switch p.Text {
	case "T":
		return true, true
	case "F", "U":
		return false, true
	}
	return false, false
}

// Float returns the numeric value of p. A typed parameter wrapping a single
// number (e.g. `LENGTH_MEASURE(2.5)`) yields the wrapped value.
func (p Param) Float() (float64, bool) {
	switch p.Kind {
	case KindNumber:
		return p.Number, true
	case KindTyped:
		if len(p.Items) == 1 {
			return p.Items[0].Float()
		}
	}
	return 0, false
}
