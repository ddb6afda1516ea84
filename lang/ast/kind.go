package ast

import "strconv"

// Kind identifies the variant of a [Node].
type Kind int

const (
	KindInvalid Kind = iota

	// Homogeneous children.
	KindProgram
	KindBlock
	KindStatement
	KindExpression
	KindList
	KindDict

	// Named fields.
	KindIfStatement
	KindForInLoop
	KindTemplate
	KindPair
	KindInfixExpression
	KindPrefixExpression
	KindSuffixExpression
	KindCallExpression
	KindIndexExpression

	// Scalars.
	KindNull
	KindBoolean
	KindString
	KindNumber
	KindSymbol
	KindText
)

var kindNames = [...]string{
	KindInvalid:          "Invalid",
	KindProgram:          "Program",
	KindBlock:            "Block",
	KindStatement:        "Statement",
	KindExpression:       "Expression",
	KindList:             "List",
	KindDict:             "Dict",
	KindIfStatement:      "IfStatement",
	KindForInLoop:        "ForInLoop",
	KindTemplate:         "Template",
	KindPair:             "Pair",
	KindInfixExpression:  "InfixExpression",
	KindPrefixExpression: "PrefixExpression",
	KindSuffixExpression: "SuffixExpression",
	KindCallExpression:   "CallExpression",
	KindIndexExpression:  "IndexExpression",
	KindNull:             "Null",
	KindBoolean:          "Boolean",
	KindString:           "String",
	KindNumber:           "Number",
	KindSymbol:           "Symbol",
	KindText:             "Text",
}

// String returns the stable name of the kind.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// IsScalar reports whether nodes of kind k carry only an inline value.
func (k Kind) IsScalar() bool {
	return k >= KindNull && k <= KindText
}

// Variant classifies a [Template] by how its tag was terminated.
type Variant int

const (
	// SelfClose is a tag ended by "/>" or a void element ended by ">".
	SelfClose Variant = iota
	// OpenClose is a tag with a body and a matching close tag.
	OpenClose
	// HtmlBad is a tag-like fragment that could not be classified.
	HtmlBad
)

// String returns the name of the variant.
func (v Variant) String() string {
	switch v {
	case SelfClose:
		return "SelfClose"
	case OpenClose:
		return "OpenClose"
	case HtmlBad:
		return "HtmlBad"
	default:
		return "Variant(" + strconv.Itoa(int(v)) + ")"
	}
}
