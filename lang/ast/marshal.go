package ast

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// MarshalJSON implements json.Marshaler for Program.
func (p *Program) MarshalJSON() ([]byte, error) {
	return json.Marshal(ToMap(p))
}

// ToMap converts n to nested maps and slices of native Go values.
// Every map has a "kind" key and, when known, a "range" key holding
// [start, end].
func ToMap(n Node) map[string]any {
	if isNil(n) {
		return nil
	}

	m := map[string]any{"kind": n.Kind().String()}

	if r := n.Range(); r != nil {
		m["range"] = []int{r.Start, r.End}
	}

	switch n := n.(type) {
	case *Program:
		m["statements"] = mapAll(n.statements)
	case *Block:
		m["statements"] = mapAll(n.statements)
	case *Statement:
		m["children"] = mapAll(n.children)
	case *Expression:
		m["value"] = ToMap(n.value)
		m["terminated"] = n.terminated
	case *List:
		m["items"] = mapAll(n.items)
	case *Dict:
		m["pairs"] = mapAll(n.pairs)
	case *IfStatement:
		m["conditions"] = mapAll(n.conditions)
		m["actions"] = mapAll(n.actions)
	case *ForInLoop:
		m["pattern"] = ToMap(n.pattern)
		m["terms"] = ToMap(n.terms)
		m["block"] = ToMap(n.block)
	case *Template:
		m["variant"] = n.variant.String()
		m["tag"] = ToMap(n.tag)
		m["attributes"] = mapAll(n.attributes)
		m["arguments"] = mapAll(n.arguments)
		m["children"] = mapAll(n.children)
	case *Pair:
		m["key"] = ToMap(n.key)
		m["value"] = ToMap(n.value)
	case *InfixExpression:
		m["operator"] = n.operator
		m["left"] = ToMap(n.left)
		m["right"] = ToMap(n.right)
	case *PrefixExpression:
		m["operator"] = n.operator
		m["operand"] = ToMap(n.operand)
	case *SuffixExpression:
		m["operator"] = n.operator
		m["operand"] = ToMap(n.operand)
	case *CallExpression:
		m["callee"] = ToMap(n.callee)
		m["arguments"] = mapAll(n.arguments)
	case *IndexExpression:
		m["target"] = ToMap(n.target)
		m["index"] = ToMap(n.index)
	case *Boolean:
		m["value"] = n.value
	case *String:
		m["value"] = n.value
	case *Number:
		m["value"] = n.text
	case *Symbol:
		m["value"] = n.Segments()
	case *Text:
		m["value"] = n.text
	}

	return m
}

func mapAll[N Node](nodes []N) []any {
	out := make([]any, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, ToMap(n))
	}

	return out
}

// FormatJSON writes n as JSON to w.
// A positive indent selects multi-line output.
func FormatJSON(_ context.Context, w io.Writer, n Node, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(ToMap(n), "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(ToMap(n))
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes n as YAML to w.
// A non-positive indent selects flow style.
func FormatYAML(ctx context.Context, w io.Writer, n Node, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent), yaml.IndentSequence(true))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, ToMap(n), opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}
