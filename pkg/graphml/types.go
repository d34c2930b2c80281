package graphml

import (
	"math"
	"strconv"
	"strings"
)

// Attribute names written by the graph generator.
const (
	KeySequence     = "aminoacid"
	KeyPosition     = "position"
	KeyFeature      = "feature"
	KeyPeptides     = "peptides"
	KeyIntensities  = "intensities"
	KeyPeptideCount = "peptide_count"
	KeyIsoforms     = "isoforms"
	KeyGeneric      = "generic"
)

// Document is a parsed isoform graph.
// It is owned by a single conversion and is not safe for concurrent mutation.
type Document struct {
	Nodes []Node
	Edges []Edge
}

// NodeCount returns the number of nodes.
func (d *Document) NodeCount() int { return len(d.Nodes) }

// EdgeCount returns the number of edges, parallel edges included.
func (d *Document) EdgeCount() int { return len(d.Edges) }

// Node is a sequence node. ID is opaque and copied verbatim into the output.
type Node struct {
	ID    string
	Attrs NodeAttrs
}

// NodeAttrs holds the recognised node attributes.
type NodeAttrs struct {
	Sequence     string
	Position     *int
	Feature      Value
	Peptides     Value
	Intensities  Value
	PeptideCount Value
}

// Edge is a directed transition between two nodes.
// ID is the GraphML edge id if the file declares one.
type Edge struct {
	ID     string
	Source string
	Target string
	Attrs  EdgeAttrs
}

// EdgeAttrs holds the recognised edge attributes.
type EdgeAttrs struct {
	Isoforms     Value
	Generic      Value
	Peptides     Value
	Intensities  Value
	PeptideCount Value
}

// Value is an optional scalar attribute. The zero Value is absent.
// The dynamic type of a present value follows the key's attr.type:
// string, int64, float64 or bool.
type Value struct {
	raw     any
	present bool
}

// StringValue returns a present string value.
func StringValue(s string) Value { return Value{raw: s, present: true} }

// IntValue returns a present integer value.
func IntValue(i int64) Value { return Value{raw: i, present: true} }

// FloatValue returns a present floating point value.
func FloatValue(f float64) Value { return Value{raw: f, present: true} }

// BoolValue returns a present boolean value.
func BoolValue(b bool) Value { return Value{raw: b, present: true} }

// Present reports whether the attribute was set.
func (v Value) Present() bool { return v.present }

// String coerces the value to its string form. Absent values are "".
// It never fails: booleans become "true"/"false", integers are decimal and
// floats use the shortest representation that round-trips.
func (v Value) String() string {
	if !v.present {
		return ""
	}
	switch x := v.raw.(type) {
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	}
	return ""
}

// Int interprets the value as an integer. Integral floats and numeric
// strings are accepted; ok is false for anything else.
func (v Value) Int() (n int, ok bool) {
	if !v.present {
		return 0, false
	}
	switch x := v.raw.(type) {
	case int64:
		return int(x), true
	case float64:
		if x != math.Trunc(x) || math.IsInf(x, 0) || math.IsNaN(x) {
			return 0, false
		}
		return int(x), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}
