package graphml

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	apperrors "github.com/matzehuels/isograph/pkg/errors"
)

type xmlDocument struct {
	XMLName xml.Name   `xml:"graphml"`
	Keys    []xmlKey   `xml:"key"`
	Graphs  []xmlGraph `xml:"graph"`
}

type xmlKey struct {
	ID   string `xml:"id,attr"`
	For  string `xml:"for,attr"`
	Name string `xml:"attr.name,attr"`
	Type string `xml:"attr.type,attr"`
}

type xmlGraph struct {
	ID    string    `xml:"id,attr"`
	Nodes []xmlNode `xml:"node"`
	Edges []xmlEdge `xml:"edge"`
}

type xmlNode struct {
	ID   string    `xml:"id,attr"`
	Data []xmlData `xml:"data"`
}

type xmlEdge struct {
	ID     string    `xml:"id,attr"`
	Source string    `xml:"source,attr"`
	Target string    `xml:"target,attr"`
	Data   []xmlData `xml:"data"`
}

type xmlData struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

// keyDef is a resolved <key> declaration.
type keyDef struct {
	name   string
	typ    string
	domain string
}

func (k keyDef) appliesTo(domain string) bool {
	return k.domain == "" || k.domain == "all" || k.domain == domain
}

// ReadGraphML decodes a GraphML document from r.
//
// Only the first <graph> element is read. Nodes and edges are returned in
// document order. ReadGraphML fails with a PARSE_ERROR if:
//   - The XML is malformed or has no <graph> element
//   - A node has no id, a duplicate id, or no aminoacid attribute
//   - An edge references a node that is not declared
//   - A <data> element references an undeclared key
//   - A value does not match its key's attr.type
//   - A position attribute is not an integer
//
// ReadGraphML does not close r.
func ReadGraphML(r io.Reader) (*Document, error) {
	var raw xmlDocument
	if err := xml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeParse, err, "decode graphml")
	}
	if len(raw.Graphs) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeParse, "graphml has no <graph> element")
	}

	keys := make(map[string]keyDef, len(raw.Keys))
	for _, k := range raw.Keys {
		name := k.Name
		if name == "" {
			name = k.ID
		}
		keys[k.ID] = keyDef{name: name, typ: strings.ToLower(k.Type), domain: k.For}
	}

	g := raw.Graphs[0]
	doc := &Document{
		Nodes: make([]Node, 0, len(g.Nodes)),
		Edges: make([]Edge, 0, len(g.Edges)),
	}

	seen := make(map[string]bool, len(g.Nodes))
	for _, xn := range g.Nodes {
		if xn.ID == "" {
			return nil, apperrors.New(apperrors.ErrCodeParse, "node without id")
		}
		if seen[xn.ID] {
			return nil, apperrors.New(apperrors.ErrCodeParse, "duplicate node id %q", xn.ID)
		}
		seen[xn.ID] = true

		values, err := decodeData(keys, "node", xn.Data)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeParse, err, "node %s", xn.ID)
		}
		attrs, err := nodeAttrs(values)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeParse, err, "node %s", xn.ID)
		}
		doc.Nodes = append(doc.Nodes, Node{ID: xn.ID, Attrs: attrs})
	}

	for i, xe := range g.Edges {
		if !seen[xe.Source] || !seen[xe.Target] {
			return nil, apperrors.New(apperrors.ErrCodeParse,
				"edge %d (%s->%s) references an unknown node", i, xe.Source, xe.Target)
		}
		values, err := decodeData(keys, "edge", xe.Data)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeParse, err, "edge %s->%s", xe.Source, xe.Target)
		}
		doc.Edges = append(doc.Edges, Edge{
			ID:     xe.ID,
			Source: xe.Source,
			Target: xe.Target,
			Attrs:  edgeAttrs(values),
		})
	}

	return doc, nil
}

// ImportGraphML reads a GraphML file at path and returns the decoded document.
// A missing or unreadable file is reported as a PARSE_ERROR, like malformed
// content.
func ImportGraphML(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeParse, err, "open %s", path)
	}
	defer f.Close()
	return ReadGraphML(f)
}

// decodeData maps <data> children to typed values keyed by attribute name.
func decodeData(keys map[string]keyDef, domain string, data []xmlData) (map[string]Value, error) {
	values := make(map[string]Value, len(data))
	for _, d := range data {
		k, ok := keys[d.Key]
		if !ok {
			return nil, fmt.Errorf("undeclared key %q", d.Key)
		}
		if !k.appliesTo(domain) {
			continue
		}
		v, err := decodeValue(k.typ, d.Value)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", k.name, err)
		}
		values[k.name] = v
	}
	return values, nil
}

func decodeValue(typ, s string) (Value, error) {
	switch typ {
	case "int", "long":
		i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("invalid %s %q", typ, s)
		}
		return IntValue(i), nil
	case "float", "double":
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return Value{}, fmt.Errorf("invalid %s %q", typ, s)
		}
		return FloatValue(f), nil
	case "boolean":
		b, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(s)))
		if err != nil {
			return Value{}, fmt.Errorf("invalid boolean %q", s)
		}
		return BoolValue(b), nil
	default:
		return StringValue(s), nil
	}
}

func nodeAttrs(values map[string]Value) (NodeAttrs, error) {
	seq, ok := values[KeySequence]
	if !ok {
		return NodeAttrs{}, fmt.Errorf("missing required attribute %q", KeySequence)
	}
	attrs := NodeAttrs{
		Sequence:     seq.String(),
		Feature:      values[KeyFeature],
		Peptides:     values[KeyPeptides],
		Intensities:  values[KeyIntensities],
		PeptideCount: values[KeyPeptideCount],
	}
	if pv, ok := values[KeyPosition]; ok {
		p, ok := pv.Int()
		if !ok {
			return NodeAttrs{}, fmt.Errorf("attribute %s is not an integer: %q", KeyPosition, pv.String())
		}
		attrs.Position = &p
	}
	return attrs, nil
}

func edgeAttrs(values map[string]Value) EdgeAttrs {
	return EdgeAttrs{
		Isoforms:     values[KeyIsoforms],
		Generic:      values[KeyGeneric],
		Peptides:     values[KeyPeptides],
		Intensities:  values[KeyIntensities],
		PeptideCount: values[KeyPeptideCount],
	}
}
