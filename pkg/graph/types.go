package graph

// Node and edge type tags understood by the frontend.
const (
	NodeTypeSequence = "sequence"
	EdgeTypeArrow    = "arrow"
)

// Node is a positioned sequence node.
type Node struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Data     NodeData `json:"data"`
	Position Position `json:"position"`
}

// NodeData is the per-node payload. Fields are never omitted.
type NodeData struct {
	Sequence          string `json:"sequence"`
	PeptidesString    string `json:"peptidesString"`
	IntensitiesString string `json:"intensitiesString"`
	PeptideCount      string `json:"peptideCount"`
}

// Position is a layout hint in frontend coordinates.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Edge is a directed arrow between two sequence nodes.
type Edge struct {
	ID     string   `json:"id"`
	Source string   `json:"source"`
	Target string   `json:"target"`
	Type   string   `json:"type"`
	Data   EdgeData `json:"data"`
}

// EdgeData is the per-edge payload. Fields are never omitted.
type EdgeData struct {
	IsoformString     string `json:"isoformString"`
	Generic           string `json:"generic"`
	PeptidesString    string `json:"peptidesString"`
	IntensitiesString string `json:"intensitiesString"`
	PeptideCount      string `json:"peptideCount"`
}

// EdgeID returns the synthesized identifier for an edge from source to
// target. Parallel edges collide.
func EdgeID(source, target string) string {
	return "e" + source + "-" + target
}
