// Package pkg provides the core libraries for isograph, a converter from
// protein-isoform graphs to viewer-ready JSON.
//
// # Overview
//
// Isoform graphs are produced by the external protgraph generator as GraphML.
// isograph reads them, projects every node and edge onto the flat schema the
// isoform viewer loads, assigns layout positions and writes nodes.json and
// edges.json. A bounded ledger tracks which proteins were generated most
// recently and deletes the files of the oldest once it is full.
//
// # Architecture
//
// The typical data flow:
//
//	protein token (TP53, P53_HUMAN, P04637)
//	         ↓
//	    [resolver] package (canonical UniProt accession + entry download)
//	         ↓
//	    [protgraph] package (external generator → .graphml)
//	         ↓
//	    [graphml] package (attributed graph reader)
//	         ↓
//	    [graph] package (schema projection + layout positions)
//	         ↓
//	    [io] package (nodes.json + edges.json)
//	         ↓
//	    [retention] package (ledger touch + eviction)
//
// [pipeline] chains these steps for the CLI.
//
// # Quick Start
//
// Convert a graph that already exists in the data directory:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/isograph/pkg/pipeline"
//	    "github.com/matzehuels/isograph/pkg/retention"
//	)
//
//	store, _ := retention.NewFileStore("data/last_n_protein_ids.json", retention.DefaultLockTimeout)
//	runner := pipeline.NewRunner(retention.New(store, retention.DefaultCapacity), pipeline.Dirs{}, nil)
//	result, _ := runner.ConvertFile(context.Background(), "P04637.graphml")
//
// # Main Packages
//
// ## Conversion
//
// [graphml] - Reads GraphML with typed <key> declarations into a document
// that keeps node order, edge order and parallel edges.
//
// [graph] - The output schema and the projection onto it. Also assigns x/y
// positions from the generator's position attribute.
//
// [io] - Writes and reads the nodes.json and edges.json artifacts atomically.
//
// ## Retention
//
// [retention] - Bounded most-recently-used ledger of protein ids stored as
// {"last_n_protein_ids": [...]}. File, Redis and MongoDB stores.
//
// ## External Services
//
// [integrations] - HTTP client base with retries, a circuit breaker and
// response caching. [integrations/uniprot] talks to the UniProt REST API.
//
// [resolver] - Maps accessions, entry names and gene names to a canonical
// accession, collapsing concurrent lookups of the same token.
//
// [protgraph] - Builds the generator's command line and runs it.
//
// [cache] - Response cache backends (file, Redis, null).
//
// [httputil] - Retry with backoff and cached JSON helpers.
//
// ## Rendering
//
// [render/nodelink] - Graphviz previews of converted graphs.
//
// [render] - SVG to PDF and PNG conversion.
//
// ## Support
//
// [config] - TOML and environment configuration.
//
// [errors] - Coded errors shared by every package.
//
// [observability] - Hook interfaces for conversion, retention, resolution
// and HTTP events, with a Prometheus implementation in observability/prom.
//
// [buildinfo] - Version information set at link time.
//
// [graphml]: github.com/matzehuels/isograph/pkg/graphml
// [graph]: github.com/matzehuels/isograph/pkg/graph
// [io]: github.com/matzehuels/isograph/pkg/io
// [retention]: github.com/matzehuels/isograph/pkg/retention
// [integrations]: github.com/matzehuels/isograph/pkg/integrations
// [integrations/uniprot]: github.com/matzehuels/isograph/pkg/integrations/uniprot
// [resolver]: github.com/matzehuels/isograph/pkg/resolver
// [protgraph]: github.com/matzehuels/isograph/pkg/protgraph
// [cache]: github.com/matzehuels/isograph/pkg/cache
// [httputil]: github.com/matzehuels/isograph/pkg/httputil
// [render/nodelink]: github.com/matzehuels/isograph/pkg/render/nodelink
// [render]: github.com/matzehuels/isograph/pkg/render
// [config]: github.com/matzehuels/isograph/pkg/config
// [errors]: github.com/matzehuels/isograph/pkg/errors
// [observability]: github.com/matzehuels/isograph/pkg/observability
// [buildinfo]: github.com/matzehuels/isograph/pkg/buildinfo
// [pipeline]: github.com/matzehuels/isograph/pkg/pipeline
package pkg
