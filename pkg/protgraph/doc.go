// Package protgraph runs the external ProtGraph generator that turns a
// UniProt flat-file entry into an isoform GraphML graph.
//
// # Options
//
// [Options] mirrors the generator's command-line switches with typed fields:
//
//	opts := protgraph.Options{
//	    Features:     []protgraph.Feature{protgraph.FeatureVariant},
//	    PeptideFile:  "uploads/peptides.csv",
//	    Intensity:    true,
//	    OAggregation: protgraph.AggregationMedian,
//	}
//	if err := opts.Validate(); err != nil {
//	    return err
//	}
//
// VAR_SEQ is always requested, whether or not it is listed.
//
// # Running
//
// [Runner] executes the binary directly (never through a shell) with a
// bounded runtime:
//
//	r := protgraph.NewRunner("protgraph", 5*time.Minute, logger)
//	graphPath, err := r.Run(ctx, "downloads/P04637.txt", "data", opts)
//
// The generator writes <outDir>/<accession>.graphml plus a statistics CSV.
// A non-zero exit, a timeout or a missing output file is a GENERATION_ERROR
// carrying the generator's stderr.
package protgraph
