package protgraph

import (
	"fmt"
	"path/filepath"
	"strings"

	apperrors "github.com/matzehuels/isograph/pkg/errors"
)

// Feature is a UniProt feature type the generator can expand into the graph.
type Feature string

const (
	FeatureVarSeq   Feature = "VAR_SEQ"
	FeatureVariant  Feature = "VARIANT"
	FeatureMutagen  Feature = "MUTAGEN"
	FeatureConflict Feature = "CONFLICT"
)

// Features lists every supported feature in argv order.
var Features = []Feature{FeatureVarSeq, FeatureVariant, FeatureMutagen, FeatureConflict}

// ParseFeature accepts a feature name in any case.
func ParseFeature(s string) (Feature, error) {
	f := Feature(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Features {
		if f == known {
			return f, nil
		}
	}
	return "", apperrors.New(apperrors.ErrCodeInvalidInput,
		"unknown feature %q (want one of VAR_SEQ, VARIANT, MUTAGEN, CONFLICT)", s)
}

// Aggregation selects how peptide intensities are combined.
type Aggregation string

const (
	AggregationNone   Aggregation = ""
	AggregationMedian Aggregation = "median"
	AggregationSum    Aggregation = "sum"
	AggregationMean   Aggregation = "mean"
)

// ParseAggregation accepts "", median, sum or mean.
func ParseAggregation(s string) (Aggregation, error) {
	switch a := Aggregation(strings.ToLower(strings.TrimSpace(s))); a {
	case AggregationNone, AggregationMedian, AggregationSum, AggregationMean:
		return a, nil
	}
	return "", apperrors.New(apperrors.ErrCodeInvalidInput,
		"unknown aggregation %q (want median, sum or mean)", s)
}

// StatisticsFile is the CSV the generator writes next to the graph.
const StatisticsFile = "statistics.csv"

// Options are the generator switches for one run.
type Options struct {
	Features      []Feature
	PeptideFile   string // CSV: Sample,Protein ID,Sequence,Intensity
	MetadataFile  string // CSV: Sample plus one column per grouping
	CompareColumn string // metadata column to compare samples by
	Intensity     bool
	Count         bool
	MergePeptides bool
	OAggregation  Aggregation
	MAggregation  Aggregation
}

// Validate rejects unknown enum values and option combinations the generator
// cannot honour.
func (o Options) Validate() error {
	for _, f := range o.Features {
		if _, err := ParseFeature(string(f)); err != nil {
			return err
		}
	}
	for _, a := range []Aggregation{o.OAggregation, o.MAggregation} {
		if _, err := ParseAggregation(string(a)); err != nil {
			return err
		}
	}
	if o.CompareColumn != "" && o.MetadataFile == "" {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "compare column requires a metadata file")
	}
	return nil
}

// aggregation returns the single aggregation passed to the generator.
// Both map onto the same switch; the overall one wins.
func (o Options) aggregation() Aggregation {
	if o.OAggregation != AggregationNone {
		return o.OAggregation
	}
	return o.MAggregation
}

// Args builds the generator argv (without the binary name) for entryPath,
// writing into outDir.
func (o Options) Args(entryPath, outDir string) []string {
	args := []string{
		"-egraphml", entryPath,
		fmt.Sprintf("--export_output_folder=%s", outDir),
		"-ft", string(FeatureVarSeq),
	}
	seen := map[Feature]bool{FeatureVarSeq: true}
	for _, f := range o.Features {
		f = Feature(strings.ToUpper(string(f)))
		if seen[f] {
			continue
		}
		seen[f] = true
		args = append(args, "-ft", string(f))
	}

	if o.PeptideFile != "" {
		args = append(args, "-sg", "-pf", o.PeptideFile)
	}
	if o.MetadataFile != "" {
		args = append(args, "-mf", o.MetadataFile)
	}
	if o.CompareColumn != "" {
		args = append(args, "-cc", o.CompareColumn)
	}
	if o.Intensity {
		args = append(args, "-int")
	}
	if o.Count {
		args = append(args, "-cpep")
	}
	if o.MergePeptides {
		args = append(args, "-mp")
	}
	if a := o.aggregation(); a != AggregationNone {
		args = append(args, "-oi", string(a))
	}

	return append(args, "-d", "skip", "-o", filepath.Join(outDir, StatisticsFile))
}
