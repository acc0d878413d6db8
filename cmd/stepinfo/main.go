// Command stepinfo detects level steps in a single-channel recording and
// prints one row per step.
//
// Usage:
//
//	stepinfo [flags] [file]
//
// The input is a column of floating-point samples, one per line, or a CSV
// file combined with -column. Without a file argument samples are read
// from stdin.
//
// Examples:
//
//	stepinfo trace.txt
//	stepinfo -column 1 -width 50 -threshold 2.5 trace.csv
//	stepinfo -merge adjacent -tolerance 0.05 trace.txt
//	stepinfo -merge adaptive -csv trace.txt > steps.csv
package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-steps/steps"
	"gonum.org/v1/gonum/floats"
)

func main() {
	width := flag.Int("width", 30, "minimum step width in samples")
	smoothing := flag.Int("smoothing", 10, "Gaussian smoothing width before differentiation")
	threshold := flag.Float64("threshold", 3.0, "detection threshold in gradient standard deviations")
	column := flag.Int("column", -1, "CSV column index to read; -1 treats input as one value per line")
	merge := flag.String("merge", "none", "merge strategy: none, adjacent, cluster, dtw, adaptive")
	tolerance := flag.Float64("tolerance", 0.05, "level tolerance (adjacent) or base tolerance (adaptive)")
	epsFactor := flag.Float64("eps-factor", 0.5, "cluster radius as a fraction of the level deviation (cluster)")
	similarity := flag.Float64("similarity", 0.3, "DTW distance threshold per sample (dtw)")
	noiseFactor := flag.Float64("noise-factor", 2.0, "noise widening factor (adaptive)")
	minConfidence := flag.Float64("min-confidence", 0.3, "confidence floor (adaptive)")
	asCSV := flag.Bool("csv", false, "write CSV instead of a table")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: stepinfo [flags] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Detects level steps in a column of samples and prints one row per step.\n")
		fmt.Fprintf(os.Stderr, "Reads from stdin when no file is given.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  stepinfo trace.txt\n")
		fmt.Fprintf(os.Stderr, "  stepinfo -column 1 -threshold 2.5 trace.csv\n")
		fmt.Fprintf(os.Stderr, "  stepinfo -merge adjacent -tolerance 0.05 trace.txt\n")
	}
	flag.Parse()

	signal, err := readSignal(flag.Arg(0), *column)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	params := steps.DetectionParams{
		MinStepWidth:       *width,
		SmoothingWidth:     *smoothing,
		DetectionThreshold: *threshold,
	}

	merger, err := resolveMerger(*merge, *tolerance, *epsFactor, *similarity, *noiseFactor, *minConfidence)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	res, err := steps.DetectAndMerge(signal, params, merger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	list := res.Steps
	if merger != nil {
		list = res.Merged
	}

	fmt.Fprintf(os.Stderr, "%d samples, range [%.6g, %.6g], %d boundaries, %d steps\n",
		len(signal), floats.Min(signal), floats.Max(signal), len(res.Boundaries), len(list))

	if *asCSV {
		err = writeCSV(os.Stdout, list)
	} else {
		err = writeTable(os.Stdout, list)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func resolveMerger(name string, tolerance, epsFactor, similarity, noiseFactor, minConfidence float64) (steps.Merger, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return nil, nil
	case "adjacent":
		return steps.AdjacentTolerance{LevelTolerance: tolerance}, nil
	case "cluster":
		return steps.Clustering{EpsFactor: epsFactor}, nil
	case "dtw":
		return steps.DTWShape{SimilarityThreshold: similarity}, nil
	case "adaptive":
		return steps.AdaptiveHybrid{
			BaseTolerance: tolerance,
			NoiseFactor:   noiseFactor,
			MinConfidence: minConfidence,
		}, nil
	default:
		return nil, fmt.Errorf("unknown merge strategy %q", name)
	}
}

// readSignal loads one column of samples from path, or from stdin when
// path is empty.
func readSignal(path string, column int) ([]float64, error) {
	var r io.Reader = os.Stdin

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		r = f
	}

	if column >= 0 {
		return readCSVColumn(r, column)
	}

	return readLines(r)
}

func readLines(r io.Reader) ([]float64, error) {
	var out []float64

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 1024*1024), 1024*1024)

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", len(out)+1, err)
		}

		out = append(out, v)
	}

	return out, sc.Err()
}

func readCSVColumn(r io.Reader, column int) ([]float64, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var out []float64

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, err
		}

		if column >= len(record) {
			return nil, fmt.Errorf("row %d has no column %d", len(out)+1, column)
		}

		v, err := strconv.ParseFloat(strings.TrimSpace(record[column]), 64)
		if err != nil {
			// Skip a header row, fail on anything later.
			if len(out) == 0 {
				continue
			}

			return nil, fmt.Errorf("row %d: %w", len(out)+1, err)
		}

		out = append(out, v)
	}

	return out, nil
}

func writeTable(w io.Writer, list []steps.Step) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintf(tw, "#\tStart\tEnd\tStable\tLevel\tRMS\tRange\tZeros\tRefined\tConfidence\n"); err != nil {
		return err
	}

	for i := range list {
		s := &list[i]
		if _, err := fmt.Fprintf(tw, "%d\t%d\t%d\t%d..%d\t%.6g\t%.3g\t%.3g\t%d\t%v\t%.2f\n",
			i,
			s.Start,
			s.End,
			s.StableStart,
			s.StableEnd,
			s.Level,
			s.RMS,
			s.Range,
			s.ZeroCrossings,
			s.ThirdDerivRefined,
			s.Confidence(),
		); err != nil {
			return err
		}
	}

	return tw.Flush()
}

func writeCSV(w io.Writer, list []steps.Step) error {
	cw := csv.NewWriter(w)

	header := []string{
		"index", "start", "end", "stable_start", "stable_end",
		"level", "rms", "range", "duration", "stable_duration",
		"zero_crossings", "third_deriv_refined", "confidence",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := range list {
		s := &list[i]
		record := []string{
			strconv.Itoa(i),
			strconv.Itoa(s.Start),
			strconv.Itoa(s.End),
			strconv.Itoa(s.StableStart),
			strconv.Itoa(s.StableEnd),
			strconv.FormatFloat(s.Level, 'g', -1, 64),
			strconv.FormatFloat(s.RMS, 'g', -1, 64),
			strconv.FormatFloat(s.Range, 'g', -1, 64),
			strconv.Itoa(s.Duration()),
			strconv.Itoa(s.StableDuration()),
			strconv.Itoa(s.ZeroCrossings),
			strconv.FormatBool(s.ThirdDerivRefined),
			strconv.FormatFloat(s.Confidence(), 'f', 4, 64),
		}

		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}
