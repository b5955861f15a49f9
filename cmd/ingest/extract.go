package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cocodems/elections/classify"
	"github.com/cocodems/elections/ingest"
	"github.com/cocodems/elections/names"
	"github.com/cocodems/elections/refdata"
	"github.com/cocodems/elections/report"
)

type extractOptions struct {
	input         string
	format        string
	output        string
	date          string
	startMarker   string
	county        string
	standardNames string
	alders        string
	unusualNames  string
	terms         string
	jurisdictions string
	offline       bool
}

func newExtractCmd(root *rootOptions) *cobra.Command {
	var opts extractOptions

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Parse a results report into canonical rows (CSV or XLSX)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd.Context(), opts, root.log)
		},
	}

	cmd.Flags().StringVar(&opts.input, "input", "", "Report text file (required)")
	cmd.Flags().StringVar(&opts.format, "format", "legacy", fmt.Sprintf("Report format: %s", strings.Join(report.FormatTags(), ", ")))
	cmd.Flags().StringVar(&opts.output, "output", "", "Output file, .csv or .xlsx (default: stdout as CSV)")
	cmd.Flags().StringVar(&opts.date, "date", "", "Election date, overrides the report header (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.startMarker, "start-marker", "", "Discard report text before this line (pdftext only)")
	cmd.Flags().StringVar(&opts.county, "county", "Columbia County", "County that owns county-level offices")
	cmd.Flags().StringVar(&opts.standardNames, "standard-names", "", "Standardized names CSV (Alt Name, Standardized Name)")
	cmd.Flags().StringVar(&opts.alders, "alders", "", "Alderpersons CSV (Name, City)")
	cmd.Flags().StringVar(&opts.unusualNames, "unusual-names", "", "Unusual names CSV (Full, First, Middle, Last)")
	cmd.Flags().StringVar(&opts.terms, "terms", "", "Election terms CSV, used when --offline")
	cmd.Flags().StringVar(&opts.jurisdictions, "jurisdictions", "", "Jurisdictions CSV for title matching, used when --offline")
	cmd.Flags().BoolVar(&opts.offline, "offline", false, "Do not consult the database for reference names, terms or people")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runExtract(ctx context.Context, opts extractOptions, log *zap.Logger) error {
	f, err := reportFormat(opts)
	if err != nil {
		return err
	}

	var date time.Time
	if opts.date != "" {
		if date, err = ingest.ParseDate(opts.date); err != nil {
			return fmt.Errorf("invalid --date: %w", err)
		}
	}

	text, err := os.ReadFile(opts.input)
	if err != nil {
		return err
	}
	doc, err := report.Parse(string(text), f, log)
	if err != nil {
		return fmt.Errorf("%s: %w", opts.input, err)
	}

	standard, err := refdata.LoadStandardNames(opts.standardNames)
	if err != nil {
		return err
	}
	alders, err := refdata.LoadAlders(opts.alders)
	if err != nil {
		return err
	}
	special, err := refdata.LoadSpecialNames(opts.unusualNames)
	if err != nil {
		return err
	}

	clsOpts := classify.Options{County: opts.county, Standard: standard, Alders: alders}
	p := &ingest.Pipeline{Excluded: ingest.DefaultExcludedRaces, Log: log}

	if opts.offline {
		rows, err := refdata.LoadTermRows(opts.terms)
		if err != nil {
			return err
		}
		refs, err := refdata.LoadJurisdictions(opts.jurisdictions)
		if err != nil {
			return err
		}
		clsOpts.Jurisdictions, clsOpts.Offices = offlineReferenceNames(refs, rows)
		p.Terms = ingest.StaticTerms(refdata.TermsFrom(rows))
		p.Resolver = names.NewResolver(nil, special, standard, log)
	} else {
		s, bdb, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer bdb.Close()

		if clsOpts.Jurisdictions, clsOpts.Offices, err = s.ReferenceNames(ctx); err != nil {
			return err
		}
		p.Terms = s
		p.Resolver = names.NewResolver(s, special, standard, log)
	}
	p.Classifier = classify.New(clsOpts)

	rows, st, err := p.Rows(ctx, doc, date)
	if err != nil {
		return err
	}

	if err := writeRows(opts.output, rows); err != nil {
		return err
	}

	log.Info("extract finished",
		zap.String("input", opts.input),
		zap.String("format", doc.Format),
		zap.Int("races", st.Races),
		zap.Int("excluded", st.Excluded),
		zap.Int("skipped_blocks", doc.Skipped),
		zap.Int("skipped_lines", doc.UnmatchedLines),
		zap.Int("rows", st.Rows),
		zap.Int("resolved", st.Resolved),
	)
	return nil
}

// offlineReferenceNames gives the classifier the same lists the database
// would: jurisdiction names and distinct office names.
func offlineReferenceNames(refs []refdata.JurisdictionRef, terms []refdata.TermRow) (jurisdictions, offices []string) {
	for _, r := range refs {
		jurisdictions = append(jurisdictions, r.Name)
	}
	seen := map[string]bool{}
	for _, t := range terms {
		if key := refdata.NameKey(t.Office); !seen[key] {
			seen[key] = true
			offices = append(offices, t.Office)
		}
	}
	return jurisdictions, offices
}

func reportFormat(opts extractOptions) (report.Format, error) {
	if opts.format == "pdftext" {
		return report.NewPDFText(opts.startMarker), nil
	}
	return report.FormatFor(opts.format)
}

// writeRows writes CSV to stdout or to output, or XLSX when output ends in .xlsx.
func writeRows(output string, rows []ingest.Row) error {
	if output == "" {
		return ingest.WriteCSV(os.Stdout, rows)
	}

	out, err := os.Create(output)
	if err != nil {
		return err
	}

	var write func(io.Writer, []ingest.Row) error = ingest.WriteCSV
	if strings.EqualFold(filepath.Ext(output), ".xlsx") {
		write = ingest.WriteXLSX
	}
	if err := write(out, rows); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", output, err)
	}
	return out.Close()
}
