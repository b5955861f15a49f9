package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cocodems/elections/refdata"
)

type seedOptions struct {
	jurisdictions string
	terms         string
}

func newSeedCmd(root *rootOptions) *cobra.Command {
	var opts seedOptions

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load reference jurisdictions and offices; existing rows are kept",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), opts, root.log)
		},
	}

	cmd.Flags().StringVar(&opts.jurisdictions, "jurisdictions", "", "Jurisdictions CSV (Organization Name, ID)")
	cmd.Flags().StringVar(&opts.terms, "terms", "", "Election terms CSV (Jurisdiction, Office, Term (years))")

	return cmd
}

func runSeed(ctx context.Context, opts seedOptions, log *zap.Logger) error {
	if opts.jurisdictions == "" && opts.terms == "" {
		return errors.New("nothing to seed: pass --jurisdictions and/or --terms")
	}

	refs, err := refdata.LoadJurisdictions(opts.jurisdictions)
	if err != nil {
		return err
	}
	terms, err := refdata.LoadTermRows(opts.terms)
	if err != nil {
		return err
	}

	s, bdb, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer bdb.Close()

	added, err := s.SeedJurisdictions(ctx, refs)
	if err != nil {
		return err
	}
	log.Info("jurisdictions seeded", zap.Int("read", len(refs)), zap.Int64("added", added))

	offices, skipped, err := s.SeedOffices(ctx, terms)
	if err != nil {
		return err
	}
	for _, t := range skipped {
		log.Warn("office skipped, jurisdiction unknown", zap.String("jurisdiction", t.Jurisdiction), zap.String("office", t.Office))
	}
	log.Info("offices seeded", zap.Int("read", len(terms)), zap.Int64("added", offices), zap.Int("skipped", len(skipped)))
	return nil
}
