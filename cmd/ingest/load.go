package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cocodems/elections/ingest"
	"github.com/cocodems/elections/reconcile"
	"github.com/cocodems/elections/refdata"
)

type loadOptions struct {
	input         string
	electionName  string
	createPersons bool
	standardNames string
	unusualNames  string
}

func newLoadCmd(root *rootOptions) *cobra.Command {
	var opts loadOptions

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load canonical rows into the database in one transaction",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(cmd.Context(), opts, root.log)
		},
	}

	cmd.Flags().StringVar(&opts.input, "input", "", "Canonical rows CSV (required)")
	cmd.Flags().StringVar(&opts.electionName, "election-name", "", "Create the election with this name if it does not exist")
	cmd.Flags().BoolVar(&opts.createPersons, "create-persons", false, "Create an individual for every unmatched candidate")
	cmd.Flags().StringVar(&opts.standardNames, "standard-names", "", "Standardized names CSV (Alt Name, Standardized Name)")
	cmd.Flags().StringVar(&opts.unusualNames, "unusual-names", "", "Unusual names CSV (Full, First, Middle, Last)")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runLoad(ctx context.Context, opts loadOptions, log *zap.Logger) error {
	in, err := os.Open(opts.input)
	if err != nil {
		return err
	}
	rows, err := ingest.ReadCSV(in)
	in.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", opts.input, err)
	}

	standard, err := refdata.LoadStandardNames(opts.standardNames)
	if err != nil {
		return err
	}
	special, err := refdata.LoadSpecialNames(opts.unusualNames)
	if err != nil {
		return err
	}

	s, bdb, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer bdb.Close()

	sum, err := reconcile.Load(ctx, s, rows, reconcile.Options{
		ElectionName:         opts.electionName,
		CreateMissingPersons: opts.createPersons,
		Special:              special,
		Standard:             standard,
	}, log)
	if err != nil {
		return err
	}

	log.Info("load finished",
		zap.String("input", opts.input),
		zap.Int64s("elections", sum.Elections),
		zap.Int("elections_created", sum.ElectionsCreated),
		zap.Int("races", sum.Races),
		zap.Int("races_created", sum.RacesCreated),
		zap.Int("campaigns", sum.Campaigns),
		zap.Int64("campaigns_replaced", sum.CampaignsReplaced),
		zap.Int("people_matched", sum.PeopleMatched),
		zap.Int("people_created", sum.PeopleCreated),
		zap.Int("people_unresolved", sum.PeopleUnresolved),
	)
	return nil
}
