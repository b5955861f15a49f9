// cmd/ingest/main.go
// Turns county election result reports into canonical rows and loads them.
//
// Usage:
//
//	go run ./cmd/ingest seed --jurisdictions jurisdictions.csv --terms election_terms.csv
//	go run ./cmd/ingest extract --input results.txt --format legacy --output results.csv
//	go run ./cmd/ingest load --input results.csv --election-name "Spring Election"
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/cocodems/elections/config"
	"github.com/cocodems/elections/db"
	applog "github.com/cocodems/elections/logger"
	"github.com/cocodems/elections/store"
)

type rootOptions struct {
	debug bool
	log   *zap.Logger
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "ingest",
		Short:         "Extract, seed and load county election results",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := applog.New(opts.debug, "ingest")
			if err != nil {
				return err
			}
			opts.log = log.With(zap.String("run_id", uuid.NewString()), zap.String("command", cmd.Name()))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.log != nil {
				_ = opts.log.Sync()
			}
		},
	}
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Log at debug level")

	cmd.AddCommand(newExtractCmd(opts), newLoadCmd(opts), newSeedCmd(opts))
	return cmd
}

// openStore connects to the configured database and makes sure the schema exists.
func openStore(ctx context.Context) (*store.Store, *bun.DB, error) {
	cfg, err := config.LoadIngest()
	if err != nil {
		return nil, nil, err
	}
	bdb, err := db.Setup(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if err := db.CreateTables(ctx, bdb); err != nil {
		bdb.Close()
		return nil, nil, err
	}
	return store.New(bdb), bdb, nil
}
