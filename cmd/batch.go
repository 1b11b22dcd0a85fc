package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/screen-cli/internal/input"
	"github.com/sells-group/screen-cli/internal/model"
	"github.com/sells-group/screen-cli/internal/screen"
	"github.com/sells-group/screen-cli/internal/store"
	"github.com/sells-group/screen-cli/internal/ticker"
)

var batchLimit int

var batchCmd = &cobra.Command{
	Use:   "batch <roster.xlsx|roster.csv>",
	Short: "Screen companies from a roster file concurrently",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("batch"); err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		companies, err := input.ReadCompanies(args[0])
		if err != nil {
			return err
		}
		if batchLimit > 0 && len(companies) > batchLimit {
			companies = companies[:batchLimit]
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		return processBatch(ctx, companies, cfg.Batch.MaxConcurrentCompanies, st, loadTickerTable(), initScreener())
	},
}

func init() {
	batchCmd.Flags().IntVar(&batchLimit, "limit", 0, "max number of companies to process (0 = all)")
	rootCmd.AddCommand(batchCmd)
}

// processBatch screens companies concurrently, bounded by the configured
// concurrency. One company failing never aborts the batch; results stream
// to stdout as JSON lines.
func processBatch(ctx context.Context, companies []model.Company, concurrency int, st store.Store, table *ticker.Table, screener *screen.Screener) error {
	zap.L().Info("processing batch",
		zap.Int("companies", len(companies)),
		zap.Int("concurrency", concurrency),
	)

	enc := json.NewEncoder(os.Stdout)
	var encMu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var succeeded, failed atomic.Int64

	for _, company := range companies {
		company := company
		g.Go(func() error {
			if company.Name == "" && table != nil {
				company.Name = table.CompanyName(company.Ticker)
			}
			log := zap.L().With(zap.String("company", company.Name))
			if company.Name == "" {
				failed.Add(1)
				log.Error("skipping roster row with unresolvable ticker", zap.String("ticker", company.Ticker))
				return nil
			}

			run, err := st.CreateRun(gctx, company)
			if err != nil {
				failed.Add(1)
				log.Error("create run failed", zap.Error(err))
				return nil
			}

			result, err := screener.Run(gctx, company)
			if err != nil {
				failed.Add(1)
				log.Error("screen failed", zap.Error(err))
				if sErr := st.UpdateRunStatus(gctx, run.ID, model.RunFailed); sErr != nil {
					log.Warn("failed to mark run failed", zap.Error(sErr))
				}
				return nil
			}

			if err := st.UpdateRunResult(gctx, run.ID, result); err != nil {
				log.Warn("failed to store run result", zap.Error(err))
			}

			succeeded.Add(1)
			log.Info("screen complete",
				zap.String("treasurer_status", string(result.Treasurer.Status)),
			)

			encMu.Lock()
			err = enc.Encode(result)
			encMu.Unlock()
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return eris.Wrap(err, "batch processing")
	}

	zap.L().Info("batch complete",
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
	)
	return nil
}
