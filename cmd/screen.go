package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/screen-cli/internal/model"
)

var screenTicker string

var screenCmd = &cobra.Command{
	Use:   "screen <company name>",
	Short: "Screen a single company for executives and outreach emails",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("screen"); err != nil {
			return err
		}
		ctx := cmd.Context()

		company := model.Company{Ticker: screenTicker}
		if len(args) == 1 {
			company.Name = args[0]
		}
		if company.Name == "" && company.Ticker != "" {
			if table := loadTickerTable(); table != nil {
				company.Name = table.CompanyName(company.Ticker)
			}
		}
		if company.Name == "" {
			return eris.New("a company name or a resolvable --ticker is required")
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		run, err := st.CreateRun(ctx, company)
		if err != nil {
			return eris.Wrap(err, "create run")
		}
		if err := st.UpdateRunStatus(ctx, run.ID, model.RunRunning); err != nil {
			return eris.Wrap(err, "update run status")
		}

		result, err := initScreener().Run(ctx, company)
		if err != nil {
			if sErr := st.UpdateRunStatus(ctx, run.ID, model.RunFailed); sErr != nil {
				zap.L().Warn("failed to mark run failed", zap.Error(sErr))
			}
			return eris.Wrap(err, "screen run")
		}

		if err := st.UpdateRunResult(ctx, run.ID, result); err != nil {
			return eris.Wrap(err, "store run result")
		}

		zap.L().Info("screen complete",
			zap.String("run_id", run.ID),
			zap.String("company", company.Name),
			zap.String("treasurer_status", string(result.Treasurer.Status)),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	screenCmd.Flags().StringVar(&screenTicker, "ticker", "", "stock ticker (resolved via the SEC lookup table)")
	rootCmd.AddCommand(screenCmd)
}
