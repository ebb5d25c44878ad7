// bureauscrub — bureau credit-extract aggregation engine
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/kredmint/bureauscrub/api"
	"github.com/kredmint/bureauscrub/internal/config"
	"github.com/kredmint/bureauscrub/internal/pipeline"
	"github.com/kredmint/bureauscrub/internal/report"
	"github.com/kredmint/bureauscrub/internal/source"
	"github.com/kredmint/bureauscrub/internal/store"
	"github.com/kredmint/bureauscrub/pkg/utils"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bureauscrub",
	Short: "bureauscrub — bureau credit-extract aggregation engine",
	Long: `bureauscrub ingests raw bureau tradeline extracts, folds them into
per-customer aggregates, classifies the population, builds cohort and
revenue projections, and emits the dashboard view documents.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("bureauscrub %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Run Command ---

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the pipeline and emit view documents",
	Long: `Run the full pipeline: scan the tradeline extract, aggregate the
population, and write the view documents to the output directory.

Examples:
  bureauscrub run --input AR_sample.csv
  bureauscrub run --from-db --store --tag monthly-refresh
  bureauscrub run --input extract.csv --out ./data`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		outDir, _ := cmd.Flags().GetString("out")
		fromDB, _ := cmd.Flags().GetBool("from-db")
		persist, _ := cmd.Flags().GetBool("store")
		tag, _ := cmd.Flags().GetString("tag")
		noProgress, _ := cmd.Flags().GetBool("no-progress")
		htmlSummary, _ := cmd.Flags().GetBool("html")

		if input == "" {
			input = cfg.Input.CSVPath
		}
		if outDir == "" {
			outDir = cfg.Output.Dir
		}

		var src source.Source
		if fromDB || cfg.Input.Source == "postgres" {
			if cfg.DB.URL == "" {
				return fmt.Errorf("postgres input requires db.url (or BUREAUSCRUB_DB_URL)")
			}
			src = source.NewPostgresSource(cfg.DB.URL, cfg.Input.Table)
			log.Printf("reading tradelines from postgres table %s", cfg.Input.Table)
		} else {
			src = source.NewCSVSource(input)
			log.Printf("reading tradelines from %s", input)
		}

		ctx := cmd.Context()
		res, err := pipeline.Run(ctx, src, pipeline.Options{
			Policy:   cfg.Policy,
			Progress: !noProgress,
		})
		if err != nil {
			return fmt.Errorf("pipeline failed: %w", err)
		}

		log.Printf("scanned %d rows (%d dropped), %d customers, bureau date %s",
			res.Stats.Rows, res.Stats.Dropped, res.Stats.Customers,
			res.Population.BureauDate.Format("2006-01-02"))
		log.Printf("serviceable base %d of %d, year-1 AUM %s, net revenue %s",
			res.Funnel.SAM, res.Funnel.N0,
			utils.FormatINRCompact(res.Funnel.TotalAUMYear1),
			utils.FormatINRCompact(res.Funnel.TotalRevenueYear1))

		// Every output sink is attempted even when an earlier one fails;
		// the first failure is reported once all outputs have had their
		// chance.
		var firstErr error
		fail := func(err error) {
			log.Printf("output error: %v", err)
			if firstErr == nil {
				firstErr = err
			}
		}

		emitter := report.NewEmitter(outDir)
		if err := emitter.WriteAll(ctx, res.Views); err != nil {
			fail(fmt.Errorf("emit views: %w", err))
		} else {
			log.Printf("wrote view documents to %s", outDir)
		}

		if htmlSummary {
			if path, err := report.WriteSummary(outDir, res.Views); err != nil {
				fail(fmt.Errorf("render summary: %w", err))
			} else {
				log.Printf("wrote %s", path)
			}
		}

		if persist {
			if err := storeRun(ctx, res, tag); err != nil {
				fail(fmt.Errorf("store run: %w", err))
			}
		}

		return firstErr
	},
}

func storeRun(ctx context.Context, res *pipeline.Result, tag string) error {
	if cfg.DB.URL == "" {
		return fmt.Errorf("--store requires db.url (or BUREAUSCRUB_DB_URL)")
	}
	st, err := store.Open(ctx, cfg.DB.URL, cfg.DB.Schema)
	if err != nil {
		return err
	}
	defer st.Close()

	runID, err := st.SaveRun(ctx, res.Views, res.Population.BureauDate,
		res.Stats.Customers, res.Funnel.SAM, tag)
	if err != nil {
		return err
	}
	log.Printf("stored run %s", runID)
	return nil
}

func init() {
	runCmd.Flags().String("input", "", "CSV extract path (default from config)")
	runCmd.Flags().String("out", "", "output directory for view documents (default from config)")
	runCmd.Flags().Bool("from-db", false, "read tradelines from the postgres staging table")
	runCmd.Flags().Bool("store", false, "persist the run and views to postgres")
	runCmd.Flags().String("tag", "", "free-form tag stored with the run")
	runCmd.Flags().Bool("no-progress", false, "disable the scan progress bar")
	runCmd.Flags().Bool("html", false, "also write a single-file HTML summary")
}

// --- Serve Command (API Server) ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := api.NewServer(cfg)
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		log.Printf("starting bureauscrub API server on %s, serving views from %s", addr, cfg.Output.Dir)
		return srv.ListenAndServe(addr)
	},
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show system status and configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  bureauscrub — System Status")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version:       %s (%s)\n", version, commit)
		fmt.Printf("  Time (IST):    %s\n", utils.NowIST().Format("2006-01-02 15:04:05"))
		fmt.Println()

		fmt.Println("  Configuration:")
		fmt.Printf("    Input:         %s", cfg.Input.Source)
		if cfg.Input.Source == "postgres" {
			fmt.Printf(" (table: %s)", cfg.Input.Table)
		} else {
			fmt.Printf(" (%s)", cfg.Input.CSVPath)
		}
		fmt.Println()
		fmt.Printf("    Output Dir:    %s\n", cfg.Output.Dir)
		fmt.Printf("    API Server:    %s:%d\n", cfg.API.Host, cfg.API.Port)
		dbStatus := "not configured"
		if cfg.DB.URL != "" {
			dbStatus = fmt.Sprintf("configured (schema: %s)", cfg.DB.Schema)
		}
		fmt.Printf("    Postgres:      %s\n", dbStatus)
		fmt.Println()

		fmt.Println("  Policy:")
		fmt.Printf("    Anchor Codes:  %v\n", cfg.Policy.AnchorCodes)
		fmt.Printf("    Target Codes:  %v\n", cfg.Policy.TargetCodes)
		fmt.Printf("    Thin File:     < %d tradelines\n", cfg.Policy.ThinFileMin)
		fmt.Printf("    Golden Window: months %d-%d\n", cfg.Policy.Curve.GoldenMin, cfg.Policy.Curve.GoldenMax)
		fmt.Printf("    Target Pick:   %s\n", cfg.Policy.Curve.TargetPick)
		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}
