// Command pennant runs prospect ranking passes from the command line.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/scoutline/pennant/internal/adapters/repository"
	engine "github.com/scoutline/pennant/internal/app"
	"github.com/scoutline/pennant/internal/config"
	"github.com/scoutline/pennant/internal/domain/dedupe"
	"github.com/scoutline/pennant/internal/simdata"
	"github.com/scoutline/pennant/pkg/logger"
	"github.com/scoutline/pennant/pkg/metrics"
)

const metricsReadHeaderTimeout = 5 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pennant",
		Short:         "Prospect performance aggregation and composite ranking",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRankCmd(), newSeedCmd())
	return root
}

func newRankCmd() *cobra.Command {
	var (
		season   int
		levels   []string
		topN     int
		asJSON   bool
		serveFor time.Duration
	)

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Run one ranking pass and print the standings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load(ctx)
			if err != nil {
				return err
			}
			if err := logger.Init(); err != nil {
				return err
			}
			if err := logger.SetLevelString(cfg.LogLevel); err != nil {
				return err
			}
			log := logger.Named("cli")

			if serveFor > 0 {
				srv := &http.Server{
					Addr:              cfg.Addr,
					Handler:           metricsMux(),
					ReadHeaderTimeout: metricsReadHeaderTimeout,
				}
				go func() {
					if serr := srv.ListenAndServe(); serr != nil && serr != http.ErrServerClosed {
						log.Warn(ctx, "metrics listener failed", logger.Error(serr))
					}
				}()
				defer func() {
					sctx, cancel := context.WithTimeout(context.Background(), metricsReadHeaderTimeout)
					defer cancel()
					_ = srv.Shutdown(sctx)
				}()
			}

			source, cleanup, err := rowSource(ctx, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			now := time.Now().UTC()
			if season == 0 {
				season = now.Year()
			}

			snap, err := source.FetchSnapshot(ctx, season, levels, now)
			if err != nil {
				return fmt.Errorf("fetch snapshot: %w", err)
			}

			eng, err := engine.FromConfig(cfg)
			if err != nil {
				return err
			}

			report, err := eng.Run(ctx, snap, now)
			if err != nil {
				return err
			}

			if serveFor > 0 {
				log.Info(ctx, "holding metrics listener open", logger.Duration("for", serveFor))
				time.Sleep(serveFor)
			}

			if asJSON {
				return renderJSON(cmd.OutOrStdout(), report, topN)
			}
			return renderTable(cmd.OutOrStdout(), report, topN)
		},
	}

	cmd.Flags().IntVar(&season, "season", 0, "season to rank (default: current year)")
	cmd.Flags().StringSliceVar(&levels, "levels", []string{"A", "A+", "AA"}, "levels to include")
	cmd.Flags().IntVar(&topN, "top", 50, "number of standings rows to print (0 = all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full report as JSON")
	cmd.Flags().DurationVar(&serveFor, "serve-metrics", 0, "keep the metrics endpoint up this long after the run")
	return cmd
}

func newSeedCmd() *cobra.Command {
	var (
		out     string
		seed    int64
		season  int
		levels  []string
		players int
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a deterministic synthetic population fixture",
		RunE: func(cmd *cobra.Command, _ []string) error {
			gen := simdata.New(
				simdata.WithSeed(seed),
				simdata.WithSeason(season),
				simdata.WithLevels(levels),
				simdata.WithPlayersPerLevel(players),
			)
			snap := gen.Generate(time.Now().UTC())
			if err := repository.WriteFixture(out, snap); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d players to %s\n", len(snap.Players), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "population.yaml", "fixture output path")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().IntVar(&season, "season", time.Now().UTC().Year(), "season to generate")
	cmd.Flags().StringSliceVar(&levels, "levels", []string{"A", "A+", "AA"}, "levels to populate")
	cmd.Flags().IntVar(&players, "players", 40, "players per level")
	return cmd
}

// rowSource picks the configured snapshot source: Postgres when a
// database URL is set, otherwise a YAML fixture.
func rowSource(ctx context.Context, cfg *config.Config) (repository.RowSource, func(), error) {
	newDeduper := func() dedupe.Deduper {
		return dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(cfg.DedupeSize))
	}
	switch {
	case cfg.DatabaseURL != "":
		src, err := repository.OpenPostgresSource(ctx, cfg.DatabaseURL,
			repository.WithPostgresDeduper(newDeduper))
		if err != nil {
			return nil, nil, err
		}
		return src, func() { _ = src.Close() }, nil
	case cfg.FixturePath != "":
		return repository.NewFixtureSource(cfg.FixturePath,
			repository.WithFixtureDeduper(newDeduper)), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("no row source configured: set database_url or fixture_path")
	}
}

func metricsMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}
