package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/LtHummus/spyparsey/internal/batch"
	"github.com/LtHummus/spyparsey/internal/config"
	"github.com/LtHummus/spyparsey/internal/filters"
	"github.com/LtHummus/spyparsey/internal/finder"
	"github.com/LtHummus/spyparsey/internal/logging"
	"github.com/LtHummus/spyparsey/internal/output"
	"github.com/LtHummus/spyparsey/internal/store"
	"github.com/LtHummus/spyparsey/internal/summary"
	"github.com/LtHummus/spyparsey/spyparty"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// flag name -> config key
var flagKeys = map[string]string{
	"players":      "players",
	"pair":         "pair",
	"spies":        "spies",
	"snipers":      "snipers",
	"maps":         "maps",
	"modes":        "modes",
	"results":      "results",
	"missions":     "missions",
	"missions-all": "missionsAll",
	"countdown":    "countdown",
	"spy-win":      "spyWin",
	"sniper-win":   "sniperWin",
	"count":        "count",
	"show-paths":   "showPaths",
	"csv":          "csv",
	"table":        "table",
	"format":       "format",
	"db":           "db",
	"workers":      "workers",
	"verbose":      "verbose",
	"log-level":    "logLevel",
}

// NewRootCmd builds the spyparsey command with its own viper instance.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "spyparsey [paths...]",
		Short: "Search and summarize SpyParty replays",
		Long: `spyparsey reads the headers of SpyParty replays, filters them and prints
a summary, a list or an export of the games that matched.

Paths are searched recursively for .replay files. Without any, the SpyParty
replay folder under LOCALAPPDATA is used.

Example:
  spyparsey --players plastikqs --maps balcony,pub ~/replays`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				v.Set("paths", args)
			}
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			log := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.Verbosity, isTerminal(cmd.ErrOrStderr()))
			return run(cmd.Context(), cfg, cmd.OutOrStdout(), log)
		},
	}

	f := rootCmd.Flags()
	f.StringVar(&cfgFile, "config", "", "Config file (json, yaml or toml)")

	f.StringSlice("players", nil, "Games with any of these players, in either role")
	f.StringSlice("pair", nil, "Games with all of these players")
	f.StringSlice("spies", nil, "Games where any of these players was the spy")
	f.StringSlice("snipers", nil, "Games where any of these players was the sniper")
	f.StringSlice("maps", nil, `Games on any of these maps ("unknown" for maps we don't know)`)
	f.StringSlice("modes", nil, `Games in any of these modes, e.g. "any" or "a4/8"`)
	f.StringSlice("results", nil, "Games with any of these results")
	f.StringSlice("missions", nil, "Games where any of these missions was completed")
	f.StringSlice("missions-all", nil, "Games where all of these missions were completed")
	f.Bool("countdown", false, "Games where the spy completed exactly the required missions")
	f.Bool("spy-win", false, "Games the spy won")
	f.Bool("sniper-win", false, "Games the sniper won")

	f.Bool("count", false, "Only print the number of matching replays")
	f.Bool("show-paths", false, "Print the paths of matching replays")
	f.Bool("csv", false, "Print matching replays as CSV")
	f.Bool("table", false, "Print per opponent records for --players or --pair")
	f.String("format", config.OutputSummary, "Output format: summary, json or yaml")
	f.String("db", "", "Also save matching replays to this SQLite file")

	f.IntP("workers", "w", 0, "Replays to parse at once (default number of CPUs)")
	f.CountP("verbose", "v", "More logging, repeat for even more")
	f.String("log-level", "warn", "Log level when -v isn't given")

	rootCmd.MarkFlagsMutuallyExclusive("players", "pair")
	rootCmd.MarkFlagsMutuallyExclusive("spy-win", "sniper-win")

	for name, key := range flagKeys {
		if err := v.BindPFlag(key, f.Lookup(name)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", name, err))
		}
	}

	return rootCmd
}

// Execute runs the command and exits 1 on failure. Ctrl-C cancels parsing.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, out io.Writer, log zerolog.Logger) error {
	mode := cfg.Output()
	players := cfg.Filters.Pair
	if len(players) == 0 {
		players = cfg.Filters.Players
	}
	if mode == config.OutputTable && len(players) == 0 {
		return output.ErrNoPlayers
	}

	paths, err := cfg.ReplayPaths()
	if err != nil {
		return err
	}
	log.Info().Strs("paths", paths).Msg("Looking for replays")

	files := finder.Find(paths, log)
	set := filters.Build(cfg.Filters, log)
	res, err := batch.New(cfg.Workers, set, log).Run(ctx, files)
	if err != nil {
		return err
	}
	log.Info().Msgf("Parsed %d out of %d replays, %d matched", res.Parsed, res.Found, len(res.Replays))

	if cfg.DB != "" {
		if err := save(cfg.DB, res.Replays, log); err != nil {
			return err
		}
	}

	switch mode {
	case config.OutputCount:
		return output.Count(out, res.Replays)
	case config.OutputPaths:
		return output.Paths(out, res.Replays)
	case config.OutputCSV:
		return output.CSV(out, res.Replays)
	case config.OutputTable:
		return output.Table(out, res.Replays, players)
	case config.OutputJSON:
		return output.JSON(out, res.Replays)
	case config.OutputYAML:
		return output.YAML(out, res.Replays)
	default:
		replays := make([]*spyparty.Replay, 0, len(res.Replays))
		for _, r := range res.Replays {
			replays = append(replays, r.Replay)
		}
		return output.Summary(out, summary.Collect(replays, cfg.Filters))
	}
}

func save(path string, replays []batch.MatchedReplay, log zerolog.Logger) error {
	st, err := store.Open(path, log)
	if err != nil {
		return err
	}
	defer st.Close()

	return st.Save(replays)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
