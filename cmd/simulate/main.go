package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

type CLI struct {
	Config  string `short:"c" help:"HCL table configuration file"`
	Hands   int    `help:"Override the number of hands per table"`
	Seed    int64  `default:"0" help:"RNG seed (0 for random)"`
	Verbose bool   `short:"v" help:"Verbose logging"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli)

	if cli.Seed == 0 {
		cli.Seed = time.Now().UnixNano()
	}

	var logger *log.Logger
	if cli.Verbose {
		logger = log.NewWithOptions(os.Stderr, log.Options{Level: log.DebugLevel})
	} else {
		logger = log.NewWithOptions(os.Stderr, log.Options{Level: log.WarnLevel})
	}

	config := DefaultConfig()
	if cli.Config != "" {
		loaded, err := LoadConfig(cli.Config)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			ctx.Exit(1)
		}
		config = loaded
	}
	if cli.Hands > 0 {
		for i := range config.Tables {
			config.Tables[i].Hands = cli.Hands
		}
	}

	fmt.Printf("Starting simulation: %d tables (seed: %d)\n", len(config.Tables), cli.Seed)

	startTime := time.Now()

	var g errgroup.Group
	results := make([]TableStats, len(config.Tables))
	for i, tc := range config.Tables {
		i, tc := i, tc
		g.Go(func() error {
			stats, err := runTable(logger.With("table", tc.Name), tc, cli.Seed+int64(i))
			if err != nil {
				return fmt.Errorf("table %s: %w", tc.Name, err)
			}
			results[i] = stats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Fatal("simulation failed", "err", err)
	}

	duration := time.Since(startTime)
	printResults(config, results, duration)
}

func printResults(config *Config, results []TableStats, duration time.Duration) {
	fmt.Printf("\n")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "table\tvariant\thands\tavg pot (bb)\tmax pot (bb)\tshowdown\tuncontested\tlows\n")

	totalHands := 0
	for i, stats := range results {
		tc := config.Tables[i]
		totalHands += stats.Hands

		avgPotBB := 0.0
		if stats.Hands > 0 {
			avgPotBB = float64(stats.PotVolume) / float64(stats.Hands) / float64(tc.BigBlind)
		}
		showdownPct := 0.0
		if stats.Hands > 0 {
			showdownPct = float64(stats.Showdowns) / float64(stats.Hands) * 100
		}

		fmt.Fprintf(w, "%s\t%s\t%d\t%.1f\t%.1f\t%.1f%%\t%d\t%d\n",
			tc.Name, tc.Variant, stats.Hands,
			avgPotBB, float64(stats.MaxPot)/float64(tc.BigBlind),
			showdownPct, stats.Uncontested, stats.LowsAwarded)
	}
	w.Flush()

	fmt.Printf("\n%d hands in %v (%.0f hands/sec)\n",
		totalHands, duration.Truncate(time.Millisecond),
		float64(totalHands)/duration.Seconds())
}
