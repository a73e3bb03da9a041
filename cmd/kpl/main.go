// Package main provides the kpl CLI: simulate a chase, list the roster or
// estimate the odds.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/xtding233/innings-sim/internal/commentary"
	"github.com/xtding233/innings-sim/internal/config"
	"github.com/xtding233/innings-sim/internal/innings"
	"github.com/xtding233/innings-sim/internal/logging"
	"github.com/xtding233/innings-sim/internal/match"
	"github.com/xtding233/innings-sim/internal/roster"
)

const defaultTrials = 10000

// options holds flag values for one command tree.
type options struct {
	configPath string
	configDir  string
	league     string
	fixture    string
	target     int
	overs      int
	seed       uint64
	batting    string
	lineup     []string
	color      bool
	verbose    bool

	trials  int
	workers int
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	o := &options{}
	rootCmd := &cobra.Command{
		Use:          "kpl",
		Short:        "Simulate a limited-overs chase ball by ball",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSimulate(cmd, o)
		},
	}
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&o.configPath, "config", config.DefaultConfigPath(), "TOML config file")
	pf.StringVar(&o.configDir, "config-dir", "", "roster directory (default: built-in roster)")
	pf.StringVar(&o.league, "league", "", "league layer under <config-dir>/leagues")
	pf.StringVar(&o.fixture, "fixture", "", "fixture layer within the league")
	pf.IntVar(&o.target, "target", 0, "runs to win (default: from roster)")
	pf.IntVar(&o.overs, "overs", 0, "overs in the innings (default: from roster)")
	pf.Uint64Var(&o.seed, "seed", 0, "random seed (default: random)")
	pf.StringVar(&o.batting, "batting", "", "batting team name")
	pf.StringSliceVar(&o.lineup, "lineup", nil, "batting order as player ids")
	pf.BoolVarP(&o.verbose, "verbose", "v", false, "log every ball to stderr")
	rootCmd.Flags().BoolVar(&o.color, "color", false, "color the commentary")

	rootCmd.AddCommand(newPlayersCmd(o))
	rootCmd.AddCommand(newOddsCmd(o))
	rootCmd.AddCommand(newConfigCmd(o))
	return rootCmd
}

func newPlayersCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "players",
		Short: "List the roster with outcome probabilities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlayers(cmd, o)
		},
	}
}

func newOddsCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "odds",
		Short: "Estimate win/tie/loss odds by Monte Carlo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOdds(cmd, o)
		},
	}
	cmd.Flags().IntVar(&o.trials, "trials", defaultTrials, "number of simulated innings")
	cmd.Flags().IntVar(&o.workers, "workers", 0, "parallel workers (default: GOMAXPROCS)")
	return cmd
}

func newConfigCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Write a commented config file if none exists and print its path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := o.configPath
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("failed to create config directory: %w", err)
			}
			if _, err := os.Stat(path); err != nil {
				if !os.IsNotExist(err) {
					return fmt.Errorf("failed to stat config: %w", err)
				}
				if err := os.WriteFile(path, []byte(config.Template()), 0o644); err != nil {
					return fmt.Errorf("failed to write config: %w", err)
				}
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
}

// applyFileConfig fills flags the user did not set from the TOML file.
func applyFileConfig(cmd *cobra.Command, o *options) (config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	m := fileCfg.Match
	applyIntConfig(cmd, "target", &o.target, m.Target)
	applyIntConfig(cmd, "overs", &o.overs, m.Overs)
	applyStringConfig(cmd, "config-dir", &o.configDir, m.ConfigDir)
	applyStringConfig(cmd, "league", &o.league, m.League)
	applyStringConfig(cmd, "fixture", &o.fixture, m.Fixture)
	applyBoolConfig(cmd, "color", &o.color, m.Color)
	applyIntConfig(cmd, "trials", &o.trials, fileCfg.Odds.Trials)
	applyIntConfig(cmd, "workers", &o.workers, fileCfg.Odds.Workers)
	return fileCfg, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

// setup loads config and roster and builds the service for one command.
func setup(cmd *cobra.Command, o *options) (*match.Service, match.Request, error) {
	fileCfg, err := applyFileConfig(cmd, o)
	if err != nil {
		return nil, match.Request{}, err
	}
	level := "warn"
	if o.verbose {
		level = "debug"
	}
	logger, err := logging.New(level, true)
	if err != nil {
		return nil, match.Request{}, err
	}
	raw, reg, err := roster.Source(o.configDir, o.league, o.fixture)
	if err != nil {
		return nil, match.Request{}, err
	}

	// unset target and overs fall through to the roster's match settings
	var req match.Request
	if cmd.Flags().Changed("target") || fileCfg.Match.Target != nil {
		req.Target = &o.target
	}
	if cmd.Flags().Changed("overs") || fileCfg.Match.Overs != nil {
		req.Overs = &o.overs
	}
	if cmd.Flags().Changed("seed") {
		req.Seed = &o.seed
	}
	if o.batting != "" {
		req.Batting = &o.batting
	}
	req.Lineup = o.lineup
	return match.New(raw, reg, logger), req, nil
}

func runSimulate(cmd *cobra.Command, o *options) error {
	svc, req, err := setup(cmd, o)
	if err != nil {
		return err
	}
	m, err := svc.Prepare(req)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	style := commentary.Style{}
	if o.color {
		style = commentary.TerminalStyle(out)
	}
	c := commentary.New(out, style)
	if _, err := m.Play(c); err != nil {
		return err
	}
	if err := c.Err(); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.ErrOrStderr(), "seed %d\n", m.Seed)
	return err
}

func runPlayers(cmd *cobra.Command, o *options) error {
	svc, _, err := setup(cmd, o)
	if err != nil {
		return err
	}
	headers := []string{"ID", "Name"}
	for _, oc := range innings.Outcomes {
		headers = append(headers, oc.String())
	}
	t := table.New().Border(lipgloss.NormalBorder()).Headers(headers...)
	for _, p := range svc.Players() {
		total := 0
		for _, w := range p.Weights {
			total += w
		}
		row := []string{p.ID, p.Name}
		for _, w := range p.Weights {
			row = append(row, strconv.FormatFloat(100*float64(w)/float64(total), 'f', 0, 64)+"%")
		}
		t.Row(row...)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), t.Render())
	return err
}

func runOdds(cmd *cobra.Command, o *options) error {
	svc, req, err := setup(cmd, o)
	if err != nil {
		return err
	}
	rep, err := svc.Odds(cmd.Context(), req, o.trials, o.workers)
	if err != nil {
		return err
	}
	odds := rep.Odds
	w := cmd.OutOrStdout()
	fx := rep.Fixture
	fmt.Fprintf(w, "%s need %d in %d overs (%d trials, seed %d)\n", fx.Batting, fx.Target, fx.Overs, odds.Trials, rep.Seed)
	fmt.Fprintf(w, "win  %5.1f%%\n", 100*odds.WinRate)
	fmt.Fprintf(w, "tie  %5.1f%%\n", 100*odds.TieRate)
	fmt.Fprintf(w, "loss %5.1f%% (all out %d)\n", 100*odds.LossRate, odds.AllOut)
	_, err = fmt.Fprintf(w, "score mean %.1f sd %.1f p50 %.0f p90 %.0f p99 %.0f\n",
		odds.Score.Mean, odds.Score.StdDev, odds.Score.P50, odds.Score.P90, odds.Score.P99)
	return err
}
