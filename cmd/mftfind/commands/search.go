package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/mftfind/mftfind/internal/cliutil"
	"github.com/mftfind/mftfind/internal/config"
	"github.com/mftfind/mftfind/internal/coordinator"
	"github.com/mftfind/mftfind/internal/logging"
	"github.com/mftfind/mftfind/internal/metrics"
	"github.com/mftfind/mftfind/internal/predicate"
	"github.com/mftfind/mftfind/internal/search"
	"github.com/mftfind/mftfind/internal/volume"
)

type searchFlags struct {
	regex       bool
	folders     bool
	volumeFlag  string
	distance    int
	noStats     bool
	stats       bool
	configPath  string
	sortResults bool
	metricsAddr string
	logLevel    string
	logFormat   string
}

var flags searchFlags

func registerSearchFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&flags.regex, "regex", false, "treat NAME as a regular expression")
	cmd.Flags().BoolVar(&flags.folders, "folders", false, "match directories instead of files")
	cmd.Flags().StringVar(&flags.volumeFlag, "volume", "", "restrict the search to a single drive letter")
	cmd.Flags().IntVar(&flags.distance, "distance", 0, "fuzzy match with bounded edit distance (0-255)")
	cmd.Flags().BoolVar(&flags.stats, "stats", true, "print the summary line after searching")
	cmd.Flags().BoolVar(&flags.noStats, "no-stats", false, "suppress the summary line")
	cmd.Flags().StringVar(&flags.configPath, "config", "", "path to a config file (default $HOME/.mftfind.yaml)")
	cmd.Flags().BoolVar(&flags.sortResults, "sort", false, "sort matched paths lexicographically before printing")
	cmd.Flags().StringVar(&flags.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address for the duration of the scan")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "", "debug, info, warn, or error")
	cmd.Flags().StringVar(&flags.logFormat, "log-format", "", "text or json")
}

func runSearch(cmd *cobra.Command, args []string) error {
	name := args[0]

	if flags.regex && cmd.Flags().Changed("distance") {
		return &exitError{code: 2, err: errors.New("--regex and --distance are mutually exclusive")}
	}
	if flags.distance < 0 || flags.distance > 255 {
		return &exitError{code: 2, err: errors.New("--distance must be between 0 and 255")}
	}
	var volumeLetter byte
	if flags.volumeFlag != "" {
		if len(flags.volumeFlag) != 1 {
			return &exitError{code: 2, err: fmt.Errorf("--volume must be a single drive letter, got %q", flags.volumeFlag)}
		}
		volumeLetter = upper(flags.volumeFlag[0])
		if volumeLetter < 'A' || volumeLetter > 'Z' {
			return &exitError{code: 2, err: fmt.Errorf("--volume must be a letter, got %q", flags.volumeFlag)}
		}
	}

	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return &exitError{code: 2, err: err}
	}
	if !cmd.Flags().Changed("log-level") {
		flags.logLevel = cfg.LogLevel
	}
	if !cmd.Flags().Changed("log-format") {
		flags.logFormat = cfg.LogFormat
	}
	if !cmd.Flags().Changed("stats") && !cmd.Flags().Changed("no-stats") {
		flags.stats = cfg.Stats
	}
	if flags.noStats {
		flags.stats = false
	}
	if !cmd.Flags().Changed("folders") {
		flags.folders = cfg.Folders
	}
	if !cmd.Flags().Changed("sort") {
		flags.sortResults = cfg.Sort
	}
	if !cmd.Flags().Changed("metrics-addr") {
		flags.metricsAddr = cfg.MetricsAddr
	}

	logging.Init(logging.Config{Level: flags.logLevel, Format: flags.logFormat})

	if !volume.IsAdministrator() {
		return &exitError{code: 1, err: errors.New("mftfind must run elevated: reading the USN journal requires Administrator privileges")}
	}

	pred, err := buildPredicate(name, cmd.Flags().Changed("distance"))
	if err != nil {
		return &exitError{code: 2, err: err}
	}

	letters, err := eligibleVolumes(volumeLetter)
	if err != nil {
		return &exitError{code: 3, err: err}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	var reg *prometheus.Registry
	var m *metrics.Metrics
	if flags.metricsAddr != "" {
		reg = prometheus.NewRegistry()
		m = metrics.New(reg)
		srv, err := metrics.Serve(flags.metricsAddr, reg)
		if err != nil {
			return &exitError{code: 2, err: err}
		}
		defer srv.Shutdown(context.Background())
	}

	var written []string
	emit := func(r search.Result) error {
		if flags.sortResults {
			written = append(written, r.Path)
			return nil
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), r.Path)
		return err
	}

	summary, err := coordinator.Run(ctx, letters, coordinator.Options{
		Predicate: pred,
		Folders:   flags.folders,
		OnRecordError: func(re *search.RecordError) {
			logging.Warn("dropped record", "volume", string(re.Letter), "frn", re.FRN, "error", re.Err)
		},
	}, emit)
	// Run only ever returns ctx.Err(): an interrupt mid-scan still reports
	// whatever was found so far rather than failing the command outright.
	if err != nil {
		logging.Warn("scan interrupted", "error", err)
	}
	logging.Debug("scan complete", "run", summary.RunID, "volumes", summary.Volumes, "found", summary.Found)

	if flags.sortResults {
		sort.Strings(written)
		for _, p := range written {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
	}

	for _, v := range summary.PerVolume {
		m.ObserveVolume(v.Letter, v.Searched, v.Found)
		if v.Err != nil {
			logging.Warn("volume scan failed", "volume", string(v.Letter), "error", v.Err)
		}
	}
	m.ObserveRun(summary.Volumes, summary.Elapsed.Seconds())

	if flags.stats {
		cliutil.PrintVolumeStats(cmd.ErrOrStderr(), summary)
	}

	return nil
}

func buildPredicate(name string, distanceGiven bool) (predicate.Predicate, error) {
	switch {
	case flags.regex:
		return predicate.Regex(name)
	case distanceGiven:
		return predicate.Fuzzy(name, byte(flags.distance)), nil
	default:
		return predicate.Glob(name)
	}
}

func eligibleVolumes(only byte) ([]byte, error) {
	ready, err := volume.ListReadyNTFSVolumes()
	if err != nil {
		return nil, fmt.Errorf("discover volumes: %w", err)
	}

	var letters []byte
	for _, v := range ready {
		if only != 0 && v.Letter != only {
			continue
		}
		letters = append(letters, v.Letter)
	}
	if len(letters) == 0 {
		if only != 0 {
			return nil, fmt.Errorf("volume %c: is not a ready NTFS volume", only)
		}
		return nil, errors.New("no ready NTFS volume found")
	}
	return letters, nil
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}
