package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	dupescan "github.com/mattkeenan/dupescan/pkg"
)

// rootFlags holds the raw command-line values before config defaults are merged in
type rootFlags struct {
	format      formatValue
	algorithm   string
	noEmpty     bool
	min         sizeValue
	max         sizeValue
	depth       int
	hardLinks   bool
	regex       string
	pattern     string
	exclude     []string
	excludeFrom string
	rfactor     *factorValue
	output      string
	report      bool
	verbose     int
	quiet       bool
	debug       string
	threads     int
	configPath  string
	overrides   []string
}

// runSettings is everything one scan needs, after merging flags over config
type runSettings struct {
	scan      dupescan.ScanOptions
	algorithm string
	format    dupescan.Format
	factor    dupescan.Factor
	output    string
	report    bool
	verbose   int
	debug     string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{rfactor: newFactorValue()}

	cmd := &cobra.Command{
		Use:   "dupescan [flags] [paths...]",
		Short: "Find duplicate files",
		Long: `dupescan finds files with identical content under one or more directories.

Files are first grouped by a hash of their first 4 KiB; only files that share
that hash with another file are read in full. Paths default to the current
directory.

A directory named like a subcommand ("config", "algorithms") must be given
with a path prefix, e.g. "dupescan ./config".`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := resolveSettings(cmd, flags, args)
			if err != nil {
				return err
			}
			return runInterruptible(cmd, settings)
		},
	}

	f := cmd.Flags()
	f.VarP(&flags.format, "format", "f", "output format ("+strings.Join(dupescan.FormatNames(), ", ")+")")
	f.StringVarP(&flags.algorithm, "algorithm", "a", dupescan.DefaultAlgorithm, "hash algorithm ("+strings.Join(dupescan.AlgorithmNames(), ", ")+")")
	f.BoolVarP(&flags.noEmpty, "no-empty", "n", false, "exclude empty files")
	f.Var(&flags.min, "min", "minimum file size (e.g. 4K, 1MiB)")
	f.Var(&flags.max, "max", "maximum file size")
	f.IntVarP(&flags.depth, "depth", "d", 0, "maximum recursion depth (roots are depth 0)")
	f.BoolVarP(&flags.hardLinks, "hard-links", "H", false, "treat hard links to the same file as duplicates")
	f.StringVarP(&flags.regex, "regex", "R", "", "only check files whose name matches this regex")
	f.StringVarP(&flags.pattern, "pattern", "p", "", "only check files whose name matches this glob")
	f.StringArrayVarP(&flags.exclude, "exclude", "x", nil, "skip paths matching this regex (repeatable)")
	f.StringVar(&flags.excludeFrom, "exclude-from", "", "read exclude regexes from a file, one per line")
	f.Var(flags.rfactor, "rfactor", "replication factor [under|equal|over]:n")
	f.StringVarP(&flags.output, "output", "o", "", "write output to a file (.zst and .lz4 are compressed)")
	f.BoolVarP(&flags.report, "report", "r", false, "print a summary report to stderr")
	f.CountVarP(&flags.verbose, "verbose", "v", "increase verbosity (repeatable)")
	f.BoolVarP(&flags.quiet, "quiet", "q", false, "suppress all log output")
	f.StringVar(&flags.debug, "debug", "", "debug flags (scan, filter, dedupe, disk)")
	f.IntVar(&flags.threads, "threads", 0, "worker count (0 = pick from disk type)")
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/dupescan/config)")
	f.StringArrayVar(&flags.overrides, "set", nil, "override a config value (key:value, repeatable)")

	cmd.AddCommand(newAlgorithmsCmd())
	cmd.AddCommand(newConfigCmd(flags))

	return cmd
}

// resolveSettings merges explicit flags over config file defaults
func resolveSettings(cmd *cobra.Command, flags *rootFlags, args []string) (*runSettings, error) {
	cfg, err := dupescan.LoadConfig(flags.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyOverrides(flags.overrides); err != nil {
		return nil, err
	}
	all := cfg.GetAllConfig()
	changed := cmd.Flags().Changed

	settings := &runSettings{
		algorithm: strings.ToLower(all.Hash.Default),
		report:    flags.report || all.Output.Report,
		output:    flags.output,
		verbose:   all.Verbose.Level,
		debug:     all.Verbose.Debug,
	}

	if changed("algorithm") {
		settings.algorithm = strings.ToLower(flags.algorithm)
	}
	if err := dupescan.ValidateHashAlgorithm(settings.algorithm); err != nil {
		return nil, err
	}

	if changed("format") {
		settings.format = flags.format.format
	} else if settings.format, err = dupescan.ParseFormat(all.Output.Format); err != nil {
		return nil, err
	}

	if changed("rfactor") {
		settings.factor = flags.rfactor.factor
	} else if settings.factor, err = dupescan.ParseFactor(all.Scan.RFactor); err != nil {
		return nil, err
	}

	if changed("verbose") {
		settings.verbose = flags.verbose
	}
	if flags.quiet {
		settings.verbose = dupescan.QuietLevel
	}
	if changed("debug") {
		settings.debug = flags.debug
	}

	scan := dupescan.ScanOptions{
		Paths:           args,
		NameRegex:       flags.regex,
		NameGlob:        flags.pattern,
		Exclude:         flags.exclude,
		HardLinks:       flags.hardLinks || all.Scan.HardLinks,
		Workers:         all.Performance.Workers,
		ChannelCapacity: all.Performance.ChannelCapacity,
	}
	if len(scan.Paths) == 0 {
		scan.Paths = []string{"."}
	}
	if changed("threads") {
		scan.Workers = flags.threads
	}

	excludeFrom := all.Scan.ExcludeFrom
	if changed("exclude-from") {
		excludeFrom = flags.excludeFrom
	}
	if excludeFrom != "" {
		patterns, err := dupescan.LoadExcludeFile(excludeFrom)
		if err != nil {
			return nil, err
		}
		scan.Exclude = append(scan.Exclude, patterns...)
	}

	if scan.MinSize, err = sizeSetting(flags.min.Ptr(), all.Scan.MinSize); err != nil {
		return nil, fmt.Errorf("invalid minimum size: %w", err)
	}
	if scan.MaxSize, err = sizeSetting(flags.max.Ptr(), all.Scan.MaxSize); err != nil {
		return nil, fmt.Errorf("invalid maximum size: %w", err)
	}
	if scan.MinSize == nil && (flags.noEmpty || all.Scan.NoEmpty) {
		one := int64(1)
		scan.MinSize = &one
	}

	if changed("depth") {
		depth := flags.depth
		scan.MaxDepth = &depth
	} else if all.Scan.Depth != "" {
		depth, err := strconv.Atoi(all.Scan.Depth)
		if err != nil {
			return nil, fmt.Errorf("invalid depth in config: %w", err)
		}
		scan.MaxDepth = &depth
	}

	if err := scan.Validate(); err != nil {
		return nil, err
	}
	settings.scan = scan
	return settings, nil
}

// sizeSetting prefers the flag, then the config string, then unbounded
func sizeSetting(flag *int64, configured string) (*int64, error) {
	if flag != nil {
		return flag, nil
	}
	if configured == "" {
		return nil, nil
	}
	size, err := dupescan.ParseHumanSize(configured)
	if err != nil {
		return nil, err
	}
	return &size, nil
}
