// Package cmd provides the command-line interface of pagesim.
package cmd

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/sarchlab/pagesim/datarecording"
	"github.com/sarchlab/pagesim/mem/trace"
	"github.com/sarchlab/pagesim/mem/vm/pagesim"
	"github.com/sarchlab/pagesim/monitoring"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

type runOptions struct {
	verbose     bool
	onMalformed string
	maxPage     uint64
	recordDB    string
	monitor     bool
	monitorPort int
	openBrowser bool
	envFile     string
}

// NewRootCommand creates the pagesim command with all its subcommands.
func NewRootCommand() *cobra.Command {
	opts := &runOptions{}

	rootCmd := &cobra.Command{
		Use:   "pagesim <frames> <page-size> <trace-file>",
		Short: "Simulate Clock page replacement over an address trace",
		Long: `pagesim translates every virtual address of a trace into a physical
address. Pages are loaded into a fixed number of frames on demand and
evicted with the Clock (second-chance) policy. A summary of hits, faults
and evictions is printed at the end of the run.

Trace files hold one address per line, in decimal or 0x-prefixed hex.
Files ending in .lz4 or .sz are decompressed on the fly.`,
		Example: `  pagesim 8 4096 trace.txt
  pagesim 8 4096 --verbose trace.txt
  pagesim 3 4096 --on-malformed skip --record-db run trace.txt.lz4`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadEnv(cmd, opts.envFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(cmd, args, opts)
		},
	}

	flags := rootCmd.Flags()
	flags.BoolVarP(&opts.verbose, "verbose", "v", false,
		"print one line per reference")
	flags.StringVar(&opts.onMalformed, "on-malformed", "abort",
		"what to do with malformed trace lines: abort or skip")
	flags.Uint64Var(&opts.maxPage, "max-page", 0,
		"reject page numbers above this value (0 means unbounded)")
	flags.StringVar(&opts.recordDB, "record-db", "",
		"record every reference into <name>.sqlite3")
	flags.BoolVar(&opts.monitor, "monitor", false,
		"serve the simulation state over HTTP while running")
	flags.IntVar(&opts.monitorPort, "monitor-port", 0,
		"port of the monitoring server (0 picks a free port)")
	flags.BoolVar(&opts.openBrowser, "open-browser", false,
		"open the monitoring page in a browser")
	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "",
		"load PAGESIM_* defaults from this file instead of .env")

	rootCmd.AddCommand(newCompressCmd())
	rootCmd.AddCommand(newSummaryCmd())

	return rootCmd
}

// Execute runs the root command and exits with a non-zero status on
// failure.
func Execute() {
	err := NewRootCommand().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

func parseConfig(args []string, maxPage uint64) (pagesim.Config, error) {
	const op = "parse arguments"

	numFrames, err := strconv.Atoi(args[0])
	if err != nil {
		return pagesim.Config{}, pagesim.NewError(pagesim.ErrKindConfiguration,
			op, fmt.Sprintf("frame count %q is not an integer", args[0]), err)
	}

	pageSize, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil {
		return pagesim.Config{}, pagesim.NewError(pagesim.ErrKindConfiguration,
			op, fmt.Sprintf("page size %q is not a positive integer", args[1]),
			err)
	}

	config := pagesim.Config{
		NumFrames:     numFrames,
		PageSize:      pageSize,
		MaxPageNumber: maxPage,
	}

	return config, config.Validate()
}

func runSimulation(cmd *cobra.Command, args []string, opts *runOptions) error {
	config, err := parseConfig(args, opts.maxPage)
	if err != nil {
		return err
	}

	policy, err := trace.ParseMalformedPolicy(opts.onMalformed)
	if err != nil {
		return pagesim.NewError(pagesim.ErrKindConfiguration,
			"parse arguments", "", err)
	}

	builder := pagesim.MakeBuilder().WithConfig(config)
	if opts.verbose {
		builder = builder.WithTracer(
			trace.NewLogTracer(log.New(cmd.OutOrStdout(), "", 0)))
	}

	sim, err := builder.Build()
	if err != nil {
		return err
	}

	traceFile, err := trace.Open(args[2],
		trace.WithMalformedPolicy(policy),
		trace.WithLogger(log.New(cmd.ErrOrStderr(), "", 0)),
	)
	if err != nil {
		return err
	}
	defer traceFile.Close()

	var dbTracer *trace.DBTracer
	if opts.recordDB != "" {
		recorder, err := datarecording.New(opts.recordDB)
		if err != nil {
			return pagesim.NewError(pagesim.ErrKindIO, "open recording",
				opts.recordDB, err)
		}
		defer recorder.Close()

		exec := datarecording.NewExecRecorder(recorder)
		exec.Start(os.Args)
		defer exec.End()

		dbTracer = trace.NewDBTracer(recorder)
		sim.AcceptTracer(dbTracer)
	}

	serialized := pagesim.NewSerialized(sim)

	if opts.monitor {
		stop, err := startMonitor(cmd, serialized, sim, args[2], opts)
		if err != nil {
			return err
		}
		defer stop()
	}

	err = serialized.Run(traceFile)
	if err != nil {
		return err
	}

	if n := traceFile.Skipped(); n > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "Skipped %d malformed trace lines\n", n)
	}

	stats := serialized.Statistics()

	err = stats.WriteReport(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if dbTracer != nil {
		dbTracer.RecordSummary(config, stats)
		fmt.Fprintf(cmd.ErrOrStderr(), "Recorded run %s\n", dbTracer.RunID())
	}

	return nil
}

func startMonitor(
	cmd *cobra.Command,
	source monitoring.Source,
	sim *pagesim.Simulator,
	traceName string,
	opts *runOptions,
) (stop func(), err error) {
	monitor := monitoring.NewMonitor().WithPortNumber(opts.monitorPort)
	monitor.RegisterSource(source)

	port, err := monitor.StartServer()
	if err != nil {
		return nil, pagesim.NewError(pagesim.ErrKindResource,
			"start monitor", "", err)
	}

	bar := monitor.CreateProgressBar(traceName, 0)
	sim.AcceptTracer(bar.Tracer())

	if opts.openBrowser {
		if err := monitor.OpenInBrowser(port); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Cannot open browser: %v\n", err)
		}
	}

	return func() {
		monitor.CompleteProgressBar(bar)

		if err := monitor.StopServer(); err != nil {
			log.Printf("stop monitor: %v", err)
		}
	}, nil
}
