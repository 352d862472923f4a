package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"memmap/config"
	"memmap/process"
	"memmap/report"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// Build info
var (
	version = "dev"
	commit  = "none"
)

func main() {
	root := newRootCommand()
	root.SetOut(colorable.NewColorableStdout())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memmap",
		Short: "Summarize the memory mappings of a running process",
		Long: `memmap reads /proc/<pid>/smaps once and ranks the process's mappings,
grouped by backing file or kernel region, by a resident memory counter.

Examples:
  memmap -p 1234                  # top 10 groups by Rss
  memmap -n postgres -c Pss -t 5  # lowest postgres PID, top 5 by Pss
  memmap -p 1234 --regions -o yaml
  memmap -p 1234 --addr 0x7f2a1b3c4010`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			return run(cmd.OutOrStdout(), cfg)
		},
	}

	config.RegisterFlags(cmd.Flags())
	cmd.AddCommand(newVersionCommand())
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "memmap %s (%s)\n", version, commit)
			return err
		},
	}
}

func run(w io.Writer, cfg *config.Config) error {
	var log *logger.Logger
	if cfg.Debug {
		log = logger.NewLogger(coloransi.Color(coloransi.Red, coloransi.ColorOrange, "memmap"))
	}

	pid := process.ProcessID(cfg.PID)
	if cfg.Name != "" {
		var err error
		if pid, err = resolveName(cfg.ProcRoot, cfg.Name); err != nil {
			return err
		}
		if log != nil {
			log.Infoln("Resolved", cfg.Name, "to pid", pid)
		}
	}

	proc, err := process.NewProcess(pid, newSource(cfg, pid))
	if err != nil {
		if errors.Is(err, process.ErrAccessDenied) && !cfg.MapsOnly {
			return fmt.Errorf("%w (smaps needs ptrace access to the process; try --maps-only or run as its owner)", err)
		}
		return err
	}
	if log != nil {
		log.Infoln("Snapshot taken:", len(proc.Regions), "regions")
	}

	info, err := describe(cfg.ProcRoot, pid)
	if err != nil && log != nil {
		log.Warn("Could not describe process: ", err)
	}

	addr, err := cfg.Address()
	if err != nil {
		return err
	}

	doc := report.NewDocument(proc, info, report.Options{
		Counter: cfg.Counter,
		Top:     cfg.Top,
		Regions: cfg.Regions,
		Addr:    addr,
	})

	color := !cfg.NoColor && isTerminal(w)
	return report.Write(w, cfg.Output, doc, color)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && isatty.IsTerminal(f.Fd())
}
