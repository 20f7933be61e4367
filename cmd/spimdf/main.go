// Command spimdf runs the dual-issue scoreboarded pipeline simulator
// over a program file, writing disassembly.txt and simulation.txt, and
// optionally a live monitor server and a supplemental SQLite trace.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/spimdf/config"
	"github.com/sarchlab/spimdf/emu"
	"github.com/sarchlab/spimdf/loader"
	"github.com/sarchlab/spimdf/monitor"
	"github.com/sarchlab/spimdf/persist"
	"github.com/sarchlab/spimdf/timing/pipeline"
	"github.com/sarchlab/spimdf/trace"
)

var (
	flagOutDir     string
	flagVerbose    bool
	flagMonitor    bool
	flagOpen       bool
	flagSQLitePath string
	flagMaxCycles  uint64
	flagEnvFile    string
)

var rootCmd = &cobra.Command{
	Use:   "spimdf <program-file>",
	Short: "Simulate a dual-issue scoreboarded MIPS-like pipeline",
	Long: "spimdf decodes a 32-bit-per-line MIPS-like program file, " +
		"disassembles it to disassembly.txt, and runs it cycle by cycle " +
		"through a dual-issue, out-of-order-issue, scoreboarded pipeline, " +
		"writing a full per-cycle trace to simulation.txt.",
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVarP(&flagOutDir, "out-dir", "o", "", "directory for disassembly.txt and simulation.txt")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "print a run summary after completion")
	rootCmd.Flags().BoolVar(&flagMonitor, "monitor", false, "start a live HTTP introspection server")
	rootCmd.Flags().BoolVar(&flagOpen, "open", false, "open the monitor's state page in the default browser")
	rootCmd.Flags().StringVar(&flagSQLitePath, "sqlite", "", "additionally persist every cycle to this SQLite database")
	rootCmd.Flags().Uint64Var(&flagMaxCycles, "max-cycles", 1_000_000, "safety bound on cycles run (0 = unbounded)")
	rootCmd.Flags().StringVar(&flagEnvFile, "env-file", "", "path to an optional .env file of defaults")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagEnvFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	outDir := flagOutDir
	if outDir == "" {
		outDir = cfg.OutDir
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	programPath := args[0]

	disPath := filepath.Join(outDir, "disassembly.txt")
	disFile, err := os.Create(disPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", disPath, err)
	}
	defer disFile.Close()

	mem := emu.NewMemory()
	if err := loader.WriteDisassembly(disFile, programPath, mem); err != nil {
		if errors.Is(err, loader.ErrNotFound) {
			return fmt.Errorf("%s: %w", programPath, err)
		}
		return err
	}

	if _, err := loader.Load(programPath, mem); err != nil {
		return err
	}

	regs := &emu.RegisterFile{}
	cpu := pipeline.NewCPU(regs, mem)

	var mon *monitor.Server
	if flagMonitor {
		addr := cfg.MonitorAddr
		mon = monitor.NewServer(cpu, addr)
		boundAddr, err := mon.Start()
		if err != nil {
			return fmt.Errorf("starting monitor: %w", err)
		}
		fmt.Fprintf(os.Stdout, "monitor listening on %s\n", boundAddr)
		defer mon.Close()

		if flagOpen {
			if err := browser.OpenURL(mon.Addr()); err != nil {
				fmt.Fprintf(os.Stderr, "could not open browser: %v\n", err)
			}
		}
	}

	var sqliteWriter *persist.SQLiteWriter
	sqlitePath := flagSQLitePath
	if sqlitePath == "" {
		sqlitePath = cfg.SQLitePath
	}
	if sqlitePath != "" {
		sqliteWriter = persist.NewSQLiteWriter(sqlitePath)
		if err := sqliteWriter.Open(); err != nil {
			return fmt.Errorf("opening sqlite trace: %w", err)
		}
		defer sqliteWriter.Close()
	}

	simPath := filepath.Join(outDir, "simulation.txt")
	simFile, err := os.Create(simPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", simPath, err)
	}
	defer simFile.Close()
	atexit.Register(func() { simFile.Close() })

	tw := trace.NewWriter(simFile)

	sinks := []persist.Sink{tw}
	if sqliteWriter != nil {
		sinks = append(sinks, sqliteWriter)
	}

	ran, err := persist.Drain(cpu, flagMaxCycles, sinks...)
	if err != nil {
		return fmt.Errorf("writing trace: %w", err)
	}

	if flagVerbose {
		fmt.Printf("ran %d cycles, final PC=%d\n", ran, cpu.Fetch.PC())
		regsOut := regs.Snapshot()
		for i, v := range regsOut {
			fmt.Printf("R%02d=%d ", i, v)
			if (i+1)%8 == 0 {
				fmt.Println()
			}
		}
	}

	return nil
}
