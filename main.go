package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"

	"github.com/jcorbin/goeacal/internal/logio"
)

const version = "eacal 0.1.0"

const usage = `eacal

Usage:
  eacal [-tdb] [--timeout=DURATION] SCRIPT [ARGUMENTS...]
  eacal [-tdb] [--timeout=DURATION] -e PROGRAM [ARGUMENTS...]
  eacal [-itdb] [--timeout=DURATION]
  eacal -h
  eacal -v

Arguments:
  SCRIPT     Path to an eacal program.
  ARGUMENTS  Values returned by the arg command.

Options:
  -e, --eval=PROGRAM    Run the given program text.
  -i, --interactive     Disable interactive mode.
  -t, --trace           Log every dispatched command to stderr.
  -d, --dump            Dump VM state to stderr after the run.
  -b, --brief           Leave program lines out of the dump.
  --timeout=DURATION    Stop the run after the given duration.
  -h, --help            Display this help.
  -v, --version         Print eacal version.

With no SCRIPT or PROGRAM, the program is read from stdin. If stdin is a
terminal, lines are instead prompted for and run as they are entered.
`

func main() {
	var log logio.Logger
	log.SetOutput(os.Stderr)
	if err := run(context.Background(), &log); err != nil {
		log.ErrorIf(err)
	}
	os.Exit(log.ExitCode())
}

func run(ctx context.Context, log *logio.Logger) error {
	opts, err := docopt.ParseArgs(usage, nil, version)
	if err != nil {
		return err
	}

	args, _ := opts["ARGUMENTS"].([]string)
	vmOpts := []VMOption{
		WithOutput(os.Stdout),
		WithArgs(args...),
	}

	if trace, _ := opts.Bool("--trace"); trace {
		vmOpts = append(vmOpts, WithLogf(log.Leveledf("TRACE")))
	}

	if timeout, _ := opts.String("--timeout"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("invalid --timeout: %w", err)
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	script, _ := opts.String("SCRIPT")
	program, _ := opts.String("--eval")
	switch {
	case script != "":
		f, err := os.Open(script)
		if err != nil {
			return err
		}
		vmOpts = append(vmOpts, WithSource(f))

	case program != "":
		vmOpts = append(vmOpts, WithProgram("-e", program))

	default:
		interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		if invert, _ := opts.Bool("--interactive"); invert {
			interactive = !interactive
		}
		if interactive {
			vmOpts = append(vmOpts, WithLineSource(newLineEditor("eacal> ", defaultRegistry)))
		} else {
			vmOpts = append(vmOpts, WithSource(NamedReader("<stdin>", os.Stdin)))
		}
	}

	vm := New(vmOpts...)
	err = vm.Run(ctx)

	if dump, _ := opts.Bool("--dump"); dump {
		brief, _ := opts.Bool("--brief")
		lw := logio.Writer{Logf: log.Leveledf("DUMP")}
		vmDumper{vm: vm, out: &lw, skipLines: brief}.dump()
		lw.Close()
	}

	if isFatal(err) {
		log.Failf("%v", err)
		return nil
	}
	return err
}
