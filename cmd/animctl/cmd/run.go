package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-drift/webanim/pkg/scenario"
)

func init() {
	RegisterCommand(&Command{
		Name:  "run",
		Short: "Replay scenarios",
		Long: `Replay one or more scenario files and print their transcripts.

Each step is echoed with the scenario clock. Unmet expectations are
reported as FAIL lines and make the command exit with an error.

Flags:
  -q, --quiet    Print only failures and the summary line`,
		Usage: "animctl run [--quiet] <file>...",
		Run:   runRun,
	})
}

func runRun(args []string) error {
	quiet := false
	var files []string
	for _, arg := range args {
		switch arg {
		case "-q", "--quiet":
			quiet = true
		default:
			files = append(files, arg)
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("at least one scenario file is required\n\nUsage: animctl run [--quiet] <file>...")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	failed := 0
	for _, path := range files {
		s, err := scenario.Load(path)
		if err != nil {
			return err
		}
		var w io.Writer = stdout
		if quiet {
			w = &failureFilter{w: stdout}
		}
		res, err := s.Run(ctx, nil, w)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if !res.Passed() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failed, len(files))
	}
	return nil
}
