package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-drift/webanim/pkg/filmstrip"
	"github.com/go-drift/webanim/pkg/scenario"
)

func init() {
	RegisterCommand(&Command{
		Name:  "strip",
		Short: "Render a scenario as a filmstrip PNG",
		Long: `Replay a scenario and render the sampled output of every animation as
a PNG: one row per animation, one column per advance step.

Flags:
  -o, --output FILE   Output path (default: <scenario>.png)
  --cell N            Cell size in pixels (default: 8)`,
		Usage: "animctl strip [-o FILE] [--cell N] <file>",
		Run:   runStrip,
	})
}

func runStrip(args []string) error {
	var path, output string
	opts := filmstrip.Options{}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-o", "--output":
			if i+1 >= len(args) {
				return fmt.Errorf("%s requires a file path", args[i])
			}
			output = args[i+1]
			i++
		case "--cell":
			if i+1 >= len(args) {
				return fmt.Errorf("--cell requires a size")
			}
			n, err := strconv.Atoi(args[i+1])
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid cell size %q", args[i+1])
			}
			opts.Cell = n
			i++
		default:
			if path != "" {
				return fmt.Errorf("strip takes a single scenario file")
			}
			path = args[i]
		}
	}
	if path == "" {
		return fmt.Errorf("scenario file is required\n\nUsage: animctl strip [-o FILE] [--cell N] <file>")
	}
	if output == "" {
		output = path + ".png"
	}

	s, err := scenario.Load(path)
	if err != nil {
		return err
	}
	rec := &filmstrip.Recorder{}
	if _, err := s.Run(context.Background(), nil, io.Discard, scenario.WithFrameHook(rec.Capture)); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", output, err)
	}
	if err := rec.WritePNG(f, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote %s (%d frames, %d animations)\n", output, rec.Frames(), len(rec.Rows()))
	return nil
}
