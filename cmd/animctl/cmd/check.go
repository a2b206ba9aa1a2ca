package cmd

import (
	"fmt"

	"github.com/go-drift/webanim/pkg/scenario"
)

func init() {
	RegisterCommand(&Command{
		Name:  "check",
		Short: "Validate scenarios without running them",
		Long: `Parse and validate scenario files.

Reports unknown fields, unsupported format versions, unknown step
operations and steps that name undeclared animations.`,
		Usage: "animctl check <file>...",
		Run:   runCheck,
	})
}

func runCheck(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("at least one scenario file is required\n\nUsage: animctl check <file>...")
	}
	bad := 0
	for _, path := range args {
		s, err := scenario.Load(path)
		if err != nil {
			fmt.Fprintf(stdout, "FAIL %v\n", err)
			bad++
			continue
		}
		fmt.Fprintf(stdout, "ok   %s (%d animations, %d steps)\n", path, len(s.Animations), len(s.Steps))
	}
	if bad > 0 {
		return fmt.Errorf("%d of %d scenarios are invalid", bad, len(args))
	}
	return nil
}
