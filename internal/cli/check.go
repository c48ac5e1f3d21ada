package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"hbs/pkg/engine/precompile"
)

// Problem is one failure reported by check.
type Problem struct {
	Type    string `json:"type"`
	File    string `json:"file,omitempty"`
	Message string `json:"message"`
}

func newCheckCommand(cfg Config) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "check [--json] [FILE...]",
		Short: "Verify the precompiler loads and, optionally, that templates compile",
		RunE: func(cmd *cobra.Command, args []string) error {
			env := precompile.Shared()

			var problems []Problem
			if err := env.Preload(); err != nil {
				problems = append(problems, Problem{
					Type:    errorKind(err),
					File:    env.Script(),
					Message: err.Error(),
				})
			} else {
				for _, t := range precompileFiles(args, cfg.Concurrency) {
					if t.Error != "" {
						problems = append(problems, Problem{Type: t.Kind, File: t.File, Message: t.Error})
					}
				}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				stats := env.Stats()
				if err := writeJSON(out, map[string]interface{}{
					"success": len(problems) == 0,
					"script":  env.Script(),
					"errors":  problems,
					"stats": map[string]int64{
						"builds":      stats.Builds,
						"evaluations": stats.Evaluations,
					},
				}); err != nil {
					return err
				}
			} else if len(problems) == 0 {
				fmt.Fprintf(out, "✅ precompiler ready (%s), %d template(s) OK\n", env.Script(), len(args))
			} else {
				for _, p := range problems {
					fmt.Fprintf(out, "❌ %s: %s\n", p.File, p.Message)
				}
			}

			if len(problems) > 0 {
				return fmt.Errorf("check failed: %d problem(s)", len(problems))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	return cmd
}
