package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"hbs/pkg/engine"
	"hbs/pkg/engine/precompile"
	"hbs/pkg/fastjson"
	"hbs/pkg/nodes"
)

// Template is the outcome of precompiling one file.
type Template struct {
	File       string `json:"file"`
	Name       string `json:"name"`
	JavaScript string `json:"javascript,omitempty"`
	Error      string `json:"error,omitempty"`
	Kind       string `json:"kind,omitempty"`
}

func newPrecompileCommand(cfg Config) *cobra.Command {
	var wrap, asJSON bool

	cmd := &cobra.Command{
		Use:   "precompile [--wrap] [--json] FILE...",
		Short: "Precompile template files into Handlebars.js functions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			templates := precompileFiles(args, cfg.Concurrency)
			failed := countFailed(templates)

			if asJSON {
				if err := writeJSON(cmd.OutOrStdout(), map[string]interface{}{
					"success":   failed == 0,
					"templates": templates,
				}); err != nil {
					return err
				}
			} else {
				writeTemplates(cmd.OutOrStdout(), cmd.ErrOrStderr(), templates, wrap)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d templates failed to precompile", failed, len(templates))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&wrap, "wrap", false, "register each template as Handlebars.templates[<name>]")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	return cmd
}

// precompileFiles compiles every file through the shared precompiler. Files
// are read concurrently; the precompiler itself runs one compile at a time.
func precompileFiles(paths []string, limit int) []Template {
	templates := make([]Template, len(paths))

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			templates[i] = precompileFile(path)
			return nil
		})
	}
	_ = g.Wait()

	return templates
}

func precompileFile(path string) Template {
	t := Template{File: path, Name: templateName(path)}

	src, err := os.ReadFile(path)
	if err != nil {
		t.Error = err.Error()
		t.Kind = "read"
		return t
	}

	node := nodes.NewText(string(src))
	node.SetFilename(path).SetPosition(1, 1)

	js, err := engine.ToJavaScript(node)
	if err != nil {
		t.Error = err.Error()
		t.Kind = errorKind(err)
		return t
	}
	t.JavaScript = js
	return t
}

// templateName derives the registration name: "views/User Card.hbs" -> "user-card".
func templateName(path string) string {
	base := filepath.Base(path)
	return slug.Make(strings.TrimSuffix(base, filepath.Ext(base)))
}

func errorKind(err error) string {
	var evalErr *precompile.EvaluationError
	switch {
	case errors.Is(err, precompile.ErrMissingResource):
		return "missing_resource"
	case errors.As(err, &evalErr):
		return "evaluation"
	}
	return "error"
}

func countFailed(templates []Template) int {
	n := 0
	for _, t := range templates {
		if t.Error != "" {
			n++
		}
	}
	return n
}

func writeTemplates(out, errOut io.Writer, templates []Template, wrap bool) {
	for _, t := range templates {
		if t.Error != "" {
			fmt.Fprintf(errOut, "❌ %s: %s\n", t.File, t.Error)
			continue
		}
		if wrap {
			fmt.Fprintf(out, "Handlebars.templates[%q] = Handlebars.template(%s);\n", t.Name, t.JavaScript)
			continue
		}
		fmt.Fprintf(out, "// %s\n%s\n", t.File, t.JavaScript)
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := fastjson.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
