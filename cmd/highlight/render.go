package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	highlight "go.gopad.dev/highlight"
	"go.gopad.dev/highlight/grammars"
	"go.gopad.dev/highlight/internal/ansi"
	"go.gopad.dev/highlight/internal/html"
	"go.gopad.dev/highlight/internal/logging"
	"go.gopad.dev/highlight/provider"
)

var renderANSI bool

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Highlight a file and print it",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().BoolVar(&renderANSI, "ansi", false, "render as ANSI-colored terminal text instead of HTML")
}

func runRender(cmd *cobra.Command, args []string) error {
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer logger.Sync()

	path := args[0]
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	language := languageForPath(path)

	prov := provider.NewStatic(grammars.Factories())
	h := highlight.New(prov, highlight.WithLogger(logger))

	spans, err := h.Highlight(context.Background(), language, source, cfg.MaxDepth)
	if err != nil {
		return fmt.Errorf("highlight: %w", err)
	}

	if renderANSI {
		fmt.Fprintln(cmd.OutOrStdout(), ansi.Render(source, spans, nil))
		return nil
	}

	renderer := html.NewRenderer()
	renderer.Prefix = cfg.Prefix
	if f, ok := formatFromString(cfg.Format); ok {
		renderer.Format = f
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderer.Render(source, spans))
	return nil
}

func languageForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".go":
		return "go"
	case ".html", ".htm":
		return "html"
	case ".css":
		return "css"
	case ".js", ".mjs":
		return "javascript"
	default:
		return ""
	}
}

func formatFromString(s string) (html.Format, bool) {
	switch s {
	case "custom-elements":
		return html.CustomElements, true
	case "custom-elements-prefixed":
		return html.CustomElementsWithPrefix, true
	case "class-names":
		return html.ClassNames, true
	case "class-names-prefixed":
		return html.ClassNamesWithPrefix, true
	default:
		return 0, false
	}
}
