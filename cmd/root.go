// Package cmd provides CLI commands for findingaid.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	// Register all format plugins
	_ "github.com/lehigh-university-libraries/findingaid/format/csv"
	_ "github.com/lehigh-university-libraries/findingaid/format/ead3xml"
	_ "github.com/lehigh-university-libraries/findingaid/format/jsonl"
	_ "github.com/lehigh-university-libraries/findingaid/format/solrjson"
	_ "github.com/lehigh-university-libraries/findingaid/format/solrxml"
)

func setupLogger() {
	logLevel := strings.ToUpper(os.Getenv("LOG_LEVEL"))
	if logLevel == "" {
		logLevel = "INFO"
	}

	var level slog.Level
	switch logLevel {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN", "WARNING":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	logger := slog.New(handler)

	slog.SetDefault(logger)
}

var rootCmd = &cobra.Command{
	Use:   "findingaid",
	Short: "Map EAD3 finding aids to search index documents",
	Long: `Findingaid maps the archival description records of EAD3 finding aids
to flat search index documents.

Each archdesc and component (c) element becomes one document with titles,
dates, hierarchy links, controlled-access terms and usage rights. Mapping
profiles adapt the mapper to the label conventions of a source archive.

Examples:
  findingaid convert -i finding-aid.xml -o docs.json
  findingaid convert -t csv < finding-aid.xml
  findingaid validate -i finding-aid.xml --verbose
  findingaid serve --addr :8080`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	setupLogger()
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(fieldsCmd)
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(serveCmd)
}
