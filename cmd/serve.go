package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/findingaid/mapping"
	"github.com/lehigh-university-libraries/findingaid/server"
)

var (
	serveAddr        string
	serveProfileName string
	serveProfileFile string
	serveSource      string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the mapper over HTTP",
	Long: `Start an HTTP server that maps posted EAD3 documents.

Endpoints:
  POST /map?format=solrjson   map the records of the request body
  GET  /fields                output field vocabulary
  GET  /formats               output formats
  GET  /health                liveness
  GET  /metrics               Prometheus metrics

Examples:
  findingaid serve --addr :8080 --source Kansallisarkisto
  curl --data-binary @finding-aid.xml 'localhost:8080/map?format=jsonl'`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	addr := os.Getenv("FINDINGAID_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	serveCmd.Flags().StringVar(&serveAddr, "addr", addr, "Listen address (env FINDINGAID_ADDR)")
	serveCmd.Flags().StringVarP(&serveProfileName, "profile", "p", mapping.DefaultProfileName, "Mapping profile name")
	serveCmd.Flags().StringVar(&serveProfileFile, "profile-file", "", "Custom profile YAML file merged over --profile")
	serveCmd.Flags().StringVar(&serveSource, "source", os.Getenv("FINDINGAID_SOURCE"), "Source label (env FINDINGAID_SOURCE)")
}

func runServe(cmd *cobra.Command, args []string) error {
	profile, err := loadProfile(serveProfileName, serveProfileFile)
	if err != nil {
		return fmt.Errorf("loading profile: %w", err)
	}

	log := slog.Default()
	mapper := newMapper(profile, mapperSettings{Source: serveSource}, log)
	srv := server.NewServer(mapper, profile, log)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.ListenAndServe(ctx, serveAddr)
}
