// introflow: introduction pipeline MCP server
//
// Tracks warm introductions between founders and investors made through
// connectors, and turns the pipeline into prioritized daily work.
//
// Usage:
//
//	introflow serve           # Start MCP server (stdio transport)
//	introflow import FILE     # Load founders, connectors, investors and introductions from YAML
//	introflow report          # Print the pipeline report as JSON
//	introflow version
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/HendryAvila/introflow/internal/config"
	"github.com/HendryAvila/introflow/internal/report"
	introserver "github.com/HendryAvila/introflow/internal/server"
	"github.com/HendryAvila/introflow/internal/store"
)

var rootCmd = &cobra.Command{
	Use:           "introflow",
	Short:         "Introduction pipeline MCP server",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server (stdio transport)",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import a YAML seed file",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the pipeline report as JSON",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "introflow v%s\n", introserver.Version)
	},
}

func main() {
	// MCP stdio owns stdout; logs go to stderr.
	log.SetPrefix("[INTROFLOW] ")

	rootCmd.AddCommand(serveCmd, importCmd, reportCmd, versionCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	s, cleanup, err := introserver.New(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cleanup()
		os.Exit(0)
	}()

	log.Printf("serving introflow v%s from %s", introserver.Version, cfg.DataDir)
	return server.ServeStdio(s)
}

func runImport(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	seed, err := store.LoadSeedFile(args[0])
	if err != nil {
		return err
	}
	res, err := st.Import(cmd.Context(), seed)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(),
		"Imported %d founders, %d connectors, %d investors, %d introductions, %d follow-ups.\n",
		res.Founders, res.Nodes, res.Investors, res.Introductions, res.Followups)
	return nil
}

func runReport(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	r, err := report.Build(cmd.Context(), st, time.Now())
	if err != nil {
		return err
	}
	for _, w := range r.Warnings() {
		log.Printf("WARNING: %s", w)
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func openStore() (*store.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return store.New(store.Config{DataDir: cfg.DataDir})
}
