// Package main is the entry point for the arith evaluator.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/lemonberrylabs/arith/pkg/api"
	"github.com/lemonberrylabs/arith/pkg/expr"
	"github.com/lemonberrylabs/arith/pkg/store"
	"github.com/lemonberrylabs/arith/web"
	"github.com/spf13/cobra"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:          "arith [expression]",
	Short:        "Evaluate arithmetic expressions",
	Long:         "Evaluates an integer arithmetic expression and prints its canonical form and value.\nWith no argument, reads one expression from standard input.",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runEval,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the evaluator HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.Version = version + " (commit=" + commit + ", built=" + date + ")"
	rootCmd.SetVersionTemplate("arith version {{.Version}}\n")

	serveCmd.Flags().Int("port", 0, "HTTP server port (default 8787, env PORT)")
	serveCmd.Flags().String("host", "", "Bind address (default 0.0.0.0, env HOST)")
	serveCmd.Flags().String("expressions-dir", "", "Directory of expression YAML files to load (env EXPRESSIONS_DIR)")

	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runEval(cmd *cobra.Command, args []string) error {
	var input string
	if len(args) == 1 {
		input = args[0]
	} else {
		fmt.Println("Input your expr: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("failed to read line: %w", err)
		}
		input = line
		fmt.Println("---")
	}

	res, err := expr.EvaluateString(strings.TrimSpace(input))
	if err != nil {
		return err
	}

	fmt.Printf("REPR: %s\n", res.Repr)
	fmt.Printf("Result: %d\n", res.Value)
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	port := envOrDefault("PORT", "8787")
	if v, _ := cmd.Flags().GetInt("port"); v != 0 {
		port = fmt.Sprintf("%d", v)
	}

	host := envOrDefault("HOST", "0.0.0.0")
	if v, _ := cmd.Flags().GetString("host"); v != "" {
		host = v
	}

	expressionsDir := os.Getenv("EXPRESSIONS_DIR")
	if v, _ := cmd.Flags().GetString("expressions-dir"); v != "" {
		expressionsDir = v
	}

	addr := fmt.Sprintf("%s:%s", host, port)

	s := store.New()
	server := api.New(s)

	// Load expressions from directory if specified
	if expressionsDir != "" {
		log.Printf("Loading expressions directory: %s", expressionsDir)
		if err := server.LoadDir(expressionsDir); err != nil {
			log.Printf("Warning: failed to load expressions directory: %v", err)
		}
	}

	// Register the web UI (non-fatal if template parsing fails)
	func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("Warning: web UI disabled due to template error: %v", r)
			}
		}()
		ui := web.New(s)
		ui.Register(server.App())
	}()

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down...")
		if err := server.Shutdown(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}()

	log.Printf("arith listening on %s", addr)
	if expressionsDir == "" {
		log.Printf("API-only mode (no --expressions-dir specified)")
	}
	return server.Listen(addr)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
