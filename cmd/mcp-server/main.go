package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Saieiei/hpe-project-cty/internal/config"
	"github.com/Saieiei/hpe-project-cty/internal/logging"
	"github.com/Saieiei/hpe-project-cty/internal/mcp"
)

func main() {
	root := &cobra.Command{
		Use:           "mcp-server",
		Short:         "MCP server exposing pull request review tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	root.PersistentFlags().String("github-repository", "", "Repository as owner/repo or URL (env GITHUB_REPOSITORY)")
	root.PersistentFlags().String("diff-mode", "", "Diff collection mode: files or raw")
	root.PersistentFlags().String("sections", "", "Optional prompt sections: issue_comments,review_comments,history")
	root.PersistentFlags().String("profile-file", "", "YAML review profile")
	root.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().Int("port", 8000, "HTTP port")
	root.PersistentFlags().String("host", "0.0.0.0", "HTTP host")

	config.Init(root)

	if err := root.Execute(); err != nil {
		logging.New(logging.LoggerForLevel(config.LogLevel())).Error(err, "command failed")
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	log := logging.New(logging.LoggerForLevel(config.LogLevel())).WithName("mcp-server")

	cfg, err := mcp.DefaultConfig(log)
	if err != nil {
		return err
	}
	srv := mcp.New(cfg)

	host, _ := cmd.Flags().GetString("host")
	port, _ := cmd.Flags().GetInt("port")
	addr := host + ":" + strconv.Itoa(port)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("MCP server listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(ctx)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
