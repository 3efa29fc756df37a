package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"codeberg.org/snonux/jsonlingo/internal/cli"
	apperrors "codeberg.org/snonux/jsonlingo/internal/errors"
	"codeberg.org/snonux/jsonlingo/internal/history"
	"codeberg.org/snonux/jsonlingo/internal/models"
	"codeberg.org/snonux/jsonlingo/internal/processor"
	"codeberg.org/snonux/jsonlingo/internal/server"
	"codeberg.org/snonux/jsonlingo/internal/translation"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)
	serveCmd := cli.CreateServeCommand(flags)
	rootCmd.AddCommand(serveCmd)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run functions
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}
	serveCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, flags)
	}
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, apperrors.UserFriendlyError(err))
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Handle --list-models flag
	if flags.ListModels {
		lister := models.NewLister(cli.GetOpenAIKey(), cli.GetOpenAIBaseURL())
		return lister.ListAvailableModels(ctx, os.Stdout)
	}

	config, err := cli.LoadConfig()
	if err != nil {
		return err
	}

	logger := cli.NewLogger(os.Stderr, flags.Verbose)
	proc, err := processor.NewProcessor(ctx, flags, config, logger)
	if err != nil {
		return err
	}

	// Handle batch processing
	if flags.BatchFile != "" {
		return proc.ProcessBatch(ctx)
	}

	path := "-"
	if len(args) > 0 {
		path = args[0]
	}
	return proc.ProcessFile(ctx, path)
}

func runServe(cmd *cobra.Command, flags *cli.Flags) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config, err := cli.LoadConfig()
	if err != nil {
		return err
	}

	logger := cli.NewLogger(os.Stderr, flags.Verbose)
	if config.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	gen, err := translation.NewGenerator(ctx, &config.Generator)
	if err != nil {
		return err
	}
	trees := processor.NewTreeTranslator(translation.NewTranslator(gen), config, logger)

	var store *history.Store
	if config.Server.HistoryDB != "" {
		store, err = history.Open(config.Server.HistoryDB)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	srv := server.New(trees, gen.Name(), store, server.Config{
		Environment:  config.Server.Environment,
		Language:     config.Language,
		Timeout:      config.Timeout,
		Strict:       config.Strict,
		AllowedHosts: config.Server.AllowedHosts,
		CORSOrigins:  config.Server.CORSOrigins,
		Logger:       logger,
	})

	return srv.Run(ctx, config.Server.Addr)
}
