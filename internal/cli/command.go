package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/jsonlingo/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jsonlingo [file]",
		Short: "Recursive JSON translation engine",
		Long: `jsonlingo translates every string in a JSON document with an LLM
while keeping keys, nesting, order and non-string values untouched.

A leaf whose translation fails keeps its original text, so a partial
provider outage still yields a complete document.

Examples:
  jsonlingo article.json                  # Translate into the default language
  cat article.json | jsonlingo --lang de  # Read from stdin
  jsonlingo --batch docs.txt -d out/      # Translate every file listed
  jsonlingo serve --addr :8000            # Run the HTTP service`,
		Args:    cobra.MaximumNArgs(1),
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

// CreateServeCommand creates the serve subcommand
func CreateServeCommand(flags *Flags) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP translation service",
		Args:  cobra.NoArgs,
	}

	serveCmd.Flags().StringVar(&flags.Addr, "addr", flags.Addr, "Listen address")
	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))

	return serveCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.jsonlingo.yaml)")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Log every request and degraded leaf")
	cmd.PersistentFlags().StringVarP(&flags.Language, "lang", "l", flags.Language, "Target language (name or code, e.g. Arabic, de)")
	cmd.PersistentFlags().StringVar(&flags.Provider, "provider", flags.Provider, "Translation provider: openai or gemini")
	cmd.PersistentFlags().StringVar(&flags.Model, "model", "", "Model name (default depends on the provider)")
	cmd.PersistentFlags().StringVar(&flags.BaseURL, "base-url", "", "OpenAI-compatible API base URL")
	cmd.PersistentFlags().IntVarP(&flags.Concurrency, "concurrency", "c", flags.Concurrency, "Leaves translated at once")
	cmd.PersistentFlags().BoolVar(&flags.Strict, "strict", false, "Fail the whole document when any leaf fails")
	cmd.PersistentFlags().DurationVar(&flags.Timeout, "timeout", flags.Timeout, "Deadline for translating one document")

	// Local flags
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Write the translated document to this file instead of stdout")
	cmd.Flags().StringVarP(&flags.OutputDir, "output-dir", "d", "", "Output directory for --batch (default: next to each input)")
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Translate the JSON files listed in this file (one per line)")
	cmd.Flags().BoolVar(&flags.Force, "force", false, "Overwrite existing batch outputs")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Move an existing --output-dir into an archive before a batch run")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI chat models for the current API key")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("provider", cmd.PersistentFlags().Lookup("provider"))
	viper.BindPFlag("model", cmd.PersistentFlags().Lookup("model"))
	viper.BindPFlag("openai.base_url", cmd.PersistentFlags().Lookup("base-url"))
	viper.BindPFlag("translate.language", cmd.PersistentFlags().Lookup("lang"))
	viper.BindPFlag("translate.concurrency", cmd.PersistentFlags().Lookup("concurrency"))
	viper.BindPFlag("translate.strict", cmd.PersistentFlags().Lookup("strict"))
	viper.BindPFlag("translate.timeout", cmd.PersistentFlags().Lookup("timeout"))
	viper.BindPFlag("output.directory", cmd.Flags().Lookup("output-dir"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	// A missing .env is fine; real environment variables win over it
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".jsonlingo" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".jsonlingo")
	}

	setDefaults()

	// Environment variables
	viper.SetEnvPrefix("JSONLINGO")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("openai.api_key")
}

// GetOpenAIBaseURL returns the OpenAI-compatible endpoint from --base-url or config
func GetOpenAIBaseURL() string {
	return viper.GetString("openai.base_url")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("gemini.api_key")
}
