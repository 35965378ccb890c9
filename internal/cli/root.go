package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/wordbank/internal/logging"
	"github.com/ppiankov/wordbank/internal/model"
)

// Version is the wordbank release
const Version = "0.1.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "wordbank",
	Short: "Wordbank - lexicon-based sentiment for financial headlines",
	Long: `Wordbank scores short financial texts (news headlines, article titles)
against a fixed word bank of market phrases.

Each phrase carries a base score by category. Intensity modifiers and
negations in the few words before a phrase adjust it, and the adjusted
scores are averaged and squashed into [-1, 1].

The same text and lexicon always produce the same score.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		level := cfg.Log.Level
		if verbose {
			level = "debug"
		}
		logging.InitLogger(level, cfg.Log.Format, os.Stderr)
		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number of wordbank and the embedded lexicon.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		lex, err := loadLexicon()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wordbank v%s (lexicon %s)\n", Version, lex.Version())
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.wordbank/config.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	flags.String("lexicon", "", "lexicon YAML file (default: embedded financial lexicon)")
	flags.Int("window", model.DefaultConfig().Lexicon.Window, "tokens before a phrase inspected for modifiers and negations")
	flags.String("log-level", model.DefaultConfig().Log.Level, "log level (debug, info, warn, error)")
	flags.String("log-format", model.DefaultConfig().Log.Format, "log format (text, json)")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = viper.BindPFlag("lexicon.path", flags.Lookup("lexicon"))
	_ = viper.BindPFlag("lexicon.window", flags.Lookup("window"))
	_ = viper.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("log.format", flags.Lookup("log-format"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	setDefaults(model.DefaultConfig())

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(model.DefaultConfigDir())
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match WORDBANK_*, e.g. WORDBANK_BATCH_WORKERS
	viper.SetEnvPrefix("WORDBANK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	} else if err != nil && cfgFile != "" {
		fmt.Fprintf(os.Stderr, "Warning: failed to read config %s: %v\n", cfgFile, err)
	}
}

// setDefaults registers every config key so AutomaticEnv can resolve it during Unmarshal
func setDefaults(cfg *model.Config) {
	viper.SetDefault("lexicon.path", cfg.Lexicon.Path)
	viper.SetDefault("lexicon.window", cfg.Lexicon.Window)
	viper.SetDefault("batch.text_column", cfg.Batch.TextColumn)
	viper.SetDefault("batch.score_column", cfg.Batch.ScoreColumn)
	viper.SetDefault("batch.hits_column", cfg.Batch.HitsColumn)
	viper.SetDefault("batch.present_column", cfg.Batch.PresentColumn)
	viper.SetDefault("batch.workers", cfg.Batch.Workers)
	viper.SetDefault("batch.timeout", cfg.Batch.Timeout)
	viper.SetDefault("cache.enabled", cfg.Cache.Enabled)
	viper.SetDefault("cache.dir", cfg.Cache.Dir)
	viper.SetDefault("cache.memory_ttl", cfg.Cache.MemoryTTL)
	viper.SetDefault("cache.disk_ttl", cfg.Cache.DiskTTL)
	viper.SetDefault("http.timeout", cfg.HTTP.Timeout)
	viper.SetDefault("http.user_agent", cfg.HTTP.UserAgent)
	viper.SetDefault("http.max_bytes", cfg.HTTP.MaxBytes)
	viper.SetDefault("http.http_proxy", cfg.HTTP.HTTPProxy)
	viper.SetDefault("http.https_proxy", cfg.HTTP.HTTPSProxy)
	viper.SetDefault("http.no_proxy", cfg.HTTP.NoProxy)
	viper.SetDefault("http.insecure_tls", cfg.HTTP.InsecureTLS)
	viper.SetDefault("http.respect_robots", cfg.HTTP.RespectRobots)
	viper.SetDefault("log.level", cfg.Log.Level)
	viper.SetDefault("log.format", cfg.Log.Format)
}

// loadConfig resolves flags, env, config file and defaults into a Config
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Cache.Dir != "" {
		cfg.Cache.Dir = expandHome(cfg.Cache.Dir)
	}
	if cfg.Lexicon.Path != "" {
		cfg.Lexicon.Path = expandHome(cfg.Lexicon.Path)
	}
	return cfg, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
