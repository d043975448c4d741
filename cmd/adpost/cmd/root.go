// Package cmd implements the adpost CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/donaldgifford/adposting/internal/config"
)

// envKeys are the config keys that may be set through ADPOST_* variables.
var envKeys = []string{
	"api.base_url", "api.vendor", "api.user_agent", "api.timeout", "api.log_bodies",
	"oauth.token_url", "oauth.client_id", "oauth.client_secret", "oauth.scopes", "oauth.token",
	"rate_limit.per_second", "rate_limit.burst", "rate_limit.daily_limit",
	"journal.backend", "journal.path", "journal.dsn",
	"sync.interval", "sync.limit", "sync.stagger",
	"notifications.discord.enabled", "notifications.discord.webhook_url",
	"telemetry.otlp_endpoint", "telemetry.insecure", "telemetry.service_name",
	"logging.level", "logging.format",
}

type rootOptions struct {
	cfgFile  string
	output   string
	showHTTP bool
	v        *viper.Viper
	cfg      *config.Config
}

func newRootCmd() *cobra.Command {
	o := &rootOptions{v: viper.New()}

	root := &cobra.Command{
		Use:   "adpost",
		Short: "CLI client for the Ad Posting API",
		Long: "adpost posts, updates and expires job advertisements through the Ad Posting API\n" +
			"and keeps a local journal of what was posted so processing status can be followed up.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&o.cfgFile, "config", "", "config file (default $HOME/.adpost.yaml)")
	pf.StringVarP(&o.output, "output", "o", "table", "output format (table, json)")
	pf.BoolVar(&o.showHTTP, "show-http", false, "print the HTTP exchanges to stderr")
	pf.String("base-url", "", "API base URL")
	pf.String("vendor", "", "media type vendor tree")
	pf.String("token", "", "pre-acquired access token")
	pf.String("journal", "", "journal backend (bbolt, postgres, none)")
	pf.String("log-level", "", "log level (debug, info, warn, error)")

	cobra.CheckErr(o.v.BindPFlag("api.base_url", pf.Lookup("base-url")))
	cobra.CheckErr(o.v.BindPFlag("api.vendor", pf.Lookup("vendor")))
	cobra.CheckErr(o.v.BindPFlag("oauth.token", pf.Lookup("token")))
	cobra.CheckErr(o.v.BindPFlag("journal.backend", pf.Lookup("journal")))
	cobra.CheckErr(o.v.BindPFlag("logging.level", pf.Lookup("log-level")))

	root.AddCommand(
		indexCmd(o),
		getCmd(o),
		createCmd(o),
		updateCmd(o),
		expireCmd(o),
		journalCmd(o),
		versionCmd(),
	)

	return root
}

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return newRootCmd()
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	// A local .env is optional.
	_ = godotenv.Load()

	root := newRootCmd()
	if err := root.Execute(); err != nil {
		printError(root.ErrOrStderr(), err)
		return exitCode(err)
	}
	return 0
}

// loadConfig merges the config file, ADPOST_* environment and flags.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	if o.cfg != nil {
		return o.cfg, nil
	}

	o.v.SetEnvPrefix("ADPOST")
	o.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	o.v.AutomaticEnv()
	for _, k := range envKeys {
		if err := o.v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("binding %s: %w", k, err)
		}
	}

	path, err := o.configPath()
	if err != nil {
		return nil, err
	}
	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		o.v.SetConfigType("yaml")
		if err := o.v.ReadConfig(strings.NewReader(os.ExpandEnv(string(data)))); err != nil {
			return nil, fmt.Errorf("parsing config YAML: %w", err)
		}
	}

	cfg := &config.Config{}
	if err := o.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	o.cfg = cfg
	return cfg, nil
}

func (o *rootOptions) configPath() (string, error) {
	if o.cfgFile != "" {
		return o.cfgFile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", nil //nolint:nilerr // no home directory means no default config
	}
	path := filepath.Join(home, ".adpost.yaml")
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("checking default config: %w", err)
	}
	return path, nil
}

func (o *rootOptions) jsonOutput() bool {
	return o.output == "json"
}
