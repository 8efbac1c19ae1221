// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the proceedings CLI.
// Implements: the stage commands (reviewers, abstracts, booklet, tag, html,
// index, xml, bibliography), the full build, publishing, the ledger, and the
// check, doctor, and status diagnostics.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/proceedings-engine/internal/secrets"
	"github.com/pdiddy/proceedings-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the proceedings CLI.
var rootCmd = &cobra.Command{
	Use:   "proceedings",
	Short: "Build conference proceedings from OpenConf exports",
	Long: `proceedings turns the OpenConf exports of a conference (submissions,
theme assignment, reviewers, uploaded papers) into the abstracts booklet, the
proceedings booklet with DOI-stamped papers, HTML landing pages, and DataCite
metadata for DOI registration.

Each stage is a subcommand; build runs them all in order. Settings come from
proceedings.yaml, PROCEEDINGS_* environment variables, and .secrets/.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./proceedings.yaml or ~/.config/proceedings/proceedings.yaml)")
	rootCmd.PersistentFlags().Bool("overwrite", false, "regenerate outputs that already exist")
}

func initConfig() {
	if err := setDefaults(types.DefaultConfig()); err != nil {
		fmt.Fprintln(os.Stderr, "warning:", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("proceedings")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "proceedings"))
		}
	}

	viper.SetEnvPrefix("PROCEEDINGS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers every key of cfg with viper so nested keys can be
// overridden from the environment (PROCEEDINGS_EVENT_NAME, ...).
func setDefaults(cfg types.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding defaults: %w", err)
	}
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("decoding defaults: %w", err)
	}
	setTree("", tree)
	for _, key := range []string{"publish.access_key_id", "publish.secret_access_key", "publish.endpoint", "ledger.dsn", "booklet.substitutions", "metrics.textfile"} {
		viper.SetDefault(key, "")
	}
	return nil
}

func setTree(prefix string, tree map[string]any) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := v.(map[string]any); ok {
			setTree(key, sub)
			continue
		}
		viper.SetDefault(key, v)
	}
}

// loadConfig returns the merged configuration: defaults, config file,
// environment, then secrets for credentials left empty.
func loadConfig() (types.Config, error) {
	cfg := types.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	secrets.Apply(&cfg, loadedSecrets)
	return cfg, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
