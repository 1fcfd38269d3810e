package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "SHAREDKERNEL"

// envKeyReplacer maps flag names such as sqlite-dsn to SHAREDKERNEL_SQLITE_DSN.
var envKeyReplacer = strings.NewReplacer("-", "_")

const (
	storageMemory = "memory"
	storageSqlite = "sqlite"
)

// Config keys, also used as flag names.
const (
	cfgKeyHost      = "host"
	cfgKeyPort      = "port"
	cfgKeyStorage   = "storage"
	cfgKeySqliteDsn = "sqlite-dsn"
	cfgKeyLogFormat = "log-format"
	cfgKeyLogLevel  = "log-level"
)

type config struct {
	Host      string
	Port      string
	Storage   string
	SqliteDsn string
	LogFormat string
	LogLevel  string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:          "web",
		Short:        "Category catalog service built on the shared kernel",
		SilenceUsage: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.AddCommand(newServeCmd(stdout))
	return root
}

func newServeCmd(stdout io.Writer) *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the category HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, stdout)
		},
	}

	flags := cmd.Flags()
	flags.String(cfgKeyHost, "localhost", "address to listen on")
	flags.String(cfgKeyPort, "8080", "port to listen on")
	flags.String(cfgKeyStorage, storageMemory, "category storage: memory or sqlite")
	flags.String(cfgKeySqliteDsn, "file:sharedkernel.sqlite", "SQLite data source name")
	flags.String(cfgKeyLogFormat, "text", "log format: text or json")
	flags.String(cfgKeyLogLevel, "info", "log level: debug, info, warn or error")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		panic(fmt.Errorf("bind flags: %w", err))
	}
	return cmd
}

func loadConfig(v *viper.Viper) (config, error) {
	cfg := config{
		Host:      v.GetString(cfgKeyHost),
		Port:      v.GetString(cfgKeyPort),
		Storage:   strings.ToLower(v.GetString(cfgKeyStorage)),
		SqliteDsn: v.GetString(cfgKeySqliteDsn),
		LogFormat: strings.ToLower(v.GetString(cfgKeyLogFormat)),
		LogLevel:  v.GetString(cfgKeyLogLevel),
	}
	switch cfg.Storage {
	case storageMemory, storageSqlite:
	default:
		return config{}, fmt.Errorf("unknown storage %q", cfg.Storage)
	}
	if cfg.Storage == storageSqlite && cfg.SqliteDsn == "" {
		return config{}, fmt.Errorf("%s must be set for sqlite storage", cfgKeySqliteDsn)
	}
	return cfg, nil
}

func newLogger(cfg config, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	opts := &slog.HandlerOptions{Level: level}
	switch cfg.LogFormat {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}
}
