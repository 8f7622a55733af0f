package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	instagood "github.com/reidark/go-instagood"
	"github.com/spf13/cobra"
)

var (
	flagCfg Config
	cfg     Config
	client  *instagood.Client
)

var rootCmd = &cobra.Command{
	Use:           "instagood",
	Short:         "instagood drives an Instagram account through its web endpoints.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig(flagCfg, cmd.Flags().Changed)
		if err != nil {
			return err
		}
		client, err = newClient(cfg)
		return err
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVarP(&flagCfg.Username, "username", "u", "", "account username")
	f.StringVar(&flagCfg.CSRFToken, "csrf-token", "", "csrftoken cookie of an existing session")
	f.StringVar(&flagCfg.SessionID, "session-id", "", "sessionid cookie of an existing session")
	f.StringVar(&flagCfg.Password, "password", "", "password, used when no session cookies are given")
	f.StringVar(&flagCfg.TOTPSecret, "totp-secret", "", "base32 TOTP secret for two-factor login")
	f.StringVar(&flagCfg.Proxy, "proxy", "", "proxy URL for outbound requests")
	f.StringVar(&flagCfg.BaseURL, "base-url", "", "override the web host")
	f.DurationVar(&flagCfg.Timeout, "timeout", 0, "per-request timeout")
	f.BoolVar(&flagCfg.Debug, "debug", false, "log debug diagnostics to stderr")
}

func newClient(cfg Config) (*instagood.Client, error) {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	return instagood.NewClient(instagood.ClientConfig{
		Username:       cfg.Username,
		CSRFToken:      cfg.CSRFToken,
		SessionID:      cfg.SessionID,
		Password:       cfg.Password,
		TOTPSecret:     cfg.TOTPSecret,
		Proxy:          cfg.Proxy,
		BaseURL:        cfg.BaseURL,
		RequestTimeout: cfg.Timeout,
		Logger:         slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})),
	})
}

// ensureSession logs in with the configured password when no session
// cookies were supplied.
func ensureSession(ctx context.Context) error {
	if client.Authenticated() || cfg.Password == "" {
		return nil
	}
	if _, err := client.Login(ctx); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return nil
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
