// Package cmd holds the cobra command tree of the storefront CLI.
package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/storefront-client/internal/app"
	"github.com/samvad-hq/storefront-client/internal/config"
	"github.com/samvad-hq/storefront-client/internal/logger"
)

// globalFlags override values loaded from the environment.
type globalFlags struct {
	apiURL   string
	output   string
	logLevel string
}

// session is built once per invocation by the root PersistentPreRunE.
type session struct {
	cfg *config.Config
	log *logger.ZapLogger
	app *app.App
}

// Execute runs the CLI with args, reading from in and writing command output to out.
// The session opened by the command is always released, including when the command fails.
func Execute(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	sess := &session{}
	root := newRootCmd(sess)
	root.SetArgs(args)
	if in != nil {
		root.SetIn(in)
	}
	if out != nil {
		root.SetOut(out)
	}
	defer sess.close()
	return root.ExecuteContext(ctx)
}

func newRootCmd(sess *session) *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:   "storefront",
		Short: "Command line client for the storefront API",
		Long: `Talk to the storefront REST API: register and log in, browse and manage
products, and edit your cart. The access token returned by login is kept in a
local session store and attached to every later request.

Configuration comes from the environment (API_URL, TOKEN_STORE, BBOLT_PATH,
LOG_LEVEL, OUTPUT_FORMAT, PUBLISHERS_FILE) or configs/.env.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return sess.open(cmd, flags)
		},
	}

	root.PersistentFlags().StringVar(&flags.apiURL, "api-url", "", "API base URL (overrides API_URL)")
	root.PersistentFlags().StringVarP(&flags.output, "output", "o", "", "output format: json or yaml (overrides OUTPUT_FORMAT)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides LOG_LEVEL)")

	root.AddCommand(
		newAuthCmd(sess),
		newProductsCmd(sess),
		newCartCmd(sess),
	)
	return root
}

func (s *session) open(cmd *cobra.Command, flags globalFlags) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if v := strings.TrimSpace(flags.apiURL); v != "" {
		cfg.APIURL = strings.TrimRight(v, "/")
	}
	if v := strings.ToLower(strings.TrimSpace(flags.output)); v != "" {
		if v != "json" && v != "yaml" {
			return fmt.Errorf("invalid --output %q (expected json or yaml)", flags.output)
		}
		cfg.OutputFormat = v
	}
	if v := strings.TrimSpace(flags.logLevel); v != "" {
		cfg.LogLevel = v
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	s.log = log
	log.DebugObj("storefront starting", "config", cfg)

	a, err := app.New(cmd.Context(), cfg, log)
	if err != nil {
		log.ErrorObj("failed to initialize app", "error", err)
		return err
	}
	s.cfg = cfg
	s.app = a
	return nil
}

func (s *session) close() error {
	var err error
	if s.app != nil {
		err = s.app.Close()
		s.app = nil
	}
	if s.log != nil {
		// stderr reports EINVAL on sync for terminals.
		_ = s.log.Sync()
		s.log = nil
	}
	return err
}
