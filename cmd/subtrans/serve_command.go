package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"subtrans/internal/api"
	"subtrans/internal/logging"
	"subtrans/internal/session"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bindFlag string
	var noTranslator bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the editing session over HTTP",
		Long: "Serve exposes one subtitle session as a JSON API for browser-based editors.\n" +
			"It runs until interrupted.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			if bind := strings.TrimSpace(bindFlag); bind != "" {
				cfg.Server.Bind = bind
			}

			var translator session.Translator
			if noTranslator {
				logger.Info("translation disabled for this server")
			} else {
				client, release, err := ctx.openTranslator()
				if err != nil {
					return err
				}
				defer release()
				translator = client
			}

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			srv := api.New(cfg, translator, logger)
			if err := srv.Start(signalCtx); err != nil {
				return err
			}
			defer srv.Stop()
			fmt.Fprintf(cmd.OutOrStdout(), "Serving on http://%s\n", srv.Addr())

			<-signalCtx.Done()
			logger.Info("subtrans serve shutting down", logging.String("address", srv.Addr()))
			return nil
		},
	}

	cmd.Flags().StringVar(&bindFlag, "bind", "", "Override server.bind")
	cmd.Flags().BoolVar(&noTranslator, "no-translate", false, "Serve without translation credentials; translate requests fail")
	return cmd
}
