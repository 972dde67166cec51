package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/logging"
	"github.com/Zachkp/folio/internal/mailer"
	"github.com/Zachkp/folio/internal/store"
	"github.com/Zachkp/folio/internal/web"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if servePort != "" {
			cfg.Server.Port = servePort
		}
		log := logging.Log

		provider, err := content.Load(cfg.Content.Dir, cfg.UI.DefaultLocale)
		if err != nil {
			return fmt.Errorf("loading content: %w", err)
		}

		st, err := store.Open(cfg.DB.Path)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer st.Close()

		srv, err := web.New(web.Deps{
			Config:  cfg,
			Content: provider,
			Store:   st,
			Sender:  &mailer.Archive{Next: contactSender(cfg), Recorder: st, Log: log},
			Log:     log,
		})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log.WithFields(logrus.Fields{
			"locales": provider.Locales(),
			"contact": cfg.Contact.Mode,
			"db":      cfg.DB.Path,
		}).Info("folio starting")
		return srv.Run(ctx)
	},
}

func contactSender(cfg *config.Config) mailer.Sender {
	if cfg.Contact.Mode == config.ContactSMTP {
		return mailer.NewSMTP(cfg.Contact.SMTP)
	}
	return mailer.Simulated{Delay: cfg.Contact.SimulateDelay}
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "port to listen on (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}
