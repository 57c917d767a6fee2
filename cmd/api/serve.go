package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-outreach/internal/config"
	"github.com/xavierca1/ligue-outreach/internal/infra/database"
	"github.com/xavierca1/ligue-outreach/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-outreach/internal/infra/integration/automation"
	"github.com/xavierca1/ligue-outreach/internal/infra/integration/unipile"
	"github.com/xavierca1/ligue-outreach/internal/infra/mail"
	"github.com/xavierca1/ligue-outreach/internal/infra/queue"
	"github.com/xavierca1/ligue-outreach/internal/logger"
	"github.com/xavierca1/ligue-outreach/internal/usecase"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Sobe a API HTTP (e o worker de workflows quando o RabbitMQ está configurado)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		log, err := logger.New(cfg.Log.Level)
		if err != nil {
			return err
		}
		defer log.Sync()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return serve(ctx, cfg, log)
	},
}

func serve(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	// 1. Banco
	db, err := database.NewDBConnection(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Database.MigrateOnStart {
		if err := database.RunMigrations(db); err != nil {
			return err
		}
		log.Info("✅ migrations aplicadas")
	}

	// 2. Repositórios
	leadRepo := database.NewLeadRepository(db)
	accountRepo := database.NewLinkedInAccountRepository(db)
	settingsRepo := database.NewSettingsRepository(db)

	// 3. Integrações
	timeout := time.Duration(cfg.Unipile.TimeoutSeconds) * time.Second
	broker := unipile.NewClient(cfg.Unipile.APIKey, cfg.Unipile.BaseURL, timeout)
	automationClient := automation.NewClient(timeout)
	mailSender := mail.NewEmailSender(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Password, cfg.Mail.From)

	// 4. Fila de workflows. Sem RABBITMQ_URL o disparo é direto.
	var (
		dispatcher usecase.WorkflowDispatcher = automationClient
		brokerConn handlers.BrokerConn
		queued     bool
	)
	if cfg.RabbitMQ.URL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQ.URL)
		if err != nil {
			return err
		}
		defer rabbitMQ.Close()

		dispatcher = queue.NewProducer(rabbitMQ.Ch)
		brokerConn = rabbitMQ.Conn
		queued = true

		worker := queue.NewWorker(rabbitMQ.Ch, automationClient, log)
		go func() {
			if err := worker.Start(ctx, queue.QueueName); err != nil {
				log.Error("❌ worker parou", zap.Error(err))
			}
		}()
	} else {
		log.Warn("⚠️ RABBITMQ_URL vazio, workflows serão disparados de forma síncrona")
	}

	// 5. UseCases
	leadsUC := usecase.NewManageLeadsUseCase(leadRepo, log)
	reconcileUC := usecase.NewReconcileLinkedInUseCase(
		broker, accountRepo, settingsRepo,
		cfg.Unipile.NotifyURL, cfg.Unipile.SuccessRedirectURL, log,
	)

	// 6. Router
	router := handlers.Router{
		Health: handlers.NewHealthHandler(db, brokerConn, cfg.Mail.Host != "", cfg.Unipile.APIKey != ""),
		Imports: handlers.NewImportHandler(
			usecase.NewParseLeadsUseCase(cfg.Import.DefaultRegion, log),
			usecase.NewCommitImportUseCase(leadRepo, cfg.Import.BatchSize, cfg.Import.DefaultRegion, log),
		),
		Leads:       handlers.NewLeadHandler(leadsUC),
		Campaigns:   handlers.NewCampaignHandler(leadsUC, usecase.NewSendCampaignEmailUseCase(leadRepo, settingsRepo, mailSender, log)),
		Settings:    handlers.NewSettingsHandler(usecase.NewManageSettingsUseCase(settingsRepo, log)),
		Workflows:   handlers.NewWorkflowHandler(usecase.NewTriggerWorkflowUseCase(settingsRepo, dispatcher, queued, log)),
		LinkedIn:    handlers.NewLinkedInHandler(reconcileUC, cfg.Webhook.Secret, log),
		CORSOrigins: cfg.HTTP.CORSOrigins,
	}

	srv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("🔥 Server Ligue Outreach rodando", zap.String("port", cfg.HTTP.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("⚠️ desligando servidor")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
