package main

import (
	"context"
	"fmt"
	"net"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kudobolivia/frontdesk/internal/biz"
	"github.com/kudobolivia/frontdesk/internal/biz/domain"
	"github.com/kudobolivia/frontdesk/internal/biz/usecase"
	"github.com/kudobolivia/frontdesk/internal/conf"
	"github.com/kudobolivia/frontdesk/internal/data"
	"github.com/kudobolivia/frontdesk/internal/server"
	"github.com/kudobolivia/frontdesk/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the webhook server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load catalog
	catalog, catalogPath, err := conf.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	if catalogPath == "" {
		logger.Info("using built-in catalog")
	} else {
		logger.Info("catalog loaded", zap.String("path", catalogPath))
	}

	// Initialize repository layer
	repos, err := data.NewRepositories(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("create repositories: %w", err)
	}
	defer repos.Audit.Close()

	logger.Info("providers configured",
		zap.String("delivery", cfg.Delivery.Provider),
		zap.String("generative", cfg.Generative.Provider),
		zap.String("audit", cfg.Audit.Backend),
		zap.Bool("lark_alerts", repos.Alert != nil),
		zap.Int("admins", len(cfg.AdminNumbers)))

	// Initialize usecase layer
	ucs := newUsecases(catalog, repos)

	// Initialize service layer
	convSvc := service.NewConversationService(ucs.Conversation, logger.Named("conversation"))
	sweeper := service.NewSessionSweeper(ucs.Session, cfg.Session.SweepInterval(), logger.Named("sweeper"))
	probe := service.NewAuditProbe(repos.Audit)

	// Initialize server
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := server.NewWebhookServer(convSvc, ucs.Session, probe, cfg.Webhook.VerifyToken, logger.Named("webhook"))

	sweeper.Start()
	defer sweeper.Stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(net.JoinHostPort("", cfg.Webhook.Port))
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

func newUsecases(catalog *domain.Catalog, repos *data.Repositories) *biz.Usecases {
	sessionUC := usecase.NewSessionUsecase(repos.Session, cfg.Session.ToSessionConfig())
	routerUC := usecase.NewRouterUsecase(catalog, cfg.Webhook.GroupMarker)
	responderUC := usecase.NewResponderUsecase(repos.Responder, cfg.Generative.ToResponderConfig(), catalog.Fallback, logger.Named("responder"))
	convUC := usecase.NewConversationUsecase(
		sessionUC,
		routerUC,
		responderUC,
		repos.Message,
		repos.Audit,
		repos.Alert,
		cfg.AdminNumbers,
		logger.Named("router"),
	)

	return &biz.Usecases{
		Session:      sessionUC,
		Router:       routerUC,
		Responder:    responderUC,
		Conversation: convUC,
	}
}
