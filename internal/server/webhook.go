package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kudobolivia/frontdesk/internal/biz/usecase"
	"github.com/kudobolivia/frontdesk/internal/service"
)

const maxBodyBytes = 1 << 20

// WebhookServer exposes the WhatsApp webhook and operational endpoints over HTTP
type WebhookServer struct {
	convSvc     *service.ConversationService
	sessionUC   *usecase.SessionUsecase
	probe       *service.AuditProbe
	verifyToken string
	logger      *zap.Logger

	http *http.Server
}

// NewWebhookServer creates a new webhook server
func NewWebhookServer(
	convSvc *service.ConversationService,
	sessionUC *usecase.SessionUsecase,
	probe *service.AuditProbe,
	verifyToken string,
	logger *zap.Logger,
) *WebhookServer {
	return &WebhookServer{
		convSvc:     convSvc,
		sessionUC:   sessionUC,
		probe:       probe,
		verifyToken: verifyToken,
		logger:      logger,
	}
}

// Router builds the gin engine
func (s *WebhookServer) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.accessLog())

	r.GET("/webhook", s.verify)
	r.POST("/webhook", s.receive)
	r.GET("/testsheet", s.testSheet)
	r.GET("/health", s.health)
	return r
}

// Start listens on addr until Shutdown is called
func (s *WebhookServer) Start(addr string) error {
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("webhook server listening", zap.String("addr", addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *WebhookServer) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// verify answers Meta's subscription handshake
func (s *WebhookServer) verify(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token == s.verifyToken {
		c.String(http.StatusOK, challenge)
		return
	}
	s.logger.Warn("webhook verification rejected", zap.String("mode", mode))
	c.String(http.StatusForbidden, "Error de verificación")
}

// receive handles an inbound notification. It always answers 200 so the
// platform does not redeliver.
func (s *WebhookServer) receive(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		s.logger.Warn("failed to read webhook body", zap.Error(err))
		c.String(http.StatusOK, "ok")
		return
	}

	payload, err := ParsePayload(body)
	if err != nil {
		s.logger.Warn("malformed webhook payload", zap.Error(err))
		c.String(http.StatusOK, "ok")
		return
	}

	msg, ok := payload.FirstTextMessage()
	if !ok {
		c.String(http.StatusOK, "ok")
		return
	}

	// The cycle runs to completion even if the platform drops the connection.
	// Failures are logged by the service.
	ctx := context.WithoutCancel(c.Request.Context())
	_, _ = s.convSvc.HandleMessage(ctx, &service.MessageRequest{
		MsgID:  msg.ID,
		Sender: msg.From,
		Text:   msg.Text.Body,
	})
	c.String(http.StatusOK, "ok")
}

// testSheet writes a marker row to the interest log
func (s *WebhookServer) testSheet(c *gin.Context) {
	if err := s.probe.Probe(c.Request.Context()); err != nil {
		s.logger.Error("audit probe failed", zap.Error(err))
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	c.String(http.StatusOK, "Escritura exitosa")
}

func (s *WebhookServer) health(c *gin.Context) {
	count, err := s.sessionUC.ActiveCount(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "active_sessions": count})
}

func (s *WebhookServer) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}
