package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/transformellica/crm-api/pkg/ai"
	"github.com/transformellica/crm-api/pkg/config"
	"github.com/transformellica/crm-api/pkg/db"
	"github.com/transformellica/crm-api/pkg/models"
	"github.com/transformellica/crm-api/pkg/storage"
	"github.com/transformellica/crm-api/pkg/tabular"
)

// Datastore is the persistence surface the handlers need.
type Datastore interface {
	TableExists(ctx context.Context, tableName string) (bool, error)
	GetUploadedFile(ctx context.Context) (*models.UploadedFile, error)
	SaveUploadedFile(ctx context.Context, publicID, secureURL, originalFilename string) error
	RemoveActiveDataset(ctx context.Context) error
	IngestDataset(ctx context.Context, dataset *tabular.Dataset) error
	Paginate(ctx context.Context, tableName string, offset, limit int) (*db.Page, error)
	CreateReport(ctx context.Context, category string, data json.RawMessage) (*models.Report, error)
	GetReport(ctx context.Context, id string) (*models.Report, error)
	DeleteReport(ctx context.Context, id string) error
	ListReports(ctx context.Context, category string) ([]models.Report, error)
	Close() error
}

// CSVAnalytics is the CSV analysis service surface.
type CSVAnalytics interface {
	Upload(ctx context.Context, csvData []byte, filename string) (json.RawMessage, error)
	DashboardData(ctx context.Context, csvData []byte, filename string) (json.RawMessage, error)
	PatternsInitial(ctx context.Context, csvData []byte, filename string) (json.RawMessage, error)
	AnalyzePatterns(ctx context.Context, csvData []byte, filename, minSupport string) (json.RawMessage, error)
	SmartQuestions(ctx context.Context, csvData []byte, filename string) (json.RawMessage, error)
	AnswerQuestion(ctx context.Context, csvData []byte, filename, question string) (json.RawMessage, error)
}

// InsightService is the SWOT/sentiment/branding analysis surface.
type InsightService interface {
	WebsiteSWOT(ctx context.Context, profile ai.BusinessProfile) (json.RawMessage, error)
	SentimentAnalysis(ctx context.Context, profile ai.BusinessProfile) (json.RawMessage, error)
	SocialSWOT(ctx context.Context, profile ai.BusinessProfile) (json.RawMessage, error)
	BrandingAudit(ctx context.Context, logo []byte, logoFilename string, profile ai.BusinessProfile) (json.RawMessage, error)
}

// BlobStore is the object storage surface.
type BlobStore interface {
	Upload(ctx context.Context, data []byte, publicID, filename, mimeType string) (*storage.StoredObject, error)
	Delete(ctx context.Context, publicID string) error
	Download(ctx context.Context, url string) ([]byte, error)
}

type Server struct {
	config  config.AppConfig
	router  *echo.Echo
	db      Datastore
	crm     CSVAnalytics
	insight InsightService
	blobs   BlobStore
}

func New(cfg config.AppConfig) (*Server, error) {
	database, err := db.New(cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	e := echo.New()

	server := &Server{
		config:  cfg,
		router:  e,
		db:      database,
		crm:     ai.NewCRMClient(cfg.AI.CRMURL),
		insight: ai.NewInsightClient(cfg.AI.InsightURL),
		blobs:   storage.NewClient(cfg.Storage.URL, cfg.Storage.APIKey),
	}

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.FrontendOrigins,
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	e.Logger.SetLevel(log.INFO)

	server.registerRoutes()
	server.setupDefaultRoutes()
	return server, nil
}

func (s *Server) registerRoutes() {
	crm := s.router.Group("/api/crm")
	crm.POST("/data", s.UploadData)
	crm.GET("/data", s.GetData)
	crm.GET("/table", s.CheckTable)
	crm.DELETE("/table", s.DeleteTable)
	crm.GET("/dashboard", s.DashboardData)
	crm.GET("/display-cards", s.DisplayCards)
	crm.GET("/pattern-analysis", s.PatternsInitial)
	crm.POST("/pattern-analysis", s.AnalyzePatterns)
	crm.GET("/smart-question", s.SmartQuestions)
	crm.POST("/smart-question", s.AnswerQuestion)

	social := s.router.Group("/api/social")
	social.POST("/website-swot", s.WebsiteSWOT)
	social.POST("/sentiment-analysis", s.SentimentAnalysis)
	social.POST("/social-swot", s.SocialSWOT)
	social.POST("/branding-audit", s.BrandingAudit)
	social.GET("/reports/:id", s.GetReport)
	social.DELETE("/reports/:id", s.DeleteReport)
	social.GET("/reports/history/:category", s.ReportHistory)
}

func (s *Server) setupDefaultRoutes() {
	s.router.File("/doc.yml", "api-spec.yaml")
	s.router.GET("/swagger/*", echoSwagger.EchoWrapHandlerV3(func(c *echoSwagger.Config) {
		c.URLs = []string{"/doc.yml"}
	}))
}

func (s *Server) Start() error {
	go func() {
		addr := fmt.Sprintf(":%d", s.config.Server.Port)
		if err := s.router.Start(addr); err != nil && err != http.ErrServerClosed {
			s.router.Logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.router.Logger.Info("Shutting down")

	if err := s.router.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}
