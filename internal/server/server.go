package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/backoffice/internal/audit"
	auditdomain "github.com/smallbiznis/backoffice/internal/audit/domain"
	"github.com/smallbiznis/backoffice/internal/auth"
	authdomain "github.com/smallbiznis/backoffice/internal/auth/domain"
	"github.com/smallbiznis/backoffice/internal/auth/session"
	"github.com/smallbiznis/backoffice/internal/category"
	categorydomain "github.com/smallbiznis/backoffice/internal/category/domain"
	"github.com/smallbiznis/backoffice/internal/config"
	"github.com/smallbiznis/backoffice/internal/customer"
	customerdomain "github.com/smallbiznis/backoffice/internal/customer/domain"
	"github.com/smallbiznis/backoffice/internal/observability"
	obsmiddleware "github.com/smallbiznis/backoffice/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/backoffice/internal/observability/metrics"
	obstracing "github.com/smallbiznis/backoffice/internal/observability/tracing"
	"github.com/smallbiznis/backoffice/internal/product"
	productdomain "github.com/smallbiznis/backoffice/internal/product/domain"
	"github.com/smallbiznis/backoffice/internal/promotion"
	promotiondomain "github.com/smallbiznis/backoffice/internal/promotion/domain"
	"github.com/smallbiznis/backoffice/internal/ratelimit"
	"github.com/smallbiznis/backoffice/internal/upload"
	uploaddomain "github.com/smallbiznis/backoffice/internal/upload/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	audit.Module,
	auth.Module,
	category.Module,
	customer.Module,
	product.Module,
	promotion.Module,
	upload.Module,
	ratelimit.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	if httpMetrics != nil {
		r.Use(httpMetrics.GinMiddleware())
	}
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if httpMetrics != nil {
		r.GET("/metrics", httpMetrics.Handler())
	}

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	addr := strings.TrimSpace(cfg.HTTPAddr)
	if addr == "" {
		addr = ":8080"
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine        *gin.Engine
	cfg           config.Config
	catalogCfg    *config.CatalogConfigHolder
	db            *gorm.DB
	authsvc       authdomain.Service
	sessions      *session.Manager
	genID         *snowflake.Node
	categorySvc   categorydomain.Service
	customerSvc   customerdomain.Service
	productSvc    productdomain.Service
	promotionSvc  promotiondomain.Service
	uploadSvc     uploaddomain.Service
	auditSvc      auditdomain.Service
	uploadLimiter *ratelimit.UploadLimiter
	obsMetrics    *obsmetrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	Cfg           config.Config
	CatalogCfg    *config.CatalogConfigHolder
	DB            *gorm.DB
	Authsvc       authdomain.Service
	Sessions      *session.Manager
	GenID         *snowflake.Node
	CategorySvc   categorydomain.Service
	CustomerSvc   customerdomain.Service
	ProductSvc    productdomain.Service
	PromotionSvc  promotiondomain.Service
	UploadSvc     uploaddomain.Service
	AuditSvc      auditdomain.Service      `optional:"true"`
	UploadLimiter *ratelimit.UploadLimiter `optional:"true"`
	ObsMetrics    *obsmetrics.Metrics      `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	catalogCfg := p.CatalogCfg
	if catalogCfg == nil {
		catalogCfg = config.NewStaticCatalogConfigHolder(config.DefaultCatalogConfig())
	}

	svc := &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		catalogCfg:    catalogCfg,
		db:            p.DB,
		authsvc:       p.Authsvc,
		sessions:      p.Sessions,
		genID:         p.GenID,
		categorySvc:   p.CategorySvc,
		customerSvc:   p.CustomerSvc,
		productSvc:    p.ProductSvc,
		promotionSvc:  p.PromotionSvc,
		uploadSvc:     p.UploadSvc,
		auditSvc:      p.AuditSvc,
		uploadLimiter: p.UploadLimiter,
		obsMetrics:    p.ObsMetrics,
	}

	svc.registerAssetRoutes()
	svc.registerAuthRoutes()
	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAssetRoutes() {
	dir := strings.TrimSpace(s.cfg.Upload.Dir)
	prefix := strings.TrimSpace(s.cfg.Upload.URLPrefix)
	if dir == "" || prefix == "" {
		return
	}
	s.engine.Static(prefix, dir)
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/api/auth")

	auth.POST("/login", s.Login)
	auth.POST("/logout", s.Logout)
	auth.GET("/me", s.SessionContext(), s.Me)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api", s.SessionContext())

	// -------- Product --------
	api.GET("/product", s.ListProducts)
	api.POST("/product", s.CreateProduct)
	api.GET("/product/:id", s.GetProductByID)
	api.PUT("/product/:id", s.UpdateProduct)
	api.DELETE("/product/:id", s.DeleteProduct)

	// -------- Category --------
	api.GET("/category", s.ListCategories)
	api.POST("/category", s.CreateCategory)
	api.GET("/category/:id", s.GetCategoryByID)
	api.PUT("/category/:id", s.UpdateCategory)
	api.DELETE("/category/:id", s.DeleteCategory)

	// -------- Customer --------
	api.GET("/customer", s.ListCustomers)
	api.POST("/customer", s.CreateCustomer)
	api.GET("/customer/:id", s.GetCustomerByID)
	api.PUT("/customer/:id", s.UpdateCustomer)
	api.DELETE("/customer/:id", s.DeleteCustomer)

	// -------- Promotion --------
	api.GET("/promotion", s.ListPromotions)
	api.POST("/promotion", s.CreatePromotion)
	api.GET("/promotion/:id", s.GetPromotionByID)
	api.PUT("/promotion/:id", s.UpdatePromotion)
	api.DELETE("/promotion/:id", s.DeletePromotion)

	// -------- Audit --------
	api.GET("/audit-logs", s.ListAuditLogs)

	// -------- Upload --------
	api.POST("/upload", s.UploadRateLimit(), s.Upload)
}
