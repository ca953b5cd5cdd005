package storefront

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/damoang/rokn-storefront/internal/config"
	"github.com/damoang/rokn-storefront/internal/middleware"
	"github.com/damoang/rokn-storefront/internal/migration"
	"github.com/damoang/rokn-storefront/internal/plugin"
	"github.com/damoang/rokn-storefront/internal/plugins/storefront/advisor"
	"github.com/damoang/rokn-storefront/internal/plugins/storefront/exporter"
	"github.com/damoang/rokn-storefront/internal/plugins/storefront/handler"
	sfmiddleware "github.com/damoang/rokn-storefront/internal/plugins/storefront/middleware"
	"github.com/damoang/rokn-storefront/internal/plugins/storefront/repository"
	"github.com/damoang/rokn-storefront/internal/plugins/storefront/security"
	"github.com/damoang/rokn-storefront/internal/plugins/storefront/service"
	"github.com/damoang/rokn-storefront/internal/ws"
	"github.com/damoang/rokn-storefront/pkg/cache"
	"github.com/damoang/rokn-storefront/pkg/i18n"
)

// PluginName 플러그인 이름 (라우트 그룹 /{base}/storefront)
const PluginName = "storefront"

// Options 플러그인 설정
type Options struct {
	Storefront config.StorefrontConfig
	Advisor    config.AdvisorConfig
	// AllowOrigins WebSocket 허용 Origin (쉼표 구분, 비었거나 "*"이면 모두)
	AllowOrigins string
}

// StorefrontPlugin 카탈로그/장바구니/가격 엔진 플러그인
type StorefrontPlugin struct {
	opts   Options
	db     *gorm.DB
	redis  *redis.Client
	cache  cache.Service
	logger plugin.Logger

	catalog   service.CatalogService
	sessions  *service.SessionManager
	persister *service.Persister
	hub       *ws.Hub

	rateLimiter    *sfmiddleware.RateLimiter
	catalogHandler *handler.CatalogHandler
	cartHandler    *handler.CartHandler
	sessionHandler *handler.SessionHandler
	advisorHandler *handler.AdvisorHandler
	wsHandler      *handler.WSHandler
}

// New 새 상점 플러그인 생성
func New(opts Options) *StorefrontPlugin {
	return &StorefrontPlugin{opts: opts}
}

// Name 플러그인 이름 반환
func (p *StorefrontPlugin) Name() string {
	return PluginName
}

// Migrate 상품/분류/키-값 테이블 생성
func (p *StorefrontPlugin) Migrate(db *gorm.DB) error {
	return migration.Run(db)
}

// Initialize 플러그인 초기화
func (p *StorefrontPlugin) Initialize(ctx *plugin.PluginContext) error {
	p.db = ctx.DB
	p.redis = ctx.Redis
	p.logger = ctx.Logger
	cfg := p.opts.Storefront

	if p.db == nil {
		return errors.New("storefront requires a database")
	}

	locale := i18n.Normalize(cfg.DefaultLocale)
	messages := i18n.NewDefaultBundle(locale)
	if cfg.MessagesDir != "" {
		if err := messages.LoadDir(cfg.MessagesDir); err != nil {
			return fmt.Errorf("load messages: %w", err)
		}
	}

	// ============================================
	// DI: Repository 생성
	// ============================================
	var productRepo repository.ProductRepository = repository.NewProductRepository(p.db)
	var store repository.KeyValueStore
	p.cache = cache.NewService(p.redis)
	if p.cache.IsAvailable() {
		if cfg.CacheProducts {
			productRepo = repository.NewCachedProductRepository(productRepo, p.cache, nil, p.logger)
			p.logger.Info("Product repository caching enabled")
		}
		store = repository.NewRedisKVStore(p.cache)
	} else {
		store = repository.NewGormKVStore(p.db)
	}
	taxonomyRepo := repository.NewTaxonomyRepository(p.db)

	// ============================================
	// DI: Service 생성
	// ============================================
	catalog, err := service.NewCatalogService(productRepo, taxonomyRepo)
	if err != nil {
		return err
	}
	p.catalog = catalog

	if cfg.SeedCatalog {
		n, err := catalog.Seed(context.Background())
		if err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
		if n > 0 {
			p.logger.Info("Seeded %d products", n)
		}
	}

	fee, err := cfg.DeliveryFeeDecimal()
	if err != nil {
		return fmt.Errorf("delivery fee: %w", err)
	}
	pricing := service.Pricing{
		DeliveryFee:   fee,
		PointsDivisor: cfg.PointsDivisor,
		Currency:      cfg.Currency,
	}

	p.persister = service.NewPersister(store, p.logger)
	p.sessions = service.NewSessionManager(store, p.persister, p.logger, locale, func(l i18n.Locale) string {
		return messages.T(l, "advisor.greeting")
	})

	// 실시간 알림 (Redis가 있으면 인스턴스 간 중계)
	p.hub = ws.NewHub(p.redis, p.logger)
	go p.hub.Run()

	notifications := service.NewNotificationCenter(messages)
	notifications.SetPusher(p.hub)
	notifications.Subscribe(ctx.Events, PluginName)

	storefront := service.NewStorefrontService(catalog, p.sessions, pricing, ctx.Events, notifications)
	checkout := service.NewCheckoutService(pricing, exporter.NewWhatsAppExporter(cfg.WhatsAppNumber, messages), ctx.Events, p.logger, cfg.StoreName)

	gemini := advisor.NewGeminiClient(advisor.Config{
		BaseURL: p.opts.Advisor.BaseURL,
		Model:   p.opts.Advisor.Model,
		APIKey:  p.opts.Advisor.APIKey,
		Timeout: p.opts.Advisor.Timeout(),
	}, messages, p.logger)
	if !gemini.Available() {
		p.logger.Warn("Advisor API key not configured, replies will use the fallback message")
	}
	advisorService := service.NewAdvisorService(gemini, catalog, p.logger, p.opts.Advisor.Timeout()).WithPusher(p.hub)

	// ============================================
	// 어드바이저 호출 제한 (세션 기준)
	// ============================================
	p.rateLimiter = sfmiddleware.NewRateLimiter(p.redis, &sfmiddleware.RateLimitConfig{
		RequestsPerMinute: p.opts.Advisor.RatePerMinute,
	}, middleware.GetSessionID)

	// ============================================
	// DI: Handler 생성
	// ============================================
	p.catalogHandler = handler.NewCatalogHandler(storefront, catalog, security.NewSanitizer(), cfg.Currency)
	p.cartHandler = handler.NewCartHandler(storefront, checkout)
	p.sessionHandler = handler.NewSessionHandler(storefront)
	p.advisorHandler = handler.NewAdvisorHandler(storefront, advisorService, p.opts.Advisor.Timeout()+5*time.Second)
	p.wsHandler = handler.NewWSHandler(p.hub, p.opts.AllowOrigins)

	// ============================================
	// 유휴 세션 정리
	// ============================================
	if ctx.Scheduler != nil && cfg.SessionIdleMinute > 0 {
		idle := time.Duration(cfg.SessionIdleMinute) * time.Minute
		ctx.Scheduler.Register(PluginName, "session-sweep", sweepInterval(idle), func(context.Context) error {
			if n := p.sessions.Sweep(idle); n > 0 {
				p.logger.Info("Swept %d idle sessions", n)
			}
			return nil
		})
	}

	p.logger.Info("Storefront plugin initialized (currency=%s, delivery_fee=%s)", cfg.Currency, fee.String())
	return nil
}

// RegisterRoutes 라우트 등록
func (p *StorefrontPlugin) RegisterRoutes(router gin.IRouter) {
	// ============================================
	// 카탈로그
	// ============================================
	router.GET("/products", p.catalogHandler.ListProducts)
	router.GET("/products/:id", p.catalogHandler.GetProduct)
	router.GET("/taxonomy", p.catalogHandler.Taxonomy)

	// ============================================
	// 장바구니 / 주문
	// ============================================
	router.GET("/cart", p.cartHandler.GetCart)
	router.POST("/cart/items", p.cartHandler.AddItem)
	router.PATCH("/cart/items/:lineId", p.cartHandler.ChangeQuantity)
	router.DELETE("/cart/items/:lineId", p.cartHandler.RemoveItem)
	router.GET("/cart/quantity", p.cartHandler.Quantity)
	router.POST("/checkout", p.cartHandler.Checkout)
	router.GET("/checkout/preview", p.cartHandler.Preview)

	// ============================================
	// 즐겨찾기 / 세션
	// ============================================
	router.GET("/favorites", p.sessionHandler.ListFavorites)
	router.POST("/favorites/:productId/toggle", p.sessionHandler.ToggleFavorite)
	router.GET("/session", p.sessionHandler.GetSession)
	router.PUT("/session/theme", p.sessionHandler.SetTheme)
	router.GET("/session/notifications", p.sessionHandler.Notifications)
	router.GET("/ws", p.wsHandler.Connect)

	// ============================================
	// 어드바이저 (호출 제한)
	// ============================================
	limited := p.rateLimiter.Middleware()
	advisorGroup := router.Group("/advisor")
	advisorGroup.POST("/recipe/:productId", limited, p.advisorHandler.SuggestRecipe)
	advisorGroup.POST("/chat", limited, p.advisorHandler.Chat)
	advisorGroup.POST("/fridge", limited, p.advisorHandler.AnalyzeFridge)
	advisorGroup.GET("/:site", p.advisorHandler.GetSite)

	// ============================================
	// 관리자
	// ============================================
	admin := router.Group("/admin")
	admin.POST("/products", p.catalogHandler.UpsertProduct)
	admin.DELETE("/products/:id", p.catalogHandler.DeleteProduct)
	admin.POST("/products/import", p.catalogHandler.ImportProducts)
	admin.GET("/products/import/template", p.catalogHandler.ImportTemplate)
	admin.POST("/categories", p.catalogHandler.AddCategory)
	admin.DELETE("/categories/:name", p.catalogHandler.RemoveCategory)
	admin.POST("/brands", p.catalogHandler.AddBrand)
	admin.DELETE("/brands/:name", p.catalogHandler.RemoveBrand)
	admin.POST("/advisor/description", limited, p.advisorHandler.GenerateDescription)
}

// Shutdown 남은 영속화 쓰기를 처리하고 종료
func (p *StorefrontPlugin) Shutdown() error {
	if p.hub != nil {
		p.hub.Stop()
	}
	if p.persister == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.persister.Close(ctx); err != nil {
		return fmt.Errorf("flush preferences: %w", err)
	}
	p.logger.Info("Storefront plugin shut down")
	return nil
}

// HealthCheck DB와 (설정된 경우) Redis 연결 확인
func (p *StorefrontPlugin) HealthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if p.cache.IsAvailable() {
		if err := p.cache.Ping(ctx); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	return nil
}

// sweepInterval 유휴 기준의 1/4 (최소 1분)
func sweepInterval(idle time.Duration) time.Duration {
	if d := idle / 4; d > time.Minute {
		return d
	}
	return time.Minute
}
