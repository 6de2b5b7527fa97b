package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rasouli77/ellenovastyle/api/middleware"
	v1 "github.com/Rasouli77/ellenovastyle/api/v1"
	"github.com/Rasouli77/ellenovastyle/config"
	"github.com/Rasouli77/ellenovastyle/internal/cart"
	"github.com/Rasouli77/ellenovastyle/internal/client/kavenegar"
	"github.com/Rasouli77/ellenovastyle/internal/client/snapppay"
	"github.com/Rasouli77/ellenovastyle/internal/client/zarinpal"
	"github.com/Rasouli77/ellenovastyle/internal/dao"
	"github.com/Rasouli77/ellenovastyle/internal/dao/mysql"
	rdb "github.com/Rasouli77/ellenovastyle/internal/dao/redis"
	"github.com/Rasouli77/ellenovastyle/internal/mq"
	"github.com/Rasouli77/ellenovastyle/internal/service"
	"github.com/Rasouli77/ellenovastyle/pkg/app"
	"github.com/Rasouli77/ellenovastyle/pkg/logger"
	"github.com/Rasouli77/ellenovastyle/pkg/utils"

	"github.com/gin-gonic/gin"
)

type handlers struct {
	catalog  *v1.CatalogHandler
	cart     *v1.CartHandler
	checkout *v1.CheckoutHandler
	payment  *v1.PaymentHandler
	auth     *v1.AuthHandler
	blog     *v1.BlogHandler
	stock    *v1.StockHandler
}

func main() {
	cfg := app.BootstrapApp()

	db, err := mysql.InitDB(&cfg.Database.Mysql)
	if err != nil {
		logger.Fatal("mysql init failed", "error", err)
	}
	redisClient, err := rdb.InitRedis(&cfg.Database.Redis)
	if err != nil {
		logger.Fatal("redis init failed", "error", err)
	}

	pool, err := mq.Init(&cfg.MQ)
	if err != nil {
		logger.Fatal("rabbitmq init failed", "error", err)
	}
	defer pool.Close()
	if err := pool.EnsureBaseTopology(); err != nil {
		logger.Fatal("rabbitmq topology failed", "error", err)
	}

	productDao := dao.NewProductDao(db)
	orderDao := dao.NewOrderDao(db)
	discountDao := dao.NewDiscountDao(db)
	userDao := dao.NewUserDao(db)
	blogDao := dao.NewBlogDao(db)

	cartStore := cart.NewStore(redisClient, 0)
	jwtUtil := utils.NewJWTUtil(cfg.JWT.Secret, cfg.JWT.ExpireHours)

	zp := zarinpal.NewClient(&cfg.Zarinpal)
	sp := snapppay.NewClient(&cfg.SnappPay)
	sms := kavenegar.NewClient(&cfg.Auth)

	stockService := service.NewStockService(productDao, pool)
	discountService := service.NewDiscountService(discountDao, cfg.Shipping.Fee)
	cartService := service.NewCartService(cartStore, productDao)
	catalogService := service.NewCatalogService(productDao, orderDao)
	checkoutService := service.NewCheckoutService(cartService, discountService, orderDao, zp, sp, cfg.Shipping.Fee)
	paymentService := service.NewPaymentService(orderDao, stockService, cartService, zp, sp, cfg.Shipping.Fee)
	authService := service.NewAuthService(userDao, redisClient, sms, jwtUtil, time.Duration(cfg.Auth.OTPTTLSeconds)*time.Second)
	blogService := service.NewBlogService(blogDao)

	router := setupRouter(cfg, jwtUtil, handlers{
		catalog:  v1.NewCatalogHandler(catalogService),
		cart:     v1.NewCartHandler(cartService, discountService, checkoutService),
		checkout: v1.NewCheckoutHandler(checkoutService),
		payment:  v1.NewPaymentHandler(paymentService),
		auth:     v1.NewAuthHandler(authService),
		blog:     v1.NewBlogHandler(blogService),
		stock:    v1.NewStockHandler(stockService),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}
	logger.Info("Server exited")
}

func setupRouter(cfg *config.Config, jwtUtil *utils.JWTUtil, h handlers) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	globalLimiter := middleware.NewIPRateLimiter(cfg.RateLimits.Global)
	otpLimiter := middleware.NewIPRateLimiter(cfg.RateLimits.OTP)
	checkoutLimiter := middleware.NewIPRateLimiter(cfg.RateLimits.Checkout)

	router.Use(globalLimiter.Middleware())
	router.Use(middleware.CartSession())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Storefront, open to anonymous shoppers; a logged-in shopper's token
	// still attaches their identity.
	shop := router.Group("/")
	shop.Use(middleware.OptionalJWTAuth(jwtUtil))
	{
		shop.GET("/products", h.catalog.ListProducts)
		shop.GET("/products/load-more", h.catalog.LoadMore)
		shop.GET("/product/:slug", h.catalog.GetProduct)
		shop.GET("/category/:title", h.catalog.ListByCategory)
		shop.GET("/categories", h.catalog.ListCategories)
		shop.GET("/search", h.catalog.Search)

		shop.GET("/cart", h.cart.Show)
		shop.GET("/cart/count", h.cart.Count)
		shop.POST("/cart/add", h.cart.Add)
		shop.POST("/cart/reduce", h.cart.Reduce)
		shop.POST("/cart/remove", h.cart.Remove)
		shop.POST("/cart/discount", h.cart.ApplyDiscount)
		shop.GET("/cart/installment-offer", h.cart.InstallmentOffer)

		shop.GET("/blog", h.blog.ListPosts)
		shop.GET("/blog/:slug", h.blog.GetPost)
		shop.POST("/blog/:slug/comments", h.blog.AddComment)
		shop.GET("/blog-search", h.blog.Search)
	}

	// Login.
	auth := router.Group("/auth")
	auth.Use(otpLimiter.Middleware())
	{
		auth.POST("/register", h.auth.RequestOTP)
		auth.POST("/verify", h.auth.VerifyOTP)
	}

	// Gateway redirect targets; the gateways carry their own identifiers.
	router.GET("/verify", h.payment.VerifyZarinpal)
	router.GET("/snapppay-result", h.payment.SnappPayResult)
	router.POST("/snapppay-verify", h.payment.SnappPayVerify)

	// Account, token required.
	account := router.Group("/")
	account.Use(middleware.JWTAuth(jwtUtil))
	{
		account.POST("/checkout", checkoutLimiter.Middleware(), h.checkout.PlaceOrder)
		account.GET("/orders", h.payment.ListOrders)
		account.GET("/orders/:id", h.payment.GetOrder)
		account.GET("/profile", h.auth.GetProfile)
		account.PATCH("/profile", h.auth.UpdateProfile)
	}

	// Vendor console; cancel/update reach into settled payments, staff only.
	vendor := router.Group("/")
	vendor.Use(middleware.JWTAuth(jwtUtil), middleware.StaffOnly())
	{
		vendor.POST("/vendor/products", h.catalog.CreateProduct)
		vendor.PATCH("/vendor/products/:id", h.catalog.UpdateProduct)
		vendor.DELETE("/vendor/products/:id", h.catalog.DeleteProduct)
		vendor.PATCH("/vendor/sizes/:id", h.catalog.UpdateSize)
		vendor.POST("/snapppay-cancel/:token", h.payment.SnappPayCancel)
		vendor.POST("/snapppay-update/:order_id", h.payment.SnappPayUpdate)
	}

	// Machine endpoints for the external inventory system.
	router.POST("/api/update-stock/", middleware.APIKey("X-API-KEY", cfg.StockAPI.StockKey), h.stock.UpdateStock)
	router.POST("/api/update-price/", middleware.APIKey("Y-API-KEY", cfg.StockAPI.PriceKey), h.stock.UpdatePrice)

	return router
}
