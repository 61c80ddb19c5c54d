package routes

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"toolmarket-backend/apperr"
	"toolmarket-backend/controllers"
	"toolmarket-backend/logger"
	"toolmarket-backend/middleware"
)

// Controllers groups every handler set the router mounts.
type Controllers struct {
	Auth    *controllers.AuthController
	Tools   *controllers.ToolController
	Users   *controllers.UserController
	Orders  *controllers.OrderController
	Content *controllers.ContentController
	Payment *controllers.PaymentController
	Health  *controllers.HealthController
}

type Options struct {
	Logger         *zap.Logger
	Verifier       middleware.TokenVerifier
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// NewRouter builds the engine with the middleware chain and all routes.
func NewRouter(opts Options, ctrl Controllers) *gin.Engine {
	r := gin.New()
	r.Use(
		logger.RequestID(),
		logger.RequestLogger(opts.Logger),
		apperr.Recovery(opts.Logger),
		apperr.Middleware(opts.Logger),
		cors.New(corsConfig(opts.AllowedOrigins)),
		middleware.RequestTimeout(opts.RequestTimeout),
	)
	r.NoRoute(func(c *gin.Context) {
		apperr.Abort(c, apperr.NotFound("Route not found"))
	})

	RegisterRoutes(r, opts.Verifier, ctrl)
	return r
}

// RegisterRoutes mounts the API. Routes behind guard additionally require
// the token subject to equal :uid.
func RegisterRoutes(r *gin.Engine, verifier middleware.TokenVerifier, ctrl Controllers) {
	guard := []gin.HandlerFunc{middleware.VerifyJWT(verifier), middleware.MatchSubject("uid")}
	protected := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, guard...), h)
	}

	r.GET("/", ctrl.Health.Home)
	r.GET("/health", ctrl.Health.Health)

	r.POST("/logintoken", ctrl.Auth.LoginToken)

	r.GET("/tools", ctrl.Tools.ListTools)
	r.GET("/tool/:id", ctrl.Tools.GetTool)
	r.POST("/tool", ctrl.Tools.CreateTool)
	r.PUT("/tools", ctrl.Tools.UpdateStock)
	r.DELETE("/tool/:id", ctrl.Tools.DeleteTool)

	r.GET("/reviews", ctrl.Content.ListReviews)
	r.POST("/review", ctrl.Content.CreateReview)
	r.GET("/blogs", ctrl.Content.ListBlogs)

	r.GET("/users/:uid", protected(ctrl.Users.ListUsers)...)
	r.GET("/user/:uid", protected(ctrl.Users.GetUser)...)
	r.GET("/admin/:uid", protected(ctrl.Users.IsAdmin)...)
	r.PUT("/user/:uid", ctrl.Users.UpsertUser)
	r.PUT("/user/admin/:uid", ctrl.Users.MakeAdmin)

	r.GET("/myorders/:uid", protected(ctrl.Orders.MyOrders)...)
	r.GET("/allorders/:uid", protected(ctrl.Orders.AllOrders)...)
	r.GET("/order/:id", ctrl.Orders.GetOrder)
	r.POST("/order", ctrl.Orders.CreateOrder)
	r.PATCH("/order/:id", ctrl.Orders.ConfirmPayment)
	r.PATCH("/shipping/:id", ctrl.Orders.UpdateShipping)
	r.DELETE("/order/:id", ctrl.Orders.DeleteOrder)

	r.POST("/create-payment-intent", ctrl.Payment.CreatePaymentIntent)
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization", logger.RequestIDHeader},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && strings.TrimSpace(origins[0]) == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
