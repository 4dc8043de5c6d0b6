package server

import (
	"backend-hikeroutes/internal/analysis"
	"backend-hikeroutes/internal/auth"
	"backend-hikeroutes/internal/config"
	"backend-hikeroutes/internal/db"
	"backend-hikeroutes/internal/logger"
	"backend-hikeroutes/internal/poi"
	"backend-hikeroutes/internal/review"
	"backend-hikeroutes/internal/route"
	"backend-hikeroutes/internal/routecheck"
	"backend-hikeroutes/internal/shared/httperr"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	App   *fiber.App
	Cfg   config.Config
	DB    db.Querier
	Redis *redis.Client
	Log   *zap.Logger
}

func NewServer(cfg config.Config, q db.Querier, redisClient *redis.Client, log *zap.Logger) *Server {
	log = logger.OrNop(log)

	app := fiber.New(fiber.Config{
		AppName:      "hikeroutes",
		ErrorHandler: errorHandler(log),
	})
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Accept, Authorization, Content-Type, Origin",
	}))
	app.Use(metricsMiddleware())

	s := &Server{
		App:   app,
		Cfg:   cfg,
		DB:    q,
		Redis: redisClient,
		Log:   log,
	}

	registerRoutes(s)
	return s
}

// errorHandler logs server-side failures before rendering the JSON error.
func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if httperr.Status(err) >= fiber.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}
		return httperr.Handler(c, err)
	}
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	s.App.Get(metricsPath, metricsHandler())

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)
	optionalJWT := auth.OptionalJWTMiddleware(s.Cfg.JWTSecret)

	routes := route.NewService(s.DB)
	reviews := review.NewService(s.DB)
	points := poi.NewService(s.DB)
	checks := routecheck.NewService(s.DB, routecheck.NewClaimer(s.Redis, s.Cfg.RouteCheckWindow), s.Cfg.RouteCheckWindow)
	details := analysis.NewService(routes, points, reviews, checks, s.Log)

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.DB))

	routesGroup := s.App.Group("/routes")
	route.RegisterRoutes(routesGroup, routes, jwtMiddleware)
	review.RegisterRoutes(routesGroup, reviews, jwtMiddleware)
	poi.RegisterRouteRoutes(routesGroup, points)
	routecheck.RegisterRoutes(routesGroup, checks)
	analysis.RegisterRoutes(routesGroup, details, optionalJWT)

	poi.RegisterRoutes(s.App.Group("/points"), points, jwtMiddleware)

	s.App.Get("/recommendations", route.RecommendationsHandler(routes))
	s.App.Get("/stats", route.StatsHandler(routes, points, reviews))
}
