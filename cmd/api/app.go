package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/parrillasur/reservabot/docs"
	"github.com/parrillasur/reservabot/internal/adapter/api/controller"
	"github.com/parrillasur/reservabot/internal/adapter/api/route"
	"github.com/parrillasur/reservabot/internal/adapter/nlu"
	"github.com/parrillasur/reservabot/internal/adapter/repository"
	"github.com/parrillasur/reservabot/internal/adapter/whatsapp"
	"github.com/parrillasur/reservabot/internal/bot"
	"github.com/parrillasur/reservabot/internal/infrastructure/database"
	"github.com/parrillasur/reservabot/pkg/dedup"
	"github.com/parrillasur/reservabot/pkg/logger"
	"github.com/parrillasur/reservabot/pkg/rules"
	"github.com/parrillasur/reservabot/pkg/session"
)

// tamaño de la ventana de deduplicación en memoria
const dedupWindowSize = 1000

// App representa la aplicación y sus dependencias
type App struct {
	router            *gin.Engine
	db                *pgxpool.Pool
	log               logger.Logger
	rules             *rules.Rules
	sessions          *session.Store
	window            dedup.Window
	redisWindow       *dedup.RedisWindow
	orchestrator      *bot.Orchestrator
	webhookController *controller.WebhookController
	slotController    *controller.SlotController
	authController    *controller.AuthController
}

// NewApp crea una nueva instancia de la aplicación
func NewApp() (*App, error) {
	log := logger.NewLogger()
	r := rules.FromEnv()

	// Configurar base de datos
	db, err := database.NewPostgresDB()
	if err != nil {
		return nil, fmt.Errorf("error al conectar con la base de datos: %w", err)
	}

	// Crear repositorios
	slotRepo := repository.NewPostgresSlotRepository(db, log)

	// Crear el cliente de NLU
	gemini, err := nlu.NewGemini(context.Background(), os.Getenv("GEMINI_API_KEY"), os.Getenv("GEMINI_MODEL"), log)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("error al crear cliente de NLU: %w", err)
	}

	// Estado conversacional y deduplicación
	sessions := session.NewStore(r.MaxHistory)

	var window dedup.Window
	var redisWindow *dedup.RedisWindow
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		redisWindow = dedup.NewRedisWindow(addr, os.Getenv("REDIS_PASSWORD"), 0)
		window = redisWindow
		log.Info("Deduplicación respaldada en Redis", "addr", addr)
	} else {
		window = dedup.NewMemoryWindow(dedupWindowSize)
		log.Info("Deduplicación en memoria", "size", dedupWindowSize)
	}

	// Flujos conversacionales
	reservations := bot.NewReservationFlow(sessions, slotRepo, gemini, gemini, r, log)
	faq := bot.NewFAQFlow(sessions, gemini, r, log)
	orchestrator := bot.NewOrchestrator(gemini, reservations, faq, sessions, log)

	// Cliente de WhatsApp
	sender := whatsapp.NewClient(os.Getenv("WHATSAPP_TOKEN"), os.Getenv("WHATSAPP_PHONE_NUMBER_ID"))

	// Controllers
	webhookController := controller.NewWebhookController(orchestrator, sender, window, os.Getenv("WHATSAPP_VERIFY_TOKEN"), log)
	slotController := controller.NewSlotController(slotRepo, r)
	authController := controller.NewAuthController()

	// Configurar router
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	app := &App{
		router:            router,
		db:                db,
		log:               log,
		rules:             r,
		sessions:          sessions,
		window:            window,
		redisWindow:       redisWindow,
		orchestrator:      orchestrator,
		webhookController: webhookController,
		slotController:    slotController,
		authController:    authController,
	}

	app.setupRoutes("/api/v1")
	return app, nil
}

// setupRoutes configura las rutas de la aplicación
func (a *App) setupRoutes(basePath string) {
	api := a.router.Group(basePath)

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":     "ok",
			"restaurant": a.rules.Restaurant.Name,
		})
	})

	route.RegisterWebhookRoutes(api, a.webhookController)
	route.RegisterSlotRoutes(api, a.slotController)
	route.RegisterAuthRoutes(api, a.authController)

	// Documentación Swagger
	a.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// Start inicia el servidor HTTP
func (a *App) Start() error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	a.log.Info("Servidor iniciado", "port", port, "restaurant", a.rules.Restaurant.Name)
	return a.router.Run(":" + port)
}

// Close libera los recursos de la aplicación
func (a *App) Close() {
	if a.redisWindow != nil {
		if err := a.redisWindow.Close(); err != nil {
			a.log.Warn("Error al cerrar conexión con Redis", "error", err)
		}
	}
	if a.db != nil {
		a.db.Close()
	}
}
