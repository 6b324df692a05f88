package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/benbeisheim/duelchess/internal/config"
	"github.com/benbeisheim/duelchess/internal/controller"
	"github.com/benbeisheim/duelchess/internal/middleware"
	"github.com/benbeisheim/duelchess/internal/service"
	"github.com/benbeisheim/duelchess/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
)

func main() {
	cfg, err := config.FromFlags(flag.NewFlagSet("server", flag.ExitOnError), os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.ApplyLogging(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize services
	var store service.Store
	if cfg.DataDir != "" {
		db, err := storage.Open(cfg.DataDir)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()
		store = db
	}
	gameManager := service.NewGameManager(store)
	if n, err := gameManager.Restore(); err != nil {
		log.Fatal(err)
	} else if n > 0 {
		log.Infof("restored %d game(s) from %s", n, cfg.DataDir)
	}
	go gameManager.Run(ctx, cfg.MatchmakingInterval)
	gameService := service.NewGameService(gameManager)

	// Initialize controllers
	gameController := controller.NewGameController(gameService)
	wsController := controller.NewWebSocketController(gameService)

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		Immutable:             true,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.AllowedOrigins, ","),
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	app.Get("/ws/game/:gameId",
		middleware.EnsurePlayerID(),
		middleware.WebSocketUpgrade(gameService),
		websocket.New(wsController.HandleConnection, websocket.Config{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			Origins:         cfg.AllowedOrigins,
		}),
	)

	api := app.Group("/api", middleware.EnsurePlayerID())
	gameController.RegisterRoutes(api)

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Errorf("shutdown: %v", err)
		}
	}()

	log.Infof("listening on %s", cfg.ListenAddr)
	if err := app.Listen(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
