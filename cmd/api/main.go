package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iamasit07/connect4-engine/internal/config"
	"github.com/iamasit07/connect4-engine/internal/repository/redis"
	"github.com/iamasit07/connect4-engine/internal/service/cleanup"
	"github.com/iamasit07/connect4-engine/internal/service/game"
	transportHttp "github.com/iamasit07/connect4-engine/internal/transport/http"
	"github.com/iamasit07/connect4-engine/internal/transport/http/middleware"
	"github.com/iamasit07/connect4-engine/internal/transport/websocket"
	"github.com/iamasit07/connect4-engine/pkg/auth"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found")
		}
	}

	cfg := config.LoadConfig()

	cmd := &cli.Command{
		Name:  "connect4",
		Usage: "serve the Connect Four rules engine to a browser render layer",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "port", Value: cfg.Port, Usage: "HTTP listen port"},
			&cli.IntFlag{Name: "height", Value: int64(cfg.BoardHeight), Usage: "default board height"},
			&cli.IntFlag{Name: "width", Value: int64(cfg.BoardWidth), Usage: "default board width"},
			&cli.StringFlag{Name: "player1-color", Value: cfg.Player1Color},
			&cli.StringFlag{Name: "player2-color", Value: cfg.Player2Color},
			&cli.StringFlag{Name: "redis-url", Value: cfg.RedisURL, Usage: "Redis address for event pub/sub, empty to disable"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg.Port = cmd.String("port")
			cfg.BoardHeight = int(cmd.Int("height"))
			cfg.BoardWidth = int(cmd.Int("width"))
			cfg.Player1Color = cmd.String("player1-color")
			cfg.Player2Color = cmd.String("player2-color")
			cfg.RedisURL = cmd.String("redis-url")
			return run(ctx, cfg)
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	connManager := websocket.NewConnectionManager()
	publishers := []game.Publisher{connManager}
	var relay websocket.Subscriber

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL, cfg.RedisPassword)
	if err != nil {
		return err
	}
	if redisClient != nil {
		eventPublisher := redis.NewEventPublisher(redisClient)
		defer eventPublisher.Close()
		publishers = append(publishers, eventPublisher)
		relay = eventPublisher
	}

	sessionManager := game.NewSessionManager(game.Settings{
		Height:       cfg.BoardHeight,
		Width:        cfg.BoardWidth,
		Player1Color: cfg.Player1Color,
		Player2Color: cfg.Player2Color,
	}, publishers...)

	signer := auth.NewSigner(cfg.TokenSecret, cfg.TokenTTL)

	cleanupWorker := cleanup.NewWorker(sessionManager, connManager, cfg.CleanupInterval, cfg.GameIdleTimeout)
	go cleanupWorker.Start(ctx)

	gameHandler := transportHttp.NewGameHandler(sessionManager, signer, int(cfg.TokenTTL.Seconds()), cfg.Production)
	wsHandler := websocket.NewHandler(connManager, sessionManager, signer, middleware.OriginChecker(cfg.AllowedOrigins))
	wsHandler.Relay = relay
	router := transportHttp.NewRouter(gameHandler, signer, cfg.AllowedOrigins, wsHandler.HandleWebSocket)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s (board %dx%d)", cfg.Port, cfg.BoardHeight, cfg.BoardWidth)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Println("Server exited gracefully")
	return nil
}
