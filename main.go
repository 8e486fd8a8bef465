package main

import (
	"context"
	"log"
	"os"

	_ "turn_queue/docs"
	"turn_queue/internal/app"
	"turn_queue/internal/config"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// @Title						Turn queue
// @Version					1.0
// @Description				Ticket issuing, window calls and daily rollover for a walk-in service office
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	if os.Getenv("ENV_CHEK") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("no .env file, using process environment")
		}
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	application, err := app.NewApp(context.Background(), cfg, logger, nil)
	if err != nil {
		logger.Fatal("Failed to initialize application", zap.Error(err))
	}
	if err := application.Run(); err != nil {
		logger.Fatal("Application exited with error", zap.Error(err))
	}
}
