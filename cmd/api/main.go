package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/barberflowapp/barberflow-api/internal/cache"
	"github.com/barberflowapp/barberflow-api/internal/config"
	"github.com/barberflowapp/barberflow-api/internal/db"
	"github.com/barberflowapp/barberflow-api/internal/middleware"
	"github.com/barberflowapp/barberflow-api/internal/routes"
)

func main() {
	_ = godotenv.Load()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
		With().Timestamp().Logger()

	cfg := config.Load()

	database := db.NewDB(cfg)
	availCache := cache.New(cfg.RedisAddr, log)
	if availCache == nil {
		log.Info().Msg("availability cache disabled")
	}

	r := gin.Default()
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	routes.Setup(r, database, cfg, availCache, log)

	log.Info().Str("port", cfg.ServerPort).Msg("starting barberflow api")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
