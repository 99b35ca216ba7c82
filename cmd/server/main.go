package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	"github.com/vinifranco48/arithimancia-api/config"
	"github.com/vinifranco48/arithimancia-api/internal/api"
	"github.com/vinifranco48/arithimancia-api/internal/auth"
	"github.com/vinifranco48/arithimancia-api/internal/database"
	"github.com/vinifranco48/arithimancia-api/internal/game"
	"github.com/vinifranco48/arithimancia-api/internal/logger"
	"github.com/vinifranco48/arithimancia-api/internal/services"
	"github.com/vinifranco48/arithimancia-api/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New().WithError(err).Error("failed to load config")
		os.Exit(1)
	}

	logger.SetGlobalLevel(cfg.Log.Level)
	log := logger.New()

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.WithError(err).Error("failed to open database")
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Seed(); err != nil {
		log.WithError(err).Error("failed to seed database")
		os.Exit(1)
	}

	blacklist, cleanup := newBlacklist(cfg, log)
	defer cleanup()

	tokens := auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL(), cfg.Auth.RefreshTTL())

	store := storage.New(db)
	engine := game.NewService(store)

	players := storage.NewPlayerRepo(db.DB)
	characters := storage.NewCharacterRepo(db.DB)
	schools := storage.NewSchoolRepo(db.DB)
	inventory := storage.NewInventoryRepo(db.DB)
	quests := storage.NewQuestRepo(db.DB)
	encounters := storage.NewEncounterRepo(db.DB)
	attempts := storage.NewAttemptRepo(db.DB)
	monsters := storage.NewMonsterRepo(db.DB)
	items := storage.NewItemRepo(db.DB)

	authService := services.NewAuthService(players, tokens, blacklist)
	playerService := services.NewPlayerService(players, characters)
	characterService := services.NewCharacterService(characters, schools, inventory, quests, encounters, attempts)
	gameService := services.NewGameService(engine, characterService, encounters, inventory, attempts, monsters, items)

	router := api.NewRouter(api.Handlers{
		Auth:         api.NewAuthHandler(authService),
		Players:      api.NewPlayerHandler(playerService, characterService),
		Characters:   api.NewCharacterHandler(characterService),
		Game:         api.NewGameHandler(gameService, characterService),
		TokenManager: tokens,
		Blacklist:    blacklist,
	})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      corsHandler.Handler(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info("server listening on :" + cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("server stopped")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("shutdown failed")
	}
}

// newBlacklist picks redis when an address is configured, otherwise the
// in-memory fallback.
func newBlacklist(cfg *config.Config, log *logger.Log) (auth.Blacklist, func()) {
	if cfg.Redis.Addr == "" {
		log.Info("token blacklist: in-memory")
		memory := auth.NewMemoryBlacklist()
		return memory, memory.Close
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.WithError(err).Warn("redis unreachable, falling back to in-memory blacklist")
		memory := auth.NewMemoryBlacklist()
		return memory, memory.Close
	}

	log.Info("token blacklist: redis at " + cfg.Redis.Addr)
	return auth.NewRedisBlacklist(client), func() { _ = client.Close() }
}
