package main

import (
	"log"
	"net/http"
	"time"

	"eballot/internal/auth"
	"eballot/internal/cache"
	"eballot/internal/config"
	"eballot/internal/controllers"
	"eballot/internal/logger"
	"eballot/internal/mailer"
	"eballot/internal/middleware"
	"eballot/internal/routes"
	"eballot/internal/services"
	"eballot/internal/storage"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()
	appLog := logger.L()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// Connect to the database
	db, err := config.OpenDB(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	// Redis is optional: a nil client turns every cache into a pass-through.
	rdb := cache.Connect(cfg.RedisURL, appLog)
	leaderboardCache := cache.New(rdb, "leaderboard", appLog)
	electionsCache := cache.New(rdb, "elections", appLog)
	candidatesCache := cache.New(rdb, "candidates", appLog)
	otpCache := cache.New(rdb, "otp", appLog)

	users := storage.NewUserStore(db)
	institutes := storage.NewInstituteStore(db)
	elections := storage.NewElectionStore(db)
	positions := storage.NewPositionStore(db)
	candidates := storage.NewCandidateStore(db)
	votes := storage.NewVoteStore(db)

	tokens := auth.NewTokenManager(cfg.JWTSecret)
	sender := mailer.New(cfg, appLog)

	authSvc := services.NewAuthService(users, otpCache, sender, tokens, cfg.AllowedEmailDomain, appLog)
	voteSvc := services.NewVoteService(votes, elections, candidates, leaderboardCache, electionsCache, candidatesCache, appLog)
	adminSvc := services.NewAdminService(elections, positions, candidates, votes, users, leaderboardCache, electionsCache, candidatesCache, appLog)
	userSvc := services.NewUserService(users, institutes)

	// Setup Gin router
	r := routes.SetupRouter(routes.Deps{
		Tokens:     tokens,
		Auth:       controllers.NewAuthController(authSvc),
		Votes:      controllers.NewVoteController(voteSvc),
		Admin:      controllers.NewAdminController(adminSvc, voteSvc),
		Users:      controllers.NewUserController(userSvc),
		Institutes: controllers.NewInstituteController(institutes),
	})

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("🚀 Server running at :%s", cfg.Port)
	log.Fatal(srv.ListenAndServe())
}
