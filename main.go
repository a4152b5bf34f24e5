package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/raushankrgupta/nutriwise/account"
	"github.com/raushankrgupta/nutriwise/api"
	"github.com/raushankrgupta/nutriwise/booking"
	"github.com/raushankrgupta/nutriwise/config"
	"github.com/raushankrgupta/nutriwise/contact"
	"github.com/raushankrgupta/nutriwise/content"
	"github.com/raushankrgupta/nutriwise/store"
	"github.com/raushankrgupta/nutriwise/tracking"
	"github.com/raushankrgupta/nutriwise/utils"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
)

func main() {
	config.LoadConfig()
	utils.InitLogger(config.LogLevel, config.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize MongoDB
	db, err := store.Connect(ctx, config.MongoURI, config.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	if err := db.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to create indexes")
	}

	tokens, err := utils.NewTokenService(config.JWTSecret, config.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize token service")
	}

	var generator content.TextGenerator
	var gemini *utils.GeminiClient
	if config.GeminiAPIKey != "" {
		gemini, err = utils.NewGeminiClient(ctx, config.GeminiAPIKey, config.GeminiModel)
		if err != nil {
			log.Error().Err(err).Msg("Gemini unavailable, content endpoints will serve fallbacks")
		} else {
			generator = gemini
		}
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set, content endpoints will serve fallbacks")
	}

	// Interfaces stay nil when S3 is not configured.
	var dietitianImages booking.ImageStore
	var planObjects content.ObjectStore
	if config.AWSBucketName != "" {
		objects, err := utils.NewObjectStore(ctx, config.AWSRegion, config.AWSBucketName)
		if err != nil {
			log.Error().Err(err).Msg("S3 unavailable, images and diet plan documents will not be stored")
		} else {
			dietitianImages = objects
			planObjects = objects
		}
	}

	mailer := utils.NewMailer(config.SendGridAPIKey, config.MailFromName, config.MailFrom, config.NotificationEmail)
	sequences := store.NewSequences(db)

	server := api.NewServer(api.Dependencies{
		Accounts: account.NewService(store.NewUserStore(db), sequences, tokens, mailer),
		Tokens:   tokens,
		Tracking: tracking.NewService(store.NewTrackingStore(db), store.NewWeightLogStore(db)),
		Bookings: booking.NewService(store.NewBookingStore(db), store.NewDietitianStore(db), sequences, mailer, dietitianImages),
		Content:  content.NewService(generator, config.LLMTimeout, content.NewPlanArchive(planObjects, store.NewDietPlanStore(db))),
		Contacts: contact.NewService(store.NewContactStore(db), sequences, mailer),
		OAuth:    api.NewGoogleOAuthConfig(config.GoogleClientID, config.GoogleClientSecret, config.GoogleRedirectURL),
		DB:       db,
	})

	r := mux.NewRouter()
	r.Use(utils.RequestIDMiddleware, utils.LatencyMiddleware)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	server.Routes(r)

	handler := cors.New(cors.Options{
		AllowedOrigins:   config.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
	}).Handler(r)

	srv := &http.Server{
		Addr:              ":" + config.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", config.Port).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
	if gemini != nil {
		if err := gemini.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Gemini client")
		}
	}
	if err := db.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Failed to close MongoDB connection")
	}
}
