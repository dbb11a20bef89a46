package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "github.com/influmatch/backend/internal/auth/http"
	"github.com/influmatch/backend/internal/auth/service"
	"github.com/influmatch/backend/internal/common/clock"
	"github.com/influmatch/backend/internal/common/config"
	"github.com/influmatch/backend/internal/common/constants"
	commoncrypto "github.com/influmatch/backend/internal/common/crypto"
	"github.com/influmatch/backend/internal/common/db"
	commonhttp "github.com/influmatch/backend/internal/common/http"
	"github.com/influmatch/backend/internal/common/jwtverify"
	"github.com/influmatch/backend/internal/common/logger"
	srv "github.com/influmatch/backend/internal/common/server"
	influencerhttp "github.com/influmatch/backend/internal/influencer/http"
	influencerrepo "github.com/influmatch/backend/internal/influencer/repository"
	influencerservice "github.com/influmatch/backend/internal/influencer/service"
	userrepo "github.com/influmatch/backend/internal/user/repository"
)

func main() {
	log, err := logger.New(os.Getenv("LOG_DIR"), "auth", os.Getenv("LOG_LEVEL"))
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to initialize logger: %v\n", err))
		os.Exit(1)
	}

	cfg, err := config.LoadAuthConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	pool := db.NewPool(log, cfg.DatabaseURL, cfg.DatabaseSchema)
	defer pool.Close()

	hasher := commoncrypto.NewBcryptHasher(cfg.BcryptCost)
	idGenerator := commoncrypto.NewUUIDGenerator()

	issuer, err := service.NewTokenIssuer(cfg.TokenSecret, cfg.AccessTokenTTL, clock.NewRealClock())
	if err != nil {
		log.Fatalf("failed to initialize token issuer: %v", err)
	}

	authService := service.NewAuthService(service.AuthServiceDeps{
		Repo:        userrepo.NewPgRepository(pool, log),
		Hasher:      hasher,
		IDGenerator: idGenerator,
		Issuer:      issuer,
		Log:         log,
	})

	influencerService := influencerservice.NewInfluencerService(
		influencerrepo.NewPgRepository(pool),
		idGenerator,
		log,
	)

	authHandler := authhttp.NewHandler(authService, cfg.RequestTimeout, log)
	influencerHandler := influencerhttp.NewHandler(
		influencerService,
		cfg.RequestTimeout,
		constants.DefaultInfluencerListLimit,
		log,
	)

	requireAuth := jwtverify.Middleware(cfg.TokenSecret, log)

	mux := http.NewServeMux()
	mux.Handle("/", authHandler)
	mux.Handle("/influencers", requireAuth(influencerHandler))
	mux.Handle("/influencers/", requireAuth(influencerHandler))
	mux.Handle("/metrics", promhttp.Handler())

	baseHandler := commonhttp.BuildBaseHandler("auth", log, mux)

	serverConfig := srv.DefaultServerConfig(cfg.HTTPPort)
	server := srv.NewServer(serverConfig, baseHandler)

	srv.StartWithGracefulShutdown(server, log, "auth")
}
