package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "worktrack-backend/internal/adapter/http"
	"worktrack-backend/internal/adapter/middleware"
	"worktrack-backend/internal/adapter/repository/mysql"
	"worktrack-backend/internal/config"
	"worktrack-backend/internal/domain/team"
	"worktrack-backend/internal/infrastructure/cache"
	"worktrack-backend/internal/infrastructure/db"
	"worktrack-backend/internal/logger"
	"worktrack-backend/internal/usecase/bulk"
	"worktrack-backend/internal/usecase/membership"
	"worktrack-backend/internal/usecase/workflow"
)

func main() {
	cfg := config.Load()
	log := logger.New("worktrack-api", cfg.AppEnv)
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatalw("invalid config", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalw("open mysql", "error", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalw("migrate", "error", err)
	}
	rdb, err := cache.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalw("open redis", "error", err)
	}
	defer rdb.Close()

	teams := mysql.NewTeamRepository(gdb)
	scopeCache := cache.NewScopeCache(rdb, cfg.ScopeCacheTTL())
	scopes := &team.CachedSource{Source: teams, Cache: scopeCache}
	wf := workflow.NewUsecase(
		mysql.NewTimesheetRepository(gdb),
		mysql.NewReviewRepository(gdb),
		mysql.NewGormUoW(gdb),
		scopes,
		log,
	)
	coord := bulk.NewCoordinator(wf, cfg.BulkWorkers, log)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	httpadp.Register(e, httpadp.Routes{
		Handler:     httpadp.NewHandler(),
		Timesheets:  httpadp.NewTimesheetHandler(wf),
		Bulk:        httpadp.NewBulkHandler(wf, coord),
		Members:     httpadp.NewMembershipHandler(membership.NewUsecase(teams, scopeCache, log)),
		Auth:        middleware.Auth(cfg.JWTSecret, cfg.JWTIssuer),
		Idempotency: middleware.IdempotencyMiddleware(rdb, cfg.IdempotencyTTL(), log),
	})

	addr := ":" + cfg.AppPort
	go func() {
		log.Infow("listening", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server stopped", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Errorw("shutdown", "error", err)
	}
}
