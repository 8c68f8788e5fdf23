package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	glog "github.com/golang/glog"

	_ "github.com/noah-isme/shift-scheduler/api/swagger"
	"github.com/noah-isme/shift-scheduler/internal/cache"
	"github.com/noah-isme/shift-scheduler/internal/export"
	"github.com/noah-isme/shift-scheduler/internal/httpapi"
	"github.com/noah-isme/shift-scheduler/internal/metrics"
	"github.com/noah-isme/shift-scheduler/internal/repository"
	"github.com/noah-isme/shift-scheduler/internal/scheduler"
	pkgcache "github.com/noah-isme/shift-scheduler/pkg/cache"
	"github.com/noah-isme/shift-scheduler/pkg/config"
	"github.com/noah-isme/shift-scheduler/pkg/database"
	"github.com/noah-isme/shift-scheduler/pkg/jobs"
	"github.com/noah-isme/shift-scheduler/pkg/logger"
	corsmiddleware "github.com/noah-isme/shift-scheduler/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/shift-scheduler/pkg/middleware/requestid"
	"github.com/noah-isme/shift-scheduler/pkg/storage"
)

// @title Shift Scheduler API
// @version 0.1.0
// @description CP-SAT powered monthly staff-shift scheduling engine
// @BasePath /api/v1
// @schemes http

// defaultCatalog is the shift catalog accepted by this deployment. Every
// request's shift definitions are reconciled against it: a request whose
// shifts add, omit or redefine any code is rejected with
// shift_definition_mismatch (spec §4.1).
var defaultCatalog = []scheduler.Shift{
	{Code: "DA", Name: "Day A", Start: 7, End: 15},
	{Code: "DB", Name: "Day B", Start: 9, End: 18},
	{Code: "EA", Name: "Evening A", Start: 15, End: 23},
	{Code: "NA", Name: "Night A", Start: 21, End: 7},
	{Code: "NB", Name: "Night B", Start: 23, End: 9},
	{Code: "NC", Name: "Night C", Start: 0, End: 9},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	catalog, verr := scheduler.NewCatalog(defaultCatalog)
	if verr != nil {
		glog.Exitf("failed to build shift catalog: %s: %s", verr.Code, verr.Message)
	}
	defer glog.Flush()

	reg := metrics.New()

	db, err := database.NewPostgres(cfg.Database)
	var runs *repository.SolveRunRepository
	if err != nil {
		logr.Sugar().Warnw("solve-run persistence disabled", "error", err)
	} else {
		defer db.Close()
		runs = repository.NewSolveRunRepository(db)
	}

	var demandCache *cache.DemandCache
	if client, err := pkgcache.NewRedis(cfg.Redis); err != nil {
		logr.Sugar().Warnw("demand cache disabled", "error", err)
	} else {
		demandCache = cache.NewDemandCache(client, logr, cfg.Solver.CacheTTL)
		defer demandCache.Close()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	var runQueue *jobs.Queue
	if runs != nil {
		runQueue = jobs.NewQueue("solve-run-persistence", httpapi.NewPersistRunHandler(runs, logr), jobs.QueueConfig{
			Workers: 2,
			Logger:  logr,
		})
		runQueue.Start(ctx)
		defer runQueue.Stop()
	}

	timeLimit := cfg.Solver.TimeLimitSeconds

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(func(c *gin.Context) {
		c.Next()
		reg.ObserveHTTPRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), 0)
	})

	var localStorage *storage.LocalStorage
	var signer *storage.SignedURLSigner
	if cfg.Export.SigningSecret != "" {
		ls, err := storage.NewLocalStorage(cfg.Export.StorageDir)
		if err != nil {
			logr.Sugar().Warnw("export persistence disabled", "error", err)
		} else {
			localStorage = ls
			signer = storage.NewSignedURLSigner(cfg.Export.SigningSecret, cfg.Export.LinkTTL)
		}
	}

	healthHandler := httpapi.NewHealthHandler(reg)
	solveHandler := httpapi.NewSolveHandler(catalog, timeLimit, demandCache, runs, runQueue, reg, logr)
	exportHandler := httpapi.NewExportHandler(export.NewScheduleExporter(), localStorage, signer)

	httpapi.RegisterRoutes(r, cfg, healthHandler, solveHandler, exportHandler)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
		defer stop()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
	<-shutdownDone
}
