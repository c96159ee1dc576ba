package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/avast/retry-go/v4"
	"github.com/gin-gonic/gin"
	"github.com/gnur/booklend"
	"github.com/gnur/booklend/gormdb"
	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

func main() {
	var cfg configuration
	err := envconfig.Process("booklend", &cfg)
	if err != nil {
		log.WithField("err", err).Fatal("Could not parse full config from environment")
	}

	logLevel, err := log.ParseLevel(cfg.LogLevel)
	if err == nil {
		log.SetLevel(logLevel)
	}
	if cfg.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	}
	logger := log.WithField("release", cfg.Version)

	var db *gormdb.DB
	err = retry.Do(func() error {
		var err error
		db, err = gormdb.Open(cfg.Database, logger)
		return err
	},
		retry.Attempts(cfg.ConnectAttempts),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(func(err error) bool {
			return !errors.Is(err, gormdb.ErrUnsupportedDatabase)
		}),
		retry.OnRetry(func(n uint, err error) {
			logger.WithFields(log.Fields{
				"attempt": n + 1,
				"err":     err,
			}).Warning("could not open database, retrying")
		}),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		logger.WithField("err", err).Fatal("could not open database")
	}
	defer db.Close()

	gin.SetMode(cfg.Mode)
	app := newApp(db, logger, cfg)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.BindAddress
	} else {
		port = fmt.Sprintf(":%s", port)
	}

	srv := &http.Server{
		Addr:    port,
		Handler: app.router(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithField("err", err).Fatal("unable to start running")
		}
	}()
	logger.WithField("address", port).Info("booklend is now running")

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithField("err", err).Error("could not shut down cleanly")
	}
}

func newApp(db booklend.Store, logger *log.Entry, cfg configuration) *booklendApp {
	return &booklendApp{
		db:      db,
		library: booklend.New(db, logger),
		logger:  logger,
		cfg:     cfg,
	}
}

func (app *booklendApp) router() *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), Logger(app.logger), gin.Recovery())

	r.GET("/status", app.getStatus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	users := r.Group("/users")
	{
		users.GET("", app.getUsers)
		users.GET("/:id", app.getUser)
		users.POST("", app.createUser)
		users.POST("/:id/borrow/:bookId", app.borrowBook)
		users.POST("/:id/return/:bookId", app.returnBook)
	}

	books := r.Group("/books")
	{
		books.GET("", app.getBooks)
		books.GET("/:id", app.getBook)
		books.POST("", app.createBook)
	}

	return r
}
