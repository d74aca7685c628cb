package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diewo77/pedidos-ledger/internal/backup"
	"github.com/diewo77/pedidos-ledger/internal/config"
	"github.com/diewo77/pedidos-ledger/internal/db"
	"github.com/diewo77/pedidos-ledger/internal/logger"
	"github.com/diewo77/pedidos-ledger/internal/server"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")

func main() {
	flag.Parse()
	_ = godotenv.Load()
	log := logger.Get()
	defer func() { _ = log.Sync() }()

	cfg := config.Load()
	dbConn, err := db.ConnectAndMigrate(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal("db connect failed", zap.Error(err))
	}
	if *migrateOnlyFlag {
		log.Info("migrations completed; exiting as requested")
		return
	}

	var backupSvc *backup.Service
	if cfg.BackupURL != "" {
		store := backup.NewHTTPStore(cfg.BackupURL, cfg.BackupUser)
		backupSvc = backup.NewService(dbConn, store, log)
	} else {
		log.Info("BACKUP_URL not set; backup/restore endpoints disabled")
	}

	handler := server.New(dbConn, backupSvc, log)
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: handler}

	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("error during shutdown", zap.Error(err))
	}
	log.Info("server gracefully stopped")
}
