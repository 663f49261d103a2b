package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ayzikov/patres-test/config"
	"github.com/ayzikov/patres-test/internal/handler"
	"github.com/ayzikov/patres-test/internal/repository"
	"github.com/ayzikov/patres-test/internal/server"
	"github.com/ayzikov/patres-test/internal/service"
	"github.com/ayzikov/patres-test/migrations"
	"github.com/ayzikov/patres-test/pkg/logger"
	"github.com/ayzikov/patres-test/pkg/postgres"
)

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "library")
	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}

	bookRepo, err := repository.NewBookRepository(db, log)
	if err != nil {
		log.Fatal("book repo", zap.Error(err))
	}
	readerRepo, err := repository.NewReaderRepository(db, log)
	if err != nil {
		log.Fatal("reader repo", zap.Error(err))
	}
	librarianRepo, err := repository.NewLibrarianRepository(db, log)
	if err != nil {
		log.Fatal("librarian repo", zap.Error(err))
	}

	authSvc := service.NewAuthService(librarianRepo, cfg.JWT, log)
	bookSvc := service.NewBookService(bookRepo, readerRepo, log)
	readerSvc := service.NewReaderService(readerRepo, log)
	librarianSvc := service.NewLibrarianService(librarianRepo, authSvc, log)

	h := handler.New(bookSvc, readerSvc, librarianSvc, authSvc, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	db.Close()
	log.Info("Graceful shutdown finished")
}
