package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/wordstack-backend/internal/config"
	"github.com/rocketscienceinc/wordstack-backend/internal/dictionary"
	"github.com/rocketscienceinc/wordstack-backend/internal/repository"
	"github.com/rocketscienceinc/wordstack-backend/internal/repository/storage"
	"github.com/rocketscienceinc/wordstack-backend/internal/repository/storage/sqlite"
	"github.com/rocketscienceinc/wordstack-backend/internal/usecase"
	"github.com/rocketscienceinc/wordstack-backend/internal/wordbank"
	"github.com/rocketscienceinc/wordstack-backend/transport/rest"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	words, err := LoadWords(ctx, logger, conf.Dictionary)
	if err != nil {
		return fmt.Errorf("could not load dictionary: %w", err)
	}

	bank := wordbank.Load(words, usecase.NewRand())
	log.Info("Dictionary loaded", "entries", len(words), "candidates", bank.Len())
	if bank.Len() < 2 {
		log.Warn("Dictionary cannot deal a pair, every new round will fail", "candidates", bank.Len())
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	roundRepo := repository.NewRoundRepository(redisStorage.Connection, conf.RoundTTL)
	roundManager := usecase.NewRoundManager(logger, roundRepo, bank, usecase.NewRand)
	server := rest.New(logger, rest.NewHandlers(logger, roundManager))

	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		httpErrCh <- server.Start(ctx, conf.HTTPPort)
	}()

	select {
	case err = <-httpErrCh:
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return <-httpErrCh
	}
}

// LoadWords reads the configured word list. With a SQLite path the words
// table is filled from the list on first use and read back from then on.
func LoadWords(ctx context.Context, logger *slog.Logger, conf config.Dictionary) ([]string, error) {
	if conf.SQLitePath == "" {
		return dictionary.Load(conf.Path)
	}

	log := logger.With("component", "dictionary", "sqlite_path", conf.SQLitePath)

	st, err := sqlite.New(conf.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("could not open sqlite storage: %w", err)
	}

	defer func() {
		if err := st.Close(); err != nil {
			log.Error("could not close sqlite storage", "error", err)
		}
	}()

	if err = st.Init(ctx); err != nil {
		return nil, fmt.Errorf("could not init sqlite storage: %w", err)
	}

	dictRepo := repository.NewDictionaryRepository(st.Connection)

	count, err := dictRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	if count == 0 {
		words, err := dictionary.Load(conf.Path)
		if err != nil {
			return nil, err
		}

		if err = dictRepo.SaveAll(ctx, words); err != nil {
			return nil, fmt.Errorf("could not import dictionary: %w", err)
		}

		log.Info("Dictionary imported", "words", len(words))
	}

	return dictRepo.Words(ctx)
}
