package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"warehouse/internal/config"
	"warehouse/internal/handler"
	"warehouse/internal/history"
	"warehouse/internal/infra/db"
	"warehouse/internal/infra/historyfile"
	infraRepo "warehouse/internal/infra/repository"
	"warehouse/internal/server"
	"warehouse/internal/usecase"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func setupLogger(cfg config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	//開発中は読みやすく、それ以外はJSON
	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogger(cfg)

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer db.Close(gormDB)

	if err := db.Migrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate")
	}

	//Repository（GORM実装）生成
	accountRepo := infraRepo.NewAccountGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	historyRepo := infraRepo.NewHistoryGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	//口座は1つだけ（無ければ残高0で作る）
	account, err := accountRepo.EnsureSingleton(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed account")
	}
	log.Info().Int64("account_id", account.ID).Str("balance", account.Balance.String()).Int64("stock", account.Stock).Msg("account ready")

	//履歴はDBとファイルの両方へ
	historyFile, err := historyfile.Open(cfg.HistoryFile)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.HistoryFile).Msg("failed to open history file")
	}
	defer historyFile.Close()
	log.Info().Str("path", historyFile.Path()).Msg("history file ready")

	recorder := history.NewRecorder(history.NewDBSink(historyRepo), historyFile)

	//Usecase生成
	ledgerUC := usecase.NewLedgerUsecase(txm, accountRepo, productRepo, recorder)
	historyUC := usecase.NewHistoryUsecase(historyRepo)

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get sql.DB")
	}

	//Handler生成
	srv, err := server.New(cfg, server.Handlers{
		Ledger:  handler.NewLedgerHandler(ledgerUC),
		History: handler.NewHistoryHandler(historyUC),
		Health:  handler.NewHealthHandler(sqlDB),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build server")
	}

	//SIGINT / SIGTERM で止める
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		log.Error().Err(err).Msg("server error")
		return
	}
	log.Info().Msg("server exited")
}
