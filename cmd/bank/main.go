// cmd/bank/main.go

// 本程式提供互動式文字選單，管理記憶體中的銀行帳戶：開戶、存款、提款、列出。
// 此檔案負責載入設定、初始化日誌與各模組（bank, console），並啟動選單迴圈；
// 收到 SIGINT/SIGTERM 時結束迴圈。

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Carol-YiYun/console-bank/internal/bank"
	"github.com/Carol-YiYun/console-bank/internal/config"
	"github.com/Carol-YiYun/console-bank/internal/console"
	"github.com/Carol-YiYun/console-bank/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ids, err := idGenerator(cfg)
	if err != nil {
		log.Fatal("invalid id strategy", zap.Error(err))
	}

	// 初始化銀行核心模組
	b := bank.New(
		bank.WithStartingMinimum(cfg.Minimum()),
		bank.WithIDGenerator(ids),
		bank.WithLogger(log.Named("bank")),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s := console.New(b, os.Stdin, os.Stdout, log.Named("console"))
	log.Info("console started",
		zap.String("starting_minimum", cfg.StartingMinimum),
		zap.String("id_strategy", cfg.IDStrategy))

	if err := s.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("console stopped", zap.Error(err))
		os.Exit(1)
	}
}

// idGenerator 依設定選擇帳戶 ID 產生策略。
func idGenerator(cfg *config.Config) (bank.IDGenerator, error) {
	switch cfg.IDStrategy {
	case config.IDStrategyRandom:
		return bank.NewRandom(cfg.IDMin, cfg.IDMax, nil)
	case config.IDStrategySequence:
		return bank.NewSequence(cfg.IDFirst), nil
	default:
		return nil, fmt.Errorf("unknown id strategy %q", cfg.IDStrategy)
	}
}
