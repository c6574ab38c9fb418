package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "nft-lending-backend/internal/adapter/http"
	"nft-lending-backend/internal/adapter/middleware"
	"nft-lending-backend/internal/adapter/repository/mysql"
	"nft-lending-backend/internal/adapter/ws"
	"nft-lending-backend/internal/config"
	"nft-lending-backend/internal/domain/event"
	stakedom "nft-lending-backend/internal/domain/stake"
	"nft-lending-backend/internal/infrastructure/cache"
	"nft-lending-backend/internal/infrastructure/db"
	adminuc "nft-lending-backend/internal/usecase/admin"
	"nft-lending-backend/internal/usecase/loan"
	stakeuc "nft-lending-backend/internal/usecase/stake"
	valuationuc "nft-lending-backend/internal/usecase/valuation"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := db.Seed(ctx, gdb, cfg.AdminID, stakedom.RewardRate{
		BaseRewardRate:   cfg.BaseRewardRate,
		TimeWeightFactor: cfg.TimeWeightFactor,
	}); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	bus := cache.NewSignalBus(rdb)
	events := event.NewPublisher(bus, logger)
	locks := cache.NewLockManager(rdb)
	unit := mysql.NewGormUoW(gdb)

	hub := ws.NewHub(bus, logger)
	go func() {
		if err := hub.Run(ctx); err != nil && err != context.Canceled {
			logger.Error("ws hub stopped", slog.String("error", err.Error()))
		}
	}()

	valuationUC := valuationuc.NewUsecase(unit, events, valuationuc.Config{})
	adminUC := adminuc.NewUsecase(unit, events)
	loanUC := loan.NewUsecase(unit, locks, events, loan.Config{
		Mode:           loan.Mode(cfg.OriginationMode),
		BaseLTVBps:     cfg.BaseLTVBps,
		DefaultRateBps: cfg.DefaultRateBps,
		PoolAccount:    cfg.LendingPool,
		EscrowAccount:  cfg.EscrowAccount,
	})
	stakeUC := stakeuc.NewUsecase(unit, locks, events, stakeuc.Config{
		NFTContract:    cfg.StakeNFTContract,
		RewardToken:    cfg.RewardToken,
		PoolAccount:    cfg.StakeRewardPool,
		EscrowAccount:  cfg.EscrowAccount,
		MaxDailyReward: cfg.MaxDailyReward,
		MaxRewardCap:   cfg.MaxRewardCap,
	})

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())
	e.Use(middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	httpadp.RegisterRoutes(e,
		httpadp.NewHandler(),
		httpadp.NewLoanHandler(loanUC),
		httpadp.NewStakeHandler(stakeUC),
		httpadp.NewValuationHandler(valuationUC),
		httpadp.NewAdminHandler(adminUC),
	)
	e.GET("/ws", func(c echo.Context) error {
		hub.HandleWS(c.Response(), c.Request())
		return nil
	})

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)
	}()

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Print(err)
	}
}
