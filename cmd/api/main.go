package main

import (
	"os"

	"cafe/internal/config"
	"cafe/internal/domain/model"
	"cafe/internal/handler"
	"cafe/internal/infra/db"
	infraRepo "cafe/internal/infra/repository"
	appmw "cafe/internal/middleware"
	"cafe/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// .env は無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	logger := newLogger(cfg.GoEnv)
	log.Logger = logger

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("db connect failed")
	}
	if err := gormDB.AutoMigrate(
		&model.Dish{},
		&model.Order{},
		&model.OrderLine{},
	); err != nil {
		logger.Fatal().Err(err).Msg("db migrate failed")
	}

	//Repository（GORM実装）生成
	dishRepo := infraRepo.NewDishGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	lineRepo := infraRepo.NewOrderLineGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	orderUC := usecase.NewOrderUsecase(txManager)
	queryUC := usecase.NewOrderQueryUsecase(orderRepo, lineRepo, dishRepo)
	revenueUC := usecase.NewRevenueUsecase(orderRepo, lineRepo, dishRepo)
	dishUC := usecase.NewDishUsecase(dishRepo)

	//Handler生成
	orderH := handler.NewOrderHandler(orderUC, queryUC)
	dishH := handler.NewDishHandler(dishUC)
	revenueH := handler.NewRevenueHandler(revenueUC)

	//Server起動
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(appmw.RequestLog(logger))

	orderH.RegisterRoutes(e)
	dishH.RegisterRoutes(e)
	revenueH.RegisterRoutes(e)

	addr := ":8080"
	if cfg.Port != "" {
		if cfg.Port[0] != ':' {
			addr = ":" + cfg.Port
		} else {
			addr = cfg.Port
		}
	}

	logger.Info().Str("addr", addr).Msg("server starting")
	if err := e.Start(addr); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func newLogger(env string) zerolog.Logger {
	if env == "prod" {
		return zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
	//devは読みやすいコンソール出力
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
}
