package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/infra/db"
	"storefront/internal/infra/kafka"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/infra/session"
	"storefront/internal/logging"
	"storefront/internal/metrics"
	"storefront/internal/outbox"
	"storefront/internal/server"
	"storefront/internal/usecase"
	"storefront/internal/validator"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New("storefront", cfg.GoEnv)

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		logger.Fatalf("db connect: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		logger.Fatalf("db migrate: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//Repository（GORM実装）
	txm := infraRepo.NewTxManagerGorm(gormDB, cfg.TxMaxRetries)
	userRepo := infraRepo.NewUserGormRepository(gormDB)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}
	m := metrics.NewServerMetrics("storefront")

	//bcrypt（会員登録：Hash / ログイン：Verify）
	hasher := usecase.NewBcryptPasswordHasher(12)
	issuer := session.NewJWTIssuer(cfg.JWTSecret, cfg.SessionTTL)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(txm, validator.NewAuthValidator(), hasher, hasher, issuer, clock, logger)
	addressUC := usecase.NewAddressUsecase(txm)
	productUC := usecase.NewProductUsecase(txm, logger)
	cartUC := usecase.NewCartUsecase(txm, logger)
	wishlistUC := usecase.NewWishlistUsecase(txm)
	orderUC := usecase.NewOrderUsecase(txm, clock, idGen, logger, m)

	//outbox -> kafka（ブローカー未設定なら溜めておくだけ）
	if cfg.KafkaEnabled() {
		pub := kafka.NewPublisher(cfg.KafkaBrokers)
		defer pub.Close()

		relay := outbox.NewRelay(infraRepo.NewOutboxGormRepository(gormDB), pub, cfg.OutboxBatch, cfg.OutboxInterval, logger)
		go relay.Run(ctx)
		logger.Infof("outbox relay started brokers=%v", cfg.KafkaBrokers)
	}

	e := server.New(server.Deps{
		Logger:   logger,
		Metrics:  m,
		Sessions: issuer,
		Users:    userRepo,
		Handlers: []server.RouteRegistrar{
			handler.NewAuthHandler(authUC, cfg.IsProd()),
			handler.NewAddressHandler(addressUC),
			handler.NewProductHandler(productUC),
			handler.NewCartHandler(cartUC),
			handler.NewWishlistHandler(wishlistUC),
			handler.NewOrderHandler(orderUC),
		},
	})

	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}
	logger.Infof("listening on %s", addr)
	if err := server.Start(ctx, e, addr); err != nil {
		logger.Errorf("server: %v", err)
	}
}
