package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/farhanm/taxilink/internal/pkg/channel"
	"github.com/farhanm/taxilink/internal/pkg/config"
	"github.com/farhanm/taxilink/internal/pkg/logger"
	"github.com/farhanm/taxilink/internal/pkg/storage"
	accountUsecase "github.com/farhanm/taxilink/services/account/usecase"
	"go.uber.org/zap"

	accountGateway "github.com/farhanm/taxilink/services/account/gateway/http"
	passengerGateway "github.com/farhanm/taxilink/services/passenger/gateway/http"
	passengerUsecase "github.com/farhanm/taxilink/services/passenger/usecase"
)

func main() {
	appName := "passenger-client"
	configPath := os.Getenv("TAXILINK_CONFIG")
	if configPath == "" {
		configPath = "config/passenger.env"
	}
	configs := config.InitConfig(configPath)
	configs.App.Name = appName

	zapLogger, err := logger.InitFromConfig(configs)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()

	zapLogger.Info("Starting application",
		zap.String("app", appName),
		zap.String("version", configs.App.Version),
		zap.String("environment", configs.App.Environment),
	)

	// Snapshot store: Redis when configured, in-memory otherwise.
	var store storage.Store
	if configs.Redis.Host != "" {
		redisStore, err := storage.NewRedisStore(configs.Redis)
		if err != nil {
			zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisStore.Close()
		store = redisStore
	} else {
		store = storage.NewMemoryStore()
	}

	timeout := time.Duration(configs.Services.Timeout) * time.Second

	authClient := accountGateway.NewAuthClient(configs.Services.AuthServiceURL, timeout)
	orderClient := passengerGateway.NewOrderClient(configs.Services.OrderServiceURL, timeout)

	accountUC := accountUsecase.NewAccountUC(authClient, store, configs)

	ch := channel.New(channel.NewNATSTransport(), configs.NATS.URL, channel.Config{
		ReconnectDelay: time.Duration(configs.Channel.ReconnectDelaySec) * time.Second,
	})

	orderUC := passengerUsecase.NewOrderUC(accountUC, orderClient, store, ch, configs)
	accountUC.RegisterTeardown(orderUC.Teardown)

	ctx := context.Background()
	if err := accountUC.Restore(ctx); err != nil {
		zapLogger.Warn("No restorable account session", zap.Error(err))
	} else {
		if identity, err := accountUC.CurrentIdentity(); err == nil {
			orderClient.SetToken(identity.Token)
		}
		if err := orderUC.Init(ctx); err != nil {
			zapLogger.Warn("Order session init failed", zap.Error(err))
		}
	}

	zapLogger.Info("Passenger client ready")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down")
	orderUC.Teardown()
}
