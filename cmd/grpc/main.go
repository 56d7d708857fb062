package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/fekuna/omnipos-marketplace-service/config"
	"github.com/fekuna/omnipos-marketplace-service/internal/access"
	marketplacev1 "github.com/fekuna/omnipos-marketplace-service/internal/api/marketplacev1"
	"github.com/fekuna/omnipos-marketplace-service/internal/cart"
	"github.com/fekuna/omnipos-marketplace-service/internal/gateway"
	"github.com/fekuna/omnipos-marketplace-service/internal/inventory"
	"github.com/fekuna/omnipos-marketplace-service/internal/order"
	"github.com/fekuna/omnipos-marketplace-service/internal/platform/broker"
	"github.com/fekuna/omnipos-marketplace-service/internal/platform/cache"
	"github.com/fekuna/omnipos-marketplace-service/internal/platform/logger"
	"github.com/fekuna/omnipos-marketplace-service/internal/platform/observability"
	"github.com/fekuna/omnipos-marketplace-service/internal/platform/postgres"
	"github.com/fekuna/omnipos-marketplace-service/internal/product"
	"github.com/fekuna/omnipos-marketplace-service/internal/rpc"
	"github.com/fekuna/omnipos-marketplace-service/internal/user"

	cartH "github.com/fekuna/omnipos-marketplace-service/internal/cart/handler"
	cartRepoPkg "github.com/fekuna/omnipos-marketplace-service/internal/cart/repository"
	cartUCPkg "github.com/fekuna/omnipos-marketplace-service/internal/cart/usecase"

	lockerPkg "github.com/fekuna/omnipos-marketplace-service/internal/inventory/locker"
	invUCPkg "github.com/fekuna/omnipos-marketplace-service/internal/inventory/usecase"

	orderH "github.com/fekuna/omnipos-marketplace-service/internal/order/handler"
	orderPubPkg "github.com/fekuna/omnipos-marketplace-service/internal/order/publisher"
	orderRepoPkg "github.com/fekuna/omnipos-marketplace-service/internal/order/repository"
	orderUCPkg "github.com/fekuna/omnipos-marketplace-service/internal/order/usecase"

	prodH "github.com/fekuna/omnipos-marketplace-service/internal/product/handler"
	prodListenerPkg "github.com/fekuna/omnipos-marketplace-service/internal/product/listener"
	prodRepoPkg "github.com/fekuna/omnipos-marketplace-service/internal/product/repository"
	prodUCPkg "github.com/fekuna/omnipos-marketplace-service/internal/product/usecase"

	userH "github.com/fekuna/omnipos-marketplace-service/internal/user/handler"
	userRepoPkg "github.com/fekuna/omnipos-marketplace-service/internal/user/repository"
	userUCPkg "github.com/fekuna/omnipos-marketplace-service/internal/user/usecase"
)

type stores struct {
	users    user.Repository
	products product.Repository
	carts    cart.Repository
	orders   order.Repository
}

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     cfg.Server.AppEnv == "dev" || cfg.Server.AppEnv == "development",
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Tracing
	shutdownTracing, err := observability.SetupTracingSDK(ctx, &observability.TracingConfig{
		Endpoint:   cfg.Otel.Endpoint,
		AuthHeader: cfg.Otel.AuthHeader,
	})
	if err != nil {
		appLogger.Fatal("Could not set up tracing", zap.Error(err))
	}
	defer func() {
		sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer scancel()
		_ = shutdownTracing(sctx)
	}()

	// 4. Storage
	var st stores
	switch cfg.Storage.Driver {
	case "postgres":
		db := connectPostgres(ctx, cfg, appLogger)
		defer db.Close()
		st = stores{
			users:    userRepoPkg.NewPGRepository(db),
			products: prodRepoPkg.NewPGRepository(db),
			carts:    cartRepoPkg.NewPGRepository(db),
			orders:   orderRepoPkg.NewPGRepository(db),
		}
	case "memory":
		st = stores{
			users:    userRepoPkg.NewMemoryRepository(),
			products: prodRepoPkg.NewMemoryRepository(),
			carts:    cartRepoPkg.NewMemoryRepository(),
			orders:   orderRepoPkg.NewMemoryRepository(),
		}
		appLogger.Warn("Using in-memory storage, state is lost on restart")
	default:
		appLogger.Fatal("Unknown storage driver", zap.String("driver", cfg.Storage.Driver))
	}

	// 5. Redis: catalog cache and cross-instance cart and stock locks
	var redisClient *cache.RedisClient
	var stockLocker inventory.Locker = lockerPkg.NewLocal()
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(&cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			appLogger.Fatal("Could not connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		stockLocker = lockerPkg.NewRedis(redisClient, appLogger)
		appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}

	// 6. Kafka: order events out, moderation commands in
	var publisher order.EventPublisher = orderPubPkg.Noop{}
	var moderationConsumer *broker.KafkaConsumer
	if cfg.Kafka.Enabled {
		producer := broker.NewProducer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.OrderTopic,
		})
		defer producer.Close()
		publisher = orderPubPkg.NewKafkaPublisher(producer)

		moderationConsumer = broker.NewConsumer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.ModerationTopic,
			GroupID: cfg.Kafka.GroupID,
		})
		defer moderationConsumer.Close()
		appLogger.Info("Connected to Kafka",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("order_topic", cfg.Kafka.OrderTopic),
			zap.String("moderation_topic", cfg.Kafka.ModerationTopic),
		)
	}

	// 7. Initialize UseCases
	guard := access.NewGuard(st.users)
	userUC := userUCPkg.NewUserUseCase(st.users, guard, cfg.Access.AdminPrincipals, appLogger)
	prodUC := prodUCPkg.NewProductUseCase(st.products, guard, redisClient, appLogger)
	cartUC := cartUCPkg.NewCartUseCase(st.carts, st.products, stockLocker, guard, appLogger)
	invUC := invUCPkg.NewInventoryUseCase(st.products, stockLocker, redisClient, appLogger)
	orderUC := orderUCPkg.NewOrderUseCase(st.orders, st.carts, invUC, stockLocker, publisher, guard, appLogger)

	if moderationConsumer != nil {
		if cfg.Kafka.ModerationSigningKey == "" {
			appLogger.Warn("KAFKA_MODERATION_SIGNING_KEY not set, moderation events are not consumed")
		} else {
			listener := prodListenerPkg.NewModerationListener(moderationConsumer, prodUC, []byte(cfg.Kafka.ModerationSigningKey), appLogger)
			go listener.Start(ctx)
		}
	}

	// 8. Start gRPC Server
	port := cfg.Server.GRPCPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	lis, err := net.Listen("tcp", port)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			rpc.ContextInterceptor(),
			rpc.LoggingInterceptor(appLogger),
		),
	)
	marketplacev1.RegisterCatalogServiceServer(grpcServer, prodH.NewProductHandler(prodUC, appLogger))
	marketplacev1.RegisterCartServiceServer(grpcServer, cartH.NewCartHandler(cartUC, appLogger))
	marketplacev1.RegisterOrderServiceServer(grpcServer, orderH.NewOrderHandler(orderUC, appLogger))
	marketplacev1.RegisterUserServiceServer(grpcServer, userH.NewUserHandler(userUC, appLogger))

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	appLogger.Info("Starting gRPC server", zap.String("port", port))
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// 9. Start HTTP gateway
	httpPort := cfg.Server.HTTPPort
	if !strings.HasPrefix(httpPort, ":") {
		httpPort = ":" + httpPort
	}
	httpServer := &http.Server{
		Addr:              httpPort,
		Handler:           gateway.NewRouter(gateway.NewCatalogHandler(prodUC, appLogger)),
		ReadHeaderTimeout: 5 * time.Second,
	}
	appLogger.Info("Starting HTTP gateway", zap.String("port", httpPort))
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve http", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	healthServer.Shutdown()
	cancel()

	sctx, scancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer scancel()
	if err := httpServer.Shutdown(sctx); err != nil {
		appLogger.Error("HTTP gateway shutdown failed", zap.Error(err))
	}
	grpcServer.GracefulStop()
	appLogger.Info("Server stopped")
}

func connectPostgres(ctx context.Context, cfg *config.Config, appLogger logger.ZapLogger) *sqlx.DB {
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	if cfg.Postgres.AutoMigrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			appLogger.Fatal("Could not apply schema", zap.Error(err))
		}
		appLogger.Info("Database schema applied")
	}
	return db
}
