package main

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/huertohogar/storefront-checkout/internal/auth"
	"github.com/huertohogar/storefront-checkout/internal/aws"
	"github.com/huertohogar/storefront-checkout/internal/catalog"
	"github.com/huertohogar/storefront-checkout/internal/config"
	"github.com/huertohogar/storefront-checkout/internal/handlers"
)

func setupRouter(cfg handlers.HandlerConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// health
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handlers.RegisterRoutes(r, cfg)

	return r
}

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}

	clients, err := aws.NewAWSClients(context.Background())
	if err != nil {
		log.WithError(err).Fatal("failed to init aws clients")
	}

	hcfg := handlers.HandlerConfig{
		DynamoDBClient:        clients.DynamoDB,
		SQSClient:             clients.SQS,
		CloudWatchClient:      clients.CloudWatch,
		IdempotencyTable:      cfg.IdempotencyTable,
		OrdersTable:           cfg.OrdersTable,
		QueueURL:              cfg.OrdersQueueURL,
		MetricsNamespace:      cfg.MetricsNamespace,
		TTLWindow:             cfg.IdempotencyTTL,
		FreeShippingThreshold: cfg.FreeShippingThreshold,
		StandardShippingRate:  cfg.StandardShippingRate,
		Catalog:               catalog.DefaultCatalog(),
		AuthProvider:          auth.EnvProvider{},
		Logger:                log,
	}

	r := setupRouter(hcfg)

	// if RUN_LOCAL is set, serve plain HTTP for development
	if cfg.RunLocal {
		addr := ":" + cfg.Port
		log.WithField("addr", addr).Info("running local server")
		if err := r.Run(addr); err != nil {
			log.WithError(err).Fatal("failed to run local server")
		}
		return
	}

	// lambda adapter
	adapter := ginadapter.New(r)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (interface{}, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}
