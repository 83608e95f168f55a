package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"

	"github.com/huertohogar/storefront-checkout/internal/aws"
	"github.com/huertohogar/storefront-checkout/internal/config"
)

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

	processor := NewProcessor(clients, log, cfg.IdempotencyTable, cfg.OrdersTable, cfg.IdempotencyTTL)

	if cfg.RunLocal {
		// Local testing helper: process one synthetic message and exit
		event := events.SQSEvent{
			Records: []events.SQSMessage{
				{Body: `{"order_id":"local-order-1","idempotency_key":"local-key-1"}`},
			},
		}
		if err := processor.Handle(context.Background(), event); err != nil {
			log.WithError(err).Fatal("local handler error")
		}
		return
	}

	lambda.Start(processor.Handle)
}
