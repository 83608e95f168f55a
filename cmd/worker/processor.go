package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"

	"github.com/huertohogar/storefront-checkout/internal/aws"
	"github.com/huertohogar/storefront-checkout/internal/idempotency"
	"github.com/huertohogar/storefront-checkout/internal/orders"
)

// Processor handles SQS messages and performs order lifecycle transitions.
type Processor struct {
	log        *logrus.Logger
	idempStore *idempotency.Store
	orderStore *orders.Store
}

// NewProcessor creates a new worker processor with AWS clients injected.
func NewProcessor(clients *aws.AWSClients, log *logrus.Logger, idempTable, ordersTable string, ttl time.Duration) *Processor {
	return &Processor{
		log:        log,
		idempStore: idempotency.NewStore(clients.DynamoDB, idempTable, ttl),
		orderStore: orders.NewStore(clients.DynamoDB, ordersTable),
	}
}

// Handle receives an SQS batch event and processes each message.
func (p *Processor) Handle(ctx context.Context, ev events.SQSEvent) error {
	for _, rec := range ev.Records {
		if err := p.processMessage(ctx, rec); err != nil {
			// Return error: Lambda will retry. If failed too many times, message goes to DLQ.
			p.log.WithError(err).Error("worker error")
			return err
		}
	}
	return nil
}

func (p *Processor) processMessage(ctx context.Context, rec events.SQSMessage) error {
	var msg WorkerMessage
	if err := json.Unmarshal([]byte(rec.Body), &msg); err != nil {
		return fmt.Errorf("invalid message body: %w", err)
	}

	p.log.WithFields(logrus.Fields{
		"order_id":        msg.OrderID,
		"idempotency_key": msg.IdempotencyKey,
		"correlation_id":  msg.CorrelationID,
	}).Info("received order message")

	// Step 1: Read the current order
	order, err := p.orderStore.Get(ctx, msg.OrderID)
	if err != nil {
		return fmt.Errorf("failed to fetch order: %w", err)
	}
	if order == nil {
		// Should never happen — DLQ if it does
		return fmt.Errorf("order not found: %s", msg.OrderID)
	}

	// Step 2: Move PENDING -> PROCESSING (idempotent)
	err = p.orderStore.UpdateStatus(ctx, msg.OrderID, orders.StatusPending, orders.StatusProcessing)
	if err == orders.ErrStatusMismatch {
		// Already processed or competing worker:
		// If already COMPLETED -> treat as success.
		// If already FAILED -> fail permanently.
		// If already PROCESSING -> another worker took it — return nil to swallow duplicated messages.
		o2, _ := p.orderStore.Get(ctx, msg.OrderID)
		switch o2.Status {
		case orders.StatusCompleted:
			p.log.WithField("order_id", msg.OrderID).Info("already completed")
			return nil
		case orders.StatusFailed:
			return fmt.Errorf("order=%s is already FAILED", msg.OrderID)
		case orders.StatusProcessing:
			p.log.WithField("order_id", msg.OrderID).Info("duplicate processing event")
			return nil
		default:
			return fmt.Errorf("unexpected status for order=%s: %s", msg.OrderID, o2.Status)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to update status to PROCESSING: %w", err)
	}

	if err := p.orderStore.IncrementAttempts(ctx, msg.OrderID); err != nil {
		p.log.WithError(err).WithField("order_id", msg.OrderID).Warn("attempt counter update failed")
	}

	// Step 3: fulfillment hand-off would run here (picking, confirmation email)

	// Step 4: Complete order: PROCESSING -> COMPLETED
	err = p.orderStore.UpdateStatus(ctx, msg.OrderID, orders.StatusProcessing, orders.StatusCompleted)
	if err != nil {
		return fmt.Errorf("failed to update status to COMPLETED: %w", err)
	}

	// Step 5: Mark idempotency DONE when the submit carried a key
	if msg.IdempotencyKey != "" {
		response := fmt.Sprintf(`{"order_id":"%s","status":"COMPLETED"}`, msg.OrderID)
		if err := p.idempStore.MarkDone(ctx, msg.IdempotencyKey, response, 200); err != nil {
			return fmt.Errorf("failed to update idempotency: %w", err)
		}
	}

	p.log.WithField("order_id", msg.OrderID).Info("order completed")
	return nil
}
