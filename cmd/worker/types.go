package main

// WorkerMessage is the payload published at submit time and consumed here.
type WorkerMessage struct {
	OrderID        string `json:"order_id"`
	IdempotencyKey string `json:"idempotency_key"`
	CorrelationID  string `json:"correlation_id,omitempty"`
}
