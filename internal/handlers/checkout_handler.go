package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/huertohogar/storefront-checkout/internal/checkout"
	"github.com/huertohogar/storefront-checkout/internal/idempotency"
	"github.com/huertohogar/storefront-checkout/internal/orders"
)

func (a *api) registerCheckoutRoutes(r *gin.Engine) {
	r.GET("/checkout", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"step":      a.machine.Step(),
			"errors":    a.machine.FieldErrors(),
			"draft":     a.machine.Draft(),
			"submitted": a.machine.Submitted(),
		})
	})

	r.POST("/checkout/reset", func(c *gin.Context) {
		a.machine.Reset()
		c.JSON(http.StatusOK, gin.H{"step": a.machine.Step()})
	})

	r.PUT("/checkout/personal-info", func(c *gin.Context) {
		var p checkout.PersonalInfo
		if err := c.ShouldBindJSON(&p); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request_body", "msg": err.Error()})
			return
		}
		a.machine.SetPersonalInfo(p)
		c.JSON(http.StatusOK, gin.H{"step": a.machine.Step()})
	})

	r.PUT("/checkout/address", func(c *gin.Context) {
		var ad checkout.Address
		if err := c.ShouldBindJSON(&ad); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request_body", "msg": err.Error()})
			return
		}
		a.machine.SetAddress(ad)
		c.JSON(http.StatusOK, gin.H{"step": a.machine.Step()})
	})

	r.PUT("/checkout/payment", func(c *gin.Context) {
		var p checkout.Payment
		if err := c.ShouldBindJSON(&p); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request_body", "msg": err.Error()})
			return
		}
		a.machine.SetPayment(p)
		c.JSON(http.StatusOK, gin.H{"step": a.machine.Step()})
	})

	r.POST("/checkout/next", func(c *gin.Context) {
		if err := a.machine.Next(); err != nil {
			var ve *checkout.ValidationError
			if errors.As(err, &ve) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{
					"error":  "validation_failed",
					"step":   a.machine.Step(),
					"fields": ve.Fields,
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "step_failed", "msg": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"step": a.machine.Step()})
	})

	r.POST("/checkout/back", func(c *gin.Context) {
		a.machine.Back()
		c.JSON(http.StatusOK, gin.H{"step": a.machine.Step()})
	})

	r.POST("/checkout/submit", a.handleSubmit)

	r.GET("/orders", func(c *gin.Context) {
		email := c.Query("email")
		if email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing_email"})
			return
		}
		list, err := a.ordersSt.ListByCustomer(c.Request.Context(), email)
		if err != nil {
			a.log.WithError(err).Error("list orders failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list_orders_failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": list})
	})
}

// plainCreate is the default order writer: a straight append to the orders
// table, used when the client sends no idempotency key.
func (a *api) plainCreate(ctx context.Context, o orders.Order) error {
	return a.ordersSt.Create(ctx, o)
}

// handleSubmit finalizes the checkout. When an Idempotency-Key header is
// present the order and the idempotency record are created in one DynamoDB
// transaction, and duplicate submissions (double clicks, retries) replay the
// stored first response instead of creating a second order.
func (a *api) handleSubmit(c *gin.Context) {
	ctx := c.Request.Context()
	idempKey := c.GetHeader("Idempotency-Key")

	writer := checkout.OrderWriterFunc(a.plainCreate)
	if idempKey != "" {
		writer = func(wctx context.Context, o orders.Order) error {
			rec := a.idempSt.NewRecord(idempKey, o.OrderID)
			return a.ordersSt.CreateWithIdempotencyTransaction(wctx, a.cfg.IdempotencyTable, rec, o, a.cfg.TTLWindow)
		}
	}

	order, err := a.machine.SubmitWith(ctx, writer)
	if err != nil {
		a.respondSubmitError(c, idempKey, err)
		return
	}

	// order persisted and cart cleared; now the follow-ups
	msgPayload, _ := json.Marshal(map[string]string{
		"order_id":        order.OrderID,
		"idempotency_key": idempKey,
	})
	attrs := map[string]string{
		"order_id":       order.OrderID,
		"correlation_id": c.GetHeader("X-Request-Id"),
	}
	if idempKey != "" {
		attrs["idempotency_key"] = idempKey
	}
	if err := a.publisher.SendOrderMessage(ctx, string(msgPayload), attrs); err != nil {
		if idempKey != "" {
			_ = a.idempSt.MarkFailed(ctx, idempKey, fmt.Sprintf("sqs_send_failed: %v", err))
		}
		a.log.WithError(err).WithField("order_id", order.OrderID).Error("enqueue failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "enqueue_failed", "detail": err.Error()})
		return
	}

	if err := a.metrics.EmitOrderSubmitted(ctx, order.Total, order.PaymentMethod); err != nil {
		// metrics are best-effort; the order already exists
		a.log.WithError(err).Warn("metric emission failed")
	}

	responseBody, _ := json.Marshal(gin.H{"order_id": order.OrderID, "status": order.Status, "total": order.Total})
	if idempKey != "" {
		_ = a.idempSt.MarkDone(ctx, idempKey, string(responseBody), http.StatusCreated)
	}

	a.log.WithFields(logrus.Fields{
		"order_id": order.OrderID,
		"total":    order.Total,
		"coupon":   order.CouponCode,
	}).Info("order submitted")

	c.Header("Location", fmt.Sprintf("/orders/%s", order.OrderID))
	c.JSON(http.StatusCreated, gin.H{"order_id": order.OrderID, "status": order.Status, "total": order.Total})
}

// respondSubmitError maps machine errors to responses; for idempotent
// submits it resolves duplicates against the stored record.
func (a *api) respondSubmitError(c *gin.Context, idempKey string, err error) {
	ctx := c.Request.Context()

	// a keyed duplicate may already own the result. After the first submit
	// clears the cart, the double click surfaces as a machine error rather
	// than a conditional-write failure, so the record is consulted before
	// any error mapping.
	var rec *idempotency.Record
	if idempKey != "" {
		var getErr error
		rec, getErr = a.idempSt.Get(ctx, idempKey)
		if getErr != nil {
			a.log.WithError(getErr).WithField("idempotency_key", idempKey).Warn("idempotency lookup failed")
		}
		if rec != nil {
			switch rec.Status {
			case idempotency.StatusDone:
				if rec.ResponseBody != "" {
					c.Data(rec.ResponseStatus, "application/json", []byte(rec.ResponseBody))
					return
				}
				c.JSON(http.StatusOK, gin.H{"order_id": rec.OrderID})
				return
			case idempotency.StatusInProgress:
				c.JSON(http.StatusAccepted, gin.H{"message": "request already in progress", "order_id": rec.OrderID})
				return
			}
			// FAILED falls through: this attempt's error decides the response
		}
	}

	var ve *checkout.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation_failed", "fields": ve.Fields})
		return
	}
	if errors.Is(err, checkout.ErrNotOnConfirmation) || errors.Is(err, checkout.ErrEmptyCart) {
		c.JSON(http.StatusConflict, gin.H{"error": "submit_rejected", "msg": err.Error()})
		return
	}

	if idempKey == "" {
		a.log.WithError(err).Error("order submit failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "submit_failed", "detail": err.Error()})
		return
	}
	if rec == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "transaction_failed_no_idempotency_record", "detail": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "previous_attempt_failed", "order_id": rec.OrderID})
}
