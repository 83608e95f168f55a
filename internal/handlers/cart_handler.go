package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/huertohogar/storefront-checkout/internal/auth"
	"github.com/huertohogar/storefront-checkout/internal/aws"
	"github.com/huertohogar/storefront-checkout/internal/cart"
	"github.com/huertohogar/storefront-checkout/internal/catalog"
	"github.com/huertohogar/storefront-checkout/internal/checkout"
	"github.com/huertohogar/storefront-checkout/internal/coupon"
	"github.com/huertohogar/storefront-checkout/internal/idempotency"
	"github.com/huertohogar/storefront-checkout/internal/orders"
	"github.com/huertohogar/storefront-checkout/internal/shipping"
	"github.com/huertohogar/storefront-checkout/internal/validation"
)

// HandlerConfig groups dependencies for the storefront API.
type HandlerConfig struct {
	DynamoDBClient   aws.DynamoDBAPI
	SQSClient        aws.SQSAPI
	CloudWatchClient aws.CloudWatchAPI
	IdempotencyTable string
	OrdersTable      string
	QueueURL         string
	MetricsNamespace string
	TTLWindow        time.Duration

	FreeShippingThreshold int64
	StandardShippingRate  int64

	Catalog      catalog.Source
	AuthProvider auth.Provider
	Logger       *logrus.Logger
}

// api wires the single in-process cart, its engines, and the stores behind
// the HTTP surface.
type api struct {
	cfg       HandlerConfig
	log       *logrus.Logger
	cart      *cart.Store
	coupons   *coupon.Engine
	shipping  shipping.Evaluator
	machine   *checkout.Machine
	ordersSt  *orders.Store
	idempSt   *idempotency.Store
	publisher *aws.Publisher
	metrics   *aws.MetricsEmitter
	validate  *validatorv10.Validate
}

// RegisterRoutes builds the stores and registers every storefront route.
func RegisterRoutes(r *gin.Engine, cfg HandlerConfig) {
	log := cfg.Logger
	if log == nil {
		log = logrus.New()
	}
	if cfg.Catalog == nil {
		cfg.Catalog = catalog.DefaultCatalog()
	}
	if cfg.AuthProvider == nil {
		cfg.AuthProvider = auth.EnvProvider{}
	}

	cartStore := cart.NewStore()
	eval := shipping.NewEvaluator(cfg.FreeShippingThreshold, cfg.StandardShippingRate)
	ordersStore := orders.NewStore(cfg.DynamoDBClient, cfg.OrdersTable)
	idempStore := idempotency.NewStore(cfg.DynamoDBClient, cfg.IdempotencyTable, cfg.TTLWindow)

	a := &api{
		cfg:       cfg,
		log:       log,
		cart:      cartStore,
		coupons:   coupon.NewEngine(coupon.DefaultRegistry(), cartStore),
		shipping:  eval,
		ordersSt:  ordersStore,
		idempSt:   idempStore,
		publisher: aws.NewPublisher(cfg.SQSClient, cfg.QueueURL),
		metrics:   aws.NewMetricsEmitter(cfg.CloudWatchClient, cfg.MetricsNamespace),
		validate:  validation.New(),
	}
	// the machine persists through a writer chosen per-request (plain append
	// or transactional with an idempotency record); registered in submit.
	a.machine = checkout.NewMachine(cartStore, eval, checkout.OrderWriterFunc(a.plainCreate), cfg.AuthProvider)

	a.registerCatalogRoutes(r)
	a.registerCartRoutes(r)
	a.registerCheckoutRoutes(r)
}

func (a *api) registerCatalogRoutes(r *gin.Engine) {
	r.GET("/products", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"products": a.cfg.Catalog.List()})
	})
	r.GET("/products/:id", func(c *gin.Context) {
		p, ok := a.cfg.Catalog.Get(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "product_not_found"})
			return
		}
		c.JSON(http.StatusOK, p)
	})
}

func (a *api) registerCartRoutes(r *gin.Engine) {
	r.GET("/cart", func(c *gin.Context) {
		c.JSON(http.StatusOK, a.cartView())
	})

	r.POST("/cart/items", func(c *gin.Context) {
		var req validation.AddItemRequest
		if err := validation.BindAndValidate(c, &req, a.validate); err != nil {
			return
		}
		p, ok := a.cfg.Catalog.Get(req.ProductID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "product_not_found"})
			return
		}
		qty := req.Quantity
		if qty == 0 {
			qty = 1
		}
		a.cart.AddItem(*p, qty)
		a.log.WithFields(logrus.Fields{"product_id": p.ID, "quantity": qty}).Info("cart item added")
		c.JSON(http.StatusOK, a.cartView())
	})

	r.PUT("/cart/items/:id", func(c *gin.Context) {
		var req validation.UpdateQuantityRequest
		if err := validation.BindAndValidate(c, &req, a.validate); err != nil {
			return
		}
		// unknown ids and non-positive quantities are handled inside the
		// store (no-op / removal); both answer with the current cart
		a.cart.UpdateQuantity(c.Param("id"), req.Quantity)
		c.JSON(http.StatusOK, a.cartView())
	})

	r.DELETE("/cart/items/:id", func(c *gin.Context) {
		a.cart.RemoveItem(c.Param("id"))
		c.JSON(http.StatusOK, a.cartView())
	})

	r.POST("/cart/clear", func(c *gin.Context) {
		a.cart.Clear()
		c.JSON(http.StatusOK, a.cartView())
	})

	r.POST("/cart/toggle", func(c *gin.Context) {
		a.cart.ToggleOpen()
		c.JSON(http.StatusOK, gin.H{"open": a.cart.IsOpen()})
	})
	r.POST("/cart/open", func(c *gin.Context) {
		a.cart.Open()
		c.JSON(http.StatusOK, gin.H{"open": true})
	})
	r.POST("/cart/close", func(c *gin.Context) {
		a.cart.Close()
		c.JSON(http.StatusOK, gin.H{"open": false})
	})

	r.POST("/cart/coupon", func(c *gin.Context) {
		var req validation.ApplyCouponRequest
		if err := validation.BindAndValidate(c, &req, a.validate); err != nil {
			return
		}
		applied, err := a.coupons.Apply(req.Code)
		if err != nil {
			// blank and unknown codes carry distinct user-facing messages
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid_coupon", "msg": err.Error()})
			return
		}
		a.log.WithField("coupon", applied.Code).Info("coupon applied")
		c.JSON(http.StatusOK, a.cartView())
	})

	r.DELETE("/cart/coupon", func(c *gin.Context) {
		a.coupons.Remove()
		c.JSON(http.StatusOK, a.cartView())
	})
}

// cartView is the reactive totals payload every cart-adjacent view consumes.
func (a *api) cartView() gin.H {
	subtotal := a.cart.Subtotal()
	discount := a.cart.DiscountAmount()
	after := subtotal - discount
	cp := a.cart.Coupon()
	shippingCost := a.shipping.Cost(after, cp)

	view := gin.H{
		"items":                   a.cart.Items(),
		"open":                    a.cart.IsOpen(),
		"item_count":              a.cart.TotalItemCount(),
		"subtotal":                subtotal,
		"discount":                discount,
		"subtotal_after_coupon":   after,
		"shipping":                shippingCost,
		"total":                   after + shippingCost,
		"free_shipping_remaining": a.shipping.AmountRemaining(after),
	}
	if cp != nil {
		view["coupon"] = cp
	}
	return view
}
