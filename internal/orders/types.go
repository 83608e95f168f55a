package orders

import "time"

// Order statuses
const (
	StatusPending    = "PENDING"
	StatusProcessing = "PROCESSING"
	StatusCompleted  = "COMPLETED"
	StatusFailed     = "FAILED"
)

// OrderItem is the frozen purchase snapshot of one cart line.
type OrderItem struct {
	ProductID string `dynamodbav:"product_id" json:"product_id"`
	Name      string `dynamodbav:"name" json:"name"`
	UnitPrice int64  `dynamodbav:"unit_price" json:"unit_price"`
	Quantity  int    `dynamodbav:"quantity" json:"quantity"`
	Image     string `dynamodbav:"image,omitempty" json:"image,omitempty"`
}

// Customer is the contact/address snapshot taken at submission time.
type Customer struct {
	FirstName string `dynamodbav:"first_name" json:"first_name"`
	LastName  string `dynamodbav:"last_name" json:"last_name"`
	Email     string `dynamodbav:"email" json:"email"`
	Phone     string `dynamodbav:"phone" json:"phone"`
	Address   string `dynamodbav:"address" json:"address"`
	City      string `dynamodbav:"city" json:"city"`
	Commune   string `dynamodbav:"commune" json:"commune"`
}

// Order represents the item stored in the orders DynamoDB table. The
// financial fields are a frozen snapshot of the cart+coupon+shipping
// computation at submission time; they are never recomputed.
type Order struct {
	OrderID       string      `dynamodbav:"order_id" json:"order_id"` // PK
	Status        string      `dynamodbav:"status" json:"status"`     // PENDING | PROCESSING | COMPLETED | FAILED
	PaymentMethod string      `dynamodbav:"payment_method" json:"payment_method"`
	Items         []OrderItem `dynamodbav:"items" json:"items"`
	Subtotal      int64       `dynamodbav:"subtotal" json:"subtotal"`
	Discount      int64       `dynamodbav:"discount" json:"discount"`
	Shipping      int64       `dynamodbav:"shipping" json:"shipping"`
	Total         int64       `dynamodbav:"total" json:"total"`
	CouponCode    string      `dynamodbav:"coupon_code,omitempty" json:"coupon_code,omitempty"`
	Customer      Customer    `dynamodbav:"customer" json:"customer"`
	CreatedAt     time.Time   `dynamodbav:"created_at" json:"created_at"`
	UpdatedAt     time.Time   `dynamodbav:"updated_at" json:"updated_at"`
	Attempts      int         `dynamodbav:"attempts,omitempty" json:"attempts,omitempty"`
}
