package model

import "time"

// Order status values. FA means "attempted, not yet confirmed", not failed:
// every order starts as FA and only a confirmed payment moves it forward.
const (
	OrderStatusAttempted       = "FA" // پرداخت ناموفق
	OrderStatusDone            = "DO" // پرداخت موفق
	OrderStatusSnappPayCancel  = "SC" // پرداخت کنسل شده اسنپ پی
	OrderStatusSnappPayUpdated = "SU" // سفارش آپدیت شده اسنپ پی
	OrderStatusZarinpalCancel  = "ZC" // سفارش کنسل شده زرین پال
)

const (
	PaymentMethodZarinpal = "zarinpal"
	PaymentMethodSnappPay = "snapppay"
)

type Order struct {
	ID                    int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID                int64     `gorm:"not null;index" json:"user_id"`
	TotalPrice            int       `gorm:"not null" json:"total_price"`
	Status                string    `gorm:"size:5;index" json:"status"`
	OrderUserName         string    `gorm:"size:200" json:"order_user_name"`
	OrderMobile           string    `gorm:"size:11" json:"order_mobile"`
	OrderAddress          string    `gorm:"size:500" json:"order_address"`
	OrderCityID           *int64    `json:"order_city_id"`
	OrderName             string    `gorm:"size:255" json:"order_name"`
	ZarinpalAuthority     string    `gorm:"size:50;index" json:"zarinpal_authority"`
	ZarinpalRefID         int64     `json:"zarinpal_ref_id"`
	SnappPayPaymentToken  string    `gorm:"column:snapppay_payment_token;size:200;index" json:"snapppay_payment_token"`
	SnappPayTransactionID string    `gorm:"column:snapppay_transaction_id;size:200" json:"snapppay_transaction_id"`
	PaymentMethod         string    `gorm:"size:20;default:zarinpal" json:"payment_method"`
	OrderDiscount         int       `json:"order_discount"`
	OrderDiscountCode     string    `gorm:"size:255" json:"order_discount_code"`
	CartSession           string    `gorm:"size:64" json:"-"`
	Deleted               bool      `gorm:"default:false;not null;index" json:"-"`
	CreatedAt             time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	Items                 []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

func (*Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID      int64     `gorm:"not null;index" json:"order_id"`
	ProductID    int64     `gorm:"not null;index" json:"product_id"`
	SizeID       int64     `gorm:"not null;index" json:"size_id"`
	Quantity     int       `gorm:"not null" json:"quantity"`
	Price        int       `gorm:"not null" json:"price"`
	ItemDiscount int       `json:"item_discount"`
	Deleted      bool      `gorm:"default:false;not null;index" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (*OrderItem) TableName() string {
	return "order_items"
}

// ScaledDiscount returns the per-line discount after a quantity reduction,
// scaled by newQty/oldQty. Increasing quantity never re-prices upward.
func (i *OrderItem) ScaledDiscount(newQty int) int {
	if newQty >= i.Quantity || i.Quantity == 0 {
		return i.ItemDiscount
	}
	return i.ItemDiscount * newQty / i.Quantity
}

// PaymentLog records every gateway outcome for manual reconciliation.
type PaymentLog struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Amount    int       `gorm:"not null" json:"amount"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	OrderID   int64     `gorm:"not null;index" json:"order_id"`
	Status    string    `gorm:"size:100" json:"status"`
	ErrorCode string    `gorm:"size:200" json:"error_code"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (*PaymentLog) TableName() string {
	return "payment_logs"
}
