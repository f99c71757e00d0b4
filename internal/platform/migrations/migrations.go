package migrations

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	checkoutdomain "github.com/eshop-labs/checkout-api/internal/domains/checkout/domain"
)

// Run applies the schema for the bounded contexts. Intended to replace
// adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&productRecord{},
		&customerRecord{},
		&transactionRecord{},
		&deliveryRecord{},
	)
}

// Product schema mirrors the products Postgres adapter.
type productRecord struct {
	ID          int64           `gorm:"primaryKey;column:id;autoIncrement"`
	Name        string          `gorm:"column:name;type:varchar(100);index"`
	Description string          `gorm:"column:description;type:text"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	Stock       int             `gorm:"column:stock"`
	ImageURL    string          `gorm:"column:img_url;type:text"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Customer schema mirrors the customers Postgres adapter. The unique index
// on email is what turns a duplicate-insert race into a typed error.
type customerRecord struct {
	ID          uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	FullName    string    `gorm:"column:full_name;type:varchar(150)"`
	Email       string    `gorm:"column:email;type:varchar(150);uniqueIndex"`
	PhoneNumber string    `gorm:"column:phone_number;type:varchar(20)"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (customerRecord) TableName() string { return "customers" }

// Transaction schema mirrors the checkout Postgres adapter.
type transactionRecord struct {
	ID           uuid.UUID                    `gorm:"primaryKey;column:id;type:uuid"`
	ProductID    int64                        `gorm:"column:product_id;index"`
	CustomerID   *uuid.UUID                   `gorm:"column:customer_id;type:uuid;index"`
	Amount       decimal.Decimal              `gorm:"column:amount;type:numeric(12,2)"`
	Status       string                       `gorm:"column:status;type:varchar(16);index"`
	DeliveryInfo checkoutdomain.DeliveryInfo  `gorm:"column:delivery_info;type:jsonb;serializer:json"`
	PaymentInfo  checkoutdomain.PaymentSummary `gorm:"column:payment_info;type:jsonb;serializer:json"`
	GatewayID    *string                      `gorm:"column:payment_gateway_id"`
	CreatedAt    time.Time                    `gorm:"column:created_at;index"`
}

func (transactionRecord) TableName() string { return "transactions" }

// Delivery schema mirrors the deliveries Postgres adapter. The unique index
// on transaction_id backs the at-most-once approval side effect.
type deliveryRecord struct {
	ID            uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	TransactionID uuid.UUID `gorm:"column:transaction_id;type:uuid;uniqueIndex"`
	CustomerID    uuid.UUID `gorm:"column:customer_id;type:uuid;index"`
	Address       string    `gorm:"column:address;type:varchar(255)"`
	City          string    `gorm:"column:city;type:varchar(100)"`
	Region        string    `gorm:"column:region;type:varchar(100)"`
	Country       string    `gorm:"column:country;type:varchar(100)"`
	PostalCode    string    `gorm:"column:postal_code;type:varchar(20)"`
	Status        string    `gorm:"column:status;type:varchar(32)"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (deliveryRecord) TableName() string { return "deliveries" }
