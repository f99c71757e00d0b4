package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/eshop-labs/checkout-api/internal/domains/deliveries/domain"
	"github.com/eshop-labs/checkout-api/internal/domains/deliveries/ports"
)

var _ ports.Repository = (*Repository)(nil)

const uniqueViolation = "23505"

// Repository persists deliveries in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

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

// Save inserts a delivery. The unique index on transaction_id turns a second
// insert for the same transaction into ports.ErrAlreadyExists.
func (r *Repository) Save(ctx context.Context, delivery *domain.Delivery) (*domain.Delivery, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if delivery == nil {
		return nil, errors.New("delivery is nil")
	}
	record := toRecord(delivery)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ports.ErrAlreadyExists
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// GetByTransactionID fetches the delivery linked to a transaction.
func (r *Repository) GetByTransactionID(ctx context.Context, transactionID uuid.UUID) (*domain.Delivery, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record deliveryRecord
	if err := r.db.WithContext(ctx).First(&record, "transaction_id = ?", transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres delivery repository not configured")
	}
	return nil
}

func toRecord(delivery *domain.Delivery) deliveryRecord {
	return deliveryRecord{
		ID:            delivery.ID,
		TransactionID: delivery.TransactionID,
		CustomerID:    delivery.CustomerID,
		Address:       delivery.Address,
		City:          delivery.City,
		Region:        delivery.Region,
		Country:       delivery.Country,
		PostalCode:    delivery.PostalCode,
		Status:        string(delivery.Status),
	}
}

func (r deliveryRecord) toDomain() *domain.Delivery {
	return &domain.Delivery{
		ID:            r.ID,
		TransactionID: r.TransactionID,
		CustomerID:    r.CustomerID,
		Address:       r.Address,
		City:          r.City,
		Region:        r.Region,
		Country:       r.Country,
		PostalCode:    r.PostalCode,
		Status:        domain.Status(r.Status),
		CreatedAt:     r.CreatedAt,
	}
}
