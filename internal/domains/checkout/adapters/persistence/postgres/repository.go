package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/eshop-labs/checkout-api/internal/domains/checkout/domain"
	"github.com/eshop-labs/checkout-api/internal/domains/checkout/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists transactions in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// transactionRecord maps the transaction aggregate to a relational table.
// Delivery and payment snapshots stay schema-flexible as jsonb documents.
type transactionRecord struct {
	ID           uuid.UUID             `gorm:"primaryKey;column:id;type:uuid"`
	ProductID    int64                 `gorm:"column:product_id;index"`
	CustomerID   *uuid.UUID            `gorm:"column:customer_id;type:uuid;index"`
	Amount       decimal.Decimal       `gorm:"column:amount;type:numeric(12,2)"`
	Status       string                `gorm:"column:status;type:varchar(16);index"`
	DeliveryInfo domain.DeliveryInfo   `gorm:"column:delivery_info;type:jsonb;serializer:json"`
	PaymentInfo  domain.PaymentSummary `gorm:"column:payment_info;type:jsonb;serializer:json"`
	GatewayID    *string               `gorm:"column:payment_gateway_id"`
	CreatedAt    time.Time             `gorm:"column:created_at;index"`
}

func (transactionRecord) TableName() string { return "transactions" }

// Save inserts a transaction or refreshes its mutable columns. Status is
// deliberately excluded from the conflict update: transitions go through
// CompareAndSwapStatus only.
func (r *Repository) Save(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, errors.New("transaction is nil")
	}
	record := toRecord(transaction)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"payment_gateway_id": record.GatewayID,
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a transaction by identifier.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record transactionRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns transactions matching the filter, newest first.
func (r *Repository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Transaction, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Model(&transactionRecord{})
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", *filter.To)
	}
	var records []transactionRecord
	if err := query.Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	transactions := make([]*domain.Transaction, 0, len(records))
	for i := range records {
		transactions = append(transactions, records[i].toDomain())
	}
	return transactions, nil
}

// SetGatewayID records the gateway-assigned id for a transaction.
func (r *Repository) SetGatewayID(ctx context.Context, id uuid.UUID, gatewayID string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&transactionRecord{}).
		Where("id = ?", id).
		Update("payment_gateway_id", gatewayID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// CompareAndSwapStatus performs the conditional transition that guards the
// at-most-once approval side effect under racing reconciliations.
func (r *Repository) CompareAndSwapStatus(ctx context.Context, id uuid.UUID, from, to domain.Status) (bool, error) {
	if err := r.ensureDB(); err != nil {
		return false, err
	}
	result := r.db.WithContext(ctx).
		Model(&transactionRecord{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres transaction repository not configured")
	}
	return nil
}

func toRecord(transaction *domain.Transaction) transactionRecord {
	record := transactionRecord{
		ID:           transaction.ID,
		ProductID:    transaction.ProductID,
		Amount:       transaction.Amount,
		Status:       string(transaction.Status),
		DeliveryInfo: transaction.DeliveryInfo,
		PaymentInfo:  transaction.PaymentSummary,
		CreatedAt:    transaction.CreatedAt,
	}
	if transaction.CustomerID != uuid.Nil {
		customerID := transaction.CustomerID
		record.CustomerID = &customerID
	}
	if transaction.GatewayID != "" {
		gatewayID := transaction.GatewayID
		record.GatewayID = &gatewayID
	}
	return record
}

func (r transactionRecord) toDomain() *domain.Transaction {
	transaction := &domain.Transaction{
		ID:             r.ID,
		ProductID:      r.ProductID,
		Amount:         r.Amount,
		Status:         domain.ParseStatus(r.Status),
		DeliveryInfo:   r.DeliveryInfo,
		PaymentSummary: r.PaymentInfo,
		CreatedAt:      r.CreatedAt,
	}
	if r.CustomerID != nil {
		transaction.CustomerID = *r.CustomerID
	}
	if r.GatewayID != nil {
		transaction.GatewayID = *r.GatewayID
	}
	return transaction
}
