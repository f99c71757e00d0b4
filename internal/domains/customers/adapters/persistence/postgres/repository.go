package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/eshop-labs/checkout-api/internal/domains/customers/domain"
	"github.com/eshop-labs/checkout-api/internal/domains/customers/ports"
)

var _ ports.Repository = (*Repository)(nil)

// uniqueViolation is the PostgreSQL error code for a unique constraint hit.
const uniqueViolation = "23505"

// Repository persists customers in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type customerRecord struct {
	ID          uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	FullName    string    `gorm:"column:full_name;type:varchar(150)"`
	Email       string    `gorm:"column:email;type:varchar(150);uniqueIndex"`
	PhoneNumber string    `gorm:"column:phone_number;type:varchar(20)"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (customerRecord) TableName() string { return "customers" }

// Save inserts a customer. A duplicate email maps to ports.ErrDuplicateEmail
// so the caller can resolve the race by re-fetching.
func (r *Repository) Save(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, errors.New("customer is nil")
	}
	record := toRecord(customer)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ports.ErrDuplicateEmail
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// GetByEmail fetches a customer by their unique email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	var record customerRecord
	if err := r.db.WithContext(ctx).First(&record, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// GetByID fetches a customer by identifier.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record customerRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres customer repository not configured")
	}
	return nil
}

func toRecord(customer *domain.Customer) customerRecord {
	return customerRecord{
		ID:          customer.ID,
		FullName:    customer.FullName,
		Email:       customer.Email,
		PhoneNumber: customer.PhoneNumber,
	}
}

func (r customerRecord) toDomain() *domain.Customer {
	return &domain.Customer{
		ID:          r.ID,
		FullName:    r.FullName,
		Email:       r.Email,
		PhoneNumber: r.PhoneNumber,
	}
}
