package repository

import (
	"context"
	"errors"

	"customer-service/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNotFound is returned by lookups that require the customer to exist.
var ErrNotFound = errors.New("customer not found")

// CustomerRepository is the data access surface for customers.
type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, customer *models.Customer) error

	// Find returns nil and no error when no row has the id.
	Find(ctx context.Context, id uint) (*models.Customer, error)
	FindOrNotFound(ctx context.Context, id uint) (*models.Customer, error)
	All(ctx context.Context) ([]models.Customer, error)

	FindByName(ctx context.Context, name string) ([]models.Customer, error)
	FindByAddress(ctx context.Context, address string) ([]models.Customer, error)
	FindByEmail(ctx context.Context, email string) ([]models.Customer, error)
	FindByPhoneNumber(ctx context.Context, phoneNumber string) ([]models.Customer, error)
	FindByAvailability(ctx context.Context, available bool) ([]models.Customer, error)
	CountByAvailability(ctx context.Context, available bool) (int64, error)

	Ping(ctx context.Context) error
}

type gormCustomerRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewCustomerRepository returns a CustomerRepository backed by db.
func NewCustomerRepository(db *gorm.DB, logger *zap.Logger) CustomerRepository {
	return &gormCustomerRepository{db: db, logger: logger.Named("repository")}
}

// Create inserts customer as a new row. Any id already set is discarded.
func (r *gormCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	r.logger.Info("creating customer", zap.String("name", customer.Name))
	customer.ID = 0
	return r.db.WithContext(ctx).Create(customer).Error
}

// Update writes every column of a persisted customer, zero values included.
func (r *gormCustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	if !customer.IsPersisted() {
		return models.UnsavedUpdateError()
	}
	r.logger.Info("saving customer", zap.Uint("id", customer.ID), zap.String("name", customer.Name))

	result := r.db.WithContext(ctx).Model(&models.Customer{}).
		Where("id = ?", customer.ID).
		Updates(map[string]any{
			"name":         customer.Name,
			"address":      customer.Address,
			"email":        customer.Email,
			"password":     customer.Password,
			"phone_number": customer.PhoneNumber,
			"available":    customer.Available,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormCustomerRepository) Delete(ctx context.Context, customer *models.Customer) error {
	r.logger.Info("deleting customer", zap.Uint("id", customer.ID), zap.String("name", customer.Name))
	return r.db.WithContext(ctx).Delete(&models.Customer{}, customer.ID).Error
}

func (r *gormCustomerRepository) Find(ctx context.Context, id uint) (*models.Customer, error) {
	r.logger.Info("processing lookup", zap.Uint("id", id))

	var customer models.Customer
	err := r.db.WithContext(ctx).First(&customer, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *gormCustomerRepository) FindOrNotFound(ctx context.Context, id uint) (*models.Customer, error) {
	customer, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrNotFound
	}
	return customer, nil
}

func (r *gormCustomerRepository) All(ctx context.Context) ([]models.Customer, error) {
	r.logger.Info("processing all customers")
	return r.findWhere(ctx, nil)
}

func (r *gormCustomerRepository) FindByName(ctx context.Context, name string) ([]models.Customer, error) {
	r.logger.Info("processing name query", zap.String("name", name))
	return r.findWhere(ctx, &models.Customer{Name: name}, "Name")
}

func (r *gormCustomerRepository) FindByAddress(ctx context.Context, address string) ([]models.Customer, error) {
	r.logger.Info("processing address query", zap.String("address", address))
	return r.findWhere(ctx, &models.Customer{Address: address}, "Address")
}

func (r *gormCustomerRepository) FindByEmail(ctx context.Context, email string) ([]models.Customer, error) {
	r.logger.Info("processing email query", zap.String("email", email))
	return r.findWhere(ctx, &models.Customer{Email: email}, "Email")
}

func (r *gormCustomerRepository) FindByPhoneNumber(ctx context.Context, phoneNumber string) ([]models.Customer, error) {
	r.logger.Info("processing phone number query", zap.String("phone_number", phoneNumber))
	return r.findWhere(ctx, &models.Customer{PhoneNumber: &phoneNumber}, "PhoneNumber")
}

func (r *gormCustomerRepository) FindByAvailability(ctx context.Context, available bool) ([]models.Customer, error) {
	r.logger.Info("processing available query", zap.Bool("available", available))
	return r.findWhere(ctx, &models.Customer{Available: available}, "Available")
}

func (r *gormCustomerRepository) CountByAvailability(ctx context.Context, available bool) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Customer{}).
		Where(&models.Customer{Available: available}, "Available").
		Count(&count).Error
	return count, err
}

func (r *gormCustomerRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// findWhere runs an equality query. Naming the fields keeps zero values such as
// available=false in the WHERE clause.
func (r *gormCustomerRepository) findWhere(ctx context.Context, cond *models.Customer, fields ...string) ([]models.Customer, error) {
	query := r.db.WithContext(ctx).Order("id")
	if cond != nil {
		args := make([]any, 0, len(fields))
		for _, f := range fields {
			args = append(args, f)
		}
		query = query.Where(cond, args...)
	}

	customers := []models.Customer{}
	if err := query.Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}
