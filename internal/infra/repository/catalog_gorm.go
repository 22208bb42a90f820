package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/barberlink/booking-api/internal/domain/booking"
	"github.com/barberlink/booking-api/internal/models"
)

// --------------------------------------------------
// Services
// --------------------------------------------------

type ServiceGormRepository struct {
	db *gorm.DB
}

func NewServiceGormRepository(db *gorm.DB) *ServiceGormRepository {
	return &ServiceGormRepository{db: db}
}

func (r *ServiceGormRepository) FindByID(
	ctx context.Context,
	barbershopID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", serviceID, barbershopID).
		First(&svc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("service_not_found", "service %d not found", serviceID)
		}
		return nil, fmt.Errorf("find service %d: %w", serviceID, err)
	}
	return &svc, nil
}

// --------------------------------------------------
// Barbershops
// --------------------------------------------------

type ShopGormRepository struct {
	db *gorm.DB
}

func NewShopGormRepository(db *gorm.DB) *ShopGormRepository {
	return &ShopGormRepository{db: db}
}

func (r *ShopGormRepository) FindByID(
	ctx context.Context,
	id uint,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("barbershop_not_found", "barbershop %d not found", id)
		}
		return nil, fmt.Errorf("find barbershop %d: %w", id, err)
	}
	return &shop, nil
}

func (r *ShopGormRepository) FindBySlug(
	ctx context.Context,
	slug string,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&shop).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("barbershop_not_found", "barbershop %q not found", slug)
		}
		return nil, fmt.Errorf("find barbershop %q: %w", slug, err)
	}
	return &shop, nil
}

// --------------------------------------------------
// Customers
// --------------------------------------------------

type CustomerGormRepository struct {
	db *gorm.DB
}

func NewCustomerGormRepository(db *gorm.DB) *CustomerGormRepository {
	return &CustomerGormRepository{db: db}
}

func (r *CustomerGormRepository) FindByID(
	ctx context.Context,
	barbershopID uint,
	customerID uint,
) (*models.Customer, error) {

	var customer models.Customer
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", customerID, barbershopID).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("customer_not_found", "customer %d not found", customerID)
		}
		return nil, fmt.Errorf("find customer %d: %w", customerID, err)
	}
	return &customer, nil
}

func (r *CustomerGormRepository) GetOrCreate(
	ctx context.Context,
	barbershopID uint,
	name string,
	phone string,
	email string,
) (*models.Customer, error) {

	var customer models.Customer
	err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND phone = ?", barbershopID, phone).
		First(&customer).Error

	if err == nil {
		return &customer, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find customer by phone: %w", err)
	}

	customer = models.Customer{
		BarbershopID: barbershopID,
		Name:         name,
		Phone:        phone,
		Email:        email,
	}

	if err := r.db.WithContext(ctx).Create(&customer).Error; err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}

	return &customer, nil
}

// Compile-time checks
var (
	_ domain.ServiceRepository  = (*ServiceGormRepository)(nil)
	_ domain.ShopRepository     = (*ShopGormRepository)(nil)
	_ domain.CustomerRepository = (*CustomerGormRepository)(nil)
)
