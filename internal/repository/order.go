package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"paypal-checkout-plugin/internal/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, id uint) (*model.Order, error)
	CreateFromBasket(ctx context.Context, basket *model.Basket, status string) (*model.Order, error)
	// RecordPayment attaches a captured payment to the order. It is
	// idempotent keyed on transactionID: a repeated capture callback for
	// the same transaction neither creates a second payment row nor
	// credits the order twice.
	RecordPayment(ctx context.Context, order *model.Order, amount decimal.Decimal, transactionID, method string) error
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) FindByID(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("User").
		Preload("Payments").
		First(&order, id).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) CreateFromBasket(ctx context.Context, basket *model.Basket, status string) (*model.Order, error) {
	email := basket.GuestEmail()
	if basket.User != nil {
		email = basket.User.Email
	}

	items := make([]model.OrderItem, len(basket.Items))
	for i, item := range basket.Items {
		items[i] = model.OrderItem{
			Name:      item.Name,
			Sku:       item.Sku,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}

	order := &model.Order{
		Ref:        uuid.NewString(),
		Status:     status,
		UserID:     basket.UserID,
		Email:      email,
		Total:      basket.Total(),
		AmountPaid: decimal.Zero,
		Items:      items,
	}

	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}

	return order, nil
}

func (r *orderRepoImpl) RecordPayment(ctx context.Context, order *model.Order, amount decimal.Decimal, transactionID, method string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&model.OrderPayment{}).
			Where("transaction_id = ?", transactionID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			// already recorded, duplicate callback
			return nil
		}

		err = tx.Create(&model.OrderPayment{
			OrderID:       order.ID,
			Amount:        amount,
			TransactionID: transactionID,
			PaymentMethod: method,
		}).Error
		if err != nil {
			return err
		}

		order.AmountPaid = order.AmountPaid.Add(amount)
		return tx.Model(&model.Order{}).
			Where("id = ?", order.ID).
			Update("amount_paid", order.AmountPaid).Error
	})
}
