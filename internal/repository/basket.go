package repository

import (
	"context"

	"gorm.io/gorm"

	"paypal-checkout-plugin/internal/model"
)

type BasketRepository interface {
	FindByID(ctx context.Context, id uint) (*model.Basket, error)
	Create(ctx context.Context, basket *model.Basket) error
	Delete(ctx context.Context, basket *model.Basket) error
}

type basketRepoImpl struct {
	db *gorm.DB
}

func NewBasketRepository(db *gorm.DB) BasketRepository {
	return &basketRepoImpl{
		db: db,
	}
}

func (r *basketRepoImpl) FindByID(ctx context.Context, id uint) (*model.Basket, error) {
	var basket model.Basket
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("User").
		First(&basket, id).Error

	if err != nil {
		return nil, err
	}

	return &basket, nil
}

func (r *basketRepoImpl) Create(ctx context.Context, basket *model.Basket) error {
	return r.db.WithContext(ctx).Create(basket).Error
}

func (r *basketRepoImpl) Delete(ctx context.Context, basket *model.Basket) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("basket_id = ?", basket.ID).Delete(&model.BasketItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(basket).Error
	})
}
