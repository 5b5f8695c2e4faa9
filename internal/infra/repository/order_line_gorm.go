package repository

import (
	"context"
	"errors"

	"cafe/internal/domain/model"
	repo "cafe/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderLineGormRepository struct {
	db *gorm.DB
}

func NewOrderLineGormRepository(db *gorm.DB) *OrderLineGormRepository {
	return &OrderLineGormRepository{db: db}
}

func (r *OrderLineGormRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderLine, error) {
	var lines []model.OrderLine
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id asc").
		Find(&lines).Error
	if err != nil {
		return []model.OrderLine{}, err
	}
	return lines, nil
}

// (order, dish) の明細を行ロック付きで取得。
// locate-or-create はTxの中でこの読み取りを起点にするので、同じ注文への同時更新は直列化される。
func (r *OrderLineGormRepository) FindByOrderAndDish(ctx context.Context, orderID int64, dishID int64) (model.OrderLine, error) {
	var line model.OrderLine
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("order_id = ? AND dish_id = ?", orderID, dishID).
		First(&line).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.OrderLine{}, repo.ErrNotFound
	}
	if err != nil {
		return model.OrderLine{}, err
	}
	return line, nil
}

func (r *OrderLineGormRepository) Create(ctx context.Context, line model.OrderLine) (model.OrderLine, error) {
	if err := r.db.WithContext(ctx).Create(&line).Error; err != nil {
		return model.OrderLine{}, err
	}
	return line, nil
}

func (r *OrderLineGormRepository) UpdateQuantity(ctx context.Context, lineID int64, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.OrderLine{}).
		Where("id = ?", lineID).
		Update("quantity", qty)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderLineGormRepository) DeleteByID(ctx context.Context, lineID int64) error {
	res := r.db.WithContext(ctx).Delete(&model.OrderLine{}, lineID)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 注文削除・明細一括入れ替えで使う。0件削除もエラーにしない。
func (r *OrderLineGormRepository) DeleteByOrderID(ctx context.Context, orderID int64) error {
	return r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&model.OrderLine{}).Error
}
