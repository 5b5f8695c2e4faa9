package repository

import (
	"context"
	"errors"

	"cafe/internal/domain/model"
	repo "cafe/internal/repository"

	"gorm.io/gorm"
)

type DishGormRepository struct {
	db *gorm.DB
}

// DI
func NewDishGormRepository(db *gorm.DB) *DishGormRepository {
	return &DishGormRepository{db: db}
}

func (r *DishGormRepository) List(ctx context.Context) ([]model.Dish, error) {
	var dishes []model.Dish
	if err := r.db.WithContext(ctx).Order("id asc").Find(&dishes).Error; err != nil {
		return []model.Dish{}, err
	}
	return dishes, nil
}

func (r *DishGormRepository) FindByID(ctx context.Context, id int64) (model.Dish, error) {
	var d model.Dish
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Dish{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Dish{}, err
	}
	return d, nil
}

func (r *DishGormRepository) Create(ctx context.Context, d model.Dish) (model.Dish, error) {
	if err := r.db.WithContext(ctx).Create(&d).Error; err != nil {
		return model.Dish{}, err
	}
	return d, nil
}

func (r *DishGormRepository) Update(ctx context.Context, d model.Dish) error {
	res := r.db.WithContext(ctx).Model(&model.Dish{}).
		Where("id = ?", d.ID).
		Updates(map[string]interface{}{
			"name":  d.Name,
			"price": d.Price,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *DishGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Dish{}, id)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 削除ガード用。この料理を参照している明細の数を返す。
func (r *DishGormRepository) CountLinesReferencing(ctx context.Context, dishID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.OrderLine{}).
		Where("dish_id = ?", dishID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
