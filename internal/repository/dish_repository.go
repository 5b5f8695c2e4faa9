package repository

import (
	"cafe/internal/domain/model"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// 料理カタログの永続化（保存・取得）だけを約束。
type DishRepository interface {
	List(ctx context.Context) ([]model.Dish, error)
	FindByID(ctx context.Context, id int64) (model.Dish, error)

	Create(ctx context.Context, d model.Dish) (model.Dish, error)
	Update(ctx context.Context, d model.Dish) error
	Delete(ctx context.Context, id int64) error

	// 注文明細からの参照数（削除ガード用）
	CountLinesReferencing(ctx context.Context, dishID int64) (int64, error)
}
