package repository

import (
	"context"

	"cafe/internal/domain/model"

	"github.com/shopspring/decimal"
)

// 注文検索の条件。nil のフィールドは絞り込み無し。
type OrderSearchFilter struct {
	TableNumber *int
	Status      *string
}

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (int64, error)
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	Search(ctx context.Context, f OrderSearchFilter) ([]model.Order, error)

	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	UpdateTableNumber(ctx context.Context, orderID int64, tableNumber int) error
	UpdateTotalPrice(ctx context.Context, orderID int64, total decimal.Decimal) error
	DeleteByID(ctx context.Context, orderID int64) error

	// 指定ステータスの注文の total_price を合計する（該当なしは 0）
	SumTotalPriceByStatus(ctx context.Context, status model.OrderStatus) (decimal.Decimal, error)
}
