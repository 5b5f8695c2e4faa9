package repository

import (
	"context"

	"cafe/internal/domain/model"
)

type OrderLineRepository interface {
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderLine, error)
	FindByOrderAndDish(ctx context.Context, orderID int64, dishID int64) (model.OrderLine, error)

	Create(ctx context.Context, line model.OrderLine) (model.OrderLine, error)
	UpdateQuantity(ctx context.Context, lineID int64, qty int64) error
	DeleteByID(ctx context.Context, lineID int64) error
	DeleteByOrderID(ctx context.Context, orderID int64) error
}
