package usecase

import (
	"context"
	"net/http"

	"cafe/internal/domain/model"
	repo "cafe/internal/repository"
)

// OrderQueryUsecase は注文の読み取り（一覧・検索）。書き込みは一切しない。
type OrderQueryUsecase struct {
	orderRepo repo.OrderRepository
	lineRepo  repo.OrderLineRepository
	dishRepo  repo.DishRepository
}

func NewOrderQueryUsecase(
	orderRepo repo.OrderRepository,
	lineRepo repo.OrderLineRepository,
	dishRepo repo.DishRepository,
) *OrderQueryUsecase {
	return &OrderQueryUsecase{
		orderRepo: orderRepo,
		lineRepo:  lineRepo,
		dishRepo:  dishRepo,
	}
}

// 検索条件。nil は絞り込み無し、両方指定ならAND。
type SearchOrdersInput struct {
	TableNumber *int
	Status      *string
}

// Search は条件一致の注文を登録順で返す。0件は正常（空スライス）。
func (u *OrderQueryUsecase) Search(ctx context.Context, in SearchOrdersInput) ([]OrderOutput, error) {
	if in.TableNumber != nil && *in.TableNumber < 1 {
		return []OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid table_number")
	}
	if in.Status != nil && !model.ValidOrderStatus(*in.Status) {
		return []OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	orders, err := u.orderRepo.Search(ctx, repo.OrderSearchFilter{
		TableNumber: in.TableNumber,
		Status:      in.Status,
	})
	if err != nil {
		return []OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		lines, err := u.lineRepo.ListByOrderID(ctx, o.ID)
		if err != nil {
			return []OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, _, err := buildOrderItems(ctx, lines, u.dishRepo)
		if err != nil {
			return []OrderOutput{}, err
		}

		outs = append(outs, toOrderOutput(o, items))
	}

	return outs, nil
}

// List は全件一覧。Searchの無条件版。
func (u *OrderQueryUsecase) List(ctx context.Context) ([]OrderOutput, error) {
	return u.Search(ctx, SearchOrdersInput{})
}
