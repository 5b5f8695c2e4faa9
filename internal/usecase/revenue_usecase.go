package usecase

import (
	"context"
	"net/http"

	"cafe/internal/domain/model"
	repo "cafe/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// RevenueUsecase は paid の注文の売上集計。読み取り専用。
type RevenueUsecase struct {
	orderRepo repo.OrderRepository
	lineRepo  repo.OrderLineRepository
	dishRepo  repo.DishRepository
}

func NewRevenueUsecase(
	orderRepo repo.OrderRepository,
	lineRepo repo.OrderLineRepository,
	dishRepo repo.DishRepository,
) *RevenueUsecase {
	return &RevenueUsecase{
		orderRepo: orderRepo,
		lineRepo:  lineRepo,
		dishRepo:  dishRepo,
	}
}

type RevenueOutput struct {
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	PaidOrders   []OrderOutput   `json:"paid_orders"`
}

// Revenue は保存済みの total_price を合計する。
// 合計は変更のたびに再計算済みなので、ここで明細から計算し直すことはしない。
// paid が1件も無ければ 0 を返す。
func (u *RevenueUsecase) Revenue(ctx context.Context) (RevenueOutput, error) {
	total, err := u.orderRepo.SumTotalPriceByStatus(ctx, model.OrderStatusPaid)
	if err != nil {
		log.Error().Err(err).Msg("usecase: failed to sum paid order totals")
		return RevenueOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	paid := string(model.OrderStatusPaid)
	orders, err := u.orderRepo.Search(ctx, repo.OrderSearchFilter{Status: &paid})
	if err != nil {
		return RevenueOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		lines, err := u.lineRepo.ListByOrderID(ctx, o.ID)
		if err != nil {
			return RevenueOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, _, err := buildOrderItems(ctx, lines, u.dishRepo)
		if err != nil {
			return RevenueOutput{}, err
		}

		outs = append(outs, toOrderOutput(o, items))
	}

	return RevenueOutput{
		TotalRevenue: total,
		PaidOrders:   outs,
	}, nil
}
