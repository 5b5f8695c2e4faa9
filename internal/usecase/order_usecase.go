package usecase

import (
	"context"
	"net/http"

	"cafe/internal/domain/model"
	repo "cafe/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// OrderUsecase は注文集約（注文＋明細＋合計金額）を変更する業務ロジック。
// 明細を触る操作は必ず1つのTxの中で行い、合計は差分更新せず毎回ゼロから再計算する。
type OrderUsecase struct {
	tx repo.TransactionManager
}

func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx}
}

type CreateOrderInput struct {
	TableNumber int
	DishIDs     []int64
}

type OrderItemInput struct {
	DishID   int64
	Quantity int64
}

// 更新API用。nil のフィールドは変更しない。
// Items が非nilなら明細は差分ではなく全削除→再作成で置き換える。
type UpdateOrderInput struct {
	TableNumber *int
	Status      *string
	Items       *[]OrderItemInput
}

type DishOutput struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type OrderItemOutput struct {
	Dish     DishOutput `json:"dish"`
	Quantity int64      `json:"quantity"`
}

type OrderOutput struct {
	ID          int64             `json:"id"`
	TableNumber int               `json:"table_number"`
	Status      string            `json:"status"`
	TotalPrice  decimal.Decimal   `json:"total_price"`
	Items       []OrderItemOutput `json:"items"`
}

// Create は pending・合計0 の注文を作り、料理を1つずつ数量1で追加する。
// dish_ids に同じIDが重複していれば明細は増えず数量に加算される。
func (u *OrderUsecase) Create(ctx context.Context, in CreateOrderInput) (OrderOutput, error) {
	if in.TableNumber < 1 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid table_number")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orderID, err := r.Orders().Create(ctx, model.Order{
			TableNumber: in.TableNumber,
			Status:      model.OrderStatusPending,
			TotalPrice:  decimal.Zero,
		})
		if err != nil {
			log.Error().Err(err).Msg("usecase: failed to create order")
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		for _, dishID := range in.DishIDs {
			if err := addDishTx(ctx, r, orderID, dishID); err != nil {
				return err
			}
		}

		out, err = refreshTotalTx(ctx, r, orderID)
		return err
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// AddDish は明細が無ければ数量1で作成、あれば数量を1増やす。
func (u *OrderUsecase) AddDish(ctx context.Context, orderID int64, dishID int64) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if dishID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid dish_id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Orders().FindByID(ctx, orderID); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := addDishTx(ctx, r, orderID, dishID); err != nil {
			return err
		}

		var err error
		out, err = refreshTotalTx(ctx, r, orderID)
		return err
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// RemoveOneUnit は数量を1減らす。数量1の明細は行ごと削除する。
// 明細が無ければ not found で、注文は変更されない。
func (u *OrderUsecase) RemoveOneUnit(ctx context.Context, orderID int64, dishID int64) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if dishID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid dish_id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Orders().FindByID(ctx, orderID); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		line, err := r.OrderLines().FindByOrderAndDish(ctx, orderID, dishID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if line.Quantity > 1 {
			if err := r.OrderLines().UpdateQuantity(ctx, line.ID, line.Quantity-1); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		} else {
			if err := r.OrderLines().DeleteByID(ctx, line.ID); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		out, err = refreshTotalTx(ctx, r, orderID)
		return err
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// ChangeStatus は列挙チェックのみ。遷移の制限は無い（どの状態からどの状態へも可）。
func (u *OrderUsecase) ChangeStatus(ctx context.Context, orderID int64, status string) error {
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if !model.ValidOrderStatus(status) {
		log.Warn().Int64("order_id", orderID).Str("status", status).Msg("usecase: rejected unknown order status")
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatus(status)); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}

// Update は更新APIの一括更新。Items があれば明細を全削除→再作成で置き換える。
func (u *OrderUsecase) Update(ctx context.Context, orderID int64, in UpdateOrderInput) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.TableNumber != nil && *in.TableNumber < 1 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid table_number")
	}
	if in.Status != nil && !model.ValidOrderStatus(*in.Status) {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}
	if in.Items != nil {
		for _, it := range *in.Items {
			if it.DishID <= 0 {
				return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid dish_id")
			}
			if it.Quantity < 1 {
				return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
			}
		}
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Orders().FindByID(ctx, orderID); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if in.TableNumber != nil {
			if err := r.Orders().UpdateTableNumber(ctx, orderID, *in.TableNumber); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}
		if in.Status != nil {
			if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatus(*in.Status)); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		if in.Items != nil {
			if err := r.OrderLines().DeleteByOrderID(ctx, orderID); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			// 同じ料理が複数回来たら1明細に数量加算される
			for _, it := range *in.Items {
				if err := addDishQtyTx(ctx, r, orderID, it.DishID, it.Quantity); err != nil {
					return err
				}
			}
		}

		var err error
		out, err = refreshTotalTx(ctx, r, orderID)
		return err
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// Delete は明細ごと注文を消す。二重削除は not found。
func (u *OrderUsecase) Delete(ctx context.Context, orderID int64) error {
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Orders().FindByID(ctx, orderID); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// 明細→注文の順で消す（孤児を残さない）
		if err := r.OrderLines().DeleteByOrderID(ctx, orderID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Orders().DeleteByID(ctx, orderID); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}

// Get は保存済みの合計のまま集約を返す（再計算しない）。
func (u *OrderUsecase) Get(ctx context.Context, orderID int64) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		lines, err := r.OrderLines().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, _, err := buildOrderItems(ctx, lines, r.Dishes())
		if err != nil {
			return err
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// addDishTx は数量1の追加（既存明細なら+1）。
func addDishTx(ctx context.Context, r repo.TxRepos, orderID int64, dishID int64) error {
	return addDishQtyTx(ctx, r, orderID, dishID, 1)
}

// addDishQtyTx は (order, dish) 明細の locate-or-create。
// 無ければ qty で作成、あれば既存数量に qty を加算する。
func addDishQtyTx(ctx context.Context, r repo.TxRepos, orderID int64, dishID int64, qty int64) error {
	if _, err := r.Dishes().FindByID(ctx, dishID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	line, err := r.OrderLines().FindByOrderAndDish(ctx, orderID, dishID)
	if err == repo.ErrNotFound {
		if _, err := r.OrderLines().Create(ctx, model.OrderLine{
			OrderID:  orderID,
			DishID:   dishID,
			Quantity: qty,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := r.OrderLines().UpdateQuantity(ctx, line.ID, line.Quantity+qty); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// refreshTotalTx は現時点の明細から合計をゼロから計算し直して保存し、集約を返す。
// total_price の唯一の書き込み経路で、明細を変更した操作は最後に必ずここを通る。
func refreshTotalTx(ctx context.Context, r repo.TxRepos, orderID int64) (OrderOutput, error) {
	o, err := r.Orders().FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	lines, err := r.OrderLines().ListByOrderID(ctx, orderID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items, total, err := buildOrderItems(ctx, lines, r.Dishes())
	if err != nil {
		return OrderOutput{}, err
	}

	if err := r.Orders().UpdateTotalPrice(ctx, orderID, total); err != nil {
		log.Error().Err(err).Int64("order_id", orderID).Msg("usecase: failed to persist recomputed total")
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	o.TotalPrice = total
	return toOrderOutput(o, items), nil
}

// buildOrderItems は明細とカタログから items と Σ(価格×数量) を組み立てる。
func buildOrderItems(ctx context.Context, lines []model.OrderLine, dishes repo.DishRepository) ([]OrderItemOutput, decimal.Decimal, error) {
	items := make([]OrderItemOutput, 0, len(lines))
	total := decimal.Zero

	for _, ln := range lines {
		d, err := dishes.FindByID(ctx, ln.DishID)
		if err != nil {
			return nil, decimal.Zero, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items = append(items, OrderItemOutput{
			Dish: DishOutput{
				ID:    d.ID,
				Name:  d.Name,
				Price: d.Price,
			},
			Quantity: ln.Quantity,
		})

		total = total.Add(d.Price.Mul(decimal.NewFromInt(ln.Quantity)))
	}

	return items, total, nil
}

func toOrderOutput(o model.Order, items []OrderItemOutput) OrderOutput {
	return OrderOutput{
		ID:          o.ID,
		TableNumber: o.TableNumber,
		Status:      string(o.Status),
		TotalPrice:  o.TotalPrice,
		Items:       items,
	}
}
