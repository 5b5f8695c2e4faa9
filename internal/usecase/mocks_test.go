package usecase_test

import (
	"context"
	"strings"
	"testing"

	"cafe/internal/domain/model"
	repo "cafe/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	// 呼ばれた事実だけ記録（ctxの具体値は問わない）
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	orders     repo.OrderRepository
	orderLines repo.OrderLineRepository
	dishes     repo.DishRepository
}

func (r *TxReposMock) Orders() repo.OrderRepository         { return r.orders }
func (r *TxReposMock) OrderLines() repo.OrderLineRepository { return r.orderLines }
func (r *TxReposMock) Dishes() repo.DishRepository          { return r.dishes }

// =====================
// Repository mocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) Search(ctx context.Context, f repo.OrderSearchFilter) ([]model.Order, error) {
	args := m.Called(ctx, f)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) UpdateTableNumber(ctx context.Context, orderID int64, tableNumber int) error {
	args := m.Called(ctx, orderID, tableNumber)
	return args.Error(0)
}

func (m *OrderRepoMock) UpdateTotalPrice(ctx context.Context, orderID int64, total decimal.Decimal) error {
	args := m.Called(ctx, orderID, total)
	return args.Error(0)
}

func (m *OrderRepoMock) DeleteByID(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *OrderRepoMock) SumTotalPriceByStatus(ctx context.Context, status model.OrderStatus) (decimal.Decimal, error) {
	args := m.Called(ctx, status)
	total, _ := args.Get(0).(decimal.Decimal)
	return total, args.Error(1)
}

type OrderLineRepoMock struct{ mock.Mock }

func (m *OrderLineRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderLine, error) {
	args := m.Called(ctx, orderID)
	lines, _ := args.Get(0).([]model.OrderLine)
	return lines, args.Error(1)
}

func (m *OrderLineRepoMock) FindByOrderAndDish(ctx context.Context, orderID int64, dishID int64) (model.OrderLine, error) {
	args := m.Called(ctx, orderID, dishID)
	line, _ := args.Get(0).(model.OrderLine)
	return line, args.Error(1)
}

func (m *OrderLineRepoMock) Create(ctx context.Context, line model.OrderLine) (model.OrderLine, error) {
	args := m.Called(ctx, line)
	created, _ := args.Get(0).(model.OrderLine)
	return created, args.Error(1)
}

func (m *OrderLineRepoMock) UpdateQuantity(ctx context.Context, lineID int64, qty int64) error {
	args := m.Called(ctx, lineID, qty)
	return args.Error(0)
}

func (m *OrderLineRepoMock) DeleteByID(ctx context.Context, lineID int64) error {
	args := m.Called(ctx, lineID)
	return args.Error(0)
}

func (m *OrderLineRepoMock) DeleteByOrderID(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type DishRepoMock struct{ mock.Mock }

func (m *DishRepoMock) List(ctx context.Context) ([]model.Dish, error) {
	args := m.Called(ctx)
	dishes, _ := args.Get(0).([]model.Dish)
	return dishes, args.Error(1)
}

func (m *DishRepoMock) FindByID(ctx context.Context, id int64) (model.Dish, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(model.Dish)
	return d, args.Error(1)
}

func (m *DishRepoMock) Create(ctx context.Context, d model.Dish) (model.Dish, error) {
	args := m.Called(ctx, d)
	created, _ := args.Get(0).(model.Dish)
	return created, args.Error(1)
}

func (m *DishRepoMock) Update(ctx context.Context, d model.Dish) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *DishRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *DishRepoMock) CountLinesReferencing(ctx context.Context, dishID int64) (int64, error) {
	args := m.Called(ctx, dishID)
	return args.Get(0).(int64), args.Error(1)
}

// =====================
// Helpers
// =====================

// error contains（HTTPErrorの実装詳細に依存しない）
func assertErrContains(t *testing.T, err error, wantSubstr string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), wantSubstr), "err=%q want contains %q", err.Error(), wantSubstr)
	}
}

// decimal は内部表現が揃わないことがあるので値で比較する
func decEq(s string) interface{} {
	want := decimal.RequireFromString(s)
	return mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(want)
	})
}

func mustDec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
