package usecase_test

import (
	"context"
	"sort"

	"cafe/internal/domain/model"
	repo "cafe/internal/repository"

	"github.com/shopspring/decimal"
)

// =====================
// In-memory fakes（複数操作の連鎖で状態を追うテスト用）
// =====================

type fakeStore struct {
	dishes map[int64]model.Dish
	orders map[int64]model.Order
	lines  map[int64]model.OrderLine
	nextID int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		dishes: map[int64]model.Dish{},
		orders: map[int64]model.Order{},
		lines:  map[int64]model.OrderLine{},
		nextID: 1,
	}
}

func (s *fakeStore) id() int64 {
	id := s.nextID
	s.nextID++
	return id
}

func (s *fakeStore) addDish(name string, price string) model.Dish {
	d := model.Dish{ID: s.id(), Name: name, Price: decimal.RequireFromString(price)}
	s.dishes[d.ID] = d
	return d
}

// 本物のTxは張らない。操作単位の原子性はgorm実装側の責務。
type fakeTxManager struct {
	s *fakeStore
}

func (m *fakeTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(&fakeRepos{s: m.s})
}

type fakeRepos struct {
	s *fakeStore
}

func (r *fakeRepos) Orders() repo.OrderRepository         { return &fakeOrderRepo{s: r.s} }
func (r *fakeRepos) OrderLines() repo.OrderLineRepository { return &fakeOrderLineRepo{s: r.s} }
func (r *fakeRepos) Dishes() repo.DishRepository          { return &fakeDishRepo{s: r.s} }

// ---- orders ----

type fakeOrderRepo struct {
	s *fakeStore
}

func (r *fakeOrderRepo) Create(ctx context.Context, order model.Order) (int64, error) {
	order.ID = r.s.id()
	r.s.orders[order.ID] = order
	return order.ID, nil
}

func (r *fakeOrderRepo) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	o, ok := r.s.orders[orderID]
	if !ok {
		return model.Order{}, repo.ErrNotFound
	}
	return o, nil
}

func (r *fakeOrderRepo) Search(ctx context.Context, f repo.OrderSearchFilter) ([]model.Order, error) {
	out := []model.Order{}
	for _, o := range r.s.orders {
		if f.TableNumber != nil && o.TableNumber != *f.TableNumber {
			continue
		}
		if f.Status != nil && string(o.Status) != *f.Status {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	o, ok := r.s.orders[orderID]
	if !ok {
		return repo.ErrNotFound
	}
	o.Status = status
	r.s.orders[orderID] = o
	return nil
}

func (r *fakeOrderRepo) UpdateTableNumber(ctx context.Context, orderID int64, tableNumber int) error {
	o, ok := r.s.orders[orderID]
	if !ok {
		return repo.ErrNotFound
	}
	o.TableNumber = tableNumber
	r.s.orders[orderID] = o
	return nil
}

func (r *fakeOrderRepo) UpdateTotalPrice(ctx context.Context, orderID int64, total decimal.Decimal) error {
	o, ok := r.s.orders[orderID]
	if !ok {
		return repo.ErrNotFound
	}
	o.TotalPrice = total
	r.s.orders[orderID] = o
	return nil
}

func (r *fakeOrderRepo) DeleteByID(ctx context.Context, orderID int64) error {
	if _, ok := r.s.orders[orderID]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.orders, orderID)
	return nil
}

func (r *fakeOrderRepo) SumTotalPriceByStatus(ctx context.Context, status model.OrderStatus) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, o := range r.s.orders {
		if o.Status == status {
			total = total.Add(o.TotalPrice)
		}
	}
	return total, nil
}

// ---- order lines ----

type fakeOrderLineRepo struct {
	s *fakeStore
}

func (r *fakeOrderLineRepo) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderLine, error) {
	out := []model.OrderLine{}
	for _, l := range r.s.lines {
		if l.OrderID == orderID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeOrderLineRepo) FindByOrderAndDish(ctx context.Context, orderID int64, dishID int64) (model.OrderLine, error) {
	for _, l := range r.s.lines {
		if l.OrderID == orderID && l.DishID == dishID {
			return l, nil
		}
	}
	return model.OrderLine{}, repo.ErrNotFound
}

func (r *fakeOrderLineRepo) Create(ctx context.Context, line model.OrderLine) (model.OrderLine, error) {
	line.ID = r.s.id()
	r.s.lines[line.ID] = line
	return line, nil
}

func (r *fakeOrderLineRepo) UpdateQuantity(ctx context.Context, lineID int64, qty int64) error {
	l, ok := r.s.lines[lineID]
	if !ok {
		return repo.ErrNotFound
	}
	l.Quantity = qty
	r.s.lines[lineID] = l
	return nil
}

func (r *fakeOrderLineRepo) DeleteByID(ctx context.Context, lineID int64) error {
	if _, ok := r.s.lines[lineID]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.lines, lineID)
	return nil
}

func (r *fakeOrderLineRepo) DeleteByOrderID(ctx context.Context, orderID int64) error {
	for id, l := range r.s.lines {
		if l.OrderID == orderID {
			delete(r.s.lines, id)
		}
	}
	return nil
}

// ---- dishes ----

type fakeDishRepo struct {
	s *fakeStore
}

func (r *fakeDishRepo) List(ctx context.Context) ([]model.Dish, error) {
	out := []model.Dish{}
	for _, d := range r.s.dishes {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeDishRepo) FindByID(ctx context.Context, id int64) (model.Dish, error) {
	d, ok := r.s.dishes[id]
	if !ok {
		return model.Dish{}, repo.ErrNotFound
	}
	return d, nil
}

func (r *fakeDishRepo) Create(ctx context.Context, d model.Dish) (model.Dish, error) {
	d.ID = r.s.id()
	r.s.dishes[d.ID] = d
	return d, nil
}

func (r *fakeDishRepo) Update(ctx context.Context, d model.Dish) error {
	old, ok := r.s.dishes[d.ID]
	if !ok {
		return repo.ErrNotFound
	}
	old.Name = d.Name
	old.Price = d.Price
	r.s.dishes[d.ID] = old
	return nil
}

func (r *fakeDishRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.s.dishes[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.dishes, id)
	return nil
}

func (r *fakeDishRepo) CountLinesReferencing(ctx context.Context, dishID int64) (int64, error) {
	var count int64
	for _, l := range r.s.lines {
		if l.DishID == dishID {
			count++
		}
	}
	return count, nil
}
