package usecase

import (
	"context"
	"net/http"
	"strings"

	"cafe/internal/domain/model"
	repo "cafe/internal/repository"

	"github.com/shopspring/decimal"
)

// DishUsecase はメニューカタログのCRUD。
type DishUsecase struct {
	dishRepo repo.DishRepository
}

func NewDishUsecase(dishRepo repo.DishRepository) *DishUsecase {
	return &DishUsecase{dishRepo: dishRepo}
}

type DishInput struct {
	Name  string
	Price decimal.Decimal
}

func validateDishInput(in DishInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if len(name) > 100 {
		return NewHTTPError(http.StatusBadRequest, "name too long")
	}
	if in.Price.IsNegative() {
		return NewHTTPError(http.StatusBadRequest, "invalid price")
	}
	return nil
}

func (u *DishUsecase) Create(ctx context.Context, in DishInput) (model.Dish, error) {
	if err := validateDishInput(in); err != nil {
		return model.Dish{}, err
	}

	d, err := u.dishRepo.Create(ctx, model.Dish{
		Name:  strings.TrimSpace(in.Name),
		Price: in.Price,
	})
	if err != nil {
		return model.Dish{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return d, nil
}

func (u *DishUsecase) List(ctx context.Context) ([]model.Dish, error) {
	dishes, err := u.dishRepo.List(ctx)
	if err != nil {
		return []model.Dish{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return dishes, nil
}

func (u *DishUsecase) Get(ctx context.Context, dishID int64) (model.Dish, error) {
	if dishID <= 0 {
		return model.Dish{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	d, err := u.dishRepo.FindByID(ctx, dishID)
	if err == repo.ErrNotFound {
		return model.Dish{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Dish{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return d, nil
}

func (u *DishUsecase) Update(ctx context.Context, dishID int64, in DishInput) (model.Dish, error) {
	if dishID <= 0 {
		return model.Dish{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := validateDishInput(in); err != nil {
		return model.Dish{}, err
	}

	err := u.dishRepo.Update(ctx, model.Dish{
		ID:    dishID,
		Name:  strings.TrimSpace(in.Name),
		Price: in.Price,
	})
	if err == repo.ErrNotFound {
		return model.Dish{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Dish{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.Get(ctx, dishID)
}

// Delete は注文明細から参照されている料理を消させない。
func (u *DishUsecase) Delete(ctx context.Context, dishID int64) error {
	if dishID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	count, err := u.dishRepo.CountLinesReferencing(ctx, dishID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if count > 0 {
		return NewHTTPError(http.StatusConflict, "dish in use")
	}

	if err := u.dishRepo.Delete(ctx, dishID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
