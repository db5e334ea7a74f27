package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/gestion-pyme/internal/application/dto"
	"github.com/tu-usuario/gestion-pyme/internal/domain"
	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
	"github.com/tu-usuario/gestion-pyme/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// ExpenseUseCase casos de uso CRUD para gastos.
type ExpenseUseCase struct {
	repo repository.ExpenseRepository
}

// NewExpenseUseCase construye el caso de uso.
func NewExpenseUseCase(repo repository.ExpenseRepository) *ExpenseUseCase {
	return &ExpenseUseCase{repo: repo}
}

func validExpenseCategory(category string) bool {
	switch category {
	case entity.ExpenseCategoryProveedores,
		entity.ExpenseCategoryServicios,
		entity.ExpenseCategoryImpuestos,
		entity.ExpenseCategoryOtros:
		return true
	}
	return false
}

// Create crea un gasto nuevo.
func (uc *ExpenseUseCase) Create(in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	if in.Description == "" || !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if !validExpenseCategory(in.Category) {
		return nil, domain.ErrInvalidInput
	}
	date, err := time.Parse(dateLayout, in.Date)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	expense := &entity.Expense{
		ID:          uuid.New().String(),
		Date:        date,
		Description: in.Description,
		Category:    in.Category,
		Amount:      in.Amount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(expense); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// GetByID obtiene un gasto por ID.
func (uc *ExpenseUseCase) GetByID(id string) (*dto.ExpenseResponse, error) {
	expense, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, nil
	}
	return toExpenseResponse(expense), nil
}

// List lista gastos con paginación.
func (uc *ExpenseUseCase) List(limit, offset int) (*dto.ExpenseListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ExpenseResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toExpenseResponse(e))
	}
	return &dto.ExpenseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza un gasto existente.
func (uc *ExpenseUseCase) Update(id string, in dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error) {
	expense, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, nil
	}
	if in.Date != nil {
		date, err := time.Parse(dateLayout, *in.Date)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		expense.Date = date
	}
	if in.Description != nil {
		expense.Description = *in.Description
	}
	if in.Category != nil {
		if !validExpenseCategory(*in.Category) {
			return nil, domain.ErrInvalidInput
		}
		expense.Category = *in.Category
	}
	if in.Amount != nil {
		if !in.Amount.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		expense.Amount = *in.Amount
	}
	expense.UpdatedAt = time.Now()
	if err := uc.repo.Update(expense); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// Delete elimina un gasto por ID.
func (uc *ExpenseUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	if e == nil {
		return nil
	}
	return &dto.ExpenseResponse{
		ID:          e.ID,
		Date:        e.Date.Format(dateLayout),
		Description: e.Description,
		Category:    e.Category,
		Amount:      e.Amount,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
