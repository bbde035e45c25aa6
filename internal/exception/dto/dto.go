package dto

import "github.com/atelierops/backoffice/internal/model"

type CreateExceptionInput struct {
	OrderID       string
	ExceptionType string
	Priority      model.PriorityTier
	Description   string
}

type ExceptionFilters struct {
	Status   model.ExceptionStatus
	Priority model.PriorityTier
	OrderID  string
	Page     int
	PageSize int
}
