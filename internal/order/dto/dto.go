package dto

import "github.com/atelierops/backoffice/internal/model"

type OrderFilters struct {
	Status        model.OrderStatus
	Stage         model.FulfillmentStage
	PriorityLevel model.PriorityTier
	CustomerID    string
	Page          int
	PageSize      int
}
