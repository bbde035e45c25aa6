package dto

import "github.com/atelierops/backoffice/internal/model"

type RecordInput struct {
	OrderID    string
	CustomerID string
	Direction  model.CommDirection
	Type       model.CommType
	Subject    string
	Content    string
}
