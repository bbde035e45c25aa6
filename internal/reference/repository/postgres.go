package repository

import (
	"context"

	"github.com/atelierops/backoffice/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) ListSizes(ctx context.Context) ([]model.Size, error) {
	var sizes []model.Size
	query := `SELECT * FROM sizes ORDER BY sizing_category, sort_order`
	err := r.DB.SelectContext(ctx, &sizes, query)
	return sizes, err
}

func (r *PGRepository) ListColors(ctx context.Context) ([]model.Color, error) {
	var colors []model.Color
	query := `SELECT * FROM colors ORDER BY sort_order`
	err := r.DB.SelectContext(ctx, &colors, query)
	return colors, err
}
