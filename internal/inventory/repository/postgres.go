package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/atelierops/backoffice/internal/inventory/dto"
	"github.com/atelierops/backoffice/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) CreateProduct(ctx context.Context, p *model.InventoryProduct) error {
	query := `
        INSERT INTO inventory_products (
            id, category, name, description, sku_prefix, base_price,
            requires_size, requires_color, sizing_category, image_path,
            is_active, created_at, updated_at
        )
        VALUES (
            :id, :category, :name, :description, :sku_prefix, :base_price,
            :requires_size, :requires_color, :sizing_category, :image_path,
            :is_active, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) FindProductByID(ctx context.Context, id string) (*model.InventoryProduct, error) {
	var p model.InventoryProduct
	query := `SELECT * FROM inventory_products WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &p, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGRepository) FindProducts(ctx context.Context, f *dto.ProductFilters) ([]model.InventoryProduct, int, error) {
	var products []model.InventoryProduct
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.Category != "" {
		conditions = append(conditions, "category = :category")
		args["category"] = f.Category
	}
	if f.IsActive != nil {
		conditions = append(conditions, "is_active = :is_active")
		args["is_active"] = *f.IsActive
	}
	if f.SearchQuery != "" {
		conditions = append(conditions, "(name ILIKE :search OR sku_prefix ILIKE :search)")
		args["search"] = "%" + f.SearchQuery + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM inventory_products" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	orderBy := "created_at DESC"
	if f.SortBy != "" {
		// Whitelisted sort fields
		switch f.SortBy {
		case "name":
			orderBy = "name"
		case "price":
			orderBy = "base_price"
		case "created_at":
			orderBy = "created_at"
		}
		if strings.ToLower(f.SortOrder) == "asc" {
			orderBy += " ASC"
		} else {
			orderBy += " DESC"
		}
	}

	query := fmt.Sprintf("SELECT * FROM inventory_products%s ORDER BY %s", whereClause, orderBy)
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &products, args)
	return products, count, err
}

func (r *PGRepository) FindProductsByIDs(ctx context.Context, ids []string) ([]model.InventoryProduct, error) {
	if len(ids) == 0 {
		return []model.InventoryProduct{}, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM inventory_products WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	query = r.DB.Rebind(query)

	var products []model.InventoryProduct
	err = r.DB.SelectContext(ctx, &products, query, args...)
	return products, err
}

func (r *PGRepository) UpdateProduct(ctx context.Context, p *model.InventoryProduct) error {
	query := `
        UPDATE inventory_products SET
            category = :category,
            name = :name,
            description = :description,
            sku_prefix = :sku_prefix,
            base_price = :base_price,
            requires_size = :requires_size,
            requires_color = :requires_color,
            sizing_category = :sizing_category,
            image_path = :image_path,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id
    `
	res, err := r.DB.NamedExecContext(ctx, query, p)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeactivateProduct soft-deletes; products are never hard-deleted.
func (r *PGRepository) DeactivateProduct(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE inventory_products SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *PGRepository) IsSKUPrefixUnique(ctx context.Context, prefix, excludeID string) (bool, error) {
	var count int
	query := `SELECT count(*) FROM inventory_products WHERE sku_prefix = $1 AND id != $2`
	err := r.DB.GetContext(ctx, &count, query, prefix, excludeID)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

func (r *PGRepository) CreateVariant(ctx context.Context, v *model.InventoryVariant) error {
	query := `
        INSERT INTO inventory_variants (
            id, product_id, sku, size, color, piece_type, price,
            stock_quantity, low_stock_threshold, is_active, created_at, updated_at
        )
        VALUES (
            :id, :product_id, :sku, :size, :color, :piece_type, :price,
            :stock_quantity, :low_stock_threshold, :is_active, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, v)
	return err
}

func (r *PGRepository) FindVariantByID(ctx context.Context, id string) (*model.InventoryVariant, error) {
	var v model.InventoryVariant
	query := `SELECT * FROM inventory_variants WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &v, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *PGRepository) FindVariantsByProduct(ctx context.Context, productID string) ([]model.InventoryVariant, error) {
	var variants []model.InventoryVariant
	query := `SELECT * FROM inventory_variants WHERE product_id = $1 ORDER BY sku`
	err := r.DB.SelectContext(ctx, &variants, query, productID)
	return variants, err
}

func (r *PGRepository) FindVariantsByIDs(ctx context.Context, ids []string) ([]model.InventoryVariant, error) {
	if len(ids) == 0 {
		return []model.InventoryVariant{}, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM inventory_variants WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	query = r.DB.Rebind(query)

	var variants []model.InventoryVariant
	err = r.DB.SelectContext(ctx, &variants, query, args...)
	return variants, err
}

func (r *PGRepository) UpdateVariant(ctx context.Context, v *model.InventoryVariant) error {
	query := `
        UPDATE inventory_variants SET
            sku = :sku,
            size = :size,
            color = :color,
            piece_type = :piece_type,
            price = :price,
            low_stock_threshold = :low_stock_threshold,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id
    `
	// stock_quantity deliberately excluded: it only changes through
	// UpdateStockWithMovement so every change leaves an audit row.
	res, err := r.DB.NamedExecContext(ctx, query, v)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *PGRepository) FindLowStock(ctx context.Context, page, pageSize int) ([]model.InventoryVariant, int, error) {
	var variants []model.InventoryVariant
	var count int

	where := ` WHERE is_active = true AND low_stock_threshold > 0 AND stock_quantity <= low_stock_threshold`

	if err := r.DB.GetContext(ctx, &count, "SELECT count(*) FROM inventory_variants"+where); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM inventory_variants" + where + " ORDER BY stock_quantity ASC"
	if pageSize > 0 {
		offset := (page - 1) * pageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", pageSize, offset)
	}

	err := r.DB.SelectContext(ctx, &variants, query)
	return variants, count, err
}

func (r *PGRepository) UpdateStockWithMovement(ctx context.Context, variantID string, newQuantity int, m *model.StockMovement) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE inventory_variants SET stock_quantity = $1, updated_at = now() WHERE id = $2`,
		newQuantity, variantID)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}

	insertQuery := `
        INSERT INTO stock_movements (
            id, variant_id, operation, operand, quantity_before, quantity_after,
            reference_type, reference_id, notes, created_by, created_at
        )
        VALUES (
            :id, :variant_id, :operation, :operand, :quantity_before, :quantity_after,
            :reference_type, :reference_id, :notes, :created_by, :created_at
        )
    `
	if _, err := tx.NamedExecContext(ctx, insertQuery, m); err != nil {
		return fmt.Errorf("log movement: %w", err)
	}

	return tx.Commit()
}

func (r *PGRepository) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.StockMovement, int, error) {
	var movements []model.StockMovement
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.VariantID != "" {
		conditions = append(conditions, "variant_id = :variant_id")
		args["variant_id"] = f.VariantID
	}
	if f.Operation != "" {
		conditions = append(conditions, "operation = :operation")
		args["operation"] = f.Operation
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM stock_movements" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM stock_movements" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &movements, args)
	return movements, count, err
}
