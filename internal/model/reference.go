package model

// Definition tables. Static reference data, fetched once and cached.

type Size struct {
	ID             string `db:"id" json:"id"`
	Label          string `db:"label" json:"label"`
	SizingCategory string `db:"sizing_category" json:"sizing_category"`
	SortOrder      int    `db:"sort_order" json:"sort_order"`
}

type Color struct {
	ID        string `db:"id" json:"id"`
	Label     string `db:"label" json:"label"`
	HexCode   string `db:"hex_code" json:"hex_code"`
	SortOrder int    `db:"sort_order" json:"sort_order"`
}
