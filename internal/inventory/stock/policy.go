package stock

import (
	"math"
	"strconv"
	"strings"

	"github.com/atelierops/backoffice/internal/model"
)

// Operation selects how an operand is applied to a stock count.
type Operation string

const (
	OpSet        Operation = "set"
	OpAdd        Operation = "add"
	OpSubtract   Operation = "subtract"
	OpPercentage Operation = "percentage"
)

func (op Operation) Valid() bool {
	switch op {
	case OpSet, OpAdd, OpSubtract, OpPercentage:
		return true
	}
	return false
}

// operandLimit bounds the magnitude an operand may carry. ParseFloat also
// accepts Inf, NaN and values like 1e300 whose float-to-int conversion
// wraps; those are rejected, not clamped.
const operandLimit = 1e9

// ParseOperand parses an adjustment operand. The second return is false
// when the operand is not a plain finite number within the operand limit.
func ParseOperand(operand string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(operand), 64)
	if err != nil || math.IsNaN(v) || v < -operandLimit || v > operandLimit {
		return 0, false
	}
	return v, true
}

// Adjust computes the new stock quantity for a single variant. An operand
// that does not parse as a finite in-range float leaves the quantity
// unchanged, as does an unknown operation. Whole units only: the operand is
// floored for set/add/subtract, the final product is floored for
// percentage. The result never goes below zero.
func Adjust(current int, op Operation, operand string) int {
	v, ok := ParseOperand(operand)
	if !ok {
		return current
	}

	var result int
	switch op {
	case OpSet:
		result = int(math.Floor(v))
	case OpAdd:
		result = current + int(math.Floor(v))
	case OpSubtract:
		result = current - int(math.Floor(v))
	case OpPercentage:
		result = int(math.Floor(float64(current) * (1 + v/100)))
	default:
		return current
	}

	if result < 0 {
		result = 0
	}
	return result
}

// PreviewItem is one old/new pair produced before a bulk commit.
type PreviewItem struct {
	VariantID string `json:"variant_id"`
	SKU       string `json:"sku"`
	Before    int    `json:"before"`
	After     int    `json:"after"`
}

// Preview applies the operation independently to each variant and returns
// the old/new pairs without touching anything. Callers may discard the
// preview and re-edit freely.
func Preview(variants []model.InventoryVariant, op Operation, operand string) []PreviewItem {
	items := make([]PreviewItem, len(variants))
	for i, v := range variants {
		items[i] = PreviewItem{
			VariantID: v.ID,
			SKU:       v.SKU,
			Before:    v.StockQuantity,
			After:     Adjust(v.StockQuantity, op, operand),
		}
	}
	return items
}
