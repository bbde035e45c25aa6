package stock

import (
	"fmt"
	"testing"

	"github.com/atelierops/backoffice/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestAdjust(t *testing.T) {
	tests := []struct {
		name    string
		current int
		op      Operation
		operand string
		want    int
	}{
		{name: "set replaces current", current: 42, op: OpSet, operand: "7", want: 7},
		{name: "set floors operand", current: 0, op: OpSet, operand: "7.9", want: 7},
		{name: "set negative clamps to zero", current: 42, op: OpSet, operand: "-3", want: 0},
		{name: "add", current: 10, op: OpAdd, operand: "5", want: 15},
		{name: "add floors operand not sum", current: 10, op: OpAdd, operand: "5.9", want: 15},
		{name: "add negative acts as subtract", current: 10, op: OpAdd, operand: "-4", want: 6},
		{name: "subtract", current: 10, op: OpSubtract, operand: "4", want: 6},
		{name: "subtract past zero clamps", current: 10, op: OpSubtract, operand: "100", want: 0},
		{name: "subtract negative acts as add", current: 10, op: OpSubtract, operand: "-4", want: 14},
		{name: "percentage floors final product", current: 10, op: OpPercentage, operand: "33", want: 13},
		{name: "percentage decrease", current: 10, op: OpPercentage, operand: "-50", want: 5},
		{name: "percentage below -100 clamps", current: 10, op: OpPercentage, operand: "-250", want: 0},
		{name: "percentage of zero stays zero", current: 0, op: OpPercentage, operand: "50", want: 0},
		{name: "non-numeric operand is no-op", current: 9, op: OpSet, operand: "abc", want: 9},
		{name: "empty operand is no-op", current: 9, op: OpAdd, operand: "", want: 9},
		{name: "unknown operation is no-op", current: 9, op: Operation("divide"), operand: "3", want: 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Adjust(tt.current, tt.op, tt.operand))
		})
	}
}

func TestAdjustNeverNegative(t *testing.T) {
	ops := []Operation{OpSet, OpAdd, OpSubtract, OpPercentage}
	operands := []string{"-1000000", "-250", "-100", "-1", "0", "1", "99.99", "1000000", "abc"}
	currents := []int{0, 1, 3, 100, 100000}

	for _, op := range ops {
		for _, operand := range operands {
			for _, current := range currents {
				got := Adjust(current, op, operand)
				assert.GreaterOrEqual(t, got, 0,
					"Adjust(%d, %s, %q) = %d", current, op, operand, got)
			}
		}
	}
}

func TestAdjustSetIgnoresCurrent(t *testing.T) {
	for _, current := range []int{0, 1, 7, 500, 99999} {
		assert.Equal(t, 7, Adjust(current, OpSet, "7"))
	}
}

func TestAdjustAddSubtractInverse(t *testing.T) {
	// Inverse whenever neither step clamps.
	for _, q := range []int{5, 10, 250} {
		for _, n := range []string{"1", "3", "5"} {
			got := Adjust(Adjust(q, OpAdd, n), OpSubtract, n)
			assert.Equal(t, q, got, "q=%d n=%s", q, n)
		}
	}
}

func TestNonNumericOperandNoOpForEveryOperation(t *testing.T) {
	for _, op := range []Operation{OpSet, OpAdd, OpSubtract, OpPercentage} {
		assert.Equal(t, 17, Adjust(17, op, "abc"), "op=%s", op)
	}
}

func TestNonFiniteOperandNoOpForEveryOperation(t *testing.T) {
	// ParseFloat accepts these, but the float-to-int conversion would wrap.
	operands := []string{"Inf", "+Inf", "-Inf", "NaN", "1e300", "-1e300", "1e10"}
	for _, op := range []Operation{OpSet, OpAdd, OpSubtract, OpPercentage} {
		for _, operand := range operands {
			assert.Equal(t, 17, Adjust(17, op, operand), "op=%s operand=%s", op, operand)
		}
	}
}

func TestParseOperand(t *testing.T) {
	for _, operand := range []string{"0", "7", "-250", "99.99", " 33 ", "1e6"} {
		_, ok := ParseOperand(operand)
		assert.True(t, ok, "operand=%s", operand)
	}
	for _, operand := range []string{"abc", "", "Inf", "-Inf", "NaN", "1e300", "1e10", "-1e10"} {
		_, ok := ParseOperand(operand)
		assert.False(t, ok, "operand=%s", operand)
	}
}

func TestPreview(t *testing.T) {
	variants := make([]model.InventoryVariant, 5)
	for i, q := range []int{0, 3, 10, 4, 100} {
		variants[i] = model.InventoryVariant{StockQuantity: q}
		variants[i].ID = fmt.Sprintf("v%d", i)
		variants[i].SKU = fmt.Sprintf("SKU-%d", i)
	}

	items := Preview(variants, OpSubtract, "5")

	want := []int{0, 0, 5, 0, 95}
	for i, item := range items {
		assert.Equal(t, variants[i].StockQuantity, item.Before)
		assert.Equal(t, want[i], item.After, "variant %d", i)
	}

	// Preview has no side effects on its input.
	assert.Equal(t, 3, variants[1].StockQuantity)
}
