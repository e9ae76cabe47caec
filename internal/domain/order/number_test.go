package order_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/textil-erp/internal/domain/order"
)

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "OC-000001", order.FormatNumber("OC", 1))
	assert.Equal(t, "OV-999999", order.FormatNumber("OV", 999999))
	assert.Equal(t, "OP-1000000", order.FormatNumber("OP", 1000000))
}

func TestNumberLess_ComparaPorValor(t *testing.T) {
	assert.True(t, order.NumberLess("OC-999999", "OC-1000000"))
	assert.False(t, order.NumberLess("OC-1000000", "OC-999999"))
	assert.True(t, order.NumberLess("OC-000009", "OC-000010"))
	assert.False(t, order.NumberLess("OC-000010", "OC-000010"))

	nums := []string{"OC-999999", "OC-1000001", "OC-000002", "OC-1000000"}
	sort.Slice(nums, func(i, j int) bool { return order.NumberLess(nums[i], nums[j]) })
	assert.Equal(t, []string{"OC-000002", "OC-999999", "OC-1000000", "OC-1000001"}, nums)
}
