package dashboard

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "300", FormatNumber(300))
	assert.Equal(t, "80.5", FormatNumber(80.5))
	assert.Equal(t, "0", FormatNumber(0))
	assert.Equal(t, "-12.25", FormatNumber(-12.25))
	assert.Equal(t, "0", FormatNumber(math.Copysign(0, -1)))
	assert.Equal(t, "R0", FormatOptionalAmount(Float(math.Copysign(0, -1))))
}

func TestFormatOptionalValues(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "R150", FormatOptionalAmount(Float(150)))
	assert.Equal(t, "R0", FormatOptionalAmount(nil))
	assert.Equal(t, "R0", FormatOptionalAmount(Float(math.NaN())))

	assert.Equal(t, "10", FormatOptionalNumber(Float(10), ShoppingListNotFound))
	assert.Equal(t, ShoppingListNotFound, FormatOptionalNumber(nil, ShoppingListNotFound))
	assert.Equal(t, ShoppingListNotFound, FormatOptionalNumber(Float(math.Inf(1)), ShoppingListNotFound))
}
