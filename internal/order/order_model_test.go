// internal/order/order_model_test.go
package order

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder_BeforeCreate(t *testing.T) {
	o := &Order{ClientName: "Alice"}
	assert.True(t, o.IsNew())

	// tx is unused by the hook, so nil is fine here
	err := o.BeforeCreate(nil)

	require.NoError(t, err)
	assert.False(t, o.IsNew())
	_, parseErr := uuid.Parse(o.ID)
	assert.NoError(t, parseErr, "generated id should be a UUID")
	assert.NotZero(t, o.CreatedAt)
}

func TestOrder_BeforeCreate_KeepsExistingID(t *testing.T) {
	o := &Order{ID: "abc123", CreatedAt: 42}

	require.NoError(t, o.BeforeCreate(nil))

	assert.Equal(t, "abc123", o.ID)
	assert.Equal(t, int64(42), o.CreatedAt)
}

func TestErrors(t *testing.T) {
	t.Run("validation error unwraps to sentinel", func(t *testing.T) {
		var err error = NewValidationError("clientName", "Client name cannot be empty")

		assert.True(t, IsValidationError(err))
		assert.False(t, IsNotFound(err))
		assert.Equal(t, "Client name cannot be empty", err.Error())
	})

	t.Run("not found error carries id", func(t *testing.T) {
		var err error = NewNotFoundError("unknown-id-123")

		assert.True(t, IsNotFound(err))
		assert.False(t, IsValidationError(err))
		assert.Equal(t, "Order not found with id: unknown-id-123", err.Error())
	})
}
