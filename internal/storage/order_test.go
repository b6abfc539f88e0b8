package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewOrder(t *testing.T) {
	order, err := NewOrder("B1", "B", "2026-01-15", 1, "2026-01-10")
	assert.NoError(t, err)
	assert.Equal(t, StatusPending, order.Status)
	assert.Equal(t, "2026-01-10", order.CreatedAt)
	assert.Nil(t, order.CompletedAt)
}

func TestNewOrder_Invalid(t *testing.T) {
	_, err := NewOrder("", "B", "2026-01-15", 1, "")
	assert.Error(t, err)

	_, err = NewOrder("B1", "", "2026-01-15", 1, "")
	assert.Error(t, err)

	_, err = NewOrder("B1", "B", "15.01.2026", 1, "")
	assert.Error(t, err)

	_, err = NewOrder("B1", "B", "2026-01-15", -1, "")
	assert.Error(t, err)
}

func TestOrder_StatusTransitions(t *testing.T) {
	order, err := NewOrder("B1", "B", "2026-01-15", 1, "2026-01-10")
	assert.NoError(t, err)

	// нельзя начать производство из pending
	assert.Error(t, order.StartProduction())

	assert.NoError(t, order.MarkScheduled())
	assert.Equal(t, StatusScheduled, order.Status)
	assert.Error(t, order.MarkScheduled())

	assert.NoError(t, order.StartProduction())
	assert.Equal(t, StatusInProgress, order.Status)

	assert.NoError(t, order.Complete("2026-01-15"))
	assert.Equal(t, StatusCompleted, order.Status)
	if assert.NotNil(t, order.CompletedAt) {
		assert.Equal(t, "2026-01-15", *order.CompletedAt)
	}

	// завершённый заказ отменить нельзя
	assert.Error(t, order.Cancel())
}

func TestOrder_CancelFromAnyOpenStatus(t *testing.T) {
	for _, status := range []OrderStatus{StatusPending, StatusScheduled, StatusInProgress} {
		order, err := NewOrder("A1", "A", "2026-01-16", 2, "2026-01-10")
		assert.NoError(t, err)
		order.Status = status

		assert.NoError(t, order.Cancel())
		assert.Equal(t, StatusCancelled, order.Status)
	}
}

func TestOrder_Clone(t *testing.T) {
	order, _ := NewOrder("C1", "C", "2026-01-17", 3, "2026-01-10")
	cp := order.Clone()

	cp.Status = StatusCancelled
	assert.Equal(t, StatusPending, order.Status)
}
