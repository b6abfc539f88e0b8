package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aps-train/internal/storage"
)

func TestMemory_OrderLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()

	order, err := storage.NewOrder("A1", "A", "2026-02-10", 1, "2026-02-01")
	require.NoError(t, err)
	require.NoError(t, s.SaveOrder(ctx, order))

	got, err := s.GetByID(ctx, "A1")
	require.NoError(t, err)
	assert.Equal(t, "A1", got.ID)
	assert.Equal(t, storage.StatusPending, got.Status)

	// снимок не делит состояние с хранилищем
	got.Priority = 99
	again, err := s.GetByID(ctx, "A1")
	require.NoError(t, err)
	assert.Equal(t, 1, again.Priority)

	require.NoError(t, s.UpdateOrderStatus(ctx, "A1", storage.StatusScheduled))
	updated, err := s.GetByID(ctx, "A1")
	require.NoError(t, err)
	assert.Equal(t, storage.StatusScheduled, updated.Status)

	require.NoError(t, s.DeleteOrder(ctx, "A1"))
	_, err = s.GetByID(ctx, "A1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestMemory_NotFound(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.ErrorIs(t, s.DeleteOrder(ctx, "missing"), storage.ErrNotFound)
	assert.ErrorIs(t, s.UpdateOrderStatus(ctx, "missing", storage.StatusCancelled), storage.ErrNotFound)
	assert.ErrorIs(t, s.DeleteLine(ctx, "missing"), storage.ErrNotFound)
	assert.ErrorIs(t, s.DeleteOperation(ctx, "missing"), storage.ErrNotFound)

	_, err = s.GetOperation(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestMemory_PendingOrdersSorted(t *testing.T) {
	s := New()
	ctx := context.Background()

	orders := []*storage.Order{
		{ID: "low", ModelType: "A", DueDate: "2026-02-01", Priority: 3, Status: storage.StatusPending, CreatedAt: "2026-01-10"},
		{ID: "urgent-later", ModelType: "A", DueDate: "2026-02-05", Priority: 1, Status: storage.StatusPending, CreatedAt: "2026-01-10"},
		{ID: "urgent-early", ModelType: "A", DueDate: "2026-02-02", Priority: 1, Status: storage.StatusPending, CreatedAt: "2026-01-10"},
		{ID: "done", ModelType: "A", DueDate: "2026-01-01", Priority: 1, Status: storage.StatusCompleted, CreatedAt: "2026-01-10"},
	}
	require.NoError(t, s.SaveOrders(ctx, orders))

	pending, err := s.GetPendingOrdersSorted(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 3)
	assert.Equal(t, "urgent-early", pending[0].ID)
	assert.Equal(t, "urgent-later", pending[1].ID)
	assert.Equal(t, "low", pending[2].ID)
}

func TestMemory_LinesAndOperations(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.SaveOperation(ctx, &storage.OperationType{
		Name: "Torneado", DefaultDurationDays: 2, DefaultWorkersRequired: 2, Color: "#EF4444",
	}))
	require.NoError(t, s.SaveLine(ctx, &storage.ProductionLine{
		ID: "torneado-line-2", OperationType: "Torneado", LineNumber: 2, WorkersRequired: 2, IsActive: true,
	}))
	require.NoError(t, s.SaveLine(ctx, &storage.ProductionLine{
		ID: "torneado-line-1", OperationType: "Torneado", LineNumber: 1, WorkersRequired: 2, IsActive: true,
	}))

	lines, err := s.GetLinesByOperation(ctx, "Torneado")
	require.NoError(t, err)
	require.Len(t, lines, 2)
	// сортировка по номеру линии
	assert.Equal(t, "torneado-line-1", lines[0].ID)
	assert.Equal(t, "torneado-line-2", lines[1].ID)

	op, err := s.GetOperation(ctx, "Torneado")
	require.NoError(t, err)
	assert.Equal(t, 2, op.DefaultDurationDays)
}

func TestMemory_ProcessConfigSortedBySequence(t *testing.T) {
	s := New()
	ctx := context.Background()

	steps := []storage.ProcessStep{
		{ProcessName: "Pintado", OperationType: "Pintado", DurationDays: 1, WorkersRequired: 2, SequenceOrder: 2},
		{ProcessName: "Preparación", OperationType: "Preparación", DurationDays: 1, WorkersRequired: 1, SequenceOrder: 0},
		{ProcessName: "Torneado", OperationType: "Torneado", DurationDays: 2, WorkersRequired: 2, SequenceOrder: 1},
	}
	require.NoError(t, s.SaveProcessConfig(ctx, "A", steps))

	got, err := s.GetProcessConfig(ctx, "A")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Preparación", got[0].ProcessName)
	assert.Equal(t, "Torneado", got[1].ProcessName)
	assert.Equal(t, "Pintado", got[2].ProcessName)

	models, err := s.GetConfiguredModels(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, models)
}

func TestMemory_WorkerAvailabilityRange(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.SaveWorkerAvailability(ctx, []storage.WorkerAvailability{
		{Date: "2026-01-10", AvailableWorkers: 5},
		{Date: "2026-01-12", AvailableWorkers: 4},
		{Date: "2026-01-20", AvailableWorkers: 3},
	}))

	rows, err := s.GetWorkerAvailability(ctx, "2026-01-10", 5)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2026-01-10", rows[0].Date)
	assert.Equal(t, "2026-01-12", rows[1].Date)

	_, err = s.GetWorkerAvailability(ctx, "not-a-date", 5)
	assert.Error(t, err)

	err = s.SaveWorkerAvailability(ctx, []storage.WorkerAvailability{{Date: "2026-01-10", AvailableWorkers: -1}})
	assert.Error(t, err)
}

func TestMemory_DemoData(t *testing.T) {
	s := NewWithDemoData()
	ctx := context.Background()

	orders, err := s.GetPendingOrdersSorted(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 5)
	assert.Equal(t, "B1", orders[0].ID)
	assert.Equal(t, "B2", orders[4].ID)

	lines, err := s.GetLines(ctx)
	require.NoError(t, err)
	assert.Len(t, lines, 4)

	models, err := s.GetConfiguredModels(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, models)

	rows, err := s.GetWorkerAvailability(ctx, "2026-01-10", 10)
	require.NoError(t, err)
	assert.Len(t, rows, 10)
	assert.Equal(t, 3, rows[5].AvailableWorkers)
}
