package memory

import (
	"context"

	"aps-train/internal/storage"
)

// NewWithDemoData возвращает хранилище, заполненное демонстрационным
// набором: три типа операций, четыре линии, три модели и пять заказов
// с табелем доступности работников на десять дней.
func NewWithDemoData() *Storage {
	s := New()
	ctx := context.Background()

	operations := []*storage.OperationType{
		{Name: "Preparación", Description: "Preparación de materiales", DefaultDurationDays: 1, DefaultWorkersRequired: 1, Color: "#3B82F6"},
		{Name: "Torneado", Description: "Torneado de piezas", DefaultDurationDays: 2, DefaultWorkersRequired: 2, Color: "#EF4444"},
		{Name: "Pintado", Description: "Pintado y acabado", DefaultDurationDays: 2, DefaultWorkersRequired: 2, Color: "#10B981"},
	}
	for _, op := range operations {
		_ = s.SaveOperation(ctx, op)
	}

	lines := []*storage.ProductionLine{
		{ID: "preparacion-line-1", OperationType: "Preparación", LineNumber: 1, WorkersRequired: 1, IsActive: true},
		{ID: "preparacion-line-2", OperationType: "Preparación", LineNumber: 2, WorkersRequired: 1, IsActive: true},
		{ID: "torneado-line-1", OperationType: "Torneado", LineNumber: 1, WorkersRequired: 2, IsActive: true},
		{ID: "pintado-line-1", OperationType: "Pintado", LineNumber: 1, WorkersRequired: 2, IsActive: true},
	}
	for _, line := range lines {
		_ = s.SaveLine(ctx, line)
	}

	configs := map[string][]storage.ProcessStep{
		"A": {
			{ProcessName: "Preparación", OperationType: "Preparación", DurationDays: 1, WorkersRequired: 1, SequenceOrder: 0},
			{ProcessName: "Torneado", OperationType: "Torneado", DurationDays: 2, WorkersRequired: 2, SequenceOrder: 1},
			{ProcessName: "Pintado", OperationType: "Pintado", DurationDays: 2, WorkersRequired: 2, SequenceOrder: 2},
		},
		"B": {
			{ProcessName: "Preparación", OperationType: "Preparación", DurationDays: 2, WorkersRequired: 1, SequenceOrder: 0},
			{ProcessName: "Torneado", OperationType: "Torneado", DurationDays: 2, WorkersRequired: 2, SequenceOrder: 1},
			{ProcessName: "Pintado", OperationType: "Pintado", DurationDays: 1, WorkersRequired: 2, SequenceOrder: 2},
		},
		"C": {
			{ProcessName: "Preparación", OperationType: "Preparación", DurationDays: 1, WorkersRequired: 1, SequenceOrder: 0},
			{ProcessName: "Torneado", OperationType: "Torneado", DurationDays: 1, WorkersRequired: 2, SequenceOrder: 1},
			{ProcessName: "Pintado", OperationType: "Pintado", DurationDays: 3, WorkersRequired: 2, SequenceOrder: 2},
		},
	}
	for modelID, steps := range configs {
		_ = s.SaveProcessConfig(ctx, modelID, steps)
	}

	orders := []*storage.Order{
		{ID: "B1", ModelType: "B", DueDate: "2026-01-15", Priority: 1, Status: storage.StatusPending, CreatedAt: "2026-01-10"},
		{ID: "A1", ModelType: "A", DueDate: "2026-01-16", Priority: 2, Status: storage.StatusPending, CreatedAt: "2026-01-10"},
		{ID: "C1", ModelType: "C", DueDate: "2026-01-17", Priority: 3, Status: storage.StatusPending, CreatedAt: "2026-01-10"},
		{ID: "A2", ModelType: "A", DueDate: "2026-01-18", Priority: 4, Status: storage.StatusPending, CreatedAt: "2026-01-10"},
		{ID: "B2", ModelType: "B", DueDate: "2026-01-19", Priority: 5, Status: storage.StatusPending, CreatedAt: "2026-01-10"},
	}
	_ = s.SaveOrders(ctx, orders)

	workers := []int{5, 5, 4, 5, 5, 3, 5, 5, 5, 4}
	availability := make([]storage.WorkerAvailability, 0, len(workers))
	dates := []string{
		"2026-01-10", "2026-01-11", "2026-01-12", "2026-01-13", "2026-01-14",
		"2026-01-15", "2026-01-16", "2026-01-17", "2026-01-18", "2026-01-19",
	}
	for i, date := range dates {
		availability = append(availability, storage.WorkerAvailability{Date: date, AvailableWorkers: workers[i]})
	}
	_ = s.SaveWorkerAvailability(ctx, availability)

	return s
}
