// Package memory — хранилище в памяти за теми же портами, что и mysql.
// Используется для локального запуска (storage: memory) и как фикстура в
// тестах. Все методы отдают копии: снимки, переданные движку, не делят
// состояние с хранилищем.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"aps-train/internal/dateutil"
	"aps-train/internal/storage"
)

type Storage struct {
	mu             sync.RWMutex
	orders         map[string]*storage.Order
	orderSeq       []string // порядок вставки для стабильных выборок
	lines          map[string]*storage.ProductionLine
	operations     map[string]*storage.OperationType
	processConfigs map[string][]storage.ProcessStep
	availability   map[string]int
}

func New() *Storage {
	return &Storage{
		orders:         make(map[string]*storage.Order),
		lines:          make(map[string]*storage.ProductionLine),
		operations:     make(map[string]*storage.OperationType),
		processConfigs: make(map[string][]storage.ProcessStep),
		availability:   make(map[string]int),
	}
}

// ---------- Orders ----------

func (s *Storage) GetAll(ctx context.Context) ([]*storage.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]*storage.Order, 0, len(s.orders))
	for _, id := range s.orderSeq {
		if order, ok := s.orders[id]; ok {
			orders = append(orders, order.Clone())
		}
	}
	return orders, nil
}

func (s *Storage) GetByID(ctx context.Context, id string) (*storage.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %s: %w", id, storage.ErrNotFound)
	}
	return order.Clone(), nil
}

func (s *Storage) GetByStatus(ctx context.Context, status storage.OrderStatus) ([]*storage.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var orders []*storage.Order
	for _, id := range s.orderSeq {
		if order, ok := s.orders[id]; ok && order.Status == status {
			orders = append(orders, order.Clone())
		}
	}
	return orders, nil
}

func (s *Storage) GetPendingOrdersSorted(ctx context.Context) ([]*storage.Order, error) {
	orders, err := s.GetByStatus(ctx, storage.StatusPending)
	if err != nil {
		return nil, err
	}

	// приоритет, затем срок сдачи
	sort.SliceStable(orders, func(i, j int) bool {
		if orders[i].Priority != orders[j].Priority {
			return orders[i].Priority < orders[j].Priority
		}
		return orders[i].DueDate < orders[j].DueDate
	})
	return orders, nil
}

func (s *Storage) SaveOrder(ctx context.Context, order *storage.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveOrderLocked(order)
	return nil
}

func (s *Storage) SaveOrders(ctx context.Context, orders []*storage.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, order := range orders {
		s.saveOrderLocked(order)
	}
	return nil
}

func (s *Storage) saveOrderLocked(order *storage.Order) {
	if _, exists := s.orders[order.ID]; !exists {
		s.orderSeq = append(s.orderSeq, order.ID)
	}
	s.orders[order.ID] = order.Clone()
}

func (s *Storage) DeleteOrder(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[id]; !ok {
		return fmt.Errorf("order %s: %w", id, storage.ErrNotFound)
	}
	delete(s.orders, id)
	for i, seqID := range s.orderSeq {
		if seqID == id {
			s.orderSeq = append(s.orderSeq[:i], s.orderSeq[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Storage) UpdateOrderStatus(ctx context.Context, id string, status storage.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return fmt.Errorf("order %s: %w", id, storage.ErrNotFound)
	}
	if !status.Valid() {
		return fmt.Errorf("order %s: unknown status %q", id, status)
	}
	order.Status = status
	return nil
}

// ---------- Lines ----------

func (s *Storage) GetLines(ctx context.Context) ([]*storage.ProductionLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines := make([]*storage.ProductionLine, 0, len(s.lines))
	for _, line := range s.lines {
		cp := *line
		lines = append(lines, &cp)
	}
	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].OperationType != lines[j].OperationType {
			return lines[i].OperationType < lines[j].OperationType
		}
		return lines[i].LineNumber < lines[j].LineNumber
	})
	return lines, nil
}

func (s *Storage) GetLinesByOperation(ctx context.Context, operationType string) ([]*storage.ProductionLine, error) {
	all, err := s.GetLines(ctx)
	if err != nil {
		return nil, err
	}
	var lines []*storage.ProductionLine
	for _, line := range all {
		if line.OperationType == operationType {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

func (s *Storage) SaveLine(ctx context.Context, line *storage.ProductionLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *line
	s.lines[line.ID] = &cp
	return nil
}

func (s *Storage) DeleteLine(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lines[id]; !ok {
		return fmt.Errorf("line %s: %w", id, storage.ErrNotFound)
	}
	delete(s.lines, id)
	return nil
}

// ---------- Operations ----------

func (s *Storage) GetOperations(ctx context.Context) ([]*storage.OperationType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	operations := make([]*storage.OperationType, 0, len(s.operations))
	for _, op := range s.operations {
		cp := *op
		operations = append(operations, &cp)
	}
	sort.SliceStable(operations, func(i, j int) bool {
		return operations[i].Name < operations[j].Name
	})
	return operations, nil
}

func (s *Storage) GetOperation(ctx context.Context, name string) (*storage.OperationType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	op, ok := s.operations[name]
	if !ok {
		return nil, fmt.Errorf("operation %s: %w", name, storage.ErrNotFound)
	}
	cp := *op
	return &cp, nil
}

func (s *Storage) SaveOperation(ctx context.Context, op *storage.OperationType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *op
	s.operations[op.Name] = &cp
	return nil
}

func (s *Storage) DeleteOperation(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.operations[name]; !ok {
		return fmt.Errorf("operation %s: %w", name, storage.ErrNotFound)
	}
	delete(s.operations, name)
	return nil
}

// ---------- Process configs ----------

func (s *Storage) GetProcessConfig(ctx context.Context, modelID string) ([]storage.ProcessStep, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	steps := make([]storage.ProcessStep, len(s.processConfigs[modelID]))
	copy(steps, s.processConfigs[modelID])
	return steps, nil
}

func (s *Storage) SaveProcessConfig(ctx context.Context, modelID string, steps []storage.ProcessStep) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := make([]storage.ProcessStep, len(steps))
	copy(cp, steps)
	sort.SliceStable(cp, func(i, j int) bool {
		return cp[i].SequenceOrder < cp[j].SequenceOrder
	})
	s.processConfigs[modelID] = cp
	return nil
}

func (s *Storage) GetConfiguredModels(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	models := make([]string, 0, len(s.processConfigs))
	for modelID := range s.processConfigs {
		models = append(models, modelID)
	}
	sort.Strings(models)
	return models, nil
}

// ---------- Worker availability ----------

func (s *Storage) GetWorkerAvailability(ctx context.Context, startDate string, days int) ([]storage.WorkerAvailability, error) {
	if !dateutil.IsValid(startDate) {
		return nil, fmt.Errorf("worker availability: invalid start date %q", startDate)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var rows []storage.WorkerAvailability
	date := startDate
	for i := 0; i < days; i++ {
		if workers, ok := s.availability[date]; ok {
			rows = append(rows, storage.WorkerAvailability{Date: date, AvailableWorkers: workers})
		}
		date, _ = dateutil.AddDays(date, 1)
	}
	return rows, nil
}

func (s *Storage) SaveWorkerAvailability(ctx context.Context, rows []storage.WorkerAvailability) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range rows {
		if !dateutil.IsValid(row.Date) {
			return fmt.Errorf("worker availability: invalid date %q", row.Date)
		}
		if row.AvailableWorkers < 0 {
			return fmt.Errorf("worker availability %s: negative worker count", row.Date)
		}
		s.availability[row.Date] = row.AvailableWorkers
	}
	return nil
}
