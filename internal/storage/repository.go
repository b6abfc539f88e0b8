package storage

import (
	"context"
	"errors"
)

// ErrNotFound возвращают обе реализации хранилища, когда записи нет.
var ErrNotFound = errors.New("not found")

// OrderRepository — порт хранилища заказов. Обработчики и сервисы объявляют
// свои узкие интерфейсы; этот полный контракт реализуют mysql и memory.
type OrderRepository interface {
	GetAll(ctx context.Context) ([]*Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)
	GetByStatus(ctx context.Context, status OrderStatus) ([]*Order, error)
	// GetPendingOrdersSorted возвращает pending-заказы, отсортированные по
	// (priority, due_date). Движок затем стабильно пересортирует по due_date,
	// так что приоритет работает как tie-break.
	GetPendingOrdersSorted(ctx context.Context) ([]*Order, error)
	SaveOrder(ctx context.Context, order *Order) error
	SaveOrders(ctx context.Context, orders []*Order) error
	DeleteOrder(ctx context.Context, id string) error
	UpdateOrderStatus(ctx context.Context, id string, status OrderStatus) error
}

// ConfigRepository — порт конфигурации: линии, каталог операций, рецепты
// моделей и таблица доступности рабочих.
type ConfigRepository interface {
	GetLines(ctx context.Context) ([]*ProductionLine, error)
	GetLinesByOperation(ctx context.Context, operationType string) ([]*ProductionLine, error)
	SaveLine(ctx context.Context, line *ProductionLine) error
	DeleteLine(ctx context.Context, id string) error

	GetOperations(ctx context.Context) ([]*OperationType, error)
	GetOperation(ctx context.Context, name string) (*OperationType, error)
	SaveOperation(ctx context.Context, op *OperationType) error
	DeleteOperation(ctx context.Context, name string) error

	GetProcessConfig(ctx context.Context, modelID string) ([]ProcessStep, error)
	SaveProcessConfig(ctx context.Context, modelID string, steps []ProcessStep) error
	GetConfiguredModels(ctx context.Context) ([]string, error)

	GetWorkerAvailability(ctx context.Context, startDate string, days int) ([]WorkerAvailability, error)
	SaveWorkerAvailability(ctx context.Context, rows []WorkerAvailability) error
}
