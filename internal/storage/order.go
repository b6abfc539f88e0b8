package storage

import (
	"fmt"
	"time"

	"aps-train/internal/dateutil"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusScheduled  OrderStatus = "scheduled"
	StatusInProgress OrderStatus = "in_progress"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Order — производственный заказ на один состав. Статусы образуют линейную
// цепочку pending → scheduled → in_progress → completed, отмена возможна из
// любого незавершённого статуса.
type Order struct {
	ID          string      `json:"id"`
	ModelType   string      `json:"model_type"`
	DueDate     string      `json:"due_date"`
	Priority    int         `json:"priority"`
	Status      OrderStatus `json:"status"`
	CreatedAt   string      `json:"created_at"`
	CompletedAt *string     `json:"completed_at,omitempty"`
}

// NewOrder validates the fields and returns a pending order. An empty
// createdAt defaults to the current date.
func NewOrder(id, modelType, dueDate string, priority int, createdAt string) (*Order, error) {
	if createdAt == "" {
		createdAt = dateutil.Format(time.Now())
	}

	o := &Order{
		ID:        id,
		ModelType: modelType,
		DueDate:   dueDate,
		Priority:  priority,
		Status:    StatusPending,
		CreatedAt: createdAt,
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Order) Validate() error {
	if o.ID == "" {
		return fmt.Errorf("order: id is required")
	}
	if o.ModelType == "" {
		return fmt.Errorf("order %s: model type is required", o.ID)
	}
	if !dateutil.IsValid(o.DueDate) {
		return fmt.Errorf("order %s: due date %q is not a valid date", o.ID, o.DueDate)
	}
	if o.Priority < 0 {
		return fmt.Errorf("order %s: priority cannot be negative", o.ID)
	}
	if !o.Status.Valid() {
		return fmt.Errorf("order %s: unknown status %q", o.ID, o.Status)
	}
	return nil
}

func (o *Order) CanSchedule() bool {
	return o.Status == StatusPending
}

func (o *Order) MarkScheduled() error {
	if !o.CanSchedule() {
		return fmt.Errorf("order %s: cannot schedule from status %q", o.ID, o.Status)
	}
	o.Status = StatusScheduled
	return nil
}

func (o *Order) StartProduction() error {
	if o.Status != StatusScheduled {
		return fmt.Errorf("order %s: must be scheduled before starting production", o.ID)
	}
	o.Status = StatusInProgress
	return nil
}

// Complete closes the order; completedAt defaults to the current date.
func (o *Order) Complete(completedAt string) error {
	if o.Status != StatusInProgress {
		return fmt.Errorf("order %s: must be in progress to complete", o.ID)
	}
	if completedAt == "" {
		completedAt = dateutil.Format(time.Now())
	}
	if !dateutil.IsValid(completedAt) {
		return fmt.Errorf("order %s: completion date %q is not a valid date", o.ID, completedAt)
	}
	o.Status = StatusCompleted
	o.CompletedAt = &completedAt
	return nil
}

func (o *Order) Cancel() error {
	if o.Status == StatusCompleted {
		return fmt.Errorf("order %s: cannot cancel completed order", o.ID)
	}
	o.Status = StatusCancelled
	return nil
}

// Clone returns an independent copy, so that engine runs never share mutable
// state with the repositories.
func (o *Order) Clone() *Order {
	cp := *o
	if o.CompletedAt != nil {
		v := *o.CompletedAt
		cp.CompletedAt = &v
	}
	return &cp
}
