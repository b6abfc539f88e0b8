package storage

import (
	"fmt"
	"regexp"
)

// ProductionLine — одна физическая станция, обслуживает ровно один тип
// операции. Несколько линий одного типа — параллельные мощности.
type ProductionLine struct {
	ID              string `json:"id"`
	OperationType   string `json:"operation_type"`
	LineNumber      int    `json:"line_number"`
	WorkersRequired int    `json:"workers_required"`
	IsActive        bool   `json:"is_active"`
}

func NewProductionLine(id, operationType string, lineNumber, workersRequired int, isActive bool) (*ProductionLine, error) {
	l := &ProductionLine{
		ID:              id,
		OperationType:   operationType,
		LineNumber:      lineNumber,
		WorkersRequired: workersRequired,
		IsActive:        isActive,
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *ProductionLine) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("production line: id is required")
	}
	if l.OperationType == "" {
		return fmt.Errorf("production line %s: operation type is required", l.ID)
	}
	if l.LineNumber <= 0 {
		return fmt.Errorf("production line %s: line number must be greater than 0", l.ID)
	}
	if l.WorkersRequired < 0 {
		return fmt.Errorf("production line %s: workers required cannot be negative", l.ID)
	}
	return nil
}

func (l *ProductionLine) CanPerform(operationType string) bool {
	return l.IsActive && l.OperationType == operationType
}

const defaultOperationColor = "#6B7280"

var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// OperationType — запись каталога операций с параметрами по умолчанию.
// Шаги процесса ссылаются на неё по имени и могут переопределять
// длительность и число рабочих.
type OperationType struct {
	Name                   string `json:"name"`
	Description            string `json:"description"`
	DefaultDurationDays    int    `json:"default_duration_days"`
	DefaultWorkersRequired int    `json:"default_workers_required"`
	Color                  string `json:"color"`
}

func NewOperationType(name, description string, defaultDurationDays, defaultWorkersRequired int, color string) (*OperationType, error) {
	if color == "" {
		color = defaultOperationColor
	}
	op := &OperationType{
		Name:                   name,
		Description:            description,
		DefaultDurationDays:    defaultDurationDays,
		DefaultWorkersRequired: defaultWorkersRequired,
		Color:                  color,
	}
	if err := op.Validate(); err != nil {
		return nil, err
	}
	return op, nil
}

func (op *OperationType) Validate() error {
	if op.Name == "" {
		return fmt.Errorf("operation type: name is required")
	}
	if op.Description == "" {
		return fmt.Errorf("operation type %s: description is required", op.Name)
	}
	if op.DefaultDurationDays <= 0 {
		return fmt.Errorf("operation type %s: default duration must be greater than 0", op.Name)
	}
	if op.DefaultWorkersRequired < 0 {
		return fmt.Errorf("operation type %s: default workers required cannot be negative", op.Name)
	}
	if !hexColorRe.MatchString(op.Color) {
		return fmt.Errorf("operation type %s: color must be a hex color (#RRGGBB)", op.Name)
	}
	return nil
}
