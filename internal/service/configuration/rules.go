// Package configuration — правила проверки конфигурации системы: каталог
// операций, производственные линии, рецепты моделей. Все функции чистые,
// состояние не хранится.
package configuration

import (
	"fmt"
	"sort"
	"strings"

	"aps-train/internal/storage"
)

const (
	// Разумные пределы каталога; не инварианты сущностей, а бизнес-рамки.
	MaxDefaultDurationDays = 30
	MaxWorkersPerLine      = 10
	MaxTotalDurationDays   = 60
)

type ValidationResult struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

func resultOf(errs []string) ValidationResult {
	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

// ValidateOperation проверяет новую операцию каталога против существующих.
func ValidateOperation(op *storage.OperationType, existing []*storage.OperationType) ValidationResult {
	var errs []string

	for _, other := range existing {
		if other.Name == op.Name {
			errs = append(errs, fmt.Sprintf("operation %q already exists", op.Name))
			break
		}
	}

	if op.DefaultDurationDays > MaxDefaultDurationDays {
		errs = append(errs, fmt.Sprintf("default duration cannot exceed %d days", MaxDefaultDurationDays))
	}
	if op.DefaultWorkersRequired > MaxWorkersPerLine {
		errs = append(errs, fmt.Sprintf("default workers cannot exceed %d", MaxWorkersPerLine))
	}

	return resultOf(errs)
}

// CanDeleteOperation запрещает удаление операции, пока на неё ссылается хоть
// одна линия.
func CanDeleteOperation(operationName string, lines []*storage.ProductionLine) ValidationResult {
	var errs []string

	count := 0
	for _, line := range lines {
		if line.OperationType == operationName {
			count++
		}
	}
	if count > 0 {
		errs = append(errs, fmt.Sprintf("operation %q is used by %d production line(s)", operationName, count))
	}

	return resultOf(errs)
}

// ValidateLine проверяет линию: тип операции существует, номер линии уникален
// в пределах типа.
func ValidateLine(line *storage.ProductionLine, existing []*storage.ProductionLine, operations []*storage.OperationType) ValidationResult {
	var errs []string

	operationExists := false
	for _, op := range operations {
		if op.Name == line.OperationType {
			operationExists = true
			break
		}
	}
	if !operationExists {
		errs = append(errs, fmt.Sprintf("operation type %q does not exist", line.OperationType))
	}

	for _, other := range existing {
		if other.OperationType == line.OperationType && other.LineNumber == line.LineNumber && other.ID != line.ID {
			errs = append(errs, fmt.Sprintf("line %d already exists for operation %q", line.LineNumber, line.OperationType))
			break
		}
	}

	if line.WorkersRequired > MaxWorkersPerLine {
		errs = append(errs, fmt.Sprintf("a line cannot require more than %d workers", MaxWorkersPerLine))
	}

	return resultOf(errs)
}

// ValidateProcessConfig проверяет рецепт модели целиком: непустой, все типы
// операций известны, имена процессов уникальны, sequence_order идёт подряд
// с нуля, суммарная длительность в рамках.
func ValidateProcessConfig(steps []storage.ProcessStep, operations []*storage.OperationType) ValidationResult {
	var errs []string

	if len(steps) == 0 {
		errs = append(errs, "model must have at least one process")
	}

	known := make(map[string]bool, len(operations))
	for _, op := range operations {
		known[op.Name] = true
	}
	for _, step := range steps {
		if !known[step.OperationType] {
			errs = append(errs, fmt.Sprintf("operation type %q in process %q does not exist", step.OperationType, step.ProcessName))
		}
	}

	seen := make(map[string]bool, len(steps))
	var duplicates []string
	for _, step := range steps {
		if seen[step.ProcessName] {
			duplicates = append(duplicates, step.ProcessName)
		}
		seen[step.ProcessName] = true
	}
	if len(duplicates) > 0 {
		errs = append(errs, fmt.Sprintf("duplicate processes: %s", strings.Join(duplicates, ", ")))
	}

	orders := make([]int, 0, len(steps))
	for _, step := range steps {
		orders = append(orders, step.SequenceOrder)
	}
	sort.Ints(orders)
	for i, seq := range orders {
		if seq != i {
			errs = append(errs, "sequence order must be consecutive starting from 0")
			break
		}
	}

	if total := TotalDuration(steps); total > MaxTotalDurationDays {
		errs = append(errs, fmt.Sprintf("total duration (%d days) is too high", total))
	}

	return resultOf(errs)
}

// DefaultProcessStep строит шаг рецепта из параметров операции по умолчанию.
func DefaultProcessStep(op *storage.OperationType, processName string, sequenceOrder int) (storage.ProcessStep, error) {
	return storage.NewProcessStep(processName, op.Name, op.DefaultDurationDays, op.DefaultWorkersRequired, sequenceOrder)
}

func TotalDuration(steps []storage.ProcessStep) int {
	total := 0
	for _, step := range steps {
		total += step.DurationDays
	}
	return total
}

// SuggestLineConfiguration предлагает следующий свободный номер линии для
// операции и её число рабочих по умолчанию.
func SuggestLineConfiguration(op *storage.OperationType, existing []*storage.ProductionLine) (lineNumber, workersRequired int) {
	maxLineNumber := 0
	for _, line := range existing {
		if line.OperationType == op.Name && line.LineNumber > maxLineNumber {
			maxLineNumber = line.LineNumber
		}
	}
	return maxLineNumber + 1, op.DefaultWorkersRequired
}
