package storage

import "fmt"

// ProcessStep — один этап производственного рецепта модели. Ссылается на тип
// операции и может переопределять его длительность и число рабочих.
type ProcessStep struct {
	ProcessName     string `json:"process_name"`
	OperationType   string `json:"operation_type"`
	DurationDays    int    `json:"duration_days"`
	WorkersRequired int    `json:"workers_required"`
	SequenceOrder   int    `json:"sequence_order"`
}

func NewProcessStep(processName, operationType string, durationDays, workersRequired, sequenceOrder int) (ProcessStep, error) {
	s := ProcessStep{
		ProcessName:     processName,
		OperationType:   operationType,
		DurationDays:    durationDays,
		WorkersRequired: workersRequired,
		SequenceOrder:   sequenceOrder,
	}
	if err := s.Validate(); err != nil {
		return ProcessStep{}, err
	}
	return s, nil
}

func (s ProcessStep) Validate() error {
	if s.ProcessName == "" {
		return fmt.Errorf("process step: name is required")
	}
	if s.OperationType == "" {
		return fmt.Errorf("process step %s: operation type is required", s.ProcessName)
	}
	if s.DurationDays <= 0 {
		return fmt.Errorf("process step %s: duration must be greater than 0", s.ProcessName)
	}
	if s.WorkersRequired < 0 {
		return fmt.Errorf("process step %s: workers required cannot be negative", s.ProcessName)
	}
	if s.SequenceOrder < 0 {
		return fmt.Errorf("process step %s: sequence order cannot be negative", s.ProcessName)
	}
	return nil
}

// TrainModel — модель состава с фиксированным упорядоченным рецептом
// процессов (например "A", "B", "C").
type TrainModel struct {
	ID          string        `json:"id"`
	Description string        `json:"description"`
	Processes   []ProcessStep `json:"processes"`
}

func NewTrainModel(id, description string, processes []ProcessStep) (*TrainModel, error) {
	m := &TrainModel{ID: id, Description: description, Processes: processes}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *TrainModel) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("train model: id is required")
	}
	if m.Description == "" {
		return fmt.Errorf("train model %s: description is required", m.ID)
	}
	if len(m.Processes) == 0 {
		return fmt.Errorf("train model %s: must have at least one process", m.ID)
	}

	seen := make(map[string]bool, len(m.Processes))
	for _, p := range m.Processes {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("train model %s: %w", m.ID, err)
		}
		if seen[p.ProcessName] {
			return fmt.Errorf("train model %s: duplicate process name %q", m.ID, p.ProcessName)
		}
		seen[p.ProcessName] = true
	}
	return nil
}

func (m *TrainModel) TotalDuration() int {
	total := 0
	for _, p := range m.Processes {
		total += p.DurationDays
	}
	return total
}
