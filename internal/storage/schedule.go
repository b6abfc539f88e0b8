package storage

// WorkerAvailability — сколько рабочих доступно в конкретный день. Таблица
// разреженная: для отсутствующих дат движок использует значение по умолчанию
// из конфигурации.
type WorkerAvailability struct {
	Date             string `json:"date"`
	AvailableWorkers int    `json:"available_workers"`
}

// ScheduledProcess — один запланированный этап заказа. Конечная дата
// исключается: процесс на 2 дня со стартом D занимает D и D+1.
type ScheduledProcess struct {
	OrderID          string `json:"order_id"`
	ModelType        string `json:"model_type"`
	ProcessName      string `json:"process_name"`
	ProcessIndex     int    `json:"process_index"`
	ProductionLineID string `json:"production_line_id"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	WorkersAssigned  int    `json:"workers_assigned"`
}

type DailyResourceUsage struct {
	Date             string `json:"date"`
	AvailableWorkers int    `json:"available_workers"`
	AssignedWorkers  int    `json:"assigned_workers"`
	IsOverloaded     bool   `json:"is_overloaded"`
}

type ConflictType string

const (
	ConflictLateDelivery      ConflictType = "late_delivery"
	ConflictResourceOverload  ConflictType = "resource_overload"
	ConflictSequenceViolation ConflictType = "sequence_violation"
	ConflictLine              ConflictType = "line_conflict"
)

type ConflictSeverity string

const (
	SeverityError   ConflictSeverity = "error"
	SeverityWarning ConflictSeverity = "warning"
)

// Conflict никогда не сохраняется, всегда пересчитывается валидатором.
type Conflict struct {
	Type        ConflictType     `json:"type"`
	OrderID     string           `json:"order_id,omitempty"`
	Date        string           `json:"date,omitempty"`
	ProcessName string           `json:"process_name,omitempty"`
	Message     string           `json:"message"`
	Severity    ConflictSeverity `json:"severity"`
}

type ValidationResult struct {
	IsValid   bool       `json:"is_valid"`
	Conflicts []Conflict `json:"conflicts"`
	Warnings  []Conflict `json:"warnings"`
}
