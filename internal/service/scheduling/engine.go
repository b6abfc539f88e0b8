// Package scheduling реализует прямое планирование заказов (forward
// scheduling) с приоритетом EDD и независимую перепроверку готового плана.
// Ядро — чистые функции: никаких часов, случайности и ввода-вывода; весь
// результат детерминирован входом.
package scheduling

import (
	"fmt"
	"sort"

	"aps-train/internal/dateutil"
	"aps-train/internal/storage"
)

const (
	// DefaultAvailableWorkers подставляется для дат, отсутствующих в таблице
	// доступности, когда вход не задал своё значение.
	DefaultAvailableWorkers = 5

	// DefaultMaxSearchDays ограничивает подневной поиск окна с рабочими,
	// иначе при невыполнимом плане цикл не завершится.
	DefaultMaxSearchDays = 100
)

type SchedulingInput struct {
	Orders             []*storage.Order
	Lines              []*storage.ProductionLine
	Models             []*storage.TrainModel
	WorkerAvailability []storage.WorkerAvailability
	StartDate          string
	HorizonDays        int
	// DefaultWorkers — запас рабочих для дат вне таблицы; 0 означает
	// DefaultAvailableWorkers.
	DefaultWorkers int
	// MaxSearchDays — граница поиска стартовой даты; 0 означает
	// DefaultMaxSearchDays.
	MaxSearchDays int
}

type SchedulingResult struct {
	ScheduledProcesses []storage.ScheduledProcess
	// CompletionDates: id заказа → дата завершения последнего процесса
	// (исключающая).
	CompletionDates map[string]string
	ResourceUsage   []storage.DailyResourceUsage
	// SkippedOrders — заказы без известной модели; план по ним не строится,
	// но прогон не прерывается.
	SkippedOrders []string
}

// Schedule строит план: стабильная сортировка заказов по сроку (EDD, при
// равных сроках сохраняется входной порядок), для каждого процесса — первая
// подходящая активная линия, старт не раньше конца предыдущего процесса и
// освобождения линии, затем подневной поиск окна с достаточным числом
// рабочих. Ошибка возвращается только на незапарсиваемую стартовую дату;
// бизнес-проблемы (нехватка рабочих, просрочки) не ошибки — их находит
// валидатор.
func Schedule(in SchedulingInput) (SchedulingResult, error) {
	const op = "service.scheduling.Schedule"

	if _, err := dateutil.Parse(in.StartDate); err != nil {
		return SchedulingResult{}, fmt.Errorf("%s: %w", op, err)
	}

	defaultWorkers := in.DefaultWorkers
	if defaultWorkers == 0 {
		defaultWorkers = DefaultAvailableWorkers
	}
	maxSearch := in.MaxSearchDays
	if maxSearch <= 0 {
		maxSearch = DefaultMaxSearchDays
	}

	sorted := sortOrdersByDueDate(in.Orders)
	availability := availabilityTable(in.WorkerAvailability)

	models := make(map[string]*storage.TrainModel, len(in.Models))
	for _, m := range in.Models {
		models[m.ID] = m
	}

	// Дата освобождения каждой линии, живёт только внутри этого вызова.
	lineNextAvailable := make(map[string]string, len(in.Lines))
	for _, line := range in.Lines {
		lineNextAvailable[line.ID] = in.StartDate
	}

	var processes []storage.ScheduledProcess
	completionDates := make(map[string]string, len(sorted))
	var skipped []string

	for _, order := range sorted {
		model, ok := models[order.ModelType]
		if !ok {
			// Отсутствующая модель — проблема данных, а не планировщика.
			skipped = append(skipped, order.ID)
			continue
		}

		previousEndDate := in.StartDate

		for i, process := range model.Processes {
			line := findSuitableLine(in.Lines, process.OperationType)
			if line == nil {
				continue
			}

			earliestStart := dateutil.Max(previousEndDate, lineNextAvailable[line.ID])
			startDate := findDateWithWorkers(earliestStart, process.DurationDays, line.WorkersRequired, availability, defaultWorkers, maxSearch)
			endDate := addDays(startDate, process.DurationDays)

			processes = append(processes, storage.ScheduledProcess{
				OrderID:          order.ID,
				ModelType:        order.ModelType,
				ProcessName:      process.ProcessName,
				ProcessIndex:     i,
				ProductionLineID: line.ID,
				StartDate:        startDate,
				EndDate:          endDate,
				WorkersAssigned:  line.WorkersRequired,
			})

			lineNextAvailable[line.ID] = endDate
			previousEndDate = endDate
		}

		completionDates[order.ID] = previousEndDate
	}

	usage := calculateResourceUsage(processes, availability, in.StartDate, in.HorizonDays, defaultWorkers)

	return SchedulingResult{
		ScheduledProcesses: processes,
		CompletionDates:    completionDates,
		ResourceUsage:      usage,
		SkippedOrders:      skipped,
	}, nil
}

// sortOrdersByDueDate сортирует копию списка по сроку сдачи. Сортировка
// стабильная: заказы с одинаковым сроком остаются во входном порядке.
func sortOrdersByDueDate(orders []*storage.Order) []*storage.Order {
	sorted := make([]*storage.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DueDate < sorted[j].DueDate
	})
	return sorted
}

func availabilityTable(rows []storage.WorkerAvailability) map[string]int {
	table := make(map[string]int, len(rows))
	for _, row := range rows {
		table[row.Date] = row.AvailableWorkers
	}
	return table
}

func availableWorkers(date string, table map[string]int, defaultWorkers int) int {
	if workers, ok := table[date]; ok {
		return workers
	}
	return defaultWorkers
}

// findSuitableLine возвращает первую активную линию нужного типа операции.
// Балансировки между параллельными линиями одного типа нет: всегда берётся
// первая.
func findSuitableLine(lines []*storage.ProductionLine, operationType string) *storage.ProductionLine {
	for _, line := range lines {
		if line.CanPerform(operationType) {
			return line
		}
	}
	return nil
}

// findDateWithWorkers ищет первую дату, начиная с earliestStart, на каждой из
// durationDays которой доступно не меньше workersNeeded рабочих. Если за
// maxSearch дней окно не нашлось, возвращается earliestStart: перегрузку
// зафиксирует валидатор.
func findDateWithWorkers(earliestStart string, durationDays, workersNeeded int, table map[string]int, defaultWorkers, maxSearch int) string {
	currentDate := earliestStart

	for iteration := 0; iteration < maxSearch; iteration++ {
		hasEnoughWorkers := true
		for i := 0; i < durationDays; i++ {
			if availableWorkers(addDays(currentDate, i), table, defaultWorkers) < workersNeeded {
				hasEnoughWorkers = false
				break
			}
		}
		if hasEnoughWorkers {
			return currentDate
		}
		currentDate = addDays(currentDate, 1)
	}

	return earliestStart
}

// calculateResourceUsage суммирует назначенных рабочих по каждому дню
// горизонта: процесс занимает дни [start, end).
func calculateResourceUsage(processes []storage.ScheduledProcess, table map[string]int, startDate string, horizonDays, defaultWorkers int) []storage.DailyResourceUsage {
	usage := make([]storage.DailyResourceUsage, 0, horizonDays)

	for i := 0; i < horizonDays; i++ {
		date := addDays(startDate, i)
		available := availableWorkers(date, table, defaultWorkers)

		assigned := 0
		for _, process := range processes {
			if dateutil.InRange(date, process.StartDate, process.EndDate) {
				assigned += process.WorkersAssigned
			}
		}

		usage = append(usage, storage.DailyResourceUsage{
			Date:             date,
			AvailableWorkers: available,
			AssignedWorkers:  assigned,
			IsOverloaded:     assigned > available,
		})
	}

	return usage
}

// addDays для дат, уже прошедших валидацию: ошибка парсинга здесь невозможна.
func addDays(date string, days int) string {
	shifted, _ := dateutil.AddDays(date, days)
	return shifted
}
