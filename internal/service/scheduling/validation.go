package scheduling

import (
	"fmt"
	"sort"

	"aps-train/internal/dateutil"
	"aps-train/internal/storage"
)

// ValidateSchedule независимо перепроверяет готовый план: просрочки,
// перегрузки по рабочим, нарушение последовательности процессов и двойное
// бронирование линий. Функция нарочно не использует внутренности движка —
// так она ловит и его ошибки.
func ValidateSchedule(
	processes []storage.ScheduledProcess,
	orders []*storage.Order,
	completionDates map[string]string,
	resourceUsage []storage.DailyResourceUsage,
) storage.ValidationResult {
	var conflicts []storage.Conflict

	conflicts = append(conflicts, checkLateDeliveries(orders, completionDates)...)
	conflicts = append(conflicts, checkResourceOverload(resourceUsage)...)
	conflicts = append(conflicts, checkProcessSequence(processes)...)
	conflicts = append(conflicts, checkLineConflicts(processes)...)

	return storage.ValidationResult{
		IsValid:   len(conflicts) == 0,
		Conflicts: conflicts,
		// Warnings пока всегда пуст, но поле остаётся в контракте ответа.
		Warnings: []storage.Conflict{},
	}
}

func checkLateDeliveries(orders []*storage.Order, completionDates map[string]string) []storage.Conflict {
	var conflicts []storage.Conflict

	for _, order := range orders {
		completionDate, ok := completionDates[order.ID]
		if !ok {
			continue
		}
		if completionDate <= order.DueDate {
			continue
		}

		daysLate, err := dateutil.DaysBetween(order.DueDate, completionDate)
		if err != nil {
			continue
		}
		conflicts = append(conflicts, storage.Conflict{
			Type:     storage.ConflictLateDelivery,
			OrderID:  order.ID,
			Message:  fmt.Sprintf("order %s will be %d day(s) late", order.ID, daysLate),
			Severity: storage.SeverityError,
		})
	}

	return conflicts
}

func checkResourceOverload(resourceUsage []storage.DailyResourceUsage) []storage.Conflict {
	var conflicts []storage.Conflict

	for _, usage := range resourceUsage {
		if !usage.IsOverloaded {
			continue
		}
		conflicts = append(conflicts, storage.Conflict{
			Type:     storage.ConflictResourceOverload,
			Date:     usage.Date,
			Message:  fmt.Sprintf("workers overloaded on %s: %d needed, %d available", usage.Date, usage.AssignedWorkers, usage.AvailableWorkers),
			Severity: storage.SeverityError,
		})
	}

	return conflicts
}

// checkProcessSequence: внутри заказа процесс i+1 не может стартовать раньше
// конца процесса i. При корректном движке сюда ничего не попадает, проверка
// защитная.
func checkProcessSequence(processes []storage.ScheduledProcess) []storage.Conflict {
	var conflicts []storage.Conflict

	byOrder := groupByOrder(processes)
	for _, orderID := range sortedKeys(byOrder) {
		group := byOrder[orderID]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].ProcessIndex < group[j].ProcessIndex
		})

		for i := 1; i < len(group); i++ {
			previous := group[i-1]
			current := group[i]
			if current.StartDate >= previous.EndDate {
				continue
			}
			conflicts = append(conflicts, storage.Conflict{
				Type:        storage.ConflictSequenceViolation,
				OrderID:     orderID,
				ProcessName: current.ProcessName,
				Message:     fmt.Sprintf("sequence violation in order %s: %s starts before %s ends", orderID, current.ProcessName, previous.ProcessName),
				Severity:    storage.SeverityError,
			})
		}
	}

	return conflicts
}

// checkLineConflicts: на одной линии два процесса не могут пересекаться по
// полуоткрытым интервалам [start, end). Тоже защитная проверка.
func checkLineConflicts(processes []storage.ScheduledProcess) []storage.Conflict {
	var conflicts []storage.Conflict

	byLine := groupByLine(processes)
	for _, lineID := range sortedKeys(byLine) {
		group := byLine[lineID]
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				first, second := group[i], group[j]
				if !dateutil.Overlap(first.StartDate, first.EndDate, second.StartDate, second.EndDate) {
					continue
				}
				conflicts = append(conflicts, storage.Conflict{
					Type:    storage.ConflictLine,
					OrderID: first.OrderID,
					Message: fmt.Sprintf("line %s conflict: %s (order %s) overlaps %s (order %s)",
						lineID, first.ProcessName, first.OrderID, second.ProcessName, second.OrderID),
					Severity: storage.SeverityError,
				})
			}
		}
	}

	return conflicts
}

func groupByOrder(processes []storage.ScheduledProcess) map[string][]storage.ScheduledProcess {
	grouped := make(map[string][]storage.ScheduledProcess)
	for _, process := range processes {
		grouped[process.OrderID] = append(grouped[process.OrderID], process)
	}
	return grouped
}

func groupByLine(processes []storage.ScheduledProcess) map[string][]storage.ScheduledProcess {
	grouped := make(map[string][]storage.ScheduledProcess)
	for _, process := range processes {
		grouped[process.ProductionLineID] = append(grouped[process.ProductionLineID], process)
	}
	return grouped
}

// sortedKeys даёт детерминированный порядок обхода групп: без него порядок
// конфликтов зависел бы от итерации по map.
func sortedKeys(m map[string][]storage.ScheduledProcess) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
