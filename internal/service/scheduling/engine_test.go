package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"aps-train/internal/dateutil"
	"aps-train/internal/storage"
)

func testLine(id, operationType string, lineNumber, workers int) *storage.ProductionLine {
	return &storage.ProductionLine{
		ID:              id,
		OperationType:   operationType,
		LineNumber:      lineNumber,
		WorkersRequired: workers,
		IsActive:        true,
	}
}

func testOrder(id, modelType, dueDate string, priority int) *storage.Order {
	return &storage.Order{
		ID:        id,
		ModelType: modelType,
		DueDate:   dueDate,
		Priority:  priority,
		Status:    storage.StatusPending,
		CreatedAt: "2026-01-10",
	}
}

func testStep(name string, days, workers, seq int) storage.ProcessStep {
	return storage.ProcessStep{
		ProcessName:     name,
		OperationType:   name,
		DurationDays:    days,
		WorkersRequired: workers,
		SequenceOrder:   seq,
	}
}

// Доступность рабочих из демо-набора: 10 дней с 2026-01-10.
func demoAvailability() []storage.WorkerAvailability {
	counts := []int{5, 5, 4, 5, 5, 3, 5, 5, 5, 4}
	rows := make([]storage.WorkerAvailability, 0, len(counts))
	date := "2026-01-10"
	for _, c := range counts {
		rows = append(rows, storage.WorkerAvailability{Date: date, AvailableWorkers: c})
		date, _ = dateutil.AddDays(date, 1)
	}
	return rows
}

// referenceInput — сценарий из эталона: одна линия на операцию, один заказ B1
// модели B с рецептом Preparación(1д)→Torneado(3д)→Pintado(1д).
func referenceInput(dueDate string) SchedulingInput {
	modelB := &storage.TrainModel{
		ID:          "B",
		Description: "Modelo B",
		Processes: []storage.ProcessStep{
			testStep("Preparación", 1, 1, 0),
			testStep("Torneado", 3, 2, 1),
			testStep("Pintado", 1, 2, 2),
		},
	}

	return SchedulingInput{
		Orders: []*storage.Order{testOrder("B1", "B", dueDate, 1)},
		Lines: []*storage.ProductionLine{
			testLine("preparacion-line-1", "Preparación", 1, 1),
			testLine("torneado-line-1", "Torneado", 1, 2),
			testLine("pintado-line-1", "Pintado", 1, 2),
		},
		Models:             []*storage.TrainModel{modelB},
		WorkerAvailability: demoAvailability(),
		StartDate:          "2026-01-10",
		HorizonDays:        10,
	}
}

func TestSchedule_ReferenceScenario(t *testing.T) {
	result, err := Schedule(referenceInput("2026-01-15"))
	assert.NoError(t, err)

	assert.Len(t, result.ScheduledProcesses, 3)

	prep := result.ScheduledProcesses[0]
	assert.Equal(t, "Preparación", prep.ProcessName)
	assert.Equal(t, "2026-01-10", prep.StartDate)
	assert.Equal(t, "2026-01-11", prep.EndDate)
	assert.Equal(t, 1, prep.WorkersAssigned)

	// 2026-01-12 даёт только 4 рабочих, но для Torneado хватает двух,
	// поэтому сдвига нет.
	torn := result.ScheduledProcesses[1]
	assert.Equal(t, "Torneado", torn.ProcessName)
	assert.Equal(t, "2026-01-11", torn.StartDate)
	assert.Equal(t, "2026-01-14", torn.EndDate)

	pint := result.ScheduledProcesses[2]
	assert.Equal(t, "Pintado", pint.ProcessName)
	assert.Equal(t, "2026-01-14", pint.StartDate)
	assert.Equal(t, "2026-01-15", pint.EndDate)

	assert.Equal(t, "2026-01-15", result.CompletionDates["B1"])

	// завершение точно в срок — план валиден
	validation := ValidateSchedule(result.ScheduledProcesses, referenceInput("2026-01-15").Orders, result.CompletionDates, result.ResourceUsage)
	assert.True(t, validation.IsValid)
	assert.Empty(t, validation.Conflicts)
	assert.Empty(t, validation.Warnings)
}

func TestSchedule_LateDelivery(t *testing.T) {
	in := referenceInput("2026-01-14")
	result, err := Schedule(in)
	assert.NoError(t, err)

	assert.Equal(t, "2026-01-15", result.CompletionDates["B1"])

	validation := ValidateSchedule(result.ScheduledProcesses, in.Orders, result.CompletionDates, result.ResourceUsage)
	assert.False(t, validation.IsValid)
	assert.Len(t, validation.Conflicts, 1)

	conflict := validation.Conflicts[0]
	assert.Equal(t, storage.ConflictLateDelivery, conflict.Type)
	assert.Equal(t, "B1", conflict.OrderID)
	assert.Equal(t, storage.SeverityError, conflict.Severity)
	assert.Contains(t, conflict.Message, "1 day(s) late")
}

func TestSchedule_Deterministic(t *testing.T) {
	in := referenceInput("2026-01-15")

	first, err := Schedule(in)
	assert.NoError(t, err)
	second, err := Schedule(in)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSchedule_InvalidStartDate(t *testing.T) {
	in := referenceInput("2026-01-15")
	in.StartDate = "10.01.2026"

	_, err := Schedule(in)
	assert.Error(t, err)
}

func TestSchedule_EDDStableSort(t *testing.T) {
	model := &storage.TrainModel{
		ID:          "A",
		Description: "Modelo A",
		Processes:   []storage.ProcessStep{testStep("Preparación", 1, 1, 0)},
	}
	in := SchedulingInput{
		// X идёт первым на входе, но срок у него позже; Y и Z делят срок и
		// должны сохранить входной порядок
		Orders: []*storage.Order{
			testOrder("X", "A", "2026-01-20", 1),
			testOrder("Y", "A", "2026-01-15", 2),
			testOrder("Z", "A", "2026-01-15", 3),
		},
		Lines:       []*storage.ProductionLine{testLine("preparacion-line-1", "Preparación", 1, 1)},
		Models:      []*storage.TrainModel{model},
		StartDate:   "2026-01-10",
		HorizonDays: 10,
	}

	result, err := Schedule(in)
	assert.NoError(t, err)
	assert.Len(t, result.ScheduledProcesses, 3)

	assert.Equal(t, "Y", result.ScheduledProcesses[0].OrderID)
	assert.Equal(t, "Z", result.ScheduledProcesses[1].OrderID)
	assert.Equal(t, "X", result.ScheduledProcesses[2].OrderID)
}

func TestSchedule_SerializesSameLine(t *testing.T) {
	model := &storage.TrainModel{
		ID:          "B",
		Description: "Modelo B",
		Processes:   []storage.ProcessStep{testStep("Torneado", 2, 2, 0)},
	}
	in := SchedulingInput{
		Orders: []*storage.Order{
			testOrder("B1", "B", "2026-01-15", 1),
			testOrder("B2", "B", "2026-01-16", 2),
		},
		Lines:       []*storage.ProductionLine{testLine("torneado-line-1", "Torneado", 1, 2)},
		Models:      []*storage.TrainModel{model},
		StartDate:   "2026-01-10",
		HorizonDays: 10,
	}

	result, err := Schedule(in)
	assert.NoError(t, err)
	assert.Len(t, result.ScheduledProcesses, 2)

	first := result.ScheduledProcesses[0]
	second := result.ScheduledProcesses[1]
	assert.Equal(t, "2026-01-10", first.StartDate)
	assert.Equal(t, "2026-01-12", first.EndDate)
	// линия одна — второй заказ ждёт её освобождения
	assert.Equal(t, "2026-01-12", second.StartDate)
	assert.Equal(t, "2026-01-14", second.EndDate)

	validation := ValidateSchedule(result.ScheduledProcesses, in.Orders, result.CompletionDates, result.ResourceUsage)
	for _, c := range validation.Conflicts {
		assert.NotEqual(t, storage.ConflictLine, c.Type)
	}
}

func TestSchedule_ResourceOverloadAcrossLines(t *testing.T) {
	// Две разные линии работают в один день: по отдельности рабочих хватает
	// (2 ≤ 3), но суммарный спрос 4 превышает дневной запас 3.
	modelX := &storage.TrainModel{
		ID:          "X",
		Description: "Modelo X",
		Processes:   []storage.ProcessStep{testStep("Torneado", 1, 2, 0)},
	}
	modelY := &storage.TrainModel{
		ID:          "Y",
		Description: "Modelo Y",
		Processes:   []storage.ProcessStep{testStep("Pintado", 1, 2, 0)},
	}
	in := SchedulingInput{
		Orders: []*storage.Order{
			testOrder("O1", "X", "2026-01-12", 1),
			testOrder("O2", "Y", "2026-01-12", 2),
		},
		Lines: []*storage.ProductionLine{
			testLine("torneado-line-1", "Torneado", 1, 2),
			testLine("pintado-line-1", "Pintado", 1, 2),
		},
		Models: []*storage.TrainModel{modelX, modelY},
		WorkerAvailability: []storage.WorkerAvailability{
			{Date: "2026-01-10", AvailableWorkers: 3},
		},
		StartDate:   "2026-01-10",
		HorizonDays: 3,
	}

	result, err := Schedule(in)
	assert.NoError(t, err)
	assert.Len(t, result.ScheduledProcesses, 2)
	assert.Equal(t, "2026-01-10", result.ScheduledProcesses[0].StartDate)
	assert.Equal(t, "2026-01-10", result.ScheduledProcesses[1].StartDate)

	assert.True(t, result.ResourceUsage[0].IsOverloaded)
	assert.Equal(t, 4, result.ResourceUsage[0].AssignedWorkers)
	assert.Equal(t, 3, result.ResourceUsage[0].AvailableWorkers)

	validation := ValidateSchedule(result.ScheduledProcesses, in.Orders, result.CompletionDates, result.ResourceUsage)
	assert.False(t, validation.IsValid)

	found := false
	for _, c := range validation.Conflicts {
		if c.Type == storage.ConflictResourceOverload {
			found = true
			assert.Equal(t, "2026-01-10", c.Date)
			assert.Contains(t, c.Message, "4 needed, 3 available")
		}
	}
	assert.True(t, found)
}

func TestSchedule_SkipsUnknownModel(t *testing.T) {
	in := referenceInput("2026-01-15")
	in.Orders = append(in.Orders, testOrder("Z1", "Z", "2026-01-12", 0))

	result, err := Schedule(in)
	assert.NoError(t, err)

	assert.Equal(t, []string{"Z1"}, result.SkippedOrders)
	_, hasCompletion := result.CompletionDates["Z1"]
	assert.False(t, hasCompletion)
	// остальные заказы планируются как обычно
	assert.Equal(t, "2026-01-15", result.CompletionDates["B1"])
}

func TestSchedule_SkipsStepWithoutLine(t *testing.T) {
	in := referenceInput("2026-01-15")
	// без линии Torneado средний шаг пропускается, остальные планируются
	in.Lines = []*storage.ProductionLine{
		testLine("preparacion-line-1", "Preparación", 1, 1),
		testLine("pintado-line-1", "Pintado", 1, 2),
	}

	result, err := Schedule(in)
	assert.NoError(t, err)
	assert.Len(t, result.ScheduledProcesses, 2)
	assert.Equal(t, "Preparación", result.ScheduledProcesses[0].ProcessName)
	assert.Equal(t, "Pintado", result.ScheduledProcesses[1].ProcessName)
	assert.Equal(t, "2026-01-12", result.CompletionDates["B1"])
}

func TestSchedule_InactiveLineIgnored(t *testing.T) {
	in := referenceInput("2026-01-15")
	for _, line := range in.Lines {
		if line.OperationType == "Torneado" {
			line.IsActive = false
		}
	}

	result, err := Schedule(in)
	assert.NoError(t, err)
	for _, p := range result.ScheduledProcesses {
		assert.NotEqual(t, "Torneado", p.ProcessName)
	}
}

func TestSchedule_SearchBoundFallback(t *testing.T) {
	// Рабочих нигде не хватает: после исчерпания границы поиска шаг встаёт
	// на самую раннюю дату, а перегрузку ловит валидатор.
	model := &storage.TrainModel{
		ID:          "B",
		Description: "Modelo B",
		Processes:   []storage.ProcessStep{testStep("Torneado", 1, 2, 0)},
	}
	in := SchedulingInput{
		Orders:         []*storage.Order{testOrder("B1", "B", "2026-01-15", 1)},
		Lines:          []*storage.ProductionLine{testLine("torneado-line-1", "Torneado", 1, 2)},
		Models:         []*storage.TrainModel{model},
		StartDate:      "2026-01-10",
		HorizonDays:    5,
		DefaultWorkers: 1,
	}

	result, err := Schedule(in)
	assert.NoError(t, err)
	assert.Len(t, result.ScheduledProcesses, 1)
	assert.Equal(t, "2026-01-10", result.ScheduledProcesses[0].StartDate)

	assert.True(t, result.ResourceUsage[0].IsOverloaded)

	validation := ValidateSchedule(result.ScheduledProcesses, in.Orders, result.CompletionDates, result.ResourceUsage)
	assert.False(t, validation.IsValid)
}

// demoInput — полный демо-набор: 4 линии, модели A/B/C, 5 заказов.
func demoInput() SchedulingInput {
	modelA := &storage.TrainModel{ID: "A", Description: "Modelo A", Processes: []storage.ProcessStep{
		testStep("Preparación", 1, 1, 0),
		testStep("Torneado", 2, 2, 1),
		testStep("Pintado", 2, 2, 2),
	}}
	modelB := &storage.TrainModel{ID: "B", Description: "Modelo B", Processes: []storage.ProcessStep{
		testStep("Preparación", 2, 1, 0),
		testStep("Torneado", 2, 2, 1),
		testStep("Pintado", 1, 2, 2),
	}}
	modelC := &storage.TrainModel{ID: "C", Description: "Modelo C", Processes: []storage.ProcessStep{
		testStep("Preparación", 1, 1, 0),
		testStep("Torneado", 1, 2, 1),
		testStep("Pintado", 3, 2, 2),
	}}

	return SchedulingInput{
		Orders: []*storage.Order{
			testOrder("B1", "B", "2026-01-15", 1),
			testOrder("A1", "A", "2026-01-16", 2),
			testOrder("C1", "C", "2026-01-17", 3),
			testOrder("A2", "A", "2026-01-18", 4),
			testOrder("B2", "B", "2026-01-19", 5),
		},
		Lines: []*storage.ProductionLine{
			testLine("preparacion-line-1", "Preparación", 1, 1),
			testLine("preparacion-line-2", "Preparación", 2, 1),
			testLine("torneado-line-1", "Torneado", 1, 2),
			testLine("pintado-line-1", "Pintado", 1, 2),
		},
		Models:             []*storage.TrainModel{modelA, modelB, modelC},
		WorkerAvailability: demoAvailability(),
		StartDate:          "2026-01-10",
		HorizonDays:        10,
	}
}

func TestSchedule_DemoDataset_Invariants(t *testing.T) {
	in := demoInput()
	result, err := Schedule(in)
	assert.NoError(t, err)

	// каждый заказ получил все три процесса
	assert.Len(t, result.ScheduledProcesses, 15)
	assert.Len(t, result.CompletionDates, 5)

	// последовательность процессов внутри заказа
	byOrder := map[string][]storage.ScheduledProcess{}
	for _, p := range result.ScheduledProcesses {
		byOrder[p.OrderID] = append(byOrder[p.OrderID], p)
	}
	for orderID, group := range byOrder {
		for i := 1; i < len(group); i++ {
			assert.GreaterOrEqual(t, group[i].StartDate, group[i-1].EndDate,
				"sequence broken for order %s", orderID)
		}
	}

	// линии не бронируются дважды
	byLine := map[string][]storage.ScheduledProcess{}
	for _, p := range result.ScheduledProcesses {
		byLine[p.ProductionLineID] = append(byLine[p.ProductionLineID], p)
	}
	for lineID, group := range byLine {
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				assert.False(t, dateutil.Overlap(group[i].StartDate, group[i].EndDate, group[j].StartDate, group[j].EndDate),
					"line %s double-booked", lineID)
			}
		}
	}

	// использование ресурсов сходится с планом по каждому дню горизонта
	assert.Len(t, result.ResourceUsage, 10)
	for _, usage := range result.ResourceUsage {
		expected := 0
		for _, p := range result.ScheduledProcesses {
			if dateutil.InRange(usage.Date, p.StartDate, p.EndDate) {
				expected += p.WorkersAssigned
			}
		}
		assert.Equal(t, expected, usage.AssignedWorkers, "usage mismatch on %s", usage.Date)
		assert.Equal(t, expected > usage.AvailableWorkers, usage.IsOverloaded)
	}

	// объединённый прогон детерминирован
	again, err := Schedule(in)
	assert.NoError(t, err)
	assert.Equal(t, result, again)
}
