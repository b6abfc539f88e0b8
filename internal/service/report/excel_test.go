package report

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"aps-train/internal/service/scheduling"
	"aps-train/internal/storage"
)

type stubPlanner struct {
	out *scheduling.ScheduleOutput
	err error
}

func (s *stubPlanner) Execute(ctx context.Context, req scheduling.ScheduleRequest) (*scheduling.ScheduleOutput, error) {
	return s.out, s.err
}

func TestGenerateScheduleExcel(t *testing.T) {
	planner := &stubPlanner{out: &scheduling.ScheduleOutput{
		ScheduledProcesses: []storage.ScheduledProcess{
			{
				OrderID:          "B1",
				ModelType:        "B",
				ProcessName:      "Preparación",
				ProcessIndex:     0,
				ProductionLineID: "preparacion-line-1",
				StartDate:        "2026-01-10",
				EndDate:          "2026-01-11",
				WorkersAssigned:  1,
			},
		},
		CompletionDates: map[string]string{"B1": "2026-01-11"},
		ResourceUsage: []storage.DailyResourceUsage{
			{Date: "2026-01-10", AvailableWorkers: 5, AssignedWorkers: 6, IsOverloaded: true},
		},
	}}

	svc := NewExcelService(planner)

	data, err := svc.GenerateScheduleExcel(context.Background(), scheduling.ScheduleRequest{StartDate: "2026-01-10"})
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Plan", "Recursos"}, f.GetSheetList())

	orderID, err := f.GetCellValue("Plan", "A2")
	require.NoError(t, err)
	assert.Equal(t, "B1", orderID)

	completion, err := f.GetCellValue("Plan", "H2")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-11", completion)

	overloaded, err := f.GetCellValue("Recursos", "D2")
	require.NoError(t, err)
	assert.Equal(t, "да", overloaded)
}

func TestGenerateScheduleExcel_PlannerError(t *testing.T) {
	planner := &stubPlanner{err: errors.New("no data")}

	_, err := NewExcelService(planner).GenerateScheduleExcel(context.Background(), scheduling.ScheduleRequest{})
	assert.Error(t, err)
}
