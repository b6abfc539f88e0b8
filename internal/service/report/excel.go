// Package report строит Excel-выгрузку производственного плана.
package report

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"aps-train/internal/service/scheduling"
)

type Planner interface {
	Execute(ctx context.Context, req scheduling.ScheduleRequest) (*scheduling.ScheduleOutput, error)
}

type ExcelService struct {
	planner Planner
}

func NewExcelService(planner Planner) *ExcelService {
	return &ExcelService{planner: planner}
}

// GenerateScheduleExcel считает план и выгружает два листа:
// "Plan" — процессы по заказам, "Recursos" — дневная загрузка работников.
func (g *ExcelService) GenerateScheduleExcel(ctx context.Context, req scheduling.ScheduleRequest) ([]byte, error) {
	const op = "service.report.GenerateScheduleExcel"

	out, err := g.planner.Execute(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	planSheet := "Plan"
	f.SetSheetName("Sheet1", planSheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})

	planHeaders := []string{"Заказ", "Модель", "Процесс", "Линия", "Начало", "Конец", "Работники", "Готовность"}
	for i, name := range planHeaders {
		f.SetCellValue(planSheet, cellName(i+1, 1), name)
	}
	f.SetCellStyle(planSheet, "A1", cellName(len(planHeaders), 1), headerStyle)

	for rowIdx, p := range out.ScheduledProcesses {
		rowNum := rowIdx + 2
		f.SetCellValue(planSheet, cellName(1, rowNum), p.OrderID)
		f.SetCellValue(planSheet, cellName(2, rowNum), p.ModelType)
		f.SetCellValue(planSheet, cellName(3, rowNum), p.ProcessName)
		f.SetCellValue(planSheet, cellName(4, rowNum), p.ProductionLineID)
		f.SetCellValue(planSheet, cellName(5, rowNum), p.StartDate)
		f.SetCellValue(planSheet, cellName(6, rowNum), p.EndDate)
		f.SetCellValue(planSheet, cellName(7, rowNum), p.WorkersAssigned)
		f.SetCellValue(planSheet, cellName(8, rowNum), out.CompletionDates[p.OrderID])
	}

	f.SetPanes(planSheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
	})
	f.SetColWidth(planSheet, "A", "H", 15)

	usageSheet := "Recursos"
	if _, err := f.NewSheet(usageSheet); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	usageHeaders := []string{"Дата", "Нужно работников", "Доступно", "Перегрузка"}
	for i, name := range usageHeaders {
		f.SetCellValue(usageSheet, cellName(i+1, 1), name)
	}
	f.SetCellStyle(usageSheet, "A1", cellName(len(usageHeaders), 1), headerStyle)

	for rowIdx, u := range out.ResourceUsage {
		rowNum := rowIdx + 2
		f.SetCellValue(usageSheet, cellName(1, rowNum), u.Date)
		f.SetCellValue(usageSheet, cellName(2, rowNum), u.AssignedWorkers)
		f.SetCellValue(usageSheet, cellName(3, rowNum), u.AvailableWorkers)
		if u.IsOverloaded {
			f.SetCellValue(usageSheet, cellName(4, rowNum), "да")
		}
	}
	f.SetColWidth(usageSheet, "A", "D", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return buf.Bytes(), nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
