package generate_excel

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"aps-train/internal/dateutil"
	"aps-train/internal/service/scheduling"
)

type ExcelGenerator interface {
	GenerateScheduleExcel(ctx context.Context, req scheduling.ScheduleRequest) ([]byte, error)
}

func GenerateReportExcel(log *slog.Logger, gen ExcelGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.report.GenerateReportExcel"

		req := scheduling.ScheduleRequest{
			StartDate: r.URL.Query().Get("start_date"),
		}
		if req.StartDate != "" && !dateutil.IsValid(req.StartDate) {
			http.Error(w, "invalid start_date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		// На Excel даём побольше времени
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		excelBytes, err := gen.GenerateScheduleExcel(ctx, req)
		if err != nil {
			log.Error("Ошибка генерации отчёта", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		fileName := fmt.Sprintf("Production_Plan_%s.xlsx", time.Now().Format("2006-01-02_150405"))

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
		w.Write(excelBytes)
	}
}
