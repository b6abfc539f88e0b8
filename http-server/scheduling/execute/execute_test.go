package execute

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"aps-train/internal/service/scheduling"
	"aps-train/internal/storage"
)

// MockPlanner реализует интерфейс Planner для тестов
type MockPlanner struct {
	mock.Mock
}

func (m *MockPlanner) Execute(ctx context.Context, req scheduling.ScheduleRequest) (*scheduling.ScheduleOutput, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scheduling.ScheduleOutput), args.Error(1)
}

// Тест: успешное построение плана
func TestExecuteScheduling_Success(t *testing.T) {
	mockPlanner := new(MockPlanner)

	out := &scheduling.ScheduleOutput{
		ScheduledProcesses: []storage.ScheduledProcess{
			{
				OrderID:          "B1",
				ModelType:        "B",
				ProcessName:      "Preparación",
				ProductionLineID: "preparacion-line-1",
				StartDate:        "2026-01-10",
				EndDate:          "2026-01-11",
				WorkersAssigned:  1,
			},
		},
		CompletionDates: map[string]string{"B1": "2026-01-11"},
		Validation:      storage.ValidationResult{IsValid: true, Conflicts: []storage.Conflict{}, Warnings: []storage.Conflict{}},
		Metadata:        scheduling.ScheduleMetadata{TotalOrders: 1, ScheduledOrders: 1, TotalProcesses: 1},
	}

	mockPlanner.On("Execute", mock.Anything, scheduling.ScheduleRequest{StartDate: "2026-01-10"}).
		Return(out, nil)

	handler := ExecuteScheduling(slog.Default(), mockPlanner)

	req := httptest.NewRequest(http.MethodPost, "/api/scheduling/execute", strings.NewReader(`{"start_date":"2026-01-10"}`))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp scheduling.ScheduleOutput
	err := render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp)
	assert.NoError(t, err)

	assert.True(t, resp.Validation.IsValid)
	assert.Len(t, resp.ScheduledProcesses, 1)
	assert.Equal(t, "2026-01-11", resp.CompletionDates["B1"])

	mockPlanner.AssertExpectations(t)
}

// Тест: пустое тело — запрос с настройками по умолчанию
func TestExecuteScheduling_EmptyBody(t *testing.T) {
	mockPlanner := new(MockPlanner)

	mockPlanner.On("Execute", mock.Anything, scheduling.ScheduleRequest{}).
		Return(&scheduling.ScheduleOutput{}, nil)

	handler := ExecuteScheduling(slog.Default(), mockPlanner)

	req := httptest.NewRequest(http.MethodPost, "/api/scheduling/execute", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	mockPlanner.AssertExpectations(t)
}

// Тест: нет заказов в очереди (400)
func TestExecuteScheduling_NoPendingOrders(t *testing.T) {
	mockPlanner := new(MockPlanner)

	mockPlanner.On("Execute", mock.Anything, mock.Anything).
		Return(nil, scheduling.ErrNoPendingOrders)

	handler := ExecuteScheduling(slog.Default(), mockPlanner)

	req := httptest.NewRequest(http.MethodPost, "/api/scheduling/execute", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	mockPlanner.AssertExpectations(t)
}

// Тест: невалидный JSON
func TestExecuteScheduling_InvalidJSON(t *testing.T) {
	mockPlanner := new(MockPlanner)
	handler := ExecuteScheduling(slog.Default(), mockPlanner)

	req := httptest.NewRequest(http.MethodPost, "/api/scheduling/execute", strings.NewReader(`{not json`))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	mockPlanner.AssertNotCalled(t, "Execute")
}

// Тест: внутренняя ошибка (500)
func TestExecuteScheduling_InternalError(t *testing.T) {
	mockPlanner := new(MockPlanner)

	mockPlanner.On("Execute", mock.Anything, mock.Anything).
		Return(nil, errors.New("db down"))

	handler := ExecuteScheduling(slog.Default(), mockPlanner)

	req := httptest.NewRequest(http.MethodPost, "/api/scheduling/execute", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	mockPlanner.AssertExpectations(t)
}
