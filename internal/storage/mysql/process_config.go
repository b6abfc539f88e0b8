package mysql

import (
	"context"
	"fmt"

	"aps-train/internal/storage"
)

func (s *Storage) GetProcessConfig(ctx context.Context, modelID string) ([]storage.ProcessStep, error) {
	const op = "storage.mysql.GetProcessConfig"

	rows, err := s.db.QueryContext(ctx, `
		SELECT process_name, operation_type, duration_days, workers_required, sequence_order
		FROM aps_process_configs
		WHERE model_id = ?
		ORDER BY sequence_order`, modelID)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения техпроцесса модели %s: %w", op, modelID, err)
	}
	defer rows.Close()

	var steps []storage.ProcessStep
	for rows.Next() {
		var step storage.ProcessStep
		err := rows.Scan(
			&step.ProcessName,
			&step.OperationType,
			&step.DurationDays,
			&step.WorkersRequired,
			&step.SequenceOrder,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования шагов техпроцесса: %w", op, err)
		}
		steps = append(steps, step)
	}

	return steps, rows.Err()
}

// SaveProcessConfig полностью заменяет техпроцесс модели в одной транзакции.
func (s *Storage) SaveProcessConfig(ctx context.Context, modelID string, steps []storage.ProcessStep) error {
	const op = "storage.mysql.SaveProcessConfig"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `DELETE FROM aps_process_configs WHERE model_id = ?`, modelID)
	if err != nil {
		return fmt.Errorf("%s: ошибка удаления старого техпроцесса модели %s: %w", op, modelID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO aps_process_configs
		(model_id, process_name, operation_type, duration_days, workers_required, sequence_order)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("%s: ошибка подготовки запроса: %w", op, err)
	}
	defer stmt.Close()

	for _, step := range steps {
		_, err := stmt.ExecContext(ctx,
			modelID,
			step.ProcessName,
			step.OperationType,
			step.DurationDays,
			step.WorkersRequired,
			step.SequenceOrder,
		)
		if err != nil {
			return fmt.Errorf("%s: ошибка вставки шага %s модели %s: %w", op, step.ProcessName, modelID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit transaction: %w", op, err)
	}

	return nil
}

func (s *Storage) GetConfiguredModels(ctx context.Context) ([]string, error) {
	const op = "storage.mysql.GetConfiguredModels"

	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT model_id FROM aps_process_configs ORDER BY model_id`)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения списка моделей: %w", op, err)
	}
	defer rows.Close()

	var models []string
	for rows.Next() {
		var modelID string
		if err := rows.Scan(&modelID); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		models = append(models, modelID)
	}

	return models, rows.Err()
}
