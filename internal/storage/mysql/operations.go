package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"aps-train/internal/storage"
)

func (s *Storage) GetOperations(ctx context.Context) ([]*storage.OperationType, error) {
	const op = "storage.mysql.GetOperations"

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, description, default_duration_days, default_workers_required, color
		FROM aps_operation_types
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения типов операций: %w", op, err)
	}
	defer rows.Close()

	var operations []*storage.OperationType
	for rows.Next() {
		var operation storage.OperationType
		err := rows.Scan(
			&operation.Name,
			&operation.Description,
			&operation.DefaultDurationDays,
			&operation.DefaultWorkersRequired,
			&operation.Color,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строк операций: %w", op, err)
		}
		operations = append(operations, &operation)
	}

	return operations, rows.Err()
}

func (s *Storage) GetOperation(ctx context.Context, name string) (*storage.OperationType, error) {
	const op = "storage.mysql.GetOperation"

	var operation storage.OperationType
	err := s.db.QueryRowContext(ctx, `
		SELECT name, description, default_duration_days, default_workers_required, color
		FROM aps_operation_types
		WHERE name = ?`, name,
	).Scan(
		&operation.Name,
		&operation.Description,
		&operation.DefaultDurationDays,
		&operation.DefaultWorkersRequired,
		&operation.Color,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: operation %s: %w", op, name, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &operation, nil
}

func (s *Storage) SaveOperation(ctx context.Context, operation *storage.OperationType) error {
	const op = "storage.mysql.SaveOperation"

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO aps_operation_types (name, description, default_duration_days, default_workers_required, color)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			description = VALUES(description),
			default_duration_days = VALUES(default_duration_days),
			default_workers_required = VALUES(default_workers_required),
			color = VALUES(color)`,
		operation.Name,
		operation.Description,
		operation.DefaultDurationDays,
		operation.DefaultWorkersRequired,
		operation.Color,
	)
	if err != nil {
		return fmt.Errorf("%s: ошибка сохранения операции %s: %w", op, operation.Name, err)
	}

	return nil
}

func (s *Storage) DeleteOperation(ctx context.Context, name string) error {
	const op = "storage.mysql.DeleteOperation"

	res, err := s.db.ExecContext(ctx, `DELETE FROM aps_operation_types WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("%s: ошибка удаления операции %s: %w", op, name, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: operation %s: %w", op, name, storage.ErrNotFound)
	}

	return nil
}
