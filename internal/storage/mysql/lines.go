package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"aps-train/internal/storage"
)

func (s *Storage) GetLines(ctx context.Context) ([]*storage.ProductionLine, error) {
	const op = "storage.mysql.GetLines"

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, operation_type, line_number, workers_required, is_active
		FROM aps_production_lines
		ORDER BY operation_type, line_number`)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения линий: %w", op, err)
	}
	defer rows.Close()

	return scanLines(op, rows)
}

func (s *Storage) GetLinesByOperation(ctx context.Context, operationType string) ([]*storage.ProductionLine, error) {
	const op = "storage.mysql.GetLinesByOperation"

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, operation_type, line_number, workers_required, is_active
		FROM aps_production_lines
		WHERE operation_type = ?
		ORDER BY line_number`, operationType)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения линий для операции %s: %w", op, operationType, err)
	}
	defer rows.Close()

	return scanLines(op, rows)
}

func (s *Storage) SaveLine(ctx context.Context, line *storage.ProductionLine) error {
	const op = "storage.mysql.SaveLine"

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO aps_production_lines (id, operation_type, line_number, workers_required, is_active)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			operation_type = VALUES(operation_type),
			line_number = VALUES(line_number),
			workers_required = VALUES(workers_required),
			is_active = VALUES(is_active)`,
		line.ID, line.OperationType, line.LineNumber, line.WorkersRequired, line.IsActive,
	)
	if err != nil {
		return fmt.Errorf("%s: ошибка сохранения линии %s: %w", op, line.ID, err)
	}

	return nil
}

func (s *Storage) DeleteLine(ctx context.Context, id string) error {
	const op = "storage.mysql.DeleteLine"

	res, err := s.db.ExecContext(ctx, `DELETE FROM aps_production_lines WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: ошибка удаления линии %s: %w", op, id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: line %s: %w", op, id, storage.ErrNotFound)
	}

	return nil
}

func scanLines(op string, rows *sql.Rows) ([]*storage.ProductionLine, error) {
	var lines []*storage.ProductionLine
	for rows.Next() {
		var line storage.ProductionLine
		err := rows.Scan(&line.ID, &line.OperationType, &line.LineNumber, &line.WorkersRequired, &line.IsActive)
		if err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строк линий: %w", op, err)
		}
		lines = append(lines, &line)
	}

	return lines, rows.Err()
}
