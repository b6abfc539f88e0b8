package mysql

import (
	"context"
	"fmt"

	"aps-train/internal/storage"
)

func (s *Storage) GetWorkerAvailability(ctx context.Context, startDate string, days int) ([]storage.WorkerAvailability, error) {
	const op = "storage.mysql.GetWorkerAvailability"

	rows, err := s.db.QueryContext(ctx, `
		SELECT DATE_FORMAT(date, '%Y-%m-%d'), available_workers
		FROM aps_worker_availability
		WHERE date >= ? AND date < DATE_ADD(?, INTERVAL ? DAY)
		ORDER BY date`, startDate, startDate, days)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения табеля работников: %w", op, err)
	}
	defer rows.Close()

	var availability []storage.WorkerAvailability
	for rows.Next() {
		var row storage.WorkerAvailability
		if err := rows.Scan(&row.Date, &row.AvailableWorkers); err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования табеля: %w", op, err)
		}
		availability = append(availability, row)
	}

	return availability, rows.Err()
}

func (s *Storage) SaveWorkerAvailability(ctx context.Context, rows []storage.WorkerAvailability) error {
	const op = "storage.mysql.SaveWorkerAvailability"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO aps_worker_availability (date, available_workers)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE available_workers = VALUES(available_workers)`)
	if err != nil {
		return fmt.Errorf("%s: ошибка подготовки запроса: %w", op, err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, row.Date, row.AvailableWorkers); err != nil {
			return fmt.Errorf("%s: ошибка сохранения табеля на %s: %w", op, row.Date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit transaction: %w", op, err)
	}

	return nil
}
