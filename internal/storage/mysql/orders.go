package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"aps-train/internal/storage"
)

const selectOrderColumns = `
	SELECT id, model_type,
	       DATE_FORMAT(due_date, '%Y-%m-%d'),
	       priority, status,
	       DATE_FORMAT(created_at, '%Y-%m-%d'),
	       DATE_FORMAT(completed_at, '%Y-%m-%d')
	FROM aps_orders`

func (s *Storage) GetAll(ctx context.Context) ([]*storage.Order, error) {
	const op = "storage.mysql.GetAll"

	rows, err := s.db.QueryContext(ctx, selectOrderColumns+` ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения заказов: %w", op, err)
	}
	defer rows.Close()

	return scanOrders(op, rows)
}

func (s *Storage) GetByID(ctx context.Context, id string) (*storage.Order, error) {
	const op = "storage.mysql.GetByID"

	row := s.db.QueryRowContext(ctx, selectOrderColumns+` WHERE id = ?`, id)

	order, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: order %s: %w", op, id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return order, nil
}

func (s *Storage) GetByStatus(ctx context.Context, status storage.OrderStatus) ([]*storage.Order, error) {
	const op = "storage.mysql.GetByStatus"

	rows, err := s.db.QueryContext(ctx, selectOrderColumns+` WHERE status = ? ORDER BY created_at, id`, string(status))
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения заказов по статусу %s: %w", op, status, err)
	}
	defer rows.Close()

	return scanOrders(op, rows)
}

func (s *Storage) GetPendingOrdersSorted(ctx context.Context) ([]*storage.Order, error) {
	const op = "storage.mysql.GetPendingOrdersSorted"

	rows, err := s.db.QueryContext(ctx,
		selectOrderColumns+` WHERE status = ? ORDER BY priority, due_date, id`,
		string(storage.StatusPending),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения очереди заказов: %w", op, err)
	}
	defer rows.Close()

	return scanOrders(op, rows)
}

func (s *Storage) SaveOrder(ctx context.Context, order *storage.Order) error {
	const op = "storage.mysql.SaveOrder"

	_, err := s.db.ExecContext(ctx, upsertOrderQuery, orderArgs(order)...)
	if err != nil {
		return fmt.Errorf("%s: ошибка сохранения заказа %s: %w", op, order.ID, err)
	}

	return nil
}

func (s *Storage) SaveOrders(ctx context.Context, orders []*storage.Order) error {
	const op = "storage.mysql.SaveOrders"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertOrderQuery)
	if err != nil {
		return fmt.Errorf("%s: ошибка подготовки запроса: %w", op, err)
	}
	defer stmt.Close()

	for _, order := range orders {
		if _, err := stmt.ExecContext(ctx, orderArgs(order)...); err != nil {
			return fmt.Errorf("%s: ошибка сохранения заказа %s: %w", op, order.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit transaction: %w", op, err)
	}

	return nil
}

func (s *Storage) DeleteOrder(ctx context.Context, id string) error {
	const op = "storage.mysql.DeleteOrder"

	res, err := s.db.ExecContext(ctx, `DELETE FROM aps_orders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: ошибка удаления заказа %s: %w", op, id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: order %s: %w", op, id, storage.ErrNotFound)
	}

	return nil
}

func (s *Storage) UpdateOrderStatus(ctx context.Context, id string, status storage.OrderStatus) error {
	const op = "storage.mysql.UpdateOrderStatus"

	query := `UPDATE aps_orders SET status = ? WHERE id = ?`
	args := []interface{}{string(status), id}
	if status == storage.StatusCompleted {
		query = `UPDATE aps_orders SET status = ?, completed_at = CURDATE() WHERE id = ?`
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: ошибка обновления статуса заказа %s: %w", op, id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: order %s: %w", op, id, storage.ErrNotFound)
	}

	return nil
}

const upsertOrderQuery = `
	INSERT INTO aps_orders (id, model_type, due_date, priority, status, created_at, completed_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON DUPLICATE KEY UPDATE
		model_type = VALUES(model_type),
		due_date = VALUES(due_date),
		priority = VALUES(priority),
		status = VALUES(status),
		completed_at = VALUES(completed_at)`

func orderArgs(order *storage.Order) []interface{} {
	var completedAt sql.NullString
	if order.CompletedAt != nil {
		completedAt = sql.NullString{String: *order.CompletedAt, Valid: true}
	}

	return []interface{}{
		order.ID,
		order.ModelType,
		order.DueDate,
		order.Priority,
		string(order.Status),
		order.CreatedAt,
		completedAt,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*storage.Order, error) {
	var (
		order       storage.Order
		status      string
		completedAt sql.NullString
	)

	err := row.Scan(&order.ID, &order.ModelType, &order.DueDate, &order.Priority, &status, &order.CreatedAt, &completedAt)
	if err != nil {
		return nil, err
	}

	order.Status = storage.OrderStatus(status)
	if completedAt.Valid {
		order.CompletedAt = &completedAt.String
	}

	return &order, nil
}

func scanOrders(op string, rows *sql.Rows) ([]*storage.Order, error) {
	var orders []*storage.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строк заказов: %w", op, err)
		}
		orders = append(orders, order)
	}

	return orders, rows.Err()
}
