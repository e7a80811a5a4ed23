package orders

import (
	"context"
	"database/sql"
	"time"
)

// order はordersテーブルの1行。ItemsはJSON文字列として保持する。
type order struct {
	// ID は注文の一意識別子。
	ID string
	// UserID は注文したユーザーのID。
	UserID string
	// Items は注文品目のJSON配列。
	Items string
	// TotalAmount は合計金額。
	TotalAmount float64
	// CreatedAt は作成日時。
	CreatedAt time.Time
}

// store はordersテーブルへのクエリ実行オブジェクト。
type store struct {
	db *sql.DB
}

// newStore は新しいstoreを生成する。
func newStore(db *sql.DB) *store {
	return &store{db: db}
}

// createOrder は新しい注文を挿入する。
func (s *store) createOrder(ctx context.Context, o order) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO orders (id, user_id, items, total_amount) VALUES (?, ?, ?, ?)`,
		o.ID, o.UserID, o.Items, o.TotalAmount,
	)
	return err
}

// getOrderByID は注文IDで注文を取得する。
// 存在しない場合はsql.ErrNoRowsを返す。
func (s *store) getOrderByID(ctx context.Context, id string) (order, error) {
	var o order
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, items, total_amount, created_at FROM orders WHERE id = ?`,
		id,
	).Scan(&o.ID, &o.UserID, &o.Items, &o.TotalAmount, &o.CreatedAt)
	return o, err
}

// listOrdersByUserID は指定ユーザーの注文を作成日時の降順で取得する。
func (s *store) listOrdersByUserID(ctx context.Context, userID string) ([]order, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, items, total_amount, created_at FROM orders
		 WHERE user_id = ? ORDER BY created_at DESC, id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []order
	for rows.Next() {
		var o order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Items, &o.TotalAmount, &o.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	return result, rows.Err()
}
