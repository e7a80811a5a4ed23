package orders

import (
	"database/sql"
	"fmt"
)

// スキーマ定義。
const schema = `
CREATE TABLE IF NOT EXISTS orders (
    -- 注文の一意識別子
    id TEXT PRIMARY KEY,
    -- 注文したユーザーのID
    user_id TEXT NOT NULL,
    -- 注文品目のJSON配列
    items TEXT NOT NULL,
    -- 合計金額
    total_amount REAL NOT NULL,
    -- 作成日時
    created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

-- ユーザーIDでの検索を高速化するインデックス。
CREATE INDEX IF NOT EXISTS idx_orders_user_id
    ON orders(user_id);
`

// initSchema はSQLiteデータベースにスキーマを適用する。
func initSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("スキーマの適用に失敗: %w", err)
	}
	return nil
}
