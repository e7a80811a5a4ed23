package auth

import (
	"context"
	"database/sql"
	"errors"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// user はusersテーブルの1行。
type user struct {
	// ID はユーザーの一意識別子。
	ID string
	// Username はユーザー名。
	Username string
	// PasswordHash はbcryptでハッシュ化したパスワード。
	PasswordHash string
}

// store はusersテーブルへのクエリ実行オブジェクト。
type store struct {
	db *sql.DB
}

// newStore は新しいstoreを生成する。
func newStore(db *sql.DB) *store {
	return &store{db: db}
}

// createUser は新しいユーザーを挿入する。
// ユーザー名が既に存在する場合はUNIQUE制約違反のエラーを返す。
func (s *store) createUser(ctx context.Context, u user) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash) VALUES (?, ?, ?)`,
		u.ID, u.Username, u.PasswordHash,
	)
	return err
}

// isUniqueViolation はエラーがUNIQUE制約違反かどうかを判定する。
func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

// getUserByUsername はユーザー名でユーザーを取得する。
// 存在しない場合はsql.ErrNoRowsを返す。
func (s *store) getUserByUsername(ctx context.Context, username string) (user, error) {
	var u user
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash FROM users WHERE username = ?`,
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash)
	return u, err
}
