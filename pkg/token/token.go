package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ordershub/ordershub/pkg/identity"
)

// issuer は発行するトークンのissクレーム値。
const issuer = "ordershub-auth"

// validityPeriod はトークンの有効期間。発行時刻から1時間で失効する。
const validityPeriod = time.Hour

// 検証失敗の種別。呼び出し元は運用上の必要がない限り、
// すべて同一の外部レスポンス（403）に丸めること。
var (
	// ErrMalformed はトークン文字列を期待する構造として解析できない場合のエラー。
	ErrMalformed = errors.New("トークンの形式が不正")
	// ErrBadSignature は署名が設定済みシークレットと一致しない場合のエラー。
	ErrBadSignature = errors.New("トークンの署名が不一致")
	// ErrExpired はトークンの有効期限が切れている場合のエラー。
	ErrExpired = errors.New("トークンの有効期限切れ")
)

// Claims はトークンのクレーム（ペイロード）を表す。
// JSONのキー名は認証サービスの外部契約であり変更してはならない。
type Claims struct {
	jwt.RegisteredClaims
	// UserID は認証済みユーザーの一意識別子。
	UserID string `json:"userId"`
	// Username はユーザー名。
	Username string `json:"username"`
}

// Issue はユーザー情報から署名付きトークンを生成する。
// 有効期間は呼び出し時刻から1時間。副作用は持たない。
func Issue(secret, userID, username string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(validityPeriod)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
		UserID:   userID,
		Username: username,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("トークンの署名に失敗: %w", err)
	}
	return signed, nil
}

// Verify はトークンを検証し、埋め込まれた識別情報を返す。
// 失敗はErrMalformed・ErrBadSignature・ErrExpiredのいずれかに分類される。
// 検証は状態を持たず、同じトークンを何度検証しても結果は変わらない。
func Verify(secret, tokenString string) (identity.Identity, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("想定外の署名アルゴリズム: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return identity.Identity{}, ErrMalformed
	case errors.Is(err, jwt.ErrTokenExpired):
		return identity.Identity{}, ErrExpired
	case err != nil:
		// 署名不一致・アルゴリズム不正などの残りの検証失敗
		return identity.Identity{}, ErrBadSignature
	case !parsed.Valid:
		return identity.Identity{}, ErrBadSignature
	}

	return identity.Identity{UserID: claims.UserID, Username: claims.Username}, nil
}
