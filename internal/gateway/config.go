package gateway

import (
	"os"
	"time"
)

// defaultUpstreamTimeout は内部サービス呼び出しの上限時間のデフォルト値。
// これを超えた呼び出しは504として呼び出し元に返す。
const defaultUpstreamTimeout = 10 * time.Second

// Config はGatewayサービスの設定値。
// プロセス起動時に一度だけ構築され、以降は変更されない。
type Config struct {
	// Port はサーバーのリッスンポート。
	Port string
	// AuthServiceURL は認証サービスのベースURL。
	AuthServiceURL string
	// OrdersServiceURL は注文サービスのベースURL。
	OrdersServiceURL string
	// JWTSecret はトークン検証用の共有シークレット。認証サービスと同じ値を設定する。
	JWTSecret string
	// AllowedOrigins はCORSで許可するオリジン。空の場合はすべて許可する。
	AllowedOrigins []string
	// UpstreamTimeout は内部サービス呼び出しの上限時間。
	UpstreamTimeout time.Duration
}

// LoadConfig は環境変数からGatewayの設定を読み込む。
func LoadConfig() Config {
	cfg := Config{
		Port:             getEnvOr("PORT", "8080"),
		AuthServiceURL:   getEnvOr("AUTH_SERVICE_URL", "http://localhost:4001"),
		OrdersServiceURL: getEnvOr("ORDERS_SERVICE_URL", "http://localhost:4002"),
		JWTSecret:        getEnvOr("SECRET_KEY", "dev-secret-key"),
		UpstreamTimeout:  defaultUpstreamTimeout,
	}
	if v := os.Getenv("FRONTEND_URL"); v != "" {
		cfg.AllowedOrigins = []string{v}
	}
	return cfg
}

// getEnvOr は環境変数を取得し、設定されていない場合はデフォルト値を返す。
func getEnvOr(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
