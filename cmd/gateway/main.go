// API Gatewayサービスのエントリポイント。
// リクエストの認証とバックエンドサービスへの透過的な転送を担当する。
// 外部からアクセス可能な唯一のサービスであり、セキュリティの境界線となる。
package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/ordershub/ordershub/internal/gateway"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf(".envファイルが見つかりません。環境変数をそのまま使用します")
	}

	cfg := gateway.LoadConfig()
	server := gateway.NewServer(cfg)

	log.Printf("Gatewayサービスを起動します: :%s", cfg.Port)
	if err := server.Run(); err != nil {
		log.Fatalf("Gatewayサービスの起動に失敗: %v", err)
	}
}
