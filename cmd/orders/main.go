// 注文サービスのエントリポイント。
// 注文の作成と一覧取得を担当する。Gateway経由のアクセスのみを想定する。
package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/ordershub/ordershub/internal/orders"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf(".envファイルが見つかりません。環境変数をそのまま使用します")
	}

	cfg := orders.LoadConfig()
	server, err := orders.NewServer(cfg)
	if err != nil {
		log.Fatalf("注文サーバーの初期化に失敗: %v", err)
	}

	log.Printf("注文サービスを起動します: :%s", cfg.Port)
	if err := server.Run(); err != nil {
		log.Fatalf("注文サービスの起動に失敗: %v", err)
	}
}
