// 認証サービスのエントリポイント。
// ユーザー登録・ログイン・トークン発行を担当する。
package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/ordershub/ordershub/internal/auth"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf(".envファイルが見つかりません。環境変数をそのまま使用します")
	}

	cfg := auth.LoadConfig()
	server, err := auth.NewServer(cfg)
	if err != nil {
		log.Fatalf("認証サーバーの初期化に失敗: %v", err)
	}

	log.Printf("認証サービスを起動します: :%s", cfg.Port)
	if err := server.Run(); err != nil {
		log.Fatalf("認証サービスの起動に失敗: %v", err)
	}
}
