// Package gateway はAPI Gatewayサービスの内部実装を提供する。
//
// 外部からアクセス可能な唯一のサービスであり、セキュリティの境界線として
// 機能する。受信リクエストをBearerトークンで認証し、検証済みの識別情報を
// ヘッダーとして付与した上で、パスのプレフィックスに応じて認証サービスまたは
// 注文サービスへ転送する。レスポンスはそのまま呼び出し元へ中継する。
package gateway
