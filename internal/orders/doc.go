// Package orders は注文の作成と一覧取得を提供する注文サービス。
// 呼び出し元の識別情報はGatewayが付与する信頼済みヘッダーからのみ取得する。
package orders
