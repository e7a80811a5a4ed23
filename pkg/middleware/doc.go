// Package middleware はGinベースのHTTP APIで使用する共通ミドルウェアを提供する。
//
// パニックリカバリとCORS設定など、Gateway・認証サービス・注文サービスで
// 共通して使用するミドルウェアを含む。
package middleware
