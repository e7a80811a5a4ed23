// Package token は署名付き有効期限付きの識別トークンの発行と検証を提供する。
//
// 認証サービスがログイン成功時にトークンを発行し、Gatewayが受信リクエストの
// Bearerトークンを検証する。トークンはステートレスであり、失効リストは持たない。
package token
