// Package httpclient は内部サービスへのJSON APIの呼び出しを提供する。
//
// Gatewayが内部サービスのヘルスチェックを行う際に使用する。
// リクエストの転送経路そのものはボディとヘッダーを素通しする必要があるため、
// このクライアントは使用しない。
package httpclient
