// Package identity は検証済みユーザー識別情報の型と伝播規約を提供する。
//
// GatewayがBearerトークンの検証後に識別情報をHTTPヘッダーとして付与し、
// 内部サービスはこのパッケージのミドルウェアを通じてのみ呼び出し元の身元を知る。
// ヘッダーを信頼できるのはGatewayが信頼境界として機能している場合のみであり、
// 内部サービスを外部ネットワークへ直接公開してはならない。
package identity
