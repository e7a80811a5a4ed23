// Package auth はユーザー登録・ログイン・トークン検証を提供する認証サービス。
// パスワードはbcryptでハッシュ化して保存し、ログイン成功時にHS256署名のトークンを発行する。
package auth
