package identity

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Identity は検証済みのユーザー識別情報を表す。
// Gatewayがトークン検証後に生成し、リクエストの処理中だけ生存する。
type Identity struct {
	// UserID はユーザーの一意識別子。
	UserID string
	// Username はユーザー名。
	Username string
}

// 内部サービスへ識別情報を伝播するHTTPヘッダー。Gatewayだけが設定する。
const (
	// HeaderUserID はユーザーIDを運ぶヘッダー。
	HeaderUserID = "X-User-Id"
	// HeaderUsername はユーザー名を運ぶヘッダー。
	HeaderUsername = "X-Username"
)

// contextKeyIdentity はGinコンテキストにIdentityを格納するためのキー。
const contextKeyIdentity = "identity"

// SetHeaders は送信リクエストに識別ヘッダーを設定する。
func SetHeaders(h http.Header, id Identity) {
	h.Set(HeaderUserID, id.UserID)
	h.Set(HeaderUsername, id.Username)
}

// StripHeaders は受信リクエストから識別ヘッダーを取り除く。
// Gatewayは転送前に必ず呼び出し、外部から持ち込まれた識別情報のなりすましを防ぐ。
func StripHeaders(h http.Header) {
	h.Del(HeaderUserID)
	h.Del(HeaderUsername)
}

// SetContext はGinコンテキストにIdentityを設定する。
func SetContext(c *gin.Context, id Identity) {
	c.Set(contextKeyIdentity, id)
}

// FromContext はGinコンテキストからIdentityを取得する。
// 設定されていない場合は2番目の戻り値がfalseになる。
func FromContext(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(contextKeyIdentity)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

// Require はGatewayが設定した識別ヘッダーを必須とするGinミドルウェアを返す。
// ヘッダーが無い場合は401を返す。検証済みの場合はコンテキストにIdentityを設定する。
func Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(HeaderUserID)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Unauthorized: User ID not provided by Gateway",
			})
			return
		}

		SetContext(c, Identity{
			UserID:   userID,
			Username: c.GetHeader(HeaderUsername),
		})
		c.Next()
	}
}
