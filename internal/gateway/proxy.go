package gateway

import (
	"context"
	"errors"
	"io"
	"log"
	"net"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ordershub/ordershub/pkg/identity"
)

// routeRule は受信パスのプレフィックスと転送先サービスの対応を表す。
// プロセス起動後は不変。
type routeRule struct {
	// prefix は一致させるパスのプレフィックス（例: "/auth"）。
	prefix string
	// target は転送先サービスのベースURL。
	target string
	// stripPrefix がtrueの場合、転送時にプレフィックスを取り除く。
	stripPrefix bool
}

// newRouteRules は設定からルーティング規則を構築する。
// プレフィックスの長い順に並べ、最長一致でルートが選択されることを保証する。
func newRouteRules(cfg Config) []routeRule {
	rules := []routeRule{
		{prefix: "/auth", target: cfg.AuthServiceURL, stripPrefix: true},
		{prefix: "/orders", target: cfg.OrdersServiceURL, stripPrefix: true},
	}
	sort.Slice(rules, func(i, j int) bool {
		return len(rules[i].prefix) > len(rules[j].prefix)
	})
	return rules
}

// rewritePath はルーティング規則に従って転送先のパスを組み立てる。
// プレフィックスを取り除いた結果が空になる場合は "/" とする。
func (r routeRule) rewritePath(inbound string) string {
	if !r.stripPrefix {
		return inbound
	}
	rest := strings.TrimPrefix(inbound, r.prefix)
	if rest == "" {
		rest = "/"
	}
	return rest
}

// hopByHopHeaders は転送時に中継しないコネクション単位のヘッダー。
var hopByHopHeaders = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

// handleForward はルーティング規則に従ってリクエストを内部サービスへ転送する
// ハンドラを返す。メソッド・クエリ・ボディ・ヘッダーは変更せずに引き継ぎ、
// 認証済みの場合のみ検証済みの識別情報をヘッダーとして付与する。
// 内部サービスのレスポンスはステータス・ヘッダー・ボディをそのまま中継する。
func (s *Server) handleForward(rule routeRule) gin.HandlerFunc {
	return func(c *gin.Context) {
		outboundURL := rule.target + rule.rewritePath(c.Request.URL.Path)
		if c.Request.URL.RawQuery != "" {
			outboundURL += "?" + c.Request.URL.RawQuery
		}

		// 呼び出し元のコンテキストを使うことで、切断時に転送中の呼び出しも中断される
		req, err := http.NewRequestWithContext(c.Request.Context(), c.Request.Method, outboundURL, c.Request.Body)
		if err != nil {
			log.Printf("転送リクエストの作成に失敗: url=%s, error=%v", outboundURL, err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}

		req.Header = c.Request.Header.Clone()
		for _, h := range hopByHopHeaders {
			req.Header.Del(h)
		}

		// 識別ヘッダーを設定できるのはGatewayだけ。外部から持ち込まれた値は必ず破棄する。
		identity.StripHeaders(req.Header)
		if id, ok := identity.FromContext(c); ok {
			identity.SetHeaders(req.Header, id)
		}

		resp, err := s.upstream.Do(req)
		if err != nil {
			s.relayUpstreamError(c, outboundURL, err)
			return
		}
		defer resp.Body.Close()

		s.relay(c, resp)
	}
}

// relay は内部サービスのレスポンスをそのまま呼び出し元へ中継する。
func (s *Server) relay(c *gin.Context, resp *http.Response) {
	header := c.Writer.Header()
	for key, values := range resp.Header {
		for _, v := range values {
			header.Add(key, v)
		}
	}
	for _, h := range hopByHopHeaders {
		header.Del(h)
	}

	c.Status(resp.StatusCode)
	if _, err := io.Copy(c.Writer, resp.Body); err != nil {
		log.Printf("レスポンスボディの中継に失敗: %v", err)
	}
}

// relayUpstreamError は内部サービスとの通信エラーを502または504に変換して返す。
// リトライは行わない。
func (s *Server) relayUpstreamError(c *gin.Context, url string, err error) {
	log.Printf("転送エラー: url=%s, error=%v", url, err)

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		c.JSON(http.StatusGatewayTimeout, gin.H{"message": "Gateway timeout"})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"message": "Bad gateway"})
}
