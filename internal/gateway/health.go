package gateway

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleRoot はGatewayの案内メッセージを返すハンドラを返す。認証不要。
func (s *Server) handleRoot() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "API Gateway online. Use /auth/* e /orders/*"})
	}
}

// handleHealth はGateway自身と内部サービスの状態を返すハンドラを返す。
// 内部サービスに到達できなくてもGateway自体は200を返す。
func (s *Server) handleHealth() gin.HandlerFunc {
	return func(c *gin.Context) {
		upstreams := make(map[string]string, len(s.healthClients))
		for name, client := range s.healthClients {
			if err := client.GetJSON(c.Request.Context(), "/health", nil); err != nil {
				log.Printf("ヘルスチェックに失敗: service=%s, error=%v", name, err)
				upstreams[name] = "unreachable"
				continue
			}
			upstreams[name] = "ok"
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"service":   "gateway",
			"upstreams": upstreams,
		})
	}
}
