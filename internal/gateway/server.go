package gateway

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ordershub/ordershub/pkg/httpclient"
	"github.com/ordershub/ordershub/pkg/middleware"
)

// Server はAPI GatewayサービスのHTTPサーバー。
// リクエスト間で共有するのは不変の設定とルーティング規則、
// および内部サービスへの接続プールだけであり、ロックは必要ない。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// config は起動時に構築された不変の設定値。
	config Config
	// routes は転送先を決めるルーティング規則。プレフィックスの長い順に並ぶ。
	routes []routeRule
	// upstream は内部サービスへの転送に使う共有HTTPクライアント。
	upstream *http.Client
	// healthClients は内部サービスのヘルスチェック用クライアント。
	healthClients map[string]*httpclient.Client
}

// NewServer は新しいGatewayサーバーを生成する。
func NewServer(cfg Config) *Server {
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	s := &Server{
		router:   router,
		config:   cfg,
		routes:   newRouteRules(cfg),
		upstream: &http.Client{Timeout: cfg.UpstreamTimeout},
		healthClients: map[string]*httpclient.Client{
			"auth":   httpclient.New(cfg.AuthServiceURL, cfg.UpstreamTimeout),
			"orders": httpclient.New(cfg.OrdersServiceURL, cfg.UpstreamTimeout),
		},
	}
	s.setupRoutes()

	return s
}

// Run はHTTPサーバーを起動する。
func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%s", s.config.Port))
}

// setupRoutes はAPIルーティングを設定する。
func (s *Server) setupRoutes() {
	// Gateway自身が応答するエンドポイント（認証不要）
	s.router.GET("/", s.handleRoot())
	s.router.GET("/health", s.handleHealth())

	// 転送ルート。認証ゲートを通過したリクエストだけが内部サービスへ届く
	for _, rule := range s.routes {
		s.router.Any(rule.prefix, s.authGate(), s.handleForward(rule))
		s.router.Any(rule.prefix+"/*path", s.authGate(), s.handleForward(rule))
	}

	// どの規則にも一致しないパスには転送先が存在しない。
	// トークンの有無にかかわらず404を返し、内部サービスには接続しない。
	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})
}
