package orders

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/ordershub/ordershub/pkg/identity"
	"github.com/ordershub/ordershub/pkg/middleware"
)

// Config は注文サービスの設定。
type Config struct {
	// Port はサーバーのリッスンポート。
	Port string
	// DBPath はSQLiteデータベースのパス。
	DBPath string
	// FeatureDiscount は割引機能のフィーチャーフラグ。
	FeatureDiscount bool
	// AllowedOrigins はCORSで許可するオリジンの一覧。
	AllowedOrigins []string
}

// LoadConfig は環境変数から設定を読み込む。
func LoadConfig() Config {
	cfg := Config{
		Port:            getEnvOr("PORT", "4002"),
		DBPath:          getEnvOr("ORDERS_DB_PATH", "/data/orders.db?_journal_mode=WAL&_busy_timeout=5000"),
		FeatureDiscount: os.Getenv("FEATURE_DISCOUNT") == "true",
	}
	if origin := os.Getenv("FRONTEND_URL"); origin != "" {
		cfg.AllowedOrigins = []string{origin}
	}
	return cfg
}

// getEnvOr は環境変数を取得し、未設定の場合はデフォルト値を返す。
func getEnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Server は注文サービスのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// config はサーバーの設定。
	config Config
	// store はordersテーブルへのクエリ実行オブジェクト。
	store *store
	// db はSQLiteデータベース接続。
	db *sql.DB
}

// NewServer は新しい注文サーバーを生成する。
// SQLiteデータベースの初期化とスキーマ作成を行う。
func NewServer(cfg Config) (*Server, error) {
	sqlDB, err := sql.Open("sqlite", cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}

	if err := initSchema(sqlDB); err != nil {
		return nil, fmt.Errorf("スキーマ初期化に失敗: %w", err)
	}

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	s := &Server{
		router: router,
		config: cfg,
		store:  newStore(sqlDB),
		db:     sqlDB,
	}
	s.setupRoutes()

	return s, nil
}

// Run はHTTPサーバーを起動する。
func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%s", s.config.Port))
}

// setupRoutes はAPIルーティングを設定する。
// 注文APIはGatewayが付与する識別ヘッダーを必須とする。
func (s *Server) setupRoutes() {
	orders := s.router.Group("/orders")
	orders.Use(identity.Require())
	{
		// 注文作成
		orders.POST("", s.handleCreate())
		// 注文一覧取得
		orders.GET("", s.handleList())
		// 注文詳細取得
		orders.GET("/:id", s.handleGetByID())
	}

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":           "ok",
			"service":          "orders",
			"feature_discount": s.config.FeatureDiscount,
		})
	})
}

// orderItem は注文品目のJSON構造。
type orderItem struct {
	// Name は品目名。
	Name string `json:"name"`
	// Quantity は数量。
	Quantity int `json:"quantity"`
	// Price は単価。
	Price float64 `json:"price"`
}

// createOrderRequest は注文作成リクエストのJSON構造。
type createOrderRequest struct {
	// Items は注文品目の一覧。
	Items []orderItem `json:"items"`
	// TotalAmount は合計金額。
	TotalAmount float64 `json:"totalAmount"`
}

// orderResponse は注文のJSONレスポンス構造。
type orderResponse struct {
	// ID は注文の一意識別子。
	ID string `json:"id"`
	// UserID は注文したユーザーのID。
	UserID string `json:"userId"`
	// Items は注文品目の一覧。
	Items []orderItem `json:"items"`
	// TotalAmount は合計金額。
	TotalAmount float64 `json:"totalAmount"`
	// CreatedAt は作成日時。
	CreatedAt string `json:"createdAt"`
}

// toOrderResponse はDB行をJSONレスポンスに変換する。
func toOrderResponse(o order) (orderResponse, error) {
	var items []orderItem
	if err := json.Unmarshal([]byte(o.Items), &items); err != nil {
		return orderResponse{}, fmt.Errorf("品目JSONのパースに失敗: %w", err)
	}
	return orderResponse{
		ID:          o.ID,
		UserID:      o.UserID,
		Items:       items,
		TotalAmount: o.TotalAmount,
		CreatedAt:   o.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}, nil
}

// handleCreate は注文作成を処理するハンドラを返す。
func (s *Server) handleCreate() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity.FromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: User ID not provided by Gateway"})
			return
		}

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil || len(req.Items) == 0 || req.TotalAmount <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Items and totalAmount are required"})
			return
		}

		itemsJSON, err := json.Marshal(req.Items)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating order"})
			log.Printf("品目のシリアライズエラー: %v", err)
			return
		}

		orderID := uuid.New().String()
		if err := s.store.createOrder(c.Request.Context(), order{
			ID:          orderID,
			UserID:      id.UserID,
			Items:       string(itemsJSON),
			TotalAmount: req.TotalAmount,
		}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating order"})
			log.Printf("注文作成エラー: %v", err)
			return
		}

		// 作成した注文をDBから取得してレスポンスを返す
		created, err := s.store.getOrderByID(c.Request.Context(), orderID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating order"})
			log.Printf("注文取得エラー: %v", err)
			return
		}

		resp, err := toOrderResponse(created)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating order"})
			log.Printf("注文レスポンス変換エラー: %v", err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":   "Order created successfully",
			"order":     resp,
			"createdBy": id.Username,
		})
	}
}

// handleList は呼び出し元ユーザーの注文一覧取得を処理するハンドラを返す。
func (s *Server) handleList() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity.FromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: User ID not provided by Gateway"})
			return
		}

		list, err := s.store.listOrdersByUserID(c.Request.Context(), id.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching orders"})
			log.Printf("注文一覧取得エラー: %v", err)
			return
		}

		responses := make([]orderResponse, 0, len(list))
		for _, o := range list {
			resp, err := toOrderResponse(o)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching orders"})
				log.Printf("注文レスポンス変換エラー: %v", err)
				return
			}
			responses = append(responses, resp)
		}

		c.JSON(http.StatusOK, gin.H{"orders": responses})
	}
}

// handleGetByID は注文詳細取得を処理するハンドラを返す。
// 他のユーザーの注文は、存在の有無を漏らさないため未発見として扱う。
func (s *Server) handleGetByID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity.FromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: User ID not provided by Gateway"})
			return
		}

		o, err := s.store.getOrderByID(c.Request.Context(), c.Param("id"))
		if errors.Is(err, sql.ErrNoRows) || (err == nil && o.UserID != id.UserID) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching order"})
			log.Printf("注文取得エラー: %v", err)
			return
		}

		resp, err := toOrderResponse(o)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching order"})
			log.Printf("注文レスポンス変換エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"order": resp})
	}
}
