package auth

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	"github.com/ordershub/ordershub/pkg/middleware"
	"github.com/ordershub/ordershub/pkg/token"
)

// Config は認証サービスの設定。
type Config struct {
	// Port はサーバーのリッスンポート。
	Port string
	// DBPath はSQLiteデータベースのパス。
	DBPath string
	// JWTSecret はトークン署名用のシークレット。
	JWTSecret string
	// AllowedOrigins はCORSで許可するオリジンの一覧。
	AllowedOrigins []string
}

// LoadConfig は環境変数から設定を読み込む。
func LoadConfig() Config {
	cfg := Config{
		Port:      getEnvOr("PORT", "4001"),
		DBPath:    getEnvOr("AUTH_DB_PATH", "/data/auth.db?_journal_mode=WAL&_busy_timeout=5000"),
		JWTSecret: getEnvOr("SECRET_KEY", "dev-secret-key"),
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

// Server は認証サービスのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// config はサーバーの設定。
	config Config
	// store はusersテーブルへのクエリ実行オブジェクト。
	store *store
	// db はSQLiteデータベース接続。
	db *sql.DB
}

// NewServer は新しい認証サーバーを生成する。
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
// Gateway側でプレフィックス /auth が取り除かれるため、ルートはトップレベルに置く。
func (s *Server) setupRoutes() {
	// ユーザー登録
	s.router.POST("/register", s.handleRegister())
	// ログイン
	s.router.POST("/login", s.handleLogin())
	// トークン検証
	s.router.GET("/validate", s.handleValidate())

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "auth"})
	})
}

// credentialsRequest は登録・ログインリクエストのJSON構造。
type credentialsRequest struct {
	// Username はユーザー名。
	Username string `json:"username"`
	// Password は平文のパスワード。
	Password string `json:"password"`
}

// handleRegister はユーザー登録を処理するハンドラを返す。
// パスワードをbcryptでハッシュ化して保存する。平文は保存しない。
func (s *Server) handleRegister() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req credentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password are required"})
			return
		}

		// ユーザー名の重複を確認する
		_, err := s.store.getUserByUsername(c.Request.Context(), req.Username)
		if err == nil {
			c.JSON(http.StatusConflict, gin.H{"message": "Username already exists"})
			return
		}
		if !errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error registering user"})
			log.Printf("ユーザー検索エラー: %v", err)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error registering user"})
			log.Printf("パスワードのハッシュ化エラー: %v", err)
			return
		}

		userID := uuid.New().String()
		if err := s.store.createUser(c.Request.Context(), user{
			ID:           userID,
			Username:     req.Username,
			PasswordHash: string(hash),
		}); err != nil {
			// 重複確認と挿入の間に同名ユーザーが作られた場合はUNIQUE制約違反になる
			if isUniqueViolation(err) {
				c.JSON(http.StatusConflict, gin.H{"message": "Username already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error registering user"})
			log.Printf("ユーザー作成エラー: %v", err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "User registered successfully",
			"userId":  userID,
		})
	}
}

// handleLogin はログインを処理するハンドラを返す。
// 認証に成功した場合はトークンを発行する。ユーザーが存在しない場合と
// パスワードが一致しない場合は同一のレスポンスを返し、ユーザーの存在を漏らさない。
func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req credentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password are required"})
			return
		}

		u, err := s.store.getUserByUsername(c.Request.Context(), req.Username)
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error logging in"})
			log.Printf("ユーザー検索エラー: %v", err)
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}

		tokenStr, err := token.Issue(s.config.JWTSecret, u.ID, u.Username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error logging in"})
			log.Printf("トークン発行エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"token":   tokenStr,
		})
	}
}

// handleValidate はトークン検証を処理するハンドラを返す。
// Gatewayを経由しない直接の検証リクエスト向けのエンドポイント。
func (s *Server) handleValidate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "No token provided"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) < 2 || parts[1] == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "No token provided"})
			return
		}

		id, err := token.Verify(s.config.JWTSecret, parts[1])
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"message": "Invalid or expired token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Token is valid",
			"user": gin.H{
				"userId":   id.UserID,
				"username": id.Username,
			},
		})
	}
}
