package httpclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// testPayload はテスト用のレスポンスペイロード。
type testPayload struct {
	// Status はテスト用のステータスフィールド。
	Status string `json:"status"`
	// Service はテスト用のサービス名フィールド。
	Service string `json:"service"`
}

// TestNew はNew関数でクライアントが正しく生成されることを検証する。
func TestNew(t *testing.T) {
	t.Parallel()

	client := New("http://localhost:4001", 10*time.Second)
	if client == nil {
		t.Fatal("New()がnilを返した")
	}
	if client.baseURL != "http://localhost:4001" {
		t.Errorf("baseURL = %q, want %q", client.baseURL, "http://localhost:4001")
	}
	if client.httpClient.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want %v", client.httpClient.Timeout, 10*time.Second)
	}
}

// TestGetJSON はGetJSON関数を検証する。
func TestGetJSON(t *testing.T) {
	t.Parallel()

	t.Run("正常にGETリクエストを送信してレスポンスを取得できること", func(t *testing.T) {
		t.Parallel()

		var receivedMethod, receivedPath string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			receivedMethod = r.Method
			receivedPath = r.URL.Path
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(testPayload{Status: "ok", Service: "auth"})
		}))
		defer ts.Close()

		client := New(ts.URL, 5*time.Second)
		var result testPayload

		if err := client.GetJSON(context.Background(), "/health", &result); err != nil {
			t.Fatalf("GetJSON()でエラーが発生: %v", err)
		}

		if receivedMethod != http.MethodGet {
			t.Errorf("Method = %q, want %q", receivedMethod, http.MethodGet)
		}
		if receivedPath != "/health" {
			t.Errorf("Path = %q, want %q", receivedPath, "/health")
		}
		if result.Status != "ok" {
			t.Errorf("result.Status = %q, want %q", result.Status, "ok")
		}
		if result.Service != "auth" {
			t.Errorf("result.Service = %q, want %q", result.Service, "auth")
		}
	})

	t.Run("GETリクエストにリクエストボディが含まれないこと", func(t *testing.T) {
		t.Parallel()

		var receivedBody []byte
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			receivedBody, _ = io.ReadAll(r.Body)
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(testPayload{Status: "ok"})
		}))
		defer ts.Close()

		client := New(ts.URL, 5*time.Second)
		var result testPayload

		if err := client.GetJSON(context.Background(), "/health", &result); err != nil {
			t.Fatalf("GetJSON()でエラーが発生: %v", err)
		}
		if len(receivedBody) != 0 {
			t.Errorf("GETリクエストにボディが含まれている: %q", string(receivedBody))
		}
	})

	t.Run("resultがnilの場合でもエラーにならないこと", func(t *testing.T) {
		t.Parallel()

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		}))
		defer ts.Close()

		client := New(ts.URL, 5*time.Second)
		if err := client.GetJSON(context.Background(), "/health", nil); err != nil {
			t.Fatalf("GetJSON()でエラーが発生: %v", err)
		}
	})

	t.Run("サーバーが500を返した場合にエラーが返ること", func(t *testing.T) {
		t.Parallel()

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"message":"internal server error"}`))
		}))
		defer ts.Close()

		client := New(ts.URL, 5*time.Second)
		var result testPayload

		if err := client.GetJSON(context.Background(), "/health", &result); err == nil {
			t.Fatal("GetJSON()がエラーを返すべきだが、nilが返った")
		}
	})

	t.Run("不正なJSONレスポンスでエラーが返ること", func(t *testing.T) {
		t.Parallel()

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{invalid json}`))
		}))
		defer ts.Close()

		client := New(ts.URL, 5*time.Second)
		var result testPayload

		if err := client.GetJSON(context.Background(), "/health", &result); err == nil {
			t.Fatal("GetJSON()がエラーを返すべきだが、nilが返った")
		}
	})

	t.Run("接続できないサーバーに対してエラーが返ること", func(t *testing.T) {
		t.Parallel()

		// 存在しないサーバーに接続を試みる
		client := New("http://127.0.0.1:1", time.Second)
		var result testPayload

		if err := client.GetJSON(context.Background(), "/health", &result); err == nil {
			t.Fatal("GetJSON()がエラーを返すべきだが、nilが返った")
		}
	})

	t.Run("キャンセルされたコンテキストでエラーが返ること", func(t *testing.T) {
		t.Parallel()

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(testPayload{Status: "ok"})
		}))
		defer ts.Close()

		client := New(ts.URL, 5*time.Second)
		ctx, cancel := context.WithCancel(context.Background())
		cancel() // 即座にキャンセル

		var result testPayload
		if err := client.GetJSON(ctx, "/health", &result); err == nil {
			t.Fatal("GetJSON()がエラーを返すべきだが、nilが返った")
		}
	})
}
