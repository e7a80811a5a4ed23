package gateway

import (
	"testing"
)

// TestNewRouteRules はルーティング規則の構築を検証する。
func TestNewRouteRules(t *testing.T) {
	t.Parallel()

	cfg := Config{
		AuthServiceURL:   "http://auth:4001",
		OrdersServiceURL: "http://orders:4002",
	}
	rules := newRouteRules(cfg)

	if len(rules) != 2 {
		t.Fatalf("規則の数 = %d, want 2", len(rules))
	}

	// プレフィックスの長い順に並ぶこと
	for i := 1; i < len(rules); i++ {
		if len(rules[i-1].prefix) < len(rules[i].prefix) {
			t.Errorf("規則がプレフィックス長の降順になっていない: %q の後に %q", rules[i-1].prefix, rules[i].prefix)
		}
	}

	targets := make(map[string]string, len(rules))
	for _, r := range rules {
		targets[r.prefix] = r.target
		if !r.stripPrefix {
			t.Errorf("規則 %q のstripPrefixがfalse", r.prefix)
		}
	}
	if targets["/auth"] != "http://auth:4001" {
		t.Errorf("/authの転送先 = %q, want %q", targets["/auth"], "http://auth:4001")
	}
	if targets["/orders"] != "http://orders:4002" {
		t.Errorf("/ordersの転送先 = %q, want %q", targets["/orders"], "http://orders:4002")
	}
}

// TestRewritePath はパスの書き換えを検証する。
func TestRewritePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rule    routeRule
		inbound string
		want    string
	}{
		{
			name:    "プレフィックスを取り除く",
			rule:    routeRule{prefix: "/auth", stripPrefix: true},
			inbound: "/auth/login",
			want:    "/login",
		},
		{
			name:    "ネストしたパスでも残りを保持する",
			rule:    routeRule{prefix: "/orders", stripPrefix: true},
			inbound: "/orders/orders",
			want:    "/orders",
		},
		{
			name:    "プレフィックスのみの場合はルートパスになる",
			rule:    routeRule{prefix: "/auth", stripPrefix: true},
			inbound: "/auth",
			want:    "/",
		},
		{
			name:    "stripPrefixがfalseの場合はそのまま",
			rule:    routeRule{prefix: "/auth", stripPrefix: false},
			inbound: "/auth/login",
			want:    "/auth/login",
		},
		{
			name:    "深い階層のパス",
			rule:    routeRule{prefix: "/orders", stripPrefix: true},
			inbound: "/orders/orders/123/items",
			want:    "/orders/123/items",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.rule.rewritePath(tt.inbound); got != tt.want {
				t.Errorf("rewritePath(%q) = %q, want %q", tt.inbound, got, tt.want)
			}
		})
	}
}
