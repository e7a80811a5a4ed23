package gateway

// exemptRule は認証を免除するパスの宣言。
// methodが空文字列の場合はすべてのHTTPメソッドに一致する。
type exemptRule struct {
	method string
	path   string
}

// exemptRules は認証チェックの前に評価される免除パスの一覧。
// パスは完全一致で比較する（前方一致ではない）。
// ログイン・登録・ヘルスチェックは認証前に到達できる必要がある。
var exemptRules = []exemptRule{
	{path: "/"},
	{path: "/auth/login"},
	{path: "/auth/register"},
	{path: "/auth/health"},
	{path: "/orders/health"},
}

// isExempt は指定のメソッドとパスが認証免除の対象かどうかを返す。
func isExempt(method, path string) bool {
	return matchExempt(exemptRules, method, path)
}

// matchExempt は免除規則の一覧に対してメソッドとパスを照合する。
func matchExempt(rules []exemptRule, method, path string) bool {
	for _, r := range rules {
		if r.path != path {
			continue
		}
		if r.method == "" || r.method == method {
			return true
		}
	}
	return false
}
