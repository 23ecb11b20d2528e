package router

import "context"

// LoginPath はログイン画面のパス。
const LoginPath = "/login"

// Next はガードがナビゲーションの続行方法を指示する関数。
// 空文字列で続行、パスを渡すとそのパスへリダイレクトする。
type Next func(redirect string)

// Guard はナビゲーションの確定前に実行される関数。
// 必ずnextを1回だけ呼び出す。
type Guard func(ctx context.Context, to, from Location, next Next)

// AuthChecker はログイン状態を判定する。*session.Sessionが実装する。
type AuthChecker interface {
	IsAuthenticated(ctx context.Context) bool
}

// AuthGuard はログインが必要なルートへの未ログインでのナビゲーションを
// ログイン画面へリダイレクトするガードを返す。
// 参照するのは遷移先ルートのMeta.RequiresAuthとセッションフラグのみ。
func AuthGuard(checker AuthChecker) Guard {
	return func(ctx context.Context, to, _ Location, next Next) {
		if to.Route != nil && to.Route.Meta.RequiresAuth && !checker.IsAuthenticated(ctx) {
			next(LoginPath)
			return
		}
		next("")
	}
}
