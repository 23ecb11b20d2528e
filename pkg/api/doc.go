// Package api はフォーラムバックエンドのREST APIを呼び出す型付きクライアントを提供する。
//
// 各メソッドは1回のHTTPリクエストを発行し、バックエンドが返したJSONを
// そのままデシリアライズして返す。値の検証や変換は行わない。
//
// バックエンドが401を返した場合、クライアントはOnSessionExpiredで登録された
// 購読者を即座に呼び出してから、元のエラーを呼び出し元に返す。
// セッションフラグの解除やログイン画面への遷移は購読者（ホストアプリケーション）が行う。
package api
