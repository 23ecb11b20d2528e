// Package middleware はナビゲーションホスト（Webサーバー）で使用するGinミドルウェアを提供する。
//
// パニックリカバリ、リクエストIDの採番、リクエストログ、CORS設定、
// ルーターのガードを通したナビゲーションを含む。
package middleware
