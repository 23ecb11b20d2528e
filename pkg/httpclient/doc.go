// Package httpclient はフォーラムバックエンドとのJSON通信を行うHTTPクライアントを提供する。
//
// ベースURL、共通ヘッダー、Cookie Jar（credentials: include相当）、
// レスポンスインターセプターを持ち、APIクライアントの各メソッドが
// 1回のHTTPリクエストを発行するための共通処理を担う。リトライは行わない。
package httpclient
