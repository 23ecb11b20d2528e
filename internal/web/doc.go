// Package web はルート表をHTTPで公開するナビゲーションホストを提供する。
//
// ページのパスへのGETリクエストはルーターのガードを通してナビゲーションされ、
// 表示するコンポーネント名、パスパラメータ、APIクライアントで取得したデータを
// JSONのページドキュメントとして返す。ビュー層はこのドキュメントを描画する。
// バックエンドが401を返した場合はログイン画面へ302でリダイレクトする。
package web
