// Package router はクライアントのルート表とナビゲーションガードを提供する。
//
// ルート表は構築後に変更されない。ナビゲーションのたびにBeforeEachで登録した
// ガードが順に実行され、最初にリダイレクトを指示したガードの結果が採用される。
// AuthGuardはルートのMeta.RequiresAuthとセッションフラグだけを参照し、
// 未ログインの場合にログイン画面へリダイレクトする。
package router
