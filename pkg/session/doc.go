// Package session はクライアントのログイン状態（セッションフラグ）を管理する。
//
// セッションフラグはキー "user" の有無だけで表現され、値の中身は解釈しない。
// フラグの保存先はStoreインターフェースで抽象化されており、プロセス内のメモリか
// SQLiteファイル（ブラウザのローカルストレージ相当）を選択できる。
// フラグの設定・解除はSubscribeで登録した購読者にイベントとして通知される。
//
// バックエンドが発行するセッションCookieはJarが保持し、同じStoreに永続化する。
// 両方のStore実装はEventLogも実装し、通知されたイベントを追記専用の履歴として残せる。
package session
