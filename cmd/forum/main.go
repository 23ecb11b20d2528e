// forumコマンドのエントリポイント。
// フォーラムバックエンドのクライアントとして、ログイン・投稿・コメント・プロフィールの操作と、
// ルート表を公開するナビゲーションホストの起動を行う。
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/nao1215/forum/internal/cli"
)

func main() {
	if err := cli.NewRunner().Run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
