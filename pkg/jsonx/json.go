// Package jsonx はAPIクライアントとWebホストで共通して使用するJSONコーデックを提供する。
//
// amd64/arm64ではsonicを使用し、それ以外のアーキテクチャではencoding/jsonにフォールバックする。
package jsonx

import (
	"encoding/json"
	"io"
	"runtime"

	"github.com/bytedance/sonic"
)

// Decoder はJSONデコーダーのインターフェース。
type Decoder interface {
	Decode(v any) error
}

var (
	// Marshal はvをJSONにシリアライズする。
	Marshal func(v any) ([]byte, error)
	// MarshalIndent はvをインデント付きのJSONにシリアライズする。
	MarshalIndent func(v any, prefix, indent string) ([]byte, error)
	// Unmarshal はJSONをvにデシリアライズする。
	Unmarshal func(data []byte, v any) error
	// NewDecoder はrから読み込むデコーダーを生成する。
	NewDecoder func(r io.Reader) Decoder

	usingSonic bool
)

func init() {
	if runtime.GOARCH == "amd64" || runtime.GOARCH == "arm64" {
		// sonic.ConfigStdはencoding/jsonと同じ出力（HTMLエスケープ、マップキーのソート）を保証する
		Marshal = sonic.ConfigStd.Marshal
		MarshalIndent = sonic.ConfigStd.MarshalIndent
		Unmarshal = sonic.ConfigStd.Unmarshal
		NewDecoder = func(r io.Reader) Decoder {
			return sonic.ConfigStd.NewDecoder(r)
		}
		usingSonic = true
		return
	}

	Marshal = json.Marshal
	MarshalIndent = json.MarshalIndent
	Unmarshal = json.Unmarshal
	NewDecoder = func(r io.Reader) Decoder {
		return json.NewDecoder(r)
	}
}

// UsingSonic はsonicが使用されているかどうかを返す。
func UsingSonic() bool {
	return usingSonic
}
