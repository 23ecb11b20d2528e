package jsonx

import (
	"runtime"
	"strings"
	"testing"
)

// TestMarshal はMarshalの出力がencoding/jsonと互換であることを検証する。
func TestMarshal(t *testing.T) {
	t.Parallel()

	t.Run("nilポインタがnullとして出力されること", func(t *testing.T) {
		t.Parallel()

		body := struct {
			Content  string  `json:"content"`
			ImageURL *string `json:"image_url"`
		}{Content: "hello"}

		got, err := Marshal(body)
		if err != nil {
			t.Fatalf("Marshal()でエラーが発生: %v", err)
		}
		if string(got) != `{"content":"hello","image_url":null}` {
			t.Errorf("Marshal() = %s, want %s", got, `{"content":"hello","image_url":null}`)
		}
	})

	t.Run("マップのキーがソートされて出力されること", func(t *testing.T) {
		t.Parallel()

		got, err := Marshal(map[string]int{"b": 2, "a": 1})
		if err != nil {
			t.Fatalf("Marshal()でエラーが発生: %v", err)
		}
		if string(got) != `{"a":1,"b":2}` {
			t.Errorf("Marshal() = %s, want %s", got, `{"a":1,"b":2}`)
		}
	})
}

// TestMarshalIndent はインデント付きの出力を検証する。
func TestMarshalIndent(t *testing.T) {
	t.Parallel()

	got, err := MarshalIndent(map[string]int{"b": 2, "a": 1}, "", "  ")
	if err != nil {
		t.Fatalf("MarshalIndent()でエラーが発生: %v", err)
	}
	want := "{\n  \"a\": 1,\n  \"b\": 2\n}"
	if string(got) != want {
		t.Errorf("MarshalIndent() = %q, want %q", got, want)
	}
}

// TestNewDecoder はNewDecoderでストリームからデコードできることを検証する。
func TestNewDecoder(t *testing.T) {
	t.Parallel()

	var v struct {
		ID int `json:"id"`
	}
	if err := NewDecoder(strings.NewReader(`{"id":42}`)).Decode(&v); err != nil {
		t.Fatalf("Decode()でエラーが発生: %v", err)
	}
	if v.ID != 42 {
		t.Errorf("ID = %d, want %d", v.ID, 42)
	}
}

// TestUsingSonic はアーキテクチャに応じてsonicが選択されることを検証する。
func TestUsingSonic(t *testing.T) {
	t.Parallel()

	want := runtime.GOARCH == "amd64" || runtime.GOARCH == "arm64"
	if UsingSonic() != want {
		t.Errorf("UsingSonic() = %v, want %v", UsingSonic(), want)
	}
}
