// Package logging はslogのデフォルトロガーを設定する。
//
// debugレベルではtintによる人間向けのカラー出力、それ以外ではJSON出力を使用する。
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// ParseLevel はログレベル名をslog.Levelに変換する。空文字列はinfoとみなす。
func ParseLevel(name string) (slog.Level, error) {
	level := slog.LevelInfo
	if name == "" {
		return level, nil
	}
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return level, fmt.Errorf("不正なログレベルです: %q", name)
	}
	return level, nil
}

// New はwに出力するロガーを生成する。
func New(level slog.Level, w io.Writer) *slog.Logger {
	if level <= slog.LevelDebug {
		return slog.New(tint.NewHandler(w, &tint.Options{
			Level:       level,
			TimeFormat:  time.TimeOnly,
			AddSource:   true,
			NoColor:     !isTerminal(w),
			ReplaceAttr: replaceErrors,
		}))
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// Setup はレベル名に応じたロガーを生成し、slogのデフォルトに設定する。
func Setup(levelName string, w io.Writer) (*slog.Logger, error) {
	level, err := ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	logger := New(level, w)
	slog.SetDefault(logger)
	return logger, nil
}

// replaceErrors はerror型の属性をtintのエラー表示に置き換える。
func replaceErrors(_ []string, a slog.Attr) slog.Attr {
	if err, ok := a.Value.Any().(error); ok {
		aErr := tint.Err(err)
		aErr.Key = a.Key
		return aErr
	}
	return a
}

// isTerminal はwが端末に接続されたファイルかどうかを返す。
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
