// Package config はforumコマンドの設定を読み込む。
//
// 設定は既定値、設定ファイル（forum.yaml）、.envファイル、FORUM_接頭辞の環境変数、
// コマンドラインフラグの順に上書きされる。
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// defaultBaseURL はバックエンドの既定のベースURL。
// ビルド時に -ldflags "-X github.com/nao1215/forum/internal/config.defaultBaseURL=..." で上書きできる。
var defaultBaseURL = "http://localhost:8000"

// 設定名と環境変数の接頭辞。
const (
	appName   = "forum"
	envPrefix = "FORUM"
)

// セッションフラグの保存先。
const (
	// StoreSQLite はデータディレクトリのSQLiteファイルに保存する。
	StoreSQLite = "sqlite"
	// StoreMemory はプロセス内のメモリに保存する。
	StoreMemory = "memory"
)

// Config はforumコマンドの設定。
type Config struct {
	// BaseURL はバックエンドのベースURL。
	BaseURL string `mapstructure:"base_url"`
	// DataDir はセッション状態を保存するディレクトリ。
	DataDir string `mapstructure:"data_dir"`
	// LogLevel はログレベル（debug, info, warn, error）。
	LogLevel string `mapstructure:"log_level"`
	// Store はセッションフラグの保存先（sqlite, memory）。
	Store string `mapstructure:"store"`
	// Web はナビゲーションホストの設定。
	Web WebConfig `mapstructure:"web"`
}

// WebConfig はナビゲーションホストの設定。
type WebConfig struct {
	// Addr は待ち受けアドレス。
	Addr string `mapstructure:"addr"`
	// AllowedOrigins はCORSで許可するビュー層のオリジン。
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DefaultBaseURL はビルド時に設定されたバックエンドの既定のベースURLを返す。
func DefaultBaseURL() string {
	return defaultBaseURL
}

// BindFlags は設定を上書きするフラグをflagsに登録する。
func BindFlags(flags *pflag.FlagSet) {
	flags.StringP("config", "c", "", "設定ファイルのパス（既定: ./forum.yaml, $HOME/.forum/forum.yaml）")
	flags.String("base-url", "", "バックエンドのベースURL（既定: "+defaultBaseURL+"）")
	flags.String("data-dir", "", "セッション状態を保存するディレクトリ（既定: $HOME/.forum）")
	flags.String("log-level", "", "ログレベル（debug, info, warn, error）")
	flags.String("store", "", "セッションフラグの保存先（sqlite, memory）")
}

// flagKeys はフラグ名と設定キーの対応。
var flagKeys = map[string]string{
	"base-url":  "base_url",
	"data-dir":  "data_dir",
	"log-level": "log_level",
	"store":     "store",
}

// Load は設定を読み込む。flagsにはBindFlagsで登録したフラグセットを渡す。
// 明示的に変更されたフラグだけが他の設定を上書きする。
func Load(flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf(".envファイルの読み込みに失敗: %w", err)
	}

	v := viper.New()
	v.SetDefault("base_url", defaultBaseURL)
	v.SetDefault("data_dir", defaultDataDir())
	v.SetDefault("log_level", "info")
	v.SetDefault("store", StoreSQLite)
	v.SetDefault("web.addr", ":3000")
	v.SetDefault("web.allowed_origins", []string{})

	configFile := ""
	if flags != nil {
		configFile, _ = flags.GetString("config")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(appName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, "."+appName))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("設定ファイルの読み込みに失敗: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("フラグ %s のバインドに失敗: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("設定の変換に失敗: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate は設定値を検証する。
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base_url が空です")
	}
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
	switch c.Store {
	case StoreSQLite:
		if c.DataDir == "" {
			return errors.New("store=sqlite の場合は data_dir が必要です")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("不明なstoreです: %q", c.Store)
	}
	if c.Web.Addr == "" {
		return errors.New("web.addr が空です")
	}
	return nil
}

// StatePath はセッション状態を保存するSQLiteファイルのパスを返す。
func (c *Config) StatePath() string {
	return filepath.Join(c.DataDir, "state.db")
}

// defaultDataDir はホームディレクトリ配下の既定のデータディレクトリを返す。
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + appName
	}
	return filepath.Join(home, "."+appName)
}
