package api

import (
	"fmt"
	"net/http/cookiejar"

	"golang.org/x/net/publicsuffix"
)

// newMemoryJar はプロセス内のメモリだけにCookieを保持するJarを生成する。
func newMemoryJar() (*cookiejar.Jar, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("Cookie Jarの生成に失敗: %w", err)
	}
	return jar, nil
}
