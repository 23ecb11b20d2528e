package router

import (
	"errors"
	"fmt"
	"maps"
	"net/url"
	"strings"
)

// ErrNotFound はパスに一致するルートが存在しないことを示す。
var ErrNotFound = errors.New("route not found")

// Meta はルートに付与するメタ情報。
type Meta struct {
	// RequiresAuth はルートの表示にログインが必要かどうか。
	RequiresAuth bool `json:"requiresAuth"`
}

// Route はルート表の1エントリ。
type Route struct {
	// Path はルートのパスパターン。":name" のセグメントはパラメータとして扱う。
	Path string `json:"path"`
	// Name はルート名。
	Name string `json:"name"`
	// Component は表示するビューコンポーネント名。
	Component string `json:"component"`
	// Meta はルートのメタ情報。
	Meta Meta `json:"meta"`
}

// DefaultRoutes は出荷時のルート表を返す。
// どのルートもRequiresAuthがfalseのため、AuthGuardがリダイレクトすることはない。
func DefaultRoutes() []Route {
	return []Route{
		{Path: "/", Name: "Home", Component: "Home", Meta: Meta{RequiresAuth: false}},
		{Path: "/login", Name: "Login", Component: "Login", Meta: Meta{RequiresAuth: false}},
		{Path: "/register", Name: "Register", Component: "Register", Meta: Meta{RequiresAuth: false}},
		{Path: "/profile/:username", Name: "Profile", Component: "Profile", Meta: Meta{RequiresAuth: false}},
		{Path: "/posts/:id", Name: "PostDetail", Component: "PostDetail", Meta: Meta{RequiresAuth: false}},
	}
}

// Location は解決済みのナビゲーション先。
type Location struct {
	// Route は一致したルート。初回ナビゲーション前の遷移元ではnil。
	Route *Route `json:"-"`
	// Path はクエリを除いたパス。
	Path string `json:"path"`
	// Params はパスパラメータ。
	Params map[string]string `json:"params"`
	// RedirectedFrom はガードによりリダイレクトされた場合の元のパス。
	RedirectedFrom string `json:"redirectedFrom,omitempty"`
}

// Name は一致したルートの名前を返す。ルートがない場合は空文字列。
func (l Location) Name() string {
	if l.Route == nil {
		return ""
	}
	return l.Route.Name
}

// resolve はルート表からパスに一致するルートを探す。
func resolve(routes []Route, rawPath string) (Location, error) {
	u, err := url.Parse(rawPath)
	if err != nil {
		return Location{}, fmt.Errorf("パスの解析に失敗: %w", err)
	}
	p := u.Path
	if p == "" || !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}

	segments := splitPath(p)
	for i := range routes {
		params, ok := match(splitPath(routes[i].Path), segments)
		if !ok {
			continue
		}
		return Location{Route: &routes[i], Path: p, Params: params}, nil
	}
	return Location{}, fmt.Errorf("%s: %w", p, ErrNotFound)
}

// match はパターンとパスのセグメントを比較し、一致した場合はパラメータを返す。
func match(pattern, segments []string) (map[string]string, bool) {
	if len(pattern) != len(segments) {
		return nil, false
	}
	params := map[string]string{}
	for i, seg := range pattern {
		if name, ok := strings.CutPrefix(seg, ":"); ok {
			if segments[i] == "" {
				return nil, false
			}
			params[name] = segments[i]
			continue
		}
		if seg != segments[i] {
			return nil, false
		}
	}
	return params, true
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// clone はLocationのParamsを複製する。
func (l Location) clone() Location {
	l.Params = maps.Clone(l.Params)
	return l
}
