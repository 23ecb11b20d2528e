package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// maxRedirects は1回のナビゲーションで許容するリダイレクト回数。
const maxRedirects = 10

var (
	// ErrRedirectLoop はガードのリダイレクトが収束しないことを示す。
	ErrRedirectLoop = errors.New("redirect loop detected")
	// ErrAborted はガードがnextを呼び出さずにナビゲーションが中断されたことを示す。
	ErrAborted = errors.New("navigation aborted")
)

// Router はルート表と現在位置を保持し、ガードを通してナビゲーションを行う。
// 並行に使用しても安全。
type Router struct {
	routes []Route
	logger *slog.Logger

	mu      sync.RWMutex
	guards  []Guard
	current Location
}

// Option はRouterの設定を変更する関数。
type Option func(*Router)

// WithLogger はログの出力先を設定する。
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// New はルート表を複製してRouterを生成する。
func New(routes []Route, opts ...Option) *Router {
	r := &Router{
		routes: slices.Clone(routes),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Routes はルート表の複製を返す。
func (r *Router) Routes() []Route {
	return slices.Clone(r.routes)
}

// BeforeEach はナビゲーションのたびに実行するガードを登録する。
// ガードは登録順に実行される。
func (r *Router) BeforeEach(g Guard) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.guards = append(r.guards, g)
}

// Resolve はパスに一致するルートを返す。ガードは実行しない。
func (r *Router) Resolve(path string) (Location, error) {
	return resolve(r.routes, path)
}

// Current は現在位置を返す。ナビゲーション前はRouteがnilのLocation。
func (r *Router) Current() Location {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current.clone()
}

// Push はガードを通してpathへナビゲーションし、確定した現在位置を返す。
// リダイレクトされた場合はリダイレクト先が現在位置になる。
func (r *Router) Push(ctx context.Context, path string) (Location, error) {
	return r.navigate(ctx, path, r.Current())
}

// ForceNavigate はページの再読み込みと同様にルーターの状態を破棄してから
// pathへナビゲーションする。ガードは初回読み込みと同じく遷移元なしで実行される。
func (r *Router) ForceNavigate(ctx context.Context, path string) (Location, error) {
	r.mu.Lock()
	r.current = Location{}
	r.mu.Unlock()

	r.logger.DebugContext(ctx, "forced navigation", "path", path)
	return r.navigate(ctx, path, Location{})
}

func (r *Router) navigate(ctx context.Context, path string, from Location) (Location, error) {
	r.mu.RLock()
	guards := slices.Clone(r.guards)
	r.mu.RUnlock()

	target := path
	for range maxRedirects + 1 {
		to, err := r.Resolve(target)
		if err != nil {
			return Location{}, err
		}
		if target != path {
			to.RedirectedFrom = path
		}

		redirect, err := runGuards(ctx, guards, to, from)
		if err != nil {
			return Location{}, fmt.Errorf("%s: %w", to.Path, err)
		}
		if redirect == "" {
			r.mu.Lock()
			r.current = to
			r.mu.Unlock()
			return to.clone(), nil
		}

		r.logger.DebugContext(ctx, "navigation redirected", "from", to.Path, "to", redirect)
		target = redirect
	}
	return Location{}, fmt.Errorf("%s: %w", path, ErrRedirectLoop)
}

// runGuards はガードを順に実行し、最初に指示されたリダイレクト先を返す。
func runGuards(ctx context.Context, guards []Guard, to, from Location) (string, error) {
	for _, g := range guards {
		var (
			called   bool
			redirect string
		)
		g(ctx, to.clone(), from.clone(), func(p string) {
			if called {
				return
			}
			called = true
			redirect = p
		})
		if !called {
			return "", ErrAborted
		}
		if redirect != "" {
			return redirect, nil
		}
	}
	return "", nil
}
