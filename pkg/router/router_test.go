package router

import (
	"context"
	"errors"
	"testing"
)

// fakeChecker はログイン状態を固定で返すAuthChecker。
type fakeChecker bool

func (f fakeChecker) IsAuthenticated(context.Context) bool { return bool(f) }

// protectedRoutes はログインが必要なルートを含むルート表を返す。
func protectedRoutes() []Route {
	routes := DefaultRoutes()
	return append(routes, Route{Path: "/settings", Name: "Settings", Component: "Settings", Meta: Meta{RequiresAuth: true}})
}

// TestDefaultRoutes は出荷時のルート表を検証する。
func TestDefaultRoutes(t *testing.T) {
	t.Parallel()

	want := []struct {
		path, name, component string
	}{
		{"/", "Home", "Home"},
		{"/login", "Login", "Login"},
		{"/register", "Register", "Register"},
		{"/profile/:username", "Profile", "Profile"},
		{"/posts/:id", "PostDetail", "PostDetail"},
	}

	got := DefaultRoutes()
	if len(got) != len(want) {
		t.Fatalf("ルート数 = %d, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Path != w.path || got[i].Name != w.name || got[i].Component != w.component {
			t.Errorf("%d件目 = %+v, want %+v", i, got[i], w)
		}
		if got[i].Meta.RequiresAuth {
			t.Errorf("%s のRequiresAuth = true, want false", got[i].Path)
		}
	}
}

// TestResolve はパスとルートの照合を検証する。
func TestResolve(t *testing.T) {
	t.Parallel()

	r := New(DefaultRoutes())

	tests := []struct {
		name       string
		path       string
		wantRoute  string
		wantPath   string
		wantParams map[string]string
	}{
		{name: "ルートパス", path: "/", wantRoute: "Home", wantPath: "/", wantParams: map[string]string{}},
		{name: "静的なパス", path: "/login", wantRoute: "Login", wantPath: "/login", wantParams: map[string]string{}},
		{name: "パラメータ付きのパス", path: "/posts/42", wantRoute: "PostDetail", wantPath: "/posts/42", wantParams: map[string]string{"id": "42"}},
		{name: "末尾スラッシュとクエリは無視される", path: "/profile/alice/?tab=posts", wantRoute: "Profile", wantPath: "/profile/alice", wantParams: map[string]string{"username": "alice"}},
		{name: "エスケープされたパラメータはデコードされる", path: "/profile/a%20b", wantRoute: "Profile", wantPath: "/profile/a b", wantParams: map[string]string{"username": "a b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			loc, err := r.Resolve(tt.path)
			if err != nil {
				t.Fatalf("Resolve()でエラーが発生: %v", err)
			}
			if loc.Name() != tt.wantRoute {
				t.Errorf("ルート名 = %q, want %q", loc.Name(), tt.wantRoute)
			}
			if loc.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", loc.Path, tt.wantPath)
			}
			if len(loc.Params) != len(tt.wantParams) {
				t.Fatalf("Params = %v, want %v", loc.Params, tt.wantParams)
			}
			for k, v := range tt.wantParams {
				if loc.Params[k] != v {
					t.Errorf("Params[%q] = %q, want %q", k, loc.Params[k], v)
				}
			}
		})
	}

	t.Run("一致しないパスはErrNotFoundを返すこと", func(t *testing.T) {
		t.Parallel()

		for _, p := range []string{"/unknown", "/posts", "/posts/1/comments"} {
			if _, err := r.Resolve(p); !errors.Is(err, ErrNotFound) {
				t.Errorf("Resolve(%q) error = %v, want ErrNotFound", p, err)
			}
		}
	})
}

// TestAuthGuard はAuthGuardの判定を検証する。
func TestAuthGuard(t *testing.T) {
	t.Parallel()

	public := &Route{Path: "/", Meta: Meta{RequiresAuth: false}}
	protected := &Route{Path: "/settings", Meta: Meta{RequiresAuth: true}}

	tests := []struct {
		name          string
		route         *Route
		authenticated bool
		want          string
	}{
		{name: "ログイン必須かつ未ログインはリダイレクト", route: protected, authenticated: false, want: LoginPath},
		{name: "ログイン必須かつログイン済みは続行", route: protected, authenticated: true, want: ""},
		{name: "公開ルートかつ未ログインは続行", route: public, authenticated: false, want: ""},
		{name: "公開ルートかつログイン済みは続行", route: public, authenticated: true, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			calls := 0
			var got string
			AuthGuard(fakeChecker(tt.authenticated))(context.Background(), Location{Route: tt.route}, Location{}, func(p string) {
				calls++
				got = p
			})
			if calls != 1 {
				t.Fatalf("nextの呼び出し回数 = %d, want 1", calls)
			}
			if got != tt.want {
				t.Errorf("next(%q), want next(%q)", got, tt.want)
			}
		})
	}
}

// TestRouter_Push はガードを通したナビゲーションを検証する。
func TestRouter_Push(t *testing.T) {
	t.Parallel()

	t.Run("出荷時のルート表では未ログインでもリダイレクトされないこと", func(t *testing.T) {
		t.Parallel()

		r := New(DefaultRoutes())
		r.BeforeEach(AuthGuard(fakeChecker(false)))

		for _, p := range []string{"/", "/login", "/register", "/profile/alice", "/posts/1"} {
			loc, err := r.Push(context.Background(), p)
			if err != nil {
				t.Fatalf("Push(%q)でエラーが発生: %v", p, err)
			}
			if loc.Path != p || loc.RedirectedFrom != "" {
				t.Errorf("Push(%q) = %+v, want no redirect", p, loc)
			}
		}
	})

	t.Run("ログイン必須ルートへ未ログインで遷移するとログイン画面になること", func(t *testing.T) {
		t.Parallel()

		r := New(protectedRoutes())
		r.BeforeEach(AuthGuard(fakeChecker(false)))

		loc, err := r.Push(context.Background(), "/settings")
		if err != nil {
			t.Fatalf("Push()でエラーが発生: %v", err)
		}
		if loc.Path != LoginPath || loc.RedirectedFrom != "/settings" {
			t.Errorf("Push() = %+v, want path=/login redirectedFrom=/settings", loc)
		}
		if cur := r.Current(); cur.Path != LoginPath {
			t.Errorf("Current().Path = %q, want %q", cur.Path, LoginPath)
		}
	})

	t.Run("ログイン済みならログイン必須ルートへ遷移できること", func(t *testing.T) {
		t.Parallel()

		r := New(protectedRoutes())
		r.BeforeEach(AuthGuard(fakeChecker(true)))

		loc, err := r.Push(context.Background(), "/settings")
		if err != nil {
			t.Fatalf("Push()でエラーが発生: %v", err)
		}
		if loc.Name() != "Settings" {
			t.Errorf("ルート名 = %q, want Settings", loc.Name())
		}
	})

	t.Run("ガードに遷移元が渡されること", func(t *testing.T) {
		t.Parallel()

		r := New(DefaultRoutes())
		var froms []string
		r.BeforeEach(func(_ context.Context, _, from Location, next Next) {
			froms = append(froms, from.Path)
			next("")
		})

		_, _ = r.Push(context.Background(), "/")
		_, _ = r.Push(context.Background(), "/posts/3")
		if len(froms) != 2 || froms[0] != "" || froms[1] != "/" {
			t.Errorf("遷移元 = %q, want [\"\" \"/\"]", froms)
		}
	})

	t.Run("最初にリダイレクトを指示したガードが優先されること", func(t *testing.T) {
		t.Parallel()

		r := New(DefaultRoutes())
		secondCalled := false
		r.BeforeEach(func(_ context.Context, to, _ Location, next Next) {
			if to.Path == "/" {
				next("/register")
				return
			}
			next("")
		})
		r.BeforeEach(func(_ context.Context, to, _ Location, next Next) {
			if to.Path == "/" {
				secondCalled = true
				next("/login")
				return
			}
			next("")
		})

		loc, err := r.Push(context.Background(), "/")
		if err != nil {
			t.Fatalf("Push()でエラーが発生: %v", err)
		}
		if loc.Path != "/register" {
			t.Errorf("Path = %q, want /register", loc.Path)
		}
		if secondCalled {
			t.Error("リダイレクト後に後続のガードが実行された")
		}
	})

	t.Run("リダイレクトが循環するとErrRedirectLoopを返すこと", func(t *testing.T) {
		t.Parallel()

		r := New(DefaultRoutes())
		r.BeforeEach(func(_ context.Context, to, _ Location, next Next) {
			if to.Path == "/login" {
				next("/register")
				return
			}
			next("/login")
		})

		if _, err := r.Push(context.Background(), "/"); !errors.Is(err, ErrRedirectLoop) {
			t.Errorf("Push() error = %v, want ErrRedirectLoop", err)
		}
		if cur := r.Current(); cur.Route != nil {
			t.Errorf("失敗したナビゲーションで現在位置が更新された: %+v", cur)
		}
	})

	t.Run("nextを呼び出さないガードはナビゲーションを中断すること", func(t *testing.T) {
		t.Parallel()

		r := New(DefaultRoutes())
		r.BeforeEach(func(context.Context, Location, Location, Next) {})

		if _, err := r.Push(context.Background(), "/"); !errors.Is(err, ErrAborted) {
			t.Errorf("Push() error = %v, want ErrAborted", err)
		}
	})

	t.Run("nextの2回目以降の呼び出しは無視されること", func(t *testing.T) {
		t.Parallel()

		r := New(DefaultRoutes())
		r.BeforeEach(func(_ context.Context, _, _ Location, next Next) {
			next("")
			next("/login")
		})

		loc, err := r.Push(context.Background(), "/register")
		if err != nil {
			t.Fatalf("Push()でエラーが発生: %v", err)
		}
		if loc.Path != "/register" {
			t.Errorf("Path = %q, want /register", loc.Path)
		}
	})

	t.Run("存在しないパスではErrNotFoundを返すこと", func(t *testing.T) {
		t.Parallel()

		r := New(DefaultRoutes())
		if _, err := r.Push(context.Background(), "/nowhere"); !errors.Is(err, ErrNotFound) {
			t.Errorf("Push() error = %v, want ErrNotFound", err)
		}
	})
}

// TestRouter_ForceNavigate はページ再読み込み相当のナビゲーションを検証する。
func TestRouter_ForceNavigate(t *testing.T) {
	t.Parallel()

	r := New(DefaultRoutes())
	var lastFrom Location
	r.BeforeEach(func(_ context.Context, _, from Location, next Next) {
		lastFrom = from
		next("")
	})

	if _, err := r.Push(context.Background(), "/posts/7"); err != nil {
		t.Fatalf("Push()でエラーが発生: %v", err)
	}

	loc, err := r.ForceNavigate(context.Background(), LoginPath)
	if err != nil {
		t.Fatalf("ForceNavigate()でエラーが発生: %v", err)
	}
	if loc.Path != LoginPath {
		t.Errorf("Path = %q, want %q", loc.Path, LoginPath)
	}
	if lastFrom.Route != nil || lastFrom.Path != "" {
		t.Errorf("遷移元 = %+v, want empty location", lastFrom)
	}
	if cur := r.Current(); cur.Path != LoginPath {
		t.Errorf("Current().Path = %q, want %q", cur.Path, LoginPath)
	}
}

// TestNew はルート表が複製されることを検証する。
func TestNew(t *testing.T) {
	t.Parallel()

	routes := DefaultRoutes()
	r := New(routes)
	routes[0].Meta.RequiresAuth = true

	if r.Routes()[0].Meta.RequiresAuth {
		t.Error("元のスライスの変更がRouterに反映された")
	}

	got := r.Routes()
	got[1].Name = "changed"
	if r.Routes()[1].Name != "Login" {
		t.Error("Routes()の戻り値の変更がRouterに反映された")
	}
}
