package api

import "context"

// Login はユーザー名とパスワードでログインする。
// 成功するとバックエンドがセッションCookieを発行する。
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.http.PostJSON(ctx, "/auth/login", loginRequest{Username: username, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register はユーザーを登録する。成功するとログイン済みになる。
func (c *Client) Register(ctx context.Context, user UserCreate) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.http.PostJSON(ctx, "/auth/register", user, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout はログアウトする。リクエストボディは送信しない。
func (c *Client) Logout(ctx context.Context) (*MessageResponse, error) {
	var resp MessageResponse
	if err := c.http.PostJSON(ctx, "/auth/logout", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetCurrentUser はログイン中のユーザーを取得する。
func (c *Client) GetCurrentUser(ctx context.Context) (*User, error) {
	var resp User
	if err := c.http.GetJSON(ctx, "/auth/me", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
