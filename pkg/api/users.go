package api

import (
	"context"
	"net/url"
)

// GetUsers はユーザーの一覧を取得する。ページングの既定値はskip=0、limit=20。
func (c *Client) GetUsers(ctx context.Context, opts ...PageOption) ([]UserProfile, error) {
	var resp []UserProfile
	if err := c.http.GetJSON(ctx, pagedPath("/users/", opts), &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetUserProfile はユーザーのプロフィールを投稿一覧付きで取得する。
func (c *Client) GetUserProfile(ctx context.Context, username string) (*UserProfileDetail, error) {
	var resp UserProfileDetail
	if err := c.http.GetJSON(ctx, "/users/"+url.PathEscape(username), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateProfile はログイン中のユーザーのプロフィールを更新する。
func (c *Client) UpdateProfile(ctx context.Context, update UserUpdate) (*User, error) {
	var resp User
	if err := c.http.PutJSON(ctx, "/users/me", update, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetMyPosts はログイン中のユーザーの投稿一覧を取得する。
func (c *Client) GetMyPosts(ctx context.Context) ([]Post, error) {
	var resp []Post
	if err := c.http.GetJSON(ctx, "/users/me/posts", &resp); err != nil {
		return nil, err
	}
	return resp, nil
}
