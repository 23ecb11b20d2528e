package api

import (
	"context"
	"fmt"
)

// GetPosts は投稿の一覧を取得する。ページングの既定値はskip=0、limit=20。
func (c *Client) GetPosts(ctx context.Context, opts ...PageOption) ([]Post, error) {
	var resp []Post
	if err := c.http.GetJSON(ctx, pagedPath("/posts/", opts), &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetPost は投稿の詳細をコメント付きで取得する。
func (c *Client) GetPost(ctx context.Context, id int) (*PostDetail, error) {
	var resp PostDetail
	if err := c.http.GetJSON(ctx, fmt.Sprintf("/posts/%d", id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreatePost は投稿を作成する。imageURLがnilの場合はimage_urlにnullを送信する。
func (c *Client) CreatePost(ctx context.Context, content string, imageURL *string) (*Post, error) {
	var resp Post
	if err := c.http.PostJSON(ctx, "/posts/", postRequest{Content: content, ImageURL: imageURL}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdatePost は投稿を更新する。imageURLがnilの場合はimage_urlにnullを送信する。
func (c *Client) UpdatePost(ctx context.Context, id int, content string, imageURL *string) (*Post, error) {
	var resp Post
	if err := c.http.PutJSON(ctx, fmt.Sprintf("/posts/%d", id), postRequest{Content: content, ImageURL: imageURL}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeletePost は投稿を削除する。
func (c *Client) DeletePost(ctx context.Context, id int) (*MessageResponse, error) {
	var resp MessageResponse
	if err := c.http.DeleteJSON(ctx, fmt.Sprintf("/posts/%d", id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TogglePostLike は投稿へのいいねを切り替える。
func (c *Client) TogglePostLike(ctx context.Context, id int) (*LikeResponse, error) {
	var resp LikeResponse
	if err := c.http.PostJSON(ctx, fmt.Sprintf("/posts/%d/like", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
