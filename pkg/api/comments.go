package api

import (
	"context"
	"fmt"
)

// CreateComment は投稿にコメントする。
func (c *Client) CreateComment(ctx context.Context, postID int, content string) (*Comment, error) {
	var resp Comment
	if err := c.http.PostJSON(ctx, "/comments/", commentCreateRequest{PostID: postID, Content: content}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetPostComments は投稿のコメント一覧を取得する。
func (c *Client) GetPostComments(ctx context.Context, postID int) ([]Comment, error) {
	var resp []Comment
	if err := c.http.GetJSON(ctx, fmt.Sprintf("/comments/post/%d", postID), &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// UpdateComment はコメントを更新する。
func (c *Client) UpdateComment(ctx context.Context, id int, content string) (*Comment, error) {
	var resp Comment
	if err := c.http.PutJSON(ctx, fmt.Sprintf("/comments/%d", id), commentUpdateRequest{Content: content}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteComment はコメントを削除する。
func (c *Client) DeleteComment(ctx context.Context, id int) (*MessageResponse, error) {
	var resp MessageResponse
	if err := c.http.DeleteJSON(ctx, fmt.Sprintf("/comments/%d", id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ToggleCommentLike はコメントへのいいねを切り替える。
func (c *Client) ToggleCommentLike(ctx context.Context, id int) (*LikeResponse, error) {
	var resp LikeResponse
	if err := c.http.PostJSON(ctx, fmt.Sprintf("/comments/%d/like", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
