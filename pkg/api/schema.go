package api

// User はバックエンドのユーザー情報。
// 日時はバックエンドが返した文字列のまま保持する。
type User struct {
	ID          int     `json:"id"`
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	DisplayName string  `json:"display_name"`
	Bio         *string `json:"bio"`
	AvatarURL   *string `json:"avatar_url"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
	IsActive    bool    `json:"is_active"`
}

// UserProfile はユーザー一覧の1件。
type UserProfile struct {
	User
	PostCount     int `json:"post_count"`
	FollowerCount int `json:"follower_count"`
}

// UserProfileDetail はユーザープロフィール画面の情報。投稿一覧を含む。
type UserProfileDetail struct {
	UserProfile
	Posts []Post `json:"posts"`
}

// UserCreate はユーザー登録のリクエストボディ。
type UserCreate struct {
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	DisplayName string  `json:"display_name"`
	Bio         *string `json:"bio,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
	Password    string  `json:"password"`
}

// UserUpdate はプロフィール更新のリクエストボディ。nilのフィールドは送信しない。
type UserUpdate struct {
	DisplayName *string `json:"display_name,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}

// Post は投稿。
type Post struct {
	ID           int     `json:"id"`
	Content      string  `json:"content"`
	ImageURL     *string `json:"image_url"`
	UserID       int     `json:"user_id"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
	Author       User    `json:"author"`
	LikeCount    int     `json:"like_count"`
	CommentCount int     `json:"comment_count"`
	IsLiked      bool    `json:"is_liked"`
}

// PostDetail は投稿詳細。コメント一覧を含む。
type PostDetail struct {
	Post
	Comments []Comment `json:"comments"`
}

// Comment はコメント。
type Comment struct {
	ID        int    `json:"id"`
	Content   string `json:"content"`
	PostID    int    `json:"post_id"`
	UserID    int    `json:"user_id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	Author    User   `json:"author"`
	LikeCount int    `json:"like_count"`
	IsLiked   bool   `json:"is_liked"`
}

// LikeResponse はいいねの切り替え結果。
type LikeResponse struct {
	Message   string `json:"message"`
	LikeCount int    `json:"like_count"`
	IsLiked   bool   `json:"is_liked"`
}

// LoginResponse はログインとユーザー登録の結果。
type LoginResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// MessageResponse はメッセージのみのレスポンス。
type MessageResponse struct {
	Message string `json:"message"`
}

// loginRequest はログインのリクエストボディ。
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// postRequest は投稿の作成・更新のリクエストボディ。image_urlはnullでも送信する。
type postRequest struct {
	Content  string  `json:"content"`
	ImageURL *string `json:"image_url"`
}

// commentCreateRequest はコメント作成のリクエストボディ。
type commentCreateRequest struct {
	PostID  int    `json:"post_id"`
	Content string `json:"content"`
}

// commentUpdateRequest はコメント更新のリクエストボディ。
type commentUpdateRequest struct {
	Content string `json:"content"`
}
