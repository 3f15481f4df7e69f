package services

import (
	"time"

	"github.com/community-board/api-go/models"
	"github.com/community-board/api-go/pagination"
)

// Request types carry gin binding tags; structural validation happens when
// the controller binds them, before a service is called.

type SignUpRequest struct {
	Email           string  `json:"email" binding:"required,email,max=255"`
	Password        string  `json:"password" binding:"required,min=8,max=20,password"`
	Nickname        string  `json:"nickname" binding:"required,max=10,nickname"`
	ProfileImageURL *string `json:"profileImageUrl" binding:"omitempty,url"`
}

type UpdateUserRequest struct {
	Email           string  `json:"email" binding:"required,email,max=255"`
	Nickname        string  `json:"nickname" binding:"required,max=10,nickname"`
	ProfileImageURL *string `json:"profileImageUrl" binding:"omitempty,url"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8,max=20,password"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type PostRequest struct {
	Title     string   `json:"title" binding:"required,notblank,max=26"`
	Content   string   `json:"content" binding:"required,notblank"`
	ImageURLs []string `json:"imageUrls" binding:"omitempty,max=10,dive,url"`
}

type CommentRequest struct {
	Content string `json:"content" binding:"required,notblank"`
}

type UserResponse struct {
	UserID          uint    `json:"userId"`
	Email           string  `json:"email"`
	Nickname        string  `json:"nickname"`
	ProfileImageURL *string `json:"profileImageUrl"`
}

type AuthorResponse struct {
	UserID          uint    `json:"userId"`
	Nickname        string  `json:"nickname"`
	ProfileImageURL *string `json:"profileImageUrl"`
	IsDeleted       bool    `json:"isDeleted"`
}

type PostResponse struct {
	PostID       uint           `json:"postId"`
	Title        string         `json:"title"`
	Content      string         `json:"content"`
	Author       AuthorResponse `json:"author"`
	ImageURLs    []string       `json:"imageUrls"`
	ViewCount    int64          `json:"viewCount"`
	LikeCount    int64          `json:"likeCount"`
	CommentCount int64          `json:"commentCount"`
	IsAuthor     bool           `json:"isAuthor"`
	IsLiked      bool           `json:"isLiked"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// PostSummaryResponse is one row of the public post listing. IsAuthor and
// IsLiked are only present when viewer resolution is enabled.
type PostSummaryResponse struct {
	PostID       uint           `json:"postId"`
	Title        string         `json:"title"`
	Author       AuthorResponse `json:"author"`
	ImageURLs    []string       `json:"imageUrls"`
	ViewCount    int64          `json:"viewCount"`
	LikeCount    int64          `json:"likeCount"`
	CommentCount int64          `json:"commentCount"`
	IsAuthor     *bool          `json:"isAuthor,omitempty"`
	IsLiked      *bool          `json:"isLiked,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}

type PostPageResponse struct {
	PostList []PostSummaryResponse `json:"postList"`
	Cursor   pagination.Cursor     `json:"cursor"`
}

type CommentResponse struct {
	CommentID uint           `json:"commentId"`
	PostID    uint           `json:"postId"`
	Content   string         `json:"content"`
	Author    AuthorResponse `json:"author"`
	IsAuthor  bool           `json:"isAuthor"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type CommentPageResponse struct {
	CommentList []CommentResponse `json:"commentList"`
	Cursor      pagination.Cursor `json:"cursor"`
}

type PostLikeResponse struct {
	LikeCount int64 `json:"likeCount"`
	IsLiked   bool  `json:"isLiked"`
}

type TokenPair struct {
	AccessToken      string       `json:"accessToken"`
	TokenType        string       `json:"tokenType"`
	RefreshToken     string       `json:"-"`
	RefreshExpiresAt time.Time    `json:"-"`
	User             UserResponse `json:"user"`
}

func newUserResponse(u *models.User) UserResponse {
	return UserResponse{
		UserID:          u.ID,
		Email:           u.Email,
		Nickname:        u.Nickname,
		ProfileImageURL: u.ProfileImageURL,
	}
}

func newAuthorResponse(u *models.User) AuthorResponse {
	return AuthorResponse{
		UserID:          u.ID,
		Nickname:        u.Nickname,
		ProfileImageURL: u.ProfileImageURL,
		IsDeleted:       u.IsDeleted,
	}
}

func newPostResponse(p *models.Post, isAuthor, isLiked bool, likeCount, commentCount int64) *PostResponse {
	return &PostResponse{
		PostID:       p.ID,
		Title:        p.Title,
		Content:      p.Content,
		Author:       newAuthorResponse(&p.User),
		ImageURLs:    p.ImageURLs(),
		ViewCount:    p.ViewCount,
		LikeCount:    likeCount,
		CommentCount: commentCount,
		IsAuthor:     isAuthor,
		IsLiked:      isLiked,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func newPostSummaryResponse(s models.PostSummary) PostSummaryResponse {
	images := []string(s.ImageURLs)
	if images == nil {
		images = []string{}
	}
	return PostSummaryResponse{
		PostID: s.ID,
		Title:  s.Title,
		Author: AuthorResponse{
			UserID:          s.UserID,
			Nickname:        s.AuthorNickname,
			ProfileImageURL: s.AuthorProfileImage,
		},
		ImageURLs:    images,
		ViewCount:    s.ViewCount,
		LikeCount:    s.LikeCount,
		CommentCount: s.CommentCount,
		CreatedAt:    s.CreatedAt,
	}
}

func newCommentResponse(c *models.Comment, isAuthor bool) *CommentResponse {
	return &CommentResponse{
		CommentID: c.ID,
		PostID:    c.PostID,
		Content:   c.Content,
		Author:    newAuthorResponse(&c.User),
		IsAuthor:  isAuthor,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
