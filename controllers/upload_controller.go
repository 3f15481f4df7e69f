package controllers

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/community-board/api-go/apperrors"
	"github.com/community-board/api-go/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	uploadTargetPost    = "post"
	uploadTargetProfile = "profile"

	presignExpiry = time.Hour

	codeUnsupportedFile = "UNSUPPORTED_FILE"
)

// Presigner is satisfied by *s3.PresignClient.
type Presigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

type UploadController struct {
	Presigner Presigner
	Bucket    string
	PublicURL string
}

type PresignedURLRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	FileSize    int64  `json:"fileSize" binding:"required,gt=0"`
	Target      string `json:"target" binding:"required,oneof=post profile"`
}

type PresignedURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expiresIn"`
}

func NewUploadController(presigner Presigner, bucket, publicURL string) *UploadController {
	return &UploadController{
		Presigner: presigner,
		Bucket:    bucket,
		PublicURL: strings.TrimSuffix(publicURL, "/"),
	}
}

// GetPresignedURL godoc
// @Summary Get a presigned PUT URL for a post or profile image
// @Description The returned fileUrl is what clients put into imageUrls or profileImageUrl
// @Tags uploads
// @Accept json
// @Produce json
// @Param file body PresignedURLRequest true "File to upload"
// @Success 200 {object} PresignedURLResponse
// @Router /uploads/presign [post]
func (uc *UploadController) GetPresignedURL(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		respondError(c, apperrors.Unauthorized("UNAUTHORIZED"))
		return
	}
	var req PresignedURLRequest
	if !bindJSON(c, &req) {
		return
	}

	if !isValidImageType(req.ContentType) {
		respondError(c, apperrors.Validation(codeUnsupportedFile, "Invalid file type"))
		return
	}
	if req.FileSize > sizeLimit(req.Target) {
		respondError(c, apperrors.Validation(codeUnsupportedFile, "File size exceeds limit"))
		return
	}

	key := generateFileKey(user.UserID, req.FileName, req.Target)
	presigned, err := uc.Presigner.PresignPutObject(c.Request.Context(), &s3.PutObjectInput{
		Bucket:      aws.String(uc.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(req.ContentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = presignExpiry
	})
	if err != nil {
		respondError(c, apperrors.Internal("presign upload", err))
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: PresignedURLResponse{
			UploadURL: presigned.URL,
			FileURL:   fmt.Sprintf("%s/%s", uc.PublicURL, key),
			Key:       key,
			ExpiresIn: int(presignExpiry.Seconds()),
		},
		Message: "Presigned URL generated successfully",
	})
}

func isValidImageType(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/jpg", "image/png", "image/webp", "image/gif":
		return true
	}
	return false
}

func sizeLimit(target string) int64 {
	switch target {
	case uploadTargetProfile:
		return 5 * 1024 * 1024
	case uploadTargetPost:
		return 10 * 1024 * 1024
	}
	return 0
}

func generateFileKey(userID uint, fileName, target string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	id := uuid.New().String()
	timestamp := time.Now().Unix()

	if target == uploadTargetProfile {
		return fmt.Sprintf("users/%d/profile/%d_%s%s", userID, timestamp, id, ext)
	}
	return fmt.Sprintf("posts/%d/%d_%s%s", userID, timestamp, id, ext)
}
