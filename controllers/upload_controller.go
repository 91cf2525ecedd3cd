package controllers

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/thread-nest/api-go/config"
	"github.com/thread-nest/api-go/utils"
)

// UploadController hands out presigned PUT URLs for the two image kinds this
// API stores references to: post images and profile pictures. Clients upload
// directly to the bucket and send the resulting URL back as `img` or
// `profilePic`.
type UploadController struct {
	Client  *s3.Client
	Storage *config.StorageConfig
	Log     *logrus.Logger
}

type ImageUploadRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	FileSize    int64  `json:"fileSize" binding:"required"`
}

type AvatarConfirmRequest struct {
	TempKey string `json:"tempKey" binding:"required"`
}

type PresignedURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expiresIn"`
}

func NewUploadController(storage *config.StorageConfig, log *logrus.Logger) *UploadController {
	client := s3.New(s3.Options{
		BaseEndpoint: aws.String(storage.Endpoint),
		Credentials: credentials.NewStaticCredentialsProvider(
			storage.AccessKeyID,
			storage.SecretAccessKey,
			"",
		),
		Region: storage.Region,
	})

	return &UploadController{
		Client:  client,
		Storage: storage,
		Log:     log,
	}
}

func (uc *UploadController) GetPostImageURL(c *gin.Context) {
	currentUser := utils.GetUser(c)
	if currentUser == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized user"})
		return
	}

	var req ImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !isValidImageType(req.ContentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image type"})
		return
	}

	if req.FileSize > 10*1024*1024 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds limit"})
		return
	}

	key := uc.generatePostImageKey(currentUser.ID, req.FileName)

	presignedURL, err := uc.createPresignedURL(c.Request.Context(), key, req.ContentType)
	if err != nil {
		uc.Log.WithError(err).Error("presign failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload URL"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: PresignedURLResponse{
			UploadURL: presignedURL,
			FileURL:   fmt.Sprintf("%s/%s", uc.Storage.PublicURL, key),
			Key:       key,
			ExpiresIn: 3600,
		},
		Message: "Presigned URL generated successfully",
	})
}

func (uc *UploadController) GetAvatarTempURL(c *gin.Context) {
	var req ImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !isValidImageType(req.ContentType) || req.FileSize > 5*1024*1024 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid avatar file type or size"})
		return
	}

	key := generateTempAvatarKey(req.FileName)

	presignedURL, err := uc.createPresignedURL(c.Request.Context(), key, req.ContentType)
	if err != nil {
		uc.Log.WithError(err).Error("presign failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload URL"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: PresignedURLResponse{
			UploadURL: presignedURL,
			FileURL:   fmt.Sprintf("%s/%s", uc.Storage.PublicURL, key),
			Key:       key,
			ExpiresIn: 1800,
		},
		Message: "Temporary avatar upload URL generated successfully",
	})
}

// ConfirmAvatarUpload moves a temp avatar into the user's permanent prefix
// and returns the URL to store as profilePic.
func (uc *UploadController) ConfirmAvatarUpload(c *gin.Context) {
	currentUser := utils.GetUser(c)
	if currentUser == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized user"})
		return
	}

	var req AvatarConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !strings.HasPrefix(req.TempKey, "temp/avatars/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid temp key format"})
		return
	}

	ctx := c.Request.Context()

	exists, err := uc.fileExists(ctx, req.TempKey)
	if err != nil || !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Temporary avatar file not found"})
		return
	}

	permanentKey := generateAvatarKey(currentUser.ID, req.TempKey)

	if err := uc.moveFile(ctx, req.TempKey, permanentKey); err != nil {
		uc.Log.WithError(err).Error("avatar move failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm avatar upload"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: gin.H{
			"key":     permanentKey,
			"fileUrl": fmt.Sprintf("%s/%s", uc.Storage.PublicURL, permanentKey),
			"userId":  currentUser.ID,
		},
		Message: "Avatar upload confirmed successfully",
	})
}

func isValidImageType(contentType string) bool {
	validTypes := []string{
		"image/jpeg", "image/jpg", "image/png", "image/webp",
	}

	for _, validType := range validTypes {
		if contentType == validType {
			return true
		}
	}
	return false
}

func (uc *UploadController) generatePostImageKey(userID uint, fileName string) string {
	ext := filepath.Ext(fileName)
	return fmt.Sprintf("uploads/posts/%d/%d_%s%s", userID, time.Now().Unix(), uuid.New().String(), ext)
}

func generateTempAvatarKey(fileName string) string {
	ext := filepath.Ext(fileName)
	return fmt.Sprintf("temp/avatars/%d_%s%s", time.Now().Unix(), uuid.New().String(), ext)
}

func generateAvatarKey(userID uint, tempKey string) string {
	ext := filepath.Ext(tempKey)
	return fmt.Sprintf("users/%d/avatar/%d_avatar%s", userID, time.Now().Unix(), ext)
}

func (uc *UploadController) createPresignedURL(ctx context.Context, key, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(uc.Storage.BucketName),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}

	presigner := s3.NewPresignClient(uc.Client)
	req, err := presigner.PresignPutObject(ctx, input, func(opts *s3.PresignOptions) {
		opts.Expires = time.Hour
	})
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

func (uc *UploadController) fileExists(ctx context.Context, key string) (bool, error) {
	input := &s3.HeadObjectInput{
		Bucket: aws.String(uc.Storage.BucketName),
		Key:    aws.String(key),
	}

	if _, err := uc.Client.HeadObject(ctx, input); err != nil {
		return false, nil
	}
	return true, nil
}

func (uc *UploadController) moveFile(ctx context.Context, sourceKey, destKey string) error {
	copyInput := &s3.CopyObjectInput{
		Bucket:     aws.String(uc.Storage.BucketName),
		CopySource: aws.String(fmt.Sprintf("%s/%s", uc.Storage.BucketName, sourceKey)),
		Key:        aws.String(destKey),
	}

	if _, err := uc.Client.CopyObject(ctx, copyInput); err != nil {
		return err
	}

	deleteInput := &s3.DeleteObjectInput{
		Bucket: aws.String(uc.Storage.BucketName),
		Key:    aws.String(sourceKey),
	}
	_, err := uc.Client.DeleteObject(ctx, deleteInput)
	return err
}
