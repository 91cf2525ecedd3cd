package controllers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidImageType(t *testing.T) {
	for _, ct := range []string{"image/jpeg", "image/jpg", "image/png", "image/webp"} {
		assert.True(t, isValidImageType(ct), ct)
	}
	for _, ct := range []string{"image/gif", "application/pdf", "text/html", ""} {
		assert.False(t, isValidImageType(ct), ct)
	}
}

func TestUploadKeyGeneration(t *testing.T) {
	uc := &UploadController{}

	postKey := uc.generatePostImageKey(42, "holiday.png")
	assert.True(t, strings.HasPrefix(postKey, "uploads/posts/42/"), postKey)
	assert.True(t, strings.HasSuffix(postKey, ".png"), postKey)

	tempKey := generateTempAvatarKey("me.webp")
	assert.True(t, strings.HasPrefix(tempKey, "temp/avatars/"), tempKey)
	assert.True(t, strings.HasSuffix(tempKey, ".webp"), tempKey)

	avatarKey := generateAvatarKey(42, tempKey)
	assert.True(t, strings.HasPrefix(avatarKey, "users/42/avatar/"), avatarKey)
	assert.True(t, strings.HasSuffix(avatarKey, ".webp"), avatarKey)

	// Two keys for the same file never collide.
	assert.NotEqual(t, uc.generatePostImageKey(42, "holiday.png"), postKey)
}
