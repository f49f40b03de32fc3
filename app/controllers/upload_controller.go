package controllers

import (
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/shashiranjanraj/qrmenu/app/services"
	"github.com/shashiranjanraj/qrmenu/pkg/ctx"
	"github.com/shashiranjanraj/qrmenu/pkg/logger"
	"github.com/shashiranjanraj/qrmenu/pkg/storage"
)

// MaxUploadBytes caps logo and item image uploads.
const MaxUploadBytes = 5 << 20

var imageExt = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// UploadController stores logos and item images on the configured disk
// and hands back the public URL to use as a menu's logo or an item's image.
type UploadController struct {
	disk storage.Disk
	auth *services.AuthService
}

func NewUploadController(disk storage.Disk, auth *services.AuthService) *UploadController {
	return &UploadController{disk: disk, auth: auth}
}

type uploadResponse struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

// Store handles POST /api/uploads with a multipart "file" field.
func (u *UploadController) Store(c *ctx.Context) {
	sess, ok := sessionOf(c, u.auth)
	if !ok {
		return
	}
	user, ok := sess.CurrentUser()
	if !ok {
		fail(c, services.ErrAuthenticationRequired)
		return
	}

	c.R.Body = http.MaxBytesReader(c.W, c.R.Body, MaxUploadBytes+1<<10)
	file, _, err := c.R.FormFile("file")
	if err != nil {
		c.ValidationError(map[string]string{"file": "The file field is required."})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxUploadBytes+1))
	if err != nil {
		c.Error(http.StatusBadRequest, "Could not read upload")
		return
	}
	if len(data) > MaxUploadBytes {
		c.ValidationError(map[string]string{"file": "The file may not be greater than 5 MB."})
		return
	}

	mime, _, _ := strings.Cut(http.DetectContentType(data), ";")
	ext, ok := imageExt[mime]
	if !ok {
		c.ValidationError(map[string]string{"file": "The file must be a PNG, JPEG, GIF or WebP image."})
		return
	}

	key := path.Join("uploads", user.ID, uuid.NewString()+ext)
	if err := u.disk.Put(c.Context(), key, data); err != nil {
		logger.WithCtx(c.Context()).Error("upload failed", "disk", u.disk.Name(), "error", err)
		c.Error(http.StatusInternalServerError, "Could not store upload")
		return
	}

	c.Created(uploadResponse{Path: key, URL: u.disk.URL(key)})
}
