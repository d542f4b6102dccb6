package upload

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ErrImagesOnly mirrors the accepted photo types: both the extension
// and the declared mimetype must look like one of them.
var ErrImagesOnly = errors.New("images only (jpeg, jpg, png, gif)")

const photoField = "photo"

var imageExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
}

// CheckFileType validates a candidate upload by filename extension and
// declared content type together.
func CheckFileType(filename, mimetype string) error {
	if !imageExts[strings.ToLower(filepath.Ext(filename))] {
		return ErrImagesOnly
	}
	mt := strings.ToLower(mimetype)
	for ext := range imageExts {
		if strings.Contains(mt, ext[1:]) {
			return nil
		}
	}
	return ErrImagesOnly
}

// Filename builds the opaque storage key for a photo, e.g.
// "photo-1735689600000.png".
func Filename(field, original string) string {
	return fmt.Sprintf("%s-%d%s", field, time.Now().UnixMilli(), strings.ToLower(filepath.Ext(original)))
}

// SavePhoto stores the optional "photo" form file under dir and returns
// the generated filename. No file in the request is not an error; the
// returned name is then empty.
func SavePhoto(c *fiber.Ctx, dir string) (string, error) {
	form, err := c.MultipartForm()
	if err != nil || form == nil || len(form.File[photoField]) == 0 {
		return "", nil
	}
	file := form.File[photoField][0]

	if err := CheckFileType(file.Filename, file.Header.Get("Content-Type")); err != nil {
		return "", err
	}

	name := Filename(photoField, file.Filename)
	if err := c.SaveFile(file, filepath.Join(dir, name)); err != nil {
		return "", fmt.Errorf("save photo: %w", err)
	}
	return name, nil
}
