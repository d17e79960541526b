// Package upload accepts a single image file from a multipart form before
// the route handler runs.
package upload

import (
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/fakenewsdetect/backend/internal/validation"
)

const localsKey = "upload.file"

type Config struct {
	Field   string
	MaxSize int64
}

type File struct {
	Name     string
	MimeType string
	Size     int64
	Data     []byte
}

// Image stores the uploaded file for FromContext. Oversized or non-image
// files are answered with 400 here; a missing file is left for the handler
// to report.
func Image(cfg Config) fiber.Handler {
	if cfg.Field == "" {
		cfg.Field = "image"
	}
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = 10 * 1024 * 1024
	}

	return func(c *fiber.Ctx) error {
		if !strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEMultipartForm) {
			return c.Next()
		}

		form, err := c.MultipartForm()
		if err != nil {
			return reject(c, "Malformed multipart form")
		}

		files := form.File[cfg.Field]
		if len(files) == 0 {
			return c.Next()
		}
		fh := files[0]

		if fh.Size > cfg.MaxSize {
			return reject(c, "File too large")
		}
		mimeType := fh.Header.Get(fiber.HeaderContentType)
		if !validation.IsImageType(mimeType) {
			return reject(c, validation.ImageError)
		}

		f, err := fh.Open()
		if err != nil {
			return fmt.Errorf("open upload: %w", err)
		}
		defer f.Close()

		data, err := io.ReadAll(io.LimitReader(f, cfg.MaxSize+1))
		if err != nil {
			return fmt.Errorf("read upload: %w", err)
		}
		if int64(len(data)) > cfg.MaxSize {
			return reject(c, "File too large")
		}

		c.Locals(localsKey, &File{
			Name:     fh.Filename,
			MimeType: mimeType,
			Size:     int64(len(data)),
			Data:     data,
		})
		return c.Next()
	}
}

// FromContext returns the file stored by Image, if any.
func FromContext(c *fiber.Ctx) (*File, bool) {
	f, ok := c.Locals(localsKey).(*File)
	return f, ok && f != nil
}

func reject(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   "Validation Error",
		"message": msg,
	})
}
