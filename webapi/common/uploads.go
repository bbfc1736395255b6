package common

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sangamhq/sangam/pkg/config"
	"github.com/sangamhq/sangam/pkg/domain/common"
	"github.com/sangamhq/sangam/pkg/storage"
)

// SaveUpload stores one optional multipart file and returns its public
// reference, or "" when the part is absent.
func SaveUpload(
	c *fiber.Ctx,
	store storage.Storage,
	uploads *config.Uploads,
	field, category string,
) (string, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return "", nil
	}
	if header.Size > uploads.MaxSize {
		return "", fmt.Errorf("%w: file %s exceeds the upload size limit",
			common.ErrValidation, header.Filename)
	}
	f, err := header.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	return store.Save(c.Context(), category, header.Filename, f)
}
