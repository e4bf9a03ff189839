package httputil

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/devdox-ai/devdox-api/internal/errors"
)

const (
	// DefaultPageLimit is used when the limit query parameter is absent.
	DefaultPageLimit = 50
	// MaxPageLimit is the largest accepted limit.
	MaxPageLimit = 100
)

// Page is a parsed offset/limit pair.
type Page struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ParsePagination reads the offset and limit query parameters. Invalid values are reported
// as ErrInvalidInput.
func ParsePagination(c *gin.Context) (Page, error) {
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		return Page{}, apperrors.Wrap(apperrors.ErrInvalidInput, "offset must be a non-negative integer")
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultPageLimit)))
	if err != nil || limit < 1 || limit > MaxPageLimit {
		return Page{}, apperrors.Wrapf(apperrors.ErrInvalidInput, "limit must be between 1 and %d", MaxPageLimit)
	}

	return Page{Offset: offset, Limit: limit}, nil
}
