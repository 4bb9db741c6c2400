package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/example/casino-admin/internal/auth"
	"github.com/example/casino-admin/internal/logging"
	"github.com/example/casino-admin/internal/pagination"
	"github.com/example/casino-admin/internal/usecase"
)

// respondError maps use case errors onto status codes. Anything that is not
// a caller mistake or a missing record is a 500 carrying the raw message.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, usecase.ErrInvalidInput), errors.Is(err, pagination.ErrInvalid):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// actorFrom builds the audit actor from the validated identity and request.
func actorFrom(c *gin.Context) usecase.Actor {
	id, _ := auth.IdentityFrom(c.Request.Context())
	return usecase.Actor{
		UserID:    id.UserID,
		Username:  id.Username,
		Role:      string(id.Role),
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		RequestID: logging.RequestID(c),
	}
}

// paged is a query struct embedding pagination.Query.
type paged interface {
	Params() (pagination.Params, error)
}

// bindPaged binds the query string into q and returns its page window.
func bindPaged(c *gin.Context, q paged) (pagination.Params, bool) {
	if err := c.ShouldBindQuery(q); err != nil {
		badRequest(c, err)
		return pagination.Params{}, false
	}
	p, err := q.Params()
	if err != nil {
		badRequest(c, err)
		return pagination.Params{}, false
	}
	return p, true
}

// listResponse renders a page as {<plural>, total, page, pages}.
func listResponse[T any](c *gin.Context, plural string, res usecase.ListResult[T]) {
	c.JSON(http.StatusOK, gin.H{
		plural:  res.Items,
		"total": res.Total,
		"page":  res.Page.Page,
		"pages": res.Page.Pages,
	})
}

func created(c *gin.Context, id, message string) {
	c.JSON(http.StatusOK, gin.H{"id": id, "message": message})
}

// parseOptionalTime accepts RFC 3339 or a bare YYYY-MM-DD date. A bare date
// closing a range becomes the following midnight, reported as an exclusive
// bound, so the whole day is covered.
func parseOptionalTime(key, raw string, endOfRange bool) (*time.Time, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false, nil
	}
	if v, err := time.Parse(time.RFC3339, raw); err == nil {
		v = v.UTC()
		return &v, false, nil
	}
	v, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %s must be RFC 3339 or YYYY-MM-DD", usecase.ErrInvalidInput, key)
	}
	if endOfRange {
		v = v.AddDate(0, 0, 1)
	}
	return &v, endOfRange, nil
}
