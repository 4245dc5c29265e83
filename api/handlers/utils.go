package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/taskio/taskboard/pkg/service"
)

// respondError translates a service error into the matching HTTP
// status. Unknown errors surface as a generic server error.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidPage),
		errors.Is(err, service.ErrDuplicateEmail),
		errors.Is(err, service.ErrMissingToken),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrNotCreator),
		errors.Is(err, service.ErrNotMember),
		errors.Is(err, service.ErrNoTags),
		errors.Is(err, service.ErrTaskCompleted):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// pathID parses the :id path parameter. On failure it writes a 400 and
// returns false.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// pageParams reads the page and size query parameters. Absent or
// malformed values come back as zero; the services reject non-positive
// pages before touching the store.
func pageParams(c *gin.Context) (page, size int) {
	page, _ = strconv.Atoi(c.Query("page"))
	size, _ = strconv.Atoi(c.Query("size"))
	return page, size
}

// uintQuery reads an optional numeric query parameter.
func uintQuery(c *gin.Context, name string) *uint {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil
	}
	v := uint(n)
	return &v
}
