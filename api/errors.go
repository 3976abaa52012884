package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/jacentio/warehouse/catalog"
)

// ruleMessages are the response texts of the catalog rule violations.
var ruleMessages = []struct {
	err     error
	message string
}{
	{catalog.ErrNameConflict, "Category with this name already exists."},
	{catalog.ErrSelfParent, "Category's name and parent_name cannot be equal - category cannot be its parent category."},
	{catalog.ErrCyclicParent, "Category cannot become subcategory of its own subcategory."},
	{catalog.ErrCannotBaseWithParts, "Cannot make base category from category that has parts assigned."},
	{catalog.ErrHasAssignedParts, "Cannot delete this category, because it has parts assigned, or it has child categories with parts assigned."},
	{catalog.ErrSerialConflict, "Part with this serial number already exists."},
	{catalog.ErrMissingCategory, "Category field cannot be null. The part must be assigned to category."},
	{catalog.ErrUnknownCategory, "Cannot assign part to non-existent category."},
	{catalog.ErrBaseCategoryAssignment, "Cannot assign part to base category."},
	{catalog.ErrLocationRequired, "Location field cannot be null."},
	{catalog.ErrConflict, "The document was modified concurrently. Please retry."},
}

// detail returns the user-facing text for a catalog error.
func detail(err error) string {
	var (
		notFound      *catalog.NotFoundError
		invalidID     *catalog.InvalidIDError
		unknownParent *catalog.UnknownParentError
		deleteFailed  *catalog.DeleteFailedError
	)
	switch {
	case errors.As(err, &notFound):
		return fmt.Sprintf("%s with ID: %s doesn't exist.", capitalize(notFound.Kind), notFound.ID)
	case errors.As(err, &invalidID):
		return fmt.Sprintf("Invalid %s ID provided.", invalidID.Kind)
	case errors.As(err, &unknownParent):
		return fmt.Sprintf("Parent category named '%s' doesn't exist.", unknownParent.Name)
	case errors.As(err, &deleteFailed):
		return fmt.Sprintf("Attempt to delete %s with ID: %s failed. Please try again later.", deleteFailed.Kind, deleteFailed.ID)
	}

	for _, m := range ruleMessages {
		if errors.Is(err, m.err) {
			return m.message
		}
	}
	return strings.TrimPrefix(err.Error(), "catalog: ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// writeError translates a service error into a status code and body.
func (s *Server) writeError(c *gin.Context, err error) {
	var fieldErrs validation.Errors
	switch {
	case errors.As(err, &fieldErrs):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"detail": "Request validation failed.",
			"errors": fieldErrs,
		})
	case errors.Is(err, catalog.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": detail(err)})
	case errors.Is(err, catalog.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"detail": detail(err)})
	case catalog.IsInvalidInput(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": detail(err)})
	case errors.Is(err, catalog.ErrDeleteFailed):
		c.JSON(http.StatusInternalServerError, gin.H{"detail": detail(err)})
	default:
		s.logger.Error("request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
	}
}

// bindJSON decodes the request body into v, answering 422 on failure.
func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Malformed request body: " + err.Error()})
		return false
	}
	return true
}
