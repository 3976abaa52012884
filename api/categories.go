package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jacentio/warehouse/catalog"
)

func (s *Server) createCategory(c *gin.Context) {
	var in catalog.CategoryInput
	if !bindJSON(c, &in) {
		return
	}

	created, err := s.categories.AddCategory(c.Request.Context(), in)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) listCategories(c *gin.Context) {
	all, err := s.categories.ListCategories(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	if all == nil {
		all = []catalog.Category{}
	}
	c.JSON(http.StatusOK, gin.H{"categories": all})
}

func (s *Server) getCategory(c *gin.Context) {
	cat, err := s.categories.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (s *Server) updateCategory(c *gin.Context) {
	var patch catalog.CategoryUpdate
	if !bindJSON(c, &patch) {
		return
	}

	updated, err := s.categories.EditCategory(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteCategory(c *gin.Context) {
	if err := s.categories.RemoveCategory(c.Request.Context(), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
