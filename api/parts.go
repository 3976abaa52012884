package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jacentio/warehouse/catalog"
)

func (s *Server) createPart(c *gin.Context) {
	var in catalog.PartInput
	if !bindJSON(c, &in) {
		return
	}

	created, err := s.parts.AddPart(c.Request.Context(), in)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) getPart(c *gin.Context) {
	p, err := s.parts.GetPart(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) updatePart(c *gin.Context) {
	var patch catalog.PartUpdate
	if !bindJSON(c, &patch) {
		return
	}

	updated, err := s.parts.EditPart(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) deletePart(c *gin.Context) {
	if err := s.parts.RemovePart(c.Request.Context(), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) searchParts(c *gin.Context) {
	q, err := catalog.ParseSearchQuery(c.Request.URL.Query())
	if err != nil {
		s.writeError(c, err)
		return
	}

	found, err := s.parts.SearchParts(c.Request.Context(), q)
	if err != nil {
		s.writeError(c, err)
		return
	}
	if found == nil {
		found = []catalog.Part{}
	}
	c.JSON(http.StatusOK, gin.H{"parts": found})
}
