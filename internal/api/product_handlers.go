package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func (s *Server) listProducts(c *gin.Context) {
	products, err := s.products.List()
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProductResponses(products))
}

func (s *Server) getProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := s.products.Get(id)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProductResponse(product))
}

func (s *Server) createProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product name cannot be empty"})
		return
	}
	if req.PriceMinor < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product price cannot be negative"})
		return
	}

	created, err := s.products.Create(domain.Product{
		Name:       req.Name,
		PriceMinor: req.PriceMinor,
		Category:   req.Category,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProductResponse(created))
}

func (s *Server) deleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	deleted, err := s.products.Delete(id)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProductResponse(deleted))
}

func (s *Server) listProductsByCategory(c *gin.Context) {
	products, err := s.products.ListByCategory(c.Param("categoryName"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProductResponses(products))
}

func (s *Server) topProducts(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit: " + raw})
			return
		}
		limit = parsed
	}

	products, err := s.products.Top(limit)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProductResponses(products))
}
