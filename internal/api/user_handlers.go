package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/service/auth"
)

func (s *Server) listUsers(c *gin.Context) {
	users, err := s.users.List()
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponses(users))
}

// getUser отдаёт пользователя вместе с его последними заказами.
// Число заказов ограничивается query-параметром limit.
func (s *Server) getUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit: " + raw})
			return
		}
		limit = parsed
	}

	user, err := s.users.Get(id)
	if err != nil {
		s.respondError(c, err)
		return
	}

	recent, err := s.orders.RecentForUser(user.ID, limit)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, userWithRecentOrdersResponse{
		User:         toUserResponse(user),
		RecentOrders: toOrderResponses(recent),
	})
}

// createUser регистрирует пользователя и сразу выдаёт токен.
func (s *Server) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.UserName == "" || req.FirstName == "" || req.LastName == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_name, first_name, last_name and password are required"})
		return
	}

	created, err := s.auth.Register(domain.User{
		UserName:  req.UserName,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.respondError(c, err)
		return
	}

	token, err := s.auth.Authenticate(req.UserName, req.Password)
	if err != nil {
		s.respondError(c, err)
		return
	}

	user := toUserResponse(created)
	c.JSON(http.StatusOK, tokenResponse{Token: token, User: &user})
}

func (s *Server) signIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	token, err := s.auth.Authenticate(req.UserName, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenResponse{Token: token})
}

func (s *Server) deleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	deleted, err := s.users.Delete(id)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(deleted))
}
