package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// respondError переводит доменные ошибки в HTTP-статусы:
// не найдено — 404, некорректный ввод — 400, битая ссылка — 422,
// занятый логин — 409, всё остальное — 500 без деталей.
func (s *Server) respondError(c *gin.Context, err error) {
	switch {
	case domain.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidPagination),
		errors.Is(err, domain.ErrOrderStatusInvalid),
		errors.Is(err, domain.ErrUserIDRequired),
		errors.Is(err, domain.ErrOrderDateRequired),
		errors.Is(err, domain.ErrLineQuantityInvalid),
		errors.Is(err, domain.ErrLineProductRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrReferenceNotFound):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUserNameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		s.logger.WithError(err).WithFields(log.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
