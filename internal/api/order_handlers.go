package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/messaging/kafka"
)

// parseIDParam разбирает числовой параметр пути; при мусоре отвечает 400.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + ": " + c.Param(name)})
		return 0, false
	}
	return id, true
}

// parsePageQuery собирает параметры страницы из pagesize/pagenumber.
// Отсутствующий параметр оставляет значение по умолчанию; нечисловой — 400.
func parsePageQuery(c *gin.Context) (domain.Page, bool) {
	page := domain.DefaultPage()

	if raw := c.Query("pagesize"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pagesize: " + raw})
			return domain.Page{}, false
		}
		page.Size = size
	}
	if raw := c.Query("pagenumber"); raw != "" {
		number, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pagenumber: " + raw})
			return domain.Page{}, false
		}
		page.Number = number
	}

	return page, true
}

func (s *Server) listOrders(c *gin.Context) {
	page, ok := parsePageQuery(c)
	if !ok {
		return
	}

	start := time.Now()
	orders, err := s.orders.List(page)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if s.metrics != nil {
		s.metrics.RecordQueryDuration("list", time.Since(start))
	}

	c.JSON(http.StatusOK, toOrderResponses(orders))
}

func (s *Server) getOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	start := time.Now()
	order, err := s.orders.Get(id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if s.metrics != nil {
		s.metrics.RecordQueryDuration("get", time.Since(start))
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}

func (s *Server) createOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	candidate := domain.Order{
		ID:     domain.PendingOrderID,
		Status: domain.OrderStatus(req.Status),
		Date:   req.Date,
		UserID: req.UserID,
	}
	for _, line := range req.Lines {
		candidate.Lines = append(candidate.Lines, domain.OrderLine{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	if errs := candidate.ValidateCandidate(); len(errs) > 0 {
		messages := make([]string, 0, len(errs))
		for _, err := range errs {
			messages = append(messages, err.Error())
		}
		c.JSON(http.StatusBadRequest, gin.H{"errors": messages})
		return
	}

	start := time.Now()
	created, err := s.orders.Create(candidate)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordOrderFailed()
		}
		s.respondError(c, err)
		return
	}
	if s.metrics != nil {
		s.metrics.RecordOrderCreated()
		s.metrics.RecordCreateDuration(time.Since(start))
	}
	s.publishOrderEvent(kafka.EventTypeOrderCreated, created.ID, created.UserID, string(created.Status))

	c.JSON(http.StatusOK, toOrderResponse(created))
}

func (s *Server) deleteOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	deleted, err := s.orders.Delete(id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if s.metrics != nil {
		s.metrics.RecordOrderDeleted()
	}
	s.publishOrderEvent(kafka.EventTypeOrderDeleted, deleted.ID, deleted.UserID, string(deleted.Status))

	c.JSON(http.StatusOK, toOrderResponse(deleted))
}

func (s *Server) userCurrentOrder(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	order, err := s.orders.CurrentForUser(userID)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}

func (s *Server) userCompletedOrders(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	orders, err := s.orders.CompletedForUser(userID)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponses(orders))
}

func (s *Server) addOrderLine(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req addProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Quantity <= 0 {
		s.respondError(c, domain.ErrLineQuantityInvalid)
		return
	}

	line, err := s.orders.AddLine(orderID, req.ProductID, req.Quantity)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if s.metrics != nil {
		s.metrics.RecordLineAdded()
	}
	s.publishOrderEvent(kafka.EventTypeOrderLineAdded, line.OrderID, 0, "")

	c.JSON(http.StatusOK, toOrderLineResponse(line))
}

func (s *Server) removeOrderLine(c *gin.Context) {
	lineID, ok := parseIDParam(c, "lineId")
	if !ok {
		return
	}

	removed, err := s.orders.RemoveLine(lineID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if s.metrics != nil {
		s.metrics.RecordLineRemoved()
	}

	c.JSON(http.StatusOK, toOrderLineResponse(removed))
}

// publishOrderEvent отправляет событие в Kafka, если producer настроен.
// Ошибка публикации не ломает уже зафиксированную операцию, только логируется.
func (s *Server) publishOrderEvent(eventType kafka.EventType, orderID, userID int64, status string) {
	if s.producer == nil {
		return
	}
	event := kafka.NewOrderEvent(eventType, orderID, userID, status)
	if err := s.producer.PublishOrderEvent(event); err != nil {
		s.logger.WithError(err).WithField("order_id", orderID).Warn("order event not published")
	}
}
