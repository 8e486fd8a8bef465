package handlers

import (
	"net/http"
	"strconv"

	"turn_queue/internal/models"
	"turn_queue/internal/response"
	"turn_queue/internal/turns"

	"github.com/gin-gonic/gin"
)

// CreateTicketHandler godoc
// @Summary		Issue a ticket
// @Description	Allocates the next number of today and creates a PENDING ticket
// @Tags			turns
// @Accept			json
// @Produce		json
// @Param			ticket	body		turns.CreateRequest		false	"Priority class and optional start override"
// @Security		BearerAuth
// @Success		201		{object}	models.Ticket
// @Failure		400		{object}	response.ErrorResponse	"INVALID_PRIORITY_CLASS, INVALID_START_OVERRIDE"
// @Failure		409		{object}	response.ErrorResponse	"RACE_LOST"
// @Failure		500		{object}	response.ErrorResponse	"DB_ERROR"
// @Router			/turns [post]
func (h *Handler) CreateTicketHandler(c *gin.Context) {
	var req turns.CreateRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "VALIDATION_ERROR", "invalid request body", err)
			return
		}
	}

	ticket, err := h.Turns.CreateTicket(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, ticket)
}

// GetRecentHandler godoc
// @Summary		Recent tickets
// @Description	Today's tickets, newest first
// @Tags			turns
// @Produce		json
// @Param			limit	query	int	false	"1..50"	default(10)
// @Security		BearerAuth
// @Success		200	{array}		models.Ticket
// @Failure		400	{object}	response.ErrorResponse	"VALIDATION_ERROR"
// @Router			/turns/recent [get]
func (h *Handler) GetRecentHandler(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(c, "VALIDATION_ERROR", "limit must be an integer", err)
			return
		}
		limit = n
	}

	list, err := h.Turns.Recent(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetPendingHandler godoc
// @Summary		Pending tickets
// @Description	Today's PENDING tickets in the order they will be called
// @Tags			turns
// @Produce		json
// @Param			class		query	string	false	"STANDARD | PRIORITY | EXEMPT"
// @Param			audience	query	string	false	"internal | public"
// @Security		BearerAuth
// @Success		200	{array}		models.Ticket
// @Failure		400	{object}	response.ErrorResponse	"INVALID_PRIORITY_CLASS"
// @Router			/turns/pending [get]
func (h *Handler) GetPendingHandler(c *gin.Context) {
	class, ok := classQuery(c)
	if !ok {
		return
	}
	list, err := h.Turns.Pending(c.Request.Context(), class, models.ParseAudience(c.Query("audience")))
	if err != nil {
		response.Error(c, err)
		return
	}
	if list == nil {
		list = []models.Ticket{}
	}
	c.JSON(http.StatusOK, list)
}
