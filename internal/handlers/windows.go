package handlers

import (
	"context"
	"net/http"

	"turn_queue/internal/auth"
	"turn_queue/internal/models"
	"turn_queue/internal/response"

	"github.com/gin-gonic/gin"
)

type OpenSessionRequest struct {
	// WINDOW (default) or ASSIGNER
	Mode         string `json:"mode" example:"WINDOW"`
	WindowNumber int    `json:"windowNumber" example:"3"`
}

type BellResponse struct {
	WindowNumber int  `json:"windowNumber"`
	TicketNumber *int `json:"ticketNumber,omitempty"`
}

// OpenSessionHandler godoc
// @Summary		Take a window
// @Description	Opens a session binding the caller to a window, closing any session the caller already had
// @Tags			windows
// @Accept			json
// @Produce		json
// @Param			session	body		OpenSessionRequest	true	"Window to take"
// @Security		BearerAuth
// @Success		201		{object}	models.WorkerSession
// @Failure		400		{object}	response.ErrorResponse	"VALIDATION_ERROR, INVALID_WINDOW_NUMBER"
// @Failure		404		{object}	response.ErrorResponse	"WINDOW_NOT_FOUND"
// @Failure		409		{object}	response.ErrorResponse	"WINDOW_BUSY"
// @Router			/windows/sessions [post]
func (h *Handler) OpenSessionHandler(c *gin.Context) {
	var req OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "VALIDATION_ERROR", "invalid request body", err)
		return
	}

	ctx := c.Request.Context()
	userID := auth.UserID(c)
	var (
		session *models.WorkerSession
		err     error
	)
	switch models.SessionMode(req.Mode) {
	case models.SessionAssigner:
		session, err = h.Windows.OpenAssignerSession(ctx, userID)
	case models.SessionWindow, "":
		session, err = h.Windows.OpenSession(ctx, userID, req.WindowNumber)
	default:
		response.BadRequest(c, "VALIDATION_ERROR", "mode must be WINDOW or ASSIGNER", nil)
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// CloseSessionHandler godoc
// @Summary		Leave the window
// @Description	Closes the caller's open session. Succeeds when nothing is open.
// @Tags			windows
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	response.SuccessResponse
// @Router			/windows/sessions [delete]
func (h *Handler) CloseSessionHandler(c *gin.Context) {
	closed, err := h.Windows.CloseSession(c.Request.Context(), auth.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	msg := "session closed"
	if closed == nil {
		msg = "no open session"
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Message: msg})
}

// GetMySessionHandler godoc
// @Summary		Current session
// @Tags			windows
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	models.WorkerSession
// @Failure		404	{object}	response.ErrorResponse	"SESSION_NOT_FOUND"
// @Router			/windows/sessions/me [get]
func (h *Handler) GetMySessionHandler(c *gin.Context) {
	session, err := h.Windows.MySession(c.Request.Context(), auth.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	if session == nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{Code: "SESSION_NOT_FOUND", Message: "no open session"})
		return
	}
	c.JSON(http.StatusOK, session)
}

// TakeNextHandler godoc
// @Summary		Call the next ticket
// @Description	Calls the next pending ticket to the window. Priority class first, then lowest number.
// @Tags			windows
// @Produce		json
// @Param			number	path	int		true	"Window number"
// @Param			class	query	string	false	"Restrict to one priority class"
// @Security		BearerAuth
// @Success		200	{object}	models.Ticket
// @Failure		400	{object}	response.ErrorResponse	"INVALID_WINDOW_NUMBER, INVALID_PRIORITY_CLASS"
// @Failure		403	{object}	response.ErrorResponse	"NOT_WINDOW_OWNER"
// @Failure		404	{object}	response.ErrorResponse	"WINDOW_NOT_FOUND, QUEUE_EMPTY"
// @Failure		409	{object}	response.ErrorResponse	"RACE_LOST"
// @Router			/windows/{number}/next [post]
func (h *Handler) TakeNextHandler(c *gin.Context) {
	number, ok := windowNumber(c)
	if !ok {
		return
	}
	class, ok := classQuery(c)
	if !ok {
		return
	}
	ticket, err := h.Turns.TakeNext(c.Request.Context(), auth.UserID(c), number, class)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// ServeHandler godoc
// @Summary		Start serving a called ticket
// @Tags			windows
// @Produce		json
// @Param			number		path	int		true	"Window number"
// @Param			ticketId	path	string	true	"Ticket ID"
// @Security		BearerAuth
// @Success		200	{object}	models.Ticket
// @Failure		400	{object}	response.ErrorResponse	"INVALID_WINDOW_NUMBER, INVALID_TICKET_ID"
// @Failure		403	{object}	response.ErrorResponse	"NOT_WINDOW_OWNER, TICKET_OTHER_WINDOW"
// @Failure		404	{object}	response.ErrorResponse	"WINDOW_NOT_FOUND, TICKET_NOT_FOUND"
// @Failure		409	{object}	response.ErrorResponse	"INVALID_TRANSITION"
// @Router			/windows/{number}/serve/{ticketId} [post]
func (h *Handler) ServeHandler(c *gin.Context) {
	h.ticketAction(c, h.Turns.MarkServing)
}

// CompleteHandler godoc
// @Summary		Complete a ticket
// @Tags			windows
// @Produce		json
// @Param			number		path	int		true	"Window number"
// @Param			ticketId	path	string	true	"Ticket ID"
// @Security		BearerAuth
// @Success		200	{object}	models.Ticket
// @Failure		400	{object}	response.ErrorResponse	"INVALID_WINDOW_NUMBER, INVALID_TICKET_ID"
// @Failure		403	{object}	response.ErrorResponse	"NOT_WINDOW_OWNER, TICKET_OTHER_WINDOW"
// @Failure		404	{object}	response.ErrorResponse	"WINDOW_NOT_FOUND, TICKET_NOT_FOUND"
// @Failure		409	{object}	response.ErrorResponse	"INVALID_TRANSITION"
// @Router			/windows/{number}/complete/{ticketId} [post]
func (h *Handler) CompleteHandler(c *gin.Context) {
	h.ticketAction(c, h.Turns.Complete)
}

// SkipHandler godoc
// @Summary		Skip a ticket (no-show)
// @Tags			windows
// @Produce		json
// @Param			number		path	int		true	"Window number"
// @Param			ticketId	path	string	true	"Ticket ID"
// @Security		BearerAuth
// @Success		200	{object}	models.Ticket
// @Failure		400	{object}	response.ErrorResponse	"INVALID_WINDOW_NUMBER, INVALID_TICKET_ID"
// @Failure		403	{object}	response.ErrorResponse	"NOT_WINDOW_OWNER, TICKET_OTHER_WINDOW"
// @Failure		404	{object}	response.ErrorResponse	"WINDOW_NOT_FOUND, TICKET_NOT_FOUND"
// @Failure		409	{object}	response.ErrorResponse	"INVALID_TRANSITION"
// @Router			/windows/{number}/skip/{ticketId} [post]
func (h *Handler) SkipHandler(c *gin.Context) {
	h.ticketAction(c, h.Turns.Skip)
}

type ticketActionFunc func(ctx context.Context, operatorID string, number int, ticketID string) (*models.Ticket, error)

func (h *Handler) ticketAction(c *gin.Context, action ticketActionFunc) {
	number, ok := windowNumber(c)
	if !ok {
		return
	}
	ticket, err := action(c.Request.Context(), auth.UserID(c), number, c.Param("ticketId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// RingBellHandler godoc
// @Summary		Ring the window bell
// @Description	Re-announces the window's current ticket on the lobby display
// @Tags			windows
// @Produce		json
// @Param			number	path	int	true	"Window number"
// @Security		BearerAuth
// @Success		200	{object}	BellResponse
// @Failure		403	{object}	response.ErrorResponse	"NOT_WINDOW_OWNER"
// @Failure		404	{object}	response.ErrorResponse	"WINDOW_NOT_FOUND"
// @Router			/windows/{number}/bell [post]
func (h *Handler) RingBellHandler(c *gin.Context) {
	number, ok := windowNumber(c)
	if !ok {
		return
	}
	ticketNumber, err := h.Windows.RingBell(c.Request.Context(), auth.UserID(c), number)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, BellResponse{WindowNumber: number, TicketNumber: ticketNumber})
}

// GetOverviewHandler godoc
// @Summary		Lobby display overview
// @Description	Active windows with their current ticket and the next pending tickets. Classes hidden from the public are left out.
// @Tags			windows
// @Produce		json
// @Success		200	{object}	windows.Overview
// @Router			/windows/overview [get]
func (h *Handler) GetOverviewHandler(c *gin.Context) {
	h.overview(c, models.AudiencePublic)
}

// GetInternalOverviewHandler godoc
// @Summary		Staff overview
// @Description	Same as the lobby overview, including every class
// @Tags			windows
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	windows.Overview
// @Router			/windows/overview/internal [get]
func (h *Handler) GetInternalOverviewHandler(c *gin.Context) {
	h.overview(c, models.AudienceInternal)
}

func (h *Handler) overview(c *gin.Context, audience models.Audience) {
	out, err := h.Windows.Overview(c.Request.Context(), audience)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
