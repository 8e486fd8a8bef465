package handlers

import (
	"strconv"
	"time"

	"turn_queue/internal/apperr"
	"turn_queue/internal/auth"
	"turn_queue/internal/models"
	"turn_queue/internal/notify"
	"turn_queue/internal/response"
	"turn_queue/internal/rollover"
	"turn_queue/internal/turns"
	"turn_queue/internal/windows"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Handler exposes the queue services over HTTP.
type Handler struct {
	Turns    *turns.Service
	Windows  *windows.Manager
	Rollover *rollover.Coordinator
	Logger   *zap.Logger
}

// NewRouter wires every route. authMW authenticates the caller and must set
// the identity read by auth.UserID.
func NewRouter(h *Handler, hub *notify.Hub, authMW gin.HandlerFunc) *gin.Engine {
	if h.Logger == nil {
		h.Logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(h.Logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if hub != nil {
		r.GET("/ws", hub.ServeWS)
	}
	r.GET("/windows/overview", h.GetOverviewHandler)

	api := r.Group("", authMW)
	{
		t := api.Group("/turns")
		t.POST("", h.CreateTicketHandler)
		t.GET("/recent", h.GetRecentHandler)
		t.GET("/pending", h.GetPendingHandler)
	}
	{
		w := api.Group("/windows")
		w.POST("/sessions", h.OpenSessionHandler)
		w.DELETE("/sessions", h.CloseSessionHandler)
		w.GET("/sessions/me", h.GetMySessionHandler)
		w.POST("/:number/next", h.TakeNextHandler)
		w.POST("/:number/serve/:ticketId", h.ServeHandler)
		w.POST("/:number/complete/:ticketId", h.CompleteHandler)
		w.POST("/:number/skip/:ticketId", h.SkipHandler)
		w.POST("/:number/bell", h.RingBellHandler)
		w.GET("/overview/internal", h.GetInternalOverviewHandler)
	}
	{
		a := api.Group("/admin", auth.RequireRole(auth.RoleAdmin))
		a.POST("/rollover", h.RolloverHandler)
		a.POST("/turns/purge-now", h.PurgeNowHandler)
		a.GET("/rollover/last", h.GetLastRolloverHandler)
		a.GET("/stats/operators", h.GetOperatorStatsHandler)
	}
	return r
}

func windowNumber(c *gin.Context) (int, bool) {
	n, err := strconv.Atoi(c.Param("number"))
	if err != nil || n <= 0 {
		response.BadRequest(c, apperr.CodeInvalidWindowNumber, "window number must be a positive integer", err)
		return 0, false
	}
	return n, true
}

// classQuery reads the optional ?class= filter.
func classQuery(c *gin.Context) (*models.PriorityClass, bool) {
	raw := c.Query("class")
	if raw == "" {
		return nil, true
	}
	class, ok := models.ParseClass(raw)
	if !ok {
		response.BadRequest(c, apperr.CodeInvalidPriorityClass, "unknown priority class", nil)
		return nil, false
	}
	return &class, true
}
