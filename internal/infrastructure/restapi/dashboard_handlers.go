package restapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"lendboard/internal/app/port"
	"lendboard/internal/domain/entity"

	"github.com/gin-gonic/gin"
)

// APIResponse определяет общую обертку ответа всех эндпоинтов.
type APIResponse struct {
	Data          any    `json:"data,omitempty"`
	StatusMessage string `json:"status_message"`
}

// SessionResponse возвращается при создании сессии.
type SessionResponse struct {
	SessionID string           `json:"sessionId"`
	Table     entity.TableView `json:"table"`
}

type createSessionRequest struct {
	Wallet string `json:"wallet"`
}

type selectTabRequest struct {
	Tab string `json:"tab" binding:"required"`
}

type changePageRequest struct {
	Action string `json:"action" binding:"required"` // next, previous or jump
	Page   int    `json:"page"`
}

// DashboardHandler обрабатывает HTTP запросы, связанные с таблицей дашборда.
type DashboardHandler struct {
	service     port.DashboardService
	waitTimeout time.Duration
}

// NewDashboardHandler создает новый экземпляр DashboardHandler. waitTimeout ограничивает запросы с ?wait=true.
func NewDashboardHandler(s port.DashboardService, waitTimeout time.Duration) *DashboardHandler {
	return &DashboardHandler{service: s, waitTimeout: waitTimeout}
}

// CreateSession открывает сессию для переданного кошелька. Пустое тело означает, что кошелек не подключен.
func (h *DashboardHandler) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}
	}

	session, err := h.service.OpenSession(c.Request.Context(), req.Wallet)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	h.maybeWait(c, session)

	c.JSON(http.StatusCreated, APIResponse{
		Data:          SessionResponse{SessionID: session.ID(), Table: session.Render()},
		StatusMessage: "Session created.",
	})
}

// GetTable возвращает текущую таблицу сессии.
func (h *DashboardHandler) GetTable(c *gin.Context) {
	session, ok := h.lookup(c)
	if !ok {
		return
	}
	h.maybeWait(c, session)
	respondTable(c, session, "Table rendered.")
}

// SelectTab переключает вкладку и сбрасывает пагинацию.
func (h *DashboardHandler) SelectTab(c *gin.Context) {
	session, ok := h.lookup(c)
	if !ok {
		return
	}
	var req selectTabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	tab, err := entity.ParseTab(req.Tab)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	session.SelectTab(tab)
	respondTable(c, session, "Tab selected.")
}

// ChangePage переключает страницу. Страницы вне диапазона игнорируются.
func (h *DashboardHandler) ChangePage(c *gin.Context) {
	session, ok := h.lookup(c)
	if !ok {
		return
	}
	var req changePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	switch req.Action {
	case "next":
		session.NextPage()
	case "previous":
		session.PreviousPage()
	case "jump":
		session.JumpToPage(req.Page)
	default:
		respondError(c, http.StatusBadRequest, errors.New("action must be one of next, previous, jump"))
		return
	}
	respondTable(c, session, "Page changed.")
}

// Refetch заново читает ончейн-данные сессии.
func (h *DashboardHandler) Refetch(c *gin.Context) {
	session, ok := h.lookup(c)
	if !ok {
		return
	}
	session.Refetch(c.Request.Context())
	h.maybeWait(c, session)
	respondTable(c, session, "Refetch started.")
}

// RetryPrices повторяет загрузку цен для сессии.
func (h *DashboardHandler) RetryPrices(c *gin.Context) {
	session, ok := h.lookup(c)
	if !ok {
		return
	}
	session.RetryPrices(c.Request.Context())
	h.maybeWait(c, session)
	respondTable(c, session, "Price fetch started.")
}

// CloseSession удаляет сессию.
func (h *DashboardHandler) CloseSession(c *gin.Context) {
	h.service.CloseSession(c.Param("id"))
	c.JSON(http.StatusOK, APIResponse{StatusMessage: "Session closed."})
}

// ListTokens возвращает реестр токенов.
func (h *DashboardHandler) ListTokens(c *gin.Context) {
	tokens := h.service.Tokens()
	c.JSON(http.StatusOK, APIResponse{
		Data:          gin.H{"tokens": tokens},
		StatusMessage: "Tokens retrieved successfully.",
	})
}

func (h *DashboardHandler) lookup(c *gin.Context) (port.DashboardSession, bool) {
	session, err := h.service.Session(c.Param("id"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, entity.ErrSessionNotFound) {
			status = http.StatusNotFound
		}
		respondError(c, status, err)
		return nil, false
	}
	return session, true
}

// maybeWait ждет завершения текущих загрузок, если клиент передал ?wait=true.
func (h *DashboardHandler) maybeWait(c *gin.Context, session port.DashboardSession) {
	wait, _ := strconv.ParseBool(c.Query("wait"))
	if !wait {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.waitTimeout)
	defer cancel()
	if err := session.Wait(ctx); err != nil {
		_ = c.Error(err)
	}
}

func respondTable(c *gin.Context, session port.DashboardSession, msg string) {
	c.JSON(http.StatusOK, APIResponse{Data: session.Render(), StatusMessage: msg})
}

func respondError(c *gin.Context, status int, err error) {
	_ = c.Error(err)
	c.JSON(status, APIResponse{StatusMessage: err.Error()})
}
