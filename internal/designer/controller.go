package designer

import (
	"net/http"

	"seatly/internal/layout"
	"seatly/internal/preview"
	"seatly/internal/shared/utils/response"
	"seatly/internal/tickets"
	"seatly/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	manager *Manager
}

func NewController(manager *Manager) *Controller {
	return &Controller{manager: manager}
}

// ownerID pulls the authenticated user id set by the auth middleware. An
// anonymous fallback keeps the designer usable in development.
func ownerID(ctx *gin.Context) string {
	if v, ok := ctx.Get("user_id"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return "anonymous"
}

func (c *Controller) session(ctx *gin.Context) *Session {
	s, err := c.manager.Get(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Session not found", nil, err.Error())
		return nil
	}
	return s
}

//  SESSION LIFECYCLE

func (c *Controller) CreateSession(ctx *gin.Context) {
	var req CreateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	if req.SeatingMap != nil {
		if err := req.SeatingMap.Validate(); err != nil {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid seating map", nil, err.Error())
			return
		}
	}

	s := c.manager.Create(ownerID(ctx), layout.LayoutType(req.LayoutType), req.SeatingMap)
	logger.GetDefault().LogSessionCreated(ctx.Request.Context(), s.ID, s.OwnerID, req.LayoutType)
	response.RespondJSON(ctx, "success", http.StatusCreated, "Designer session created", ToResponse(s), nil)
}

func (c *Controller) GetSession(ctx *gin.Context) {
	s := c.session(ctx)
	if s == nil {
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Session retrieved", ToResponse(s), nil)
}

func (c *Controller) CloseSession(ctx *gin.Context) {
	if s := c.session(ctx); s == nil {
		return
	}
	c.manager.Close(ctx.Param("id"))
	response.RespondJSON(ctx, "success", http.StatusOK, "Session closed", nil, nil)
}

//  TOOL STATE

func (c *Controller) SetMode(ctx *gin.Context) {
	s := c.session(ctx)
	if s == nil {
		return
	}
	var req SetModeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}
	if err := s.SetMode(Mode(req.Mode)); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Failed to switch mode", nil, err.Error())
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Mode updated", ToResponse(s), nil)
}

func (c *Controller) Click(ctx *gin.Context) {
	s := c.session(ctx)
	if s == nil {
		return
	}
	var req ClickRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}
	id := s.Click(layout.Point{X: req.X, Y: req.Y})
	response.RespondJSON(ctx, "success", http.StatusOK, "Click handled", MutationResponse{
		Applied:   id != "",
		ElementID: id,
		Session:   ToResponse(s),
	}, nil)
}

func (c *Controller) AddObject(ctx *gin.Context) {
	s := c.session(ctx)
	if s == nil {
		return
	}
	var req AddObjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}
	id := s.AddObject(req.Type)
	response.RespondJSON(ctx, "success", http.StatusCreated, "Venue object added", MutationResponse{
		Applied:   true,
		ElementID: id,
		Session:   ToResponse(s),
	}, nil)
}

func (c *Controller) Select(ctx *gin.Context) {
	s := c.session(ctx)
	if s == nil {
		return
	}
	var req SelectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}
	applied := s.Select(layout.ElementKind(req.Kind), req.ID)
	response.RespondJSON(ctx, "success", http.StatusOK, "Selection updated", MutationResponse{
		Applied: applied,
		Session: ToResponse(s),
	}, nil)
}

//  DRAG GESTURES

func (c *Controller) StartDrag(ctx *gin.Context) {
	s := c.session(ctx)
	if s == nil {
		return
	}
	var req StartDragRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}
	applied := s.StartDrag(
		layout.ElementKind(req.Kind), req.ID,
		layout.Point{X: req.X, Y: req.Y},
		req.Zoom,
		layout.Point{X: req.PanX, Y: req.PanY},
	)
	response.RespondJSON(ctx, "success", http.StatusOK, "Drag started", MutationResponse{
		Applied: applied,
		Session: ToResponse(s),
	}, nil)
}

func (c *Controller) DragMove(ctx *gin.Context) {
	s := c.session(ctx)
	if s == nil {
		return
	}
	var req DragMoveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}
	applied := s.DragMove(layout.Point{X: req.X, Y: req.Y})
	response.RespondJSON(ctx, "success", http.StatusOK, "Drag moved", MutationResponse{
		Applied: applied,
		Session: ToResponse(s),
	}, nil)
}

func (c *Controller) EndDrag(ctx *gin.Context) {
	s := c.session(ctx)
	if s == nil {
		return
	}
	applied := s.EndDrag()
	response.RespondJSON(ctx, "success", http.StatusOK, "Drag ended", MutationResponse{
		Applied: applied,
		Session: ToResponse(s),
	}, nil)
}

//  SECTIONS AND OBJECTS

func (c *Controller) PatchSection(ctx *gin.Context) {
	s := c.session(ctx)
	if s == nil {
		return
	}
	var patch layout.SectionPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}
	applied := s.ApplySectionPatch(ctx.Param("sectionId"), patch)
	if !applied {
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Section not found", nil, "unknown section id")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Section updated", MutationResponse{
		Applied: true,
		Session: ToResponse(s),
	}, nil)
}

func (c *Controller) DeleteSection(ctx *gin.Context) {
	s := c.session(ctx)
	if s == nil {
		return
	}
	if !s.DeleteSection(ctx.Param("sectionId")) {
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Section not found", nil, "unknown section id")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Section deleted", ToResponse(s), nil)
}

func (c *Controller) DeleteObject(ctx *gin.Context) {
	s := c.session(ctx)
	if s == nil {
		return
	}
	if !s.DeleteObject(ctx.Param("objectId")) {
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Venue object not found", nil, "unknown object id")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Venue object deleted", ToResponse(s), nil)
}

//  HISTORY

func (c *Controller) Undo(ctx *gin.Context) {
	s := c.session(ctx)
	if s == nil {
		return
	}
	applied := s.Undo()
	response.RespondJSON(ctx, "success", http.StatusOK, "Undo handled", MutationResponse{
		Applied: applied,
		Session: ToResponse(s),
	}, nil)
}

func (c *Controller) Redo(ctx *gin.Context) {
	s := c.session(ctx)
	if s == nil {
		return
	}
	applied := s.Redo()
	response.RespondJSON(ctx, "success", http.StatusOK, "Redo handled", MutationResponse{
		Applied: applied,
		Session: ToResponse(s),
	}, nil)
}

//  ARRANGE AND PREVIEW

func (c *Controller) Arrange(ctx *gin.Context) {
	s := c.session(ctx)
	if s == nil {
		return
	}
	adjusted := s.Arrange()
	logger.GetDefault().LogLayoutArranged(ctx.Request.Context(), s.ID, len(s.Model().Sections), adjusted)
	response.RespondJSON(ctx, "success", http.StatusOK, "Layout arranged", ArrangeResponse{
		Adjusted: adjusted,
		Session:  ToResponse(s),
	}, nil)
}

func (c *Controller) Preview(ctx *gin.Context) {
	s := c.session(ctx)
	if s == nil {
		return
	}
	m := s.Model()
	catalog := s.Catalog()
	colors := make(map[string]string, len(catalog.Types))
	for _, t := range catalog.Types {
		colors[t.Name] = t.Color
	}
	scene := preview.Render(m, preview.Options{TicketColors: colors})
	response.RespondJSON(ctx, "success", http.StatusOK, "Preview rendered", scene, nil)
}

//  TICKET TYPES

func (c *Controller) EditTicket(ctx *gin.Context) {
	s := c.session(ctx)
	if s == nil {
		return
	}
	var req tickets.EditRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}
	if err := s.EditTicket(ctx.Param("name"), req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Failed to edit ticket type", nil, err.Error())
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Ticket type updated", ToResponse(s), nil)
}

func (c *Controller) ResetTickets(ctx *gin.Context) {
	s := c.session(ctx)
	if s == nil {
		return
	}
	s.ResetTickets()
	response.RespondJSON(ctx, "success", http.StatusOK, "Ticket types reset to auto sync", ToResponse(s), nil)
}

//  DRAFTS

func (c *Controller) SaveDraft(ctx *gin.Context) {
	s := c.session(ctx)
	if s == nil {
		return
	}
	if err := c.manager.SaveDraft(ctx.Request.Context(), s); err != nil {
		response.RespondJSON(ctx, "error", http.StatusServiceUnavailable, "Failed to save draft", nil, err.Error())
		return
	}
	logger.GetDefault().LogDraftSaved(ctx.Request.Context(), s.ID, s.OwnerID)
	response.RespondJSON(ctx, "success", http.StatusOK, "Draft saved", gin.H{"draft_id": s.ID}, nil)
}

func (c *Controller) RestoreDraft(ctx *gin.Context) {
	s, err := c.manager.RestoreDraft(ctx.Request.Context(), ctx.Param("id"), ownerID(ctx))
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err.Error() == "draft not found" {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to restore draft", nil, err.Error())
		return
	}
	response.RespondJSON(ctx, "success", http.StatusCreated, "Draft restored", ToResponse(s), nil)
}
