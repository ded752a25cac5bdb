package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"vitalsim/internal/app/consume"
	"vitalsim/internal/app/effects"
	"vitalsim/internal/app/inventory"
	"vitalsim/internal/app/ports"
	"vitalsim/internal/app/status"
	"vitalsim/internal/app/tick"
	"vitalsim/internal/domain/conditions"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const sessionIDHeader = "X-Session-ID"

const defaultNotificationLimit = 50

type Handler struct {
	StatusUC      status.UseCase
	ConsumeUC     consume.UseCase
	TickUC        tick.UseCase
	EffectsUC     effects.UseCase
	InventoryUC   inventory.UseCase
	Notifications ports.NotificationRepository
	Catalog       *conditions.Catalog
	KPI           kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware(), tracingMiddleware())

	session := s.Group("/api/session")
	session.POST("/status", h.status)
	session.POST("/consume", h.consume)
	session.POST("/apply", h.apply)
	session.POST("/tick", h.tick)
	session.POST("/remove", h.remove)
	session.POST("/inflict", h.inflict)
	session.POST("/archetype", h.archetype)
	session.POST("/items", h.addItem)
	session.POST("/addiction", h.setAddiction)
	session.GET("/notifications", h.notifications)

	s.GET("/api/catalog", h.catalog)
	s.GET("/ops/kpi", h.kpi)
}

type sessionRequest struct {
	SessionID string `json:"session_id"`
}

type consumeRequest struct {
	SessionID string `json:"session_id"`
	ItemName  string `json:"item_name"`
}

type applyRequest struct {
	SessionID string `json:"session_id"`
	Category  string `json:"category"`
	Source    string `json:"source,omitempty"`
}

type effectRequest struct {
	SessionID     string `json:"session_id"`
	EffectID      string `json:"effect_id"`
	DurationTicks int    `json:"duration_ticks,omitempty"`
	Source        string `json:"source,omitempty"`
}

type archetypeRequest struct {
	SessionID string `json:"session_id"`
	Archetype string `json:"archetype"`
}

type itemRequest struct {
	SessionID string `json:"session_id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
}

type addictionRequest struct {
	SessionID string `json:"session_id"`
	Category  string `json:"category"`
	Level     int    `json:"level"`
}

func (h Handler) status(c context.Context, ctx *app.RequestContext) {
	var body sessionRequest
	sessionID, ok := bindSession(ctx, &body, &body.SessionID)
	if !ok {
		return
	}
	resp, err := h.StatusUC.Execute(c, status.Request{SessionID: sessionID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) consume(c context.Context, ctx *app.RequestContext) {
	var body consumeRequest
	sessionID, ok := bindSession(ctx, &body, &body.SessionID)
	if !ok {
		return
	}
	resp, err := h.ConsumeUC.Execute(c, consume.Request{SessionID: sessionID, ItemName: body.ItemName})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) apply(c context.Context, ctx *app.RequestContext) {
	var body applyRequest
	sessionID, ok := bindSession(ctx, &body, &body.SessionID)
	if !ok {
		return
	}
	resp, err := h.ConsumeUC.ApplyCategory(c, consume.ApplyRequest{SessionID: sessionID, Category: body.Category, Source: body.Source})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) tick(c context.Context, ctx *app.RequestContext) {
	var body sessionRequest
	sessionID, ok := bindSession(ctx, &body, &body.SessionID)
	if !ok {
		return
	}
	resp, err := h.TickUC.Execute(c, tick.Request{SessionID: sessionID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) remove(c context.Context, ctx *app.RequestContext) {
	var body effectRequest
	sessionID, ok := bindSession(ctx, &body, &body.SessionID)
	if !ok {
		return
	}
	resp, err := h.EffectsUC.Remove(c, effects.RemoveRequest{SessionID: sessionID, EffectID: conditions.EffectID(body.EffectID)})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) inflict(c context.Context, ctx *app.RequestContext) {
	var body effectRequest
	sessionID, ok := bindSession(ctx, &body, &body.SessionID)
	if !ok {
		return
	}
	resp, err := h.EffectsUC.Inflict(c, effects.InflictRequest{
		SessionID:     sessionID,
		EffectID:      conditions.EffectID(body.EffectID),
		DurationTicks: body.DurationTicks,
		Source:        body.Source,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) archetype(c context.Context, ctx *app.RequestContext) {
	var body archetypeRequest
	sessionID, ok := bindSession(ctx, &body, &body.SessionID)
	if !ok {
		return
	}
	resp, err := h.EffectsUC.SelectArchetype(c, effects.ArchetypeRequest{SessionID: sessionID, Archetype: conditions.EffectID(body.Archetype)})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) addItem(c context.Context, ctx *app.RequestContext) {
	var body itemRequest
	sessionID, ok := bindSession(ctx, &body, &body.SessionID)
	if !ok {
		return
	}
	resp, err := h.InventoryUC.AddItem(c, inventory.AddItemRequest{
		SessionID: sessionID,
		Item:      conditions.Item{Name: body.Name, Type: body.Type},
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) setAddiction(c context.Context, ctx *app.RequestContext) {
	var body addictionRequest
	sessionID, ok := bindSession(ctx, &body, &body.SessionID)
	if !ok {
		return
	}
	resp, err := h.InventoryUC.SetAddiction(c, inventory.AddictionRequest{SessionID: sessionID, Category: body.Category, Level: body.Level})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) notifications(c context.Context, ctx *app.RequestContext) {
	if h.Notifications == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "notification log not configured")
		return
	}
	sessionID := strings.TrimSpace(string(ctx.GetHeader(sessionIDHeader)))
	if sessionID == "" {
		sessionID = strings.TrimSpace(string(ctx.Query("session_id")))
	}
	if sessionID == "" {
		writeError(ctx, ErrMissingSessionID)
		return
	}
	limit, err := strconv.Atoi(string(ctx.Query("limit")))
	if err != nil || limit <= 0 {
		limit = defaultNotificationLimit
	}
	events, err := h.Notifications.ListBySessionID(c, sessionID, limit)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"session_id": sessionID, "events": events})
}

type catalogView struct {
	Consumables []conditions.ConsumptionRule  `json:"consumables"`
	Archetypes  []conditions.EffectDefinition `json:"archetypes"`
}

func (h Handler) catalog(_ context.Context, ctx *app.RequestContext) {
	if h.Catalog == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "catalog not configured")
		return
	}
	view := catalogView{Archetypes: h.Catalog.Archetypes()}
	for _, cat := range h.Catalog.ConsumableCategories() {
		if rule, ok := h.Catalog.Consumable(cat); ok {
			view.Consumables = append(view.Consumables, rule)
		}
	}
	ctx.JSON(consts.StatusOK, view)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

var ErrMissingSessionID = errors.New("missing session id")

// bindSession decodes the body into out and resolves the session id, the
// X-Session-ID header taking precedence over the body field. It writes the
// error response itself and reports whether the handler should go on.
func bindSession(ctx *app.RequestContext, out any, bodySessionID *string) (string, bool) {
	if err := decodeJSON(ctx, out); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return "", false
	}
	sessionID := strings.TrimSpace(string(ctx.GetHeader(sessionIDHeader)))
	if sessionID == "" {
		sessionID = strings.TrimSpace(*bodySessionID)
	}
	if sessionID == "" {
		writeError(ctx, ErrMissingSessionID)
		return "", false
	}
	return sessionID, true
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrMissingSessionID):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_session_id", err.Error())
	case errors.Is(err, consume.ErrInvalidRequest),
		errors.Is(err, effects.ErrInvalidRequest),
		errors.Is(err, inventory.ErrInvalidRequest),
		errors.Is(err, status.ErrInvalidRequest),
		errors.Is(err, tick.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
