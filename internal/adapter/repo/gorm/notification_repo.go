package gormrepo

import (
	"context"
	"encoding/json"
	"slices"

	"vitalsim/internal/adapter/repo/gorm/model"
	"vitalsim/internal/domain/conditions"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NotificationRepo is a Publisher that appends every event to a log table.
type NotificationRepo struct {
	db *gorm.DB
}

func NewNotificationRepo(db *gorm.DB) NotificationRepo {
	return NotificationRepo{db: db}
}

func (r NotificationRepo) Publish(ctx context.Context, sessionID string, e conditions.DomainEvent) error {
	b, err := json.Marshal(e.Payload)
	if err != nil {
		return err
	}
	if e.Payload == nil {
		b = []byte("{}")
	}
	row := model.SessionNotification{
		SessionID:  sessionID,
		Type:       e.Type,
		OccurredAt: e.OccurredAt,
		Payload:    string(b),
	}
	return getDBFromCtx(ctx, r.db).WithContext(ctx).Create(&row).Error
}

// ListBySessionID returns up to limit of the most recent events, oldest first.
func (r NotificationRepo) ListBySessionID(ctx context.Context, sessionID string, limit int) ([]conditions.DomainEvent, error) {
	rows := []model.SessionNotification{}
	query := getDBFromCtx(ctx, r.db).WithContext(ctx).
		Where(&model.SessionNotification{SessionID: sessionID}).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "id"}, Desc: true}},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	slices.Reverse(rows)

	out := make([]conditions.DomainEvent, 0, len(rows))
	for _, row := range rows {
		var payload map[string]any
		if row.Payload != "" {
			_ = json.Unmarshal([]byte(row.Payload), &payload)
		}
		out = append(out, conditions.DomainEvent{
			Type:       row.Type,
			OccurredAt: row.OccurredAt,
			Payload:    payload,
		})
	}
	return out, nil
}
