package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"vitalsim/internal/adapter/repo/gorm/model"
	"vitalsim/internal/app/ports"
	"vitalsim/internal/domain/conditions"

	"gorm.io/gorm"
)

// SessionStateRepo stores the whole session document as JSONB. Health,
// morale and tick are mirrored into columns for ad hoc queries.
type SessionStateRepo struct {
	db *gorm.DB
}

func NewSessionStateRepo(db *gorm.DB) SessionStateRepo {
	return SessionStateRepo{db: db}
}

func (r SessionStateRepo) GetBySessionID(ctx context.Context, sessionID string) (conditions.SessionState, error) {
	var m model.SessionState
	if err := getDBFromCtx(ctx, r.db).WithContext(ctx).Where("session_id = ?", sessionID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return conditions.SessionState{}, ports.ErrNotFound
		}
		return conditions.SessionState{}, err
	}
	var state conditions.SessionState
	if err := json.Unmarshal([]byte(m.State), &state); err != nil {
		return conditions.SessionState{}, fmt.Errorf("decode session %s: %w", sessionID, err)
	}
	state.SessionID = m.SessionID
	state.Version = m.Version
	state.UpdatedAt = m.UpdatedAt
	return state, nil
}

func (r SessionStateRepo) SaveWithVersion(ctx context.Context, state conditions.SessionState, expectedVersion int64) error {
	doc, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", state.SessionID, err)
	}
	db := getDBFromCtx(ctx, r.db).WithContext(ctx)
	if expectedVersion == 0 {
		m := model.SessionState{
			SessionID: state.SessionID,
			State:     string(doc),
			Tick:      state.Tick,
			Health:    int32(state.Vitals.Health),
			Morale:    int32(state.Vitals.Morale),
			Version:   state.Version,
			UpdatedAt: state.UpdatedAt,
		}
		if err := db.Create(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ports.ErrConflict
			}
			return err
		}
		return nil
	}

	updates := map[string]any{
		"state":      string(doc),
		"tick":       state.Tick,
		"health":     int32(state.Vitals.Health),
		"morale":     int32(state.Vitals.Morale),
		"version":    state.Version,
		"updated_at": state.UpdatedAt,
	}
	res := db.Model(&model.SessionState{}).
		Where("session_id = ? AND version = ?", state.SessionID, expectedVersion).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}
