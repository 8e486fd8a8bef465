package windows

import (
	"context"
	"time"

	"turn_queue/internal/apperr"
	"turn_queue/internal/cache"
	"turn_queue/internal/clock"
	"turn_queue/internal/models"

	"go.uber.org/zap"
)

// UpcomingLimit caps each upcoming list in the overview.
const UpcomingLimit = 10

const overviewKeyPrefix = "windows:overview:"

type TicketView struct {
	ID            string               `json:"id"`
	Number        int                  `json:"number"`
	PriorityClass models.PriorityClass `json:"priorityClass"`
	Status        models.Status        `json:"status"`
	CalledAt      *time.Time           `json:"calledAt,omitempty"`
}

type WindowStatus struct {
	Number     int         `json:"number"`
	OperatorID *string     `json:"operatorId,omitempty"`
	Current    *TicketView `json:"current,omitempty"`
}

// Overview is the read model behind the lobby display.
type Overview struct {
	ServiceDay       string         `json:"serviceDay"`
	Windows          []WindowStatus `json:"windows"`
	UpcomingPriority []TicketView   `json:"upcomingPriority"`
	UpcomingStandard []TicketView   `json:"upcomingStandard"`
}

// Overview lists active windows with their current ticket and the next
// pending tickets of today. Results are cached briefly per audience.
func (m *Manager) Overview(ctx context.Context, audience models.Audience) (*Overview, error) {
	key := overviewKeyPrefix + audience.String()
	return cache.FindAndCache(ctx, m.cache, &m.sf, key, m.cacheTTL, m.logger, func(ctx context.Context) (*Overview, error) {
		return m.buildOverview(ctx, audience)
	})
}

// InvalidateOverview drops cached overviews so the next read is fresh.
func (m *Manager) InvalidateOverview(ctx context.Context) {
	keys := []string{overviewKeyPrefix + models.AudienceInternal.String(), overviewKeyPrefix + models.AudiencePublic.String()}
	if err := m.cache.Delete(ctx, keys...); err != nil {
		m.logger.Warn("overview cache invalidation failed", zap.Error(err))
	}
}

func (m *Manager) buildOverview(ctx context.Context, audience models.Audience) (*Overview, error) {
	db := m.db.WithContext(ctx)
	day := clock.ServiceDay(m.clock.Now(), m.loc)

	var wins []models.Window
	if err := db.Where("active = ?", true).Order("number").Find(&wins).Error; err != nil {
		return nil, apperr.Storage(err)
	}

	var sessions []models.WorkerSession
	if err := db.Where("ended_at IS NULL AND window_id IS NOT NULL").Find(&sessions).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	owner := make(map[string]string, len(sessions))
	for _, s := range sessions {
		owner[*s.WindowID] = s.UserID
	}

	var open []models.Ticket
	if err := db.Where("status IN ? AND window_id IS NOT NULL", []models.Status{models.StatusCalled, models.StatusServing}).
		Order("called_at").
		Find(&open).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	current := make(map[string]models.Ticket, len(open))
	for _, t := range open {
		// ascending order, so the latest call wins
		current[*t.WindowID] = t
	}

	out := &Overview{
		ServiceDay:       day,
		Windows:          make([]WindowStatus, 0, len(wins)),
		UpcomingPriority: []TicketView{},
		UpcomingStandard: []TicketView{},
	}
	for _, w := range wins {
		ws := WindowStatus{Number: w.Number}
		if uid, ok := owner[w.ID]; ok {
			uid := uid
			ws.OperatorID = &uid
		}
		if t, ok := current[w.ID]; ok {
			v := view(t)
			ws.Current = &v
		}
		out.Windows = append(out.Windows, ws)
	}

	var pending []models.Ticket
	if err := db.Where("service_day = ? AND status = ?", day, models.StatusPending).
		Order("number").Order("created_at").
		Find(&pending).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	for _, t := range pending {
		if !t.PriorityClass.VisibleTo(audience) {
			continue
		}
		if t.PriorityClass.Rank() == 0 {
			if len(out.UpcomingPriority) < UpcomingLimit {
				out.UpcomingPriority = append(out.UpcomingPriority, view(t))
			}
		} else if len(out.UpcomingStandard) < UpcomingLimit {
			out.UpcomingStandard = append(out.UpcomingStandard, view(t))
		}
	}
	return out, nil
}

func view(t models.Ticket) TicketView {
	return TicketView{
		ID:            t.ID,
		Number:        t.Number,
		PriorityClass: t.PriorityClass,
		Status:        t.Status,
		CalledAt:      t.CalledAt,
	}
}
