package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var (
	notificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_notifications_total",
			Help: "Notifications issued, by kind.",
		},
		[]string{"kind"},
	)
	trayLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_notification_tray_lookups_total",
			Help: "Tray cache lookups, by result.",
		},
		[]string{"result"},
	)
)

type Config struct {
	// MaxOwners bounds how many trays are kept; the least recently used is evicted.
	MaxOwners int
	// TrayCapacity bounds live notifications per owner.
	TrayCapacity int
	// TrayTTL drops trays of owners that have been idle that long; 0 keeps them until evicted.
	TrayTTL time.Duration
}

type Option func(*Center)

// WithClock replaces time.Now for phase evaluation.
func WithClock(now func() time.Time) Option {
	return func(c *Center) {
		c.now = now
	}
}

// Center keeps a tray per owner.
type Center struct {
	mu       sync.Mutex
	trays    *expirable.LRU[string, *Tray]
	capacity int
	now      func() time.Time
	logger   *zap.Logger
}

func NewCenter(cfg Config, logger *zap.Logger, opts ...Option) *Center {
	c := &Center{
		capacity: cfg.TrayCapacity,
		now:      time.Now,
		logger:   logger.Named("notify"),
	}

	c.trays = expirable.NewLRU[string, *Tray](cfg.MaxOwners, func(ownerID string, _ *Tray) {
		c.logger.Debug("tray evicted", zap.String("owner_id", ownerID))
	}, cfg.TrayTTL)

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Notify issues a notification for ownerID. A non-empty class supersedes live notifications of that class.
func (c *Center) Notify(ownerID, message string, kind Kind, class string) Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	n := Notification{
		ID:       uuid.NewString(),
		Class:    class,
		Kind:     kind,
		Message:  message,
		IssuedAt: now,
	}

	tray, ok := c.trays.Get(ownerID)
	if ok {
		trayLookupsTotal.WithLabelValues("hit").Inc()
	} else {
		trayLookupsTotal.WithLabelValues("miss").Inc()
		tray = NewTray(c.capacity)
	}

	tray.Push(n, now)
	// re-adding refreshes the tray's expiry
	c.trays.Add(ownerID, tray)

	notificationsTotal.WithLabelValues(string(kind)).Inc()
	c.logger.Debug("notification issued",
		zap.String("owner_id", ownerID),
		zap.String("kind", string(kind)),
		zap.String("class", class))

	return n
}

// Active returns ownerID's notifications that are visible or dismissing, oldest first.
func (c *Center) Active(ownerID string) []Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	tray, ok := c.trays.Get(ownerID)
	if !ok {
		return nil
	}

	active := tray.Active(c.now())
	if tray.Len() == 0 {
		c.trays.Remove(ownerID)
	}

	return active
}
