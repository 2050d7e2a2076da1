package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/futig/ragdesk/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	// bucketIdleTTL drops the bucket of a user who has been quiet this long.
	bucketIdleTTL = time.Hour

	// warningInterval is the minimum gap between two throttling notices.
	warningInterval = 30 * time.Second
)

// Sender is the part of the Bot API the middleware uses to notify users
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// bucket is the token bucket of one user
type bucket struct {
	tokens     float64
	refilledAt time.Time
	warnings   int
	warnedAt   time.Time
}

// RateLimiterMiddleware drops updates of users who exceed their token bucket.
// A dropped update is answered with a throttling notice at most once per
// warningInterval.
type RateLimiterMiddleware struct {
	mu        sync.Mutex
	buckets   *cache.Cache
	capacity  float64
	perSecond float64
	now       func() time.Time
	logger    *zap.Logger
	api       Sender
}

// NewRateLimiterMiddleware allows requestsPerMinute on average with bursts
// of up to burstSize.
func NewRateLimiterMiddleware(
	requestsPerMinute int,
	burstSize int,
	logger *zap.Logger,
	api Sender,
) *RateLimiterMiddleware {
	return &RateLimiterMiddleware{
		buckets:   cache.New(bucketIdleTTL, 10*time.Minute),
		capacity:  float64(burstSize),
		perSecond: float64(requestsPerMinute) / 60.0,
		now:       time.Now,
		logger:    logger,
		api:       api,
	}
}

// Handle passes the update on when the user still has a token
func (rl *RateLimiterMiddleware) Handle(update tgbotapi.Update, next func(tgbotapi.Update)) {
	userID, chatID, ok := updateOrigin(update)
	if !ok {
		next(update)
		return
	}

	allowed, warnings := rl.take(userID)
	if allowed {
		next(update)
		return
	}

	rl.logger.Warn("rate limit exceeded",
		zap.Int64("user_id", userID),
		zap.Int64("chat_id", chatID),
	)

	if warnings > 0 && chatID != 0 {
		rl.warn(chatID, warnings)
	}
}

// take consumes one token of the user's bucket. When no token is left it
// reports how many notices the user has had, or 0 if none is due now.
func (rl *RateLimiterMiddleware) take(userID int64) (allowed bool, warnings int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	key := strconv.FormatInt(userID, 10)
	now := rl.now()

	b := &bucket{tokens: rl.capacity, refilledAt: now}
	if raw, ok := rl.buckets.Get(key); ok {
		b = raw.(*bucket)
	}
	defer rl.buckets.SetDefault(key, b)

	b.tokens += now.Sub(b.refilledAt).Seconds() * rl.perSecond
	if b.tokens > rl.capacity {
		b.tokens = rl.capacity
	}
	b.refilledAt = now

	if b.tokens >= 1 {
		b.tokens--
		b.warnings = 0
		return true, 0
	}

	if now.Sub(b.warnedAt) <= warningInterval {
		return false, 0
	}
	b.warnings++
	b.warnedAt = now
	return false, b.warnings
}

func (rl *RateLimiterMiddleware) warn(chatID int64, warnings int) {
	text := render.MsgRateLimitFinal
	switch warnings {
	case 1:
		text = render.MsgRateLimitFirst
	case 2:
		text = render.MsgRateLimitSecond
	}

	if _, err := rl.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		rl.logger.Error("failed to send rate limit warning",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}
