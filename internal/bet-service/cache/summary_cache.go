package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/radieske/bet-ledger/internal/bet-service/dto"
)

// SummaryCache guarda o resumo de P&L já serializado por usuário
type SummaryCache struct {
	R   redis.Cmdable
	TTL time.Duration
}

func NewSummaryCache(r redis.Cmdable, ttl time.Duration) *SummaryCache {
	return &SummaryCache{R: r, TTL: ttl}
}

func keySummary(userID string) string { return "ledger:summary:" + userID }

// Get devolve false sem erro quando a chave não existe
func (c *SummaryCache) Get(ctx context.Context, userID string) (dto.SummaryResponse, bool, error) {
	var out dto.SummaryResponse
	b, err := c.R.Get(ctx, keySummary(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return out, false, nil
	}
	if err != nil {
		return out, false, err
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, false, err
	}
	return out, true, nil
}

func (c *SummaryCache) Set(ctx context.Context, userID string, s dto.SummaryResponse) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.R.Set(ctx, keySummary(userID), b, c.TTL).Err()
}

// Invalidate remove o resumo; chamado a cada escrita do usuário
func (c *SummaryCache) Invalidate(ctx context.Context, userID string) error {
	return c.R.Del(ctx, keySummary(userID)).Err()
}
