package storage

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"musicmonkey/internal/player"
)

// The wonder trade pool is shared across all guilds, so it lives under a
// reserved key that can never collide with a guild snowflake.
const wonderTradeKey = "global:wondertrade"

const wonderTradePoolLimit = 500

// WonderOffer is one track sitting in the trade pool.
type WonderOffer struct {
	ID        string      `json:"id"`
	GuildID   string      `json:"guild_id"`
	UserID    string      `json:"user_id"`
	Username  string      `json:"username"`
	Track     StoredTrack `json:"track"`
	CreatedAt time.Time   `json:"created_at"`
}

type wonderPool struct {
	Offers []WonderOffer `json:"offers"`
}

func (s *Storage) getWonderPool() (*wonderPool, error) {
	data, exists := s.ds.Get(wonderTradeKey)
	if !exists {
		return &wonderPool{}, nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("error marshalling data: %w", err)
	}

	var pool wonderPool
	if err := json.Unmarshal(jsonData, &pool); err != nil {
		return nil, fmt.Errorf("error unmarshalling to *wonderPool: %w", err)
	}
	return &pool, nil
}

// OfferWonderTrade puts a track into the global pool and returns the offer
// id. The oldest offer is evicted once the pool is full.
func (s *Storage) OfferWonderTrade(guildID, userID, username string, track player.Track) (string, error) {
	pool, err := s.getWonderPool()
	if err != nil {
		return "", err
	}

	offer := WonderOffer{
		ID:        uuid.NewString(),
		GuildID:   guildID,
		UserID:    userID,
		Username:  username,
		Track:     toStoredTrack(track),
		CreatedAt: time.Now(),
	}
	pool.Offers = append(pool.Offers, offer)
	if len(pool.Offers) > wonderTradePoolLimit {
		pool.Offers = pool.Offers[1:]
	}

	s.ds.Add(wonderTradeKey, pool)
	return offer.ID, nil
}

// TakeWonderTrade removes and returns a random offer made by someone other
// than userID. Returns nil when the pool holds nothing tradable.
func (s *Storage) TakeWonderTrade(userID string) (*WonderOffer, error) {
	pool, err := s.getWonderPool()
	if err != nil {
		return nil, err
	}

	var candidates []int
	for i, offer := range pool.Offers {
		if offer.UserID != userID {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	idx := candidates[rand.Intn(len(candidates))]
	taken := pool.Offers[idx]
	pool.Offers = append(pool.Offers[:idx], pool.Offers[idx+1:]...)

	s.ds.Add(wonderTradeKey, pool)
	return &taken, nil
}

// WonderTradePoolSize reports how many offers are waiting.
func (s *Storage) WonderTradePoolSize() (int, error) {
	pool, err := s.getWonderPool()
	if err != nil {
		return 0, err
	}
	return len(pool.Offers), nil
}
