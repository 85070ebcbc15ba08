package storage

import "sort"

// RecordPlay bumps a user's play counter. The display name is refreshed on
// every play so leaderboards follow renames.
func (s *Storage) RecordPlay(guildID, userID, username string) error {
	if userID == "" {
		return nil
	}

	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}

	stat, ok := record.PlayCounts[userID]
	if !ok {
		stat = &PlayerStat{UserID: userID}
		record.PlayCounts[userID] = stat
	}
	stat.Count++
	if username != "" {
		stat.Name = username
	}

	s.ds.Add(guildID, record)
	return nil
}

// TopPlayers returns up to limit users ordered by play count.
func (s *Storage) TopPlayers(guildID string, limit int) ([]PlayerStat, error) {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return nil, err
	}

	out := make([]PlayerStat, 0, len(record.PlayCounts))
	for _, stat := range record.PlayCounts {
		out = append(out, *stat)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].UserID < out[j].UserID
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
