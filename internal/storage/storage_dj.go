package storage

// SetDJSettings stores the guild's DJ role restriction.
func (s *Storage) SetDJSettings(guildID string, dj DJSettings) error {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}

	record.DJ = dj
	s.ds.Add(guildID, record)
	return nil
}

// GetDJSettings returns the guild's DJ settings, zero when never configured.
func (s *Storage) GetDJSettings(guildID string) (DJSettings, error) {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return DJSettings{}, err
	}
	return record.DJ, nil
}

// CommandRestricted reports whether a command name is under DJ control for
// the guild. An enabled DJ mode with an empty restriction list covers every
// playback command, which is the caller's default set.
func (dj DJSettings) CommandRestricted(name string) bool {
	if !dj.Enabled {
		return false
	}
	if len(dj.RestrictedCommands) == 0 {
		return true
	}
	for _, c := range dj.RestrictedCommands {
		if c == name {
			return true
		}
	}
	return false
}
