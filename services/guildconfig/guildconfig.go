package guildconfig

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/samber/mo"
)

// GuildConfigService owns the persisted guild -> AI-reply-channel mapping.
// The backing store is a single JSON file read entirely at startup and
// rewritten entirely on every set. All mutation goes through the service's
// mutex; concurrent sets for the same guild resolve last-write-wins.
type GuildConfigService struct {
	path string

	mu       sync.Mutex
	channels map[string]string
}

// NewGuildConfigService loads the mapping from path. A missing or corrupt
// backing file degrades to an empty mapping rather than failing startup.
func NewGuildConfigService(path string) *GuildConfigService {
	channels, err := loadChannels(path)
	if err != nil {
		log.Printf("⚠️ Could not load guild config from %s, starting empty: %v", path, err)
		channels = make(map[string]string)
	}
	return &GuildConfigService{
		path:     path,
		channels: channels,
	}
}

func loadChannels(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read guild config file: %w", err)
	}

	channels := make(map[string]string)
	if err := json.Unmarshal(data, &channels); err != nil {
		return nil, fmt.Errorf("failed to parse guild config file: %w", err)
	}
	return channels, nil
}

func (s *GuildConfigService) GetAIReplyChannel(ctx context.Context, guildID string) (mo.Option[string], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	channelID, ok := s.channels[guildID]
	if !ok {
		return mo.None[string](), nil
	}
	return mo.Some(channelID), nil
}

// SetAIReplyChannel updates the mapping and rewrites the backing file before
// returning, so a success response to the caller implies the write is durable.
func (s *GuildConfigService) SetAIReplyChannel(ctx context.Context, guildID, channelID string) error {
	log.Printf("📋 Starting to set AI reply channel for guild %s to %s", guildID, channelID)
	if guildID == "" {
		return fmt.Errorf("guild ID cannot be empty")
	}
	if channelID == "" {
		return fmt.Errorf("channel ID cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous, hadPrevious := s.channels[guildID]
	s.channels[guildID] = channelID

	if err := s.persistLocked(); err != nil {
		// Roll back the in-memory entry so memory and disk stay consistent
		if hadPrevious {
			s.channels[guildID] = previous
		} else {
			delete(s.channels, guildID)
		}
		return fmt.Errorf("failed to persist guild config: %w", err)
	}

	log.Printf("📋 Completed successfully - AI reply channel for guild %s is now %s", guildID, channelID)
	return nil
}

func (s *GuildConfigService) persistLocked() error {
	data, err := json.MarshalIndent(s.channels, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal guild config: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write guild config file: %w", err)
	}
	return nil
}
