// Copyright 2024-2026 Aiku AI

package roomstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vinceyyy/puppet-padlocal/pkg/puppet"
)

const redisKeyPrefix = "padlocal:room:"

// RedisOptions configures a Redis store.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	// TTL bounds how long a room snapshot is trusted. Zero keeps it forever.
	TTL time.Duration
}

// Redis is a Store backed by Redis, for sharing room state between bridge
// processes. Rooms are stored as JSON under padlocal:room:<id>.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

var _ Store = (*Redis)(nil)

// NewRedis connects to Redis and verifies the connection.
func NewRedis(ctx context.Context, opts RedisOptions) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
		PoolSize: 10,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return NewRedisWithClient(client, opts.TTL), nil
}

// NewRedisWithClient wraps an existing client.
func NewRedisWithClient(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func redisKey(roomID string) string {
	return redisKeyPrefix + roomID
}

func (s *Redis) PutRoom(ctx context.Context, room *puppet.RoomPayload) error {
	if room == nil || room.ID == "" {
		return errNoRoomID
	}
	data, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("failed to marshal room %s: %w", room.ID, err)
	}
	if err := s.client.Set(ctx, redisKey(room.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store room %s: %w", room.ID, err)
	}
	return nil
}

func (s *Redis) Room(ctx context.Context, roomID string) (*puppet.RoomPayload, error) {
	data, err := s.client.Get(ctx, redisKey(roomID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrRoomNotFound, roomID)
		}
		return nil, fmt.Errorf("failed to load room %s: %w", roomID, err)
	}
	var room puppet.RoomPayload
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, fmt.Errorf("failed to unmarshal room %s: %w", roomID, err)
	}
	return &room, nil
}

func (s *Redis) RoomMemberIDs(ctx context.Context, roomID string) ([]string, error) {
	room, err := s.Room(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return room.MemberIDList, nil
}

func (s *Redis) DeleteRoom(ctx context.Context, roomID string) error {
	return s.client.Del(ctx, redisKey(roomID)).Err()
}

// Close releases the underlying connection pool.
func (s *Redis) Close() error {
	return s.client.Close()
}
