package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Godwin-Sajeev/Power-Sence-portfolio/config"

	"github.com/go-redis/redis/v8"
)

// RedisService handles Redis operations
type RedisService struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisService creates a new Redis service
func NewRedisService(cfg *config.Config) *RedisService {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: "", // No password set
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()

	return &RedisService{
		Client: client,
		Ctx:    ctx,
	}
}

// Set sets a key-value pair in Redis with expiration
func (s *RedisService) Set(key string, value interface{}, expiration time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return s.Client.Set(s.Ctx, key, jsonValue, expiration).Err()
}

// Get gets a value from Redis by key
func (s *RedisService) Get(key string, dest interface{}) error {
	val, err := s.Client.Get(s.Ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(val), dest)
}

// Delete deletes a key from Redis
func (s *RedisService) Delete(key string) error {
	return s.Client.Del(s.Ctx, key).Err()
}

// CacheLatestReading 缓存房间的最新读数，供看板快速轮询
func (s *RedisService) CacheLatestReading(roomID uint, reading interface{}) error {
	key := fmt.Sprintf("reading:latest:%d", roomID)
	return s.Set(key, reading, 10*time.Minute)
}

// GetLatestReading 获取房间的最新读数缓存
func (s *RedisService) GetLatestReading(roomID uint, dest interface{}) error {
	key := fmt.Sprintf("reading:latest:%d", roomID)
	return s.Get(key, dest)
}

// CacheReportSummary 短暂缓存聚合报表，避免每次全表聚合
func (s *RedisService) CacheReportSummary(summary interface{}) error {
	return s.Set("report:summary", summary, time.Minute)
}

// GetReportSummary 获取聚合报表缓存
func (s *RedisService) GetReportSummary(dest interface{}) error {
	return s.Get("report:summary", dest)
}
