package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"football_assistance_backend/internal/model"
	"football_assistance_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxCacheMessages = 50

// ChatRepository persists coach conversations and keeps the newest turns of each
// user in a redis list so the prompt history does not hit the database.
type ChatRepository struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewChatRepository(db *gorm.DB, rdb *redis.Client) *ChatRepository {
	return &ChatRepository{DB: db, Redis: rdb}
}

func cacheKey(userID string) string {
	return fmt.Sprintf("football:chat:cache:%s", userID)
}

// Append stores messages in order and pushes them onto the cache.
func (r *ChatRepository) Append(ctx context.Context, msgs ...*model.ChatMessage) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, msg := range msgs {
			if err := tx.Create(msg).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	for _, msg := range msgs {
		r.cacheMessage(ctx, msg)
	}
	return nil
}

func (r *ChatRepository) cacheMessage(ctx context.Context, msg *model.ChatMessage) {
	if r.Redis == nil {
		return
	}
	key := cacheKey(msg.UserID)
	data, _ := json.Marshal(msg)

	pipe := r.Redis.Pipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, maxCacheMessages-1)
	pipe.Expire(ctx, key, 24*time.Hour)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Log.Warn("Failed to cache chat message", zap.String("user_id", msg.UserID), zap.Error(err))
	}
}

// Recent returns up to limit of the newest messages in chronological order.
func (r *ChatRepository) Recent(ctx context.Context, userID string, limit int) ([]model.ChatMessage, error) {
	if limit <= 0 {
		return []model.ChatMessage{}, nil
	}
	if limit <= maxCacheMessages && r.Redis != nil {
		cached, err := r.Redis.LRange(ctx, cacheKey(userID), 0, int64(limit-1)).Result()
		if err == nil && len(cached) >= limit {
			msgs := make([]model.ChatMessage, 0, len(cached))
			for _, item := range cached {
				var m model.ChatMessage
				if err := json.Unmarshal([]byte(item), &m); err == nil {
					msgs = append(msgs, m)
				}
			}
			if len(msgs) == len(cached) {
				reverse(msgs)
				return msgs, nil
			}
		}
	}

	msgs := []model.ChatMessage{}
	err := r.DB.WithContext(ctx).Scopes(ownedBy(userID)).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	reverse(msgs)
	return msgs, nil
}

// FindByUserID returns the whole conversation, oldest first.
func (r *ChatRepository) FindByUserID(ctx context.Context, userID string) ([]model.ChatMessage, error) {
	msgs := []model.ChatMessage{}
	err := r.DB.WithContext(ctx).Scopes(ownedBy(userID)).Order("created_at ASC").Find(&msgs).Error
	return msgs, err
}

func (r *ChatRepository) DeleteByUserID(ctx context.Context, userID string) error {
	if err := r.DB.WithContext(ctx).Scopes(ownedBy(userID)).Delete(&model.ChatMessage{}).Error; err != nil {
		return err
	}
	if r.Redis != nil {
		r.Redis.Del(ctx, cacheKey(userID))
	}
	return nil
}

func reverse(msgs []model.ChatMessage) {
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
}
