package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTL 상수 정의
const (
	TTLSpace       = 10 * time.Minute // 스페이스 설정 (변경 빈도 낮음)
	TTLContentType = 10 * time.Minute // 콘텐츠 타입 정의
	TTLEntry       = 5 * time.Minute  // 발행된 엔트리
	TTLEntryList   = 30 * time.Second // 엔트리 목록 (자주 갱신)
	TTLSession     = 30 * time.Minute // 세션
	TTLShort       = 1 * time.Minute  // 짧은 캐시 (실시간성 필요)
	TTLDefault     = 5 * time.Minute  // 기본값
)

// 캐시 키 접두사
const (
	PrefixSpace       = "space:"
	PrefixContentType = "ctype:"
	PrefixEntry       = "entry:"
	PrefixEntries     = "entries:"
	PrefixUser        = "user:"
	PrefixSession     = "session:"
)

// Service Redis 캐시 서비스 인터페이스
type Service interface {
	// 기본 캐시 연산
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)

	// 스페이스 캐시 (서브도메인으로 조회)
	GetSpace(ctx context.Context, subdomain string) ([]byte, error)
	SetSpace(ctx context.Context, subdomain string, data interface{}) error
	InvalidateSpace(ctx context.Context, subdomain string) error

	// 발행된 엔트리 캐시
	GetPublishedEntry(ctx context.Context, spaceID string, envID, entryID uint64) ([]byte, error)
	SetPublishedEntry(ctx context.Context, spaceID string, envID, entryID uint64, data interface{}) error
	InvalidatePublishedEntry(ctx context.Context, spaceID string, envID, entryID uint64) error

	// 엔트리 목록 캐시
	GetEntryList(ctx context.Context, spaceID string, envID uint64, contentType string, page, limit int) ([]byte, error)
	SetEntryList(ctx context.Context, spaceID string, envID uint64, contentType string, page, limit int, data interface{}) error
	InvalidateEntryLists(ctx context.Context, spaceID string, envID uint64) error

	// 콘텐츠 타입 캐시
	GetContentType(ctx context.Context, envID uint64, typeID string) ([]byte, error)
	SetContentType(ctx context.Context, envID uint64, typeID string, data interface{}) error
	InvalidateContentType(ctx context.Context, envID uint64, typeID string) error

	// 사용자 캐시
	GetUser(ctx context.Context, userID uint64) ([]byte, error)
	SetUser(ctx context.Context, userID uint64, data interface{}) error
	InvalidateUser(ctx context.Context, userID uint64) error

	// 유틸리티
	IsAvailable() bool
	Ping(ctx context.Context) error
}

// redisCache Redis 기반 캐시 구현
type redisCache struct {
	client *redis.Client
}

// NewService 새로운 캐시 서비스 생성
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

// IsAvailable Redis 연결 가능 여부
func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

// Ping Redis 연결 테스트
func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	return c.client.Ping(ctx).Err()
}

// Get 캐시에서 값 조회
func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return fmt.Errorf("redis not available")
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

// Set 캐시에 값 저장
func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil // Redis 없으면 무시
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

// Delete 캐시 삭제
func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Exists 캐시 존재 여부 확인
func (c *redisCache) Exists(ctx context.Context, key string) (bool, error) {
	if c.client == nil {
		return false, nil
	}
	n, err := c.client.Exists(ctx, key).Result()
	return n > 0, err
}

// ========================================
// 스페이스 캐시
// ========================================

func (c *redisCache) spaceKey(subdomain string) string {
	return PrefixSpace + subdomain
}

func (c *redisCache) GetSpace(ctx context.Context, subdomain string) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, c.spaceKey(subdomain)).Bytes()
}

func (c *redisCache) SetSpace(ctx context.Context, subdomain string, data interface{}) error {
	if c.client == nil {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.spaceKey(subdomain), jsonData, TTLSpace).Err()
}

func (c *redisCache) InvalidateSpace(ctx context.Context, subdomain string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, c.spaceKey(subdomain)).Err()
}

// ========================================
// 발행된 엔트리 캐시
// ========================================

func (c *redisCache) entryKey(spaceID string, envID, entryID uint64) string {
	return fmt.Sprintf("%s%s:%d:%d", PrefixEntry, spaceID, envID, entryID)
}

func (c *redisCache) GetPublishedEntry(ctx context.Context, spaceID string, envID, entryID uint64) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, c.entryKey(spaceID, envID, entryID)).Bytes()
}

func (c *redisCache) SetPublishedEntry(ctx context.Context, spaceID string, envID, entryID uint64, data interface{}) error {
	if c.client == nil {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.entryKey(spaceID, envID, entryID), jsonData, TTLEntry).Err()
}

func (c *redisCache) InvalidatePublishedEntry(ctx context.Context, spaceID string, envID, entryID uint64) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, c.entryKey(spaceID, envID, entryID)).Err()
}

// ========================================
// 엔트리 목록 캐시
// ========================================

func (c *redisCache) entryListKey(spaceID string, envID uint64, contentType string, page, limit int) string {
	if contentType == "" {
		contentType = "all"
	}
	return fmt.Sprintf("%s%s:%d:%s:%d:%d", PrefixEntries, spaceID, envID, contentType, page, limit)
}

func (c *redisCache) GetEntryList(ctx context.Context, spaceID string, envID uint64, contentType string, page, limit int) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, c.entryListKey(spaceID, envID, contentType, page, limit)).Bytes()
}

func (c *redisCache) SetEntryList(ctx context.Context, spaceID string, envID uint64, contentType string, page, limit int, data interface{}) error {
	if c.client == nil {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.entryListKey(spaceID, envID, contentType, page, limit), jsonData, TTLEntryList).Err()
}

func (c *redisCache) InvalidateEntryLists(ctx context.Context, spaceID string, envID uint64) error {
	if c.client == nil {
		return nil
	}
	return c.deleteByPattern(ctx, fmt.Sprintf("%s%s:%d:*", PrefixEntries, spaceID, envID))
}

// ========================================
// 콘텐츠 타입 캐시
// ========================================

func (c *redisCache) contentTypeKey(envID uint64, typeID string) string {
	return fmt.Sprintf("%s%d:%s", PrefixContentType, envID, typeID)
}

func (c *redisCache) GetContentType(ctx context.Context, envID uint64, typeID string) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, c.contentTypeKey(envID, typeID)).Bytes()
}

func (c *redisCache) SetContentType(ctx context.Context, envID uint64, typeID string, data interface{}) error {
	if c.client == nil {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.contentTypeKey(envID, typeID), jsonData, TTLContentType).Err()
}

func (c *redisCache) InvalidateContentType(ctx context.Context, envID uint64, typeID string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, c.contentTypeKey(envID, typeID)).Err()
}

// ========================================
// 사용자 캐시
// ========================================

func (c *redisCache) userKey(userID uint64) string {
	return fmt.Sprintf("%s%d", PrefixUser, userID)
}

func (c *redisCache) GetUser(ctx context.Context, userID uint64) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, c.userKey(userID)).Bytes()
}

func (c *redisCache) SetUser(ctx context.Context, userID uint64, data interface{}) error {
	if c.client == nil {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.userKey(userID), jsonData, TTLDefault).Err()
}

func (c *redisCache) InvalidateUser(ctx context.Context, userID uint64) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, c.userKey(userID)).Err()
}

// ========================================
// 내부 유틸리티
// ========================================

func (c *redisCache) deleteByPattern(ctx context.Context, pattern string) error {
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
