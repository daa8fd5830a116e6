package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix     = "user:%d"
	GroupKeyPrefix    = "group:%s"
	FeedPageKeyPrefix = "feed:page:%d"
	feedPagePattern   = "feed:page:*"
)

// FeedTTL bounds how long a cached global feed page may be served. Readers
// can observe posts that were deleted after the page was cached, until the
// TTL expires or InvalidateFeed is called.
const (
	UserTTL  = 5 * time.Minute
	GroupTTL = 10 * time.Minute
	FeedTTL  = 20 * time.Second
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func GroupKey(slug string) string {
	return fmt.Sprintf(GroupKeyPrefix, slug)
}

func FeedPageKey(page int) string {
	return fmt.Sprintf(FeedPageKeyPrefix, page)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateGroup(ctx context.Context, slug string) {
	Invalidate(ctx, GroupKey(slug))
}

// InvalidateFeed drops every cached global feed page immediately. This is
// the explicit clear hook; normal mutations rely on FeedTTL expiry instead.
func InvalidateFeed(ctx context.Context) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, feedPagePattern, 0).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}
