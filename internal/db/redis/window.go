package redis

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/rueidis"

	"github.com/kailas-cloud/folio/internal/db"
)

// WindowAdd records an event in a sorted set scored by unix nanoseconds.
// Trim, add, count and expiry go out in one DoMulti round-trip.
func (s *Store) WindowAdd(
	ctx context.Context, key string, at time.Time, window time.Duration,
) (string, int64, error) {
	k := s.key(key)
	now := at.UnixNano()
	cutoff := now - window.Nanoseconds()
	member := strconv.FormatInt(now, 10) + "-" + uuid.NewString()

	cmds := []rueidis.Completed{
		s.b().Zremrangebyscore().Key(k).Min("-inf").Max(strconv.FormatInt(cutoff, 10)).Build(),
		s.b().Zadd().Key(k).ScoreMember().ScoreMember(float64(now), member).Build(),
		s.b().Zcard().Key(k).Build(),
		s.b().Pexpire().Key(k).Milliseconds(window.Milliseconds()).Build(),
	}
	results := s.client.DoMulti(ctx, cmds...)
	for _, r := range results {
		if err := r.Error(); err != nil {
			return "", 0, &db.Error{Op: db.OpWindowAdd, Err: err}
		}
	}
	count, err := results[2].AsInt64()
	if err != nil {
		return "", 0, &db.Error{Op: db.OpWindowAdd, Err: err}
	}
	return member, count, nil
}

// WindowRemove deletes one event from the window.
func (s *Store) WindowRemove(ctx context.Context, key, member string) error {
	cmd := s.b().Zrem().Key(s.key(key)).Member(member).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpWindowRem, Err: err}
	}
	return nil
}
