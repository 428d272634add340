package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CallbackTokenModel stores confirmation codes keyed by user. A key expires
// with the configured TTL, and at most one code per user is active: issuing
// a new code overwrites the previous one.
type CallbackTokenModel struct {
	Client *redis.Client
	TTL    time.Duration
}

func codeKey(userID int64) string {
	return fmt.Sprintf("authcode:user:%d", userID)
}

// consumeScript deletes the key only when the stored code matches, so a
// wrong guess cannot invalidate the active code and a correct code can be
// redeemed exactly once.
var consumeScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		redis.call('DEL', KEYS[1])
		return 1
	end
	return 0
`)

func (m *CallbackTokenModel) Set(ctx context.Context, userID int64, code string) error {
	return m.Client.Set(ctx, codeKey(userID), code, m.TTL).Err()
}

// Consume reports whether code was the active confirmation code for the user
// and invalidates it on success.
func (m *CallbackTokenModel) Consume(ctx context.Context, userID int64, code string) (bool, error) {
	res, err := consumeScript.Run(ctx, m.Client, []string{codeKey(userID)}, code).Int()
	if err != nil {
		return false, err
	}
	return res == 1, nil
}
