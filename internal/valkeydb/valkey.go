package valkeydb

import (
	"context"
	"fmt"
	"time"

	apperrors "jobspec-miner/internal/errors"

	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"
)

const lockPrefix = "jobspec:extracting:"

// releases the lock only if it still belongs to the caller
var unlockScript = valkey.NewLuaScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type ValkeyClient struct {
	Client  valkey.Client
	lockTTL time.Duration
}

// New connects to Valkey. lockTTL bounds how long a crashed replica can keep
// a session locked.
func New(ctx context.Context, address string, password string, lockTTL time.Duration) (*ValkeyClient, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{address},
		Password:    password,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create Valkey client: %w", err)
	}

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("unable to ping Valkey: %w", err)
	}

	return &ValkeyClient{Client: client, lockTTL: lockTTL}, nil
}

func (v *ValkeyClient) Close() {
	v.Client.Close()
}

// TryLock marks an extraction as running for key across every replica that
// shares this Valkey instance.
func (v *ValkeyClient) TryLock(ctx context.Context, key string) (func(context.Context) error, error) {

	lockKey := lockPrefix + key
	token := uuid.NewString()

	cmd := v.Client.B().Set().
		Key(lockKey).
		Value(token).
		Nx().
		PxMilliseconds(v.lockTTL.Milliseconds()).
		Build()

	err := v.Client.Do(ctx, cmd).Error()

	if valkey.IsValkeyNil(err) {
		return nil, apperrors.ErrExtractionInProgress
	}

	if err != nil {
		return nil, fmt.Errorf("unable to lock session (%s): %w", key, err)
	}

	unlock := func(ctx context.Context) error {
		if err := unlockScript.Exec(ctx, v.Client, []string{lockKey}, []string{token}).Error(); err != nil {
			return fmt.Errorf("unable to unlock session (%s): %w", key, err)
		}
		return nil
	}

	return unlock, nil
}
