package kernel

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/qrmenu/config"
)

func TestAbortJoinsCloseErrors(t *testing.T) {
	bootErr := errors.New("kv: dial tcp: connection refused")
	closeErr := errors.New("database: close: broken pipe")

	err := abort(bootErr, func() error { return closeErr }, func() error { return nil })
	require.Error(t, err)
	assert.ErrorIs(t, err, bootErr)
	assert.ErrorIs(t, err, closeErr)

	assert.Equal(t, bootErr.Error(), abort(bootErr, func() error { return nil }).Error())
}

func TestBootRejectsUnknownPolicyBeforeConnecting(t *testing.T) {
	config.Set("QR_REGISTRY_POLICY", "sometimes")
	config.Set("DB_DRIVER", "postgres")
	config.Set("DATABASE_DSN", "host=127.0.0.1 port=1 user=none dbname=none sslmode=disable connect_timeout=1")
	t.Cleanup(func() {
		config.Set("QR_REGISTRY_POLICY", "required")
		config.Set("DB_DRIVER", "sqlite")
		config.Set("DATABASE_DSN", "")
	})

	app, err := Boot(context.Background(), BootOptions{})
	assert.Nil(t, app)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown registry policy")
}
