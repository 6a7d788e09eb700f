package backend

import (
	"context"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/skillswap-api/config"
)

func TestOpen_Memory(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	store, err := Open(context.Background(), &config.Config{StorageDriver: config.StorageMemory}, logger)
	require.NoError(t, err)
	require.NotNil(t, store.Users)
	require.NotNil(t, store.Requests)
	require.NotNil(t, store.Messages)
	require.Len(t, hook.Entries, 1)
}

func TestOpen_UnknownDriver(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	_, err := Open(context.Background(), &config.Config{StorageDriver: "sqlite"}, logger)
	require.EqualError(t, err, `unknown storage driver "sqlite"`)
}
