package helpers

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_Levels(t *testing.T) {
	require.Equal(t, logrus.DebugLevel, NewLogger("app", "development", "").GetLevel())
	require.Equal(t, logrus.InfoLevel, NewLogger("app", "production", "").GetLevel())
	require.Equal(t, logrus.WarnLevel, NewLogger("app", "production", "warn").GetLevel())
	require.Equal(t, logrus.InfoLevel, NewLogger("app", "production", "loud").GetLevel())
}

func TestLogError(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	LogError(logger, "store failed", errors.New("boom"), logrus.Fields{"op": "create"})

	e := hook.LastEntry()
	require.Equal(t, logrus.ErrorLevel, e.Level)
	require.Equal(t, "store failed", e.Message)
	require.Equal(t, "create", e.Data["op"])
	require.EqualError(t, e.Data[logrus.ErrorKey].(error), "boom")

	require.NotPanics(t, func() { LogError(nil, "x", nil, nil) })
}
