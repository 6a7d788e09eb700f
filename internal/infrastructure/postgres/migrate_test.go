package postgres

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMigrateURL(t *testing.T) {
	require.Equal(t, "pgx5://u:p@h:5432/db?sslmode=disable", migrateURL("postgres://u:p@h:5432/db?sslmode=disable"))
	require.Equal(t, "pgx5://u@h/db", migrateURL("postgresql://u@h/db"))
	require.Equal(t, "pgx5://h/db", migrateURL("pgx5://h/db"))
}
