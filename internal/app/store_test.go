package app_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/example/barter/internal/adapters/sqlite"
	"github.com/example/barter/internal/app"
	"github.com/example/barter/internal/db"
)

type storeBacked struct {
	db        *sql.DB
	messages  *app.MessageServiceImpl
	directory *app.DirectoryServiceImpl
}

// newStoreBacked wires both services over an in-memory database.
func newStoreBacked(t *testing.T) *storeBacked {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	testDB.SetMaxOpenConns(1)
	_, err = testDB.Exec(db.GetSchemaSQL())
	require.NoError(t, err)
	t.Cleanup(func() { testDB.Close() })

	users := sqlite.NewUserRepository(testDB)
	offers := sqlite.NewOfferRepository(testDB)

	return &storeBacked{
		db:        testDB,
		messages:  app.NewMessageService(sqlite.NewMessageRepository(testDB), users, offers, nil, nil, app.MessageServiceConfig{}),
		directory: app.NewDirectoryService(users, offers),
	}
}
