package testutil

import (
	"io"
	"log"
	"testing"
	"time"

	"github.com/edunova/colegio/core"
	"github.com/edunova/colegio/core/user"
	logsvc "github.com/edunova/colegio/services/logger"
	"github.com/edunova/colegio/storage/kv"
	"github.com/edunova/colegio/storage/kvstore"
)

// Logger returns a logger that swallows its output.
func Logger() core.Logger {
	return logsvc.NewStdLogger(log.New(io.Discard, "", 0))
}

// NewDB opens a fresh in-memory database seeded with the default data set.
func NewDB(t *testing.T) *kvstore.DB {
	t.Helper()
	db, err := kvstore.Open(kv.NewMemory(), Logger())
	if err != nil {
		t.Fatalf("NewDB() failed: %v", err)
	}
	return db
}

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, email, typ, pwd string,
	createdAt ...time.Time,
) user.User {
	t.Helper()
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		Name:      name,
		Email:     email,
		Type:      typ,
		CreatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}
