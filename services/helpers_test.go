package services

import (
	"context"
	"errors"
	"testing"

	"github.com/storefront-api/models"
	"github.com/storefront-api/testutil"
	"gorm.io/gorm"
)

var ctx = context.Background()

func isKind(err, kind error) bool {
	return errors.Is(err, kind)
}

func actorOf(u models.User) Actor {
	return Actor{UserID: u.ID, Role: u.Role}
}

// fixture is a database with an owner, a stranger and an admin
type fixture struct {
	db       *gorm.DB
	owner    models.User
	stranger models.User
	admin    models.User
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := testutil.NewDB(t)
	return fixture{
		db:       db,
		owner:    testutil.CreateUser(t, db, "owner@example.com", models.RoleUser),
		stranger: testutil.CreateUser(t, db, "stranger@example.com", models.RoleUser),
		admin:    testutil.CreateUser(t, db, "admin@example.com", models.RoleAdmin),
	}
}
