package user_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edunova/colegio/core"
	"github.com/edunova/colegio/core/user"
	emailsvc "github.com/edunova/colegio/services/email"
	"github.com/edunova/colegio/storage/kvstore"
	testutil "github.com/edunova/colegio/tests"
)

func setup(t *testing.T) (user.Service, user.Repository) {
	t.Helper()
	db := testutil.NewDB(t)
	repo := kvstore.NewUserRepo(db)
	svc := user.NewService(repo, emailsvc.NewConsoleServiceMock(core.NewConfig()))
	return svc, repo
}

func Test_service_Login(t *testing.T) {
	svc, _ := setup(t)

	t.Run("seeded credentials", func(t *testing.T) {
		usr, err := svc.Login("alumno@colegio.com", "123456")
		require.NoError(t, err)
		assert.Equal(t, "Jose Bayona", usr.Name)
		assert.True(t, usr.IsStudent())
		assert.False(t, usr.LastLogin.IsZero())

		// session is open
		cur, err := svc.Current()
		require.NoError(t, err)
		assert.Equal(t, usr.ID, cur.ID)
	})

	t.Run("email is case-insensitive", func(t *testing.T) {
		_, err := svc.Login("Profesor@Colegio.com", "123456")
		assert.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		require.NoError(t, svc.Logout())

		_, err := svc.Login("alumno@colegio.com", "654321")
		assert.Equal(t, user.ErrAuthenticationFailed, err)

		// failed login leaves the session closed
		_, err = svc.Current()
		assert.Equal(t, user.ErrNotAuthenticated, err)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login("nadie@colegio.com", "123456")
		assert.Equal(t, user.ErrAuthenticationFailed, err)
	})
}

func Test_service_Logout(t *testing.T) {
	svc, _ := setup(t)

	_, err := svc.Login("admin@colegio.com", "123456")
	require.NoError(t, err)

	require.NoError(t, svc.Logout())
	_, err = svc.Current()
	assert.Equal(t, user.ErrNotAuthenticated, err)

	// logging out twice is fine
	assert.NoError(t, svc.Logout())
}

func Test_service_Create(t *testing.T) {
	svc, repo := setup(t)

	nu := user.NewUser{
		Name:            "Rosa Flores",
		Email:           "rosa@colegio.com",
		Type:            user.TypeTeacher,
		Password:        "unrelated-pass",
		PasswordConfirm: "unrelated-pass",
	}
	require.NoError(t, nu.Validate(svc))

	usr, err := svc.Create(nu)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(usr.ID, "u-"))
	assert.NoError(t, usr.CheckPassword("unrelated-pass"))
	assert.Error(t, usr.CheckPassword("wrong"))

	// hash is stored, not the password
	stored, err := repo.GetUserByID(usr.ID)
	require.NoError(t, err)
	assert.NotContains(t, string(stored.PasswordHash), "unrelated-pass")

	t.Run("duplicate email", func(t *testing.T) {
		dup := nu
		err := dup.Validate(svc)
		require.Error(t, err)
		var vErr *core.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "email", vErr.Fields[0].Field)
	})
}

func Test_service_Update(t *testing.T) {
	svc, _ := setup(t)

	orig, err := svc.GetByEmail("profesor@colegio.com")
	require.NoError(t, err)

	uu := user.UpdateUser{Name: "María G. de la Cruz"}
	require.NoError(t, uu.Validate(orig, svc))

	usr, err := svc.Update(orig.ID, uu)
	require.NoError(t, err)
	assert.Equal(t, "María G. de la Cruz", usr.Name)
	// untouched fields survive the merge
	assert.Equal(t, orig.Email, usr.Email)
	assert.Equal(t, orig.Type, usr.Type)
	assert.NoError(t, usr.CheckPassword("123456"))
}

func Test_service_Delete(t *testing.T) {
	svc, _ := setup(t)

	usr, err := svc.GetByEmail("alumno@colegio.com")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(usr.ID))
	_, err = svc.GetByID(usr.ID)
	assert.Equal(t, user.ErrNotFound, err)

	// deleting an absent user is a no-op
	assert.NoError(t, svc.Delete(usr.ID))
}
