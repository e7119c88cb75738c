package kvstore_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edunova/colegio/core/course"
	"github.com/edunova/colegio/core/messaging"
	"github.com/edunova/colegio/core/publication"
	"github.com/edunova/colegio/core/user"
	"github.com/edunova/colegio/storage/kv"
	"github.com/edunova/colegio/storage/kvstore"
	testutil "github.com/edunova/colegio/tests"
)

func TestOpen_seedsEmptyStore(t *testing.T) {
	store := kv.NewMemory()
	db, err := kvstore.Open(store, testutil.Logger())
	require.NoError(t, err)

	users, err := kvstore.NewUserRepo(db).QueryAllUsers()
	require.NoError(t, err)
	assert.Len(t, users, 3)

	courses, err := kvstore.NewCourseRepo(db).QueryAllCourses()
	require.NoError(t, err)
	assert.Len(t, courses, 2)

	pubs, err := kvstore.NewPublicationRepo(db).QueryAllPublications()
	require.NoError(t, err)
	assert.Len(t, pubs, 4)

	msgs, err := kvstore.NewMessageRepo(db).QueryAllMessages()
	require.NoError(t, err)
	assert.Len(t, msgs, 7)

	// seeds are not written back until a mutation happens
	_, ok, err := store.Get("courses")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOpen_persistsAcrossReopen(t *testing.T) {
	store := kv.NewMemory()
	db, err := kvstore.Open(store, testutil.Logger())
	require.NoError(t, err)

	crs, err := kvstore.NewCourseRepo(db).CreateCourse(course.Course{Name: "Historia", TeacherID: "2"})
	require.NoError(t, err)

	// a fresh handle over the same store sees the mutation
	db2, err := kvstore.Open(store, testutil.Logger())
	require.NoError(t, err)
	got, err := kvstore.NewCourseRepo(db2).GetCourseByID(crs.ID)
	require.NoError(t, err)
	assert.Equal(t, "Historia", got.Name)
}

func TestOpen_failsClosedToSeeds(t *testing.T) {
	t.Run("malformed document", func(t *testing.T) {
		store := kv.NewMemory()
		require.NoError(t, store.Set("courses", []byte("{not json")))

		db, err := kvstore.Open(store, testutil.Logger())
		require.NoError(t, err)
		courses, err := kvstore.NewCourseRepo(db).QueryAllCourses()
		require.NoError(t, err)
		assert.Len(t, courses, 2) // seed roster
	})

	t.Run("foreign schema version", func(t *testing.T) {
		store := kv.NewMemory()
		doc, _ := json.Marshal(map[string]interface{}{
			"schema":  99,
			"records": []course.Course{{ID: "cx", Name: "Química"}},
		})
		require.NoError(t, store.Set("courses", doc))

		db, err := kvstore.Open(store, testutil.Logger())
		require.NoError(t, err)
		courses, err := kvstore.NewCourseRepo(db).QueryAllCourses()
		require.NoError(t, err)
		require.Len(t, courses, 2)
		assert.Equal(t, "c1", courses[0].ID) // the stored roster was not applied
	})

	t.Run("malformed records", func(t *testing.T) {
		store := kv.NewMemory()
		doc, _ := json.Marshal(map[string]interface{}{
			"schema":  kvstore.SchemaVersion,
			"records": "not a list",
		})
		require.NoError(t, store.Set("messages", doc))

		db, err := kvstore.Open(store, testutil.Logger())
		require.NoError(t, err)
		msgs, err := kvstore.NewMessageRepo(db).QueryAllMessages()
		require.NoError(t, err)
		assert.Len(t, msgs, 7)
	})
}

func TestDB_envelope(t *testing.T) {
	store := kv.NewMemory()
	db, err := kvstore.Open(store, testutil.Logger())
	require.NoError(t, err)

	_, err = kvstore.NewPublicationRepo(db).CreatePublication(publication.Publication{Title: "x", Content: "y", AuthorID: "3"})
	require.NoError(t, err)

	doc, ok, err := store.Get("publications")
	require.NoError(t, err)
	require.True(t, ok)

	var env struct {
		Schema  int             `json:"schema"`
		SavedAt string          `json:"saved_at"`
		Records json.RawMessage `json:"records"`
	}
	require.NoError(t, json.Unmarshal(doc, &env))
	assert.Equal(t, kvstore.SchemaVersion, env.Schema)
	assert.NotEmpty(t, env.SavedAt)

	var pubs []publication.Publication
	require.NoError(t, json.Unmarshal(env.Records, &pubs))
	assert.Len(t, pubs, 5)
}

func TestUserRepo_passwordHashRoundTrips(t *testing.T) {
	store := kv.NewMemory()
	db, err := kvstore.Open(store, testutil.Logger())
	require.NoError(t, err)

	usr := testutil.CreateUser(t, kvstore.NewUserRepo(db), "Eva", "eva@colegio.com", user.TypeTeacher, "unrelated-pass")

	// the domain model never serializes the hash
	raw, err := json.Marshal(usr)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password_hash")

	// the storage form keeps it
	db2, err := kvstore.Open(store, testutil.Logger())
	require.NoError(t, err)
	got, err := kvstore.NewUserRepo(db2).GetUserByEmail("eva@colegio.com")
	require.NoError(t, err)
	assert.NoError(t, got.CheckPassword("unrelated-pass"))
}

func TestUserRepo_session(t *testing.T) {
	store := kv.NewMemory()
	db, err := kvstore.Open(store, testutil.Logger())
	require.NoError(t, err)
	repo := kvstore.NewUserRepo(db)

	_, err = repo.GetSession()
	assert.Equal(t, user.ErrNotAuthenticated, err)

	usr, err := repo.GetUserByID("1")
	require.NoError(t, err)
	require.NoError(t, repo.SetSession(usr))

	// the session slot survives reopening
	db2, err := kvstore.Open(store, testutil.Logger())
	require.NoError(t, err)
	repo2 := kvstore.NewUserRepo(db2)
	cur, err := repo2.GetSession()
	require.NoError(t, err)
	assert.Equal(t, usr.ID, cur.ID)

	require.NoError(t, repo2.ClearSession())
	_, err = repo2.GetSession()
	assert.Equal(t, user.ErrNotAuthenticated, err)
}

func TestMessageRepo_prependsNewest(t *testing.T) {
	db := testutil.NewDB(t)
	repo := kvstore.NewMessageRepo(db)

	msg, err := repo.CreateMessage(messaging.Message{From: "a", To: "b", Folder: messaging.FolderSent})
	require.NoError(t, err)

	msgs, err := repo.QueryAllMessages()
	require.NoError(t, err)
	assert.Equal(t, msg.ID, msgs[0].ID)
}

func TestDB_Reset(t *testing.T) {
	store := kv.NewMemory()
	db, err := kvstore.Open(store, testutil.Logger())
	require.NoError(t, err)

	repo := kvstore.NewCourseRepo(db)
	require.NoError(t, repo.DeleteCoursesByID("c1", "c2"))

	require.NoError(t, db.Reset())
	courses, err := repo.QueryAllCourses()
	require.NoError(t, err)
	assert.Len(t, courses, 2)

	// the reset state is persisted
	db2, err := kvstore.Open(store, testutil.Logger())
	require.NoError(t, err)
	courses, err = kvstore.NewCourseRepo(db2).QueryAllCourses()
	require.NoError(t, err)
	assert.Len(t, courses, 2)
}
