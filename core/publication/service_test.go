package publication_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edunova/colegio/core"
	"github.com/edunova/colegio/core/course"
	"github.com/edunova/colegio/core/publication"
	"github.com/edunova/colegio/core/user"
	emailsvc "github.com/edunova/colegio/services/email"
	"github.com/edunova/colegio/storage/kvstore"
	testutil "github.com/edunova/colegio/tests"
)

var (
	student = user.User{ID: "1", Name: "Jose Bayona", Type: user.TypeStudent}
	teacher = user.User{ID: "2", Name: "María García", Type: user.TypeTeacher}
	admin   = user.User{ID: "3", Name: "Carlos Pérez", Type: user.TypeAdmin}
)

func setup(t *testing.T) publication.Service {
	t.Helper()
	db := testutil.NewDB(t)
	courseSvc := course.NewService(kvstore.NewCourseRepo(db))
	mailSvc := emailsvc.NewConsoleServiceMock(core.NewConfig())
	return publication.NewService(kvstore.NewPublicationRepo(db), courseSvc, mailSvc)
}

func Test_service_VisibleTo(t *testing.T) {
	svc := setup(t)

	t.Run("admin sees everything", func(t *testing.T) {
		pubs, err := svc.VisibleTo(admin)
		require.NoError(t, err)
		assert.Len(t, pubs, 4)
	})

	t.Run("teacher sees school-wide and their own", func(t *testing.T) {
		pubs, err := svc.VisibleTo(teacher)
		require.NoError(t, err)
		// p3 is course-targeted but authored by the teacher
		assert.Len(t, pubs, 4)
	})

	t.Run("student sees school-wide and their courses'", func(t *testing.T) {
		pubs, err := svc.VisibleTo(student)
		require.NoError(t, err)
		// p3 targets c1 where the student is enrolled
		assert.Len(t, pubs, 4)
	})

	t.Run("unenrolled student misses targeted ones", func(t *testing.T) {
		outsider := user.User{ID: "u-x", Name: "Nadie", Type: user.TypeStudent}
		pubs, err := svc.VisibleTo(outsider)
		require.NoError(t, err)
		assert.Len(t, pubs, 3)
		for _, pub := range pubs {
			assert.True(t, pub.SchoolWide())
		}
	})
}

func Test_service_Create(t *testing.T) {
	svc := setup(t)

	np := publication.NewPublication{
		Title:     "Simulacro de sismo",
		Content:   "El jueves se realizará el simulacro nacional.",
		Audience:  publication.AudienceStudents,
		CourseIDs: []string{"c1"},
	}
	require.NoError(t, np.Validate())

	emailsvc.SentMessages = emailsvc.SentMessages[:0]

	pub, err := svc.Create(teacher, np)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(pub.ID, "p-"))
	assert.Equal(t, teacher.ID, pub.AuthorID)
	assert.Equal(t, teacher.Name, pub.AuthorName)
	assert.Equal(t, publication.AuthorTypeTeacher, pub.AuthorType)
	assert.Equal(t, publication.AudienceStudents, pub.Audience)
	assert.False(t, pub.SchoolWide())

	// newest first
	all, err := svc.QueryAll()
	require.NoError(t, err)
	assert.Equal(t, pub.ID, all[0].ID)

	// enrolled students with an email got notified
	require.Len(t, emailsvc.SentMessages, 1)
	assert.Len(t, emailsvc.SentMessages[0].Bcc, 5)
	assert.Contains(t, emailsvc.SentMessages[0].Subject, "Simulacro de sismo")

	t.Run("students cannot publish", func(t *testing.T) {
		_, err := svc.Create(student, np)
		assert.Equal(t, publication.ErrForbidden, err)
	})

	t.Run("unknown target course", func(t *testing.T) {
		bad := publication.NewPublication{
			Title: "x", Content: "y",
			Audience: publication.AudienceStudents, CourseIDs: []string{"nope"},
		}
		_, err := svc.Create(admin, bad)
		var vErr *core.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "course_ids", vErr.Fields[0].Field)
	})

	t.Run("students audience needs target courses", func(t *testing.T) {
		bad := publication.NewPublication{Title: "x", Content: "y", Audience: publication.AudienceStudents}
		err := bad.Validate()
		var vErr *core.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "course_ids", vErr.Fields[0].Field)
	})

	t.Run("unknown audience", func(t *testing.T) {
		bad := publication.NewPublication{Title: "x", Content: "y", Audience: "everyone"}
		assert.Error(t, bad.Validate())
	})

	t.Run("school-wide sends no roster mail", func(t *testing.T) {
		emailsvc.SentMessages = emailsvc.SentMessages[:0]
		wide := publication.NewPublication{Title: "Aviso", Content: "General", Audience: publication.AudienceAll}
		pub, err := svc.Create(admin, wide)
		require.NoError(t, err)
		assert.Equal(t, publication.AuthorTypeAdministrative, pub.AuthorType)
		assert.True(t, pub.SchoolWide())
		assert.Empty(t, emailsvc.SentMessages)
	})
}

func Test_service_Delete(t *testing.T) {
	svc := setup(t)

	t.Run("author only", func(t *testing.T) {
		// p3 was authored by the teacher
		assert.Equal(t, publication.ErrNotAuthor, svc.Delete("p3", admin))

		require.NoError(t, svc.Delete("p3", teacher))
		_, err := svc.GetByID("p3")
		assert.Equal(t, publication.ErrNotFound, err)
	})

	t.Run("unknown publication", func(t *testing.T) {
		assert.Equal(t, publication.ErrNotFound, svc.Delete("nope", admin))
	})
}
