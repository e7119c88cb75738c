package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/edunova/colegio/core/publication"
)

func Test_publicationApi(t *testing.T) {
	app := setup(t)

	listPublications := func(t *testing.T, token string) []publication.Publication {
		t.Helper()
		req, rec := newAuthRequest(http.MethodGet, "/v1/publications", token)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body = %s", rec.Code, rec.Body.String())
		}
		var pubs []publication.Publication
		if err := json.Unmarshal(rec.Body.Bytes(), &pubs); err != nil {
			t.Fatalf("unmarshaling response: %v", err)
		}
		return pubs
	}

	t.Run("role visibility", func(t *testing.T) {
		if got := len(listPublications(t, getToken(t, "admin@colegio.com"))); got != 4 {
			t.Errorf("admin got %d publications, want 4", got)
		}
		if got := len(listPublications(t, getToken(t, "alumno@colegio.com"))); got != 4 {
			t.Errorf("enrolled student got %d publications, want 4", got)
		}
	})

	t.Run("students cannot publish", func(t *testing.T) {
		req, rec := newAuthRequest(
			http.MethodPost, "/v1/publications", getToken(t, "alumno@colegio.com"),
			[]byte(`{"title":"x","content":"y","audience":"all"}`),
		)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"})}, rec)
	})

	t.Run("teacher publishes to a course", func(t *testing.T) {
		req, rec := newAuthRequest(
			http.MethodPost, "/v1/publications", getToken(t, "profesor@colegio.com"),
			[]byte(`{"title":"Examen","content":"El examen será el lunes.","audience":"students","course_ids":["c1"]}`),
		)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("failed! code = %v; body = %s", rec.Code, rec.Body.String())
		}
		var pub publication.Publication
		if err := json.Unmarshal(rec.Body.Bytes(), &pub); err != nil {
			t.Fatalf("unmarshaling response: %v", err)
		}
		if pub.Audience != publication.AudienceStudents || pub.AuthorType != publication.AuthorTypeTeacher {
			t.Errorf("unexpected publication: %+v", pub)
		}

		t.Run("only the author deletes", func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodDelete, "/v1/publications/"+pub.ID, getToken(t, "admin@colegio.com"))
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, httpTest{
				wantCode: http.StatusForbidden,
				wantData: marchallObj(t, httpErr{Error: "only the author may delete a publication"}),
			}, rec)

			req, rec = newAuthRequest(http.MethodDelete, "/v1/publications/"+pub.ID, getToken(t, "profesor@colegio.com"))
			app.ServeHTTP(rec, req)
			if rec.Code != http.StatusNoContent {
				t.Fatalf("failed! code = %v; body = %s", rec.Code, rec.Body.String())
			}
		})
	})

	t.Run("unknown target course", func(t *testing.T) {
		req, rec := newAuthRequest(
			http.MethodPost, "/v1/publications", getToken(t, "admin@colegio.com"),
			[]byte(`{"title":"x","content":"y","audience":"students","course_ids":["nope"]}`),
		)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"course_ids": `course "nope" does not exist`}),
		}, rec)
	})

	t.Run("unknown audience", func(t *testing.T) {
		req, rec := newAuthRequest(
			http.MethodPost, "/v1/publications", getToken(t, "admin@colegio.com"),
			[]byte(`{"title":"x","content":"y","audience":"everyone"}`),
		)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"audience": "unknown audience"}),
		}, rec)
	})
}
