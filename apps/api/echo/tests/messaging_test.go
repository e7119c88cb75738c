package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/edunova/colegio/core/messaging"
)

func Test_messagingApi(t *testing.T) {
	app := setup(t)
	studentToken := getToken(t, "alumno@colegio.com")

	listFolder := func(t *testing.T, token, folder string) []messaging.Message {
		t.Helper()
		req, rec := newAuthRequest(http.MethodGet, "/v1/messages?folder="+folder, token)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body = %s", rec.Code, rec.Body.String())
		}
		var msgs []messaging.Message
		if err := json.Unmarshal(rec.Body.Bytes(), &msgs); err != nil {
			t.Fatalf("unmarshaling response: %v", err)
		}
		return msgs
	}

	unreadCount := func(t *testing.T, token string) int {
		t.Helper()
		req, rec := newAuthRequest(http.MethodGet, "/v1/messages/unread-count", token)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body = %s", rec.Code, rec.Body.String())
		}
		var resp struct {
			Count int `json:"count"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshaling response: %v", err)
		}
		return resp.Count
	}

	t.Run("inbox defaults to received", func(t *testing.T) {
		msgs := listFolder(t, studentToken, "")
		if len(msgs) != 3 {
			t.Errorf("got %d messages, want 3", len(msgs))
		}
	})

	t.Run("unknown folder", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/messages?folder=archive", studentToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"folder": "unknown folder"}),
		}, rec)
	})

	t.Run("unread count drops after reading", func(t *testing.T) {
		if got := unreadCount(t, studentToken); got != 2 {
			t.Fatalf("unread count = %d, want 2", got)
		}

		req, rec := newAuthRequest(http.MethodPost, "/v1/messages/m1/read", studentToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body = %s", rec.Code, rec.Body.String())
		}

		if got := unreadCount(t, studentToken); got != 1 {
			t.Errorf("unread count = %d, want 1", got)
		}
	})

	t.Run("compose", func(t *testing.T) {
		req, rec := newAuthRequest(
			http.MethodPost, "/v1/messages", studentToken,
			[]byte(`{"to":"María García","subject":"Permiso","body":"Solicito permiso."}`),
		)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("failed! code = %v; body = %s", rec.Code, rec.Body.String())
		}

		sent := listFolder(t, studentToken, "sent")
		if len(sent) != 3 {
			t.Errorf("got %d sent messages, want 3", len(sent))
		}
	})

	t.Run("draft lifecycle", func(t *testing.T) {
		req, rec := newAuthRequest(
			http.MethodPost, "/v1/messages/drafts", studentToken,
			[]byte(`{"to":"María García","subject":"Borrador","body":"Texto."}`),
		)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("failed! code = %v; body = %s", rec.Code, rec.Body.String())
		}
		var draft messaging.Message
		if err := json.Unmarshal(rec.Body.Bytes(), &draft); err != nil {
			t.Fatalf("unmarshaling response: %v", err)
		}

		req, rec = newAuthRequest(http.MethodPost, "/v1/messages/"+draft.ID+"/send", studentToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body = %s", rec.Code, rec.Body.String())
		}

		// sending twice fails
		req, rec = newAuthRequest(http.MethodPost, "/v1/messages/"+draft.ID+"/send", studentToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "message is not a draft"}),
		}, rec)
	})

	t.Run("trash", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/messages/m2", studentToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body = %s", rec.Code, rec.Body.String())
		}

		trash := listFolder(t, studentToken, "trash")
		if len(trash) != 2 {
			t.Errorf("got %d trashed messages, want 2", len(trash))
		}
	})
}
