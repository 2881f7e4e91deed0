package router

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"timetracker/internal/forms"
	"timetracker/internal/models"
	"timetracker/internal/testutil"
)

const sessionCookie = "timetracker_session"

type testApp struct {
	app *fiber.App
	db  *gorm.DB
}

func newTestApp(t *testing.T) *testApp {
	db := testutil.NewDB(t)
	reg := prometheus.NewRegistry()
	app := New(Options{
		DB:         db,
		Registerer: reg,
		Gatherer:   reg,
	})
	testutil.CreateUser(t, db, "alice", "alice-pw")
	testutil.CreateUser(t, db, "bob", "bob-pw")
	return &testApp{app: app, db: db}
}

// do sends a request; form, when not nil, is sent url-encoded. cookie is a
// "name=value" pair or empty.
func (a *testApp) do(t *testing.T, method, path string, form url.Values, cookie string) *http.Response {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (a *testApp) login(t *testing.T, username, password string) string {
	t.Helper()
	resp := a.do(t, http.MethodPost, "/auth/login/", url.Values{"username": {username}, "password": {password}}, "")
	require.Equal(t, http.StatusFound, resp.StatusCode)
	for _, c := range resp.Cookies() {
		if c.Name == sessionCookie {
			return c.Name + "=" + c.Value
		}
	}
	t.Fatalf("login for %s did not set a session cookie", username)
	return ""
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func (a *testApp) userID(t *testing.T, username string) string {
	var user models.User
	require.NoError(t, a.db.First(&user, "username = ?", username).Error)
	return user.ID.String()
}

func TestRootRedirectsToClientList(t *testing.T) {
	a := newTestApp(t)

	resp := a.do(t, http.MethodGet, "/", nil, "")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/clients/", resp.Header.Get("Location"))
}

func TestHealth(t *testing.T) {
	a := newTestApp(t)
	resp := a.do(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProtectedRoutesRedirectToLogin(t *testing.T) {
	a := newTestApp(t)

	cases := []struct {
		method string
		path   string
		form   url.Values
	}{
		{http.MethodGet, "/clients/", nil},
		{http.MethodPost, "/clients/", url.Values{"name": {"Acme"}}},
		{http.MethodGet, "/clients/1/", nil},
		{http.MethodPost, "/clients/1/", url.Values{"name": {"Acme"}}},
		{http.MethodGet, "/projects/", nil},
		{http.MethodPost, "/projects/", url.Values{"name": {"Website"}}},
		{http.MethodGet, "/projects/1/", nil},
		{http.MethodGet, "/entries/", nil},
		{http.MethodPost, "/entries/", url.Values{"project": {"1"}, "description": {"x"}}},
		{http.MethodGet, "/entries/export/", nil},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			resp := a.do(t, tc.method, tc.path, tc.form, "")
			assert.Equal(t, http.StatusFound, resp.StatusCode)
			assert.Equal(t, "/auth/login/?next="+url.QueryEscape(tc.path), resp.Header.Get("Location"))
		})
	}

	var count int64
	require.NoError(t, a.db.Model(&models.Client{}).Count(&count).Error)
	assert.Zero(t, count, "no view logic ran")
}

func TestLogin(t *testing.T) {
	a := newTestApp(t)

	resp := a.do(t, http.MethodGet, "/auth/login/?next=/entries/", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page struct {
		Next string `json:"next"`
	}
	decode(t, resp, &page)
	assert.Equal(t, "/entries/", page.Next)

	resp = a.do(t, http.MethodPost, "/auth/login/", url.Values{"username": {"alice"}, "password": {"nope"}}, "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var failed struct {
		Errors map[string][]string `json:"errors"`
		Form   map[string]string   `json:"form"`
	}
	decode(t, resp, &failed)
	assert.Equal(t, []string{"Please enter a correct username and password."}, failed.Errors["__all__"])
	assert.Equal(t, "", failed.Form["password"])

	resp = a.do(t, http.MethodPost, "/auth/login/?next=/entries/", url.Values{"username": {"alice"}, "password": {"alice-pw"}}, "")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/entries/", resp.Header.Get("Location"))

	resp = a.do(t, http.MethodPost, "/auth/login/?next=//evil.example", url.Values{"username": {"alice"}, "password": {"alice-pw"}}, "")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestLogout(t *testing.T) {
	a := newTestApp(t)
	cookie := a.login(t, "alice", "alice-pw")

	resp := a.do(t, http.MethodGet, "/clients/", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = a.do(t, http.MethodGet, "/auth/logout/", nil, cookie)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	resp = a.do(t, http.MethodGet, "/clients/", nil, cookie)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
}

func TestCreateClientSetsAuthor(t *testing.T) {
	a := newTestApp(t)
	cookie := a.login(t, "alice", "alice-pw")

	resp := a.do(t, http.MethodPost, "/clients/", url.Values{"name": {"Acme"}}, cookie)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/clients/", resp.Header.Get("Location"))

	var client models.Client
	require.NoError(t, a.db.First(&client, "name = ?", "Acme").Error)
	require.NotNil(t, client.AuthorID)
	assert.Equal(t, a.userID(t, "alice"), client.AuthorID.String())
}

func TestCreateClientInvalidForm(t *testing.T) {
	a := newTestApp(t)
	cookie := a.login(t, "alice", "alice-pw")

	resp := a.do(t, http.MethodPost, "/clients/", url.Values{"name": {""}}, cookie)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body struct {
		Errors map[string][]string `json:"errors"`
	}
	decode(t, resp, &body)
	assert.Equal(t, []string{"This field is required."}, body.Errors["name"])

	var count int64
	require.NoError(t, a.db.Model(&models.Client{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestClientUpdateIsAuthorScoped(t *testing.T) {
	a := newTestApp(t)
	alice := a.login(t, "alice", "alice-pw")
	bob := a.login(t, "bob", "bob-pw")

	a.do(t, http.MethodPost, "/clients/", url.Values{"name": {"Acme"}}, alice)
	var acme models.Client
	require.NoError(t, a.db.First(&acme, "name = ?", "Acme").Error)
	path := "/clients/" + strconv.Itoa(int(acme.ID)) + "/"

	resp := a.do(t, http.MethodGet, path, nil, bob)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "Acme")

	resp = a.do(t, http.MethodPost, path, url.Values{"name": {"Hijacked"}}, bob)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = a.do(t, http.MethodGet, path, nil, alice)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page struct {
		Client models.Client `json:"client"`
		Form   struct {
			Name string `json:"name"`
		} `json:"form"`
	}
	decode(t, resp, &page)
	assert.Equal(t, "Acme", page.Client.Name)
	assert.Equal(t, "Acme", page.Form.Name)

	resp = a.do(t, http.MethodPost, path, url.Values{"name": {"Acme Corp"}}, alice)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/clients/", resp.Header.Get("Location"))

	require.NoError(t, a.db.First(&acme, acme.ID).Error)
	assert.Equal(t, "Acme Corp", acme.Name)
	assert.Equal(t, a.userID(t, "alice"), acme.AuthorID.String())
}

func TestUpdateUnknownOrMalformedID(t *testing.T) {
	a := newTestApp(t)
	cookie := a.login(t, "alice", "alice-pw")

	for _, path := range []string{"/clients/999/", "/clients/abc/", "/projects/999/", "/projects/0/"} {
		resp := a.do(t, http.MethodGet, path, nil, cookie)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}
}

func TestClientAndProjectListsAreShared(t *testing.T) {
	a := newTestApp(t)
	alice := a.login(t, "alice", "alice-pw")
	bob := a.login(t, "bob", "bob-pw")

	a.do(t, http.MethodPost, "/clients/", url.Values{"name": {"Acme"}}, alice)
	a.do(t, http.MethodPost, "/clients/", url.Values{"name": {"Globex"}}, bob)
	a.do(t, http.MethodPost, "/projects/", url.Values{"name": {"Website"}, "client": {"1"}}, alice)
	a.do(t, http.MethodPost, "/projects/", url.Values{"name": {"Internal"}}, bob)

	for _, path := range []string{"/clients/", "/projects/"} {
		respA := a.do(t, http.MethodGet, path, nil, alice)
		respB := a.do(t, http.MethodGet, path, nil, bob)
		require.Equal(t, http.StatusOK, respA.StatusCode)
		require.Equal(t, http.StatusOK, respB.StatusCode)
		bodyA, err := io.ReadAll(respA.Body)
		require.NoError(t, err)
		bodyB, err := io.ReadAll(respB.Body)
		require.NoError(t, err)
		assert.JSONEq(t, string(bodyA), string(bodyB), path)
	}

	resp := a.do(t, http.MethodGet, "/projects/", nil, alice)
	var page struct {
		Projects []models.Project `json:"projects"`
	}
	decode(t, resp, &page)
	require.Len(t, page.Projects, 2)
	require.NotNil(t, page.Projects[0].Client)
	assert.Equal(t, "Acme", page.Projects[0].Client.Name)
	assert.Nil(t, page.Projects[1].ClientID)
}

func TestProjectCreateAndUpdate(t *testing.T) {
	a := newTestApp(t)
	alice := a.login(t, "alice", "alice-pw")
	bob := a.login(t, "bob", "bob-pw")

	resp := a.do(t, http.MethodPost, "/projects/", url.Values{"name": {"Website"}, "client": {"42"}}, alice)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var invalid struct {
		Errors map[string][]string `json:"errors"`
	}
	decode(t, resp, &invalid)
	assert.Contains(t, invalid.Errors, "client")

	resp = a.do(t, http.MethodPost, "/projects/", url.Values{"name": {"Website"}}, alice)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/projects/", resp.Header.Get("Location"))

	var project models.Project
	require.NoError(t, a.db.First(&project, "name = ?", "Website").Error)
	assert.Equal(t, a.userID(t, "alice"), project.AuthorID.String())
	path := "/projects/" + strconv.Itoa(int(project.ID)) + "/"

	resp = a.do(t, http.MethodGet, path, nil, bob)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = a.do(t, http.MethodPut, path, url.Values{"name": {"Web shop"}}, alice)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	require.NoError(t, a.db.First(&project, project.ID).Error)
	assert.Equal(t, "Web shop", project.Name)
}

func TestEntryListIsScopedToUser(t *testing.T) {
	a := newTestApp(t)
	alice := a.login(t, "alice", "alice-pw")
	bob := a.login(t, "bob", "bob-pw")

	a.do(t, http.MethodPost, "/projects/", url.Values{"name": {"Website"}}, alice)

	resp := a.do(t, http.MethodPost, "/entries/", url.Values{"project": {"1"}, "description": {"design"}}, alice)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/entries/", resp.Header.Get("Location"))
	resp = a.do(t, http.MethodPost, "/entries/", url.Values{
		"project":     {"1"},
		"description": {"review"},
		"start":       {"2024-03-01T09:00"},
		"stop":        {"2024-03-01T10:00"},
	}, bob)
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	type entriesPage struct {
		Entries []models.Entry `json:"entries"`
	}

	var page entriesPage
	decode(t, a.do(t, http.MethodGet, "/entries/", nil, alice), &page)
	require.Len(t, page.Entries, 1)
	assert.Equal(t, "design", page.Entries[0].Description)
	assert.Equal(t, a.userID(t, "alice"), page.Entries[0].AuthorID.String())
	assert.False(t, page.Entries[0].IsFinished())

	page = entriesPage{}
	decode(t, a.do(t, http.MethodGet, "/entries/", nil, bob), &page)
	require.Len(t, page.Entries, 1)
	assert.Equal(t, "review", page.Entries[0].Description)
	assert.True(t, page.Entries[0].IsFinished())
}

func TestCreateEntryInvalidForm(t *testing.T) {
	a := newTestApp(t)
	cookie := a.login(t, "alice", "alice-pw")

	resp := a.do(t, http.MethodPost, "/entries/", url.Values{"project": {"7"}, "description": {""}, "start": {"soon"}}, cookie)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body struct {
		Errors map[string][]string `json:"errors"`
	}
	decode(t, resp, &body)
	assert.Contains(t, body.Errors, "project")
	assert.Contains(t, body.Errors, "description")
	assert.Contains(t, body.Errors, "start")
}

func TestCreateClientJSON(t *testing.T) {
	a := newTestApp(t)
	cookie := a.login(t, "alice", "alice-pw")

	req := httptest.NewRequest(http.MethodPost, "/clients/", bytes.NewBufferString(`{"name":"Acme"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cookie", cookie)
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
}

func TestExportEntries(t *testing.T) {
	a := newTestApp(t)
	alice := a.login(t, "alice", "alice-pw")
	bob := a.login(t, "bob", "bob-pw")

	a.do(t, http.MethodPost, "/projects/", url.Values{"name": {"Website"}}, alice)
	a.do(t, http.MethodPost, "/entries/", url.Values{"project": {"1"}, "description": {"mine"}}, alice)
	a.do(t, http.MethodPost, "/entries/", url.Values{"project": {"1"}, "description": {"theirs"}}, bob)

	resp := a.do(t, http.MethodGet, "/entries/export/", nil, alice)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "mine")
	assert.NotContains(t, string(raw), "theirs")

	resp = a.do(t, http.MethodGet, "/entries/export/?compress=gz", nil, alice)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/gzip", resp.Header.Get("Content-Type"))
	gz, err := gzip.NewReader(resp.Body)
	require.NoError(t, err)
	unzipped, err := io.ReadAll(gz)
	require.NoError(t, err)
	assert.Equal(t, string(raw), string(unzipped))
}

func TestMetricsEndpoint(t *testing.T) {
	a := newTestApp(t)
	cookie := a.login(t, "alice", "alice-pw")
	a.do(t, http.MethodPost, "/clients/", url.Values{"name": {"Acme"}}, cookie)

	resp := a.do(t, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `timetracker_records_created_total{kind="client"} 1`)
	assert.Contains(t, string(raw), `timetracker_logins_total{outcome="success"} 1`)
}

func TestNonNumericChoicesAreFieldErrors(t *testing.T) {
	a := newTestApp(t)
	alice := a.login(t, "alice", "alice-pw")

	type invalidForm struct {
		Errors map[string][]string `json:"errors"`
		Form   map[string]string   `json:"form"`
	}

	resp := a.do(t, http.MethodPost, "/projects/", url.Values{"name": {"Website"}, "client": {"abc"}}, alice)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var project invalidForm
	decode(t, resp, &project)
	assert.Equal(t, []string{forms.MsgInvalidChoice}, project.Errors["client"])
	assert.Equal(t, "abc", project.Form["client"])

	var count int64
	require.NoError(t, a.db.Model(&models.Project{}).Count(&count).Error)
	assert.Zero(t, count)

	resp = a.do(t, http.MethodPost, "/entries/", url.Values{"project": {"x"}, "description": {"design"}}, alice)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var entry invalidForm
	decode(t, resp, &entry)
	assert.Equal(t, []string{forms.MsgInvalidChoice}, entry.Errors["project"])
	assert.Equal(t, "x", entry.Form["project"])

	require.NoError(t, a.db.Model(&models.Entry{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateProjectJSONWithNumericClient(t *testing.T) {
	a := newTestApp(t)
	cookie := a.login(t, "alice", "alice-pw")
	a.do(t, http.MethodPost, "/clients/", url.Values{"name": {"Acme"}}, cookie)

	req := httptest.NewRequest(http.MethodPost, "/projects/", bytes.NewBufferString(`{"name":"Website","client":1}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cookie", cookie)
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	var project models.Project
	require.NoError(t, a.db.First(&project, "name = ?", "Website").Error)
	require.NotNil(t, project.ClientID)
	assert.Equal(t, uint(1), *project.ClientID)
}
