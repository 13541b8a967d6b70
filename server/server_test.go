package server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	adminrepofake "github.com/jrsteele09/go-org-service/admins/repofake"
	"github.com/jrsteele09/go-org-service/auth"
	"github.com/jrsteele09/go-org-service/internal/config"
	"github.com/jrsteele09/go-org-service/organizations"
	orgrepofake "github.com/jrsteele09/go-org-service/organizations/repofake"
	"github.com/jrsteele09/go-org-service/server"
	"github.com/jrsteele09/go-org-service/tenants/storefake"
	"github.com/jrsteele09/go-org-service/token"
)

const (
	testOrgName       = "Acme Inc"
	testAdminEmail    = "admin@acme.com"
	testAdminPassword = "Secret123"
)

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	or := orgrepofake.NewFakeOrganizationRepo()
	ar := adminrepofake.NewFakeAdminRepo()
	ts := storefake.NewFakeTenantStore()
	tokens := token.New(token.NewHMACSigner("test-secret-1234"), token.WithIssuer("com.testissuer"))

	lifecycle, err := organizations.NewService(organizations.Repos{
		Organizations: or,
		Admins:        ar,
	}, ts)
	require.NoError(t, err)

	sessions, err := auth.NewSessionService(auth.Repos{
		Admins:        ar,
		Organizations: or,
	}, tokens)
	require.NoError(t, err)

	srv, err := server.New(config.New(), lifecycle, sessions, tokens, nil)
	require.NoError(t, err)

	httpServer := httptest.NewServer(srv)
	t.Cleanup(httpServer.Close)
	return httpServer
}

func postJSON(t *testing.T, client *http.Client, url string, body any, bearer string) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := client.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createOrganization(t *testing.T, ts *httptest.Server) organizations.Organization {
	t.Helper()

	resp := postJSON(t, ts.Client(), ts.URL+"/api/organizations", map[string]string{
		"organization_name": testOrgName,
		"email":             testAdminEmail,
		"password":          testAdminPassword,
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeBody[organizations.Organization](t, resp)
}

func login(t *testing.T, ts *httptest.Server) auth.Session {
	t.Helper()

	resp := postJSON(t, ts.Client(), ts.URL+"/api/auth/login", map[string]string{
		"email":    testAdminEmail,
		"password": testAdminPassword,
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decodeBody[auth.Session](t, resp)
}

func orgURL(ts *httptest.Server, name string) string {
	return ts.URL + "/api/organizations/" + url.PathEscape(name)
}

func TestOrganizationLifecycleScenario(t *testing.T) {
	ts := setupTestServer(t)

	org := createOrganization(t, ts)
	require.Equal(t, "tenant_acme_inc", org.Namespace)

	session := login(t, ts)
	require.Equal(t, testOrgName, session.OrganizationName)
	require.Equal(t, "org_admin", session.Role)
	require.NotEmpty(t, session.AccessToken)
	require.NotEmpty(t, session.RefreshToken)

	// Authenticated read
	req, err := http.NewRequest(http.MethodGet, orgURL(ts, testOrgName), nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+session.AccessToken)
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	got := decodeBody[organizations.Organization](t, resp)
	require.Equal(t, org.ID, got.ID)

	// Delete with the admin's token
	req, err = http.NewRequest(http.MethodDelete, orgURL(ts, testOrgName), nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+session.AccessToken)
	resp, err = ts.Client().Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Organization is gone
	req, err = http.NewRequest(http.MethodGet, orgURL(ts, testOrgName), nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+session.AccessToken)
	resp, err = ts.Client().Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateDuplicateOrganizationConflicts(t *testing.T) {
	ts := setupTestServer(t)

	createOrganization(t, ts)

	resp := postJSON(t, ts.Client(), ts.URL+"/api/organizations", map[string]string{
		"organization_name": testOrgName,
		"email":             "other@acme.com",
		"password":          "Different123",
	}, "")
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCreateOrganizationValidation(t *testing.T) {
	ts := setupTestServer(t)

	resp := postJSON(t, ts.Client(), ts.URL+"/api/organizations", map[string]string{
		"organization_name": testOrgName,
		"email":             "not-an-email",
		"password":          testAdminPassword,
	}, "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLoginWrongPasswordUnauthorized(t *testing.T) {
	ts := setupTestServer(t)

	createOrganization(t, ts)

	resp := postJSON(t, ts.Client(), ts.URL+"/api/auth/login", map[string]string{
		"email":    testAdminEmail,
		"password": "WrongSecret1",
	}, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetOrganizationRequiresAuth(t *testing.T) {
	ts := setupTestServer(t)

	createOrganization(t, ts)

	resp, err := ts.Client().Get(orgURL(ts, testOrgName))
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, orgURL(ts, testOrgName), nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err = ts.Client().Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRefreshEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	createOrganization(t, ts)
	session := login(t, ts)

	resp := postJSON(t, ts.Client(), ts.URL+"/api/auth/refresh", map[string]string{
		"refresh_token": session.RefreshToken,
	}, session.AccessToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	result := decodeBody[auth.RefreshResult](t, resp)
	require.NotEmpty(t, result.AccessToken)
	require.Equal(t, "bearer", result.TokenType)

	// A later login rotates the stored fingerprint; the old refresh token
	// is then rejected.
	second := login(t, ts)
	resp = postJSON(t, ts.Client(), ts.URL+"/api/auth/refresh", map[string]string{
		"refresh_token": session.RefreshToken,
	}, second.AccessToken)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHealthEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	resp, err := ts.Client().Get(fmt.Sprintf("%s/health", ts.URL))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
