package httpserver

import (
	"context"
	"encoding/json"
	"iter"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adminconsole "komunumo/contexts/internal-ops/admin-console-service"
	"komunumo/contexts/internal-ops/admin-console-service/adapters/memory"
	"komunumo/contexts/internal-ops/admin-console-service/domain/entities"
	domainerrors "komunumo/contexts/internal-ops/admin-console-service/domain/errors"
	"komunumo/contexts/internal-ops/admin-console-service/ports"
	"komunumo/internal/platform/metrics"
)

func newTestServer() *Server {
	recorder := metrics.NewRecorder("komunumo_test")
	module := adminconsole.NewInMemoryModule(nil)
	return New(module, recorder.Handler(), nil, ":0")
}

func serve(t *testing.T, server *Server, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func createSponsor(t *testing.T, server *Server, name string) int64 {
	t.Helper()
	rr := serve(t, server, http.MethodPost, "/api/admin/v1/sponsors", `{"name":"`+name+`","level":"GOLD"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	record := decode(t, rr)["record"].(map[string]any)
	return int64(record["id"].(float64))
}

func TestHealthz(t *testing.T) {
	rr := serve(t, newTestServer(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestRequestIDIsGeneratedOrEchoed(t *testing.T) {
	server := newTestServer()

	rr := serve(t, server, http.MethodGet, "/healthz", "")
	assert.Len(t, rr.Header().Get("X-Request-Id"), 36)

	rr = serve(t, server, http.MethodGet, "/healthz", "", "X-Request-Id", "req-123")
	assert.Equal(t, "req-123", rr.Header().Get("X-Request-Id"))
}

func TestCreateAndListSponsors(t *testing.T) {
	server := newTestServer()
	createSponsor(t, server, "Acme")
	createSponsor(t, server, "Beta")

	rr := serve(t, server, http.MethodGet, "/api/admin/v1/sponsors?filter=be&limit=10", "")
	require.Equal(t, http.StatusOK, rr.Code)
	body := decode(t, rr)
	items := body["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Beta", items[0].(map[string]any)["name"])
	assert.Equal(t, float64(10), body["limit"])
	assert.Equal(t, "be", body["filter"])
}

func TestListPagination(t *testing.T) {
	server := newTestServer()
	for _, name := range []string{"one", "two", "three"} {
		createSponsor(t, server, name)
	}

	rr := serve(t, server, http.MethodGet, "/api/admin/v1/sponsors?offset=1&limit=1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	items := decode(t, rr)["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "two", items[0].(map[string]any)["name"])

	rr = serve(t, server, http.MethodGet, "/api/admin/v1/sponsors?offset=-1", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "invalid_offset", decode(t, rr)["code"])

	rr = serve(t, server, http.MethodGet, "/api/admin/v1/sponsors?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestNewRecordTemplate(t *testing.T) {
	rr := serve(t, newTestServer(), http.MethodGet, "/api/admin/v1/speakers/new", "")
	require.Equal(t, http.StatusOK, rr.Code)
	record := decode(t, rr)["record"].(map[string]any)
	assert.Equal(t, float64(0), record["id"])
	assert.Equal(t, "", record["first_name"])
}

func TestOpenMissingRecordIsNotFound(t *testing.T) {
	server := newTestServer()
	rr := serve(t, server, http.MethodGet, "/api/admin/v1/sponsors/42", "")
	require.Equal(t, http.StatusNotFound, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, "not_found", body["code"])
	assert.Equal(t, "This sponsor does not exist anymore.", body["message"])

	rr = serve(t, server, http.MethodPut, "/api/admin/v1/sponsors/42", `{"name":"Ghost"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = serve(t, server, http.MethodGet, "/api/admin/v1/sponsors/abc", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateSponsor(t *testing.T) {
	server := newTestServer()
	id := createSponsor(t, server, "Acme")

	rr := serve(t, server, http.MethodPut, "/api/admin/v1/sponsors/"+itoa(id)+"?limit=5", `{"name":"Acme Corp","level":"PLATIN"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	body := decode(t, rr)
	assert.Equal(t, "committed", body["outcome"])
	listing := body["listing"].(map[string]any)
	items := listing["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Acme Corp", items[0].(map[string]any)["name"])
	assert.Equal(t, "PLATIN", items[0].(map[string]any)["level"])
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	server := newTestServer()
	id := createSponsor(t, server, "Acme")
	path := "/api/admin/v1/sponsors/" + itoa(id)

	rr := serve(t, server, http.MethodDelete, path, "")
	require.Equal(t, http.StatusConflict, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, "confirmation_required", body["outcome"])
	assert.Equal(t, `Are you sure you want to permanently delete the sponsor "Acme"?`, body["message"])

	rr = serve(t, server, http.MethodDelete, path+"?confirm=true", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "confirmed", decode(t, rr)["outcome"])

	rr = serve(t, server, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	rr = serve(t, server, http.MethodDelete, path+"?confirm=true", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestInvalidBodiesAreRejected(t *testing.T) {
	server := newTestServer()

	rr := serve(t, server, http.MethodPost, "/api/admin/v1/sponsors", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "invalid_json", decode(t, rr)["code"])

	rr = serve(t, server, http.MethodPost, "/api/admin/v1/sponsors", `{"name":"Acme","level":"BRONZE"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "invalid_input", decode(t, rr)["code"])

	rr = serve(t, server, http.MethodPost, "/api/admin/v1/events", `{"title":"Meetup","date":"next friday"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestEveryKindIsRouted(t *testing.T) {
	server := newTestServer()
	bodies := map[string]string{
		"speakers": `{"first_name":"Jane","last_name":"Doe","company":"Acme"}`,
		"events":   `{"title":"Testevent One","date":"2021-10-01T18:00:00Z","visible":true}`,
		"members":  `{"first_name":"Marcus","last_name":"Fihlon","email":"marcus@example.com","active":true}`,
	}
	for kind, body := range bodies {
		rr := serve(t, server, http.MethodPost, "/api/admin/v1/"+kind, body)
		require.Equal(t, http.StatusCreated, rr.Code, kind+": "+rr.Body.String())

		rr = serve(t, server, http.MethodGet, "/api/admin/v1/"+kind, "")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Len(t, decode(t, rr)["items"].([]any), 1, kind)
	}
}

func TestAuditListsMutationsWithActor(t *testing.T) {
	server := newTestServer()
	rr := serve(t, server, http.MethodPost, "/api/admin/v1/sponsors", `{"name":"Acme"}`,
		"X-User-Id", "operator-1", "X-Request-Id", "req-9")
	require.Equal(t, http.StatusCreated, rr.Code)
	createSponsor(t, server, "Beta")

	rr = serve(t, server, http.MethodGet, "/api/admin/v1/audit?limit=10", "")
	require.Equal(t, http.StatusOK, rr.Code)
	items := decode(t, rr)["items"].([]any)
	require.Len(t, items, 2)
	newest := items[0].(map[string]any)
	oldest := items[1].(map[string]any)
	assert.Equal(t, "anonymous", newest["actor_id"])
	assert.Equal(t, "operator-1", oldest["actor_id"])
	assert.Equal(t, "req-9", oldest["request_id"])
	assert.Equal(t, "sponsor.create", oldest["action"])

	rr = serve(t, server, http.MethodGet, "/api/admin/v1/audit?limit=x", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMetricsExposeStoreOperations(t *testing.T) {
	server := newTestServer()
	createSponsor(t, server, "Acme")

	rr := serve(t, server, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `komunumo_test_record_store_operations_total{kind="sponsor",operation="store",result="success"} 1`)
}

func TestSwaggerDocIsServed(t *testing.T) {
	rr := serve(t, newTestServer(), http.MethodGet, "/swagger/doc.json", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "/api/admin/v1/sponsors")
}

func TestShutdownWithoutStart(t *testing.T) {
	assert.NoError(t, newTestServer().Shutdown(context.Background()))
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

type unlistableSponsors struct {
	ports.RecordStore[entities.Sponsor]
}

func (unlistableSponsors) Find(context.Context, int, int, string) iter.Seq2[entities.Sponsor, error] {
	return func(yield func(entities.Sponsor, error) bool) {
		yield(entities.Sponsor{}, domainerrors.Storage(assert.AnError))
	}
}

func TestMutationWithFailedRefreshReportsIt(t *testing.T) {
	module := adminconsole.NewModule(adminconsole.Dependencies{
		Sponsors: unlistableSponsors{
			RecordStore: memory.NewRecordStore[entities.Sponsor, *entities.Sponsor](entities.NewSponsor),
		},
		Speakers:      memory.NewRecordStore[entities.Speaker, *entities.Speaker](entities.NewSpeaker),
		Events:        memory.NewRecordStore[entities.Event, *entities.Event](entities.NewEvent),
		EventSpeakers: memory.NewRecordStore[entities.EventSpeaker, *entities.EventSpeaker](entities.NewEventSpeaker),
		Members:       memory.NewRecordStore[entities.Member, *entities.Member](entities.NewMember),
	})
	server := New(module, metrics.NewRecorder("komunumo_refresh_test").Handler(), nil, ":0")

	rr := serve(t, server, http.MethodPost, "/api/admin/v1/sponsors", `{"name":"Acme"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	body := decode(t, rr)
	assert.Equal(t, "committed", body["outcome"])
	assert.NotContains(t, body, "listing")
	assert.Contains(t, body["followup_error"], "storage backend failure")
	id := int64(body["record"].(map[string]any)["id"].(float64))

	rr = serve(t, server, http.MethodGet, "/api/admin/v1/sponsors/"+itoa(id), "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = serve(t, server, http.MethodDelete, "/api/admin/v1/sponsors/"+itoa(id)+"?confirm=true", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	body = decode(t, rr)
	assert.Equal(t, "confirmed", body["outcome"])
	assert.NotContains(t, body, "listing")
	assert.NotEmpty(t, body["followup_error"])
}
