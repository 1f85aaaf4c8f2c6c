package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iwneis/neishelper/core"
	"github.com/iwneis/neishelper/core/catalog"
	"github.com/iwneis/neishelper/core/checklist"
	sqlxrepos "github.com/iwneis/neishelper/storage/database/sqlx"
	testutil "github.com/iwneis/neishelper/tests"
)

func setup(t *testing.T) *Server {
	t.Helper()

	conf := testutil.NewTestConfig()
	db := testutil.PrepareDB(t)
	svc := checklist.NewService(sqlxrepos.NewChecklistRepository(db), conf)

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)

	return NewServer(ServerDeps{
		Conf:         conf,
		Logger:       testutil.NopLogger{},
		ChecklistSvc: svc,
		Catalog:      testutil.LoadCatalog(t),
		Validate:     validate,
		Translator:   translator,
	})
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	return req, httptest.NewRecorder()
}

func marshalObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshalObj(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runHTTPTests(t *testing.T, app *Server, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		if tt.method == "" {
			tt.method = http.MethodGet
		}
		if tt.wantCode == 0 {
			tt.wantCode = http.StatusOK
		}
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func TestServer_home(t *testing.T) {
	app := setup(t)
	req, rec := newRequest(http.MethodGet, "/")
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to NEIS Helper API!", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func Test_checklistApi_proxy(t *testing.T) {
	app := setup(t)
	null := []byte(`{"data":null}`)
	ok := marshalObj(t, SaveChecklistResponse{Success: true})
	aliceBlob := `{"ys-1":true}`
	longID := strings.Repeat("x", 129)

	tests := []httpTest{
		{name: "absent (default user)", path: "/checklist", wantData: null},
		{name: "absent", path: "/checklist?userId=alice", wantData: null},
		{
			name: "save", method: http.MethodPost, path: "/checklist",
			body: marshalObj(t, SaveChecklistRequest{UserID: "alice", Data: aliceBlob}), wantData: ok,
		},
		{name: "get saved", path: "/checklist?userId=alice", wantData: marshalObj(t, GetChecklistResponse{Data: &aliceBlob})},
		{name: "other user untouched", path: "/checklist?userId=bob", wantData: null},
		{
			name: "save without user id", method: http.MethodPost, path: "/api/checklist",
			body: []byte(`{"data":"{}"}`), wantData: ok,
		},
		{name: "default slot via alias", path: "/api/checklist", wantData: []byte(`{"data":"{}"}`)},
		{name: "trailing slash", path: "/checklist/?userId=default", wantData: []byte(`{"data":"{}"}`)},
		{
			name: "replace", method: http.MethodPost, path: "/checklist",
			body: []byte(`{"userId":"alice","data":"{\"ys-2\":true}"}`), wantData: ok,
		},
		{name: "get replaced", path: "/checklist?userId=alice", wantData: []byte(`{"data":"{\"ys-2\":true}"}`)},
		{
			name: "data required", method: http.MethodPost, path: "/checklist",
			body: []byte(`{"userId":"alice"}`), wantCode: http.StatusBadRequest,
			wantData: []byte(`{"data":"this field is required"}`),
		},
		{
			name: "data blank", method: http.MethodPost, path: "/checklist",
			body: []byte(`{"userId":"alice","data":"  "}`), wantCode: http.StatusBadRequest,
			wantData: []byte(`{"data":"this field cannot be blank"}`),
		},
		{name: "blank data not saved", path: "/checklist?userId=alice", wantData: []byte(`{"data":"{\"ys-2\":true}"}`)},
		{
			name: "user id too long", method: http.MethodPost, path: "/checklist",
			body: marshalObj(t, SaveChecklistRequest{UserID: longID, Data: "{}"}), wantCode: http.StatusBadRequest,
		},
		{
			name: "malformed body", method: http.MethodPost, path: "/checklist",
			body: []byte(`{"data":`), wantCode: http.StatusBadRequest,
		},
		{name: "method not allowed", method: http.MethodDelete, path: "/checklist", wantCode: http.StatusMethodNotAllowed},
	}
	runHTTPTests(t, app, tests)
}

func Test_checklistApi_validationMessage(t *testing.T) {
	app := setup(t)
	body := marshalObj(t, SaveChecklistRequest{UserID: strings.Repeat("x", 129), Data: "{}"})
	req, rec := newRequest(http.MethodPost, "/checklist", body)
	app.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var fields map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fields))
	assert.Contains(t, fields, "userId")
}

func Test_checklistApi_cors(t *testing.T) {
	app := setup(t)

	req, rec := newRequest(http.MethodOptions, "/checklist")
	req.Header.Set("Origin", "https://neis.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	methods := rec.Header().Get("Access-Control-Allow-Methods")
	for _, m := range []string{http.MethodGet, http.MethodPost, http.MethodOptions} {
		assert.Contains(t, methods, m)
	}

	req, rec = newRequest(http.MethodGet, "/checklist")
	req.Header.Set("Origin", "https://neis.example.com")
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func Test_checklistApi_corsWithoutOrigin(t *testing.T) {
	app := setup(t)

	for _, path := range []string{"/checklist", "/api/checklist"} {
		req, rec := newRequest(http.MethodOptions, path)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code, path)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"), path)
		assert.Equal(t, "GET, POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"), path)
		assert.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"), path)

		req, rec = newRequest(http.MethodGet, path+"?userId=alice")
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"), path)

		req, rec = newRequest(http.MethodPost, path, []byte(`{"userId":"alice"}`))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"), path)
	}
}

func Test_checklistApi_progress(t *testing.T) {
	app := setup(t)

	req, rec := newRequest(http.MethodPost, "/checklist", []byte(`{"userId":"alice","data":"{\"ys-1\":true,\"ys-1-1\":true,\"al-1\":true}"}`))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req, rec = newRequest(http.MethodGet, "/v1/checklist/progress?userId=alice")
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var report struct {
		Overall struct {
			Checked int `json:"checked"`
			Total   int `json:"total"`
			Percent int `json:"percent"`
		} `json:"overall"`
		Periods []struct {
			Period   string `json:"period"`
			Progress struct {
				Checked int `json:"checked"`
			} `json:"progress"`
		} `json:"periods"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 3, report.Overall.Checked)
	assert.Greater(t, report.Overall.Total, 3)
	require.Len(t, report.Periods, 8)
	assert.Equal(t, "year-start", report.Periods[0].Period)
	assert.Equal(t, 2, report.Periods[0].Progress.Checked)
	assert.Equal(t, "always", report.Periods[7].Period)
	assert.Equal(t, 1, report.Periods[7].Progress.Checked)

	// unknown user: empty progress, not an error
	req, rec = newRequest(http.MethodGet, "/v1/checklist/progress?userId=nobody")
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 0, report.Overall.Checked)
}

func Test_checklistApi_items(t *testing.T) {
	app := setup(t)
	defer func(f func() time.Time) { nowFunc = f }(nowFunc)
	nowFunc = func() time.Time { return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) }

	runHTTPTests(t, app, []httpTest{
		{
			name: "unknown period", path: "/v1/checklist/items?period=summer", wantCode: http.StatusBadRequest,
			wantData: []byte(`{"period":"unknown period"}`),
		},
		{
			name: "unknown category", path: "/v1/checklist/items?period=always&category=sports", wantCode: http.StatusBadRequest,
			wantData: []byte(`{"category":"unknown category"}`),
		},
	})

	var res ItemsResponse
	for _, path := range []string{"/v1/checklist/items", "/v1/checklist/items?period=year-start&category=all"} {
		req, rec := newRequest(http.MethodGet, path)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, path)
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, "year-start", string(res.Period), path)
		require.NotEmpty(t, res.Groups, path)
		for _, g := range res.Groups {
			for i := 1; i < len(g.Items); i++ {
				assert.LessOrEqual(t, g.Items[i-1].Order, g.Items[i].Order)
			}
		}
	}

	req, rec := newRequest(http.MethodGet, "/v1/checklist/items?period=year-start&category=permission")
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	for _, g := range res.Groups {
		assert.Equal(t, "permission", string(g.Category))
	}
}

func Test_catalogApi(t *testing.T) {
	app := setup(t)
	defer func(f func() time.Time) { nowFunc = f }(nowFunc)
	nowFunc = func() time.Time { return time.Date(2026, 12, 24, 9, 0, 0, 0, time.UTC) }

	runHTTPTests(t, app, []httpTest{
		{name: "schedule month out of range", path: "/v1/schedules/13", wantCode: http.StatusBadRequest, wantData: []byte(`{"month":"month must be between 1 and 12"}`)},
		{name: "schedule month not a number", path: "/v1/schedules/march", wantCode: http.StatusBadRequest},
		{name: "unknown guide", path: "/v1/guides/nope", wantCode: http.StatusNotFound, wantData: marshalObj(t, httpErr{Error: "guide not found"})},
		{name: "unknown faq category", path: "/v1/faqs?category=sports", wantCode: http.StatusBadRequest},
		{name: "unknown route", path: "/v1/nope", wantCode: http.StatusNotFound, wantData: marshalObj(t, httpErr{Error: "Not Found"})},
	})

	t.Run("overview", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/overview")
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		var res OverviewResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, 2026, res.Year)
		assert.Equal(t, 12, res.Month)
		assert.Equal(t, "semester2-end", string(res.Period))
		assert.Contains(t, res.Description, "2학기 마감")
		assert.Len(t, res.Notices, 3)
		require.NotEmpty(t, res.Guides)
		assert.Equal(t, "year-end-transfer", res.Guides[0].ID)
		assert.Equal(t, 3, res.Tasks)
		assert.Equal(t, catalog.ScheduleSummary{Critical: 2, High: 1, WithDeadline: 2}, res.Summary)
	})

	t.Run("periods", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/periods")
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		var res PeriodsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, "semester2-end", string(res.Current))
		assert.Len(t, res.Periods, 8)
	})

	t.Run("categories", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/categories")
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		var res []CategoryResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Len(t, res, 10)
	})

	t.Run("schedules", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/schedules")
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		var res []ScheduleResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		require.Len(t, res, 12)
		assert.Equal(t, 1, res[0].Month)
	})

	t.Run("current schedule", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/schedules/current")
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		var res ScheduleResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, 12, res.Month)
		assert.Equal(t, "semester2-end", string(res.Period))
	})

	t.Run("faqs", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/faqs")
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		var res FAQsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.NotEmpty(t, res.Results)
		assert.Empty(t, res.Suggestions)
		assert.Len(t, res.Popular, 4)

		req, rec = newRequest(http.MethodGet, "/v1/faqs?q=zzzzzzzzzzzzzzzz")
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Empty(t, res.Results)
	})

	t.Run("guides", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/guides/year-end-transfer")
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":"year-end-transfer"`)
	})

	t.Run("resources", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/resources")
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		var res []map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Len(t, res, 7)
	})
}
