package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/trezcool/studyhub/core"
	"github.com/trezcool/studyhub/core/study"
	logsvc "github.com/trezcool/studyhub/services/logger"
	inmemdb "github.com/trezcool/studyhub/storage/database/inmem"
	filestore "github.com/trezcool/studyhub/storage/files"
)

var testNow = time.Date(2024, 5, 14, 9, 30, 0, 0, time.UTC)

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

func setup(t *testing.T, remote study.RemoteStore) *Server {
	t.Helper()
	if remote == nil {
		remote = inmemdb.Open()
	}
	conf := &core.Config{AppName: "StudyHub", TestMode: true}
	logger := logsvc.NewConsoleLogger(io.Discard, "api", conf)
	translator := core.NewTranslator()
	validate := study.NewValidator(translator)

	store, err := study.Open(context.Background(), study.Options{
		Remote:    remote,
		Snapshots: filestore.NewSnapshotStore(t.TempDir()),
		Logger:    logger,
		Validate:  validate,
		Now:       func() time.Time { return testNow },
	})
	require.NoError(t, err)

	server := NewServer(ServerDeps{
		Conf:       conf,
		Logger:     logger,
		Store:      store,
		Validate:   validate,
		Translator: translator,
	})
	t.Cleanup(func() {
		_ = server.Close()
		_ = store.Close()
	})
	return server
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
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

func runHTTPTests(t *testing.T, server http.Handler, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
