package version

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func releaseServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLatest(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		tag      string
		outdated bool
	}{
		{"newer release", "v1.0.0", "v1.2.0", true},
		{"same release", "v1.2.0", "v1.2.0", false},
		{"ahead of release", "v2.0.0", "v1.2.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := releaseServer(t, http.StatusOK, `{"tag_name":"`+tt.tag+`"}`)
			c := &Checker{URL: srv.URL, Current: tt.current, Client: srv.Client()}

			latest, outdated, err := c.Latest(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.tag, latest)
			assert.Equal(t, tt.outdated, outdated)
		})
	}
}

func TestLatest_BadStatus(t *testing.T) {
	srv := releaseServer(t, http.StatusForbidden, `{}`)
	c := &Checker{URL: srv.URL, Current: "v1.0.0", Client: srv.Client()}

	_, _, err := c.Latest(context.Background())
	assert.Error(t, err)
}
