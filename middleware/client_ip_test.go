package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func clientIPFor(headers map[string]string, remote string) string {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = remote
	for k, v := range headers {
		c.Request.Header.Set(k, v)
	}
	return getClientIP(c)
}

func TestGetClientIP(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"peer with port", nil, "10.0.0.7:51234", "10.0.0.7"},
		{"first forwarded hop", map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"}, "10.0.0.1:80", "203.0.113.9"},
		{"skips unparseable hop", map[string]string{"X-Forwarded-For": "unknown, 198.51.100.4"}, "10.0.0.1:80", "198.51.100.4"},
		{"real ip header", map[string]string{"X-Real-IP": " 2001:db8::1 "}, "10.0.0.1:80", "2001:db8::1"},
		{"garbage headers fall back to peer", map[string]string{"X-Forwarded-For": "nope", "X-Real-IP": "also-nope"}, "192.0.2.10:443", "192.0.2.10"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, clientIPFor(tc.headers, tc.remote))
		})
	}
}
