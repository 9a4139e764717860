package util

import (
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildURL(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]string
		want   string
	}{
		{"no params", nil, "/gallery/0xabc"},
		{"empty values dropped", map[string]string{"offset": "", "dark": ""}, "/gallery/0xabc"},
		{"canonical order", map[string]string{"dark": "1", "offset": "20", "metadata": "0"}, "/gallery/0xabc?offset=20&metadata=0&dark=1"},
		{"unknown params last, sorted", map[string]string{"zz": "1", "aa": "2", "offset": "5"}, "/gallery/0xabc?offset=5&aa=2&zz=1"},
		{"values escaped", map[string]string{"x": "a b&c"}, "/gallery/0xabc?x=a+b%26c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildURL("/gallery/0xabc", tt.params))
		})
	}
}

func TestQueryParams(t *testing.T) {
	q, err := url.ParseQuery("offset=20&dark=1&dark=0")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"offset": "20", "dark": "1"}, QueryParams(q))
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"1", "true", "TRUE", "on", "yes"} {
		got := ParseBool(s)
		require.NotNil(t, got, s)
		assert.True(t, *got, s)
	}
	for _, s := range []string{"0", "false", "off", "No"} {
		got := ParseBool(s)
		require.NotNil(t, got, s)
		assert.False(t, *got, s)
	}
	assert.Nil(t, ParseBool(""))
	assert.Nil(t, ParseBool("maybe"))
}

func TestParseOffsetAndIndex(t *testing.T) {
	assert.Equal(t, 0, ParseOffset(""))
	assert.Equal(t, 0, ParseOffset("-3"))
	assert.Equal(t, 0, ParseOffset("abc"))
	assert.Equal(t, 40, ParseOffset("40"))

	_, ok := ParseIndex("")
	assert.False(t, ok)
	_, ok = ParseIndex("-1")
	assert.False(t, ok)
	n, ok := ParseIndex("3")
	assert.True(t, ok)
	assert.Equal(t, 3, n)
}

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, 201, map[string]int{"n": 1})
	assert.Equal(t, 201, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"n":1}`, rec.Body.String())
}
