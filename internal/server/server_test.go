package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samvad-hq/answer-search/internal/answers"
	"github.com/samvad-hq/answer-search/pkg/search"
)

func newTestServer(t *testing.T, items []answers.Item) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(New(answers.NewBank(items), nil).Router())
	t.Cleanup(srv.Close)
	return srv
}

func TestSearchEndpointServesClient(t *testing.T) {
	srv := newTestServer(t, []answers.Item{
		{Type: "单选题", Question: "光合作用发生在哪里", Options: []string{"叶绿体", "线粒体"}, Answer: []string{"叶绿体"}},
		{Type: "判断题", Question: "地球是圆的", Answer: []string{"正确"}},
	})
	client := search.New(search.WithBaseURL(srv.URL))

	results, err := client.Search(context.Background(), "叶绿体", search.Filters{"type": "单选题"})
	require.NoError(t, err)
	require.Len(t, results, 1)

	item, ok := results[0]["item"].(map[string]any)
	require.True(t, ok, "item field missing: %#v", results[0])
	assert.Equal(t, "光合作用发生在哪里", item["question"])
	assert.Equal(t, 1.0, results[0]["score"])
}

func TestSearchEndpointEmptyBank(t *testing.T) {
	srv := newTestServer(t, nil)
	client := search.New(search.WithBaseURL(srv.URL))

	results, err := client.Search(context.Background(), "anything", nil)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.True(t, client.TestConnection(context.Background()))
}

func TestSearchEndpointRejectsMalformedBody(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, err := http.Post(srv.URL+search.SearchPath, "application/json", strings.NewReader("{"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSearchEndpointHugeLimit(t *testing.T) {
	srv := newTestServer(t, []answers.Item{{Question: "地球是圆的", Answer: []string{"正确"}}})

	body := `{"query":"地球","filters":{"limit":1e300}}`
	resp, err := http.Post(srv.URL+search.SearchPath, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHealthAndMetricsRoutes(t *testing.T) {
	srv := newTestServer(t, []answers.Item{{Question: "q"}})

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUnknownRouteMakesProbeFail(t *testing.T) {
	srv := newTestServer(t, nil)
	client := search.New(search.WithBaseURL(srv.URL + "/v2"))

	assert.False(t, client.TestConnection(context.Background()))
	_, err := client.Search(context.Background(), "x", nil)
	var te *search.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusNotFound, te.StatusCode)
}
