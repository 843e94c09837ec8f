package website

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolinabir/hirelens/internal/models"
)

const listingHTML = `<html><body>
<section class="jobs">
  <article class="listing">
    <a href="/jobs/1"><span class="title">Backend Developer</span></a>
    <p>We are hiring a backend developer, full-time, Dhaka office.</p>
  </article>
  <article class="listing">
    <a href="https://other.example/jobs/2"><span class="title">UI Designer</span></a>
    <p>Urgent: UI designer needed, remote work possible.</p>
  </article>
  <article class="listing"></article>
</section>
</body></html>`

func TestScrape_ParsesListings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(listingHTML))
	}))
	t.Cleanup(srv.Close)

	s := New()
	posts, err := s.Scrape(context.Background(), models.ScrapeTarget{
		URL:          srv.URL + "/jobs",
		ItemSelector: "article.listing",
		LinkSelector: "a",
	})
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Contains(t, posts[0].Content, "hiring a backend developer")
	assert.Equal(t, srv.URL+"/jobs/1", posts[0].FacebookURL)
	assert.Equal(t, "website", posts[0].Source)

	assert.Equal(t, "https://other.example/jobs/2", posts[1].FacebookURL)
}

func TestScrape_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	s := New()
	_, err := s.Scrape(context.Background(), models.ScrapeTarget{URL: srv.URL})
	assert.Error(t, err)
}

func TestScrape_DefaultSelectors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><article>Looking for a content writer, part-time. <a href="/w">apply</a></article></body></html>`))
	}))
	t.Cleanup(srv.Close)

	s := New()
	posts, err := s.Scrape(context.Background(), models.ScrapeTarget{URL: srv.URL})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, srv.URL+"/w", posts[0].FacebookURL)
}
