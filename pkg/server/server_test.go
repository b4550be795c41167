package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/png"
	"io/ioutil"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akeil/xform"
	"github.com/akeil/xform/pkg/render"
)

func setupServer(t *testing.T, cfg Config) (*httptest.Server, *http.Client) {
	cfg.Width = 200
	cfg.Height = 200
	ts := httptest.NewServer(New(cfg))
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return ts, &http.Client{Jar: jar}
}

func get(t *testing.T, c *http.Client, u string) (*http.Response, string) {
	res, err := c.Get(u)
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := ioutil.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(body)
}

func TestPageNavigation(t *testing.T) {
	ts, c := setupServer(t, DefaultConfig())

	res, body := get(t, c, ts.URL+"/")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Start Demo")

	// start the demo, the redirect leads to the demo page
	res, err := c.PostForm(ts.URL+"/start", url.Values{})
	require.NoError(t, err)
	data, _ := ioutil.ReadAll(res.Body)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, string(data), "2D Matrix Transformations Demo")

	// the session remembers the page
	_, body = get(t, c, ts.URL+"/?kind=Rotation&angle=90")
	assert.Contains(t, body, "Rotation by 90°")
	assert.Contains(t, body, "/plot.png?angle=90&amp;kind=Rotation")

	// a second client still sees the welcome page
	other, _ := cookiejar.New(nil)
	_, body = get(t, &http.Client{Jar: other}, ts.URL+"/")
	assert.Contains(t, body, "Start Demo")

	// back to the start
	res, err = c.PostForm(ts.URL+"/reset", url.Values{})
	require.NoError(t, err)
	res.Body.Close()
	_, body = get(t, c, ts.URL+"/")
	assert.Contains(t, body, "Start Demo")
}

func TestStartOnDemoPage(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StartPage = xform.Demo
	ts, c := setupServer(t, cfg)

	_, body := get(t, c, ts.URL+"/?kind=Scaling&sx=0.01")
	assert.Contains(t, body, "2D Matrix Transformations Demo")
	assert.Contains(t, body, "below the minimum")
	assert.NotContains(t, body, "<img")
}

func TestPlotPNG(t *testing.T) {
	ts, c := setupServer(t, DefaultConfig())

	res, err := c.Get(ts.URL + "/plot.png?kind=Scaling&sx=2&sy=0.5")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "image/png", res.Header.Get("Content-Type"))

	img, err := png.Decode(res.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
}

func TestPlotPDF(t *testing.T) {
	ts, c := setupServer(t, DefaultConfig())

	res, body := get(t, c, ts.URL+"/plot.pdf?kind=Reflection&axis=y%3Dx")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "application/pdf", res.Header.Get("Content-Type"))
	require.NoError(t, render.ValidatePDF(strings.NewReader(body)))
}

func TestInvalidParams(t *testing.T) {
	ts, c := setupServer(t, DefaultConfig())

	for _, q := range []string{
		"kind=Scaling&sx=0.05",
		"kind=Warp",
		"kind=Rotation&angle=abc",
		"kind=Reflection&axis=z",
		"kind=Translation&tx=NaN",
	} {
		res, _ := get(t, c, ts.URL+"/plot.png?"+q)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, q)
	}
}

func TestTransformAPI(t *testing.T) {
	ts, c := setupServer(t, DefaultConfig())

	res, body := get(t, c, ts.URL+"/api/transform?kind=Translation&tx=2&ty=-1")
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var r xform.Result
	require.NoError(t, json.Unmarshal([]byte(body), &r))
	assert.Equal(t, xform.Translate(2, -1), r.Matrix)
	assert.Equal(t, xform.Point{X: 2, Y: -1}, r.Transformed[0])
	assert.Equal(t, xform.UnitSquare(), r.Original)
}

func TestRouting(t *testing.T) {
	ts, c := setupServer(t, DefaultConfig())

	res, _ := get(t, c, ts.URL+"/settings")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, _ = get(t, c, ts.URL+"/start")
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)

	res, err := c.Post(ts.URL+"/plot.png", "text/plain", &bytes.Buffer{})
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
}

func TestSessions(t *testing.T) {
	s := NewSessions(xform.Welcome)
	if s.Page("a") != xform.Welcome {
		t.Errorf("unknown session should be on the start page")
	}
	s.SetPage("a", xform.Demo)
	if s.Page("a") != xform.Demo {
		t.Errorf("session page was not stored")
	}
	if s.Page("b") != xform.Welcome {
		t.Errorf("sessions are not independent")
	}
	if s.Len() != 1 {
		t.Errorf("unexpected number of sessions: %v", s.Len())
	}

	// going back to the start page forgets the session
	s.SetPage("a", xform.Welcome)
	s.SetPage("c", xform.Welcome)
	if s.Page("a") != xform.Welcome || s.Len() != 0 {
		t.Errorf("sessions on the start page should not be stored, have %v", s.Len())
	}
}

func TestSessionLimit(t *testing.T) {
	s := NewSessions(xform.Welcome)
	s.limit = 3

	for i := 0; i < 10; i++ {
		s.SetPage(fmt.Sprintf("s%d", i), xform.Demo)
	}
	assert.Equal(t, 3, s.Len())
	// the latest session is always kept
	assert.Equal(t, xform.Demo, s.Page("s9"))

	// updating a known session does not drop another one
	s.SetPage("s9", xform.Demo)
	assert.Equal(t, 3, s.Len())
}

func TestResetWithoutCookie(t *testing.T) {
	srv := New(DefaultConfig())

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/reset", nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
	}
	assert.Equal(t, 0, srv.Sessions().Len())
}

func TestSessionCookie(t *testing.T) {
	srv := New(DefaultConfig())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: "not-a-uuid"})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, cookieName, cookies[0].Name)
	assert.NotEqual(t, "not-a-uuid", cookies[0].Value)
}

func TestPlotHugeTranslation(t *testing.T) {
	ts, c := setupServer(t, DefaultConfig())

	for _, u := range []string{
		"/plot.png?kind=Translation&tx=-1.7e308&ty=1.7e308",
		"/plot.pdf?kind=Translation&tx=-1.7e308&ty=1.7e308",
	} {
		res, _ := get(t, c, ts.URL+u)
		assert.Equal(t, http.StatusOK, res.StatusCode, u)
	}
}
