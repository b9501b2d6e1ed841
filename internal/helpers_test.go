package spycatconsole

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"github.com/4oBuko/spy-cat-console/internal/metrics"
	"github.com/4oBuko/spy-cat-console/internal/repositories"
	"github.com/4oBuko/spy-cat-console/internal/services"
	"github.com/4oBuko/spy-cat-console/pkg/agencyapi"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func newConsole(api agencyapi.AgencyAPI) *Server {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	m := metrics.New()
	catService := services.NewDefaultCatService(api, logger, m)
	missionService := services.NewDefaultMissionService(api, catService, logger)
	sessions := repositories.NewInMemorySessionRepository(time.Hour, m)
	return NewServer("127.0.0.1:0", catService, missionService, sessions, logger, m)
}

// testBrowser drives the console handler the way a browser would, keeping
// the session cookie between requests.
type testBrowser struct {
	handler http.Handler
	cookie  *http.Cookie
}

func newTestBrowser(server *Server) *testBrowser {
	return &testBrowser{handler: server.Handler()}
}

func (b *testBrowser) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if b.cookie != nil {
		req.AddCookie(b.cookie)
	}
	rec := httptest.NewRecorder()
	b.handler.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookie {
			b.cookie = c
		}
	}
	return rec
}

func (b *testBrowser) open() *httptest.ResponseRecorder {
	return b.do(http.MethodGet, Endpoints.Index, nil)
}

func (b *testBrowser) post(path string, form url.Values) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	return b.do(http.MethodPost, path, form)
}

func rowCount(page string) int {
	return strings.Count(page, `<tr id="cat-`)
}

func registrationForm(name, years, breed, salary string) url.Values {
	return url.Values{
		"name":                {name},
		"years_of_experience": {years},
		"breed":               {breed},
		"salary":              {salary},
	}
}
