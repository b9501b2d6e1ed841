package spycatconsole

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/4oBuko/spy-cat-console/internal/metrics"
	"github.com/4oBuko/spy-cat-console/internal/models"
	"github.com/4oBuko/spy-cat-console/internal/repositories"
	"github.com/4oBuko/spy-cat-console/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var Endpoints = struct {
	Index   string
	Reload  string
	Health  string
	Metrics string

	CatCreate     string
	CatEdit       string
	CatCancelEdit string
	CatSalary     string
	CatDelete     string

	TargetComplete string
}{
	Index:   "/",
	Reload:  "/reload",
	Health:  "/healthz",
	Metrics: "/metrics",

	CatCreate:     "/cats",
	CatEdit:       "/cats/:id/edit",
	CatCancelEdit: "/cats/:id/cancel",
	CatSalary:     "/cats/:id/salary",
	CatDelete:     "/cats/:id/delete",

	TargetComplete: "/targets/:id/complete",
}

const (
	SessionCookie = "sca_session"

	MsgDeleteConfirm = "Are you sure you want to delete this cat?"
	MsgCatNotFound   = "Cat not found"
)

type Server struct {
	router         *gin.Engine
	httpServer     *http.Server
	catService     services.CatService
	missionService services.MissionService
	sessions       repositories.SessionRepository
	logger         *zap.Logger
	metrics        *metrics.Metrics
}

func NewServer(
	addr string,
	catService services.CatService,
	missionService services.MissionService,
	sessions repositories.SessionRepository,
	logger *zap.Logger,
	m *metrics.Metrics,
) *Server {
	router := gin.New()
	router.Use(requestID(), requestLogger(logger), gin.Recovery())
	router.SetHTMLTemplate(template.Must(
		template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.tmpl"),
	))

	server := &Server{
		router: router,
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		catService:     catService,
		missionService: missionService,
		sessions:       sessions,
		logger:         logger,
		metrics:        m,
	}

	router.GET(Endpoints.Index, server.handleIndex)
	router.POST(Endpoints.Reload, server.handleReload)
	router.GET(Endpoints.Health, server.handleHealth)
	router.GET(Endpoints.Metrics, gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))

	router.POST(Endpoints.CatCreate, server.handleAddCat)
	router.POST(Endpoints.CatEdit, server.handleEditCat)
	router.POST(Endpoints.CatCancelEdit, server.handleCancelEdit)
	router.POST(Endpoints.CatSalary, server.handleSaveSalary)
	router.GET(Endpoints.CatDelete, server.handleDeletePrompt)
	router.POST(Endpoints.CatDelete, server.handleDeleteCat)

	router.POST(Endpoints.TargetComplete, server.handleCompleteTarget)
	return server
}

// withSession runs fn against the caller's session and (re)issues the
// session cookie when a new session was started.
func (s *Server) withSession(ctx *gin.Context, fn func(*models.Session) error) error {
	id, _ := ctx.Cookie(SessionCookie)
	used, err := s.sessions.Use(ctx.Request.Context(), id, fn)
	if used != id {
		ctx.SetSameSite(http.SameSiteLaxMode)
		ctx.SetCookie(SessionCookie, used, 0, "/", "", false, true)
	}
	return err
}

func (s *Server) backToIndex(ctx *gin.Context) {
	ctx.Redirect(http.StatusSeeOther, Endpoints.Index)
}

func (s *Server) sessionFailed(ctx *gin.Context, err error) {
	s.logger.Error("session handling failed", zap.Error(err))
	ctx.String(http.StatusInternalServerError, "session unavailable, reload the page")
}

func (s *Server) loadRoster(ctx context.Context, sess *models.Session) {
	sess.Loaded = true
	cats, err := s.catService.GetAll(ctx)
	if err != nil {
		sess.LoadError = err.Error()
		return
	}
	s.resetRoster(sess, cats)
}

func (s *Server) resetRoster(sess *models.Session, cats []models.Cat) {
	sess.LoadError = ""
	sess.Roster.Reset(cats)
	if sess.Editing != nil {
		if _, ok := sess.Roster.Find(sess.Editing.CatId); !ok {
			sess.Editing = nil
		}
	}
}

func (s *Server) handleIndex(ctx *gin.Context) {
	var view indexView
	err := s.withSession(ctx, func(sess *models.Session) error {
		if !sess.Loaded {
			s.loadRoster(ctx.Request.Context(), sess)
		}
		view = newIndexView(sess)
		return nil
	})
	if err != nil {
		s.sessionFailed(ctx, err)
		return
	}
	ctx.HTML(http.StatusOK, "index.tmpl", view)
}

func (s *Server) handleReload(ctx *gin.Context) {
	err := s.withSession(ctx, func(sess *models.Session) error {
		s.loadRoster(ctx.Request.Context(), sess)
		return nil
	})
	if err != nil {
		s.sessionFailed(ctx, err)
		return
	}
	s.backToIndex(ctx)
}

func (s *Server) handleHealth(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleAddCat(ctx *gin.Context) {
	var form models.CatForm
	if err := ctx.ShouldBind(&form); err != nil {
		s.logger.Debug("malformed registration form", zap.Error(err))
	}

	err := s.withSession(ctx, func(sess *models.Session) error {
		sess.Form = form
		sess.FormError = ""
		cat, err := s.catService.Add(ctx.Request.Context(), form)
		if err != nil {
			sess.FormError = err.Error()
			return nil
		}
		sess.Roster.Append(cat)
		sess.Form = models.CatForm{}
		return nil
	})
	if err != nil {
		s.sessionFailed(ctx, err)
		return
	}
	s.backToIndex(ctx)
}

func parseId(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.String(http.StatusNotFound, "not found. Use number as id!")
		return 0, false
	}
	return id, true
}

func (s *Server) handleEditCat(ctx *gin.Context) {
	id, ok := parseId(ctx)
	if !ok {
		return
	}
	err := s.withSession(ctx, func(sess *models.Session) error {
		cat, found := sess.Roster.Find(id)
		if !found {
			sess.Alert = MsgCatNotFound
			return nil
		}
		sess.Editing = &models.SalaryEdit{
			CatId: cat.Id,
			Input: strconv.FormatFloat(cat.Salary, 'f', -1, 64),
		}
		return nil
	})
	if err != nil {
		s.sessionFailed(ctx, err)
		return
	}
	s.backToIndex(ctx)
}

func (s *Server) handleCancelEdit(ctx *gin.Context) {
	id, ok := parseId(ctx)
	if !ok {
		return
	}
	err := s.withSession(ctx, func(sess *models.Session) error {
		if sess.IsEditing(id) {
			sess.Editing = nil
		}
		return nil
	})
	if err != nil {
		s.sessionFailed(ctx, err)
		return
	}
	s.backToIndex(ctx)
}

func (s *Server) handleSaveSalary(ctx *gin.Context) {
	id, ok := parseId(ctx)
	if !ok {
		return
	}
	input := ctx.PostForm("salary")

	err := s.withSession(ctx, func(sess *models.Session) error {
		sess.Editing = &models.SalaryEdit{CatId: id, Input: input}
		cat, err := s.catService.UpdateSalary(ctx.Request.Context(), id, input)
		if err != nil {
			sess.Alert = err.Error()
			return nil
		}
		sess.Roster.Replace(cat)
		sess.Editing = nil
		return nil
	})
	if err != nil {
		s.sessionFailed(ctx, err)
		return
	}
	s.backToIndex(ctx)
}

func (s *Server) handleDeletePrompt(ctx *gin.Context) {
	id, ok := parseId(ctx)
	if !ok {
		return
	}
	var (
		cat   models.Cat
		found bool
	)
	err := s.withSession(ctx, func(sess *models.Session) error {
		cat, found = sess.Roster.Find(id)
		if !found {
			sess.Alert = MsgCatNotFound
		}
		return nil
	})
	if err != nil {
		s.sessionFailed(ctx, err)
		return
	}
	if !found {
		s.backToIndex(ctx)
		return
	}
	ctx.HTML(http.StatusOK, "confirm.tmpl", confirmView{
		Question: MsgDeleteConfirm,
		Cat:      cat,
		Action:   "/cats/" + strconv.FormatInt(cat.Id, 10) + "/delete",
	})
}

func (s *Server) handleDeleteCat(ctx *gin.Context) {
	id, ok := parseId(ctx)
	if !ok {
		return
	}
	if ctx.PostForm("confirm") != "yes" {
		s.backToIndex(ctx)
		return
	}

	err := s.withSession(ctx, func(sess *models.Session) error {
		if err := s.catService.DeleteById(ctx.Request.Context(), id); err != nil {
			sess.Alert = err.Error()
			return nil
		}
		sess.Roster.Remove(id)
		if sess.IsEditing(id) {
			sess.Editing = nil
		}
		return nil
	})
	if err != nil {
		s.sessionFailed(ctx, err)
		return
	}
	s.backToIndex(ctx)
}

func (s *Server) handleCompleteTarget(ctx *gin.Context) {
	id, ok := parseId(ctx)
	if !ok {
		return
	}

	err := s.withSession(ctx, func(sess *models.Session) error {
		cats, err := s.missionService.CompleteTarget(ctx.Request.Context(), id)
		switch {
		case errors.Is(err, services.ErrRosterRefresh):
			sess.LoadError = services.MsgFetchFailed
		case err != nil:
			sess.Alert = err.Error()
		default:
			s.resetRoster(sess, cats)
		}
		return nil
	})
	if err != nil {
		s.sessionFailed(ctx, err)
		return
	}
	s.backToIndex(ctx)
}

func (s *Server) Run() error {
	s.logger.Info("console listening", zap.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Handler() http.Handler {
	return s.router
}
