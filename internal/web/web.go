package web

import (
	"io/fs"
	"net/http"
	"strconv"
	"time"

	embedded "articleserver"
	authservice "articleserver/auth/service"
	"articleserver/internal/config"
	articleservice "articleserver/internal/service"
	"articleserver/internal/web/webpath"
	oauthservice "articleserver/oauth/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html"
	"github.com/sirupsen/logrus"
)

type Server struct {
	articles *articleservice.ArticleService
	oauth    *oauthservice.Service
	auth     *authservice.Service
	app      *fiber.App
	cfg      config.Server
	log      *logrus.Entry
}

func New(
	l *logrus.Logger,
	cfg config.Server,
	articles *articleservice.ArticleService,
	oauth *oauthservice.Service,
	auth *authservice.Service,
) (*Server, error) {
	server := Server{
		articles: articles,
		oauth:    oauth,
		auth:     auth,
		cfg:      cfg,
		log:      l.WithFields(map[string]interface{}{"from": "web"}),
	}

	fsFS, err := fs.Sub(embedded.Views, "views")
	if err != nil {
		return nil, err
	}
	engine := html.NewFileSystem(http.FS(fsFS), ".html")
	engine.Reload(cfg.Debug)
	engine.Debug(cfg.Debug)
	engine.AddFunc("FormatDate", formatDate)

	app := fiber.New(fiber.Config{
		Views: engine,
	})
	if cfg.StaticDir != "" {
		app.Static("/public", cfg.StaticDir)
	}

	app.Get(webpath.Home, server.handleIndex)
	app.Post(webpath.OauthToken, server.handleToken)

	app.Get(webpath.Api, server.handleAPIRoot)
	app.Get(webpath.ApiArticles, server.handleListArticles)
	app.Post(webpath.ApiArticles, server.handleCreateArticle)
	app.Get(webpath.ApiArticleByID, server.handleGetArticle)
	app.Put(webpath.ApiArticleByID, server.handleUpdateArticle)
	app.Delete(webpath.ApiArticleByID, server.handleDeleteArticle)
	app.Post(webpath.ApiUsers, server.handleSignUp)
	app.Post(webpath.ApiPassword, server.requireAuth, server.handleChangePassword)
	app.Get(webpath.ApiUserInfo, server.requireAuth, server.handleUserInfo)

	app.Use(server.handleNotFound)

	server.app = app
	return &server, nil
}

func (s *Server) Serve() error {
	return s.app.Listen(s.cfg.Host + ":" + strconv.Itoa(s.cfg.Port))
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func formatDate(t time.Time) string {
	return t.Format("02.01.2006")
}
