// Package folio serves a single-page portfolio whose text and images are
// edited in place. The whole editable content lives in one persisted record;
// an admin switch flips the page between its read-only and editable
// renderings.
//
// The admin switch is a convenience for the site owner. It is not a security
// boundary and must not be relied on to protect the content.
package folio

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/database"
	"github.com/eringen/folio/gate"
	"github.com/eringen/folio/guestbook"
	"github.com/eringen/folio/ingest"
	"github.com/eringen/folio/kv"
)

// App is the central folio application. It wires together the content
// store, guestbook, image ingestor, handlers and middleware.
type App struct {
	Config    SiteConfig
	Echo      *echo.Echo
	Log       *slog.Logger
	Content   *content.Store
	Updates   *content.Updates
	Guestbook *guestbook.Store
	Images    *ingest.Ingestor

	verifier         gate.Verifier
	loginLimiter     *LoginLimiter
	guestbookLimiter *LoginLimiter
	db               *sql.DB
	storage          kv.Store
	ownsStorage      bool
	customRoutes     []func(*App)
	staticDir        string
	now              func() time.Time
}

// New creates a folio App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Log:       slog.Default(),
		staticDir: "public",
		now:       time.Now,
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Open connects the database and the content record and loads the
// content. The CLI uses it on its own; Setup calls it first.
func (a *App) Open(ctx context.Context) error {
	if a.Content != nil {
		return nil
	}
	db, err := database.Open(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("folio: open database: %w", err)
	}
	a.db = db

	if a.storage == nil {
		storage, err := a.openStorage(ctx)
		if err != nil {
			return err
		}
		a.storage = storage
		a.ownsStorage = true
	}

	a.Content = content.NewStore(a.storage,
		content.WithKey(a.Config.StorageKey),
		content.WithLogger(a.Log))
	a.Content.Load(ctx)
	a.Updates = content.NewUpdates(a.Content, a.now)

	gb, err := guestbook.New(db)
	if err != nil {
		return fmt.Errorf("folio: init guestbook: %w", err)
	}
	a.Guestbook = gb
	return nil
}

// Setup opens storage and registers middleware and routes. Start calls it;
// tests call it directly and drive a.Echo.
func (a *App) Setup(ctx context.Context) error {
	if err := a.Config.validate(); err != nil {
		return err
	}
	if err := a.Open(ctx); err != nil {
		return err
	}

	a.Images = ingest.New(a.Config.ingestOptions())
	a.verifier = a.Config.verifier()
	a.loginLimiter = NewLoginLimiter(a.Config.LoginAttempts, a.Config.LoginWindow)
	a.guestbookLimiter = NewLoginLimiter(a.Config.GuestbookRate, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

func (a *App) openStorage(ctx context.Context) (kv.Store, error) {
	if a.Config.RedisURL != "" {
		r, err := kv.NewRedis(ctx, a.Config.RedisURL, "folio:")
		if err != nil {
			return nil, fmt.Errorf("folio: connect redis: %w", err)
		}
		a.Log.Info("content record stored in redis")
		return r, nil
	}
	s, err := kv.NewSQLite(a.db)
	if err != nil {
		return nil, fmt.Errorf("folio: init record table: %w", err)
	}
	return s, nil
}

// Start sets the app up and serves until the server is closed.
func (a *App) Start() error {
	if err := a.Setup(context.Background()); err != nil {
		return err
	}
	a.Log.Info("listening", "addr", a.Config.Addr)
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Embedded assets are served under /public/ ahead of the user's static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.StripPrefix("/public/", http.FileServer(http.FS(embeddedFS)))
	for _, name := range embeddedAssetNames {
		e.GET("/public/"+name, echo.WrapHandler(embeddedHandler))
	}

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	e.GET("/", a.handleHome)
	e.POST("/guestbook/", a.handleGuestbookPost)

	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", a.handleAdminLogout)

	admin := e.Group("/admin", a.requireAdmin)
	admin.POST("/field/", a.handleFieldUpdate)
	admin.POST("/save/", a.handleAdminSave)
	admin.POST("/profile-image/", a.handleProfileImage)
	admin.POST("/updates/", a.handleUpdateAdd)
	admin.POST("/updates/reorder/", a.handleUpdateReorder)
	admin.POST("/updates/:id/", a.handleUpdateEdit)
	admin.POST("/updates/:id/image/", a.handleUpdateImage)
	admin.POST("/updates/:id/move/", a.handleUpdateMove)
	admin.POST("/updates/:id/delete/", a.handleUpdateDelete)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	var errs []error
	if a.ownsStorage && a.storage != nil {
		errs = append(errs, a.storage.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}
