// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	auditlogfeature "github.com/almanarfoundation/manarhub/internal/app/features/auditlog"
	authgooglefeature "github.com/almanarfoundation/manarhub/internal/app/features/authgoogle"
	contentfeature "github.com/almanarfoundation/manarhub/internal/app/features/content"
	donationsfeature "github.com/almanarfoundation/manarhub/internal/app/features/donations"
	groupsfeature "github.com/almanarfoundation/manarhub/internal/app/features/groups"
	healthfeature "github.com/almanarfoundation/manarhub/internal/app/features/health"
	leadershipfeature "github.com/almanarfoundation/manarhub/internal/app/features/leadership"
	loginfeature "github.com/almanarfoundation/manarhub/internal/app/features/login"
	logoutfeature "github.com/almanarfoundation/manarhub/internal/app/features/logout"
	partnersfeature "github.com/almanarfoundation/manarhub/internal/app/features/partners"
	programsfeature "github.com/almanarfoundation/manarhub/internal/app/features/programs"
	publicapifeature "github.com/almanarfoundation/manarhub/internal/app/features/publicapi"
	systemusersfeature "github.com/almanarfoundation/manarhub/internal/app/features/systemusers"
	teamfeature "github.com/almanarfoundation/manarhub/internal/app/features/team"
	uploadsfeature "github.com/almanarfoundation/manarhub/internal/app/features/uploads"
	volunteersfeature "github.com/almanarfoundation/manarhub/internal/app/features/volunteers"
	auditstore "github.com/almanarfoundation/manarhub/internal/app/store/audit"
	contentstore "github.com/almanarfoundation/manarhub/internal/app/store/content"
	donationstore "github.com/almanarfoundation/manarhub/internal/app/store/donations"
	groupstore "github.com/almanarfoundation/manarhub/internal/app/store/groups"
	leaderstore "github.com/almanarfoundation/manarhub/internal/app/store/leaders"
	"github.com/almanarfoundation/manarhub/internal/app/store/oauthstate"
	partnerstore "github.com/almanarfoundation/manarhub/internal/app/store/partners"
	programstore "github.com/almanarfoundation/manarhub/internal/app/store/programs"
	teamstore "github.com/almanarfoundation/manarhub/internal/app/store/team"
	userstore "github.com/almanarfoundation/manarhub/internal/app/store/users"
	volunteerstore "github.com/almanarfoundation/manarhub/internal/app/store/volunteers"
	"github.com/almanarfoundation/manarhub/internal/app/system/auditlog"
	"github.com/almanarfoundation/manarhub/internal/app/system/auth"
	"github.com/almanarfoundation/manarhub/internal/app/system/paystack"
	"github.com/almanarfoundation/manarhub/internal/app/system/ratelimit"
	"github.com/almanarfoundation/manarhub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// ManarHub is a JSON API serving two audiences from one router: the
// admin dashboard under /api/admin (session-authenticated) and the
// public site under /api/public (no auth). Auth endpoints live under
// /api/auth and Paystack donation verification under /api/paystack.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	if err := auth.InitSessionStore(appCfg.SessionKey, appCfg.SessionDomain, secure, logger); err != nil {
		logger.Error("session store init failed", zap.Error(err))
		return nil, err
	}

	db := deps.MongoDatabase

	// Audit trail: admin mutations and auth events flow through this
	// logger, gated by config ("all", "db", "log", or "off").
	auditEvents := auditstore.New(db)
	auditLog := auditlog.New(auditEvents, logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})

	users := userstore.New(db)

	// Content stores, one per collection, each paired with the grouping
	// store that owns its parent collection. Articles have no grouping
	// entity.
	audios := contentstore.New(db, contentstore.CollAudios, models.KindAudio)
	videos := contentstore.New(db, contentstore.CollVideos, models.KindVideo)
	podcasts := contentstore.New(db, contentstore.CollPodcasts, models.KindPodcast)
	ebooks := contentstore.New(db, contentstore.CollEbooks, models.KindEbook)
	articles := contentstore.New(db, contentstore.CollArticles, models.KindArticle)
	photos := contentstore.New(db, contentstore.CollPhotos, models.KindPhoto)

	series := groupstore.New(db, groupstore.CollAudioSeries, contentstore.CollAudios, logger)
	playlists := groupstore.New(db, groupstore.CollVideoPlaylists, contentstore.CollVideos, logger)
	shows := groupstore.New(db, groupstore.CollPodcastShows, contentstore.CollPodcasts, logger)
	collections := groupstore.New(db, groupstore.CollEbookCollections, contentstore.CollEbooks, logger)
	albums := groupstore.New(db, groupstore.CollGalleryAlbums, contentstore.CollPhotos, logger)

	team := teamstore.New(db)
	leaders := leaderstore.New(db, logger)
	partners := partnerstore.New(db)
	programs := programstore.New(db)
	volunteers := volunteerstore.New(db)
	donations := donationstore.New(db)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(auth.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	r.Mount("/health", healthfeature.Routes(healthfeature.NewHandler(deps.MongoClient, logger)))

	// Uploaded media, when stored on local disk. S3 deployments serve
	// media straight from CloudFront instead.
	if appCfg.StorageType == "local" {
		r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))
	}

	// Authentication. Login attempts are rate limited per IP and per
	// account.
	loginHandler := &loginfeature.Handler{
		Users:   users,
		Audit:   auditLog,
		Limiter: ratelimit.NewLoginLimiter(),
		Log:     logger,
	}
	logoutHandler := &logoutfeature.Handler{Audit: auditLog, Log: logger}
	googleHandler := authgooglefeature.NewHandler(users, oauthstate.New(db), auditLog,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, appCfg.DashboardURL, logger)

	r.Route("/api/auth", func(ar chi.Router) {
		ar.Mount("/", loginfeature.Routes(loginHandler))
		ar.Mount("/logout", logoutfeature.Routes(logoutHandler))
		if googleHandler.IsConfigured() {
			ar.Mount("/google", authgooglefeature.Routes(googleHandler))
		}
	})

	// Donations: the verify endpoint is called by the public site after
	// Paystack checkout completes; the listing is admin-only.
	donationsHandler := donationsfeature.NewHandler(donations,
		paystack.New(appCfg.PaystackSecretKey, appCfg.PaystackBaseURL), auditLog, logger)
	r.Mount("/api/paystack", donationsfeature.PublicRoutes(donationsHandler))

	// Admin dashboard API. Each feature router enforces its own role
	// requirements; everything here needs at least a signed-in session.
	r.Route("/api/admin", func(ar chi.Router) {
		ar.Mount("/audios", contentfeature.Routes(contentfeature.NewHandler(audios, series, "audios", auditLog, logger)))
		ar.Mount("/videos", contentfeature.Routes(contentfeature.NewHandler(videos, playlists, "videos", auditLog, logger)))
		ar.Mount("/podcasts", contentfeature.Routes(contentfeature.NewHandler(podcasts, shows, "podcasts", auditLog, logger)))
		ar.Mount("/ebooks", contentfeature.Routes(contentfeature.NewHandler(ebooks, collections, "ebooks", auditLog, logger)))
		ar.Mount("/articles", contentfeature.Routes(contentfeature.NewHandler(articles, nil, "articles", auditLog, logger)))
		ar.Mount("/photos", contentfeature.Routes(contentfeature.NewHandler(photos, albums, "photos", auditLog, logger)))

		ar.Mount("/series", groupsfeature.Routes(groupsfeature.NewHandler(series, "series", auditLog, logger)))
		ar.Mount("/playlists", groupsfeature.Routes(groupsfeature.NewHandler(playlists, "playlists", auditLog, logger)))
		ar.Mount("/shows", groupsfeature.Routes(groupsfeature.NewHandler(shows, "shows", auditLog, logger)))
		ar.Mount("/collections", groupsfeature.Routes(groupsfeature.NewHandler(collections, "collections", auditLog, logger)))
		ar.Mount("/albums", groupsfeature.Routes(groupsfeature.NewHandler(albums, "albums", auditLog, logger)))

		ar.Mount("/team", teamfeature.Routes(teamfeature.NewHandler(team, auditLog, logger)))
		ar.Mount("/leadership", leadershipfeature.Routes(leadershipfeature.NewHandler(leaders, auditLog, logger)))
		ar.Mount("/partners", partnersfeature.Routes(partnersfeature.NewHandler(partners, auditLog, logger)))
		ar.Mount("/programs", programsfeature.Routes(programsfeature.NewHandler(programs, auditLog, logger)))
		ar.Mount("/volunteers", volunteersfeature.Routes(volunteersfeature.NewHandler(volunteers, logger)))
		ar.Mount("/uploads", uploadsfeature.Routes(uploadsfeature.NewHandler(deps.FileStore, logger)))
		ar.Mount("/users", systemusersfeature.Routes(systemusersfeature.NewHandler(users, auditLog, logger)))
		ar.Mount("/donations", donationsfeature.AdminRoutes(donationsHandler))
		ar.Mount("/audit", auditlogfeature.Routes(auditlogfeature.NewHandler(auditEvents, logger)))
	})

	// Public site API
	publicHandler := &publicapifeature.Handler{
		Content: map[string]*contentstore.Store{
			"audios":   audios,
			"videos":   videos,
			"podcasts": podcasts,
			"ebooks":   ebooks,
			"articles": articles,
			"photos":   photos,
		},
		Groups: map[string]*groupstore.Store{
			"series":      series,
			"playlists":   playlists,
			"shows":       shows,
			"collections": collections,
			"albums":      albums,
		},
		Team:       team,
		Leadership: leaders,
		Programs:   programs,
		Volunteers: volunteers,
		Partners:   partners,
		Log:        logger,
	}
	r.Mount("/api/public", publicapifeature.Routes(publicHandler))

	return r, nil
}
