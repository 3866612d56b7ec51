package httpapi

import (
	"net/http"
	"time"

	"schoolportal-backend-go/internal/config"
	"schoolportal-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	DB         *sqlx.DB
	Config     config.Config
	Tokens     services.TokenService
	MetricsHub *services.MetricsHub
}

func NewServer(db *sqlx.DB, cfg config.Config, hub *services.MetricsHub) *Server {
	tokens := services.TokenService{
		Secret: []byte(cfg.SessionSecret),
		Issuer: cfg.SessionIssuer,
		TTL:    time.Duration(cfg.SessionTTLSeconds) * time.Second,
	}
	return &Server{
		DB:         db,
		Config:     cfg,
		Tokens:     tokens,
		MetricsHub: hub,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger)
	if len(s.Config.CorsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.Config.CorsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/register", s.Register)
		api.Post("/auth/login", s.Login)
		api.Post("/auth/logout", s.Logout)

		api.Group(func(public chi.Router) {
			public.Use(s.WithIdentity)
			public.Get("/submissions", s.ListSubmissions)
			public.Get("/submissions/{submissionId}", s.SubmissionDetail)
			public.Get("/submissions/{submissionId}/comments", s.ListComments)
		})

		api.Route("/me", func(me chi.Router) {
			me.Use(s.WithIdentity)
			me.Get("/heartbeat", s.Heartbeat)
			me.With(RequireWriter).Get("/profile", s.Profile)
			me.With(RequireWriter).Put("/profile", s.UpdateProfile)
			me.With(RequireWriter).Put("/password", s.ChangePassword)
		})

		api.Group(func(member chi.Router) {
			member.Use(s.WithIdentity)
			member.Use(RequireWriter)
			member.Post("/submissions", s.CreateSubmission)
			member.Post("/submissions/{submissionId}/vote", s.VoteSubmission)
			member.Post("/submissions/{submissionId}/report", s.ReportSubmission)
			member.Post("/submissions/{submissionId}/comments", s.CreateComment)
			member.Post("/comments/{commentId}/vote", s.VoteComment)
			member.Post("/comments/{commentId}/report", s.ReportComment)
			member.Post("/follows/{userId}", s.Follow)
			member.Delete("/follows/{userId}", s.Unfollow)
			member.Post("/polls/{pollId}/ballot", s.SubmitBallot)
		})

		api.Route("/mod", func(mod chi.Router) {
			mod.Use(s.WithIdentity)
			mod.Use(RequireWriter)
			mod.Use(RequireModerator)
			mod.Post("/submissions/{submissionId}/approve", s.ApproveSubmission)
			mod.Post("/submissions/{submissionId}/delete", s.DeleteSubmission)
			mod.Post("/submissions/{submissionId}/restore", s.RestoreSubmission)
			mod.Post("/submissions/bulk-approve", s.BulkApprove)
			mod.Post("/submissions/bulk-delete", s.BulkDelete)
			mod.Get("/submissions/{submissionId}/audit", s.SubmissionAudit)
			mod.Delete("/comments/{commentId}", s.DeleteComment)
			mod.Get("/reports", s.PendingReports)
			mod.Post("/reports/submissions/{reportId}/resolve", s.ResolveSubmissionReport)
			mod.Post("/reports/comments/{reportId}/resolve", s.ResolveCommentReport)
		})

		api.Route("/admin", func(admin chi.Router) {
			admin.Use(s.WithIdentity)
			admin.Use(RequireWriter)
			admin.Use(RequireAdmin)
			admin.Get("/users", s.ListUsers)
			admin.Post("/users", s.AdminCreateUser)
			admin.Delete("/users/{userId}", s.AdminDeleteUser)
			admin.Put("/users/{userId}/role", s.AdminSetRole)
			admin.Put("/users/{userId}/password", s.AdminSetPassword)
			admin.Post("/bans/users", s.BanUser)
			admin.Delete("/bans/users/{userId}", s.UnbanUser)
			admin.Post("/bans/ips", s.BanIP)
			admin.Delete("/bans/ips/{ip}", s.UnbanIP)
			admin.Get("/metrics/history", s.MetricsHistory)
		})
	})

	r.Get("/ws/metrics", s.MetricsSocket)
	return r
}
