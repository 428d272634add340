package services

import (
	"log/slog"

	"reviewhub/proj/internal/config"
	"reviewhub/proj/internal/mails"
	"reviewhub/proj/internal/services/auth"
	"reviewhub/proj/internal/services/catalog"
	"reviewhub/proj/internal/services/comments"
	"reviewhub/proj/internal/services/reviews"
	"reviewhub/proj/internal/services/titles"
	"reviewhub/proj/internal/services/users"
	"reviewhub/proj/internal/storage/postgres"
	pgmodels "reviewhub/proj/internal/storage/postgres/models"
	redisstorage "reviewhub/proj/internal/storage/redis"
)

type Services struct {
	Auth     *auth.AuthService
	Users    *users.UserService
	Catalog  *catalog.CatalogService
	Titles   *titles.TitleService
	Reviews  *reviews.ReviewService
	Comments *comments.CommentService
}

func New(
	log *slog.Logger,
	cfg *config.Config,
	db *postgres.Storage,
	rdb *redisstorage.Storage,
	taskExecutor auth.TaskExecutor,
) *Services {
	m := pgmodels.New(db)
	mailer := mails.New(
		cfg.SMTPServer.Host,
		cfg.SMTPServer.Port,
		cfg.SMTPServer.Timeout,
		cfg.SMTPServer.Username,
		cfg.SMTPServer.Password,
		cfg.SMTPServer.Sender,
		cfg.SMTPServer.RetriesCount,
	)
	codes := &redisstorage.CallbackTokenModel{
		Client: rdb.Client,
		TTL:    cfg.Passwordless.CodeTTL,
	}
	catalogSvc := catalog.New(log, m.Categories, m.Genres)
	return &Services{
		Auth: auth.New(log, m.Users, codes, mailer, taskExecutor, auth.Options{
			Secret:            cfg.AppSecret,
			TokenTTL:          cfg.Passwordless.TokenTTL,
			CodeTTL:           cfg.Passwordless.CodeTTL,
			MarkEmailVerified: cfg.Passwordless.MarkEmailVerified,
		}),
		Users:    users.New(log, m.Users),
		Catalog:  catalogSvc,
		Titles:   titles.New(log, m.Titles, catalogSvc),
		Reviews:  reviews.New(log, m.Reviews, m.Titles),
		Comments: comments.New(log, m.Comments, m.Reviews),
	}
}
