package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	authmodule "github.com/viteshop/backend/modules/auth"
	"github.com/viteshop/backend/pkg/auth"
	"github.com/viteshop/backend/pkg/config"
	"github.com/viteshop/backend/pkg/cookie"
	"github.com/viteshop/backend/pkg/email"
	"github.com/viteshop/backend/pkg/errorlog"
	"github.com/viteshop/backend/pkg/httpserver"
	"github.com/viteshop/backend/pkg/jwt"
	"github.com/viteshop/backend/pkg/logger"
	mongoclient "github.com/viteshop/backend/pkg/mongo"
	"github.com/viteshop/backend/storage/mongodb"
)

type appConfig struct {
	JWTSecret  string        `env:"JWT_SECRET,required"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"168h"`
}

func main() {
	var logCfg logger.Config
	config.MustLoad(&logCfg)
	log := logger.NewFromConfig(logCfg)

	if err := run(log); err != nil {
		log.Error("server exited with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	ctx := context.Background()

	var (
		appCfg    appConfig
		mongoCfg  mongoclient.Config
		serverCfg httpserver.Config
		emailCfg  email.Config
		moduleCfg authmodule.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&mongoCfg)
	config.MustLoad(&serverCfg)
	config.MustLoad(&emailCfg)
	config.MustLoad(&moduleCfg)

	client, err := mongoclient.New(ctx, mongoCfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn("failed to disconnect from mongodb", logger.Error(err))
		}
	}()
	db := client.Database(mongoCfg.Database)

	userStore := mongodb.NewUserStore(db)
	if err := userStore.EnsureIndexes(ctx); err != nil {
		return err
	}
	errorStore := mongodb.NewErrorLogStore(db)

	// Environments without Postmark credentials run on the dev sender,
	// which writes outbound mail to DevMailDir.
	var mailer email.EmailSender
	if emailCfg.PostmarkServerToken != "" {
		mailer, err = email.NewPostmarkClient(emailCfg)
		if err != nil {
			return err
		}
	} else {
		log.Info("postmark not configured, using dev mail sender",
			slog.String("dir", emailCfg.DevMailDir))
		mailer = email.NewDevSender(emailCfg.DevMailDir)
	}

	tokens, err := jwt.New(appCfg.JWTSecret, jwt.WithTTL(appCfg.SessionTTL))
	if err != nil {
		return err
	}

	service := auth.NewService(userStore, auth.WithLogger(log))
	recorder := errorlog.NewRecorder(errorStore, errorlog.WithLogger(log))
	cookies := cookie.New(cookie.WithSecure(moduleCfg.SecureCookies))

	authModule := authmodule.New(moduleCfg, service, tokens, cookies, mailer,
		authmodule.WithLogger(log),
		authmodule.WithErrorRecorder(recorder),
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Mount("/auth", authModule.Handle())
	r.Get("/healthz", httpserver.HealthcheckHandler(mongoclient.Healthcheck(client)))

	srv := httpserver.NewFromConfig(serverCfg, httpserver.WithLogger(log))
	return srv.Run(ctx, r)
}
