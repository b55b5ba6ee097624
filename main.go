package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/storage/memory/v2"
	fredis "github.com/gofiber/storage/redis/v3"
	"github.com/urfave/cli/v2"

	"github.com/arzonkitob/storefront/config"
	"github.com/arzonkitob/storefront/internal/auth"
	"github.com/arzonkitob/storefront/internal/backend"
	"github.com/arzonkitob/storefront/internal/handlers"
	"github.com/arzonkitob/storefront/internal/middlewares"
	"github.com/arzonkitob/storefront/internal/oauth"
	"github.com/arzonkitob/storefront/internal/sessions"
	"github.com/arzonkitob/storefront/internal/signup"
	"github.com/arzonkitob/storefront/internal/store"
	"github.com/arzonkitob/storefront/internal/telegram"
	"github.com/arzonkitob/storefront/params"
)

var (
	app       *cli.App
	gitCommit string
	gitDate   string
)

var (
	configFileFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "YAML config file",
		Value: "config.yaml",
	}
	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Enable debug logging",
	}
)

func init() {
	app = cli.NewApp()
	app.EnableBashCompletion = true
	app.Usage = "ArzonKitob storefront gateway"
	app.Flags = []cli.Flag{
		configFileFlag,
		debugFlag,
	}
	app.Commands = []*cli.Command{
		{
			Name: "version",
			Action: func(ctx *cli.Context) error {
				fmt.Println(params.VersionWithCommit(gitCommit, gitDate))
				return nil
			},
		},
	}
	app.Action = run
}

func initLogger(debug bool) {
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(handler))
}

func run(ctx *cli.Context) error {
	cfg, err := config.LoadConfig(ctx.String(configFileFlag.Name))
	if err != nil {
		slog.Error("Could not load config file.", "error", err)
		return err
	}
	initLogger(cfg.Debug || ctx.IsSet(debugFlag.Name))

	var (
		sessionStorage fiber.Storage
		flowStore      store.Store[signup.Flow]
	)
	if cfg.Redis.URL != "" {
		redisStorage := fredis.New(fredis.Config{URL: cfg.Redis.URL})
		sessionStorage = store.NewKVStorage(redisStorage, "session:")
		flowStore = store.NewRedisStore[signup.Flow](redisStorage.Conn(), "signup:")
	} else {
		sessionStorage = memory.New()
		flowStore = store.NewMemoryStore[signup.Flow]()
	}

	sessionStore := session.New(session.Config{
		Storage:        sessionStorage,
		Expiration:     cfg.Session.MaxAge,
		KeyLookup:      "cookie:" + cfg.Session.CookieName,
		CookieSecure:   cfg.Session.CookieSecure,
		CookieHTTPOnly: cfg.Session.CookieHttpOnly,
	})

	backendClient := backend.NewClient(backend.Config{
		BaseURL: cfg.Backend.URL,
		Timeout: cfg.Backend.Timeout,
	})
	tokens := auth.NewTokenMinter(cfg.JWTSecret)
	sessionService := auth.NewSessionService(backendClient, tokens)
	telegramClient := telegram.NewClient(telegram.Config{
		BotToken: cfg.Telegram.BotToken,
		ChatID:   cfg.Telegram.ChatID,
	})
	oauthProviders := []oauth.OAuthProvider{
		oauth.NewGoogleOauthProvider("google", cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.Google.CallbackURL),
	}

	var (
		signupHandler     = handlers.NewSignupHandler(flowStore, backendClient, tokens)
		loginHandler      = handlers.NewLoginHandler(backendClient, sessionService)
		oauthHandler      = handlers.NewOAuthHandler(oauthProviders, sessionService, cfg.JWTSecret)
		telegramHandler   = handlers.NewTelegramHandler(telegramClient)
		diagnosticHandler = handlers.NewDiagnosticHandler(backendClient)
	)

	router := fiber.New(fiber.Config{
		ErrorHandler: middlewares.ErrorHandler,
		BodyLimit:    params.ServerBodyLimit,
		ReadTimeout:  params.ServerReadTimeout,
		WriteTimeout: params.ServerWriteTimeout,
		IdleTimeout:  params.ServerIdleTimeout,
	})
	router.Use(sessions.SessionMiddleware(sessionStore))

	api := router.Group("/api")
	api.Post("/signup", signupHandler.PostSignup)
	api.Post("/signup/verify", signupHandler.PostSignupVerify)
	api.Post("/signup/resend", signupHandler.PostSignupResend)
	api.Post("/login", loginHandler.PostLogin)
	api.Post("/logout", loginHandler.PostLogout)
	api.Post("/telegram", telegramHandler.PostOrder)
	api.Get("/test-auth-connection", diagnosticHandler.GetAuthConnection)
	router.Get("/oauth/:provider", oauthHandler.GetOAuthLogin)
	router.Get("/oauth/callback/:provider", oauthHandler.GetOAuthCallback)

	slog.Info("Starting storefront gateway", "address", cfg.ListenAddr, "backend", cfg.Backend.URL)
	return router.Listen(cfg.ListenAddr)
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
