package main

import (
	"embed"
	"fmt"
	"io/fs"
	"log"
	"os"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v4"
	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/triptogether/triptogether/cmd"
	"github.com/triptogether/triptogether/config"
)

//go:embed templates/email/template.html
var templates embed.FS

var (
	Version   = "?"
	BuildTime = "?"
	GitCommit = "-"
	GitRef    = "-"
)

func main() {
	//version info
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("triptogether %s, built %s from %s (%s)", Version, BuildTime, GitCommit, GitRef)
		return
	}
	logger := bootstrap()
	defer func() {
		_ = logger.Sync()

	}()
	cmd.TopLevelLogger = logger
	cmd.Execute()
}

func bootstrap() *zap.Logger {
	if _, err := os.Stat(".env"); err == nil {
		err := godotenv.Load()
		if err != nil {
			log.Fatal("Error loading .env file")
		}
	}
	cfg := zap.NewProductionConfig()
	if r := os.Getenv("DEBUG_LOG"); r == "true" {
		cfg = zap.NewDevelopmentConfig()
	}
	logger, err := cfg.Build(zap.AddStacktrace(zap.ErrorLevel))
	if err != nil {
		log.Fatal(err)
	}
	cobra.OnInitialize(func() { initConfig(logger) })
	return logger
}

func setDefaults() {
	viper.SetDefault("smtp.enabled", false)
	viper.SetDefault("behaviour.name", "TripTogether")
	viper.SetDefault("behaviour.invite-expiry", "168h")
	viper.SetDefault("behaviour.auto-lockout-count", 5)
	viper.SetDefault("behaviour.auto-lockout-duration", "10m")
	viper.SetDefault("behaviour.password-min-length", 6)
	viper.SetDefault("jwt.exp", "24h")
}

func initConfig(logger *zap.Logger) {
	bind := func(from string, to string) {
		err := viper.BindEnv(to, from)
		if err != nil {
			logger.Error("unable to bindenv", zap.String("from", from), zap.String(to, to), zap.Error(err))
		}

	}
	setDefaults()
	bind("PORT", "server.port")
	bind("ADDRESS", "server.address")

	bind("TRIPT_PORT", "server.port")
	bind("TRIPT_ADDRESS", "server.address")

	bind("TRIPT_SMTP_ENABLED", "smtp.enabled")
	bind("TRIPT_SMTP_HOST", "smtp.host")
	bind("TRIPT_SMTP_PORT", "smtp.port")
	bind("TRIPT_SMTP_USERNAME", "smtp.username")
	bind("TRIPT_SMTP_PASSWORD", "smtp.password")
	bind("TRIPT_SMTP_DISPLAYNAME", "smtp.display-name")
	bind("TRIPT_SMTP_ADDRESS", "smtp.address")

	bind("TRIPT_DATABASE_TYPE", "database.type")
	bind("TRIPT_DATABASE_DSN", "database.dsn")

	bind("TRIPT_BEHAVIOUR_NAME", "behaviour.name")
	bind("TRIPT_BEHAVIOUR_SITE", "behaviour.site")
	bind("TRIPT_BEHAVIOUR_SERVICE_DOMAIN", "behaviour.service-domain")
	bind("TRIPT_BEHAVIOUR_INVITE_EXPIRY", "behaviour.invite-expiry")
	bind("TRIPT_BEHAVIOUR_AUTO_LOCKOUT_COUNT", "behaviour.auto-lockout-count")
	bind("TRIPT_BEHAVIOUR_AUTO_LOCKOUT_DURATION", "behaviour.auto-lockout-duration")
	bind("TRIPT_BEHAVIOUR_PASSWORD_MIN_LENGTH", "behaviour.password-min-length")

	bind("TRIPT_JWT_AUDIENCE", "jwt.aud")
	bind("TRIPT_JWT_ISSUER", "jwt.iss")
	bind("TRIPT_JWT_ALG", "jwt.alg")
	bind("TRIPT_JWT_EXP", "jwt.exp")

	bind("TRIPT_JWT_HMAC_SIGNING_KEY", "jwt.hmac-signing-key")
	bind("TRIPT_JWT_HMAC_SIGNING_KEY_FILE", "jwt.hmac-signing-key-file")

	bind("TRIPT_JWT_RSA_PRIVATE_KEY", "jwt.rsa-private-key")
	bind("TRIPT_JWT_RSA_PRIVATE_KEY_FILE", "jwt.rsa-private-key-file")

	bind("TRIPT_JWT_RSA_PUBLIC_KEY", "jwt.rsa-public-key")
	bind("TRIPT_JWT_RSA_PUBLIC_KEY_FILE", "jwt.rsa-public-key-file")

	bind("TRIPT_GOOGLE_ENABLED", "google.enabled")
	bind("TRIPT_GOOGLE_CLIENT_ID", "google.client-id")
	bind("TRIPT_GOOGLE_CLIENT_SECRET", "google.client-secret")

	bind("TRIPT_CORS_ALLOWED_ORIGINS", "cors.allowed-origins")
	bind("TRIPT_CORS_ALLOWED_METHODS", "cors.allowed-methods")
	bind("TRIPT_CORS_ALLOW_CREDENTIALS", "cors.allow-credentials")

	if cmd.ConfigFileLocation != "" {
		logger.Debug("Using supplied config file", zap.String("file", string(cmd.ConfigFileLocation)))
		viper.SetConfigFile(string(cmd.ConfigFileLocation))
	} else {
		path, err := os.Getwd()
		if err != nil {
			logger.Warn("Unable to get current working dir", zap.Error(err))
		}
		cobra.CheckErr(err)
		viper.AddConfigPath(path)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		logger.Debug("Looking for default config file")
	}
	//precedence: environment overwrites yml
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Debug("No confg file loaded")
	} else {
		logger.Debug("Config file loaded", zap.String("file", viper.ConfigFileUsed()))
	}

	conf := &config.Configuration{}
	err := viper.Unmarshal(conf)
	if err != nil {
		logger.Fatal("Unable to unmarshall config", zap.Error(err))
	}
	logger.Debug("Config loaded", zap.Any("config", conf))
	logger.Debug("Validating final config")
	if err = conf.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}
	cmd.LoadedConfig = conf

	emails, err := fs.Sub(templates, "templates/email")
	if err != nil {
		logger.Fatal("Unable to open templates/email folder")
	}
	cmd.EmailTemplateFS = emails
}
