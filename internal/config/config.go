package config

import (
	"os"

	authservice "articleserver/auth/service"
	oauthservice "articleserver/oauth/service"

	"github.com/BurntSushi/toml"
)

type Server struct {
	Host       string `toml:"host"`
	Port       int    `toml:"port"`
	Debug      bool   `toml:"debug_mode"`
	SqliteFile string `toml:"sqlite_file"`
	StaticDir  string `toml:"static_dir"`
}

type Config struct {
	Server Server              `toml:"server"`
	Auth   authservice.Config  `toml:"auth"`
	OAuth  oauthservice.Config `toml:"oauth"`
}

// New reads configs/server.toml. Secrets may be supplied through the
// environment instead of the file: ROOT_PASSWORD, OAUTH_CLIENT_SECRET and
// AUTH_DB_PASSWORD override their toml counterparts.
func New() (Config, error) {
	return Parse("configs/server.toml")
}

func Parse(path string) (Config, error) {
	var cfg Config
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, err
	}
	if rootPassword := os.Getenv("ROOT_PASSWORD"); rootPassword != "" {
		cfg.Auth.RootPassword = rootPassword
	}
	if clientSecret := os.Getenv("OAUTH_CLIENT_SECRET"); clientSecret != "" {
		cfg.OAuth.Client.Secret = clientSecret
	}
	if dbPassword := os.Getenv("AUTH_DB_PASSWORD"); dbPassword != "" {
		cfg.Auth.Storage.Password = dbPassword
	}
	return cfg, nil
}
