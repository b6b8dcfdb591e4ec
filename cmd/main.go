package main

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"os"
	"strconv"

	authservice "articleserver/auth/service"
	authstorage "articleserver/auth/storage"
	authpg "articleserver/auth/storage/postgres"
	authsqlite "articleserver/auth/storage/sqlite"
	"articleserver/internal/config"
	"articleserver/internal/logger"
	sqlite3 "articleserver/internal/migrate"
	articleservice "articleserver/internal/service"
	articlesqlite "articleserver/internal/storage/sqlite"
	"articleserver/internal/web"
	"articleserver/oauth/issuer"
	oauthservice "articleserver/oauth/service"
	oauthstorage "articleserver/oauth/storage"
	oauthpg "articleserver/oauth/storage/postgres"
	oauthsqlite "articleserver/oauth/storage/sqlite"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

func main() {
	if err := run(); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()
	cfg, err := config.New()
	if err != nil {
		return err
	}
	l := logger.New(cfg.Server.Debug)

	serverDB, err := sql.Open("sqlite3", articlesqlite.BuildSource(cfg.Server.SqliteFile))
	if err != nil {
		return err
	}
	defer serverDB.Close()
	serverDB.SetMaxOpenConns(1)
	if err := serverDB.Ping(); err != nil {
		return err
	}
	if err := sqlite3.UpServerDB(serverDB); err != nil {
		return err
	}

	var (
		authDB      *sql.DB
		authStore   authstorage.AuthStorage
		clientStore oauthstorage.ClientStorage
		tokenStore  oauthstorage.TokenStorage
	)
	switch cfg.Auth.Driver {
	case "postgres":
		dsn := authpg.NewURLConnectionString(
			"postgres",
			net.JoinHostPort(cfg.Auth.Storage.Host, strconv.Itoa(cfg.Auth.Storage.Port)),
			cfg.Auth.Storage.DBName,
			cfg.Auth.Storage.Username,
			cfg.Auth.Storage.Password,
		)
		authDB, err = sql.Open("pgx", dsn)
		if err != nil {
			return err
		}
		authStore = authpg.New(l, authDB)
		st := oauthpg.New(l, authDB)
		clientStore, tokenStore = st, st
	default:
		authDB, err = sql.Open("sqlite3", authsqlite.BuildSource(cfg.Auth.SqliteFile))
		if err != nil {
			return err
		}
		authDB.SetMaxOpenConns(1)
		authStore = authsqlite.New(l, authDB)
		st := oauthsqlite.New(l, authDB)
		clientStore, tokenStore = st, st
	}
	defer authDB.Close()
	if err := authDB.Ping(); err != nil {
		return err
	}
	if cfg.Auth.Driver != "postgres" {
		if err := sqlite3.UpAuthDB(authDB); err != nil {
			return err
		}
	}

	authSvc, err := authservice.New(ctx, l, cfg.Auth, authStore)
	if err != nil {
		return err
	}
	registry := oauthservice.NewRegistry(l, clientStore)
	iss := issuer.New(l, cfg.OAuth.Tokens, tokenStore)
	oauthSvc, err := oauthservice.New(ctx, l, cfg.OAuth, registry, iss, authSvc)
	if err != nil {
		return err
	}
	articleSvc := articleservice.New(l, articlesqlite.New(l, serverDB))

	server, err := web.New(l, cfg.Server, articleSvc, oauthSvc, authSvc)
	if err != nil {
		return err
	}
	return server.Serve()
}
