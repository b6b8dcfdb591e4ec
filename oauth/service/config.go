package service

import "articleserver/oauth/issuer"

type Config struct {
	Tokens issuer.Config `toml:"tokens"`
	Client ClientSeed    `toml:"client"`
}

// ClientSeed is the consumer application registered at startup when it does
// not exist yet. The secret normally comes from the environment.
type ClientSeed struct {
	Name     string   `toml:"name"`
	ClientID string   `toml:"client_id"`
	Secret   string   `toml:"secret"`
	Scopes   []string `toml:"scopes"`
}
