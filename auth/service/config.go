package service

type Config struct {
	Driver       string        `toml:"driver"`
	SqliteFile   string        `toml:"sqlite_file"`
	RootPassword string        `toml:"root_password"`
	Storage      StorageConfig `toml:"db"`
}

type StorageConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	DBName   string `toml:"dbname"`
	Username string `toml:"username"`
	Password string `toml:"password"`
}
