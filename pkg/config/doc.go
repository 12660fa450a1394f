// Package config loads typed configuration structs from environment
// variables. Fields are declared with `env` tags (github.com/caarlos0/env);
// a .env file in the working directory is loaded once, before the first
// parse, for local development.
//
//	type HTTPConfig struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg HTTPConfig
//	config.MustLoad(&cfg)
package config
