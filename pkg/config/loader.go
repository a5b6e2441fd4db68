package config

import (
	"errors"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

// Load populates the provided configuration struct from environment
// variables based on `env` field tags.
//
// The default .env file is loaded once per process before the first parse;
// a missing .env file is not an error.
//
// Example:
//
//	type TelegramConfig struct {
//		BotToken string `env:"TELEGRAM_BOT_TOKEN,required"`
//		Timeout  time.Duration `env:"TELEGRAM_TIMEOUT" envDefault:"10s"`
//	}
//
//	var cfg TelegramConfig
//	if err := config.Load(&cfg); err != nil {
//		// Handle error
//	}
func Load[T any](v *T) error {
	defaultEnvLoaded.Do(func() {
		// The .env file might not exist and that's ok
		_ = godotenv.Load()
	})

	if v == nil {
		return ErrNilPointer
	}

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingFailed, err)
	}

	return nil
}

// MustLoad is like Load but panics on failure. Intended for process
// initialization where a broken configuration should stop startup.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(err)
	}
}
