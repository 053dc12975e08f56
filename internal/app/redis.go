package app

import (
	"strconv"

	"webhook-verifier/internal/circuitbreaker"
	"webhook-verifier/internal/common/logging"
	"webhook-verifier/internal/redis"
	"webhook-verifier/internal/replay"
)

func (app *App) initializeRedis() error {
	if !app.Config.ReplayEnabled {
		app.Logger.Info("Replay protection: Disabled")
		return nil
	}

	redisDB, _ := strconv.Atoi(app.Config.RedisDB)
	redisPoolSize, _ := strconv.Atoi(app.Config.RedisPoolSize)

	redisClient, err := redis.NewClient(&redis.Config{
		Address:  app.Config.RedisAddress,
		Password: app.Config.RedisPassword,
		DB:       redisDB,
		PoolSize: redisPoolSize,
	})
	if err != nil {
		return err
	}

	app.RedisClient = redisClient
	app.Guard = replay.NewBreakerGuard(replay.NewRedisGuard(redisClient), circuitbreaker.DefaultConfig(), app.Logger)

	app.Logger.Info("Replay protection: Enabled",
		logging.String("address", app.Config.RedisAddress),
		logging.Duration("ttl", app.Config.ReplayTTLDuration()),
	)
	return nil
}
