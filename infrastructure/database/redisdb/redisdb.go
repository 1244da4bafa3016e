package redisdb

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/vfg2006/insurance-calculator-api/internal/config"
)

type Connection struct {
	*redis.Client
}

func NewConnection(ctx context.Context, cfg config.Redis) (*Connection, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Connection{Client: client}, nil
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}
