package containers

import (
	"context"

	"github.com/sirupsen/logrus"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

const redisImage = "redis:7.4-alpine"

type RedisContainer struct {
	container *tcredis.RedisContainer
}

func NewRedisContainer() *RedisContainer {
	container, err := tcredis.Run(context.Background(), redisImage)
	if err != nil {
		logrus.WithError(err).Fatal("error starting redis container")
	}
	return &RedisContainer{container: container}
}

func (c *RedisContainer) Shutdown() {
	terminate(c.container, "redis")
}

// URL returns a redis:// url that redis.ParseURL understands.
func (c *RedisContainer) URL() string {
	u, err := c.container.ConnectionString(context.Background())
	if err != nil {
		logrus.WithError(err).Fatal("error getting redis connection string")
	}
	return u
}
