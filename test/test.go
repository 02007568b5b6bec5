// Package test contains testing helpers.
package test

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"os"
	"testing"

	"github.com/GGP1/pinpoint/config"
	"github.com/GGP1/pinpoint/internal/cache"
	"github.com/GGP1/pinpoint/storage/memcached"
	"github.com/GGP1/pinpoint/storage/postgres"

	"github.com/go-redis/redis/v8"
	"github.com/ory/dockertest/v3"
	"github.com/stretchr/testify/assert"

	// Used to open a connection with postgres database
	_ "github.com/lib/pq"
)

// Service that can be requested when calling Main.
const (
	Postgres service = iota
	Redis
	Memcached
)

type service uint8

// Main sets up the services requested, runs the setup function and then
// the tests, purging every container before exiting.
func Main(m *testing.M, setup func(db *sql.DB, rdb *redis.Client, mc cache.Client), services ...service) {
	var (
		db  *sql.DB
		rdb *redis.Client
		mc  cache.Client

		pools     []*dockertest.Pool
		resources []*dockertest.Resource
	)

	for _, svc := range services {
		switch svc {
		case Postgres:
			pool, resource, postgresDB, err := RunPostgres()
			if err != nil {
				log.Fatal(err)
			}
			db = postgresDB
			pools = append(pools, pool)
			resources = append(resources, resource)

		case Redis:
			pool, resource, redisDB, err := RunRedis()
			if err != nil {
				log.Fatal(err)
			}
			rdb = redisDB
			pools = append(pools, pool)
			resources = append(resources, resource)

		case Memcached:
			pool, resource, client, err := RunMemcached()
			if err != nil {
				log.Fatal(err)
			}
			mc = client
			pools = append(pools, pool)
			resources = append(resources, resource)
		}
	}

	setup(db, rdb, mc)

	code := m.Run()

	for i, pool := range pools {
		if err := pool.Purge(resources[i]); err != nil {
			log.Fatal(err)
		}
	}

	os.Exit(code)
}

// NewResource returns a new pool, a docker container and handles its purge.
func NewResource(t testing.TB, repository, tags string, env []string) (*dockertest.Pool, *dockertest.Resource) {
	pool, err := dockertest.NewPool("")
	assert.NoError(t, err)

	resource, err := pool.Run(repository, tags, env)
	assert.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, pool.Purge(resource), "Couldn't free resources")
	})

	return pool, resource
}

// RunMemcached initializes a docker container with memcached running in it.
func RunMemcached() (*dockertest.Pool, *dockertest.Resource, cache.Client, error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, nil, nil, err
	}

	resource, err := pool.Run("memcached", "1.6.9-alpine", nil)
	if err != nil {
		return nil, nil, nil, err
	}

	var cache cache.Client
	err = pool.Retry(func() error {
		cache, err = memcached.NewClient(config.Memcached{
			Servers: []string{fmt.Sprintf("localhost:%s", resource.GetPort("11211/tcp"))},
		})
		return err
	})
	if err != nil {
		return nil, nil, nil, err
	}

	return pool, resource, cache, nil
}

// StartMemcached starts a memcached container and makes the cleanup.
func StartMemcached(t testing.TB) cache.Client {
	pool, resource, mc, err := RunMemcached()
	assert.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, pool.Purge(resource), "Couldn't free resources")
	})

	return mc
}

// RunPostgres initializes a docker container with postgres running in it.
func RunPostgres() (*dockertest.Pool, *dockertest.Resource, *sql.DB, error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, nil, nil, err
	}
	// The database name will be taken from the user name
	env := []string{"POSTGRES_USER=postgres", "POSTGRES_PASSWORD=postgres", "listen_addresses = '*'"}
	resource, err := pool.Run("postgres", "13.2-alpine", env)
	if err != nil {
		return nil, nil, nil, err
	}

	var db *sql.DB
	err = pool.Retry(func() error {
		url := fmt.Sprintf("host=localhost port=%s user=postgres password=postgres dbname=postgres sslmode=disable",
			resource.GetPort("5432/tcp"))
		db, err = sql.Open("postgres", url)
		if err != nil {
			return err
		}
		return db.Ping()
	})
	if err != nil {
		return nil, nil, nil, err
	}

	if err := postgres.CreateTables(context.Background(), db); err != nil {
		return nil, nil, nil, err
	}

	return pool, resource, db, nil
}

// StartPostgres starts a postgres container and makes the cleanup.
func StartPostgres(t testing.TB) *sql.DB {
	pool, resource, db, err := RunPostgres()
	assert.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, db.Close(), "Couldn't close the connection with postgres")
		assert.NoError(t, pool.Purge(resource), "Couldn't free resources")
	})

	return db
}

// RunRedis initializes a docker container with redis running in it.
func RunRedis() (*dockertest.Pool, *dockertest.Resource, *redis.Client, error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, nil, nil, err
	}

	resource, err := pool.Run("redis", "6.2.1-alpine", nil)
	if err != nil {
		return nil, nil, nil, err
	}

	var rdb *redis.Client
	err = pool.Retry(func() error {
		rdb = redis.NewClient(&redis.Options{
			Network: "tcp",
			Addr:    net.JoinHostPort("localhost", resource.GetPort("6379/tcp")),
		})
		return rdb.Ping(rdb.Context()).Err()
	})
	if err != nil {
		return nil, nil, nil, err
	}

	return pool, resource, rdb, nil
}

// StartRedis starts a redis container and makes the cleanup.
func StartRedis(t testing.TB) *redis.Client {
	pool, resource, rdb, err := RunRedis()
	assert.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, rdb.Close(), "Couldn't close connection with redis")
		assert.NoError(t, pool.Purge(resource), "Couldn't free resources")
	})

	return rdb
}

// CreateVenue inserts a venue for testing purposes and returns its id.
func CreateVenue(t testing.TB, db *sql.DB, id, title, provider, providerID string) {
	q := `INSERT INTO venues
	(id, title, address, provider, provider_id, type, latitude, longitude)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	_, err := db.ExecContext(context.Background(), q,
		id, title, "Tverskoy Blvd 26A", provider, providerID, "restaurant", 55.7616, 37.6062)
	assert.NoError(t, err)
}
