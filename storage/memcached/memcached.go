package memcached

import (
	"strings"

	"github.com/GGP1/pinpoint/config"
	"github.com/GGP1/pinpoint/internal/log"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/pkg/errors"
)

// Connect establishes a connection with memcached clients.
func Connect(config config.Memcached) (*memcache.Client, error) {
	mc := memcache.New(config.Servers...)
	if err := mc.Ping(); err != nil {
		return nil, errors.Wrap(err, "ping error")
	}

	log.Sugar().Infof("Connected to memcached on %s", strings.Join(config.Servers, ", "))
	return mc, nil
}
