package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/GGP1/pinpoint/config"
	"github.com/GGP1/pinpoint/internal/log"

	"github.com/pkg/errors"
)

// Connect establishes a connection with the postgres database.
func Connect(ctx context.Context, c config.Postgres) (*sql.DB, error) {
	url := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s sslrootcert=%s sslcert=%s sslkey=%s",
		c.Host, c.Port, c.Username, c.Password, c.Name, c.SSLMode, c.SSLRootCert, c.SSLCert, c.SSLKey)

	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, errors.Wrap(err, "connecting with postgres")
	}

	db.SetMaxIdleConns(c.MaxIdleConns)
	db.SetConnMaxIdleTime(c.ConnMaxIdleTime)

	if err := db.PingContext(ctx); err != nil {
		return nil, errors.Wrap(err, "pinging postgres")
	}

	if err := CreateTables(ctx, db); err != nil {
		return nil, err
	}

	runMetrics(db, c)

	log.Sugar().Infof("Connected to postgres on %s:%s", c.Host, c.Port)
	return db, nil
}

// CreateTables creates postgres tables.
func CreateTables(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, tables); err != nil {
		return errors.Wrap(err, "creating tables")
	}
	return nil
}

const tables = `
CREATE TABLE IF NOT EXISTS venues
(
	id varchar(26),
	title text NOT NULL,
	address text NOT NULL,
	provider text NOT NULL,
	provider_id text NOT NULL,
	type text NOT NULL,
	latitude double precision NOT NULL,
	longitude double precision NOT NULL,
	horizontal_accuracy double precision NOT NULL DEFAULT 0,
	access_hash bigint NOT NULL DEFAULT 0,
	search tsvector,
	created_at timestamp with time zone DEFAULT NOW(),
    updated_at timestamp with time zone,
    CONSTRAINT venues_pkey PRIMARY KEY (id),
	UNIQUE(provider, provider_id)
);

CREATE INDEX ON venues USING GIN (search);

CREATE INDEX ON venues (provider);

CREATE OR REPLACE FUNCTION venues_tsvector_trigger() RETURNS trigger AS $$
BEGIN
  new.search :=
  setweight(to_tsvector('english', new.title), 'A')
  || setweight(to_tsvector('english', new.address), 'B');
  return new;
END
$$ LANGUAGE plpgsql;

DROP TRIGGER IF EXISTS venues_tsvector_update ON venues;

CREATE TRIGGER venues_tsvector_update BEFORE INSERT OR UPDATE
    ON venues FOR EACH ROW EXECUTE PROCEDURE venues_tsvector_trigger();`
