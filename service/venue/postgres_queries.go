package venue

const (
	createVenueQuery = `INSERT INTO venues
	(id, title, address, provider, provider_id, type, latitude, longitude, horizontal_accuracy, access_hash)
	VALUES
	($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	getVenueQuery = `SELECT
	id, title, address, provider, provider_id, type,
	latitude, longitude, horizontal_accuracy, access_hash, created_at, updated_at
	FROM venues
	WHERE id=$1`

	getVenueByProviderIDQuery = `SELECT
	id, title, address, provider, provider_id, type,
	latitude, longitude, horizontal_accuracy, access_hash, created_at, updated_at
	FROM venues
	WHERE provider=$1 AND provider_id=$2`

	// The non-nil values passed replace the stored ones, nil values
	// leave them untouched.
	updateVenueQuery = `UPDATE venues SET
	title = COALESCE($2, title),
	address = COALESCE($3, address),
	type = COALESCE($4, type),
	updated_at = $5
	WHERE id=$1`

	venueExistsQuery = "SELECT EXISTS(SELECT 1 FROM venues WHERE provider=$1 AND provider_id=$2)"
)
