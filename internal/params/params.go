package params

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/GGP1/pinpoint/internal/ulid"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
)

// Object type
const (
	Venue obj = iota

	// DefaultCursor is the one used in case it isn't provided by the client
	DefaultCursor = "0"

	// maxLimit is the maximum number of objects returned
	maxLimit = 50
	// defaultLimit is the number of objects returned in case none is specified
	defaultLimit = "20"
)

type obj uint8

// Query contains the request parameters provided by the client.
type Query struct {
	Count    bool
	Cursor   string
	Fields   []string
	Limit    string
	LookupID string
}

// IDFromCtx takes the id parameter from context and validates it.
func IDFromCtx(ctx context.Context) (string, error) {
	id := httprouter.ParamsFromContext(ctx).ByName("id")
	if err := ulid.Validate(id); err != nil {
		return "", err
	}
	return id, nil
}

// ParseQuery returns the url params received after validating them.
func ParseQuery(rawQuery string, obj obj) (Query, error) {
	// Note: values.Get() retrieves only the first parameter, it's better to avoid accessing
	// the map manually, also validate the input to avoid HTTP parameter pollution.
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return Query{}, err
	}
	count, err := parseBool(values.Get("count"))
	if err != nil {
		return Query{}, err
	}
	if count {
		// As the other fields won't be used, just return here
		return Query{Count: count}, nil
	}

	fields, err := parseFields(obj, values)
	if err != nil {
		return Query{}, err
	}

	if lookupID := values.Get("lookup.id"); lookupID != "" {
		if err := ulid.Validate(lookupID); err != nil {
			return Query{}, err
		}
		// As the other fields won't be used, just return here
		return Query{Fields: fields, LookupID: lookupID}, nil
	}

	limit, err := parseLimit(values.Get("limit"))
	if err != nil {
		return Query{}, errors.Wrap(err, "limit")
	}
	cursor := values.Get("cursor")
	if cursor == "" {
		cursor = DefaultCursor
	} else {
		if err := validateCursor(cursor); err != nil {
			return Query{}, err
		}
	}

	params := Query{
		Cursor: cursor,
		Limit:  limit,
		Fields: fields,
	}
	return params, nil
}

// validateCursor returns an error if the cursor is neither a ulid nor a number.
func validateCursor(cursor string) error {
	if err := ulid.Validate(cursor); err != nil {
		if _, err := strconv.Atoi(cursor); err != nil {
			return errors.New("invalid cursor")
		}
	}

	return nil
}

func parseBool(value string) (bool, error) {
	if value == "" {
		return false, nil
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, errors.Errorf("invalid boolean (%q)", value)
	}

	return b, nil
}

var venueFields = map[string]struct{}{
	"id": {}, "title": {}, "address": {}, "provider": {}, "provider_id": {},
	"type": {}, "latitude": {}, "longitude": {}, "horizontal_accuracy": {},
	"access_hash": {}, "created_at": {}, "updated_at": {},
}

func parseFields(obj obj, values url.Values) ([]string, error) {
	var fields []string
	switch obj {
	case Venue:
		fields = split(values.Get("venue.fields"))
		if err := validateVenueFields(fields); err != nil {
			return nil, err
		}

	default:
		// Just in case obj is not valid
		fields = nil
	}

	return fields, nil
}

func validateVenueFields(fields []string) error {
	for _, f := range fields {
		if _, ok := venueFields[f]; !ok {
			return errors.Errorf("unrecognized field (%q)", f)
		}
	}
	return nil
}

// parseLimit parses an integer from a url value and validates it.
//
// The returned value is a string because it will be used in database queries only.
func parseLimit(value string) (string, error) {
	switch value {
	case "":
		return defaultLimit, nil
	default:
		i, err := strconv.Atoi(value)
		if err != nil {
			return "", errors.Wrap(err, "invalid number")
		}
		if i < 1 {
			return defaultLimit, nil
		}
		if i > maxLimit {
			return "", errors.Errorf("number provided (%d) exceeded maximum (%d)", i, maxLimit)
		}
		return value, nil
	}
}

// split is like strings.Split but returns nil if the slice is empty
func split(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
