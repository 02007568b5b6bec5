package params

import (
	"context"
	"strconv"
	"testing"

	"github.com/GGP1/pinpoint/internal/ulid"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

func TestIDFromCtx(t *testing.T) {
	id := ulid.NewString()
	params := httprouter.Params{
		{Key: "id", Value: id},
	}
	ctx := context.WithValue(context.Background(), httprouter.ParamsKey, params)

	got, err := IDFromCtx(ctx)
	assert.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestParseQuery(t *testing.T) {
	cases := []struct {
		desc     string
		obj      obj
		rawQuery string
		expected Query
	}{
		{
			desc:     "Venue",
			obj:      Venue,
			rawQuery: "cursor=2&limit=20&venue.fields=id,title,address,provider",
			expected: Query{
				Cursor: "2",
				Fields: []string{"id", "title", "address", "provider"},
				Limit:  "20",
			},
		},
		{
			desc:     "Coordinates",
			obj:      Venue,
			rawQuery: "cursor=15&limit=3&venue.fields=id,latitude,longitude,horizontal_accuracy",
			expected: Query{
				Cursor: "15",
				Fields: []string{"id", "latitude", "longitude", "horizontal_accuracy"},
				Limit:  "3",
			},
		},
		{
			desc:     "Lookup ID",
			obj:      Venue,
			rawQuery: "lookup.id=01FATW8S0BMJ053XZ779Q025PC",
			expected: Query{
				Fields:   nil,
				LookupID: "01FATW8S0BMJ053XZ779Q025PC",
			},
		},
		{
			desc:     "Count true",
			rawQuery: "count=t",
			expected: Query{Count: true},
		},
		{
			desc:     "Count false",
			rawQuery: "count=false",
			obj:      Venue,
			expected: Query{
				Count:  false,
				Cursor: "0",
				Limit:  "20",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			got, err := ParseQuery(tc.rawQuery, tc.obj)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}

	t.Run("Invalid boolean", func(t *testing.T) {
		rawQuery := "count=invalid"

		_, err := ParseQuery(rawQuery, Venue)
		assert.Error(t, err)
	})
	t.Run("Invalid lookup ID", func(t *testing.T) {
		rawQuery := "lookup.id=4691-ab99-d744f8febbc4"

		_, err := ParseQuery(rawQuery, Venue)
		assert.Error(t, err)
	})
	t.Run("Maximum exceeded", func(t *testing.T) {
		rawQuery := "limit=100"

		_, err := ParseQuery(rawQuery, Venue)
		assert.Error(t, err)
	})
}

func TestParseBool(t *testing.T) {
	cases := []struct {
		desc     string
		expected bool
		input    string
	}{
		{
			desc:     "True",
			expected: true,
			input:    "t",
		},
		{
			desc:     "False",
			expected: false,
			input:    "0",
		},
	}

	for i, tc := range cases {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			got, err := parseBool(tc.input)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}

	t.Run("Invalid", func(t *testing.T) {
		_, err := parseBool("abcdefg")
		assert.Error(t, err)
	})
}

func TestParseLimit(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		expected := "20"
		got, err := parseLimit("20")
		assert.NoError(t, err)
		assert.Equal(t, expected, got)
	})
	t.Run("Default", func(t *testing.T) {
		got, err := parseLimit("")
		assert.NoError(t, err)
		assert.Equal(t, defaultLimit, got)

		got2, err := parseLimit("-5")
		assert.NoError(t, err)
		assert.Equal(t, defaultLimit, got2)
	})
	t.Run("Invalid", func(t *testing.T) {
		_, err := parseLimit("abc")
		assert.Error(t, err)
	})
	t.Run("Maximum exceeded", func(t *testing.T) {
		_, err := parseLimit("70")
		assert.Error(t, err)
	})
}

func TestSplit(t *testing.T) {
	cases := []struct {
		desc     string
		expected []string
		input    string
	}{
		{
			desc:     "Non-nil",
			expected: []string{"title", "address", "provider", "provider_id"},
			input:    "title,address,provider,provider_id",
		},
		{
			desc:     "Nil",
			expected: nil,
			input:    "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			got := split(tc.input)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestValidateVenueFields(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		fields := []string{"id", "title", "address", "provider", "provider_id", "type",
			"latitude", "longitude", "horizontal_accuracy", "access_hash", "created_at", "updated_at"}
		err := validateVenueFields(fields)
		assert.NoError(t, err)
	})

	t.Run("Nil", func(t *testing.T) {
		err := validateVenueFields(nil)
		assert.NoError(t, err)
	})

	t.Run("Invalid", func(t *testing.T) {
		err := validateVenueFields([]string{"username"})
		assert.Error(t, err, "Expected an error and got nil")
	})

	t.Run("Empty field", func(t *testing.T) {
		err := validateVenueFields([]string{"created_at", ""})
		assert.Error(t, err, "Expected an error and got nil")
	})
}

func BenchmarkParseQuery(b *testing.B) {
	rawQuery := "cursor=2&limit=20&venue.fields=id,title,address,provider"
	for i := 0; i < b.N; i++ {
		ParseQuery(rawQuery, Venue)
	}
}

func BenchmarkIDFromCtx(b *testing.B) {
	id := ulid.NewString()
	params := httprouter.Params{
		{Key: "id", Value: id},
	}
	ctx := context.WithValue(context.Background(), httprouter.ParamsKey, params)

	for i := 0; i < b.N; i++ {
		IDFromCtx(ctx)
	}
}
