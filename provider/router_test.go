package provider

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAuthority = "com.example.android.contentprovidersample.provider"

func TestRouter_Resolve(t *testing.T) {
	router := NewRouter(testAuthority, "cheeses")

	tests := []struct {
		name          string
		address       string
		expectedClass RouteClass
		expectedID    int64
		wantError     bool
	}{
		{
			name:          "Collection",
			address:       "content://" + testAuthority + "/cheeses",
			expectedClass: RouteCollection,
		},
		{
			name:          "Item",
			address:       "content://" + testAuthority + "/cheeses/42",
			expectedClass: RouteItem,
			expectedID:    42,
		},
		{
			name:      "Wrong table",
			address:   "content://" + testAuthority + "/wines",
			wantError: true,
		},
		{
			name:      "Wrong authority",
			address:   "content://com.example.other/cheeses",
			wantError: true,
		},
		{
			name:      "Wrong scheme",
			address:   "https://" + testAuthority + "/cheeses",
			wantError: true,
		},
		{
			name:      "Zero id",
			address:   "content://" + testAuthority + "/cheeses/0",
			wantError: true,
		},
		{
			name:      "Negative id",
			address:   "content://" + testAuthority + "/cheeses/-3",
			wantError: true,
		},
		{
			name:      "Leading zero",
			address:   "content://" + testAuthority + "/cheeses/07",
			wantError: true,
		},
		{
			name:      "Non-numeric id",
			address:   "content://" + testAuthority + "/cheeses/brie",
			wantError: true,
		},
		{
			name:      "Extra segment",
			address:   "content://" + testAuthority + "/cheeses/1/name",
			wantError: true,
		},
		{
			name:      "Trailing slash",
			address:   "content://" + testAuthority + "/cheeses/",
			wantError: true,
		},
		{
			name:      "Query string",
			address:   "content://" + testAuthority + "/cheeses?limit=1",
			wantError: true,
		},
		{
			name:      "Empty",
			address:   "",
			wantError: true,
		},
		{
			name:      "Percent-encoded id",
			address:   "content://" + testAuthority + "/cheeses/%31",
			wantError: true,
		},
		{
			name:      "Percent-encoded table",
			address:   "content://" + testAuthority + "/chee%73es/1",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			route, err := router.Resolve(tt.address)

			if tt.wantError {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnknownAddress))

				var addrErr *AddressError
				require.ErrorAs(t, err, &addrErr)
				assert.Equal(t, tt.address, addrErr.Address)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedClass, route.Class)
			assert.Equal(t, tt.expectedID, route.ID)
			assert.Equal(t, "cheeses", route.Table)
			assert.Equal(t, tt.address, route.Address)
		})
	}
}

func TestRouter_Addresses(t *testing.T) {
	router := NewRouter(testAuthority, "cheeses")

	assert.Equal(t, "content://"+testAuthority+"/cheeses", router.CollectionAddress())
	assert.Equal(t, "content://"+testAuthority+"/cheeses/7", router.ItemAddress(7))

	route, err := router.Resolve(router.ItemAddress(7))
	require.NoError(t, err)
	assert.Equal(t, RouteItem, route.Class)
}

func TestParseID(t *testing.T) {
	id, err := ParseID("content://" + testAuthority + "/cheeses/15")
	require.NoError(t, err)
	assert.Equal(t, int64(15), id)

	_, err = ParseID("content://" + testAuthority + "/cheeses")
	assert.Error(t, err)

	_, err = ParseID("no-slashes")
	assert.Error(t, err)
}

func TestWithAppendedID(t *testing.T) {
	assert.Equal(t, "content://a/cheeses/3", WithAppendedID("content://a/cheeses", 3))
	assert.Equal(t, "content://a/cheeses/3", WithAppendedID("content://a/cheeses/", 3))
}

func TestRouteClass_String(t *testing.T) {
	assert.Equal(t, "collection", RouteCollection.String())
	assert.Equal(t, "item", RouteItem.String())
	assert.Equal(t, "RouteClass(9)", RouteClass(9).String())
}
