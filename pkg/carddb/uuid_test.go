package carddb_test

import (
	"testing"

	"github.com/mtgtools/deckconv/pkg/carddb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidUUID(t *testing.T) {
	valid := []string{
		"562d71b9-1646-474e-8293-55da6947a758",
		"562D71B9-1646-474E-8293-55DA6947A758",
		"562d71B9-1646-474e-8293-55DA6947a758", // mixed case
		"00000000-0000-0000-0000-000000000000",
		"ffffffff-ffff-ffff-ffff-ffffffffffff",
	}
	for _, s := range valid {
		assert.True(t, carddb.ValidUUID(s), s)
	}

	invalid := []string{
		"",
		"562d71b9",
		"562d71b916464 74e829355da6947a758",
		"562d71b91646-474e-8293-55da6947a758",  // missing first hyphen
		"562d71b9-1646474e-8293-55da6947a758",  // missing second hyphen
		"562d71b9-1646-474e8293-55da6947a758",  // missing third hyphen
		"562d71b9-1646-474e-829355da6947a758",  // missing fourth hyphen
		"562d71b9164647 4e8293-55da6947a758",   // no hyphens at all
		"562d71b9-1646-474e-8293-55da6947a75",  // too short
		"562d71b9-1646-474e-8293-55da6947a75x", // non-hex
		"g62d71b9-1646-474e-8293-55da6947a758", // non-hex
		"562d71b9_1646_474e_8293_55da6947a758", // wrong separators
		"{562d71b9-1646-474e-8293-55da6947a758}",
		"urn:uuid:562d71b9-1646-474e-8293-55da6947a758",
	}
	for _, s := range invalid {
		assert.False(t, carddb.ValidUUID(s), s)
	}
}

func TestNormalizeUUID(t *testing.T) {
	got, err := carddb.NormalizeUUID("562D71B9-1646-474E-8293-55DA6947A758")
	require.NoError(t, err)
	assert.Equal(t, "562d71b9-1646-474e-8293-55da6947a758", got)

	// Already canonical input passes through unchanged.
	got, err = carddb.NormalizeUUID("562d71b9-1646-474e-8293-55da6947a758")
	require.NoError(t, err)
	assert.Equal(t, "562d71b9-1646-474e-8293-55da6947a758", got)

	_, err = carddb.NormalizeUUID("562d71b9164647-4e8293-55da6947a758")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed UUID")
}
