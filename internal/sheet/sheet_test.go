package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceBool(t *testing.T) {
	// The legacy store mixes native booleans with the literal "TRUE".
	assert.True(t, CoerceBool("TRUE"))
	assert.True(t, CoerceBool("true"))
	assert.True(t, CoerceBool("True"))
	assert.True(t, CoerceBool("1"))
	assert.True(t, CoerceBool(" TRUE "))

	assert.False(t, CoerceBool("FALSE"))
	assert.False(t, CoerceBool("false"))
	assert.False(t, CoerceBool(""))
	assert.False(t, CoerceBool("0"))
	assert.False(t, CoerceBool("yes"))
}

func TestCoerceAmount(t *testing.T) {
	v, err := CoerceAmount("42.50")
	require.NoError(t, err)
	assert.Equal(t, "42.5", v.String())

	v, err = CoerceAmount("$100")
	require.NoError(t, err)
	assert.Equal(t, "100", v.String())

	// Legacy exports format currency with thousands separators.
	v, err = CoerceAmount("$1,234.00")
	require.NoError(t, err)
	assert.Equal(t, "1234", v.String())

	v, err = CoerceAmount("1,000,000.50")
	require.NoError(t, err)
	assert.Equal(t, "1000000.5", v.String())

	// Accountant-style negatives.
	v, err = CoerceAmount("($25.00)")
	require.NoError(t, err)
	assert.Equal(t, "-25", v.String())

	v, err = CoerceAmount("")
	require.NoError(t, err)
	assert.True(t, v.IsZero())

	_, err = CoerceAmount("not-a-number")
	assert.Error(t, err)
}

func TestParseEntriesSkipsHeader(t *testing.T) {
	rows := [][]string{
		{"timestamp", "date", "cashIn", "frontSafe", "backSafe", "deposited", "notes", "mismatch", "difference", "approved", "approvedReason"},
		{"2024-03-01 09:15:00", "2024-03-01", "100", "40", "30", "20", "day1", "TRUE", "10", "FALSE", ""},
	}

	entries, err := ParseEntries(rows)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "2024-03-01", e.Date)
	assert.Equal(t, "100", e.CashIn.String())
	assert.True(t, e.Mismatch)
	assert.Equal(t, "10", e.Difference.String())
	assert.False(t, e.Approved)
	assert.Equal(t, 2024, e.CreatedAt.Year())
}

func TestParseEntriesRecomputesDerivedFields(t *testing.T) {
	// The stored mismatch flag is stale (claims FALSE on a short day);
	// the recomputed value wins.
	rows := [][]string{
		{"timestamp", "date", "cashIn", "frontSafe", "backSafe", "deposited", "notes", "mismatch", "difference", "approved", "approvedReason"},
		{"", "2024-03-02", "100", "40", "30", "20", "", "FALSE", "0", "TRUE", "signed off"},
	}

	entries, err := ParseEntries(rows)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Mismatch)
	assert.Equal(t, "10", entries[0].Difference.String())
	// Historical approval state is carried over verbatim.
	assert.True(t, entries[0].Approved)
	assert.Equal(t, "signed off", entries[0].ApprovedReason)
}

func TestParseEntriesPadsShortRows(t *testing.T) {
	// Trailing blank cells get dropped by the spreadsheet reader.
	rows := [][]string{
		{"timestamp", "date", "cashIn", "frontSafe", "backSafe", "deposited", "notes"},
		{"", "2024-03-03", "50", "50", "0", "0"},
	}

	entries, err := ParseEntries(rows)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, entries[0].Mismatch)
	assert.False(t, entries[0].Approved)
	assert.Empty(t, entries[0].Notes)
}

func TestParseEntriesBadAmount(t *testing.T) {
	rows := [][]string{
		{"timestamp", "date", "cashIn", "frontSafe", "backSafe", "deposited", "notes", "mismatch", "difference", "approved", "approvedReason"},
		{"", "2024-03-04", "abc", "0", "0", "0", "", "", "", "", ""},
	}

	_, err := ParseEntries(rows)
	assert.ErrorContains(t, err, "cashIn")
}

func TestParseWithdrawals(t *testing.T) {
	rows := [][]string{
		{"timestamp", "date", "amount", "reason"},
		{"2024-03-01 17:00:00", "2024-03-01", "25", "petty cash"},
		{"", "2024-03-02", "10", ""},
	}

	withdrawals, err := ParseWithdrawals(rows)
	require.NoError(t, err)
	require.Len(t, withdrawals, 2)
	assert.Equal(t, "25", withdrawals[0].Amount.String())
	assert.Equal(t, "petty cash", withdrawals[0].Reason)
	assert.Equal(t, "2024-03-02", withdrawals[1].Date)
	assert.True(t, withdrawals[1].CreatedAt.IsZero())
}

func TestParseEmptySheets(t *testing.T) {
	entries, err := ParseEntries(nil)
	require.NoError(t, err)
	assert.Empty(t, entries)

	withdrawals, err := ParseWithdrawals([][]string{{"timestamp", "date", "amount", "reason"}})
	require.NoError(t, err)
	assert.Empty(t, withdrawals)
}
