package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp_TrimsAndTruncates(t *testing.T) {
	assert.Equal(t, "hello", Clamp("  hello  ", 120))
	assert.Equal(t, "abc", Clamp("abcdef", 3))
	assert.Equal(t, "", Clamp("   ", 10))
}

func TestFirst_PriorityOrder(t *testing.T) {
	body := map[string]any{
		"clientName": "Legacy Name",
		"name":       "Short Name",
	}
	assert.Equal(t, "Legacy Name", First(body, "fullName", "clientName", "name"))

	body["fullName"] = "Canonical Name"
	assert.Equal(t, "Canonical Name", First(body, "fullName", "clientName", "name"))
}

func TestFirst_SkipsEmptyAndMissing(t *testing.T) {
	body := map[string]any{"fullName": "   ", "name": "Jane"}
	assert.Equal(t, "Jane", First(body, "fullName", "clientName", "name"))
	assert.Equal(t, "", First(body, "nope"))
}

func TestFirst_StringifiesNumbers(t *testing.T) {
	body := map[string]any{"phone": float64(5551234)}
	assert.Equal(t, "5551234", First(body, "phone"))
}

func TestNumber_AcceptsNumberAndString(t *testing.T) {
	assert.Equal(t, int64(1700000000000), Number(map[string]any{"startedAt": float64(1700000000000)}, "startedAt"))
	assert.Equal(t, int64(42), Number(map[string]any{"startedAt": "42"}, "startedAt"))
	assert.Equal(t, int64(0), Number(map[string]any{"startedAt": "not a number"}, "startedAt"))
	assert.Equal(t, int64(0), Number(map[string]any{}, "startedAt"))
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("a@b.co"))
	assert.True(t, ValidEmail("jane.doe+tag@example.com"))

	assert.False(t, ValidEmail("not-an-email"))
	assert.False(t, ValidEmail(""))
	assert.False(t, ValidEmail("a@b.c")) // below the 6-char floor
	assert.False(t, ValidEmail("a b@example.com"))
	assert.False(t, ValidEmail("a@b@c.com"))

	long := strings.Repeat("x", 250) + "@example.com"
	assert.False(t, ValidEmail(long))
}

func TestEmail_LowercasesForKeying(t *testing.T) {
	assert.Equal(t, "jane@example.com", Email("  Jane@Example.COM "))
}
