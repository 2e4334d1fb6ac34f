// FILE: lixenwraith/flags/coerce_test.go
package flags

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoolCoercer(t *testing.T) {
	for _, text := range []string{"true", "TRUE", "1", "yes", "Yes"} {
		v, err := Bool{}.Parse(text)
		require.NoError(t, err, text)
		assert.True(t, v, text)
	}
	for _, text := range []string{"false", "False", "0", "no", "NO"} {
		v, err := Bool{}.Parse(text)
		require.NoError(t, err, text)
		assert.False(t, v, text)
	}

	_, err := Bool{}.Parse("maybe")
	assert.Error(t, err)
	_, err = Bool{}.Parse("")
	assert.Error(t, err)
}

func TestNumericCoercers(t *testing.T) {
	t.Run("Int", func(t *testing.T) {
		v, err := Int{}.Parse("-42")
		require.NoError(t, err)
		assert.Equal(t, int64(-42), v)

		v, err = Int{}.Parse("0x10")
		require.NoError(t, err)
		assert.Equal(t, int64(16), v)

		_, err = Int{}.Parse("9223372036854775808")
		assert.ErrorContains(t, err, "out of range")
		_, err = Int{}.Parse("ten")
		assert.Error(t, err)
	})

	t.Run("Uint", func(t *testing.T) {
		v, err := Uint{}.Parse("7")
		require.NoError(t, err)
		assert.Equal(t, uint64(7), v)

		_, err = Uint{}.Parse("-1")
		assert.ErrorContains(t, err, "negative")
	})

	t.Run("Float", func(t *testing.T) {
		v, err := Float{}.Parse("2.5")
		require.NoError(t, err)
		assert.Equal(t, 2.5, v)
		assert.Equal(t, "2.5", Float{}.Format(v))

		_, err = Float{}.Parse("2.5x")
		assert.Error(t, err)
	})
}

func TestDurationCoercer(t *testing.T) {
	tests := []struct {
		text string
		want time.Duration
	}{
		{"1sec", time.Second},
		{"2secs", 2 * time.Second},
		{"500ms", 500 * time.Millisecond},
		{"1hr", time.Hour},
		{"3hrs", 3 * time.Hour},
		{"10mins", 10 * time.Minute},
		{"1day", 24 * time.Hour},
		{"250us", 250 * time.Microsecond},
		{"7ns", 7 * time.Nanosecond},
		{"1.5secs", 1500 * time.Millisecond},
		{"5s", 5 * time.Second},
		{"2m", 2 * time.Minute},
		{" 1SEC ", time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := ParseDuration(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("Rejects", func(t *testing.T) {
		for _, text := range []string{"1", "", "sec", "1fortnight", "1.2.3secs", "99999999999999999days",
			"9223372036854775808ns", "9223372036.854775808secs"} {
			_, err := ParseDuration(text)
			assert.Error(t, err, text)
		}
	})

	t.Run("Format", func(t *testing.T) {
		assert.Equal(t, "2secs", FormatDuration(2*time.Second))
		assert.Equal(t, "500ms", FormatDuration(500*time.Millisecond))
		assert.Equal(t, "1hrs", FormatDuration(time.Hour))
		assert.Equal(t, "90mins", FormatDuration(90*time.Minute))
		assert.Equal(t, "3days", FormatDuration(72*time.Hour))
		assert.Equal(t, "0ns", FormatDuration(0))
		assert.Equal(t, "1001ms", FormatDuration(1001*time.Millisecond))
	})

	t.Run("NegativeOnlyWhenAllowed", func(t *testing.T) {
		v, err := Duration{}.Parse("-1sec")
		require.NoError(t, err)
		assert.Error(t, Duration{}.Validate(v))
		assert.NoError(t, Duration{AllowNegative: true}.Validate(v))
	})
}

func TestByteSizeCoercer(t *testing.T) {
	tests := []struct {
		text string
		want Bytes
	}{
		{"0B", 0},
		{"512B", 512},
		{"1KB", Kilobyte},
		{"32MB", 32 * Megabyte},
		{"2gb", 2 * Gigabyte},
		{"1TB", Terabyte},
		{"1.5KB", 1536},
	}
	for _, tt := range tests {
		got, err := ParseBytes(tt.text)
		require.NoError(t, err, tt.text)
		assert.Equal(t, tt.want, got, tt.text)
	}

	for _, text := range []string{"32", "MB", "-1MB", "NaNKB", "xMB", "99999999999TB"} {
		_, err := ParseBytes(text)
		assert.Error(t, err, text)
	}

	assert.Equal(t, "32MB", FormatBytes(32*Megabyte))
	assert.Equal(t, "1536B", (1536 * Byte).String())
	assert.Equal(t, "0B", FormatBytes(0))
}

func TestListCoercer(t *testing.T) {
	v, err := List{}.Parse("")
	require.NoError(t, err)
	assert.Empty(t, v)

	v, err = List{}.Parse("a, b ,c")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, v)

	v, err = List{}.Parse("a,,b,")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, v)

	assert.Error(t, List{}.Validate([]string{"a", ""}))
	assert.Error(t, List{}.Validate([]string{" a"}))
	assert.Error(t, List{}.Validate([]string{"a,b"}))
}

func TestMapCoercer(t *testing.T) {
	c := MapOf[float64](Float{})
	assert.Equal(t, "map[float]", c.Type())

	t.Run("OrderedPairs", func(t *testing.T) {
		m, err := c.Parse("role2=3, role1 = 2")
		require.NoError(t, err)
		assert.Equal(t, []string{"role2", "role1"}, m.Keys())
		w, ok := m.Get("role1")
		require.True(t, ok)
		assert.Equal(t, 2.0, w)
		assert.Equal(t, "role2=3,role1=2", c.Format(m))
	})

	t.Run("Empty", func(t *testing.T) {
		m, err := c.Parse("")
		require.NoError(t, err)
		assert.Equal(t, 0, m.Len())
	})

	t.Run("Rejects", func(t *testing.T) {
		_, err := c.Parse("role1=2,role1=3")
		assert.ErrorContains(t, err, "duplicate key")
		_, err = c.Parse("role1")
		assert.ErrorContains(t, err, "malformed pair")
		_, err = c.Parse("=2")
		assert.ErrorContains(t, err, "malformed pair")
		_, err = c.Parse("role1=heavy")
		assert.ErrorContains(t, err, `key "role1"`)
	})
}

func TestPercentCoercer(t *testing.T) {
	for _, text := range []string{"0%", "100%", "50%", "12.5%", "80"} {
		v, err := Percent{}.Parse(text)
		require.NoError(t, err, text)
		assert.Equal(t, text, v, "entered text is kept")
	}

	f, err := ParsePercent("12.5%")
	require.NoError(t, err)
	assert.InDelta(t, 0.125, f, 1e-12)

	// Range is a semantic rule, not a coercion failure
	f, err = ParsePercent("150%")
	require.NoError(t, err)
	assert.InDelta(t, 1.5, f, 1e-12)

	for _, text := range []string{"", "%", "lots%", "NaN%", "Inf%"} {
		_, err := Percent{}.Parse(text)
		assert.Error(t, err, text)
	}

	assert.Equal(t, "100%", FormatPercent(1.0))
	assert.Equal(t, "25%", FormatPercent(0.25))
}

func TestPathCoercer(t *testing.T) {
	v, err := Path{}.Parse("file:///etc/mesos/whitelist")
	require.NoError(t, err)
	assert.Equal(t, "/etc/mesos/whitelist", v)

	v, err = Path{}.Parse("relative/dir")
	require.NoError(t, err)
	assert.Equal(t, "relative/dir", v)
}

func TestOptionalCoercer(t *testing.T) {
	c := OptionalOf[int64](Int{})

	v, err := c.Parse("5")
	require.NoError(t, err)
	assert.Equal(t, Some(int64(5)), v)

	_, err = c.Parse("")
	assert.Error(t, err, "present but empty")

	sv, err := Optional[string]{Inner: String{}, AllowEmpty: true}.Parse("")
	require.NoError(t, err)
	assert.True(t, sv.IsSome())

	assert.Equal(t, "", c.Format(None[int64]()))
	assert.Equal(t, "none", None[int64]().String())
	assert.Equal(t, int64(9), None[int64]().GetOr(9))
}

// Parse(Format(v)) == v for representative values of every coercer.
func TestCoercerRoundTrip(t *testing.T) {
	assertRoundTrip(t, Bool{}, true)
	assertRoundTrip(t, String{}, "hello world")
	assertRoundTrip(t, Int{}, int64(math.MinInt64))
	assertRoundTrip(t, Uint{}, uint64(math.MaxUint64))
	assertRoundTrip(t, Float{}, 0.1)
	assertRoundTrip(t, Float{}, math.MaxFloat64)

	for _, d := range []time.Duration{0, 1, time.Microsecond, 1500 * time.Millisecond, 90 * time.Minute, 36 * time.Hour, -time.Second} {
		assertRoundTrip(t, Duration{AllowNegative: true}, d)
	}
	for _, b := range []Bytes{0, 1, 1025, Kilobyte, 32 * Megabyte, 3 * Terabyte} {
		assertRoundTrip(t, ByteSize{}, b)
	}

	assertRoundTrip(t, List{}, []string{"a", "b", "c"})
	assertRoundTrip(t, List{}, []string{})
	assertRoundTrip(t, Percent{}, "75%")
	assertRoundTrip(t, Path{}, "/var/lib/mesos")
	assertRoundTrip(t, OptionalOf[time.Duration](Duration{}), Some(2*time.Second))

	m := NewOrderedMap[float64]()
	m.Set("b", 1.5)
	m.Set("a", 2)
	assertRoundTrip(t, MapOf[float64](Float{}), m)
}

func assertRoundTrip[T any](t *testing.T, c Coercer[T], v T) {
	t.Helper()
	require.NoError(t, c.Validate(v))
	got, err := c.Parse(c.Format(v))
	require.NoError(t, err, "parse %q", c.Format(v))
	assert.Equal(t, v, got, "round trip through %q", c.Format(v))
}
