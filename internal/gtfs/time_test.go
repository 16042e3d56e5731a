package gtfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime(t *testing.T) {
	t.Run("parses a plain daytime value", func(t *testing.T) {
		secs, ok, err := ParseTime("05:15:00")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 5*3600+15*60, secs)
	})

	t.Run("normalizes hours past midnight modulo 24", func(t *testing.T) {
		secs, ok, err := ParseTime("25:30:00")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 1*3600+30*60, secs)
		assert.Equal(t, "01:30:00", FormatTime(secs))
	})

	t.Run("whole valid range reduces modulo 24", func(t *testing.T) {
		for hh := 0; hh <= 47; hh++ {
			secs, ok, err := ParseTime(FormatTimeForHour(hh))
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, (hh%24)*3600+22*60+33, secs, "HH=%d", hh)
		}
	})

	t.Run("midnight wrap boundary", func(t *testing.T) {
		secs, ok, err := ParseTime("24:00:00")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 0, secs)
	})

	t.Run("empty and whitespace strings are absent, not errors", func(t *testing.T) {
		for _, s := range []string{"", "   ", "\t"} {
			_, ok, err := ParseTime(s)
			require.NoError(t, err)
			assert.False(t, ok)
		}
	})

	t.Run("tolerates single-digit hour with leading space", func(t *testing.T) {
		secs, ok, err := ParseTime(" 8:00:00")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 8*3600, secs)
	})

	t.Run("malformed values fail with MalformedTimeError", func(t *testing.T) {
		for _, s := range []string{"ab:cd:ef", "08:00", "08:00:00:00", "08:xx:00", "-1:00:00", "08:61:00", "08:00:61"} {
			_, ok, err := ParseTime(s)
			assert.False(t, ok, "value %q", s)
			var malformed *MalformedTimeError
			require.ErrorAs(t, err, &malformed, "value %q", s)
			assert.Contains(t, malformed.Error(), "malformed GTFS time")
		}
	})
}

// FormatTimeForHour builds an HH:MM:SS literal without reducing the hour,
// exercising the over-24 convention directly.
func FormatTimeForHour(hh int) string {
	const mmss = ":22:33"
	if hh < 10 {
		return "0" + string(rune('0'+hh)) + mmss
	}
	return string(rune('0'+hh/10)) + string(rune('0'+hh%10)) + mmss
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatTime(0))
	assert.Equal(t, "08:10:30", FormatTime(8*3600+10*60+30))
	assert.Equal(t, "23:59:59", FormatTime(86399))
	// Values outside a single day still render as a wall-clock time.
	assert.Equal(t, "00:00:01", FormatTime(86401))
}
