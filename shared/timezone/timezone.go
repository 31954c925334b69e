// Package timezone pins the clock used for audit metadata to APP_TIMEZONE.
// Stay dates are calendar dates and do not go through this package.
package timezone

import (
	"fmt"
	"sync/atomic"
	"time"

	"hotelbooking/config"
	"hotelbooking/shared/constant"

	"github.com/rs/zerolog/log"
)

var location atomic.Pointer[time.Location]

func init() {
	name := config.Get().App.Timezone
	if name == constant.Empty {
		log.Warn().Msg("No timezone configured, using UTC as default")

		name = time.UTC.String()
	}

	if err := SetLocation(name); err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("Failed to load timezone, falling back to UTC")

		location.Store(time.UTC)
	}
}

// SetLocation switches the application timezone. name is an IANA name such as "America/Bogota".
func SetLocation(name string) error {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fmt.Errorf("failed to load location %q: %w", name, err)
	}

	location.Store(loc)

	return nil
}

func Location() *time.Location {
	if loc := location.Load(); loc != nil {
		return loc
	}

	return time.UTC
}

func Now() time.Time {
	return time.Now().In(Location())
}

func ToAppTime(t time.Time) time.Time {
	return t.In(Location())
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}
