package astro

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrFormat is matched by every error returned for a malformed packed token.
var ErrFormat = errors.New("malformed packed coordinate")

// FormatError describes why a packed coordinate token was rejected.
type FormatError struct {
	Token  string
	Reason string
}

func NewFormatError(token string, reason string) *FormatError {
	return &FormatError{
		Token:  token,
		Reason: reason,
	}
}

func (f *FormatError) Error() string {
	return fmt.Sprintf("packed coordinate %q: %s", f.Token, f.Reason)
}

func (f *FormatError) Unwrap() error {
	return ErrFormat
}

// ParsePackedCoord parses the catalog's packed position format RRMMSS±DDMM[.f].
//
// The right ascension part is read as hours, minutes and seconds. The
// declination part is spliced into "±DD.MM..." and read as decimal degrees,
// so "-300327" becomes -30.0327 rather than -30°03'27". That splice is how the
// catalog encodes declination and is kept as-is.
func ParsePackedCoord(token string, distanceMpc float64) (SkyCoord, error) {
	signs := strings.Count(token, "+") + strings.Count(token, "-")
	switch {
	case signs == 0:
		return SkyCoord{}, NewFormatError(token, "no declination sign")
	case signs > 1:
		return SkyCoord{}, NewFormatError(token, "more than one sign character")
	}

	idx := strings.IndexAny(token, "+-")
	sign := token[idx : idx+1]
	ra, dec := token[:idx], token[idx+1:]

	if len(ra) < 5 {
		return SkyCoord{}, NewFormatError(token, "right ascension shorter than HHMMS")
	}
	if len(dec) < 2 {
		return SkyCoord{}, NewFormatError(token, "declination shorter than DD")
	}

	hh, mm, ss := ra[:2], ra[2:4], ra[4:]
	h, errH := strconv.ParseFloat(hh, 64)
	m, errM := strconv.ParseFloat(mm, 64)
	s, errS := strconv.ParseFloat(ss, 64)
	if err := errors.Join(errH, errM, errS); err != nil {
		return SkyCoord{}, NewFormatError(token, "non-numeric right ascension")
	}

	decStr := sign + dec[:2] + "." + dec[2:]
	decDeg, err := strconv.ParseFloat(decStr, 64)
	if err != nil {
		return SkyCoord{}, NewFormatError(token, "non-numeric declination")
	}

	return SkyCoord{
		RAdeg:       HoursToDeg(h, m, s),
		DecDeg:      decDeg,
		DistanceMpc: distanceMpc,
		Frame:       FrameICRS,
		RAString:    fmt.Sprintf("%sh%smin%ss", hh, mm, ss),
		DecString:   decStr,
	}, nil
}
