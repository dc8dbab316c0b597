package cli

import (
	"errors"
	"strconv"
	"strings"

	"github.com/majgaonkar508/aoe-4414-a02-q10/geodesy"
)

var argNames = [...]string{"lat_deg", "lon_deg", "hae_km"}

// ParseArgs reads latitude, longitude and height from exactly three
// positional arguments. Tokens like "-33.9" are numbers, not flags.
func ParseArgs(args []string) (geodesy.GeodeticPosition, error) {
	if len(args) != len(argNames) {
		return geodesy.GeodeticPosition{}, &UsageError{Got: len(args)}
	}

	var vals [len(argNames)]float64
	for i, raw := range args {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		// Overflow is not a parse failure: v is ±Inf and propagates.
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return geodesy.GeodeticPosition{}, &ParseError{Index: i, Name: argNames[i], Value: raw, Err: err}
		}
		vals[i] = v
	}

	return geodesy.GeodeticPosition{
		LatitudeDeg:  vals[0],
		LongitudeDeg: vals[1],
		HeightKm:     vals[2],
	}, nil
}
