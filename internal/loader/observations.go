package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
	"github.com/san-kum/inetmap/internal/join"
	"go.uber.org/zap"
)

// record is the CSV row shape. Extra columns are ignored.
type record struct {
	Country string  `csv:"country"`
	Year    string  `csv:"year"`
	Value   float64 `csv:"subscriptions_per100"`
}

// LoadObservations reads the tidy observation CSV from path.
func LoadObservations(ctx context.Context, path string) ([]join.Observation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "loader: open observations")
	}
	defer func() { _ = f.Close() }()
	return ReadObservations(ctx, f)
}

// ReadObservations decodes rows with country, year and subscriptions_per100
// columns. Any malformed row fails the whole read.
func ReadObservations(ctx context.Context, r io.Reader) ([]join.Observation, error) {
	dec, err := csvutil.NewDecoder(csv.NewReader(r))
	if err != nil {
		return nil, eris.Wrap(err, "loader: read observation header")
	}
	dec.DisallowMissingColumns = true

	var obs []join.Observation
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, eris.Wrap(err, "loader: observations canceled")
		}

		var rec record
		if err := dec.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &RowError{Line: line, Wrapped: err}
		}

		year, err := parseYear(rec.Year)
		if err != nil {
			return nil, &RowError{Line: line, Wrapped: err}
		}
		if math.IsNaN(rec.Value) || math.IsInf(rec.Value, 0) {
			return nil, &RowError{Line: line, Wrapped: fmt.Errorf("%w: %v", ErrNonFiniteValue, rec.Value)}
		}
		if rec.Value < 0 {
			return nil, &RowError{Line: line, Wrapped: fmt.Errorf("%w: %v", ErrNegativeValue, rec.Value)}
		}

		obs = append(obs, join.Observation{
			Country: strings.TrimSpace(rec.Country),
			Year:    year,
			Value:   rec.Value,
		})
	}

	zap.L().Debug("observations decoded", zap.String("component", "loader.observations"), zap.Int("rows", len(obs)))
	return obs, nil
}

// parseYear accepts a four digit year.
func parseYear(s string) (int, error) {
	s = strings.TrimSpace(s)
	if len(s) != 4 {
		return 0, eris.Errorf("year %q is not four digits", s)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, eris.Errorf("year %q is not four digits", s)
		}
	}
	y, err := strconv.Atoi(s)
	if err != nil {
		return 0, eris.Wrapf(err, "year %q", s)
	}
	return y, nil
}
