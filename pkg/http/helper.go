package http

import (
	"net/http"
	"seatbook/pkg/config"
	apperrors "seatbook/pkg/errors"
	"strconv"
	"time"
)

// DateLayout is the wire format for calendar dates. Time-of-day is never
// carried on the wire; storage normalizes to UTC midnight.
const DateLayout = "2006-01-02"

func ExtractLimitOffset(r *http.Request) (int, int64, error) {
	query := r.URL.Query()

	limit := 0
	if s := query.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid limit parameter: " + s)
		}
		limit = v
	}

	var offset int64 = 0
	if s := query.Get("offset"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid offset parameter: " + s)
		}
		offset = int64(v)
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	return limit, offset, nil
}

// ParseDateParam parses a required query/body date in YYYY-MM-DD form.
func ParseDateParam(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, apperrors.InvalidInput(name + " parameter is required")
	}
	parsed, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, apperrors.InvalidInput("invalid " + name + " format, must be YYYY-MM-DD")
	}
	return parsed, nil
}
