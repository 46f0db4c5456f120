package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FlexibleInt decodes from a JSON number or a numeric string ("3").
// Browser clients post select values as strings.
type FlexibleInt int64

func (f *FlexibleInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}

	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*f = FlexibleInt(n)
		return nil
	}
	// 3.0 is accepted, 3.5 is not.
	fl, err := strconv.ParseFloat(raw, 64)
	if err != nil || fl != math.Trunc(fl) || math.IsInf(fl, 0) || fl > math.MaxInt64 || fl < math.MinInt64 {
		return fmt.Errorf("%s is not an integer", data)
	}
	*f = FlexibleInt(int64(fl))
	return nil
}

func (f FlexibleInt) Int64() int64 {
	return int64(f)
}
