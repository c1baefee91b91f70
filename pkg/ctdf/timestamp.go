package ctdf

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// UnixTimestamp holds Unix seconds as sent by the upstream APIs, which use both JSON strings and numbers
type UnixTimestamp string

func (u UnixTimestamp) Int64() (int64, bool) {
	if u == "" {
		return 0, false
	}

	value, err := strconv.ParseInt(string(u), 10, 64)
	if err != nil {
		floatValue, err := strconv.ParseFloat(string(u), 64)
		if err != nil {
			return 0, false
		}

		return int64(floatValue), true
	}

	return value, true
}

func (u UnixTimestamp) IsSet() bool {
	_, ok := u.Int64()
	return ok
}

func (u *UnixTimestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if bytes.Equal(data, []byte("null")) {
		*u = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}

		*u = UnixTimestamp(value)
		return nil
	}

	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return err
	}

	*u = UnixTimestamp(number.String())
	return nil
}

func UnixTimestampFromInt(value int64) UnixTimestamp {
	return UnixTimestamp(strconv.FormatInt(value, 10))
}
