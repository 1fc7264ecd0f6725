package req

import (
	"errors"
	"io"

	jsoniter "github.com/json-iterator/go"
)

// maxBodySize тела запросов API небольшие
const maxBodySize = 1 << 20

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrEmptyBody тело запроса отсутствует
var ErrEmptyBody = errors.New("empty request body")

// Decode читает JSON тело в T
func Decode[T any](body io.Reader) (T, error) {
	var payload T
	if body == nil {
		return payload, ErrEmptyBody
	}

	dec := json.NewDecoder(io.LimitReader(body, maxBodySize))
	dec.DisallowUnknownFields()
	err := dec.Decode(&payload)
	if errors.Is(err, io.EOF) {
		return payload, ErrEmptyBody
	}
	if err != nil {
		return payload, err
	}
	return payload, nil
}
