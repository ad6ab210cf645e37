// Package ingest turns an inbound RSVP request into a flat key/value record.
//
// Parsers are tried in order by a Chain; the first one that accepts the
// request wins. The default order mirrors what browsers and scripts send:
// a JSON body, a URL-encoded body, then whatever the HTTP runtime already
// parsed out of the query string or multipart form.
package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

var ErrNoParser = errors.New("ingest: no parser accepted the request")

// Request is the transport-neutral view of an inbound submission.
type Request struct {
	Body        []byte
	ContentType string
	// Params holds values pre-parsed by the HTTP runtime (query string and
	// multipart form fields).
	Params url.Values
}

// Record is a parsed submission keyed by wire name.
type Record map[string]string

// Parser reports ok=false when it does not apply to the request, letting the
// chain move on to the next strategy.
type Parser interface {
	Name() string
	Parse(req Request) (rec Record, ok bool)
}

// JSONParser accepts a JSON object body.
type JSONParser struct{}

func (JSONParser) Name() string { return "json" }

func (JSONParser) Parse(req Request) (Record, bool) {
	body := bytes.TrimSpace(req.Body)
	if len(body) == 0 {
		return nil, false
	}
	var raw map[string]any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil || raw == nil {
		return nil, false
	}
	rec := make(Record, len(raw))
	for k, v := range raw {
		rec[k] = stringify(v)
	}
	return rec, true
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

// FormBodyParser accepts an application/x-www-form-urlencoded body, split by
// hand so that malformed pairs degrade to best-effort values instead of
// rejecting the whole submission. A pair splits on its first "=", so
// message=a=b yields "a=b".
type FormBodyParser struct{}

func (FormBodyParser) Name() string { return "form" }

func (FormBodyParser) Parse(req Request) (Record, bool) {
	body := strings.TrimSpace(string(req.Body))
	if body == "" {
		return nil, false
	}
	rec := Record{}
	for _, pair := range strings.Split(body, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		rec[decode(key)] = decode(value)
	}
	if len(rec) == 0 {
		return nil, false
	}
	return rec, true
}

// decode URL-decodes s, keeping the raw text when it carries a broken escape.
func decode(s string) string {
	if v, err := url.QueryUnescape(s); err == nil {
		return v
	}
	return strings.ReplaceAll(s, "+", " ")
}

// ParamsParser falls back to runtime-parsed parameters when the request has
// no body of its own.
type ParamsParser struct{}

func (ParamsParser) Name() string { return "params" }

func (ParamsParser) Parse(req Request) (Record, bool) {
	if len(bytes.TrimSpace(req.Body)) > 0 {
		return nil, false
	}
	rec := Record{}
	for k, vs := range req.Params {
		if len(vs) > 0 {
			rec[k] = vs[0]
		}
	}
	return rec, true
}
