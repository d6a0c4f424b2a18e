package http

import (
	"net/url"
	"strings"
)

// QueryParam is a single key/value pair of a query string.
type QueryParam struct {
	Key   string
	Value string
}

// QueryParams is an ordered list of query parameters. Unlike url.Values it keeps
// insertion order, so the encoded query string is deterministic.
type QueryParams []QueryParam

// Param builds a QueryParam.
func Param(key, value string) QueryParam {
	return QueryParam{Key: key, Value: value}
}

// Add appends a key/value pair and returns the extended list.
func (p QueryParams) Add(key, value string) QueryParams {
	return append(p, QueryParam{Key: key, Value: value})
}

// Get returns the first value for key.
func (p QueryParams) Get(key string) (string, bool) {
	for _, param := range p {
		if param.Key == key {
			return param.Value, true
		}
	}
	return "", false
}

// Count returns how many times key appears.
func (p QueryParams) Count(key string) int {
	n := 0
	for _, param := range p {
		if param.Key == key {
			n++
		}
	}
	return n
}

// Encode serializes the parameters in order, escaping keys and values.
func (p QueryParams) Encode() string {
	if len(p) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, param := range p {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(param.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(param.Value))
	}
	return sb.String()
}
