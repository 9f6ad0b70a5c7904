package models

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	websearchDefaultName = "Default"
	websearchKeyPrefix   = "websearch_"
)

// WebsearchSetting is a user-specified website that can be searched by opening the browser.
//
// The storage key derives from the order index only, so renaming a setting keeps its identity.
type WebsearchSetting struct {
	order   int
	name    string
	baseURL string
}

func NewWebsearchSetting(order int, name, baseURL string) WebsearchSetting {
	return WebsearchSetting{order: order, name: name, baseURL: baseURL}
}

func (w WebsearchSetting) Order() int      { return w.order }
func (w WebsearchSetting) BaseURL() string { return w.baseURL }

// RawName returns the name exactly as configured, which may be empty.
func (w WebsearchSetting) RawName() string { return w.name }

// Name returns the configured name, else the host of the base URL, else "Default".
func (w WebsearchSetting) Name() string {
	if w.name != "" {
		return w.name
	}
	if w.baseURL != "" {
		if host := hostOf(w.baseURL); host != "" {
			return host
		}
	}
	return websearchDefaultName
}

// Key returns the storage key for this setting.
func (w WebsearchSetting) Key() string {
	return websearchKeyPrefix + strconv.Itoa(w.order)
}

// SearchURL fills the %s placeholder of the base URL with the escaped query.
// Templates without a placeholder get the query appended.
func (w WebsearchSetting) SearchURL(query string) string {
	escaped := url.QueryEscape(query)
	if strings.Contains(w.baseURL, "%s") {
		return strings.ReplaceAll(w.baseURL, "%s", escaped)
	}
	return w.baseURL + escaped
}

// hostOf mirrors a lenient URI parse: a template with placeholders may not be a valid URL,
// so the host is cut out by hand when net/url refuses it.
func hostOf(raw string) string {
	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		return u.Hostname()
	}
	_, rest, ok := strings.Cut(raw, "://")
	if !ok {
		return ""
	}
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		rest = rest[:i]
	}
	if i := strings.LastIndex(rest, "@"); i >= 0 {
		rest = rest[i+1:]
	}
	if i := strings.LastIndex(rest, ":"); i >= 0 {
		rest = rest[:i]
	}
	return rest
}
