package storage

import (
	"fmt"
	"net/url"
	"strings"
)

// Rewriter maps storage-domain URLs onto the CDN domain. Both base URLs come
// from configuration and are validated at startup, so a bucket or domain
// change is a config edit, never a code edit.
type Rewriter struct {
	storage *url.URL
	cdn     *url.URL
}

func NewRewriter(storageBase, cdnBase string) (*Rewriter, error) {
	s, err := parseBase(storageBase)
	if err != nil {
		return nil, fmt.Errorf("storage base: %w", err)
	}
	c, err := parseBase(cdnBase)
	if err != nil {
		return nil, fmt.Errorf("cdn base: %w", err)
	}
	return &Rewriter{storage: s, cdn: c}, nil
}

// Rewrite swaps the storage scheme+host+prefix for the CDN's. A URL that is
// not under the storage base is an error, never passed through.
func (rw *Rewriter) Rewrite(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("rewrite %q: %w", raw, err)
	}
	if u.Host != rw.storage.Host || !strings.HasPrefix(u.Path, rw.storage.Path) {
		return "", fmt.Errorf("rewrite %q: not under storage base %q", raw, rw.storage.String())
	}

	out := *u
	out.Scheme = rw.cdn.Scheme
	out.Host = rw.cdn.Host
	out.Path = rw.cdn.Path + strings.TrimPrefix(u.Path, rw.storage.Path)
	return out.String(), nil
}

func parseBase(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, fmt.Errorf("base URL is empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%q is not an absolute http(s) URL", raw)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
