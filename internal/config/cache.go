package config

import (
	"fmt"
	"net/http"
	"strconv"
)

// Cache locations, matching the Cache-Control directive they produce.
const (
	LocationAny    = "any"    // public
	LocationClient = "client" // private
	LocationNone   = "none"   // no-cache
)

// CacheProfile describes the caching headers applied to a class of responses.
type CacheProfile struct {
	// Duration is the max-age in seconds.
	Duration int    `mapstructure:"duration"`
	Location string `mapstructure:"location"`
	NoStore  bool   `mapstructure:"no_store"`
}

// Validate checks the location and duration.
func (p CacheProfile) Validate() error {
	switch p.Location {
	case "", LocationAny, LocationClient, LocationNone:
	default:
		return fmt.Errorf("location must be one of %s, %s, %s: got %q",
			LocationAny, LocationClient, LocationNone, p.Location)
	}
	if p.Duration < 0 {
		return fmt.Errorf("duration must not be negative: got %d", p.Duration)
	}
	return nil
}

// Apply sets Cache-Control, and Pragma where HTTP/1.0 caches need it, on h.
func (p CacheProfile) Apply(h http.Header) {
	switch {
	case p.NoStore && p.Location == LocationNone:
		h.Set("Cache-Control", "no-store,no-cache")
		h.Set("Pragma", "no-cache")
	case p.NoStore:
		h.Set("Cache-Control", "no-store")
		h.Del("Pragma")
	case p.Location == LocationNone:
		h.Set("Cache-Control", "no-cache")
		h.Set("Pragma", "no-cache")
	case p.Location == LocationClient:
		h.Set("Cache-Control", "private,max-age="+strconv.Itoa(p.Duration))
		h.Del("Pragma")
	default:
		h.Set("Cache-Control", "public,max-age="+strconv.Itoa(p.Duration))
		h.Del("Pragma")
	}
	h.Del("Expires")
}
