package services

import (
	"errors"

	"shipping/internal/core/domain/model/host"
	"shipping/internal/core/domain/model/kernel"
)

// ErrNoHostAvailable is returned when no candidate host can serve the origin country.
var ErrNoHostAvailable = errors.New("no host available")

// HostMatcher is a domain service answering the two questions of the matching phase:
// is the route covered at all, and which host takes the order.
//
// Coverage is a pure lookup against the configured origin and destination lists.
// Host selection walks candidates in the order supplied by the repository (least
// loaded first) and returns the first one able to serve the origin country.
//
// Example usage:
//
//	matcher := services.NewHostMatcher(origins, destinations)
//	if !matcher.CheckServiceAvailability(o.OriginCountry(), o.Destination().Country()) {
//	    // reject with ServiceUnavailable
//	}
//	selected, err := matcher.MatchHost(o.OriginCountry(), candidates)
//	if errors.Is(err, services.ErrNoHostAvailable) {
//	    // reject with NoHostAvailable
//	}
type HostMatcher struct {
	origins      map[string]struct{}
	destinations map[string]struct{}
}

// NewHostMatcher creates a matcher over the given coverage lists.
func NewHostMatcher(origins, destinations []kernel.Country) HostMatcher {
	return HostMatcher{
		origins:      toSet(origins),
		destinations: toSet(destinations),
	}
}

// CheckServiceAvailability reports whether both countries are in the coverage lists.
func (m HostMatcher) CheckServiceAvailability(origin, destination kernel.Country) bool {
	_, originOK := m.origins[origin.Code()]
	_, destinationOK := m.destinations[destination.Code()]
	return originOK && destinationOK
}

// MatchHost selects the first candidate that is valid, available and located in origin.
//
// Returns:
//   - *host.Host: the selected host
//   - error: ErrNoHostAvailable when no candidate qualifies
func (m HostMatcher) MatchHost(origin kernel.Country, candidates []*host.Host) (*host.Host, error) {
	for _, candidate := range candidates {
		if candidate.Validate() != nil {
			continue
		}
		if candidate.CanServe(origin) {
			return candidate, nil
		}
	}
	return nil, ErrNoHostAvailable
}

func toSet(countries []kernel.Country) map[string]struct{} {
	set := make(map[string]struct{}, len(countries))
	for _, c := range countries {
		if c.Validate() == nil {
			set[c.Code()] = struct{}{}
		}
	}
	return set
}
