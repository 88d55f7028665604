package httpx

import (
	"cmp"
	"errors"
	"mime"
	"net/http"
	"slices"
	"strconv"
	"strings"
)

// MediaTypeHATEOAS asks for representations that carry hypermedia links.
const MediaTypeHATEOAS = "application/vnd.company.hateoas+json"

var (
	ErrMalformedAccept = errors.New("malformed Accept header")
	ErrNotAcceptable   = errors.New("no acceptable media type")
)

type mediaRange struct {
	mediaType string
	q         float64
}

// parseAccept returns the ranges of an Accept header, highest q first. Ties
// keep header order; ranges with q=0 are dropped.
func parseAccept(accept string) ([]mediaRange, error) {
	var ranges []mediaRange
	for _, part := range strings.Split(accept, ",") {
		mt, params, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			return nil, ErrMalformedAccept
		}
		q := 1.0
		if raw, ok := params["q"]; ok {
			if v, err := strconv.ParseFloat(raw, 64); err == nil {
				q = v
			}
		}
		if q <= 0 {
			continue
		}
		ranges = append(ranges, mediaRange{mediaType: mt, q: q})
	}
	slices.SortStableFunc(ranges, func(a, b mediaRange) int {
		return cmp.Compare(b.q, a.q)
	})
	return ranges, nil
}

// Negotiate picks the representation for an Accept header value. Offers are
// listed by preference; a missing header or a wildcard selects the first one.
// Ranges are tried by descending q.
func Negotiate(accept string, offers ...string) (string, error) {
	if len(offers) == 0 {
		return "", ErrNotAcceptable
	}
	if strings.TrimSpace(accept) == "" {
		return offers[0], nil
	}

	ranges, err := parseAccept(accept)
	if err != nil {
		return "", err
	}

	for _, rng := range ranges {
		mt := rng.mediaType
		switch {
		case mt == "*/*":
			return offers[0], nil
		case strings.HasSuffix(mt, "/*"):
			prefix := strings.TrimSuffix(mt, "*")
			for _, offer := range offers {
				if strings.HasPrefix(offer, prefix) {
					return offer, nil
				}
			}
		default:
			for _, offer := range offers {
				if strings.EqualFold(mt, offer) {
					return offer, nil
				}
			}
		}
	}
	return "", ErrNotAcceptable
}

// NegotiateRequest negotiates r's Accept header. On failure it writes a 400 or
// 406 problem and returns false.
func NegotiateRequest(w http.ResponseWriter, r *http.Request, offers ...string) (string, bool) {
	mt, err := Negotiate(r.Header.Get("Accept"), offers...)
	switch {
	case err == nil:
		return mt, true
	case errors.Is(err, ErrMalformedAccept):
		Problem(w, r, http.StatusBadRequest, "Accept header is not a valid media type", nil)
	default:
		Problem(w, r, http.StatusNotAcceptable, "Supported media types: "+strings.Join(offers, ", "), nil)
	}
	return "", false
}
