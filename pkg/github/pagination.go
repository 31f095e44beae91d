package github

import (
	"strings"

	"github.com/google/go-github/v69/github"
)

// hasNextPage reports whether the response advertises a "next" relation.
// go-github already parses page-number links into NextPage; the raw header
// is checked as well so cursor-style links are not missed.
func hasNextPage(resp *github.Response) bool {
	if resp == nil {
		return false
	}
	if resp.NextPage != 0 {
		return true
	}
	if resp.Response == nil {
		return false
	}
	return hasNextRelation(resp.Header.Values("Link"))
}

// hasNextRelation parses RFC 8288 Link header values of the form
// `<url>; rel="next", <url>; rel="last"` and looks for rel=next.
func hasNextRelation(headers []string) bool {
	for _, header := range headers {
		for _, link := range strings.Split(header, ",") {
			params := strings.Split(link, ";")
			if len(params) < 2 {
				continue
			}
			for _, param := range params[1:] {
				key, value, ok := strings.Cut(strings.TrimSpace(param), "=")
				if !ok || !strings.EqualFold(strings.TrimSpace(key), "rel") {
					continue
				}
				value = strings.Trim(strings.TrimSpace(value), `"`)
				// rel may hold several space separated relation types
				for _, rel := range strings.Fields(value) {
					if strings.EqualFold(rel, "next") {
						return true
					}
				}
			}
		}
	}
	return false
}
