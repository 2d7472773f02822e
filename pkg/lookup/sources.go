package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/mod/semver"
)

// npmIsDeployed queries the version document, e.g.
// https://registry.npmjs.org/@scope%2Fname/1.2.3.
func npmIsDeployed(ctx context.Context, c *Client, q Query) (bool, error) {
	u := fmt.Sprintf("%s/%s/%s", c.baseURL(NPM), url.PathEscape(q.PackageName), url.PathEscape(q.PackageVersion))
	status, _, err := c.get(ctx, q, u)
	if err != nil {
		return false, err
	}
	return found(q, u, status)
}

// pypiIsDeployed queries https://pypi.org/pypi/<name>/<version>/json.
func pypiIsDeployed(ctx context.Context, c *Client, q Query) (bool, error) {
	u := fmt.Sprintf("%s/pypi/%s/%s/json", c.baseURL(PyPI), url.PathEscape(q.PackageName), url.PathEscape(q.PackageVersion))
	status, _, err := c.get(ctx, q, u)
	if err != nil {
		return false, err
	}
	return found(q, u, status)
}

// rubygemsIsDeployed queries /api/v2/rubygems/<name>/versions/<version>.json.
func rubygemsIsDeployed(ctx context.Context, c *Client, q Query) (bool, error) {
	u := fmt.Sprintf("%s/api/v2/rubygems/%s/versions/%s.json",
		c.baseURL(RubyGems), url.PathEscape(q.PackageName), url.PathEscape(q.PackageVersion))
	status, _, err := c.get(ctx, q, u)
	if err != nil {
		return false, err
	}
	return found(q, u, status)
}

type podInfo struct {
	Versions []struct {
		Name string `json:"name"`
	} `json:"versions"`
}

// cocoapodsIsDeployed lists the pod's versions from the trunk API.
func cocoapodsIsDeployed(ctx context.Context, c *Client, q Query) (bool, error) {
	u := fmt.Sprintf("%s/api/v1/pods/%s", c.baseURL(CocoaPods), url.PathEscape(q.PackageName))
	status, body, err := c.get(ctx, q, u)
	if err != nil {
		return false, err
	}
	if status == http.StatusNotFound {
		return false, nil
	}
	if status != http.StatusOK {
		return found(q, u, status)
	}

	var info podInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return false, lookupError(err, q, "failed to decode pod info")
	}
	versions := make([]string, 0, len(info.Versions))
	for _, v := range info.Versions {
		versions = append(versions, v.Name)
	}
	return containsVersion(versions, q.PackageVersion), nil
}

// containsVersion reports whether want is in versions, comparing as semantic
// versions when both sides parse and as plain strings otherwise.
func containsVersion(versions []string, want string) bool {
	for _, v := range versions {
		if sameVersion(v, want) {
			return true
		}
	}
	return false
}

func sameVersion(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	ca, cb := canonical(a), canonical(b)
	if fullVersion(ca) && fullVersion(cb) {
		return semver.Compare(ca, cb) == 0
	}
	return a == b
}

func canonical(v string) string {
	if strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}

// fullVersion reports whether v spells out MAJOR.MINOR.PATCH. semver accepts
// v1 and v1.0 as shorthand for v1.0.0, which must not match a full version.
func fullVersion(v string) bool {
	if i := strings.IndexByte(v, '+'); i >= 0 {
		v = v[:i]
	}
	return semver.IsValid(v) && semver.Canonical(v) == v
}
