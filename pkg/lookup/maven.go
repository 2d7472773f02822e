package lookup

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/beevik/etree"

	"github.com/arthur-debert/precheck/pkg/errors"
)

// mavenIsDeployed reads maven-metadata.xml of a "group:artifact" package and
// looks for the version under <versioning><versions>.
func mavenIsDeployed(ctx context.Context, c *Client, q Query) (bool, error) {
	group, artifact, ok := strings.Cut(q.PackageName, ":")
	if !ok || group == "" || artifact == "" {
		return false, errors.Newf(errors.ErrRegistryLookup,
			"maven package name %q must have the form group:artifact", q.PackageName).
			WithDetail(errors.DetailRegistry, Maven)
	}

	u := fmt.Sprintf("%s/%s/%s/maven-metadata.xml", c.baseURL(Maven), strings.ReplaceAll(group, ".", "/"), artifact)
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

	versions, err := parseMavenMetadata(body)
	if err != nil {
		return false, lookupError(err, q, "failed to parse maven metadata")
	}
	return containsVersion(versions, q.PackageVersion), nil
}

func parseMavenMetadata(data []byte) ([]string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, err
	}
	root := doc.SelectElement("metadata")
	if root == nil {
		return nil, fmt.Errorf("missing <metadata> root element")
	}

	var versions []string
	for _, el := range root.FindElements("./versioning/versions/version") {
		versions = append(versions, strings.TrimSpace(el.Text()))
	}
	return versions, nil
}
