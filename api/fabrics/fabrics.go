// Package fabrics provides typed access to the controller's fabric API.
package fabrics

import (
	"context"
	"net/url"

	"github.com/cockroachdb/errors"

	nd "github.com/ndfabric/go-nd"
)

const fabricsPath = "/api/v1/manage/fabrics"

// Client wraps the core controller client for fabric operations.
type Client struct {
	core    *nd.Client
	session *nd.Session
}

// New creates a fabric client bound to an authenticated session.
func New(core *nd.Client, session *nd.Session) *Client {
	return &Client{core: core, session: session}
}

// GetFabrics retrieves the fabrics known to the controller, optionally
// narrowed by a query filter.
func (c *Client) GetFabrics(ctx context.Context, filter nd.QueryFilter) (*nd.Result, error) {
	raw, err := c.core.Do(ctx, c.session, nd.Request{
		Verb: nd.VerbGet,
		Path: filter.Apply(fabricsPath),
	})
	if err != nil {
		return nil, errors.Wrap(err, "get fabrics")
	}

	result, err := nd.Normalize(raw)
	if err != nil {
		return nil, errors.Wrap(err, "get fabrics")
	}
	return result, nil
}

// GetFabricDetail retrieves the details of one fabric by name.
func (c *Client) GetFabricDetail(ctx context.Context, fabricName string) (*nd.Result, error) {
	if fabricName == "" {
		return nil, errors.New("fabric name is required")
	}

	raw, err := c.core.Do(ctx, c.session, nd.Request{
		Verb: nd.VerbGet,
		Path: fabricsPath + "/" + url.PathEscape(fabricName),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "get fabric %s", fabricName)
	}

	result, err := nd.Normalize(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "get fabric %s", fabricName)
	}
	return result, nil
}
