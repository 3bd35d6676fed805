package httpapi

import (
	"context"
	"net/http"

	"github.com/maxviazov/usagers-client/internal/repository"
	"github.com/maxviazov/usagers-client/pkg/response"
)

type pinger struct{ c *Client }

// NewPinger adapts the client to repository.Pinger by asking for the smallest page.
func NewPinger(c *Client) repository.Pinger { return &pinger{c: c} }

func (p *pinger) Ping(ctx context.Context) error {
	if err := ensureClient(p.c); err != nil {
		return err
	}
	q := repository.ListQuery{Page: 1, Limit: 1}
	resp, err := p.c.do(ctx, http.MethodGet, p.c.collectionURL(q.Values()), nil)
	if err != nil {
		return err
	}
	var probe struct {
		TotalPages int `json:"total_pages"`
	}
	return response.Decode(resp, &probe)
}
