package ecfr

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/custodia-labs/regtrack/internal/core/domain"
	"github.com/custodia-labs/regtrack/internal/core/ports/driven"
)

var _ driven.AgencyCatalog = (*Client)(nil)

// AgenciesPath is the admin agency listing path.
const AgenciesPath = "/admin/v1/agencies.json"

type agenciesResponse struct {
	Agencies looseList[agencyEntry] `json:"agencies"`
}

type agencyEntry struct {
	Slug          looseString             `json:"slug"`
	Name          looseString             `json:"name"`
	ShortName     looseString             `json:"short_name"`
	CFRReferences looseList[cfrReference] `json:"cfr_references"`
}

type cfrReference struct {
	Title   looseInt    `json:"title"`
	Chapter looseString `json:"chapter"`
}

// ListAgencies returns the top-level agencies in catalog order.
// Sub-agencies nested under children are not listed. The listing is not
// dated upstream, so asOf is accepted only to satisfy the catalog port.
func (c *Client) ListAgencies(ctx context.Context, _ time.Time) ([]domain.AgencyRecord, error) {
	body, err := c.get(ctx, AgenciesPath, c.catalogTimeout)
	if err != nil {
		return nil, err
	}

	if !isObject(body) {
		return nil, ErrMalformedResponse
	}
	var resp agenciesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	records := make([]domain.AgencyRecord, 0, len(resp.Agencies))
	for _, a := range resp.Agencies {
		rec := domain.AgencyRecord{
			Slug:      string(a.Slug),
			Name:      string(a.Name),
			ShortName: string(a.ShortName),
		}
		for _, ref := range a.CFRReferences {
			rec.CodeReferences = append(rec.CodeReferences, domain.CodeReference{
				Title:   int(ref.Title),
				Chapter: string(ref.Chapter),
			})
		}
		records = append(records, rec)
	}
	return records, nil
}
