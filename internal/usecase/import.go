package usecase

import (
	"context"
	"errors"

	"github.com/phenrril/skywholesale/internal/domain"
)

type ImportFailure struct {
	Index int
	Title string
	Err   error
}

// ImportReport summarises a bulk catalog import.
type ImportReport struct {
	Created int
	Updated int
	Failed  []ImportFailure
}

// Import submits each form in turn. A form whose id is not in the catalog is
// added as a new product; one bad form does not stop the rest.
func (uc *ProductUC) Import(ctx context.Context, forms []ProductForm) ImportReport {
	rep := ImportReport{Failed: []ImportFailure{}}
	for i, f := range forms {
		if f.ID != 0 {
			if _, err := uc.Products.FindByID(ctx, f.ID); errors.Is(err, domain.ErrNotFound) {
				f.ID = 0
			}
		}
		res, err := uc.Submit(ctx, f)
		if err != nil {
			rep.Failed = append(rep.Failed, ImportFailure{Index: i, Title: f.Title, Err: err})
			continue
		}
		if res.Created {
			rep.Created++
		} else {
			rep.Updated++
		}
	}
	return rep
}
