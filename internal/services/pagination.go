package services

import "github.com/damacus/snapsplit/internal/errs"

// DefaultPageSize is the number of images shown per gallery page.
const DefaultPageSize = 25

// Page is one slice of a sorted collection plus its pagination metadata.
type Page struct {
	Items       []ObjectDescriptor
	TotalCount  int
	CurrentPage int
	TotalPages  int
	HasNextPage bool
	HasPrevPage bool
}

// Paginate returns the 1-based page of sorted. Pages below 1 are treated as 1;
// pages past the end yield no items but still carry the totals.
func Paginate(sorted []ObjectDescriptor, page, pageSize int) (Page, error) {
	if pageSize <= 0 {
		return Page{}, errs.InvalidArgument("page size must be greater than zero")
	}
	if page < 1 {
		page = 1
	}

	total := len(sorted)
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	result := Page{
		Items:       []ObjectDescriptor{},
		TotalCount:  total,
		CurrentPage: page,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}

	// Compared in page units so (page-1)*pageSize cannot overflow.
	if page-1 >= totalPages {
		return result, nil
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, total)
	result.Items = sorted[start:end]

	return result, nil
}
