package service

import "github.com/iliyamo/shareit/internal/repository"

// page turns from/size query values into a window.  from selects the
// page by floor division, so from=15,size=20 is the first page.
func page(from, size int) (repository.Page, error) {
	if from < 0 {
		return repository.Page{}, validationf("from must not be negative: %d", from)
	}
	if size <= 0 {
		return repository.Page{}, validationf("size must be positive: %d", size)
	}
	return repository.Page{Limit: size, Offset: (from / size) * size}, nil
}
