package repository

const (
	DefaultPage  = 1
	DefaultLimit = 6
	MaxLimit     = 100
)

type PageRequest struct {
	Page  int
	Limit int
}

type PageResult[T any] struct {
	Items []T
	Page  int
	Limit int
	Total int64
}

func normalizePageRequest(in PageRequest) PageRequest {
	page := in.Page
	if page < 1 {
		page = DefaultPage
	}
	limit := in.Limit
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return PageRequest{Page: page, Limit: limit}
}
