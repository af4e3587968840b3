package migration

// perPage is deliberately small so the traversal works against older GitLab
// servers that cap the page size.
const perPage = 20

// fetchAll walks a paginated collection exhaustively, starting at page 1 and
// stopping at the first page that comes back shorter than perPage (an empty
// page counts). Pages are concatenated in server order. There is no retry: the
// first fetch error aborts the whole read.
func fetchAll[T any](fetch func(page, perPage int) ([]T, error)) ([]T, error) {
	var all []T
	for page := 1; ; page++ {
		items, err := fetch(page, perPage)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if len(items) < perPage {
			return all, nil
		}
	}
}
