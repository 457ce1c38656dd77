package survey

import "testing"

func TestPrepPaginationInfos(t *testing.T) {
	tests := []struct {
		name         string
		totalCount   int64
		page         int64
		limit        int64
		expectedPage int64
		expectedTot  int64
	}{
		{name: "first page", totalCount: 25, page: 1, limit: 10, expectedPage: 1, expectedTot: 3},
		{name: "page beyond range clamps", totalCount: 25, page: 9, limit: 10, expectedPage: 3, expectedTot: 3},
		{name: "zero page defaults to first", totalCount: 25, page: 0, limit: 10, expectedPage: 1, expectedTot: 3},
		{name: "invalid limit defaults", totalCount: 25, page: 1, limit: 0, expectedPage: 1, expectedTot: 3},
		{name: "empty collection", totalCount: 0, page: 1, limit: 10, expectedPage: 1, expectedTot: 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			infos := prepPaginationInfos(test.totalCount, test.page, test.limit)
			if infos.CurrentPage != test.expectedPage {
				t.Errorf("Unexpected current page. Got: %d, Expected: %d", infos.CurrentPage, test.expectedPage)
			}
			if infos.TotalPages != test.expectedTot {
				t.Errorf("Unexpected total pages. Got: %d, Expected: %d", infos.TotalPages, test.expectedTot)
			}
		})
	}
}
