package vocabulary

import "github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/domain"

// ListResult is one page of a user's words.
type ListResult struct {
	Words      []domain.Word
	TotalCount int
	Limit      int
	Offset     int
}

// ImportReport summarises a spreadsheet import.
type ImportReport struct {
	Imported int
	Skipped  int
	Errors   []ImportError
}

// ImportError describes one skipped row. Row is 1-based as shown by
// spreadsheet tools.
type ImportError struct {
	Row      int
	Headword string
	Reason   string
}
