package validation

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	dErrors "validarfc/pkg/domain-errors"
)

// ParseCandidates reads a CSV (or one-per-line plain text) upload and returns
// the first column of every non-blank record, trimmed. More than maxRows
// candidates or an upload with none is a bad request.
func ParseCandidates(r io.Reader, maxRows int) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	var candidates []string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				return nil, dErrors.Wrap(err, dErrors.CodeTooLarge, "upload too large")
			}
			return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "file is not valid CSV")
		}
		if len(record) == 0 {
			continue
		}
		candidate := strings.TrimSpace(strings.TrimPrefix(record[0], "\uFEFF"))
		if candidate == "" {
			continue
		}
		if len(candidates) == maxRows {
			return nil, dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("file exceeds the limit of %d RFCs", maxRows))
		}
		candidates = append(candidates, candidate)
	}

	if len(candidates) == 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "file contains no RFCs")
	}
	return candidates, nil
}
