// Package ingest validates, opens and parses survey response files
package ingest

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	perr "prodanalytics/internal/platform/errors"
	"prodanalytics/internal/services/nps/domain"
)

// Column names of an accepted response file, in order
const (
	ColResponseDate = "response_date"
	ColUserID       = "user_id"
	ColRating       = "nps_rating"
)

// RequiredHeader is the exact header line a response file must start with
var RequiredHeader = strings.Join([]string{ColResponseDate, ColUserID, ColRating}, ",")

// CheckHeader reads only the first line of r and reports whether it is exactly
// RequiredHeader. The line may end in LF, CRLF or end of input; a header-only
// file with no trailing newline is accepted on purpose, unlike a strict
// "header\n" comparison. Bare CR line endings are not recognized.
// A read failure is a resource error, not a false
func CheckHeader(r io.Reader) (bool, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, perr.Resourcef(err, "read header")
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line == RequiredHeader, nil
}

// Check opens location, checks its header and closes it on every path
func Check(ctx context.Context, op domain.Opener, location string) (ok bool, err error) {
	rc, err := op.Open(ctx, location)
	if err != nil {
		return false, perr.Resourcef(err, "open %s", location)
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil && err == nil {
			err = perr.Resourcef(cerr, "close %s", location)
		}
	}()
	return CheckHeader(rc)
}
