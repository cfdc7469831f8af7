package service

import (
	perr "prodanalytics/internal/platform/errors"
	"prodanalytics/internal/services/nps/domain"
)

func rewrapSource(err error, stage string, src domain.Source) error {
	return perr.WithOp(perr.Rewrap(err, "%s source %q (%s)", stage, src.Channel, src.Location), "nps."+stage)
}
