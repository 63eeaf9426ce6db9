// Package platforms holds what the data source clients have in common.
package platforms

import "errors"

var ErrMissingAPIKey = errors.New("missing api key")

// Names of the data sources, as used on the command line and in the output.
const (
	SourceFootballData  = "footballdata"
	SourceAPIFootball   = "apifootball"
	SourceFBref         = "fbref"
	SourceUnderstat     = "understat"
	SourceTransfermarkt = "transfermarkt"
	SourceCombined      = "combined"
)

// Sources lists every source that can be passed to a refresh.
var Sources = []string{
	SourceFootballData,
	SourceAPIFootball,
	SourceFBref,
	SourceUnderstat,
	SourceTransfermarkt,
	SourceCombined,
}
