package service

import (
	"fmt"
	"strings"
	"time"

	perr "prodanalytics/internal/platform/errors"
	strs "prodanalytics/internal/platform/strings"
	"prodanalytics/internal/services/bank/domain"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// contactLayout reads "<year>-<Mon>-<Wkd>"; the weekday is checked but pins
// no day, so the result is the first of the month
const contactLayout = "2006-Jan-Mon"

// Split reshapes flat rows into the client, campaign and economics tables.
// The three outputs stay row aligned with rows
func Split(rows []domain.Flat, opt domain.SplitOptions) (domain.Tables, error) {
	title := cases.Title(language.English)
	t := domain.Tables{
		Client:    make([]domain.Client, 0, len(rows)),
		Campaign:  make([]domain.Campaign, 0, len(rows)),
		Economics: make([]domain.Economics, 0, len(rows)),
	}

	for _, r := range rows {
		prev, err := previousOutcome(r.Poutcome)
		if err != nil {
			return domain.Tables{}, lineErr(r, err)
		}
		outcome, err := campaignOutcome(r.Y)
		if err != nil {
			return domain.Tables{}, lineErr(r, err)
		}
		month := title.String(strings.ToLower(r.Month))
		dow := title.String(strings.ToLower(r.DayOfWeek))
		date, err := time.Parse(contactLayout, fmt.Sprintf("%04d-%s-%s", opt.Year, month, dow))
		if err != nil {
			return domain.Tables{}, lineErr(r, perr.Parsef(err, "last contact %s/%s", r.Month, r.DayOfWeek))
		}

		t.Client = append(t.Client, domain.Client{
			ID:            r.ClientID,
			Age:           r.Age,
			Job:           strings.ReplaceAll(r.Job, ".", ""),
			Marital:       r.Marital,
			Education:     education(r.Education),
			CreditDefault: r.CreditDefault,
			Housing:       r.Housing,
			Loan:          r.Loan,
		})
		t.Campaign = append(t.Campaign, domain.Campaign{
			ClientID:                 r.ClientID,
			NumberContacts:           r.Campaign,
			ContactDuration:          r.Duration,
			Pdays:                    r.Pdays,
			PreviousCampaignContacts: r.Previous,
			PreviousOutcome:          prev,
			CampaignOutcome:          outcome,
			LastContactDate:          date,
			CampaignID:               opt.CampaignID,
		})
		t.Economics = append(t.Economics, domain.Economics{
			ClientID:           r.ClientID,
			EmpVarRate:         r.EmpVarRate,
			ConsPriceIdx:       r.ConsPriceIdx,
			EuriborThreeMonths: r.Euribor3m,
			NumberEmployed:     r.NrEmployed,
		})
	}
	return t, nil
}

// education swaps '.' for '_' and maps unknown to NULL
func education(s string) *string {
	return strs.NullIf(strings.ReplaceAll(s, ".", "_"), "unknown")
}

func previousOutcome(s string) (*int, error) {
	var v int
	switch s {
	case "nonexistent", "non_existent", "":
		return nil, nil
	case "failure":
		v = 0
	case "success":
		v = 1
	default:
		return nil, perr.Parsef(nil, "poutcome %q", s)
	}
	return &v, nil
}

func campaignOutcome(s string) (int, error) {
	switch s {
	case "yes":
		return 1, nil
	case "no":
		return 0, nil
	}
	return 0, perr.Parsef(nil, "y %q", s)
}

func lineErr(r domain.Flat, err error) error {
	return perr.Rewrap(err, "bank: line %d: client %d", r.Line, r.ClientID)
}
