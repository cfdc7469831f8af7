// Package domain holds the flat marketing row and the three normalized tables split from it
package domain

import "time"

// FlatColumns is the input schema, bound by header name
var FlatColumns = []string{
	"client_id", "age", "job", "marital", "education", "credit_default", "housing", "loan",
	"campaign", "month", "day_of_week", "duration", "pdays", "previous", "poutcome", "y",
	"emp_var_rate", "cons_price_idx", "euribor3m", "nr_employed",
}

// Flat is one row of the source marketing dataset
type Flat struct {
	ClientID      int64
	Age           int
	Job           string
	Marital       string
	Education     string
	CreditDefault string
	Housing       string
	Loan          string
	Campaign      int
	Month         string
	DayOfWeek     string
	Duration      int
	Pdays         int
	Previous      int
	Poutcome      string
	Y             string
	EmpVarRate    float64
	ConsPriceIdx  float64
	Euribor3m     float64
	NrEmployed    float64

	// Line is the source line number, for error messages
	Line int
}

// Client is a row of the client table. A nil Education is NULL
type Client struct {
	ID            int64   `db:"id"`
	Age           int     `db:"age"`
	Job           string  `db:"job"`
	Marital       string  `db:"marital"`
	Education     *string `db:"education"`
	CreditDefault string  `db:"credit_default"`
	Housing       string  `db:"housing"`
	Loan          string  `db:"loan"`
}

// Campaign is a row of the campaign table. A nil PreviousOutcome is NULL
type Campaign struct {
	ClientID                 int64     `db:"client_id"`
	NumberContacts           int       `db:"number_contacts"`
	ContactDuration          int       `db:"contact_duration"`
	Pdays                    int       `db:"pdays"`
	PreviousCampaignContacts int       `db:"previous_campaign_contacts"`
	PreviousOutcome          *int      `db:"previous_outcome"`
	CampaignOutcome          int       `db:"campaign_outcome"`
	LastContactDate          time.Time `db:"last_contact_date"`
	CampaignID               int       `db:"campaign_id"`
}

// Economics is a row of the economics table
type Economics struct {
	ClientID           int64   `db:"client_id"`
	EmpVarRate         float64 `db:"emp_var_rate"`
	ConsPriceIdx       float64 `db:"cons_price_idx"`
	EuriborThreeMonths float64 `db:"euribor_three_months"`
	NumberEmployed     float64 `db:"number_employed"`
}

// Tables is the result of a split; the three slices are row aligned with the input
type Tables struct {
	Client    []Client
	Campaign  []Campaign
	Economics []Economics
}

// Len is the number of source rows the tables were built from
func (t Tables) Len() int { return len(t.Client) }

// Column orders of the written tables
var (
	ClientColumns = []string{"id", "age", "job", "marital", "education", "credit_default", "housing", "loan"}

	CampaignColumns = []string{
		"client_id", "number_contacts", "contact_duration", "pdays", "previous_campaign_contacts",
		"previous_outcome", "campaign_outcome", "last_contact_date", "campaign_id",
	}

	EconomicsColumns = []string{"client_id", "emp_var_rate", "cons_price_idx", "euribor_three_months", "number_employed"}
)
