package service

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	perr "prodanalytics/internal/platform/errors"
	strs "prodanalytics/internal/platform/strings"
	"prodanalytics/internal/services/bank/domain"
)

// Table file names written by WriteTables
const (
	ClientFile    = "client.csv"
	CampaignFile  = "campaign.csv"
	EconomicsFile = "economics.csv"
)

// DateLayout is how last_contact_date is written
const DateLayout = "2006-01-02"

// WriteTables writes the three tables into dir, creating it if needed.
// NULL values are written as empty fields
func WriteTables(dir string, t domain.Tables) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return perr.Resourcef(err, "bank: create %s", dir)
	}

	err := writeCSV(filepath.Join(dir, ClientFile), domain.ClientColumns, len(t.Client), func(i int) []string {
		c := t.Client[i]
		return []string{
			itoa64(c.ID), strconv.Itoa(c.Age), c.Job, c.Marital, strs.Deref(c.Education),
			c.CreditDefault, c.Housing, c.Loan,
		}
	})
	if err != nil {
		return err
	}

	err = writeCSV(filepath.Join(dir, CampaignFile), domain.CampaignColumns, len(t.Campaign), func(i int) []string {
		c := t.Campaign[i]
		return []string{
			itoa64(c.ClientID), strconv.Itoa(c.NumberContacts), strconv.Itoa(c.ContactDuration),
			strconv.Itoa(c.Pdays), strconv.Itoa(c.PreviousCampaignContacts), nullInt(c.PreviousOutcome),
			strconv.Itoa(c.CampaignOutcome), c.LastContactDate.Format(DateLayout), strconv.Itoa(c.CampaignID),
		}
	})
	if err != nil {
		return err
	}

	return writeCSV(filepath.Join(dir, EconomicsFile), domain.EconomicsColumns, len(t.Economics), func(i int) []string {
		e := t.Economics[i]
		return []string{
			itoa64(e.ClientID), ftoa(e.EmpVarRate), ftoa(e.ConsPriceIdx),
			ftoa(e.EuriborThreeMonths), ftoa(e.NumberEmployed),
		}
	})
}

func writeCSV(path string, header []string, n int, row func(int) []string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return perr.Resourcef(err, "bank: create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = perr.Resourcef(cerr, "bank: close %s", path)
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return perr.Resourcef(err, "bank: write %s", path)
	}
	for i := 0; i < n; i++ {
		if err := w.Write(row(i)); err != nil {
			return perr.Resourcef(err, "bank: write %s", path)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return perr.Resourcef(err, "bank: flush %s", path)
	}
	return nil
}

func itoa64(v int64) string { return strconv.FormatInt(v, 10) }
func ftoa(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func nullInt(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}
