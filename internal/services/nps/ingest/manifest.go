package ingest

import (
	"errors"
	"io"
	"strings"

	perr "prodanalytics/internal/platform/errors"
	"prodanalytics/internal/platform/validate"
	"prodanalytics/internal/services/nps/domain"

	"gopkg.in/yaml.v3"
)

// ReadManifest decodes a YAML source list and validates it.
//
//	sources:
//	  - location: datasets/2020Q4_nps_email.csv
//	    channel: email
//
// Order in the file is the order sources are combined in
func ReadManifest(r io.Reader) ([]domain.Source, error) {
	var m domain.Sources
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "decode manifest")
	}
	if err := validate.Struct(m); err != nil {
		return nil, perr.Rewrap(err, "manifest")
	}
	return m.Items, nil
}

// ManifestFromPairs builds sources from "location=channel" arguments
func ManifestFromPairs(pairs []string) ([]domain.Source, error) {
	m := domain.Sources{Items: make([]domain.Source, 0, len(pairs))}
	for _, p := range pairs {
		i := strings.LastIndex(p, "=")
		if i <= 0 || i == len(p)-1 {
			return nil, perr.InvalidArgf("source %q: want location=channel", p)
		}
		m.Items = append(m.Items, domain.Source{
			Location: strings.TrimSpace(p[:i]),
			Channel:  strings.TrimSpace(p[i+1:]),
		})
	}
	if err := validate.Struct(m); err != nil {
		return nil, perr.Rewrap(err, "sources")
	}
	return m.Items, nil
}
