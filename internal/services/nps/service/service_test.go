package service

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strings"
	"testing"
	"testing/fstest"

	"prodanalytics/internal/core/nps"
	perr "prodanalytics/internal/platform/errors"
	kit "prodanalytics/internal/platform/testkit"
	"prodanalytics/internal/services/nps/domain"
	"prodanalytics/internal/services/nps/ingest"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const hdr = "response_date,user_id,nps_rating\n"

func surveyFS() fstest.MapFS {
	return fstest.MapFS{
		"email.csv": {Data: []byte(hdr +
			"2020-10-01,e1,10\n" +
			"2020-10-01,e2,9\n" +
			"2020-10-02,e3,3\n" +
			"2020-10-03,e4,8\n")},
		"web.csv": {Data: []byte(hdr +
			"2020-10-01,w1,6\n" +
			"2020-10-02,w2,0\n" +
			"2020-10-02,w3,10\n")},
		"mobile.csv": {Data: []byte(hdr +
			"2020-10-05,m1,7\n" +
			"2020-10-06,m2,12\n")},
		"bogus.csv": {Data: []byte("foo,bar,baz\n1,2,3\n")},
		"ragged.csv": {Data: []byte(hdr +
			"2020-10-01,r1,9\n" +
			"2020-10-02,r2\n")},
	}
}

func newSvc(workers int) *Svc {
	s := New(ingest.FSOpener{FS: surveyFS()}, Config{Workers: workers})
	n := 0
	s.newID = func() string { n++; return fmt.Sprintf("run-%d", n) }
	return s
}

var threeSources = []domain.Source{
	{Location: "email.csv", Channel: "email"},
	{Location: "web.csv", Channel: "web"},
	{Location: "mobile.csv", Channel: "mobile"},
}

func TestCombine_ThreeSources(t *testing.T) {
	s := newSvc(1)
	res, err := s.Combine(context.Background(), threeSources)
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	if res.Records.Len() != 4+3+2 {
		t.Fatalf("records = %d, want 9", res.Records.Len())
	}
	if len(res.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", res.Diagnostics)
	}
	if res.RunID != "run-1" {
		t.Fatalf("run id = %q", res.RunID)
	}

	// concatenation follows caller order
	if res.Records[0].Channel != "email" || res.Records[4].Channel != "web" || res.Records[7].Channel != "mobile" {
		t.Fatalf("order not preserved: %v", res.Records.Channels())
	}

	overall, err := s.OverallScore(res.Records)
	if err != nil {
		t.Fatalf("OverallScore: %v", err)
	}
	// promoters e1 e2 w3 = 3, detractors e3 w1 w2 = 3
	if overall != 0 {
		t.Fatalf("overall = %v, want 0", overall)
	}

	byCh, err := s.ScoreByChannel(res.Records)
	if err != nil {
		t.Fatalf("ScoreByChannel: %v", err)
	}
	got := map[string]float64{}
	var names []string
	for _, cs := range byCh {
		got[cs.Channel] = cs.Score
		names = append(names, cs.Channel)
	}
	want := map[string]float64{
		"email":  float64(2-1) / 4 * 100,
		"web":    float64(1-2) / 3 * 100,
		"mobile": 0,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("per-channel scores (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"email", "mobile", "web"}, names); diff != "" {
		t.Fatalf("channel order (-want +got):\n%s", diff)
	}
}

func TestCombine_RejectsBadHeader(t *testing.T) {
	s := newSvc(1)
	srcs := append([]domain.Source{{Location: "bogus.csv", Channel: "bogus"}}, threeSources...)

	res, err := s.Combine(context.Background(), srcs)
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	if res.Records.Len() != 9 {
		t.Fatalf("records = %d, want only the valid 9", res.Records.Len())
	}
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Channel != "bogus" {
		t.Fatalf("want one diagnostic for bogus, got %+v", res.Diagnostics)
	}
	for _, r := range res.Records {
		if r.Channel == "bogus" {
			t.Fatalf("record from rejected source leaked: %+v", r)
		}
	}
	kit.MustContain(t, res.Diagnostics[0].Message(), "bogus is not a valid file")
}

func TestCombine_Empty(t *testing.T) {
	res, err := newSvc(1).Combine(context.Background(), nil)
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	if res.Records == nil || res.Records.Len() != 0 || len(res.Diagnostics) != 0 {
		t.Fatalf("want empty non-nil record set, got %+v", res)
	}
}

func TestCombine_AllInvalid(t *testing.T) {
	res, err := newSvc(1).Combine(context.Background(), []domain.Source{{Location: "bogus.csv", Channel: "bogus"}})
	if err != nil || res.Records.Len() != 0 || len(res.Diagnostics) != 1 {
		t.Fatalf("all invalid: %+v err=%v", res, err)
	}
}

func TestCombine_Idempotent(t *testing.T) {
	s := newSvc(1)
	a, err := s.Combine(context.Background(), threeSources)
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.Combine(context.Background(), threeSources)
	if err != nil {
		t.Fatal(err)
	}
	if a.RunID == b.RunID {
		t.Fatalf("each run should get its own id")
	}
	if diff := cmp.Diff(a, b, cmpopts.IgnoreFields(domain.Result{}, "RunID")); diff != "" {
		t.Fatalf("re-run differs (-first +second):\n%s", diff)
	}
}

func TestCombine_ParallelMatchesSequential(t *testing.T) {
	srcs := []domain.Source{
		{Location: "mobile.csv", Channel: "mobile"},
		{Location: "bogus.csv", Channel: "bogus"},
		{Location: "email.csv", Channel: "email"},
		{Location: "web.csv", Channel: "web"},
	}
	seq, err := newSvc(1).Combine(context.Background(), srcs)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		par, err := newSvc(4).Combine(context.Background(), srcs)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(seq, par); diff != "" {
			t.Fatalf("parallel differs (-seq +par):\n%s", diff)
		}
	}
}

func TestCombine_Failures(t *testing.T) {
	cases := []struct {
		name    string
		workers int
		srcs    []domain.Source
		code    perr.ErrorCode
		msg     string
	}{
		{"missing file", 1, []domain.Source{threeSources[0], {Location: "nope.csv", Channel: "sms"}}, perr.ErrorCodeResource, `"sms"`},
		{"ragged rows", 1, []domain.Source{threeSources[0], {Location: "ragged.csv", Channel: "kiosk"}}, perr.ErrorCodeParse, `"kiosk"`},
		{"parallel earliest wins", 3, []domain.Source{{Location: "nope.csv", Channel: "sms"}, threeSources[1], {Location: "ragged.csv", Channel: "kiosk"}}, perr.ErrorCodeResource, `"sms"`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res, err := newSvc(c.workers).Combine(context.Background(), c.srcs)
			if !perr.IsCode(err, c.code) {
				t.Fatalf("want %v, got %v", c.code, err)
			}
			kit.MustContain(t, err.Error(), c.msg)
			if res.Records.Len() != 0 {
				t.Fatalf("failed combine returned records")
			}
		})
	}
}

func TestScore_Formula(t *testing.T) {
	s := newSvc(1)
	var rs domain.RecordSet
	add := func(n int, rating float64, ch string) {
		for i := 0; i < n; i++ {
			rs = append(rs, domain.Response{Rating: rating, Channel: ch, Category: nps.Categorize(rating)})
		}
	}
	add(5, 10, "email")
	add(2, 2, "email")
	add(4, 7, "web")
	add(1, -3, "web")
	add(1, 9, "web")

	got, err := s.OverallScore(rs)
	if err != nil {
		t.Fatal(err)
	}
	if want := float64(6-2) / 13 * 100; got != want {
		t.Fatalf("overall = %v, want %v", got, want)
	}

	if _, err := s.OverallScore(nil); !perr.IsCode(err, perr.ErrorCodeAggregation) {
		t.Fatalf("empty set: want aggregation error, got %v", err)
	}
	byCh, err := s.ScoreByChannel(nil)
	if err != nil || len(byCh) != 0 {
		t.Fatalf("empty by channel: %v %v", byCh, err)
	}
}

func TestScoreByChannel_Partition(t *testing.T) {
	s := newSvc(1)
	res, err := s.Combine(context.Background(), threeSources)
	if err != nil {
		t.Fatal(err)
	}
	byCh, err := s.ScoreByChannel(res.Records)
	if err != nil {
		t.Fatal(err)
	}
	if len(byCh) != len(res.Records.Channels()) {
		t.Fatalf("entries = %d, channels = %d", len(byCh), len(res.Records.Channels()))
	}

	parts := res.Records.ByChannel()
	total := 0
	for _, cs := range byCh {
		sub := parts[cs.Channel]
		total += sub.Len()
		want, err := s.OverallScore(sub)
		if err != nil {
			t.Fatal(err)
		}
		if cs.Score != want || cs.Total != sub.Len() {
			t.Fatalf("%s: score %v total %d, want %v %d", cs.Channel, cs.Score, cs.Total, want, sub.Len())
		}
	}
	if total != res.Records.Len() {
		t.Fatalf("partition lost records: %d of %d", total, res.Records.Len())
	}
}

func TestExport(t *testing.T) {
	s := newSvc(1)
	res, err := s.Combine(context.Background(), []domain.Source{threeSources[2]})
	if err != nil {
		t.Fatal(err)
	}
	res.Records = append(res.Records,
		domain.Response{Rating: math.NaN(), Channel: "mobile", Category: nps.Invalid},
		domain.Response{Rating: math.NaN(), RatingText: "n/a", Channel: "mobile", Category: nps.Invalid},
	)

	var buf bytes.Buffer
	if err := s.Export(&buf, res.Records); err != nil {
		t.Fatalf("Export: %v", err)
	}
	want := strings.Join([]string{
		"response_date,user_id,nps_rating,source,nps_group",
		"2020-10-05,m1,7,mobile,passive",
		"2020-10-06,m2,12,mobile,invalid",
		"0001-01-01,,,mobile,invalid",
		"0001-01-01,,n/a,mobile,invalid",
		"",
	}, "\n")
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("export (-want +got):\n%s", diff)
	}
}

func TestNew_PanicsWithoutOpener(t *testing.T) {
	kit.MustPanic(t, func() { _ = New(nil, Config{}) })
}
