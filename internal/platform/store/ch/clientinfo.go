package ch

import (
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// BuildClientInfo describes this process in system.query_log.
// role examples: "bank-publisher", "cli"
func BuildClientInfo(app, role string) clickhouse.ClientInfo {
	host, _ := os.Hostname()
	if app == "" {
		app = "prodanalytics"
	}

	info := clickhouse.ClientInfo{}
	for _, p := range [][2]string{
		{app, vcsShortSHA()},
		{"role", role},
		{"go", runtime.Version()},
		{"host", host},
	} {
		v := strings.TrimSpace(p[1])
		if v == "" {
			continue
		}
		info.Products = append(info.Products, struct{ Name, Version string }{p[0], v})
	}
	return info
}

func vcsShortSHA() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 7 {
				return s.Value[:7]
			}
		}
	}
	return "dev"
}
