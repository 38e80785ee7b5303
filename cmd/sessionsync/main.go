package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-session-sync/internal/client"
	"github.com/MKhiriev/go-session-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	if err := client.Execute(context.Background(), build); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
