package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ericfisherdev/profile-manager/internal/domain/model"
)

const timestampLayout = "2006-01-02 15:04:05"

// renderProfileTable writes the fixed-width listing produced by `ls`.
func renderProfileTable(w io.Writer, profiles []model.Profile) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-20s | %-5s | %-20s | %-20s | %s\n", "PROFILE", "TYPE", "CREATED", "LAST ACTIVE", "ACTIVE")
	fmt.Fprintf(w, "%s|%s|%s|%s|%s\n",
		strings.Repeat("=", 21), strings.Repeat("=", 7), strings.Repeat("=", 22), strings.Repeat("=", 22), strings.Repeat("=", 7))
	for _, p := range profiles {
		fmt.Fprintf(w, "%-20s | %-5s | %-20s | %-20s | %s\n",
			p.Name, p.Kind, formatTimestamp(p.CreatedAt), lastActive(p), activeMarker(p))
	}
	fmt.Fprintln(w)
}

// renderAuditTable writes the fixed-width audit trail produced by `log`.
func renderAuditTable(w io.Writer, events []model.AuditEvent) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-20s | %-20s | %-5s | %s\n", "TIMESTAMP", "PROFILE", "TYPE", "ACTION")
	fmt.Fprintf(w, "%s|%s|%s|%s\n",
		strings.Repeat("=", 21), strings.Repeat("=", 22), strings.Repeat("=", 7), strings.Repeat("=", 20))
	for _, e := range events {
		fmt.Fprintf(w, "%-20s | %-20s | %-5s | %s\n",
			formatTimestamp(e.OccurredAt), e.ProfileName, e.Kind, e.Action)
	}
	fmt.Fprintln(w)
}

// printExports writes shell export lines for the profile's credentials.
func printExports(w io.Writer, p model.Profile) {
	fmt.Fprintf(w, "export AWS_ACCESS_KEY_ID=%s\n", p.AccessKey)
	fmt.Fprintf(w, "export AWS_SECRET_ACCESS_KEY=%s\n", p.SecretKey)
	fmt.Fprintf(w, "export AWS_DEFAULT_REGION=%s\n", p.Region)
}

// printUnsets writes shell unset lines matching printExports.
func printUnsets(w io.Writer) {
	fmt.Fprintln(w, "unset AWS_ACCESS_KEY_ID")
	fmt.Fprintln(w, "unset AWS_SECRET_ACCESS_KEY")
	fmt.Fprintln(w, "unset AWS_DEFAULT_REGION")
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func lastActive(p model.Profile) string {
	if !p.EverActivated() {
		return "never"
	}
	return formatTimestamp(p.LastActivatedAt)
}

func activeMarker(p model.Profile) string {
	if p.IsActive {
		return "*"
	}
	return ""
}
