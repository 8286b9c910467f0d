package assignment

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

const (
	externalIDPrefix = "axios_"
	titleDigestLen   = 8
	fieldSeparator   = "\x1f"
)

// ExternalID derives the cross-cycle identity of a portal assignment.
// The portal has no unique key, so subject, raw due date and a short title digest stand in for one.
func ExternalID(subject, rawDueDate, title string) string {
	sum := md5.Sum([]byte(title))
	return externalIDPrefix + subject + "_" + rawDueDate + "_" + hex.EncodeToString(sum[:])[:titleDigestLen]
}

// Fingerprint hashes the fields whose change should trigger re-planning.
func Fingerprint(title, subject string, dueDate time.Time) string {
	sum := sha256.Sum256([]byte(strings.Join([]string{
		title,
		subject,
		dueDate.UTC().Format(time.RFC3339),
	}, fieldSeparator)))
	return hex.EncodeToString(sum[:])
}
