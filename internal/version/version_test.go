package version

import "testing"

func TestSummaryUsesCurrentValues(t *testing.T) {
	oldVersion := Version
	oldCommit := Commit
	oldDate := BuildDate
	t.Cleanup(func() {
		Version = oldVersion
		Commit = oldCommit
		BuildDate = oldDate
	})

	Version = "v1.2.3"
	Commit = "abc1234"
	BuildDate = "2025-01-02T03:04:05Z"

	summary := Summary()

	if summary != "v1.2.3 (commit abc1234, built 2025-01-02T03:04:05Z)" {
		t.Fatalf("unexpected summary: %s", summary)
	}
}
