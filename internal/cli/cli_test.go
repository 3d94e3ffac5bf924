package cli

import "testing"

func TestSplitTagParsesKernelerrStyleStatus(t *testing.T) {
	category, code, message := splitTag("[KERNEL:UNKNOWN_CONST] unknown const: `P`")
	if category != "KERNEL" || code != "UNKNOWN_CONST" {
		t.Errorf("got category=%q code=%q, want KERNEL/UNKNOWN_CONST", category, code)
	}
	if message != "unknown const: `P`" {
		t.Errorf("got message %q", message)
	}
}

func TestSplitTagIgnoresPlainStatus(t *testing.T) {
	category, _, message := splitTag("all good")
	if category != "" {
		t.Errorf("expected no category for a plain status, got %q", category)
	}
	if message != "all good" {
		t.Errorf("got message %q, want the status unchanged", message)
	}
}
