package icron

import (
	"testing"
	"time"

	"github.com/robfig/cron/v3"
)

func TestTriggerInfoForScheduleComputesNextAndLast(t *testing.T) {
	sched, err := cron.ParseStandard("0 3 * * *")
	if err != nil {
		t.Fatalf("ParseStandard: %v", err)
	}

	ref := time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)
	info := TriggerInfoForSchedule(sched, "0 3 * * *", ref)

	if info.Next.Hour() != 3 {
		t.Fatalf("Next hour = %d, want 3", info.Next.Hour())
	}
	if !info.Next.After(ref) {
		t.Fatalf("Next = %v, want after ref %v", info.Next, ref)
	}
	if info.TimeUntilNext <= 0 {
		t.Fatalf("TimeUntilNext = %v, want positive", info.TimeUntilNext)
	}
}

func TestGetTriggerInfoRejectsStandardFiveFieldExpression(t *testing.T) {
	if _, err := GetTriggerInfo("0 3 * * *", time.Now()); err == nil {
		t.Fatalf("expected a 5-field expression to be rejected by the 6-field parser")
	}
}
