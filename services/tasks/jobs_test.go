package tasks

import (
	"context"
	"testing"
	"time"

	"rentflow/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bangkok = time.FixedZone("ICT", 7*60*60)

type jobsHarness struct {
	jobs     *Jobs
	bills    *fakeBills
	records  *fakeNotifications
	notifier *fakeNotifier
	now      time.Time
}

func newJobsHarness(now time.Time, bills ...*models.Bill) *jobsHarness {
	h := &jobsHarness{
		bills:   &fakeBills{bills: bills},
		records: &fakeNotifications{},
		now:     now,
	}
	clock := func() time.Time { return h.now }
	h.notifier = &fakeNotifier{store: h.records, now: clock, failOn: map[string]bool{}}
	h.jobs = NewJobs(h.bills, h.records, fakeRooms{}, h.notifier, bangkok, nil, WithJobClock(clock))
	return h
}

func bill(id string, due time.Time, status models.BillStatus) *models.Bill {
	return &models.Bill{ID: id, RoomID: "r" + id, TenantID: "t" + id, Month: 3, Year: 2026, TotalAmount: 4500, DueDate: due, Status: status}
}

func TestDueReminder_FiveDayWindow(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, bangkok)
	h := newJobsHarness(now,
		bill("early", time.Date(2026, 3, 6, 0, 0, 0, 0, bangkok), models.BillPending),
		bill("late", time.Date(2026, 3, 6, 23, 59, 59, 0, bangkok), models.BillPaid),
		bill("six", time.Date(2026, 3, 7, 0, 0, 0, 0, bangkok), models.BillPending),
		bill("four", time.Date(2026, 3, 5, 23, 59, 0, 0, bangkok), models.BillPending),
		bill("done", time.Date(2026, 3, 6, 12, 0, 0, 0, bangkok), models.BillVerified),
	)

	res, err := h.jobs.DueReminder(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Matched)
	assert.Equal(t, 2, res.Sent)
	var ids []string
	for _, s := range h.notifier.sent {
		ids = append(ids, s.billID)
		assert.Equal(t, models.NotifPaymentReminder, s.typ)
		assert.Equal(t, 5, s.data.DaysLeft)
		assert.Equal(t, "06/03/2026", s.data.DueDate)
	}
	assert.ElementsMatch(t, []string{"early", "late"}, ids)
}

func TestDueReminder_WindowUsesConfiguredZone(t *testing.T) {
	// 20:00 UTC on Feb 28 is already Mar 1 in Bangkok.
	now := time.Date(2026, 2, 28, 20, 0, 0, 0, time.UTC)
	due := time.Date(2026, 3, 2, 8, 0, 0, 0, bangkok)
	h := newJobsHarness(now, bill("b", due, models.BillPending))

	res, err := h.jobs.DueReminder(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)
}

func TestDueReminder_ContinuesPastFailures(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, bangkok)
	due := time.Date(2026, 3, 2, 10, 0, 0, 0, bangkok)
	h := newJobsHarness(now,
		bill("a", due, models.BillPending),
		bill("b", due, models.BillPending),
		bill("c", due, models.BillPending),
	)
	h.notifier.failOn["b"] = true

	res, err := h.jobs.DueReminder(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Matched)
	assert.Equal(t, 2, res.Sent)
	assert.Equal(t, 1, res.Failed)
}

func TestOverdueSweep_OncePer24h(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, bangkok)
	b := bill("b1", now.AddDate(0, 0, -2), models.BillPending)
	h := newJobsHarness(now, b)

	res, err := h.jobs.OverdueSweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)
	assert.Equal(t, models.BillOverdue, b.Status)

	h.now = now.Add(6 * time.Hour)
	res, err = h.jobs.OverdueSweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Sent)
	assert.Equal(t, 1, res.Skipped)
	assert.Len(t, h.notifier.sent, 1)

	h.now = now.Add(25 * time.Hour)
	res, err = h.jobs.OverdueSweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)
	assert.Len(t, h.notifier.sent, 2)
}

func TestOverdueSweep_StatusSelection(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, bangkok)
	paid := bill("paid", now.Add(-time.Hour), models.BillPaid)
	verified := bill("verified", now.Add(-time.Hour), models.BillVerified)
	future := bill("future", now.Add(time.Hour), models.BillPending)
	h := newJobsHarness(now, paid, verified, future)

	res, err := h.jobs.OverdueSweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Matched)
	require.Len(t, h.notifier.sent, 1)
	assert.Equal(t, "paid", h.notifier.sent[0].billID)
	assert.Equal(t, models.BillPaid, paid.Status, "a paid bill waits for verification")
	assert.Equal(t, models.BillPending, future.Status)
}

func TestCleanup_ThirtyDayRetention(t *testing.T) {
	now := time.Date(2026, 3, 10, 3, 0, 0, 0, bangkok)
	old := now.AddDate(0, 0, -31)
	recent := now.AddDate(0, 0, -29)
	h := newJobsHarness(now)
	h.records.records = []*models.Notification{
		{ID: "old", Read: true, ReadAt: &old},
		{ID: "recent", Read: true, ReadAt: &recent},
		{ID: "unread", SentAt: old},
	}

	res, err := h.jobs.Cleanup(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Deleted)
	var left []string
	for _, n := range h.records.records {
		left = append(left, n.ID)
	}
	assert.ElementsMatch(t, []string{"recent", "unread"}, left)
}

func TestJobTask_Options(t *testing.T) {
	task, opts := JobTask(TypeOverdueSweep, time.Hour)
	assert.Equal(t, TypeOverdueSweep, task.Type())
	assert.Len(t, opts, 2)
}
