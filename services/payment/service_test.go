package payment

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"rentflow/models"
	"rentflow/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	svc      *DefaultPaymentService
	bills    *fakeBills
	payments *fakePayments
	notifier *fakeNotifier
	storage  *fakeStorage
}

func newFixture(t *testing.T, bill *models.Bill, ps ...*models.Payment) *fixture {
	t.Helper()
	f := &fixture{
		bills:    newFakeBills(bill),
		payments: newFakePayments(ps...),
		notifier: &fakeNotifier{},
		storage:  &fakeStorage{},
	}
	svc, err := NewDefaultPaymentService(Deps{
		Payments: f.payments,
		Bills:    f.bills,
		Storage:  f.storage,
		Notifier: f.notifier,
		Tx:       &fakeTx{},
		Now:      func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	f.svc = svc
	return f
}

func paidBill(total float64, due time.Time) *models.Bill {
	return &models.Bill{ID: "b1", RoomID: "r1", TenantID: "t1", Month: 3, Year: 2026, TotalAmount: total, DueDate: due, Status: models.BillPaid}
}

func pendingPayment(ocrAmount *float64) *models.Payment {
	p := &models.Payment{ID: "p1", BillID: "b1", TenantID: "t1", Status: models.PaymentPending}
	if ocrAmount != nil {
		p.OCRData = &models.OCRData{Amount: ocrAmount}
	}
	return p
}

func TestApprove_Match(t *testing.T) {
	f := newFixture(t, paidBill(1000, fixedNow.AddDate(0, 0, 5)), pendingPayment(ptr(1000)))

	res, err := f.svc.Approve(context.Background(), "p1", "admin1")
	require.NoError(t, err)

	assert.True(t, res.Check.IsMatch)
	assert.Empty(t, res.Warning)
	assert.Equal(t, models.PaymentVerified, f.payments.payments["p1"].Status)
	assert.Equal(t, "admin1", f.payments.payments["p1"].VerifiedBy)
	assert.Equal(t, models.BillVerified, f.bills.bills["b1"].Status)
	require.NotNil(t, f.bills.bills["b1"].VerifiedAt)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "t1", f.notifier.sent[0].userID)
	assert.Equal(t, models.NotifPaymentVerified, f.notifier.sent[0].typ)
}

func TestApprove_MismatchStillSucceeds(t *testing.T) {
	f := newFixture(t, paidBill(1000, fixedNow.AddDate(0, 0, 5)), pendingPayment(ptr(999)))

	res, err := f.svc.Approve(context.Background(), "p1", "admin1")
	require.NoError(t, err)

	assert.False(t, res.Check.IsMatch)
	assert.Equal(t, utils.MsgAmountMismatch, res.Warning)
	assert.Equal(t, models.BillVerified, f.bills.bills["b1"].Status)
}

func TestApprove_NoAmountWarns(t *testing.T) {
	f := newFixture(t, paidBill(1000, fixedNow), pendingPayment(nil))

	res, err := f.svc.Approve(context.Background(), "p1", "admin1")
	require.NoError(t, err)
	assert.False(t, res.Check.CanVerify)
	assert.Equal(t, utils.MsgAmountUnknown, res.Warning)
}

func TestApprove_NonPendingConflicts(t *testing.T) {
	for _, status := range []models.PaymentStatus{models.PaymentVerified, models.PaymentRejected} {
		p := pendingPayment(ptr(1000))
		p.Status = status
		f := newFixture(t, paidBill(1000, fixedNow), p)

		_, err := f.svc.Approve(context.Background(), "p1", "admin1")
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, utils.StatusOf(err))
		assert.Zero(t, f.payments.writes)
		assert.Zero(t, f.bills.writes)
		assert.Empty(t, f.notifier.sent)
	}
}

func TestApprove_ConcurrentAdminsOnlyOneWins(t *testing.T) {
	f := newFixture(t, paidBill(1000, fixedNow), pendingPayment(ptr(1000)))

	var wg sync.WaitGroup
	var mu sync.Mutex
	statuses := []int{}
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Approve(context.Background(), "p1", "admin")
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				statuses = append(statuses, http.StatusOK)
			} else {
				statuses = append(statuses, utils.StatusOf(err))
			}
		}()
	}
	wg.Wait()

	assert.ElementsMatch(t, []int{http.StatusOK, http.StatusConflict}, statuses)
	assert.Equal(t, 1, f.payments.writes)
}

func TestApprove_UnknownPayment(t *testing.T) {
	f := newFixture(t, paidBill(1000, fixedNow))

	_, err := f.svc.Approve(context.Background(), "nope", "admin1")
	assert.Equal(t, http.StatusNotFound, utils.StatusOf(err))
}

func TestReject_RequiresReason(t *testing.T) {
	for _, reason := range []string{"", "   ", "\t\n"} {
		f := newFixture(t, paidBill(1000, fixedNow), pendingPayment(ptr(1000)))

		_, err := f.svc.Reject(context.Background(), "p1", "admin1", reason)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err))
		assert.Equal(t, models.PaymentPending, f.payments.payments["p1"].Status)
	}
}

func TestReject_BeforeDueReopensPending(t *testing.T) {
	f := newFixture(t, paidBill(1000, fixedNow.AddDate(0, 0, 3)), pendingPayment(ptr(1000)))

	p, err := f.svc.Reject(context.Background(), "p1", "admin1", "  ยอดไม่ครบ ")
	require.NoError(t, err)

	assert.Equal(t, models.PaymentRejected, p.Status)
	assert.Equal(t, "ยอดไม่ครบ", f.payments.payments["p1"].RejectionReason)
	assert.Equal(t, models.BillPending, f.bills.bills["b1"].Status)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, models.NotifPaymentRejected, f.notifier.sent[0].typ)
	assert.Equal(t, "ยอดไม่ครบ", f.notifier.sent[0].data.Reason)
}

func TestReject_AfterDueReopensOverdue(t *testing.T) {
	f := newFixture(t, paidBill(1000, fixedNow.AddDate(0, 0, -1)), pendingPayment(ptr(1000)))

	_, err := f.svc.Reject(context.Background(), "p1", "admin1", "สลิปไม่ชัด")
	require.NoError(t, err)
	assert.Equal(t, models.BillOverdue, f.bills.bills["b1"].Status)
}

func TestReject_NonPendingConflicts(t *testing.T) {
	p := pendingPayment(ptr(1000))
	p.Status = models.PaymentVerified
	f := newFixture(t, paidBill(1000, fixedNow), p)

	_, err := f.svc.Reject(context.Background(), "p1", "admin1", "late")
	assert.Equal(t, http.StatusConflict, utils.StatusOf(err))
	assert.Zero(t, f.bills.writes)
}

func TestUpdateOCR_Validation(t *testing.T) {
	cases := []struct {
		name string
		ocr  models.OCRData
		want int
	}{
		{"negative amount", models.OCRData{Amount: ptr(-1)}, http.StatusBadRequest},
		{"amount too large", models.OCRData{Amount: ptr(10_000_000.01)}, http.StatusBadRequest},
		{"bad date", models.OCRData{Date: "2026-03-10"}, http.StatusBadRequest},
		{"mixed separators", models.OCRData{Date: "10/03-2026"}, http.StatusBadRequest},
		{"bad time", models.OCRData{Time: "9:5"}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, paidBill(1000, fixedNow), pendingPayment(nil))
			_, err := f.svc.UpdateOCR(context.Background(), "p1", tc.ocr)
			assert.Equal(t, tc.want, utils.StatusOf(err))
			assert.Zero(t, f.payments.writes)
		})
	}
}

func TestUpdateOCR_Valid(t *testing.T) {
	f := newFixture(t, paidBill(1000, fixedNow), pendingPayment(nil))

	p, err := f.svc.UpdateOCR(context.Background(), "p1", models.OCRData{Amount: ptr(1000), Date: "10-03-2026", Time: "09:15:30"})
	require.NoError(t, err)
	require.NotNil(t, p.OCRData)
	assert.Equal(t, 1000.0, *p.OCRData.Amount)

	check, err := f.svc.Verification(context.Background(), "p1", "t1", models.RoleTenant)
	require.NoError(t, err)
	assert.True(t, check.IsMatch)
}

func TestUpdateOCR_NonPendingConflicts(t *testing.T) {
	p := pendingPayment(nil)
	p.Status = models.PaymentRejected
	f := newFixture(t, paidBill(1000, fixedNow), p)

	_, err := f.svc.UpdateOCR(context.Background(), "p1", models.OCRData{Amount: ptr(1)})
	assert.Equal(t, http.StatusConflict, utils.StatusOf(err))
}

func TestSubmit_QRFallback(t *testing.T) {
	bill := &models.Bill{ID: "b1", TenantID: "t1", TotalAmount: 500, DueDate: fixedNow, Status: models.BillPending}
	f := newFixture(t, bill)

	p, err := f.svc.Submit(context.Background(), "t1",
		models.SubmitPaymentRequest{BillID: "b1", QRData: &models.QRData{Raw: dynamicQR}},
		Slip{Reader: strings.NewReader("img"), Filename: "slip.jpg"},
	)
	require.NoError(t, err)

	assert.Equal(t, models.PaymentPending, p.Status)
	require.NotNil(t, p.QRData)
	assert.Equal(t, "INV2024001", p.QRData.Reference)
	assert.Equal(t, models.BillPaid, f.bills.bills["b1"].Status)
	assert.Equal(t, []string{"slips/slip.jpg"}, f.storage.uploads)

	check, err := f.svc.Verification(context.Background(), p.ID, "admin", models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.SourceQR, check.Source)
	require.NotNil(t, check.EffectiveAmount)
	assert.Equal(t, 500.0, *check.EffectiveAmount)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, models.RoleAdmin, f.notifier.sent[0].role)
	assert.Equal(t, models.NotifPaymentSubmitted, f.notifier.sent[0].typ)
}

func TestSubmit_BadQRChecksum(t *testing.T) {
	bill := &models.Bill{ID: "b1", TenantID: "t1", Status: models.BillPending}
	f := newFixture(t, bill)

	raw := dynamicQR[:len(dynamicQR)-4] + "FFFF"
	_, err := f.svc.Submit(context.Background(), "t1",
		models.SubmitPaymentRequest{BillID: "b1", QRData: &models.QRData{Raw: raw}},
		Slip{Reader: strings.NewReader("img"), Filename: "slip.jpg"},
	)
	assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err))
	assert.Empty(t, f.storage.uploads)
}

func TestSubmit_OtherTenantsBill(t *testing.T) {
	bill := &models.Bill{ID: "b1", TenantID: "t1", Status: models.BillPending}
	f := newFixture(t, bill)

	_, err := f.svc.Submit(context.Background(), "t2", models.SubmitPaymentRequest{BillID: "b1"}, Slip{Reader: strings.NewReader("x"), Filename: "a.png"})
	assert.Equal(t, http.StatusNotFound, utils.StatusOf(err))
}

func TestSubmit_PendingPaymentExists(t *testing.T) {
	bill := &models.Bill{ID: "b1", TenantID: "t1", Status: models.BillOverdue}
	f := newFixture(t, bill, pendingPayment(nil))

	_, err := f.svc.Submit(context.Background(), "t1", models.SubmitPaymentRequest{BillID: "b1"}, Slip{Reader: strings.NewReader("x"), Filename: "a.png"})
	assert.Equal(t, http.StatusConflict, utils.StatusOf(err))
	assert.Empty(t, f.storage.uploads)
}

func TestSubmit_VerifiedBillNotPayable(t *testing.T) {
	bill := &models.Bill{ID: "b1", TenantID: "t1", Status: models.BillVerified}
	f := newFixture(t, bill)

	_, err := f.svc.Submit(context.Background(), "t1", models.SubmitPaymentRequest{BillID: "b1"}, Slip{Reader: strings.NewReader("x"), Filename: "a.png"})
	assert.Equal(t, http.StatusConflict, utils.StatusOf(err))
}

func TestGet_TenantCannotSeeOthers(t *testing.T) {
	f := newFixture(t, paidBill(1000, fixedNow), pendingPayment(nil))

	_, err := f.svc.Get(context.Background(), "p1", "t2", models.RoleTenant)
	assert.Equal(t, http.StatusNotFound, utils.StatusOf(err))

	p, err := f.svc.Get(context.Background(), "p1", "someone", models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)
}
