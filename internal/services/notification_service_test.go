package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"concierge-backend/internal/models"
	"concierge-backend/internal/notify"
	"concierge-backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNotificationFixture(t *testing.T) (*NotificationService, *PackageService, *notify.MockSMSChannel, *notify.MockEmailChannel) {
	t.Helper()
	st := store.NewMemoryStore()
	sms := notify.NewMockSMSChannel()
	email := notify.NewMockEmailChannel()

	svc := NewNotificationService(st, sms, email)
	svc.now = func() time.Time { return testNow }

	residents := NewResidentService(st)
	packages := NewPackageService(st, residents)
	return svc, packages, sms, email
}

func seedPackage(t *testing.T, packages *PackageService) *models.Package {
	t.Helper()
	pkg, err := packages.CreatePackage(context.Background(), "company-1", &models.CreatePackageRequest{
		ResidentName:   "Maria Lopez",
		UnitNumber:     "4B",
		RecipientPhone: "+15551234567",
		RecipientEmail: "maria@example.com",
		Courier:        "UPS",
		TrackingNumber: "1Z999",
	})
	require.NoError(t, err)
	return pkg
}

func TestDispatch_SMSRecordsAuditFields(t *testing.T) {
	svc, packages, sms, _ := newNotificationFixture(t)
	pkg := seedPackage(t, packages)

	result, err := svc.Dispatch(context.Background(), "company-1", store.Packages, pkg.ID, notify.TmplPackageArrival, notify.ChannelSMS)
	require.NoError(t, err)
	assert.Equal(t, pkg.ID, result.EntityID)
	assert.Contains(t, result.Content, "UPS")
	assert.Contains(t, result.Content, "Unit 4B")
	assert.NotEmpty(t, result.SID)

	sent := sms.Messages()
	require.Len(t, sent, 1)
	assert.Equal(t, "+15551234567", sent[0].To)

	updated, err := packages.GetPackage(context.Background(), "company-1", pkg.ID)
	require.NoError(t, err)
	assert.True(t, updated.NotificationSent)
	assert.Equal(t, notify.ChannelSMS, updated.NotificationMethod)
	require.NotNil(t, updated.NotificationSentAt)
	assert.Equal(t, result.Content, updated.NotificationContent)
}

func TestDispatch_EmailUsesEmailVariant(t *testing.T) {
	svc, packages, _, email := newNotificationFixture(t)
	pkg := seedPackage(t, packages)

	result, err := svc.Dispatch(context.Background(), "company-1", store.Packages, pkg.ID, notify.TmplPackageArrival, notify.ChannelEmail)
	require.NoError(t, err)

	sent := email.Messages()
	require.Len(t, sent, 1)
	assert.Equal(t, "maria@example.com", sent[0].To)
	assert.Contains(t, sent[0].Subject, "Unit 4B")
	assert.Contains(t, result.Content, "Maria Lopez")
}

func TestDispatch_UnknownTemplate(t *testing.T) {
	svc, packages, sms, _ := newNotificationFixture(t)
	pkg := seedPackage(t, packages)

	_, err := svc.Dispatch(context.Background(), "company-1", store.Packages, pkg.ID, "no_such_template", notify.ChannelSMS)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template not found")
	assert.Empty(t, sms.Messages())

	updated, err := packages.GetPackage(context.Background(), "company-1", pkg.ID)
	require.NoError(t, err)
	assert.False(t, updated.NotificationSent)
}

func TestDispatch_MissingEntity(t *testing.T) {
	svc, _, _, _ := newNotificationFixture(t)

	_, err := svc.Dispatch(context.Background(), "company-1", store.Packages, "nope", notify.TmplPackageArrival, notify.ChannelSMS)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDispatch_ChannelFailureLeavesEntityUntouched(t *testing.T) {
	svc, packages, sms, _ := newNotificationFixture(t)
	pkg := seedPackage(t, packages)

	sms.Fail = errors.New("provider down")

	_, err := svc.Dispatch(context.Background(), "company-1", store.Packages, pkg.ID, notify.TmplPackageArrival, notify.ChannelSMS)
	require.Error(t, err)

	updated, err := packages.GetPackage(context.Background(), "company-1", pkg.ID)
	require.NoError(t, err)
	assert.False(t, updated.NotificationSent)
	assert.Empty(t, updated.NotificationMethod)
	assert.Nil(t, updated.NotificationSentAt)
}

func TestDispatch_NoPhoneOnEntity(t *testing.T) {
	svc, packages, _, _ := newNotificationFixture(t)

	pkg, err := packages.CreatePackage(context.Background(), "company-1", &models.CreatePackageRequest{
		UnitNumber: "7C",
		Courier:    "FedEx",
	})
	require.NoError(t, err)

	_, err = svc.Dispatch(context.Background(), "company-1", store.Packages, pkg.ID, notify.TmplPackageArrival, notify.ChannelSMS)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no phone number")
}

func TestDispatch_NotIdempotent(t *testing.T) {
	svc, packages, sms, _ := newNotificationFixture(t)
	pkg := seedPackage(t, packages)
	ctx := context.Background()

	_, err := svc.Dispatch(ctx, "company-1", store.Packages, pkg.ID, notify.TmplPackageArrival, notify.ChannelSMS)
	require.NoError(t, err)
	_, err = svc.Dispatch(ctx, "company-1", store.Packages, pkg.ID, notify.TmplPackageArrival, notify.ChannelSMS)
	require.NoError(t, err)

	assert.Len(t, sms.Messages(), 2)
}

func TestDispatchMany_CountsSuccesses(t *testing.T) {
	svc, packages, sms, _ := newNotificationFixture(t)
	ctx := context.Background()

	first := seedPackage(t, packages)
	second := seedPackage(t, packages)
	noPhone, err := packages.CreatePackage(ctx, "company-1", &models.CreatePackageRequest{
		UnitNumber: "9A",
		Courier:    "USPS",
	})
	require.NoError(t, err)

	sent, err := svc.DispatchMany(ctx, "company-1", store.Packages,
		[]string{first.ID, second.ID, noPhone.ID, "missing-id"},
		notify.TmplPackageArrival, notify.ChannelSMS)
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.Len(t, sms.Messages(), 2)
}

func TestDispatchMany_UnknownTemplate(t *testing.T) {
	svc, packages, _, _ := newNotificationFixture(t)
	pkg := seedPackage(t, packages)

	_, err := svc.DispatchMany(context.Background(), "company-1", store.Packages, []string{pkg.ID}, "nope", notify.ChannelSMS)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template not found")
}
