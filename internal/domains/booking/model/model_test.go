package model_test

import (
	"oec/internal/domains/booking/model"
	"oec/shared/constant"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string {
	return &s
}

func newBooking(category string) model.Booking {
	b := model.Booking{ID: "booking-1", Category: category}
	b.InitialStatuses()

	return b
}

func TestBooking_InitialStatuses(t *testing.T) {
	facility := newBooking(model.CategoryFacility)
	assert.Equal(t, model.PaymentPending, facility.PaymentStatus)
	assert.Equal(t, model.ApprovalPending, facility.ApprovalStatus)
	require.NotNil(t, facility.AgreementStatus)
	assert.Equal(t, model.AgreementPendingAdminAction, *facility.AgreementStatus)
	assert.Nil(t, facility.KeyStatus)

	dormitory := newBooking(model.CategoryDormitory)
	require.NotNil(t, dormitory.KeyStatus)
	assert.Equal(t, model.KeyNotIssued, *dormitory.KeyStatus)
	assert.Nil(t, dormitory.AgreementStatus)
}

func TestBooking_Days(t *testing.T) {
	b := model.Booking{
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, 3, b.Days())
}

func TestBooking_Plan(t *testing.T) {
	tests := []struct {
		name    string
		booking func() model.Booking
		action  model.Action
		want    map[string]any
		wantErr error
	}{
		{
			name:    "approve pending payment",
			booking: func() model.Booking { return newBooking(model.CategoryFacility) },
			action:  model.ActionApprovePayment,
			want: map[string]any{
				model.FieldPaymentStatus:  model.PaymentPaid,
				model.FieldApprovalStatus: model.ApprovalApproved,
			},
		},
		{
			name:    "reject pending payment",
			booking: func() model.Booking { return newBooking(model.CategoryDormitory) },
			action:  model.ActionRejectPayment,
			want: map[string]any{
				model.FieldPaymentStatus:  model.PaymentFailed,
				model.FieldApprovalStatus: model.ApprovalRejected,
			},
		},
		{
			name: "paid is terminal",
			booking: func() model.Booking {
				b := newBooking(model.CategoryFacility)
				b.PaymentStatus = model.PaymentPaid
				b.ApprovalStatus = model.ApprovalApproved

				return b
			},
			action:  model.ActionRejectPayment,
			wantErr: model.ErrIllegalTransition,
		},
		{
			name: "proof after rejection reopens approval",
			booking: func() model.Booking {
				b := newBooking(model.CategoryFacility)
				b.PaymentStatus = model.PaymentFailed
				b.ApprovalStatus = model.ApprovalRejected

				return b
			},
			action: model.ActionSubmitPaymentProof,
			want: map[string]any{
				model.FieldPaymentStatus:  model.PaymentAwaitingVerification,
				model.FieldApprovalStatus: model.ApprovalPending,
			},
		},
		{
			name: "proof resubmitted while awaiting verification",
			booking: func() model.Booking {
				b := newBooking(model.CategoryFacility)
				b.PaymentStatus = model.PaymentAwaitingVerification

				return b
			},
			action: model.ActionSubmitPaymentProof,
			want:   map[string]any{},
		},
		{
			name: "pending transfer twice",
			booking: func() model.Booking {
				b := newBooking(model.CategoryFacility)
				b.PaymentStatus = model.PaymentPendingTransfer

				return b
			},
			action:  model.ActionMarkPendingTransfer,
			wantErr: model.ErrIllegalTransition,
		},
		{
			name:    "agreement on a dormitory booking",
			booking: func() model.Booking { return newBooking(model.CategoryDormitory) },
			action:  model.ActionSendAgreement,
			wantErr: model.ErrWrongCategory,
		},
		{
			name:    "key on a facility booking",
			booking: func() model.Booking { return newBooking(model.CategoryFacility) },
			action:  model.ActionIssueKey,
			wantErr: model.ErrWrongCategory,
		},
		{
			name:    "sign before sent",
			booking: func() model.Booking { return newBooking(model.CategoryFacility) },
			action:  model.ActionSignAgreement,
			wantErr: model.ErrIllegalTransition,
		},
		{
			name: "complete signed agreement",
			booking: func() model.Booking {
				b := newBooking(model.CategoryFacility)
				b.AgreementStatus = ptr(model.AgreementSignedByClient)

				return b
			},
			action: model.ActionCompleteAgreement,
			want:   map[string]any{model.FieldAgreementStatus: model.AgreementCompleted},
		},
		{
			name:    "issue key",
			booking: func() model.Booking { return newBooking(model.CategoryDormitory) },
			action:  model.ActionIssueKey,
			want:    map[string]any{model.FieldKeyStatus: model.KeyIssued},
		},
		{
			name:    "return key never issued",
			booking: func() model.Booking { return newBooking(model.CategoryDormitory) },
			action:  model.ActionReturnKey,
			wantErr: model.ErrIllegalTransition,
		},
		{
			name:    "unknown action",
			booking: func() model.Booking { return newBooking(model.CategoryDormitory) },
			action:  model.Action("teleport"),
			wantErr: model.ErrUnknownAction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.booking()
			before := b

			got, err := b.Plan(tt.action)

			assert.Equal(t, before, b)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAction_Roles(t *testing.T) {
	assert.True(t, model.ActionApprovePayment.AllowedFor(constant.RoleAdmin))
	assert.False(t, model.ActionApprovePayment.AllowedFor(constant.RoleKeyholder))
	assert.True(t, model.ActionIssueKey.AllowedFor(constant.RoleKeyholder))
	assert.True(t, model.ActionMarkPendingTransfer.AllowedFor(constant.RoleIndividual))
	assert.False(t, model.ActionSubmitPaymentProof.AllowedFor(constant.RoleAdmin))
	assert.Equal(t, model.FieldSignedAgreementURL, model.ActionSignAgreement.DocumentField())
	assert.Empty(t, model.ActionIssueKey.DocumentField())
}
