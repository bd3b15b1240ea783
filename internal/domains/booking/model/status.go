package model

import (
	"errors"
	"fmt"
	"oec/shared/constant"
	"slices"
)

const (
	PaymentPending              = "pending"
	PaymentPendingTransfer      = "pending_transfer"
	PaymentAwaitingVerification = "awaiting_verification"
	PaymentPaid                 = "paid"
	PaymentFailed               = "failed"
)

const (
	ApprovalPending  = constant.ApprovalStatusPending
	ApprovalApproved = constant.ApprovalStatusApproved
	ApprovalRejected = constant.ApprovalStatusRejected
)

const (
	AgreementPendingAdminAction = "pending_admin_action"
	AgreementSentToClient       = "sent_to_client"
	AgreementSignedByClient     = "signed_by_client"
	AgreementCompleted          = "completed"
)

const (
	KeyNotIssued = "not_issued"
	KeyIssued    = "issued"
	KeyReturned  = "returned"
)

var (
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrWrongCategory     = errors.New("action does not apply to this booking category")
	ErrUnknownAction     = errors.New("unknown booking action")
)

// Transitions lists, per status, the statuses it may move to.
type Transitions map[string][]string

func (t Transitions) Allows(from, to string) bool {
	return slices.Contains(t[from], to)
}

var (
	PaymentTransitions = Transitions{
		PaymentPending:              {PaymentPendingTransfer, PaymentAwaitingVerification, PaymentPaid, PaymentFailed},
		PaymentPendingTransfer:      {PaymentAwaitingVerification, PaymentPaid, PaymentFailed},
		PaymentAwaitingVerification: {PaymentPaid, PaymentFailed},
		PaymentFailed:               {PaymentPendingTransfer, PaymentAwaitingVerification},
		PaymentPaid:                 {},
	}

	ApprovalTransitions = Transitions{
		ApprovalPending:  {ApprovalApproved, ApprovalRejected},
		ApprovalRejected: {ApprovalPending},
		ApprovalApproved: {},
	}

	AgreementTransitions = Transitions{
		AgreementPendingAdminAction: {AgreementSentToClient},
		AgreementSentToClient:       {AgreementSignedByClient},
		AgreementSignedByClient:     {AgreementCompleted},
		AgreementCompleted:          {},
	}

	KeyTransitions = Transitions{
		KeyNotIssued: {KeyIssued},
		KeyIssued:    {KeyReturned},
		KeyReturned:  {},
	}
)

type Action string

const (
	ActionApprovePayment      Action = "approve_payment"
	ActionRejectPayment       Action = "reject_payment"
	ActionMarkPendingTransfer Action = "mark_pending_transfer"
	ActionSubmitPaymentProof  Action = "submit_payment_proof"
	ActionSendAgreement       Action = "send_agreement"
	ActionSignAgreement       Action = "sign_agreement"
	ActionCompleteAgreement   Action = "complete_agreement"
	ActionIssueKey            Action = "issue_key"
	ActionReturnKey           Action = "return_key"
)

type actionSpec struct {
	category string
	targets  map[string]string
	// document is the column that receives the uploaded file URL, if any.
	document string
	// resubmit lets a client replace the document without a status change.
	resubmit bool
	roles    []string
}

var (
	adminRoles  = []string{constant.RoleSuperAdmin, constant.RoleAdmin}
	clientRoles = []string{constant.RoleCompanyRepresentative, constant.RoleIndividual}
)

var actions = map[Action]actionSpec{
	ActionApprovePayment: {
		targets: map[string]string{FieldPaymentStatus: PaymentPaid, FieldApprovalStatus: ApprovalApproved},
		roles:   adminRoles,
	},
	ActionRejectPayment: {
		targets: map[string]string{FieldPaymentStatus: PaymentFailed, FieldApprovalStatus: ApprovalRejected},
		roles:   adminRoles,
	},
	ActionMarkPendingTransfer: {
		targets: map[string]string{FieldPaymentStatus: PaymentPendingTransfer},
		roles:   append(slices.Clone(adminRoles), clientRoles...),
	},
	ActionSubmitPaymentProof: {
		targets:  map[string]string{FieldPaymentStatus: PaymentAwaitingVerification, FieldApprovalStatus: ApprovalPending},
		document: FieldPaymentProofURL,
		resubmit: true,
		roles:    clientRoles,
	},
	ActionSendAgreement: {
		category: CategoryFacility,
		targets:  map[string]string{FieldAgreementStatus: AgreementSentToClient},
		document: FieldAgreementURL,
		resubmit: true,
		roles:    adminRoles,
	},
	ActionSignAgreement: {
		category: CategoryFacility,
		targets:  map[string]string{FieldAgreementStatus: AgreementSignedByClient},
		document: FieldSignedAgreementURL,
		resubmit: true,
		roles:    clientRoles,
	},
	ActionCompleteAgreement: {
		category: CategoryFacility,
		targets:  map[string]string{FieldAgreementStatus: AgreementCompleted},
		roles:    adminRoles,
	},
	ActionIssueKey: {
		category: CategoryDormitory,
		targets:  map[string]string{FieldKeyStatus: KeyIssued},
		roles:    append(slices.Clone(adminRoles), constant.RoleKeyholder),
	},
	ActionReturnKey: {
		category: CategoryDormitory,
		targets:  map[string]string{FieldKeyStatus: KeyReturned},
		roles:    append(slices.Clone(adminRoles), constant.RoleKeyholder),
	},
}

func (a Action) IsValid() bool {
	_, ok := actions[a]

	return ok
}

// AllowedFor reports whether role may perform the action at all.
func (a Action) AllowedFor(role string) bool {
	return slices.Contains(actions[a].roles, role)
}

// DocumentField is the column the action stores its uploaded document in, or empty.
func (a Action) DocumentField() string {
	return actions[a].document
}

func (b Booking) statusOf(field string) string {
	switch field {
	case FieldPaymentStatus:
		return b.PaymentStatus
	case FieldApprovalStatus:
		return b.ApprovalStatus
	case FieldAgreementStatus:
		if b.AgreementStatus != nil {
			return *b.AgreementStatus
		}
	case FieldKeyStatus:
		if b.KeyStatus != nil {
			return *b.KeyStatus
		}
	}

	return ""
}

func transitionsOf(field string) Transitions {
	switch field {
	case FieldPaymentStatus:
		return PaymentTransitions
	case FieldApprovalStatus:
		return ApprovalTransitions
	case FieldAgreementStatus:
		return AgreementTransitions
	default:
		return KeyTransitions
	}
}

// Plan returns the status columns the action changes on b, without touching b.
// Each column is checked against its transition table; a column already in its
// target state is left out.
func (b Booking) Plan(action Action) (map[string]any, error) {
	spec, ok := actions[action]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}

	if spec.category != "" && spec.category != b.Category {
		return nil, fmt.Errorf("%w: %s on a %s booking", ErrWrongCategory, action, b.Category)
	}

	fields := make([]string, 0, len(spec.targets))
	for field := range spec.targets {
		fields = append(fields, field)
	}

	slices.Sort(fields)

	changes := map[string]any{}

	for _, field := range fields {
		from, to := b.statusOf(field), spec.targets[field]

		if from == to {
			continue
		}

		if !transitionsOf(field).Allows(from, to) {
			return nil, fmt.Errorf("%w: %s cannot go from %q to %q", ErrIllegalTransition, field, from, to)
		}

		changes[field] = to
	}

	if len(changes) == 0 && !spec.resubmit {
		return nil, fmt.Errorf("%w: %s has nothing left to change", ErrIllegalTransition, action)
	}

	return changes, nil
}
