package core

import "strings"

// FailureCause normalizes partner rejection reasons into the categories the
// host platform acts on.
type FailureCause string

const (
	FailureCauseInvalidData    FailureCause = "INVALID_DATA"
	FailureCauseRefused        FailureCause = "REFUSED"
	FailureCauseCancel         FailureCause = "CANCEL"
	FailureCauseFraudDetected  FailureCause = "FRAUD_DETECTED"
	FailureCausePartnerUnknown FailureCause = "PARTNER_UNKNOWN_ERROR"
)

type OutcomeKind string

const (
	OutcomeSuccess OutcomeKind = "success"
	OutcomePending OutcomeKind = "pending"
	OutcomeFailure OutcomeKind = "failure"
)

// Transaction status codes the partner reports (ISO 20022 vocabulary).
const (
	TransactionStatusSettled          = "ACSC"
	TransactionStatusSettlementInProc = "ACSP"
	TransactionStatusPending          = "PDNG"
	TransactionStatusRejected         = "RJCT"
)

// BankAccount is the normalized account identity attached to a successful
// outcome. Fields default to "", never to an absent value.
type BankAccount struct {
	Holder        string
	AccountNumber string
	IBAN          string
	BIC           string
	CountryCode   string
	BankName      string
	BankCode      string
}

// TransactionOutcome is the terminal classification of a payment status.
// Owner and Receiver are only meaningful when Kind is OutcomeSuccess;
// ErrorCode and Cause only when Kind is OutcomeFailure.
type TransactionOutcome struct {
	Kind       OutcomeKind
	StatusCode string
	Owner      BankAccount
	Receiver   BankAccount
	ErrorCode  string
	Cause      FailureCause
}

type rejectReason struct {
	errorCode string
	cause     FailureCause
}

// ISO 20022 payment status reason codes, as documented by the partner.
var rejectReasons = map[string]rejectReason{
	"AC01": {"the account number is invalid or does not exist", FailureCauseInvalidData},
	"AC04": {"the account is closed and cannot be used", FailureCauseInvalidData},
	"AC06": {"the account is blocked and cannot be used", FailureCauseRefused},
	"AG01": {"transaction forbidden on this type of account", FailureCauseRefused},
	"AM18": {"number of transactions exceeds the ASPSP limit", FailureCauseInvalidData},
	"CH03": {"requested execution date is too far in the future", FailureCauseInvalidData},
	"CUST": {"due to the debtor: refusal or lack of liquidity", FailureCauseRefused},
	"DS02": {"an authorized user has cancelled the order", FailureCauseCancel},
	"FF01": {"the original payment request is invalid", FailureCauseInvalidData},
	"FRAD": {"the payment request is considered as fraudulent", FailureCauseFraudDetected},
	"MS03": {"no reason specified by the ASPSP", FailureCausePartnerUnknown},
	"NOAS": {"PSU has neither accepted nor rejected the payment", FailureCausePartnerUnknown},
	"RR01": {"debtor account and/or identification incorrect", FailureCauseInvalidData},
	"RR03": {"missing creditor name or address", FailureCauseInvalidData},
	"RR04": {"reject from regulatory reason", FailureCauseRefused},
	"RR12": {"invalid or missing identification", FailureCauseInvalidData},
}

// MapTransactionStatus translates a partner transaction status, plus the
// rejection reason code when the status is RJCT, into a normalized outcome.
// An empty reasonCode means the partner did not report one.
func MapTransactionStatus(statusCode string, reasonCode string) TransactionOutcome {
	status := strings.TrimSpace(statusCode)
	switch status {
	case TransactionStatusSettled:
		return TransactionOutcome{Kind: OutcomeSuccess, StatusCode: status}
	case TransactionStatusSettlementInProc, TransactionStatusPending:
		return TransactionOutcome{Kind: OutcomePending, StatusCode: status}
	case TransactionStatusRejected:
		return mapRejectReason(status, reasonCode)
	default:
		return TransactionOutcome{
			Kind:       OutcomeFailure,
			StatusCode: status,
			ErrorCode:  "unknown transaction status " + status,
			Cause:      FailureCausePartnerUnknown,
		}
	}
}

func mapRejectReason(status string, reasonCode string) TransactionOutcome {
	reason := strings.TrimSpace(reasonCode)
	if reason == "" {
		return TransactionOutcome{
			Kind:       OutcomeFailure,
			StatusCode: status,
			ErrorCode:  "missing status reason information",
			Cause:      FailureCausePartnerUnknown,
		}
	}
	mapped, ok := rejectReasons[reason]
	if !ok {
		return TransactionOutcome{
			Kind:       OutcomeFailure,
			StatusCode: status,
			ErrorCode:  "unknown status reason information " + reason,
			Cause:      FailureCausePartnerUnknown,
		}
	}
	return TransactionOutcome{
		Kind:       OutcomeFailure,
		StatusCode: status,
		ErrorCode:  mapped.errorCode,
		Cause:      mapped.cause,
	}
}

// OutcomeFromPayment classifies a status-response payment record. It reads
// the first credit transfer transaction; a record without one cannot be
// classified and yields a partner-unknown error.
func OutcomeFromPayment(payment Payment) (TransactionOutcome, error) {
	if len(payment.CreditTransfers) == 0 {
		return TransactionOutcome{}, PartnerUnknownError("missing creditTransferTransaction in status response")
	}
	transaction := payment.CreditTransfers[0]
	outcome := MapTransactionStatus(transaction.TransactionStatus, transaction.StatusReasonInformation)
	if outcome.Kind == OutcomeSuccess {
		outcome.Owner = ownerBankAccount(payment)
		outcome.Receiver = receiverBankAccount(payment)
	}
	return outcome, nil
}

func ownerBankAccount(payment Payment) BankAccount {
	account := BankAccount{}
	if payment.Debtor != nil {
		account.Holder = payment.Debtor.Name
		if payment.Debtor.PostalAddress != nil {
			account.CountryCode = payment.Debtor.PostalAddress.Country
		}
	}
	if payment.DebtorAccount != nil {
		account.IBAN = payment.DebtorAccount.IBAN
	}
	if payment.DebtorAgent != nil {
		account.BIC = payment.DebtorAgent.BICFI
	}
	return account
}

func receiverBankAccount(payment Payment) BankAccount {
	account := BankAccount{}
	if payment.Beneficiary == nil {
		return account
	}
	if payment.Beneficiary.Creditor != nil {
		account.Holder = payment.Beneficiary.Creditor.Name
		if payment.Beneficiary.Creditor.PostalAddress != nil {
			account.CountryCode = payment.Beneficiary.Creditor.PostalAddress.Country
		}
	}
	if payment.Beneficiary.CreditorAccount != nil {
		account.IBAN = payment.Beneficiary.CreditorAccount.IBAN
	}
	if payment.Beneficiary.CreditorAgent != nil {
		account.BIC = payment.Beneficiary.CreditorAgent.BICFI
	}
	return account
}
