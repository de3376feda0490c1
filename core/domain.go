package core

import "time"

// Payment is the ISO 20022 payment-request resource exchanged with the
// partner. The JSON field names match the partner API exactly; the connector
// treats outgoing instances as opaque signed material and only inspects
// incoming ones for status handling.
type Payment struct {
	ResourceID             string                      `json:"resourceId,omitempty"`
	PaymentInformationID   string                      `json:"paymentInformationId,omitempty"`
	CreationDateTime       *time.Time                  `json:"creationDateTime,omitempty"`
	NumberOfTransactions   int                         `json:"numberOfTransactions,omitempty"`
	InitiatingParty        *PartyIdentification        `json:"initiatingParty,omitempty"`
	PaymentTypeInformation *PaymentTypeInformation     `json:"paymentTypeInformation,omitempty"`
	Debtor                 *PartyIdentification        `json:"debtor,omitempty"`
	DebtorAccount          *AccountIdentification      `json:"debtorAccount,omitempty"`
	DebtorAgent            *FinancialInstitution       `json:"debtorAgent,omitempty"`
	Beneficiary            *Beneficiary                `json:"beneficiary,omitempty"`
	Purpose                string                      `json:"purpose,omitempty"`
	ChargeBearer           string                      `json:"chargeBearer,omitempty"`
	RequestedExecutionDate *time.Time                  `json:"requestedExecutionDate,omitempty"`
	CreditTransfers        []CreditTransferTransaction `json:"creditTransferTransaction,omitempty"`
	SupplementaryData      *SupplementaryData          `json:"supplementaryData,omitempty"`
}

// PartyIdentification identifies an actor of the payment: initiating party,
// debtor, or creditor.
type PartyIdentification struct {
	Name           string          `json:"name,omitempty"`
	PostalAddress  *PostalAddress  `json:"postalAddress,omitempty"`
	OrganisationID *Identification `json:"organisationId,omitempty"`
	PrivateID      *Identification `json:"privateId,omitempty"`
}

type PostalAddress struct {
	Country     string   `json:"country,omitempty"`
	AddressLine []string `json:"addressLine,omitempty"`
}

type Identification struct {
	Identification string `json:"identification,omitempty"`
	SchemeName     string `json:"schemeName,omitempty"`
	Issuer         string `json:"issuer,omitempty"`
}

type AccountIdentification struct {
	IBAN  string          `json:"iban,omitempty"`
	Other *Identification `json:"other,omitempty"`
}

type FinancialInstitution struct {
	BICFI string `json:"bicFi,omitempty"`
}

type Beneficiary struct {
	ID              string                 `json:"id,omitempty"`
	CreditorAgent   *FinancialInstitution  `json:"creditorAgent,omitempty"`
	Creditor        *PartyIdentification   `json:"creditor,omitempty"`
	CreditorAccount *AccountIdentification `json:"creditorAccount,omitempty"`
}

type PaymentTypeInformation struct {
	InstructionPriority string `json:"instructionPriority,omitempty"`
	ServiceLevel        string `json:"serviceLevel,omitempty"`
	LocalInstrument     string `json:"localInstrument,omitempty"`
	CategoryPurpose     string `json:"categoryPurpose,omitempty"`
}

type PaymentIdentification struct {
	InstructionID string `json:"instructionId,omitempty"`
	EndToEndID    string `json:"endToEndId,omitempty"`
}

type Amount struct {
	Amount   string `json:"amount,omitempty"`
	Currency string `json:"currency,omitempty"`
}

// CreditTransferTransaction holds one individual transaction of the payment.
// TransactionStatus and StatusReasonInformation are only populated on status
// responses.
type CreditTransferTransaction struct {
	PaymentID               *PaymentIdentification `json:"paymentId,omitempty"`
	InstructedAmount        *Amount                `json:"instructedAmount,omitempty"`
	RemittanceInformation   []string               `json:"remittanceInformation,omitempty"`
	TransactionStatus       string                 `json:"transactionStatus,omitempty"`
	StatusReasonInformation string                 `json:"statusReasonInformation,omitempty"`
}

type SupplementaryData struct {
	SuccessfulReportURL   string `json:"successfulReportUrl,omitempty"`
	UnsuccessfulReportURL string `json:"unsuccessfulReportUrl,omitempty"`
	EndUserConsentMobile  string `json:"endUserConsentMobile,omitempty"`
}

// PSUInformation describes the end customer's session as observed by the
// upstream platform. Every non-zero field is projected onto a PSU* header of
// the payment initiation request.
type PSUInformation struct {
	LastLogin            *time.Time
	IPAddress            string
	IPPort               int
	HTTPMethod           string
	HeaderUserAgent      string
	HeaderReferer        string
	HeaderAccept         string
	HeaderAcceptCharset  string
	HeaderAcceptEncoding string
	HeaderAcceptLanguage string
	GeoLocation          string
	DeviceID             string
}

// Bank is one account servicing provider reachable through the partner.
type Bank struct {
	ID              string   `json:"id"`
	BIC             string   `json:"bic"`
	BankCode        string   `json:"bankCode"`
	Name            string   `json:"name"`
	ServiceLevel    string   `json:"serviceLevel"`
	LocalInstrument string   `json:"localInstrument"`
	MaxAmount       *float64 `json:"maxAmount"`
}
