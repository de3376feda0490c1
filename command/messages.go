// Package command exposes the connector operations as dispatchable command
// messages for hosts that drive integrations through a message bus.
package command

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-pisp/core"
)

const (
	TypeAuthorize       = "pisp.command.authorize"
	TypeInitiatePayment = "pisp.command.payment.initiate"
	TypeFetchStatus     = "pisp.command.payment.status"
	TypeListBanks       = "pisp.command.banks.list"
)

type AuthorizeMessage struct{}

func (AuthorizeMessage) Type() string { return TypeAuthorize }

func (AuthorizeMessage) Validate() error { return nil }

type InitiatePaymentMessage struct {
	Payment core.Payment
	PSU     core.PSUInformation
}

func (InitiatePaymentMessage) Type() string { return TypeInitiatePayment }

func (m InitiatePaymentMessage) Validate() error {
	if strings.TrimSpace(m.Payment.PaymentInformationID) == "" {
		return fmt.Errorf("command: payment information id is required")
	}
	if len(m.Payment.CreditTransfers) == 0 {
		return fmt.Errorf("command: at least one credit transfer transaction is required")
	}
	return nil
}

type FetchStatusMessage struct {
	PaymentID string
}

func (FetchStatusMessage) Type() string { return TypeFetchStatus }

func (m FetchStatusMessage) Validate() error {
	if strings.TrimSpace(m.PaymentID) == "" {
		return fmt.Errorf("command: payment id is required")
	}
	return nil
}

type ListBanksMessage struct{}

func (ListBanksMessage) Type() string { return TypeListBanks }

func (ListBanksMessage) Validate() error { return nil }
