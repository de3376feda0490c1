package pisp

import (
	"fmt"

	"github.com/goliatone/go-pisp/client"
	pispcommand "github.com/goliatone/go-pisp/command"
)

// Commands bundles the dispatchable command handlers bound to one service.
type Commands struct {
	Authorize       *pispcommand.AuthorizeCommand
	InitiatePayment *pispcommand.InitiatePaymentCommand
	FetchStatus     *pispcommand.FetchStatusCommand
	ListBanks       *pispcommand.ListBanksCommand
}

// Facade wires a PaymentService into command handlers for hosts that drive
// the connector through a dispatcher.
type Facade struct {
	service  pispcommand.PaymentService
	commands Commands
}

func NewFacade(service pispcommand.PaymentService) (*Facade, error) {
	if service == nil {
		return nil, fmt.Errorf("pisp: payment service is required")
	}
	return &Facade{
		service: service,
		commands: Commands{
			Authorize:       pispcommand.NewAuthorizeCommand(service),
			InitiatePayment: pispcommand.NewInitiatePaymentCommand(service),
			FetchStatus:     pispcommand.NewFetchStatusCommand(service),
			ListBanks:       pispcommand.NewListBanksCommand(service),
		},
	}, nil
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Service() pispcommand.PaymentService {
	if f == nil {
		return nil
	}
	return f.service
}

var _ pispcommand.PaymentService = (*client.Client)(nil)
