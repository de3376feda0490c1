package command

import (
	"context"

	gocmd "github.com/goliatone/go-command"

	"github.com/goliatone/go-pisp/auth"
	"github.com/goliatone/go-pisp/client"
	"github.com/goliatone/go-pisp/core"
)

// PaymentService is the connector surface the commands dispatch to.
type PaymentService interface {
	Authorize(ctx context.Context) (auth.Authorization, error)
	InitiatePayment(ctx context.Context, payment core.Payment, psu core.PSUInformation) (client.PaymentInitResult, error)
	FetchStatus(ctx context.Context, paymentID string) (core.Payment, error)
	ListBanks(ctx context.Context) ([]core.Bank, error)
}

type AuthorizeCommand struct {
	service PaymentService
}

func NewAuthorizeCommand(service PaymentService) *AuthorizeCommand {
	return &AuthorizeCommand{service: service}
}

func (c *AuthorizeCommand) Execute(ctx context.Context, msg AuthorizeMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: authorize service is required")
	}
	out, err := c.service.Authorize(ctx)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type InitiatePaymentCommand struct {
	service PaymentService
}

func NewInitiatePaymentCommand(service PaymentService) *InitiatePaymentCommand {
	return &InitiatePaymentCommand{service: service}
}

func (c *InitiatePaymentCommand) Execute(ctx context.Context, msg InitiatePaymentMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: payment service is required")
	}
	out, err := c.service.InitiatePayment(ctx, msg.Payment, msg.PSU)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type FetchStatusCommand struct {
	service PaymentService
}

func NewFetchStatusCommand(service PaymentService) *FetchStatusCommand {
	return &FetchStatusCommand{service: service}
}

func (c *FetchStatusCommand) Execute(ctx context.Context, msg FetchStatusMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: payment service is required")
	}
	out, err := c.service.FetchStatus(ctx, msg.PaymentID)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type ListBanksCommand struct {
	service PaymentService
}

func NewListBanksCommand(service PaymentService) *ListBanksCommand {
	return &ListBanksCommand{service: service}
}

func (c *ListBanksCommand) Execute(ctx context.Context, msg ListBanksMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: bank directory service is required")
	}
	out, err := c.service.ListBanks(ctx)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
