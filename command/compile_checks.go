package command

import gocmd "github.com/goliatone/go-command"

var (
	_ gocmd.Commander[AuthorizeMessage]       = (*AuthorizeCommand)(nil)
	_ gocmd.Commander[InitiatePaymentMessage] = (*InitiatePaymentCommand)(nil)
	_ gocmd.Commander[FetchStatusMessage]     = (*FetchStatusCommand)(nil)
	_ gocmd.Commander[ListBanksMessage]       = (*ListBanksCommand)(nil)
)
