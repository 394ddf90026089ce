package command

import gocmd "github.com/goliatone/go-command"

var (
	_ gocmd.Commander[ExecuteDispatchMessage]  = (*ExecuteDispatchCommand)(nil)
	_ gocmd.Commander[ExecuteConfirmedMessage] = (*ExecuteConfirmedCommand)(nil)
	_ gocmd.Commander[PruneActivityMessage]    = (*PruneActivityCommand)(nil)
)
