package controller

import "context"

type contextKey int

const (
	participantIdCtxKey contextKey = iota
)

func (c *controller) getParticipantIdFromCtx(ctx context.Context) string {
	participantId, ok := ctx.Value(participantIdCtxKey).(string)
	if !ok {
		return ""
	}

	return participantId
}
