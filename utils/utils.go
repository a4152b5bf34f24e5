package utils

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
)

func AddToLogMessage(logMessagesBuilder *strings.Builder, strToAdd string) {

	if logMessagesBuilder.Len() == logMessagesBuilder.Cap() {

		logMessagesBuilder.Grow(len(strToAdd))
	}

	logMessagesBuilder.WriteString(strToAdd)
	logMessagesBuilder.WriteString(";")
	logMessagesBuilder.WriteString("\n")
}

// FlushLogMessage writes the accumulated request log as one zerolog event,
// tagged with the request id carried by ctx.
func FlushLogMessage(ctx context.Context, logMessagesBuilder *strings.Builder) {
	if logMessagesBuilder.Len() == 0 {
		return
	}
	log.Info().
		Str("request_id", RequestIDFromContext(ctx)).
		Msg(strings.TrimSuffix(logMessagesBuilder.String(), "\n"))
}
