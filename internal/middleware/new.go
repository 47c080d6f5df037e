package middleware

import (
	"llm-telegram-relay/pkg/log"
)

type Middleware struct {
	l        log.Logger
	apiToken string
}

func New(l log.Logger, apiToken string) Middleware {
	return Middleware{
		l:        l,
		apiToken: apiToken,
	}
}
