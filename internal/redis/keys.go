package redisx

import "fmt"

const ns = "ticketd:v1"

func KeyEventList() string {
	return ns + ":events:list"
}

func KeyTicketTypeList(eventID string) string {
	return fmt.Sprintf("%s:event:%s:tickettypes", ns, eventID)
}

func KeyRateLimit(scope, id string) string {
	return fmt.Sprintf("%s:rl:%s:%s", ns, scope, id)
}

func ChannelCheckins() string {
	return ns + ":checkins"
}
