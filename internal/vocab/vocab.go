// Package vocab translates between the canonical wire vocabulary for ticket
// status and priority and the localized labels shown to end users. The
// mappings are exact inverses of each other; any value outside the closed
// sets passes through unchanged so a newer server can introduce tokens
// without breaking older clients.
package vocab

import "github.com/codigo-hd/helpdesk-service/internal/domain"

var statusToDisplay = map[domain.TicketStatus]string{
	domain.TicketStatusOpen:       "Aberto",
	domain.TicketStatusInProgress: "Em Andamento",
	domain.TicketStatusPending:    "Pendente",
	domain.TicketStatusResolved:   "Resolvido",
	domain.TicketStatusClosed:     "Fechado",
}

var priorityToDisplay = map[domain.TicketPriority]string{
	domain.TicketPriorityUrgent: "Crítica",
	domain.TicketPriorityHigh:   "Alta",
	domain.TicketPriorityNormal: "Média",
	domain.TicketPriorityLow:    "Baixa",
}

var statusFromDisplay = invertStatus(statusToDisplay)
var priorityFromDisplay = invertPriority(priorityToDisplay)

// DisplayStatus maps a canonical status token to its localized label.
func DisplayStatus(s domain.TicketStatus) string {
	if label, ok := statusToDisplay[s]; ok {
		return label
	}
	return string(s)
}

// CanonicalStatus maps a localized label back to the canonical token.
func CanonicalStatus(label string) domain.TicketStatus {
	if s, ok := statusFromDisplay[label]; ok {
		return s
	}
	return domain.TicketStatus(label)
}

// DisplayPriority maps a canonical priority token to its localized label.
func DisplayPriority(p domain.TicketPriority) string {
	if label, ok := priorityToDisplay[p]; ok {
		return label
	}
	return string(p)
}

// CanonicalPriority maps a localized label back to the canonical token.
func CanonicalPriority(label string) domain.TicketPriority {
	if p, ok := priorityFromDisplay[label]; ok {
		return p
	}
	return domain.TicketPriority(label)
}

func invertStatus(m map[domain.TicketStatus]string) map[string]domain.TicketStatus {
	out := make(map[string]domain.TicketStatus, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

func invertPriority(m map[domain.TicketPriority]string) map[string]domain.TicketPriority {
	out := make(map[string]domain.TicketPriority, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}
