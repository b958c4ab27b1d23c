package handler

import (
	assignmentdomain "gold-day-go/internal/domain/assignment"
	golddomain "gold-day-go/internal/domain/goldprice"
	groupdomain "gold-day-go/internal/domain/group"
	memberdomain "gold-day-go/internal/domain/member"
	"gold-day-go/pkg/logger"
)

type Handlers struct {
	Groups      *groupdomain.Service
	Members     *memberdomain.Service
	Assignments *assignmentdomain.Service
	GoldPrice   *golddomain.Service
	log         logger.Logger
}

func New(groups *groupdomain.Service, members *memberdomain.Service, assignments *assignmentdomain.Service, goldPrice *golddomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Groups:      groups,
		Members:     members,
		Assignments: assignments,
		GoldPrice:   goldPrice,
		log:         log,
	}
}
